package mkdoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// A Readme is the document context of one module: where the template lives,
// what the module is and which values fill the template's placeholders. It
// is configured once, then consumed by [Readme.Render].
//
// Placeholders have the form $name or ${name}, name being a Go-style
// identifier. Unknown placeholders stay verbatim in the output so that
// partial templates still render; see OnUnknown for stricter tooling. Two
// placeholders are implicit: 'features' serializes the feature registry with
// [DefaultItemPrefix], 'modules' defaults to the empty string and is filled
// by [Aggregate]. Both can be overridden with explicit properties.
type Readme struct {
	// Template is the path of the UTF-8 template file. Relative paths are
	// resolved against Dir. No template, or a template file that does not
	// exist, makes Render report an absent document – that is not an error.
	Template string

	// Dir is the base directory for relative paths. Empty means the
	// process' working directory.
	Dir string

	// Inputs lists additional files the rendering depends on. They are
	// declared to the host build engine for staleness checking only; the
	// renderer itself never reads them.
	Inputs []string

	// Description is the optional module summary, also available as the
	// implicit property 'description'.
	Description string

	// Maturity is always rendered, its zero value as EXPERIMENTAL. Also
	// available as the implicit property 'maturity'.
	Maturity gomkrel.Maturity

	// Features is the module's feature registry. A nil registry serializes
	// to the empty string.
	Features *Registry

	// OnUnknown, when set, observes every unknown placeholder name. The
	// placeholder stays verbatim either way; the hook exists for callers
	// that want to warn instead of silently ignoring.
	OnUnknown func(name string)

	props map[string]func() string
}

// Property registers the substitution value for $name.
func (rd *Readme) Property(name, value string) {
	rd.PropertyFunc(name, func() string { return value })
}

// PropertyFunc registers a lazily computed substitution value: f runs when
// Render substitutes, not when the property is registered, so mutations
// between configuration and rendering stay visible. Within one Render call f
// runs at most once, no matter how often $name occurs.
func (rd *Readme) PropertyFunc(name string, f func() string) {
	if rd.props == nil {
		rd.props = make(map[string]func() string)
	}
	rd.props[name] = f
}

// Render loads the template and substitutes all recognized placeholders in a
// single left-to-right pass. It returns ok == false when there is no
// template to render – no Template configured, or the file does not exist –
// which callers take as "skip README generation", not as an error. Rendering
// the same unchanged context twice yields byte-identical output.
func (rd *Readme) Render() (text string, ok bool, err error) {
	if rd.Template == "" {
		return "", false, nil
	}
	path := rd.Template
	if !filepath.IsAbs(path) && rd.Dir != "" {
		path = filepath.Join(rd.Dir, filepath.FromSlash(path))
	}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	vals := make(map[string]string)
	return expand(string(raw), func(name string) (string, bool) {
		if v, ok := vals[name]; ok {
			return v, true
		}
		v, ok := rd.lookup(name)
		if ok {
			vals[name] = v
		} else if rd.OnUnknown != nil {
			rd.OnUnknown(name)
		}
		return v, ok
	}), true, nil
}

func (rd *Readme) lookup(name string) (string, bool) {
	if f, ok := rd.props[name]; ok {
		return f(), true
	}
	switch name {
	case "features":
		return rd.Features.Serialize(DefaultItemPrefix, ""), true
	case "modules":
		return "", true
	case "description":
		return rd.Description, true
	case "maturity":
		return rd.Maturity.String(), true
	}
	return "", false
}

// expand replaces $name and ${name} tokens in one left-to-right pass.
// Substituted values are not re-scanned. Tokens that lookup does not resolve,
// and '$' runes that do not start a well-formed token, stay verbatim.
func expand(tmpl string, lookup func(string) (string, bool)) string {
	dollar := strings.IndexByte(tmpl, '$')
	if dollar < 0 {
		return tmpl
	}
	var sb strings.Builder
	for dollar >= 0 {
		sb.WriteString(tmpl[:dollar])
		rest := tmpl[dollar+1:]
		var name, token string
		if strings.HasPrefix(rest, "{") {
			if end := strings.IndexByte(rest, '}'); end > 0 {
				name = rest[1:end]
				token = tmpl[dollar : dollar+2+len(name)+1]
			}
		} else {
			name = identPrefix(rest)
			token = tmpl[dollar : dollar+1+len(name)]
		}
		if name == "" || !isIdent(name) {
			sb.WriteByte('$')
			tmpl = rest
		} else if v, ok := lookup(name); ok {
			sb.WriteString(v)
			tmpl = tmpl[dollar+len(token):]
		} else {
			sb.WriteString(token)
			tmpl = tmpl[dollar+len(token):]
		}
		dollar = strings.IndexByte(tmpl, '$')
	}
	sb.WriteString(tmpl)
	return sb.String()
}

func identPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return ""
			}
		default:
			return s[:i]
		}
	}
	return s
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

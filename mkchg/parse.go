package mkchg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Parse reads a changelog in keep-a-changelog shape. Unknown structure is
// tolerated where possible: free text inside a release lands in its Notes,
// text before the first '## ' heading in the preamble.
func Parse(r io.Reader) (*Changelog, error) {
	cl := new(Changelog)
	var (
		pre        strings.Builder
		inPre      = true
		unreleased bool
		rel        *Release
		kind       Kind
		inKind     bool
	)
	sections := func() *Sections {
		if unreleased {
			return &cl.Unreleased
		}
		if rel != nil {
			return &rel.Sections
		}
		return nil
	}
	scn := bufio.NewScanner(r)
	for line := 1; scn.Scan(); line++ {
		text := scn.Text()
		switch {
		case strings.HasPrefix(text, "## "):
			inPre, inKind = false, false
			head := strings.TrimSpace(text[3:])
			if isUnreleasedHeading(head) {
				if unreleased {
					return nil, fmt.Errorf("line %d: second Unreleased heading", line)
				}
				unreleased, rel = true, nil
				continue
			}
			unreleased = false
			var err error
			if rel, err = parseReleaseHeading(head); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if cl.Find(rel.Version) != nil {
				return nil, fmt.Errorf("line %d: duplicate version %s", line, rel.Version)
			}
			cl.Releases = append(cl.Releases, rel)
		case strings.HasPrefix(text, "### "):
			if s := sections(); s == nil {
				return nil, fmt.Errorf("line %d: change kind outside of a release", line)
			}
			k, err := ParseKind(text[4:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			kind, inKind = k, true
		case inPre:
			pre.WriteString(text)
			pre.WriteByte('\n')
		case strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "* "):
			s := sections()
			if s == nil {
				return nil, fmt.Errorf("line %d: entry outside of a release", line)
			}
			if !inKind {
				return nil, fmt.Errorf("line %d: entry without change kind", line)
			}
			s[kind] = append(s[kind], strings.TrimSpace(text[2:]))
		case strings.TrimSpace(text) == "":
			// blank lines are layout, the writer restores them
		case strings.HasPrefix(text, "[") && strings.Contains(text, "]: "):
			// compare-link references, regenerated on save
		case rel != nil && !inKind:
			rel.Notes = append(rel.Notes, text)
		default:
			return nil, fmt.Errorf("line %d: unexpected text %q", line, text)
		}
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	cl.Preamble = pre.String()
	return cl, nil
}

func isUnreleasedHeading(head string) bool {
	head = strings.Trim(head, "[]")
	return strings.EqualFold(head, "Unreleased")
}

func parseReleaseHeading(head string) (*Release, error) {
	rel := new(Release)
	if v, ok := strings.CutSuffix(head, "[YANKED]"); ok {
		rel.Yanked = true
		head = strings.TrimSpace(v)
	}
	ver, date, ok := strings.Cut(head, " - ")
	if !ok {
		ver = head
	}
	rel.Version = strings.Trim(strings.TrimSpace(ver), "[]")
	rel.Date = strings.TrimSpace(date)
	if rel.Version == "" {
		return nil, errors.New("release heading without version")
	}
	return rel, nil
}

// Load parses the changelog file at path. A file that does not exist yields
// an empty changelog, so a project's first 'add' creates the file on save.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return new(Changelog), nil
	case err != nil:
		return nil, err
	}
	defer f.Close()
	cl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cl, nil
}

// Save writes the normalized changelog to path, overwriting it in full.
func (cl *Changelog) Save(path string) error {
	var sb strings.Builder
	if _, err := cl.WriteTo(&sb); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0666)
}

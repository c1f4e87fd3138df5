package mkdoc

import (
	"strings"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// ModuleDoc pairs a module of the project tree with its document context for
// aggregation.
type ModuleDoc struct {
	Mod *gomkrel.Module
	Doc *Readme
}

// Aggregate renders the root-level summary document: one block per module,
// in the given order, joined into the root's 'modules' placeholder before
// the root template is rendered. The caller decides the traversal order;
// Aggregate never reorders.
//
// Like [Readme.Render] it reports an absent document when the root has no
// template – then aggregation is skipped entirely, independent of what the
// modules would have contributed.
func Aggregate(root *Readme, mods []ModuleDoc) (text string, ok bool, err error) {
	if root.Template == "" {
		return "", false, nil
	}
	var blocks []string
	for _, md := range mods {
		blocks = append(blocks, ModuleBlock(md))
	}
	root.PropertyFunc("modules", func() string {
		return strings.Join(blocks, "\n")
	})
	return root.Render()
}

// ModuleBlock renders the aggregation block of one module: a separator rule,
// a heading linking to the module's directory, the description when there is
// one, the maturity label (EXPERIMENTAL when unset) and – only for a
// non-empty registry – the serialized features under a Features sub-heading.
// A module with neither description nor features still gets its heading-only
// block; modules are never silently dropped from the list.
func ModuleBlock(md ModuleDoc) string {
	var sb strings.Builder
	dir := md.Mod.Dir()
	sb.WriteString("----\n\n")
	sb.WriteString("## [")
	sb.WriteString(md.Mod.Name())
	sb.WriteString("](")
	sb.WriteString(dir)
	sb.WriteString(")\n")
	desc, mat, feats := "", md.Mod.Maturity, (*Registry)(nil)
	if md.Doc != nil {
		desc, mat, feats = md.Doc.Description, md.Doc.Maturity, md.Doc.Features
	}
	if desc == "" {
		desc = md.Mod.Description
	}
	if mat == gomkrel.Experimental {
		mat = md.Mod.Maturity
	}
	if desc != "" {
		sb.WriteString("\n")
		sb.WriteString(desc)
		sb.WriteString("\n")
	}
	sb.WriteString("\n**Maturity**: ")
	sb.WriteString(mat.String())
	sb.WriteString("\n")
	if fl := feats.Serialize(DefaultItemPrefix, dir+"/"); fl != "" {
		sb.WriteString("\n### Features\n\n")
		sb.WriteString(fl)
		sb.WriteString("\n")
	}
	return sb.String()
}

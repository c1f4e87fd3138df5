package manifest

import (
	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/gomkrel/mkapi"
	"git.fractalqb.de/fractalqb/gomkrel/mkchg"
	"git.fractalqb.de/fractalqb/gomkrel/mkdoc"
	"git.fractalqb.de/fractalqb/gomkrel/mkpub"
	"git.fractalqb.de/fractalqb/gomkrel/mktgt"
)

// SetupTasks declares the standard task set of the loaded manifest with the
// project: README rendering per documented module, the root aggregation,
// changelog normalization, API baseline check and the publication check –
// each only when the manifest configures it. The aggregation is ordered
// after the per-module README tasks.
func (t *Tree) SetupTasks(onErr gomkrel.OnErrFunc) {
	var (
		mods   []mkdoc.ModuleDoc
		rmDeps []string
	)
	t.Project.Walk(func(mod *gomkrel.Module) error {
		doc, ok := t.Docs[mod]
		if !ok {
			return nil
		}
		rt := mkdoc.NewReadmeTask(onErr, t.Project, mod, doc.Readme, doc.Out)
		rt.AddInput(t.File)
		rmDeps = append(rmDeps, rt.Name())
		mods = append(mods, mkdoc.ModuleDoc{Mod: mod, Doc: doc.Readme})
		return nil
	})
	if t.RootDoc.Readme != nil {
		at := mkdoc.NewAggregateTask(onErr, t.Project, t.RootDoc.Readme, mods, t.RootDoc.Out)
		at.AddInput(t.File)
		at.DependOn(rmDeps...)
	}
	if t.Changelog.Path != "" {
		mkchg.NewChangelogTask(onErr, t.Project, t.Changelog)
	}
	if t.API != nil {
		mkapi.NewDumpTask(onErr, t.Project, t.API.Baseline, t.API.Patterns...)
		mkapi.NewCheckTask(onErr, t.Project, t.API.Baseline, t.API.Patterns...)
	}
	if t.Build != nil {
		mktgt.NewMatrixTasks(onErr, t.Project, *t.Build, t.Targets)
	}
	if _, ok := t.Pub.VCS(); ok {
		mkpub.NewCheckTask(onErr, t.Project, t.Pub)
	}
}

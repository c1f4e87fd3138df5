package mktgt

import (
	"path"
	"path/filepath"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// Build describes how the release binaries of a project are compiled.
type Build struct {
	// Pkg is the main package, e.g. "./cmd/tool".
	Pkg string
	// Dist is the output directory, default "dist".
	Dist string
	// GoExe overrides the go tool, default "go" from PATH.
	GoExe    string
	TrimPath bool
	// LDFlags, see https://pkg.go.dev/cmd/link
	LDFlags []string
}

func (b *Build) dist() string {
	if b.Dist == "" {
		return "dist"
	}
	return b.Dist
}

func (b *Build) base(prj *gomkrel.Project) string {
	base := path.Base(b.Pkg)
	if base == "." || base == "/" || base == "" {
		return filepath.Base(prj.AbsPath(""))
	}
	return base
}

// NewBuildTask declares the compilation of b for one target as task
// "build:<os>/<arch>". The binary goes to the dist directory under the
// target's artefact name.
func NewBuildTask(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	b Build,
	tgt Target,
) *gomkrel.CmdTask {
	goExe := b.GoExe
	if goExe == "" {
		goExe = "go"
	}
	out := path.Join(b.dist(), tgt.ArtefactName(b.base(prj)))
	args := []string{"build"}
	if b.TrimPath {
		args = append(args, "-trimpath")
	}
	for _, f := range b.LDFlags {
		args = append(args, "-ldflags", f)
	}
	args = append(args, "-o", out, b.Pkg)
	t := gomkrel.NewCmdTask(onErr, prj, "build:"+tgt.String(), goExe, args...)
	t.Env = tgt.Env()
	t.AddOutput(out)
	return t
}

// NewMatrixTasks declares one build task per target of m plus a grouping
// "build" task depending on all of them.
func NewMatrixTasks(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	b Build,
	m Matrix,
) *gomkrel.NopTask {
	group := gomkrel.NewNopTask(onErr, prj, "build")
	for _, tgt := range m {
		bt := NewBuildTask(onErr, prj, b, tgt)
		group.DependOn(bt.Name())
	}
	return group
}

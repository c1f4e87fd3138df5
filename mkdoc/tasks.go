package mkdoc

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// ReadmeTask renders the README of one module and writes it to Out. The
// output file is overwritten in full on every run, never merged. When the
// document is absent – no template – the task runs without writing anything.
type ReadmeTask struct {
	gomkrel.TaskBase
	Doc *Readme
	Out string
}

// NewReadmeTask declares README rendering for mod. doc's template and extra
// inputs become the task's inputs, out – empty means "README.md" in the
// module directory – its output. All paths are relative to the project root;
// doc.Dir is set to the project root so both views agree.
func NewReadmeTask(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	mod *gomkrel.Module,
	doc *Readme,
	out string,
) *ReadmeTask {
	if out == "" {
		out = path.Join(mod.Dir(), "README.md")
	}
	t := &ReadmeTask{
		TaskBase: gomkrel.MakeTaskBase(prj, mod, "readme:"+mod.Path()),
		Doc:      doc,
		Out:      out,
	}
	doc.Dir = prj.Dir
	t.AddInput(doc.Template)
	t.AddInput(doc.Inputs...)
	t.AddOutput(out)
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *ReadmeTask) Run(env gomkrel.TaskEnv) error {
	text, ok, err := t.Doc.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", t.Name(), err)
	}
	if !ok {
		if env.Trace != nil {
			env.Trace.SkipTask(t, "no template")
		}
		return nil
	}
	return writeDoc(t.Project().AbsPath(t.Out), text)
}

// AggregateTask renders the root-level summary document from the feature
// registries of the given modules. It does not depend on the per-module
// README tasks by itself – their outputs are no inputs of the aggregation –
// but callers typically order it after them with DependOn.
type AggregateTask struct {
	gomkrel.TaskBase
	Root *Readme
	Mods []ModuleDoc
	Out  string
}

// NewAggregateTask declares the aggregation with output out, "README.md" by
// default.
func NewAggregateTask(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	root *Readme,
	mods []ModuleDoc,
	out string,
) *AggregateTask {
	if out == "" {
		out = "README.md"
	}
	t := &AggregateTask{
		TaskBase: gomkrel.MakeTaskBase(prj, nil, "readme:aggregate"),
		Root:     root,
		Mods:     mods,
		Out:      out,
	}
	root.Dir = prj.Dir
	t.AddInput(root.Template)
	t.AddInput(root.Inputs...)
	t.AddOutput(out)
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *AggregateTask) Run(env gomkrel.TaskEnv) error {
	text, ok, err := Aggregate(t.Root, t.Mods)
	if err != nil {
		return fmt.Errorf("render %s: %w", t.Name(), err)
	}
	if !ok {
		if env.Trace != nil {
			env.Trace.SkipTask(t, "no root template")
		}
		return nil
	}
	return writeDoc(t.Project().AbsPath(t.Out), text)
}

func writeDoc(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text), 0666)
}

package gomkrel

import (
	"context"
	"fmt"
	"io"
	"os"
)

// TaskEnv is the environment a [Task] runs in. The zero value is usable;
// [DefaultTaskEnv] fills in the process streams and a [NopTracer] trace.
type TaskEnv struct {
	Trace    *Trace
	In       io.Reader
	Out, Err io.Writer
}

func DefaultTaskEnv(ctx context.Context) TaskEnv {
	return TaskEnv{
		Trace: NewTrace(ctx, NopTracer{}),
		In:    os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}
}

// A Task is one declared unit of release-engineering work on a [Project]. Its
// input and output files feed staleness checking – by the [Runner] or by a
// host build engine: a task that is run always computes fresh output.
type Task interface {
	ErrStater

	Project() *Project
	// Module returns the module a task belongs to, nil for project-level
	// tasks such as README aggregation.
	Module() *Module
	Name() string

	// Inputs lists the files the task reads, relative to the project root.
	Inputs() []string
	// Outputs lists the files the task overwrites, relative to the project
	// root.
	Outputs() []string

	DependsOn() []string

	Run(env TaskEnv) error
}

// TaskBase is meant to be embedded by task implementations. Constructors use
// [MakeTaskBase] and register the complete task with [Project.AddTask].
type TaskBase struct {
	// Err keeps a configuration error, see [ErrStater].
	Err error

	name     string
	prj      *Project
	mod      *Module
	inputs   []string
	outputs  []string
	depNames []string
}

func MakeTaskBase(prj *Project, mod *Module, name string) TaskBase {
	return TaskBase{name: name, prj: prj, mod: mod}
}

func (t *TaskBase) ErrState() error { return t.Err }

func (t *TaskBase) Project() *Project { return t.prj }

func (t *TaskBase) Module() *Module { return t.mod }

func (t *TaskBase) Name() string { return t.name }

func (t *TaskBase) Inputs() []string { return t.inputs }

func (t *TaskBase) Outputs() []string { return t.outputs }

func (t *TaskBase) DependsOn() []string { return t.depNames }

// AddInput declares further input files, dropping paths already declared.
func (t *TaskBase) AddInput(paths ...string) {
NEXT_IN:
	for _, p := range paths {
		if p == "" {
			continue
		}
		for _, i := range t.inputs {
			if i == p {
				continue NEXT_IN
			}
		}
		t.inputs = append(t.inputs, p)
	}
}

// AddOutput declares further output files, dropping paths already declared.
func (t *TaskBase) AddOutput(paths ...string) {
NEXT_OUT:
	for _, p := range paths {
		if p == "" {
			continue
		}
		for _, o := range t.outputs {
			if o == p {
				continue NEXT_OUT
			}
		}
		t.outputs = append(t.outputs, p)
	}
}

// DependOn makes t depend on the named tasks, dropping names t already
// depends on.
func (t *TaskBase) DependOn(taskname ...string) {
NEXT_DEP:
	for _, dn := range taskname {
		for _, d := range t.depNames {
			if d == dn {
				continue NEXT_DEP
			}
		}
		t.depNames = append(t.depNames, dn)
	}
}

// AddTask registers t under its name. Redefining a task name is a
// configuration error. Registration order is the order the [Runner] uses for
// independent tasks.
func (prj *Project) AddTask(t Task) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("adding task without name to project '%s'", prj)
	}
	if _, ok := prj.tasks[name]; ok {
		return fmt.Errorf("redefining task '%s'", name)
	}
	prj.tasks[name] = t
	prj.taskList = append(prj.taskList, t)
	return nil
}

// Tasks returns all registered tasks in registration order.
func (prj *Project) Tasks() []Task { return prj.taskList }

func (prj *Project) FindTask(name string) Task { return prj.tasks[name] }

// NopTask does nothing when run. It groups other tasks by depending on them,
// like an abstract goal in a build graph.
type NopTask struct{ TaskBase }

func NewNopTask(onErr OnErrFunc, prj *Project, name string) *NopTask {
	t := &NopTask{TaskBase: MakeTaskBase(prj, nil, name)}
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		CheckErrState(onErr, t)
	}
	return t
}

func (*NopTask) Run(TaskEnv) error { return nil }

// TaskFunc is the work of a [FuncTask].
type TaskFunc func(env TaskEnv) error

// FuncTask runs a plain Go function.
type FuncTask struct {
	TaskBase
	f TaskFunc
}

func NewFuncTask(onErr OnErrFunc, prj *Project, name string, f TaskFunc) *FuncTask {
	t := &FuncTask{TaskBase: MakeTaskBase(prj, nil, name), f: f}
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		CheckErrState(onErr, t)
	}
	return t
}

func (t *FuncTask) Run(env TaskEnv) error {
	if t.f == nil {
		return nil
	}
	return t.f(env)
}

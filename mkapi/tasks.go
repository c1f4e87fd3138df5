package mkapi

import (
	"fmt"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// DumpTask writes the current API surface to the baseline file. It is meant
// to run when a release is cut, fixing the API the release promises.
type DumpTask struct {
	gomkrel.TaskBase
	Baseline string
	Patterns []string
}

func NewDumpTask(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	baseline string,
	patterns ...string,
) *DumpTask {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	t := &DumpTask{
		TaskBase: gomkrel.MakeTaskBase(prj, nil, "api:dump"),
		Baseline: baseline,
		Patterns: patterns,
	}
	t.AddOutput(baseline)
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *DumpTask) Run(env gomkrel.TaskEnv) error {
	sur, err := Dump(t.Project().Dir, t.Patterns...)
	if err != nil {
		return err
	}
	return SaveBaseline(t.Project().AbsPath(t.Baseline), sur)
}

// CheckTask compares the current API surface against the baseline and fails
// on breaking changes. Compatible additions are traced, not failed.
type CheckTask struct {
	gomkrel.TaskBase
	Baseline string
	Patterns []string
}

func NewCheckTask(
	onErr gomkrel.OnErrFunc,
	prj *gomkrel.Project,
	baseline string,
	patterns ...string,
) *CheckTask {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	t := &CheckTask{
		TaskBase: gomkrel.MakeTaskBase(prj, nil, "api:check"),
		Baseline: baseline,
		Patterns: patterns,
	}
	t.AddInput(baseline)
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *CheckTask) Run(env gomkrel.TaskEnv) error {
	base, err := LoadBaseline(t.Project().AbsPath(t.Baseline))
	if err != nil {
		return err
	}
	cur, err := Dump(t.Project().Dir, t.Patterns...)
	if err != nil {
		return err
	}
	delta := Diff(base, cur)
	if delta.Breaking() {
		return fmt.Errorf("api breaks baseline %s:\n%s", t.Baseline, delta)
	}
	if env.Trace != nil && !delta.Empty() {
		env.Trace.Info("compatible api `additions`", `additions`, len(delta.Added))
	}
	return nil
}

package gomkrel

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Runner executes the tasks of a [Project] in dependency order: tasks run
// after all tasks they depend on, independent tasks run in registration
// order, one after the other. Tasks whose declared outputs are all newer
// than their declared inputs are skipped, see [Task]. The Runner exists for
// standalone use in scripts and tests; inside a host build engine the
// engine's scheduler takes its place and the Runner stays out of the way.
type Runner struct {
	Env TaskEnv
	// Always runs every task, ignoring input and output file times.
	Always bool
}

// Project runs every task registered with prj.
func (r *Runner) Project(prj *Project) error {
	return r.ProjectContext(context.Background(), prj)
}

// ProjectContext runs every task registered with prj.
func (r *Runner) ProjectContext(ctx context.Context, prj *Project) error {
	return r.runContext(ctx, prj, prj.taskList)
}

// Tasks runs the named tasks of prj, along with their dependencies.
func (r *Runner) Tasks(prj *Project, names ...string) error {
	return r.TasksContext(context.Background(), prj, names...)
}

// TasksContext runs the named tasks of prj, along with their dependencies.
func (r *Runner) TasksContext(ctx context.Context, prj *Project, names ...string) error {
	var ts []Task
	for _, n := range names {
		t := prj.FindTask(n)
		if t == nil {
			return fmt.Errorf("no task named '%s' in project '%s'", n, prj)
		}
		ts = append(ts, t)
	}
	return r.runContext(ctx, prj, ts)
}

func (r *Runner) runContext(ctx context.Context, prj *Project, ts []Task) error {
	env := r.Env
	if env.Trace == nil {
		env.Trace = NewTrace(ctx, NopTracer{})
	}
	idx := make(map[string]int, len(prj.taskList))
	for i, t := range prj.taskList {
		idx[t.Name()] = i
	}
	var (
		done   = bitset.New(uint(len(prj.taskList)))
		onPath = bitset.New(uint(len(prj.taskList)))
	)

	var runTask func(i int, chain []string) error
	runTask = func(i int, chain []string) error {
		if done.Test(uint(i)) {
			return nil
		}
		t := prj.taskList[i]
		chain = append(chain, t.Name())
		if onPath.Test(uint(i)) {
			return fmt.Errorf("task dependency cycle: %s",
				strings.Join(chain, " -> "),
			)
		}
		if err := t.ErrState(); err != nil {
			return fmt.Errorf("task '%s': %w", t.Name(), err)
		}
		onPath.Set(uint(i))
		defer onPath.Clear(uint(i))
		for _, dep := range t.DependsOn() {
			j, ok := idx[dep]
			if !ok {
				return fmt.Errorf("task '%s' depends on unknown task '%s'",
					t.Name(),
					dep,
				)
			}
			if err := runTask(j, chain); err != nil {
				return err
			}
		}
		tenv := env
		tenv.Trace = env.Trace.pushTask(t)
		if !r.Always && upToDate(t) {
			tenv.Trace.SkipTask(t, "up to date")
			done.Set(uint(i))
			return nil
		}
		tenv.Trace.runTask(t)
		if tenv.Out != nil {
			tenv.Out = newPrefixWriter(tenv.Out, t.Name()+"\t")
		}
		if err := t.Run(tenv); err != nil {
			return fmt.Errorf("task '%s': %w", t.Name(), err)
		}
		done.Set(uint(i))
		return nil
	}

	tr := env.Trace.pushProject(prj)
	tr.startProject(prj, "run tasks")
	start := time.Now()
	env.Trace = tr
	for _, t := range ts {
		if err := runTask(idx[t.Name()], nil); err != nil {
			return err
		}
	}
	tr.doneProject(prj, "run tasks", time.Since(start))
	return nil
}

// upToDate reports whether every output of t exists and is newer than all
// of t's inputs. Tasks without inputs or outputs and tasks that rewrite one
// of their own inputs cannot be judged by file times and count as stale.
func upToDate(t Task) bool {
	ins, outs := t.Inputs(), t.Outputs()
	if len(ins) == 0 || len(outs) == 0 {
		return false
	}
	if slices.ContainsFunc(outs, func(o string) bool {
		return slices.Contains(ins, o)
	}) {
		return false
	}
	prj := t.Project()
	var newestIn time.Time
	for _, in := range ins {
		st, err := os.Stat(prj.AbsPath(in))
		if err != nil {
			return false
		}
		if mt := st.ModTime(); mt.After(newestIn) {
			newestIn = mt
		}
	}
	for _, out := range outs {
		st, err := os.Stat(prj.AbsPath(out))
		if err != nil {
			return false
		}
		if !st.ModTime().After(newestIn) {
			return false
		}
	}
	return true
}

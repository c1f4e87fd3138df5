package gomkrel

import (
	"context"
	"os"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/testerr"
)

func runOrderProject(t *testing.T, ran *[]string) *Project {
	prj := NewProject(t.Name())
	log := func(name string) TaskFunc {
		return func(TaskEnv) error {
			*ran = append(*ran, name)
			return nil
		}
	}
	NewFuncTask(Must, prj, "a", log("a"))
	NewFuncTask(Must, prj, "b", log("b")).DependOn("c")
	NewFuncTask(Must, prj, "c", log("c")).DependOn("a")
	return prj
}

func TestRunner_dependencyOrder(t *testing.T) {
	var ran []string
	prj := runOrderProject(t, &ran)
	var run Runner
	run.Env.Trace = NewTrace(context.Background(), TestTracer{t})
	testerr.Shall(run.Project(prj)).BeNil(t)
	want := []string{"a", "c", "b"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v", ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("ran %v, want %v", ran, want)
		}
	}
}

func TestRunner_selectedTasksRunDeps(t *testing.T) {
	var ran []string
	prj := runOrderProject(t, &ran)
	var run Runner
	testerr.Shall(run.Tasks(prj, "b")).BeNil(t)
	want := []string{"a", "c", "b"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v", ran)
	}
	testerr.Shall(run.Tasks(prj, "nosuch")).
		Check(t, testerr.Msg("no task named 'nosuch' in project '"+t.Name()+"'"))
}

func TestRunner_fanIn(t *testing.T) {
	var ran []string
	prj := NewProject(t.Name())
	log := func(name string) TaskFunc {
		return func(TaskEnv) error {
			ran = append(ran, name)
			return nil
		}
	}
	NewFuncTask(Must, prj, "mod1", log("mod1"))
	NewFuncTask(Must, prj, "mod2", log("mod2"))
	NewFuncTask(Must, prj, "root", log("root")).DependOn("mod1", "mod2")
	var run Runner
	testerr.Shall(run.Tasks(prj, "root")).BeNil(t)
	if len(ran) != 3 || ran[2] != "root" {
		t.Fatalf("ran %v", ran)
	}
}

func TestRunner_cycle(t *testing.T) {
	prj := NewProject(t.Name())
	NewFuncTask(Must, prj, "a", nil).DependOn("b")
	NewFuncTask(Must, prj, "b", nil).DependOn("a")
	var run Runner
	testerr.Shall(run.Project(prj)).
		Check(t, testerr.Msg("task dependency cycle: a -> b -> a"))
}

func TestRunner_unknownDep(t *testing.T) {
	prj := NewProject(t.Name())
	NewFuncTask(Must, prj, "a", nil).DependOn("ghost")
	var run Runner
	testerr.Shall(run.Project(prj)).
		Check(t, testerr.Msg("task 'a' depends on unknown task 'ghost'"))
}

func TestRunner_refusesErroredTask(t *testing.T) {
	prj := NewProject(t.Name())
	NewNopTask(nil, prj, "t")
	bad := NewNopTask(nil, prj, "t") // not registered, keeps its error
	_ = bad
	// the duplicate was rejected, so the project itself stays runnable
	var run Runner
	testerr.Shall(run.Project(prj)).BeNil(t)

	prj2 := NewProject(t.Name())
	tsk := NewFuncTask(nil, prj2, "ok", nil)
	tsk.Err = errTest
	testerr.Shall(run.Project(prj2)).Check(t, testerr.Msg("task 'ok': test error"))
}

func TestRunner_skipsUpToDateTask(t *testing.T) {
	dir := t.TempDir()
	prj := NewProject(dir)
	writeAt := func(name string, at time.Time) {
		p := prj.AbsPath(name)
		testerr.Shall(os.WriteFile(p, []byte(name), 0666)).BeNil(t)
		testerr.Shall(os.Chtimes(p, at, at)).BeNil(t)
	}
	now := time.Now()
	writeAt("in.txt", now.Add(-time.Hour))
	writeAt("out.txt", now)

	runs := 0
	tsk := NewFuncTask(Must, prj, "gen", func(TaskEnv) error {
		runs++
		return nil
	})
	tsk.AddInput("in.txt")
	tsk.AddOutput("out.txt")

	var run Runner
	run.Env.Trace = NewTrace(context.Background(), TestTracer{t})
	testerr.Shall(run.Project(prj)).BeNil(t)
	if runs != 0 {
		t.Error("up-to-date task ran")
	}

	writeAt("in.txt", now.Add(time.Hour))
	testerr.Shall(run.Project(prj)).BeNil(t)
	if runs != 1 {
		t.Errorf("stale task ran %d times", runs)
	}

	writeAt("out.txt", now.Add(2*time.Hour))
	run.Always = true
	testerr.Shall(run.Project(prj)).BeNil(t)
	if runs != 2 {
		t.Errorf("Always runner ran task %d times", runs)
	}
}

var errTest = testErr("test error")

type testErr string

func (e testErr) Error() string { return string(e) }

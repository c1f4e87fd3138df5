package gomkrel

import (
	"context"
	"os"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func TestCmdTask(t *testing.T) {
	prj := NewProject(t.TempDir())
	tsk := NewCmdTask(Must, prj, "greet", "sh", "-c", "printf 'hi %s' \"$WHO\"")
	tsk.Env = map[string]string{"WHO": "gomkrel"}
	tsk.OutFile = "out.txt"
	tsk.AddOutput(tsk.OutFile)

	var run Runner
	run.Env.Trace = NewTrace(context.Background(), TestTracer{t})
	testerr.Shall(run.Project(prj)).BeNil(t)
	data := testerr.Shall1(os.ReadFile(prj.AbsPath("out.txt"))).BeNil(t)
	if string(data) != "hi gomkrel" {
		t.Errorf("command output %q", data)
	}
}

func TestCmdTask_failure(t *testing.T) {
	prj := NewProject(t.TempDir())
	NewCmdTask(Must, prj, "fail", "sh", "-c", "exit 3")
	var run Runner
	err := run.Project(prj)
	if err == nil || !strings.Contains(err.Error(), "task 'fail': exec 'sh':") {
		t.Errorf("failing command: %v", err)
	}
}

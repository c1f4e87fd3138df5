package gomkrel

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

// CmdTask runs one external command. Paths are relative to the project
// root; the command inherits the process environment with Env applied on
// top. When OutFile is empty the command writes to the task environment's
// Out stream.
type CmdTask struct {
	TaskBase
	// CWD is the working directory of the command, empty means the project
	// root.
	CWD  string
	Exe  string
	Args []string
	// Env overrides single variables of the process environment.
	Env             map[string]string
	InFile, OutFile string
}

var _ Task = (*CmdTask)(nil)

func NewCmdTask(onErr OnErrFunc, prj *Project, name, exe string, args ...string) *CmdTask {
	t := &CmdTask{
		TaskBase: MakeTaskBase(prj, nil, name),
		Exe:      exe,
		Args:     args,
	}
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		CheckErrState(onErr, t)
	}
	return t
}

func (t *CmdTask) Run(env TaskEnv) error {
	ctx := context.Background()
	if env.Trace != nil {
		ctx = env.Trace.Ctx()
	}
	prj := t.Project()
	cmd := exec.CommandContext(ctx, t.Exe, t.Args...)
	cmd.Dir = prj.AbsPath(t.CWD)
	cmd.Env = execEnv(t.Env)
	if t.InFile != "" {
		r, err := os.Open(prj.AbsPath(t.InFile))
		if err != nil {
			return err
		}
		defer r.Close()
		cmd.Stdin = r
	} else {
		cmd.Stdin = env.In
	}
	if t.OutFile != "" {
		w, err := os.Create(prj.AbsPath(t.OutFile))
		if err != nil {
			return err
		}
		defer w.Close()
		cmd.Stdout = w
	} else {
		cmd.Stdout = env.Out
	}
	cmd.Stderr = env.Err
	if env.Trace != nil {
		env.Trace.Debug("exec `cmd` in `dir`",
			`cmd`, cmd.String(),
			`dir`, cmd.Dir,
		)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("exec '%s': %w", t.Exe, err)
	}
	return nil
}

// execEnv merges overrides into a copy of the process environment.
func execEnv(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil // exec.Cmd falls back to os.Environ
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}

package mkpub

import (
	"fmt"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// CheckTask verifies that the publication setup is complete: a VCS is
// configured and every registered repository resolves its credentials.
type CheckTask struct {
	gomkrel.TaskBase
	Pub *Publishing
	// EnvFiles are loaded into the publishing properties before checking.
	EnvFiles []string
}

var _ gomkrel.Task = (*CheckTask)(nil)

func NewCheckTask(onErr gomkrel.OnErrFunc, prj *gomkrel.Project, pub *Publishing) *CheckTask {
	t := &CheckTask{
		TaskBase: gomkrel.MakeTaskBase(prj, nil, "publish:check"),
		Pub:      pub,
	}
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *CheckTask) Run(env gomkrel.TaskEnv) error {
	if err := t.Pub.LoadDotEnv(t.EnvFiles...); err != nil {
		return err
	}
	if _, ok := t.Pub.VCS(); !ok {
		return fmt.Errorf("publication check without VCS: configure the VCS before adding publication repositories")
	}
	for _, repo := range t.Pub.Repos() {
		if _, err := t.Pub.Credentials(repo); err != nil {
			return err
		}
		if env.Trace != nil {
			env.Trace.Info("repository `repo` at `url` ready",
				`repo`, repo.String(),
				`url`, repo.URL,
			)
		}
	}
	return nil
}

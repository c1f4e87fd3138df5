package mkchg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"

	"git.fractalqb.de/fractalqb/gomkrel"
)

// Config is the optional per-project changelog configuration, conventionally
// read from [DefaultConfigFile] in the project root.
type Config struct {
	// Path of the changelog file, default "CHANGELOG.md".
	Path string `yaml:"path"`
	// CompareBase, see [Changelog.CompareBase].
	CompareBase string `yaml:"compareBase"`
}

const (
	DefaultPath       = "CHANGELOG.md"
	DefaultConfigFile = ".gomkrel-changelog.yaml"
)

// LoadConfig reads a YAML config file. A file that does not exist yields the
// defaults.
func LoadConfig(path string) (cfg Config, err error) {
	cfg.Path = DefaultPath
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return cfg, err
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return cfg, nil
}

// ChangelogTask parses and rewrites the project changelog, normalizing its
// structure and refreshing compare links. The changelog file is both input
// and output of the task.
type ChangelogTask struct {
	gomkrel.TaskBase
	Cfg Config
}

func NewChangelogTask(onErr gomkrel.OnErrFunc, prj *gomkrel.Project, cfg Config) *ChangelogTask {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	t := &ChangelogTask{
		TaskBase: gomkrel.MakeTaskBase(prj, nil, "changelog"),
		Cfg:      cfg,
	}
	t.AddInput(cfg.Path)
	t.AddOutput(cfg.Path)
	if err := prj.AddTask(t); err != nil {
		t.Err = err
		gomkrel.CheckErrState(onErr, t)
	}
	return t
}

func (t *ChangelogTask) Run(env gomkrel.TaskEnv) error {
	path := t.Project().AbsPath(t.Cfg.Path)
	cl, err := Load(path)
	if err != nil {
		return err
	}
	cl.CompareBase = t.Cfg.CompareBase
	return cl.Save(path)
}

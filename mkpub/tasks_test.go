package mkpub

import (
	"os"
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestCheckTask(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	testerr.Shall(os.WriteFile(envFile,
		[]byte("releases.github.user=octocat\nreleases.github.token=s3cret\n"),
		0666,
	)).BeNil(t)

	var pub Publishing
	pub.envLookup = func(string) (string, bool) { return "", false }
	pub.ConfigureVCS(VCS{Type: "git", URL: "https://example.com/acme/tool.git"})
	testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)

	prj := gomkrel.NewProject(dir)
	task := NewCheckTask(gomkrel.Must, prj, &pub)
	task.EnvFiles = []string{envFile}

	run := gomkrel.Runner{Env: gomkrel.TaskEnv{
		Trace: gomkrel.NewTrace(t.Context(), gomkrel.TestTracer{T: t}),
	}}
	testerr.Shall(run.Project(prj)).BeNil(t)
}

func TestCheckTask_zeroTaskEnv(t *testing.T) {
	var pub Publishing
	pub.envLookup = func(string) (string, bool) { return "", false }
	pub.ConfigureVCS(VCS{Type: "git", URL: "https://example.com/acme/tool.git"})
	testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)
	pub.SetProperty("releases.github.user", "octocat")
	pub.SetProperty("releases.github.token", "s3cret")

	prj := gomkrel.NewProject(t.TempDir())
	task := NewCheckTask(gomkrel.Must, prj, &pub)
	testerr.Shall(task.Run(gomkrel.TaskEnv{})).BeNil(t)
}

func TestCheckTask_missingCredentials(t *testing.T) {
	var pub Publishing
	pub.envLookup = func(string) (string, bool) { return "", false }
	pub.ConfigureVCS(VCS{Type: "git", URL: "https://example.com/acme/tool.git"})
	testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)

	prj := gomkrel.NewProject(t.TempDir())
	NewCheckTask(gomkrel.Must, prj, &pub)

	run := gomkrel.Runner{Env: gomkrel.TaskEnv{
		Trace: gomkrel.NewTrace(t.Context(), gomkrel.TestTracer{T: t}),
	}}
	testerr.Shall(run.Project(prj)).Check(t, testerr.Msg(
		"task 'publish:check': missing credentials for repository 'releases.github': releases.github.user, releases.github.token",
	))
}

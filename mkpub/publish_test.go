package mkpub

import (
	"os"
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func gitVCS() VCS {
	return VCS{Type: "git", URL: "https://example.com/acme/tool.git", Branch: "main"}
}

func TestPublishing_ConfigureVCS(t *testing.T) {
	var pub Publishing
	if _, ok := pub.VCS(); ok {
		t.Fatal("zero Publishing reports configured VCS")
	}
	pub.ConfigureVCS(gitVCS())
	pub.ConfigureVCS(VCS{Type: "hg", URL: "https://example.com/other"})
	vcs, ok := pub.VCS()
	if !ok {
		t.Fatal("VCS not configured after ConfigureVCS")
	}
	if vcs.Type != "git" || vcs.Branch != "main" {
		t.Errorf("later ConfigureVCS changed stored VCS: %+v", vcs)
	}
}

func TestPublishing_Repository(t *testing.T) {
	var pub Publishing
	testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		Check(t, testerr.Msg(
			"registering repository 'releases.github' without VCS: configure the VCS before adding publication repositories",
		))
	pub.ConfigureVCS(gitVCS())
	r1 := testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)
	r2 := testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)
	if r1 != r2 {
		t.Error("re-registering same repository created a new Repo")
	}
	if len(pub.Repos()) != 1 {
		t.Errorf("have %d repositories, want 1", len(pub.Repos()))
	}
	testerr.Shall1(pub.Repository("releases", "github", "https://elsewhere.test")).
		Check(t, testerr.Msg(
			"repository 'releases.github' already registered with URL https://api.github.com",
		))
}

func TestPublishing_Credentials(t *testing.T) {
	var pub Publishing
	pub.envLookup = func(string) (string, bool) { return "", false }
	pub.ConfigureVCS(gitVCS())
	repo := testerr.Shall1(pub.Repository("releases", "github", "https://api.github.com")).
		BeNil(t)

	testerr.Shall1(pub.Credentials(repo)).Check(t, testerr.Msg(
		"missing credentials for repository 'releases.github': releases.github.user, releases.github.token",
	))

	pub.SetProperty("releases.github.user", "octocat")
	pub.envLookup = func(key string) (string, bool) {
		if key == "RELEASES_GITHUB_TOKEN" {
			return "s3cret", true
		}
		return "", false
	}
	cred := testerr.Shall1(pub.Credentials(repo)).BeNil(t)
	if cred.User != "octocat" || cred.Token != "s3cret" {
		t.Errorf("resolved credentials %+v", cred)
	}
}

func TestPublishing_LoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	testerr.Shall(os.WriteFile(envFile,
		[]byte("releases.github.user=octocat\nreleases.github.token=s3cret\n"),
		0666,
	)).BeNil(t)

	var pub Publishing
	pub.SetProperty("releases.github.user", "set-first")
	testerr.Shall(pub.LoadDotEnv(
		envFile,
		filepath.Join(dir, "no-such.env"),
	)).BeNil(t)
	if v, _ := pub.Property("releases.github.user"); v != "set-first" {
		t.Errorf("env file overrode property: %s", v)
	}
	if v, _ := pub.Property("releases.github.token"); v != "s3cret" {
		t.Errorf("token not loaded from env file: %s", v)
	}
}

package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/gomkrel/mkchg"
	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func loadTestdata(t *testing.T) *Tree {
	t.Setenv("ACME_RELEASES_URL", "https://api.github.com")
	return testerr.Shall1(Load("testdata/gomkrel.hcl", t.TempDir())).BeNil(t)
}

func TestLoad_tree(t *testing.T) {
	tree := loadTestdata(t)
	var paths []string
	tree.Project.Walk(func(m *gomkrel.Module) error {
		paths = append(paths, m.Path())
		return nil
	})
	want := []string{"core", "core/codec", "cli"}
	if d := cmp.Diff(want, paths); d != "" {
		t.Error(d)
	}
	codec := tree.Project.FindModule("core/codec")
	if codec == nil {
		t.Fatal("module core/codec not resolved")
	}
	if dir := codec.Dir(); dir != "core/enc" {
		t.Errorf("codec dir: %s", dir)
	}
	core := tree.Project.FindModule("core")
	if core.Maturity != gomkrel.Stable {
		t.Errorf("core maturity: %s", core.Maturity)
	}
	if core.Description != "Core data structures" {
		t.Errorf("core description: %s", core.Description)
	}
}

func TestLoad_docs(t *testing.T) {
	tree := loadTestdata(t)
	if tree.RootDoc.Readme == nil {
		t.Fatal("no root document")
	}
	if tree.RootDoc.Readme.Template != "doc/README.tmpl" {
		t.Errorf("root template: %s", tree.RootDoc.Readme.Template)
	}
	core := tree.Project.FindModule("core")
	doc, ok := tree.Docs[core]
	if !ok {
		t.Fatal("no document for module core")
	}
	if doc.Readme.Features.Len() != 1 {
		t.Errorf("core has %d features", doc.Readme.Features.Len())
	}
	f := doc.Readme.Features.Features()[0]
	if f.Key != "fast" || f.Ref != "perf.md" {
		t.Errorf("core feature %+v", f)
	}
	// cli has features but no readme block: document without template
	cli := tree.Project.FindModule("cli")
	doc, ok = tree.Docs[cli]
	if !ok {
		t.Fatal("no document for module cli")
	}
	if doc.Readme.Template != "" {
		t.Errorf("cli template: %s", doc.Readme.Template)
	}
}

func TestLoad_publishing(t *testing.T) {
	tree := loadTestdata(t)
	vcs, ok := tree.Pub.VCS()
	if !ok {
		t.Fatal("VCS not configured from manifest")
	}
	if vcs.Type != "git" || vcs.Branch != "main" {
		t.Errorf("vcs %+v", vcs)
	}
	repo := tree.Pub.FindRepo("releases.github")
	if repo == nil {
		t.Fatal("repository releases.github not registered")
	}
	if repo.URL != "https://api.github.com" {
		t.Errorf("env reference not resolved: %s", repo.URL)
	}
}

func TestLoad_settings(t *testing.T) {
	tree := loadTestdata(t)
	if d := cmp.Diff(
		[]string{"linux/amd64", "windows/amd64"},
		tree.Targets.Strings(),
	); d != "" {
		t.Error(d)
	}
	if tree.Changelog.Path != "CHANGELOG.md" {
		t.Errorf("changelog path: %s", tree.Changelog.Path)
	}
	if tree.Changelog.CompareBase != "https://example.com/acme/tool" {
		t.Errorf("compare base: %s", tree.Changelog.CompareBase)
	}
	if tree.API == nil || tree.API.Baseline != "api-baseline.yaml" {
		t.Errorf("api config: %+v", tree.API)
	}
	if tree.Build == nil || tree.Build.Pkg != "./cmd/tool" || !tree.Build.TrimPath {
		t.Errorf("build config: %+v", tree.Build)
	}
}

func TestTree_SetupTasks(t *testing.T) {
	tree := loadTestdata(t)
	tree.SetupTasks(gomkrel.Must)
	var names []string
	for _, task := range tree.Project.Tasks() {
		names = append(names, task.Name())
	}
	for _, want := range []string{
		"readme:core", "readme:core/codec", "readme:cli", "readme:aggregate",
		"changelog", "api:dump", "api:check", "publish:check",
		"build", "build:linux/amd64", "build:windows/amd64",
	} {
		if !slices.Contains(names, want) {
			t.Errorf("missing task '%s' in %v", want, names)
		}
	}
	agg := tree.Project.FindTask("readme:aggregate")
	deps := agg.DependsOn()
	for _, want := range []string{"readme:core", "readme:core/codec", "readme:cli"} {
		if !slices.Contains(deps, want) {
			t.Errorf("aggregate misses dependency '%s'", want)
		}
	}
}

func TestLoad_changelogSidecar(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, text string) {
		testerr.Shall(os.WriteFile(filepath.Join(dir, name), []byte(text), 0666)).
			BeNil(t)
	}
	writeFile(mkchg.DefaultConfigFile,
		"path: docs/CHANGES.md\ncompareBase: https://example.com/acme/tool\n",
	)

	t.Run("sidecar fills in without a changelog block", func(t *testing.T) {
		writeFile("gomkrel.hcl", "project \"tool\" {\n}\n")
		tree := testerr.Shall1(Load(filepath.Join(dir, "gomkrel.hcl"), dir)).BeNil(t)
		if tree.Changelog.Path != "docs/CHANGES.md" {
			t.Errorf("changelog path: %s", tree.Changelog.Path)
		}
		if tree.Changelog.CompareBase != "https://example.com/acme/tool" {
			t.Errorf("compare base: %s", tree.Changelog.CompareBase)
		}
		tree.SetupTasks(gomkrel.Must)
		if tree.Project.FindTask("changelog") == nil {
			t.Error("sidecar config declared no changelog task")
		}
	})

	t.Run("manifest block wins over the sidecar", func(t *testing.T) {
		writeFile("gomkrel.hcl", "project \"tool\" {\n  changelog {\n  }\n}\n")
		tree := testerr.Shall1(Load(filepath.Join(dir, "gomkrel.hcl"), dir)).BeNil(t)
		if tree.Changelog.Path != mkchg.DefaultPath {
			t.Errorf("changelog path: %s", tree.Changelog.Path)
		}
		if tree.Changelog.CompareBase != "" {
			t.Errorf("compare base: %s", tree.Changelog.CompareBase)
		}
	})
}

func TestLoad_badManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := Load("testdata/no-such.hcl", dir)
	if err == nil {
		t.Error("loading missing manifest succeeded")
	}
}

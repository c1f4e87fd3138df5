// Package manifest loads a declarative project description from an HCL
// file, conventionally gomkrel.hcl in the project root. The manifest
// declares the module tree with descriptions, maturities, README templates
// and features, plus the VCS and publication repositories. Loading yields
// a ready-made [gomkrel.Project] with per-module documents, so build
// scripts and the CLI share one source of truth.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"git.fractalqb.de/fractalqb/gomkrel"
	"git.fractalqb.de/fractalqb/gomkrel/mkchg"
	"git.fractalqb.de/fractalqb/gomkrel/mkdoc"
	"git.fractalqb.de/fractalqb/gomkrel/mkpub"
	"git.fractalqb.de/fractalqb/gomkrel/mktgt"
)

// DefaultFile is the conventional manifest name in the project root.
const DefaultFile = "gomkrel.hcl"

type manifestFile struct {
	Project projectBlock `hcl:"project,block"`
}

type projectBlock struct {
	Name         string            `hcl:"name,label"`
	Description  *string           `hcl:"description"`
	Maturity     *string           `hcl:"maturity"`
	Targets      *string           `hcl:"targets"`
	VCS          *vcsBlock         `hcl:"vcs,block"`
	Repositories []repositoryBlock `hcl:"repository,block"`
	Changelog    *changelogBlock   `hcl:"changelog,block"`
	API          *APIConfig        `hcl:"api,block"`
	Build        *buildBlock       `hcl:"build,block"`
	Readme       *readmeBlock      `hcl:"readme,block"`
	Features     []featureBlock    `hcl:"feature,block"`
	Modules      []moduleBlock     `hcl:"module,block"`
}

type vcsBlock struct {
	Type   string  `hcl:"type"`
	URL    string  `hcl:"url"`
	Branch *string `hcl:"branch"`
}

type repositoryBlock struct {
	Namespace string `hcl:"namespace,label"`
	Name      string `hcl:"name,label"`
	URL       string `hcl:"url"`
}

type changelogBlock struct {
	Path        *string `hcl:"path"`
	CompareBase *string `hcl:"compare_base"`
}

// APIConfig mirrors the manifest's api block for baseline dump and check.
type APIConfig struct {
	Baseline string   `hcl:"baseline"`
	Patterns []string `hcl:"patterns,optional"`
}

type buildBlock struct {
	Pkg      string   `hcl:"pkg"`
	Dist     *string  `hcl:"dist"`
	TrimPath *bool    `hcl:"trimpath"`
	LDFlags  []string `hcl:"ldflags,optional"`
}

type readmeBlock struct {
	Template   string          `hcl:"template"`
	Inputs     []string        `hcl:"inputs,optional"`
	Output     *string         `hcl:"output"`
	Properties []propertyBlock `hcl:"property,block"`
}

type propertyBlock struct {
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

type featureBlock struct {
	Key  string  `hcl:"key,label"`
	Text string  `hcl:"text"`
	Ref  *string `hcl:"ref"`
}

type moduleBlock struct {
	Name        string         `hcl:"name,label"`
	Dir         *string        `hcl:"dir"`
	Description *string        `hcl:"description"`
	Maturity    *string        `hcl:"maturity"`
	Readme      *readmeBlock   `hcl:"readme,block"`
	Features    []featureBlock `hcl:"feature,block"`
	Modules     []moduleBlock  `hcl:"module,block"`
}

// Doc pairs a module's README document with its configured output path.
type Doc struct {
	Readme *mkdoc.Readme
	Out    string
}

// Tree is the loaded manifest, resolved into the gomkrel types.
type Tree struct {
	Project *gomkrel.Project
	// RootDoc is the aggregated root document of the project, absent when
	// the manifest declares no project-level readme block.
	RootDoc Doc
	// Docs holds the README document of each module that declares one.
	Docs map[*gomkrel.Module]Doc
	// Targets is the release matrix, DefaultMatrix when not configured.
	Targets mktgt.Matrix
	// Changelog is set up from the manifest's changelog block, zero Path
	// when the manifest has none.
	Changelog mkchg.Config
	// API is nil when the manifest has no api block.
	API *APIConfig
	// Build is nil when the manifest has no build block.
	Build *mktgt.Build
	Pub   *mkpub.Publishing
	// File is the manifest path relative to the project root, empty when
	// the manifest lies outside of it. Document tasks take it as an input
	// so that manifest edits make them stale.
	File string
}

// Load reads the manifest file and resolves it against dir as project root.
// Empty dir means the manifest's directory. Expressions in the manifest may
// reference the process environment as env.NAME.
func Load(file, dir string) (*Tree, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse manifest %s: %w", file, diags)
	}
	var mf manifestFile
	if diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &mf); diags.HasErrors() {
		return nil, fmt.Errorf("decode manifest %s: %w", file, diags)
	}
	if dir == "" {
		dir = filepath.Dir(file)
	}
	tree, err := resolve(&mf, dir)
	if err != nil {
		return nil, err
	}
	if rel, err := filepath.Rel(dir, file); err == nil && !strings.HasPrefix(rel, "..") {
		tree.File = filepath.ToSlash(rel)
	}
	return tree, nil
}

// evalContext exposes the process environment as env.NAME.
func evalContext() *hcl.EvalContext {
	envVals := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			envVals[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{
		"env": cty.ObjectVal(envVals),
	}}
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func resolve(mf *manifestFile, dir string) (*Tree, error) {
	tree := &Tree{
		Project: gomkrel.NewProject(dir),
		Docs:    make(map[*gomkrel.Module]Doc),
		Targets: mktgt.DefaultMatrix(),
		Pub:     new(mkpub.Publishing),
	}
	prj := mf.Project
	if prj.Targets != nil {
		m, err := mktgt.ParseMatrix(*prj.Targets)
		if err != nil {
			return nil, err
		}
		tree.Targets = m
	}
	if prj.VCS != nil {
		vcs := mkpub.VCS{Type: prj.VCS.Type, URL: prj.VCS.URL}
		if prj.VCS.Branch != nil {
			vcs.Branch = *prj.VCS.Branch
		}
		tree.Pub.ConfigureVCS(vcs)
	}
	for _, rb := range prj.Repositories {
		if _, err := tree.Pub.Repository(rb.Namespace, rb.Name, rb.URL); err != nil {
			return nil, err
		}
	}
	switch side := filepath.Join(dir, mkchg.DefaultConfigFile); {
	case prj.Changelog != nil:
		tree.Changelog.Path = mkchg.DefaultPath
		if prj.Changelog.Path != nil {
			tree.Changelog.Path = *prj.Changelog.Path
		}
		if prj.Changelog.CompareBase != nil {
			tree.Changelog.CompareBase = *prj.Changelog.CompareBase
		}
	case fileExists(side):
		cfg, err := mkchg.LoadConfig(side)
		if err != nil {
			return nil, err
		}
		tree.Changelog = cfg
	}
	tree.API = prj.API
	if prj.Build != nil {
		b := &mktgt.Build{Pkg: prj.Build.Pkg, LDFlags: prj.Build.LDFlags}
		if prj.Build.Dist != nil {
			b.Dist = *prj.Build.Dist
		}
		if prj.Build.TrimPath != nil {
			b.TrimPath = *prj.Build.TrimPath
		}
		tree.Build = b
	}
	if prj.Readme != nil {
		doc, err := makeDoc(prj.Readme, prj.Features, prj.Description, prj.Maturity)
		if err != nil {
			return nil, fmt.Errorf("project '%s': %w", prj.Name, err)
		}
		tree.RootDoc = doc
	}
	for _, mb := range prj.Modules {
		if err := resolveModule(tree, nil, mb); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func resolveModule(tree *Tree, parent *gomkrel.Module, mb moduleBlock) error {
	dir := ""
	if mb.Dir != nil {
		dir = *mb.Dir
	}
	var mod *gomkrel.Module
	if parent == nil {
		mod = tree.Project.Module(mb.Name, dir)
	} else {
		mod = parent.Module(mb.Name, dir)
	}
	if mb.Description != nil {
		mod.Description = *mb.Description
	}
	if mb.Maturity != nil {
		mat, err := gomkrel.ParseMaturity(*mb.Maturity)
		if err != nil {
			return fmt.Errorf("module '%s': %w", mod.Path(), err)
		}
		mod.Maturity = mat
	}
	if mb.Readme != nil || len(mb.Features) > 0 {
		doc, err := makeDoc(mb.Readme, mb.Features, nil, nil)
		if err != nil {
			return fmt.Errorf("module '%s': %w", mod.Path(), err)
		}
		doc.Readme.Description = mod.Description
		doc.Readme.Maturity = mod.Maturity
		tree.Docs[mod] = doc
	}
	for _, sub := range mb.Modules {
		if err := resolveModule(tree, mod, sub); err != nil {
			return err
		}
	}
	return nil
}

func makeDoc(
	rb *readmeBlock,
	feats []featureBlock,
	description, maturity *string,
) (Doc, error) {
	doc := Doc{Readme: new(mkdoc.Readme)}
	if rb != nil {
		doc.Readme.Template = rb.Template
		doc.Readme.Inputs = rb.Inputs
		if rb.Output != nil {
			doc.Out = *rb.Output
		}
		for _, pb := range rb.Properties {
			doc.Readme.Property(pb.Name, pb.Value)
		}
	}
	if description != nil {
		doc.Readme.Description = *description
	}
	if maturity != nil {
		mat, err := gomkrel.ParseMaturity(*maturity)
		if err != nil {
			return doc, err
		}
		doc.Readme.Maturity = mat
	}
	if len(feats) > 0 {
		reg := new(mkdoc.Registry)
		for _, fb := range feats {
			if fb.Ref != nil {
				reg.RegisterRef(fb.Key, fb.Text, *fb.Ref)
			} else {
				reg.Register(fb.Key, fb.Text)
			}
		}
		doc.Readme.Features = reg
	}
	return doc, nil
}

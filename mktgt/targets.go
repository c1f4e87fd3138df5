// Package mktgt describes the compilation targets of a multi-platform
// release: which GOOS/GOARCH pairs to build, with which environment and
// which artefact names. The package only computes settings; running the
// compiler with them stays with the build script or host engine.
package mktgt

import (
	"fmt"
	"strings"
)

// A Target is one os/arch pair a release is built for.
type Target struct {
	OS   string
	Arch string
	// CGO enables cgo for this target. Cross-compiled release targets
	// usually keep it off.
	CGO bool
}

func (t Target) String() string { return t.OS + "/" + t.Arch }

// ExeSuffix returns the executable suffix of the target platform.
func (t Target) ExeSuffix() string {
	if t.OS == "windows" {
		return ".exe"
	}
	return ""
}

// Env returns the environment settings that select the target for the Go
// toolchain, ready for a task's environment change set.
func (t Target) Env() map[string]string {
	cgo := "0"
	if t.CGO {
		cgo = "1"
	}
	return map[string]string{
		"GOOS":        t.OS,
		"GOARCH":      t.Arch,
		"CGO_ENABLED": cgo,
	}
}

// ArtefactName derives the conventional release artefact name for base,
// e.g. "mytool-linux-amd64" or "mytool-windows-amd64.exe".
func (t Target) ArtefactName(base string) string {
	return base + "-" + t.OS + "-" + t.Arch + t.ExeSuffix()
}

// A Matrix is the ordered list of targets of one release. Order is build
// order; duplicates are dropped on Add.
type Matrix []Target

// DefaultMatrix returns the targets a typical Go tool releases for.
func DefaultMatrix() Matrix {
	return Matrix{
		{OS: "linux", Arch: "amd64"},
		{OS: "linux", Arch: "arm64"},
		{OS: "darwin", Arch: "amd64"},
		{OS: "darwin", Arch: "arm64"},
		{OS: "windows", Arch: "amd64"},
	}
}

// ParseMatrix reads a comma-separated target list like
// "linux/amd64,windows/amd64".
func ParseMatrix(s string) (Matrix, error) {
	var m Matrix
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		osName, arch, ok := strings.Cut(part, "/")
		if !ok || osName == "" || arch == "" {
			return nil, fmt.Errorf("illegal target '%s'", part)
		}
		m = m.Add(Target{OS: osName, Arch: arch})
	}
	return m, nil
}

// Add appends t unless the matrix already contains its os/arch pair.
func (m Matrix) Add(t Target) Matrix {
	for _, have := range m {
		if have.OS == t.OS && have.Arch == t.Arch {
			return m
		}
	}
	return append(m, t)
}

func (m Matrix) Strings() []string {
	ss := make([]string, len(m))
	for i, t := range m {
		ss[i] = t.String()
	}
	return ss
}

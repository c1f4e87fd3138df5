// Package mkchg keeps the changelog of a project in the common
// keep-a-changelog shape: a preamble, an Unreleased section collecting
// changes by kind, and one section per released version. The package parses
// and rewrites the file structurally, so a changelog that went through mkchg
// once stays normalized afterwards.
package mkchg

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Kind classifies one changelog entry.
type Kind int

const (
	Added Kind = iota
	Changed
	Deprecated
	Removed
	Fixed
	Security

	KindCount = int(Security) + 1
)

var kindNames = []string{
	"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security",
}

func (k Kind) String() string {
	if k < Added || int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	t := strings.TrimSpace(s)
	for i, n := range kindNames {
		if strings.EqualFold(n, t) {
			return Kind(i), nil
		}
	}
	return Added, fmt.Errorf("unknown change kind '%s'", s)
}

// Sections holds the entries of one release, by kind, in entry order.
type Sections [KindCount][]string

func (s *Sections) Empty() bool {
	for _, es := range s {
		if len(es) > 0 {
			return false
		}
	}
	return true
}

// A Release is one versioned section of the changelog.
type Release struct {
	Version string
	// Date is the release date as YYYY-MM-DD.
	Date   string
	Yanked bool
	// Notes are free-text lines before the first kind sub-heading.
	Notes    []string
	Sections Sections
}

// A Changelog is the parsed model of one CHANGELOG.md file. The zero value
// is an empty changelog with the default preamble.
type Changelog struct {
	// Preamble is everything before the Unreleased heading. Empty means
	// [DefaultPreamble].
	Preamble string

	Unreleased Sections

	// Releases are ordered newest first, as in the file.
	Releases []*Release

	// CompareBase is the base URL for version compare links, e.g.
	// "https://git.example.org/prj". When set, the writer appends link
	// references for Unreleased and every release.
	CompareBase string
}

const DefaultPreamble = `# Changelog

All notable changes to this project are documented in this file. The format
is based on Keep a Changelog.
`

// Add appends an entry to the Unreleased section.
func (cl *Changelog) Add(k Kind, text string) {
	cl.Unreleased[k] = append(cl.Unreleased[k], text)
}

// Find returns the release with the given version, nil if there is none.
func (cl *Changelog) Find(version string) *Release {
	for _, r := range cl.Releases {
		if r.Version == version {
			return r
		}
	}
	return nil
}

// Cut promotes the Unreleased section to a new release, newest first, and
// resets Unreleased. Cutting without unreleased changes, or with a version
// that was released before, is a configuration error.
func (cl *Changelog) Cut(version string, date time.Time) (*Release, error) {
	if cl.Unreleased.Empty() {
		return nil, fmt.Errorf(
			"cutting release %s without unreleased changes: add entries before cutting",
			version,
		)
	}
	if r := cl.Find(version); r != nil {
		return nil, fmt.Errorf("version %s was already released on %s", version, r.Date)
	}
	rel := &Release{
		Version:  version,
		Date:     date.Format("2006-01-02"),
		Sections: cl.Unreleased,
	}
	cl.Releases = append([]*Release{rel}, cl.Releases...)
	cl.Unreleased = Sections{}
	return rel, nil
}

// WriteTo writes the normalized changelog text.
func (cl *Changelog) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	pre := cl.Preamble
	if pre == "" {
		pre = DefaultPreamble
	}
	sb.WriteString(strings.TrimRight(pre, "\n"))
	sb.WriteString("\n\n## [Unreleased]\n")
	writeSections(&sb, &cl.Unreleased)
	for _, r := range cl.Releases {
		fmt.Fprintf(&sb, "\n## [%s] - %s", r.Version, r.Date)
		if r.Yanked {
			sb.WriteString(" [YANKED]")
		}
		sb.WriteByte('\n')
		for _, n := range r.Notes {
			sb.WriteString("\n")
			sb.WriteString(n)
			sb.WriteString("\n")
		}
		writeSections(&sb, &r.Sections)
	}
	if cl.CompareBase != "" {
		sb.WriteByte('\n')
		for _, l := range cl.CompareLinks() {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// CompareLinks returns the link-reference lines for CompareBase: Unreleased
// against the newest release (or HEAD only, without releases), each release
// against its predecessor, the oldest against its tag.
func (cl *Changelog) CompareLinks() (links []string) {
	base := strings.TrimRight(cl.CompareBase, "/")
	if base == "" {
		return nil
	}
	if len(cl.Releases) == 0 {
		return []string{fmt.Sprintf("[Unreleased]: %s", base)}
	}
	links = append(links, fmt.Sprintf("[Unreleased]: %s/compare/v%s...HEAD",
		base, cl.Releases[0].Version,
	))
	for i, r := range cl.Releases {
		if i+1 < len(cl.Releases) {
			links = append(links, fmt.Sprintf("[%s]: %s/compare/v%s...v%s",
				r.Version, base, cl.Releases[i+1].Version, r.Version,
			))
		} else {
			links = append(links, fmt.Sprintf("[%s]: %s/releases/tag/v%s",
				r.Version, base, r.Version,
			))
		}
	}
	return links
}

func writeSections(sb *strings.Builder, s *Sections) {
	for k, entries := range s {
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(sb, "\n### %s\n\n", Kind(k))
		for _, e := range entries {
			sb.WriteString("- ")
			sb.WriteString(e)
			sb.WriteByte('\n')
		}
	}
}

package mkapi

import (
	"fmt"
	"slices"
	"strings"
)

// Delta is the difference between two API surfaces. Removed symbols break
// compiled consumers; added symbols are compatible.
type Delta struct {
	Removed Surface
	Added   Surface
}

// Diff compares the current surface against a baseline.
func Diff(baseline, current Surface) (d Delta) {
	d.Removed, d.Added = make(Surface), make(Surface)
	for path, old := range baseline {
		cur := current[path]
		for _, sym := range old {
			if !slices.Contains(cur, sym) {
				d.Removed[path] = append(d.Removed[path], sym)
			}
		}
	}
	for path, cur := range current {
		old := baseline[path]
		for _, sym := range cur {
			if !slices.Contains(old, sym) {
				d.Added[path] = append(d.Added[path], sym)
			}
		}
	}
	return d
}

func (d Delta) Empty() bool { return len(d.Removed) == 0 && len(d.Added) == 0 }

// Breaking reports whether the delta removes anything from the baseline.
func (d Delta) Breaking() bool { return len(d.Removed) > 0 }

func (d Delta) String() string {
	var sb strings.Builder
	writeDelta(&sb, "removed", d.Removed)
	writeDelta(&sb, "added", d.Added)
	return sb.String()
}

func writeDelta(sb *strings.Builder, what string, sur Surface) {
	paths := make([]string, 0, len(sur))
	for p := range sur {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		for _, sym := range sur[p] {
			fmt.Fprintf(sb, "%s %s: %s\n", what, p, sym)
		}
	}
}

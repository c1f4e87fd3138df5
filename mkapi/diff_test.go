package mkapi

import (
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	baseline := Surface{
		"example.org/lib": {
			"func Decode(data []byte) error",
			"type Codec struct{}",
		},
		"example.org/lib/sub": {"func Gone()"},
	}
	current := Surface{
		"example.org/lib": {
			"func Decode(data []byte) error",
			"func Encode(v any) ([]byte, error)",
			"type Codec struct{}",
		},
	}

	d := Diff(baseline, current)
	if !d.Breaking() {
		t.Error("removal not reported as breaking")
	}
	wantRemoved := Surface{"example.org/lib/sub": {"func Gone()"}}
	if diff := cmp.Diff(wantRemoved, d.Removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
	wantAdded := Surface{"example.org/lib": {"func Encode(v any) ([]byte, error)"}}
	if diff := cmp.Diff(wantAdded, d.Added); diff != "" {
		t.Errorf("added (-want +got):\n%s", diff)
	}
	if !strings.Contains(d.String(), "removed example.org/lib/sub: func Gone()") {
		t.Errorf("delta text:\n%s", d)
	}
}

func TestDiff_identicalSurfacesAreEmpty(t *testing.T) {
	sur := Surface{"example.org/lib": {"func F()"}}
	if d := Diff(sur, sur); !d.Empty() {
		t.Errorf("delta of identical surfaces: %s", d)
	}
}

func TestBaseline_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	sur := Surface{
		"example.org/lib": {"func F()", "type T struct{N int}"},
	}
	testerr.Shall(SaveBaseline(path, sur)).BeNil(t)
	got := testerr.Shall1(LoadBaseline(path)).BeNil(t)
	if diff := cmp.Diff(sur, got); diff != "" {
		t.Errorf("baseline round trip (-want +got):\n%s", diff)
	}
}

func TestLoadBaseline_missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	testerr.Shall1(LoadBaseline(path)).Check(t, testerr.Msg(
		"api baseline "+path+" does not exist: dump a baseline before checking",
	))
}

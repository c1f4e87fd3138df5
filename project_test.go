package gomkrel

import (
	"testing"
)

func TestProject_moduleTree(t *testing.T) {
	prj := NewProject(t.Name())
	core := prj.Module("core", "")
	codec := core.Module("codec", "internal/codec")
	net := prj.Module("net", "")

	t.Run("declaration order", func(t *testing.T) {
		var got []string
		prj.Walk(func(m *Module) error {
			got = append(got, m.Path())
			return nil
		})
		want := []string{"core", "core/codec", "net"}
		if len(got) != len(want) {
			t.Fatalf("walked %d modules, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("module %d: got %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("same name yields same module", func(t *testing.T) {
		if prj.Module("core", "elsewhere") != core {
			t.Error("re-adding 'core' created a second module")
		}
		if len(prj.Modules()) != 2 {
			t.Errorf("project has %d top-level modules", len(prj.Modules()))
		}
	})

	t.Run("dirs", func(t *testing.T) {
		if d := codec.Dir(); d != "core/internal/codec" {
			t.Errorf("codec dir: %s", d)
		}
		if d := net.Dir(); d != "net" {
			t.Errorf("net dir defaults to name, got %s", d)
		}
	})

	t.Run("find by path", func(t *testing.T) {
		if m := prj.FindModule("core/codec"); m != codec {
			t.Errorf("found %v", m)
		}
		if m := prj.FindModule("core/nosuch"); m != nil {
			t.Errorf("found unexpected module %s", m.Path())
		}
	})
}

func TestMaturity(t *testing.T) {
	var m Maturity
	if m.String() != "EXPERIMENTAL" {
		t.Errorf("zero maturity renders as %s", m)
	}
	if Maturity(99).String() != "EXPERIMENTAL" {
		t.Error("out-of-range maturity must fall back to EXPERIMENTAL")
	}
	p, err := ParseMaturity("stable")
	if err != nil {
		t.Fatal(err)
	}
	if p != Stable {
		t.Errorf("parsed %s", p)
	}
	if _, err = ParseMaturity("rock-solid"); err == nil {
		t.Error("no error for unknown maturity")
	}
}

package mkdoc

import (
	"strings"
	"testing"
)

func TestRegistry_emptySerializesEmpty(t *testing.T) {
	var r Registry
	if s := r.Serialize(DefaultItemPrefix, ""); s != "" {
		t.Errorf("empty registry serialized to %q", s)
	}
	var nilReg *Registry
	if s := nilReg.Serialize(DefaultItemPrefix, ""); s != "" {
		t.Errorf("nil registry serialized to %q", s)
	}
}

func TestRegistry_registerAndOverwrite(t *testing.T) {
	var r Registry
	r.Register("fast", "O(1) lookup")
	s := r.Serialize(DefaultItemPrefix, "")
	if s != "- fast : O(1) lookup" {
		t.Fatalf("serialized %q", s)
	}

	t.Run("overwrite keeps position, adds no line", func(t *testing.T) {
		r.Register("safe", "no panics")
		r.Register("fast", "O(1) amortized")
		s := r.Serialize(DefaultItemPrefix, "")
		want := "- fast : O(1) amortized\n- safe : no panics"
		if s != want {
			t.Errorf("serialized\n%q\nwant\n%q", s, want)
		}
		if n := strings.Count(s, "fast"); n != 1 {
			t.Errorf("'fast' occurs %d times", n)
		}
	})
}

func TestRegistry_refLinks(t *testing.T) {
	var r Registry
	r.RegisterRef("safe", "no null derefs", "safety.md")
	if s := r.Serialize(DefaultItemPrefix, ""); s != "- [safe](safety.md) : no null derefs" {
		t.Errorf("serialized %q", s)
	}
	if s := r.Serialize("* ", "core/"); s != "* [safe](core/safety.md) : no null derefs" {
		t.Errorf("with prefixes: %q", s)
	}
}

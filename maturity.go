package gomkrel

import (
	"fmt"
	"strings"
)

// Maturity is a coarse stability classification of a [Module]. The zero value
// is [Experimental], i.e. a module that never states its maturity is
// advertised as EXPERIMENTAL rather than not at all.
type Maturity int

const (
	Experimental Maturity = iota
	Alpha
	Beta
	Stable
	Deprecated
)

var maturityNames = []string{
	"EXPERIMENTAL",
	"ALPHA",
	"BETA",
	"STABLE",
	"DEPRECATED",
}

// String returns the upper-case maturity label. Out-of-range values fall back
// to the EXPERIMENTAL label.
func (m Maturity) String() string {
	if m < Experimental || int(m) >= len(maturityNames) {
		return maturityNames[Experimental]
	}
	return maturityNames[m]
}

// ParseMaturity converts a case-insensitive maturity label to its [Maturity]
// value.
func ParseMaturity(s string) (Maturity, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range maturityNames {
		if n == u {
			return Maturity(i), nil
		}
	}
	return Experimental, fmt.Errorf("unknown maturity '%s'", s)
}

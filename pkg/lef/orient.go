package lef

import (
	"fmt"
	"strings"
)

// Orient is a LEF orientation code. OrientNone marks "not specified".
type Orient int

const (
	OrientNone Orient = -1
	OrientN    Orient = 0
	OrientW    Orient = 1
	OrientS    Orient = 2
	OrientE    Orient = 3
	OrientFN   Orient = 4
	OrientFW   Orient = 5
	OrientFS   Orient = 6
	OrientFE   Orient = 7
)

var orientNames = [...]string{"N", "W", "S", "E", "FN", "FW", "FS", "FE"}

// String returns N, W, S, E, FN, FW, FS or FE, and "" for OrientNone or an
// unknown code.
func (o Orient) String() string {
	if o < 0 || int(o) >= len(orientNames) {
		return ""
	}
	return orientNames[o]
}

// Valid reports whether o is one of the eight defined orientations.
func (o Orient) Valid() bool {
	return o >= OrientN && o <= OrientFE
}

// ParseOrient maps an orientation keyword to its code. The R-style aliases
// (R0, R90, R180, R270, MY, MX, MXR90, MYR90) are accepted too.
func ParseOrient(s string) (Orient, error) {
	switch strings.ToUpper(s) {
	case "N", "R0":
		return OrientN, nil
	case "W", "R90":
		return OrientW, nil
	case "S", "R180":
		return OrientS, nil
	case "E", "R270":
		return OrientE, nil
	case "FN", "MY":
		return OrientFN, nil
	case "FW", "MX90", "MXR90":
		return OrientFW, nil
	case "FS", "MX":
		return OrientFS, nil
	case "FE", "MY90", "MYR90":
		return OrientFE, nil
	}
	return OrientNone, fmt.Errorf("lef: unknown orientation %q", s)
}

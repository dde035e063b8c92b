package array

import (
	"strconv"
	"strings"
)

// Mask is a fixed-length boolean array, produced by elementwise comparisons.
type Mask []bool

func (m Mask) Len() int { return len(m) }

func (m Mask) At(i int) (bool, error) {
	if i < 0 || i >= len(m) {
		return false, indexError(i, len(m))
	}
	return m[i], nil
}

// All is true when every element is true. An empty mask is all-true.
func (m Mask) All() bool {
	for _, b := range m {
		if !b {
			return false
		}
	}
	return true
}

func (m Mask) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

func (m Mask) And(o Mask) Mask {
	mustMatch("And", len(m), len(o))
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && o[i]
	}
	return out
}

func (m Mask) Or(o Mask) Mask {
	mustMatch("Or", len(m), len(o))
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] || o[i]
	}
	return out
}

func (m Mask) Not() Mask {
	out := make(Mask, len(m))
	for i := range m {
		out[i] = !m[i]
	}
	return out
}

func (m Mask) String() string {
	parts := make([]string, len(m))
	for i, b := range m {
		parts[i] = strconv.FormatBool(b)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

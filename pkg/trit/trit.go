package trit

import (
	"fmt"
	"strings"
)

// Trit is a value of three-valued (Kleene) logic. The zero value is False.
type Trit uint8

const (
	False Trit = iota
	Neutral
	True
)

// All lists the domain in ascending order.
var All = []Trit{False, Neutral, True}

// Valid reports whether t is one of False, Neutral or True.
func (t Trit) Valid() bool {
	return t <= True
}

func (t Trit) String() string {
	switch t {
	case False:
		return "False"
	case Neutral:
		return "Neutral"
	case True:
		return "True"
	}
	return fmt.Sprintf("Trit(%d)", uint8(t))
}

// Int returns the canonical integer mapping 0, 1 or 2.
func (t Trit) Int() int {
	return int(t)
}

// FromInt maps 0, 1 and 2 onto the domain.
func FromInt(i int) (Trit, error) {
	if i < 0 || i > 2 {
		return False, fmt.Errorf("%d is not a trit", i)
	}
	return Trit(i), nil
}

// Next cycles False -> Neutral -> True -> False.
func (t Trit) Next() Trit {
	return Trit((t + 1) % 3)
}

// Parse accepts 0/1/2, f/n/t and the full names, case-insensitively.
func Parse(s string) (Trit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "f", "false":
		return False, nil
	case "1", "n", "neutral":
		return Neutral, nil
	case "2", "t", "true":
		return True, nil
	}
	return False, fmt.Errorf("invalid trit %q", s)
}

// Ptr returns a pointer to a copy of t.
func Ptr(t Trit) *Trit {
	return &t
}

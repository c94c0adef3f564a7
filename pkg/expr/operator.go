package expr

import (
	"fmt"
	"strings"

	"github.com/expedition0/lumen/pkg/trit"
)

// Operator selects the function applied by an OperatorSlot.
type Operator uint8

const (
	NOT Operator = iota
	AND
	OR
	XOR
	IMPLY
	PLUS
	MINUS
	NAND
	NOR
	EQUIV
	IMPLY_LUK
)

var operatorNames = [...]string{
	NOT:       "NOT",
	AND:       "AND",
	OR:        "OR",
	XOR:       "XOR",
	IMPLY:     "IMPLY",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	NAND:      "NAND",
	NOR:       "NOR",
	EQUIV:     "EQUIV",
	IMPLY_LUK: "IMPLY_LUK",
}

// DefaultPalette is the set of operators a player can cycle through on an
// unlocked operator slot.
var DefaultPalette = []Operator{NOT, AND, OR, XOR}

// LogicOperators lists every operator Evaluate supports.
var LogicOperators = []Operator{NOT, AND, OR, XOR, IMPLY, NAND, NOR, EQUIV, IMPLY_LUK}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// ParseOperator is the inverse of String, case-insensitive.
func ParseOperator(s string) (Operator, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range operatorNames {
		if n == name {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Arity is 1 for NOT and 2 for everything else.
func (op Operator) Arity() int {
	if op == NOT {
		return 1
	}
	return 2
}

// Logical is false for the arithmetic placeholders PLUS and MINUS.
func (op Operator) Logical() bool {
	return op != PLUS && op != MINUS && int(op) < len(operatorNames)
}

// Apply evaluates op over already evaluated operands; b is ignored for NOT.
func (op Operator) Apply(a, b trit.Trit) (trit.Trit, error) {
	switch op {
	case NOT:
		return trit.Not(a), nil
	case AND:
		return trit.And(a, b), nil
	case OR:
		return trit.Or(a, b), nil
	case XOR:
		return trit.Xor(a, b), nil
	case IMPLY:
		return trit.ImplyKleene(a, b), nil
	case NAND:
		return trit.Nand(a, b), nil
	case NOR:
		return trit.Nor(a, b), nil
	case EQUIV:
		return trit.Equiv(a, b), nil
	case IMPLY_LUK:
		return trit.ImplyLukasiewicz(a, b), nil
	}
	return trit.False, &UnsupportedOperatorError{Operator: op}
}

package expr

import (
	"github.com/expedition0/lumen/pkg/trit"
)

// Evaluate computes the value of the tree rooted at n.
//
// An unfilled slot yields an *UnfilledSlotError and PLUS or MINUS yields an
// *UnsupportedOperatorError; neither is ever replaced by a default value.
// Both operands of a binary operator are always evaluated, and the first
// failure in left-to-right order is reported. A binary operator with a
// missing operand (a unary node cycled to a binary operator) reports an
// *UnfilledSlotError for the operator slot itself.
func Evaluate(n Node) (trit.Trit, error) {
	switch s := n.(type) {
	case *ValueSlot:
		if !s.filled {
			return trit.False, &UnfilledSlotError{Slot: s}
		}
		return s.value, nil
	case *OperatorSlot:
		return s.evaluate()
	}
	return trit.False, &UnfilledSlotError{Slot: n}
}

func (s *OperatorSlot) evaluate() (trit.Trit, error) {
	if !s.filled {
		return trit.False, &UnfilledSlotError{Slot: s}
	}
	if !s.op.Logical() {
		return trit.False, &UnsupportedOperatorError{Operator: s.op}
	}

	if s.op.Arity() == 1 {
		a, err := evaluateOperand(s, s.Left)
		if err != nil {
			return trit.False, err
		}
		return s.op.Apply(a, trit.False)
	}

	a, errA := evaluateOperand(s, s.Left)
	b, errB := evaluateOperand(s, s.Right)
	if errA != nil {
		return trit.False, errA
	}
	if errB != nil {
		return trit.False, errB
	}
	return s.op.Apply(a, b)
}

func evaluateOperand(parent *OperatorSlot, child Node) (trit.Trit, error) {
	if child == nil {
		return trit.False, &UnfilledSlotError{Slot: parent}
	}
	return Evaluate(child)
}

// Walk visits every node of the tree in pre-order: a node before its
// children, left before right.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	if s, ok := n.(*OperatorSlot); ok {
		Walk(s.Left, fn)
		Walk(s.Right, fn)
	}
}

package template

import (
	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/trit"
)

// V returns a pointer to t, for the optional locked values the factories
// accept. A nil value leaves the leaf open for the player.
func V(t trit.Trit) *trit.Trit {
	return trit.Ptr(t)
}

func leaf(v *trit.Trit) *expr.ValueSlot {
	s := expr.NewValue()
	if v != nil {
		s.Lock(*v)
	}
	return s
}

func operator(op expr.Operator, lock bool, left, right expr.Node) *expr.OperatorSlot {
	s := expr.NewOperator(left, right)
	if lock {
		s.Lock(op)
	} else {
		// an unlocked slot is never locked, so Set cannot fail here
		_ = s.Set(op)
	}
	return s
}

// Unary returns NOT(v) = answer.
func Unary(answer trit.Trit, lockOperator bool, value *trit.Trit) *expr.Template {
	return expr.NewTemplate(operator(expr.NOT, lockOperator, leaf(value), nil), answer)
}

// Binary returns op(left, right) = answer.
func Binary(op expr.Operator, answer trit.Trit, lockOperator bool, left, right *trit.Trit) *expr.Template {
	return expr.NewTemplate(operator(op, lockOperator, leaf(left), leaf(right)), answer)
}

// TripleLeftAssoc returns outerOp(innerOp(v1, v2), v3) = answer,
// e.g. AND(OR(v1, v2), v3).
func TripleLeftAssoc(innerOp, outerOp expr.Operator, answer trit.Trit, lockOperators bool, v1, v2, v3 *trit.Trit) *expr.Template {
	inner := operator(innerOp, lockOperators, leaf(v1), leaf(v2))
	outer := operator(outerOp, lockOperators, inner, leaf(v3))
	return expr.NewTemplate(outer, answer)
}

// TripleRightAssoc returns outerOp(v1, innerOp(v2, v3)) = answer,
// e.g. OR(v1, AND(v2, v3)).
func TripleRightAssoc(outerOp, innerOp expr.Operator, answer trit.Trit, lockOperators bool, v1, v2, v3 *trit.Trit) *expr.Template {
	first := leaf(v1)
	inner := operator(innerOp, lockOperators, leaf(v2), leaf(v3))
	outer := operator(outerOp, lockOperators, first, inner)
	return expr.NewTemplate(outer, answer)
}

// ComplexBinary returns rootOp(leftOp(v1, v2), rightOp(v3, v4)) = answer.
func ComplexBinary(leftOp, rightOp, rootOp expr.Operator, answer trit.Trit, lockOperators bool, v1, v2, v3, v4 *trit.Trit) *expr.Template {
	left := operator(leftOp, lockOperators, leaf(v1), leaf(v2))
	right := operator(rightOp, lockOperators, leaf(v3), leaf(v4))
	root := operator(rootOp, lockOperators, left, right)
	return expr.NewTemplate(root, answer)
}

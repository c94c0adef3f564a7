package solver

import (
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/trit"
)

// tritLits encodes a trit t as the pair of literals (t >= Neutral, t >= True).
// Every well-formed pair satisfies ge2 -> ge1.
type tritLits struct {
	ge1, ge2 z.Lit
}

type choice struct {
	op  expr.Operator
	sel z.Lit
}

// circuit translates an expression tree into a gini logic circuit over
// order-encoded trits.
type circuit struct {
	c          *logic.C
	palette    []expr.Operator
	values     map[*expr.ValueSlot]tritLits
	choices    map[*expr.OperatorSlot][]choice
	assertions []z.Lit
	// free holds every literal whose model value determines the assignment
	// of an open slot.
	free []z.Lit
}

func newCircuit(palette []expr.Operator) *circuit {
	return &circuit{
		c:       logic.NewC(),
		palette: palette,
		values:  map[*expr.ValueSlot]tritLits{},
		choices: map[*expr.OperatorSlot][]choice{},
	}
}

func (e *circuit) constant(t trit.Trit) tritLits {
	switch t {
	case trit.False:
		return tritLits{e.c.F, e.c.F}
	case trit.Neutral:
		return tritLits{e.c.T, e.c.F}
	}
	return tritLits{e.c.T, e.c.T}
}

func (e *circuit) not(a tritLits) tritLits {
	return tritLits{a.ge2.Not(), a.ge1.Not()}
}

func (e *circuit) and(a, b tritLits) tritLits {
	return tritLits{e.c.And(a.ge1, b.ge1), e.c.And(a.ge2, b.ge2)}
}

func (e *circuit) or(a, b tritLits) tritLits {
	return tritLits{e.c.Or(a.ge1, b.ge1), e.c.Or(a.ge2, b.ge2)}
}

func (e *circuit) implies(a, b z.Lit) z.Lit {
	return e.c.Or(a.Not(), b)
}

// apply builds the gates for op over already encoded operands. It mirrors
// the definitions in package trit.
func (e *circuit) apply(op expr.Operator, a, b tritLits) (tritLits, error) {
	switch op {
	case expr.NOT:
		return e.not(a), nil
	case expr.AND:
		return e.and(a, b), nil
	case expr.OR:
		return e.or(a, b), nil
	case expr.XOR:
		return e.or(e.and(a, e.not(b)), e.and(e.not(a), b)), nil
	case expr.IMPLY:
		return e.or(e.not(a), b), nil
	case expr.NAND:
		return e.not(e.and(a, b)), nil
	case expr.NOR:
		return e.not(e.or(a, b)), nil
	case expr.EQUIV:
		x, _ := e.apply(expr.XOR, a, b)
		return e.not(x), nil
	case expr.IMPLY_LUK:
		// >= Neutral unless a is True and b is False; True iff a <= b
		return tritLits{
			ge1: e.c.And(a.ge2, b.ge1.Not()).Not(),
			ge2: e.c.And(e.implies(a.ge1, b.ge1), e.implies(a.ge2, b.ge2)),
		}, nil
	}
	return tritLits{}, &expr.UnsupportedOperatorError{Operator: op}
}

func (e *circuit) encode(n expr.Node) (tritLits, error) {
	switch s := n.(type) {
	case *expr.ValueSlot:
		return e.encodeValue(s), nil
	case *expr.OperatorSlot:
		return e.encodeOperator(s)
	}
	return tritLits{}, fmt.Errorf("cannot encode node %T", n)
}

func (e *circuit) encodeValue(s *expr.ValueSlot) tritLits {
	if v, ok := s.Value(); ok && s.Locked() {
		return e.constant(v)
	}
	lits := tritLits{e.c.Lit(), e.c.Lit()}
	e.assertions = append(e.assertions, e.implies(lits.ge2, lits.ge1))
	e.free = append(e.free, lits.ge1, lits.ge2)
	e.values[s] = lits
	return lits
}

func (e *circuit) encodeOperator(s *expr.OperatorSlot) (tritLits, error) {
	operand := func(child expr.Node) (tritLits, error) {
		if child == nil {
			return e.constant(trit.False), nil
		}
		return e.encode(child)
	}
	a, err := operand(s.Left)
	if err != nil {
		return tritLits{}, err
	}
	b, err := operand(s.Right)
	if err != nil {
		return tritLits{}, err
	}

	if op, ok := s.Operator(); ok && s.Locked() {
		if s.Right == nil && op.Arity() == 2 {
			return tritLits{}, &expr.UnfilledSlotError{Slot: s}
		}
		return e.apply(op, a, b)
	}

	candidates := e.candidates(s)
	if len(candidates) == 0 {
		return tritLits{}, NotSolvable{Reason: "operator slot has no applicable operator"}
	}

	var ge1s, ge2s, sels []z.Lit
	for _, op := range candidates {
		r, err := e.apply(op, a, b)
		if err != nil {
			return tritLits{}, err
		}
		sel := e.c.Lit()
		e.choices[s] = append(e.choices[s], choice{op: op, sel: sel})
		sels = append(sels, sel)
		ge1s = append(ge1s, e.c.And(sel, r.ge1))
		ge2s = append(ge2s, e.c.And(sel, r.ge2))
	}

	// exactly one operator is chosen
	e.assertions = append(e.assertions, e.c.Ors(sels...))
	for i := range sels {
		for j := i + 1; j < len(sels); j++ {
			e.assertions = append(e.assertions, e.c.Or(sels[i].Not(), sels[j].Not()))
		}
	}
	e.free = append(e.free, sels...)
	return tritLits{e.c.Ors(ge1s...), e.c.Ors(ge2s...)}, nil
}

// candidates lists the operators an open slot may take: the palette plus
// the operator currently shown, restricted to logic operators the slot's
// shape can evaluate.
func (e *circuit) candidates(s *expr.OperatorSlot) []expr.Operator {
	seen := map[expr.Operator]struct{}{}
	var ops []expr.Operator
	add := func(op expr.Operator) {
		if _, ok := seen[op]; ok || !op.Logical() {
			return
		}
		if s.Right == nil && op.Arity() == 2 {
			return
		}
		seen[op] = struct{}{}
		ops = append(ops, op)
	}
	if op, ok := s.Operator(); ok {
		add(op)
	}
	for _, op := range e.palette {
		add(op)
	}
	return ops
}

// require constrains l to equal want.
func (e *circuit) require(l tritLits, want trit.Trit) {
	target := e.constant(want)
	for _, pair := range [][2]z.Lit{{l.ge1, target.ge1}, {l.ge2, target.ge2}} {
		if pair[1] == e.c.T {
			e.assertions = append(e.assertions, pair[0])
		} else {
			e.assertions = append(e.assertions, pair[0].Not())
		}
	}
}

package expr

import (
	"fmt"
	"strings"

	"github.com/expedition0/lumen/pkg/trit"
)

// FlowResult is the outcome of evaluating one sub-tree.
type FlowResult struct {
	Value trit.Trit
	Err   error
}

// Ok reports whether the sub-tree produced a value.
func (r FlowResult) Ok() bool {
	return r.Err == nil
}

// Flow evaluates every sub-tree of n and records each node's result. Hosts
// use it to light the pipes leaving every node that already has a value
// while the root is still incomplete.
func Flow(n Node) map[Node]FlowResult {
	results := map[Node]FlowResult{}
	flow(n, results)
	return results
}

func flow(n Node, results map[Node]FlowResult) FlowResult {
	var r FlowResult
	switch s := n.(type) {
	case *ValueSlot:
		r.Value, r.Err = Evaluate(s)
	case *OperatorSlot:
		left := flowOperand(s, s.Left, results)
		var right FlowResult
		if s.Right != nil {
			right = flow(s.Right, results)
		}
		r = combine(s, left, right)
	default:
		return FlowResult{Err: &UnfilledSlotError{Slot: n}}
	}
	results[n] = r
	return r
}

func flowOperand(parent *OperatorSlot, child Node, results map[Node]FlowResult) FlowResult {
	if child == nil {
		return FlowResult{Err: &UnfilledSlotError{Slot: parent}}
	}
	return flow(child, results)
}

// combine mirrors OperatorSlot.evaluate using results already computed for
// the children.
func combine(s *OperatorSlot, left, right FlowResult) FlowResult {
	if !s.filled {
		return FlowResult{Err: &UnfilledSlotError{Slot: s}}
	}
	if !s.op.Logical() {
		return FlowResult{Err: &UnsupportedOperatorError{Operator: s.op}}
	}
	if left.Err != nil {
		return FlowResult{Err: left.Err}
	}
	if s.op.Arity() == 2 {
		if s.Right == nil {
			return FlowResult{Err: &UnfilledSlotError{Slot: s}}
		}
		if right.Err != nil {
			return FlowResult{Err: right.Err}
		}
	}
	v, err := s.op.Apply(left.Value, right.Value)
	return FlowResult{Value: v, Err: err}
}

// Format renders the tree in prefix form with trits as 0, 1, 2 and "?" for
// anything unfilled, e.g. AND(OR(1, ?), ?).
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch s := n.(type) {
	case *ValueSlot:
		if v, ok := s.Value(); ok {
			fmt.Fprintf(b, "%d", v.Int())
		} else {
			b.WriteString("?")
		}
	case *OperatorSlot:
		if op, ok := s.Operator(); ok {
			b.WriteString(op.String())
		} else {
			b.WriteString("?")
		}
		b.WriteString("(")
		for i, c := range s.Children() {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, c)
		}
		b.WriteString(")")
	default:
		b.WriteString("?")
	}
}

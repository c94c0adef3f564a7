package expr

import (
	"github.com/expedition0/lumen/pkg/trit"
)

// Template is a puzzle instance: an expression tree and the value its root
// has to evaluate to. ValueSlots and OperatorSlots reference nodes owned by
// Root and give hosts a stable index for each slot.
type Template struct {
	Root          Node
	Answer        trit.Trit
	ValueSlots    []*ValueSlot
	OperatorSlots []*OperatorSlot
}

// NewTemplate indexes the slots of root in pre-order.
func NewTemplate(root Node, answer trit.Trit) *Template {
	t := &Template{Root: root, Answer: answer}
	Walk(root, func(n Node) {
		switch s := n.(type) {
		case *ValueSlot:
			t.ValueSlots = append(t.ValueSlots, s)
		case *OperatorSlot:
			t.OperatorSlots = append(t.OperatorSlots, s)
		}
	})
	return t
}

// NewTemplateWithSlots uses a caller supplied slot order, for boards whose
// visual layout differs from tree order.
func NewTemplateWithSlots(root Node, answer trit.Trit, values []*ValueSlot, operators []*OperatorSlot) *Template {
	return &Template{
		Root:          root,
		Answer:        answer,
		ValueSlots:    append([]*ValueSlot(nil), values...),
		OperatorSlots: append([]*OperatorSlot(nil), operators...),
	}
}

// Evaluate evaluates the root.
func (t *Template) Evaluate() (trit.Trit, error) {
	return Evaluate(t.Root)
}

// Check reports whether the root evaluates to Answer. An error means the
// result could not be computed at all, which hosts show as "incomplete"
// rather than "wrong".
func (t *Template) Check() (bool, error) {
	v, err := Evaluate(t.Root)
	if err != nil {
		return false, err
	}
	return v == t.Answer, nil
}

// Open returns the indexes of value and operator slots that are not locked.
func (t *Template) Open() (values []int, operators []int) {
	for i, s := range t.ValueSlots {
		if !s.Locked() {
			values = append(values, i)
		}
	}
	for i, s := range t.OperatorSlots {
		if !s.Locked() {
			operators = append(operators, i)
		}
	}
	return values, operators
}

package expr

import (
	"github.com/expedition0/lumen/pkg/trit"
)

// Node is either a *ValueSlot or an *OperatorSlot.
type Node interface {
	node()
}

func (*ValueSlot) node()    {}
func (*OperatorSlot) node() {}

// ValueSlot is a leaf holding a trit once filled. A locked slot is always
// filled and never changes again.
type ValueSlot struct {
	// Key is an optional label a host may use to bind the slot.
	Key string

	filled bool
	locked bool
	value  trit.Trit
}

// NewValue returns an empty, unlocked leaf.
func NewValue() *ValueSlot {
	return &ValueSlot{}
}

// LockedValue returns a leaf locked at v.
func LockedValue(v trit.Trit) *ValueSlot {
	s := &ValueSlot{}
	s.Lock(v)
	return s
}

func (s *ValueSlot) Filled() bool { return s.filled }
func (s *ValueSlot) Locked() bool { return s.locked }

// Value returns the current value and whether the slot is filled.
func (s *ValueSlot) Value() (trit.Trit, bool) {
	return s.value, s.filled
}

// Set fills the slot. It fails with a *SlotLockedError if the slot is locked.
func (s *ValueSlot) Set(v trit.Trit) error {
	if s.locked {
		return &SlotLockedError{Slot: s}
	}
	s.value = v
	s.filled = true
	return nil
}

// Lock fills the slot with v and locks it. It succeeds even on a slot that
// is already locked.
func (s *ValueSlot) Lock(v trit.Trit) {
	s.value = v
	s.filled = true
	s.locked = true
}

// Cycle advances the value the way a player taps through it: an empty slot
// becomes False, otherwise the next trit.
func (s *ValueSlot) Cycle() error {
	if !s.filled {
		return s.Set(trit.False)
	}
	return s.Set(s.value.Next())
}

// OperatorSlot is an internal node applying an operator to its children.
// Right is nil for a unary NOT node.
type OperatorSlot struct {
	Left  Node
	Right Node

	filled bool
	locked bool
	op     Operator
}

// NewOperator returns an empty, unlocked operator node over left and right.
func NewOperator(left, right Node) *OperatorSlot {
	return &OperatorSlot{Left: left, Right: right}
}

func (s *OperatorSlot) Filled() bool { return s.filled }
func (s *OperatorSlot) Locked() bool { return s.locked }

// Operator returns the current operator and whether the slot is filled.
func (s *OperatorSlot) Operator() (Operator, bool) {
	return s.op, s.filled
}

// Set fills the slot. It fails with a *SlotLockedError if the slot is locked.
func (s *OperatorSlot) Set(op Operator) error {
	if s.locked {
		return &SlotLockedError{Slot: s}
	}
	s.op = op
	s.filled = true
	return nil
}

// Lock fills the slot with op and locks it.
func (s *OperatorSlot) Lock(op Operator) {
	s.op = op
	s.filled = true
	s.locked = true
}

// Cycle moves to the next operator of palette (DefaultPalette when empty).
// An empty slot, or one holding an operator outside the palette, takes the
// first entry.
func (s *OperatorSlot) Cycle(palette ...Operator) error {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	next := palette[0]
	if s.filled {
		for i, op := range palette {
			if op == s.op {
				next = palette[(i+1)%len(palette)]
				break
			}
		}
	}
	return s.Set(next)
}

// Children returns the non-nil children, left first.
func (s *OperatorSlot) Children() []Node {
	var children []Node
	if s.Left != nil {
		children = append(children, s.Left)
	}
	if s.Right != nil {
		children = append(children, s.Right)
	}
	return children
}

package expr

import (
	"errors"
	"fmt"
)

// ErrIncomplete matches any UnfilledSlotError under errors.Is.
var ErrIncomplete = errors.New("expression has unfilled slots")

// SlotLockedError is returned when a locked slot is mutated.
type SlotLockedError struct {
	Slot Node
}

func (e *SlotLockedError) Error() string {
	return fmt.Sprintf("%s is locked", describe(e.Slot))
}

// UnfilledSlotError is returned when evaluation reaches a slot that has no
// value or operator yet.
type UnfilledSlotError struct {
	Slot Node
}

func (e *UnfilledSlotError) Error() string {
	return fmt.Sprintf("%s is not filled", describe(e.Slot))
}

func (e *UnfilledSlotError) Is(target error) bool {
	return target == ErrIncomplete
}

// UnsupportedOperatorError is returned when an arithmetic placeholder (or an
// unknown operator value) is evaluated. None of the template factories can
// produce one.
type UnsupportedOperatorError struct {
	Operator Operator
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %s is not supported in logic evaluation", e.Operator)
}

func describe(n Node) string {
	switch s := n.(type) {
	case *ValueSlot:
		if s.Key != "" {
			return fmt.Sprintf("value slot %q", s.Key)
		}
		return "value slot"
	case *OperatorSlot:
		return "operator slot"
	}
	return "slot"
}

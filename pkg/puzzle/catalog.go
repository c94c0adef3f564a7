package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/expr/template"
	"github.com/expedition0/lumen/pkg/trit"
)

var ErrUnknownKind = errors.New("unknown puzzle kind")

// Kind names a preset puzzle.
type Kind string

const (
	// AndOrNeutralXY is AND(OR(1, X), Y) = 2.
	AndOrNeutralXY Kind = "AndOrNeutralXY"
	// OrXAndFalseY is OR(X, AND(0, Y)) = 1.
	OrXAndFalseY Kind = "OrXAndFalseY"
	// ComplexXorAndOr is XOR(AND(X, Y), OR(1, Z)) = 0.
	ComplexXorAndOr Kind = "ComplexXorAndOr"
	// NotX is NOT(X) = 2.
	NotX Kind = "NotX"
	// NotXAndY is AND(NOT(X), Y) = 1 with slots ordered as laid out on the
	// board: X, Y and NOT, AND.
	NotXAndY Kind = "NotXAndY"
	// ImplyXYUnlocked is ?(X, Y) = 1 starting from IMPLY.
	ImplyXYUnlocked Kind = "ImplyXYUnlocked"
	// FindOperator is ?(2, 0) = 1 starting from OR. No operator satisfies it.
	FindOperator Kind = "FindOperator"
	// CalculateResult is AND(OR(X, 1), XOR(Y, 2)) = 1.
	CalculateResult Kind = "CalculateResult"
)

var catalog = map[Kind]func() *expr.Template{
	AndOrNeutralXY: func() *expr.Template {
		return template.TripleLeftAssoc(expr.OR, expr.AND, trit.True, true,
			template.V(trit.Neutral), nil, nil)
	},
	OrXAndFalseY: func() *expr.Template {
		return template.TripleRightAssoc(expr.OR, expr.AND, trit.Neutral, true,
			nil, template.V(trit.False), nil)
	},
	ComplexXorAndOr: func() *expr.Template {
		return template.ComplexBinary(expr.AND, expr.OR, expr.XOR, trit.False, true,
			nil, nil, template.V(trit.Neutral), nil)
	},
	NotX: func() *expr.Template {
		return template.Unary(trit.True, true, nil)
	},
	NotXAndY: func() *expr.Template {
		x, y := expr.NewValue(), expr.NewValue()
		not := expr.NewOperator(x, nil)
		not.Lock(expr.NOT)
		and := expr.NewOperator(not, y)
		and.Lock(expr.AND)
		return expr.NewTemplateWithSlots(and, trit.Neutral,
			[]*expr.ValueSlot{x, y}, []*expr.OperatorSlot{not, and})
	},
	ImplyXYUnlocked: func() *expr.Template {
		return template.Binary(expr.IMPLY, trit.Neutral, false, nil, nil)
	},
	FindOperator: func() *expr.Template {
		return template.Binary(expr.OR, trit.Neutral, false, template.V(trit.True), template.V(trit.False))
	},
	CalculateResult: func() *expr.Template {
		return template.ComplexBinary(expr.OR, expr.XOR, expr.AND, trit.Neutral, true,
			nil, template.V(trit.Neutral), nil, template.V(trit.True))
	},
}

var kinds = []Kind{
	AndOrNeutralXY,
	OrXAndFalseY,
	ComplexXorAndOr,
	NotX,
	NotXAndY,
	ImplyXYUnlocked,
	FindOperator,
	CalculateResult,
}

// Kinds lists every preset in catalog order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind matches s against the preset names, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New builds a fresh instance of the preset. Every call returns an
// independent tree.
func New(k Kind) (*expr.Template, error) {
	build, ok := catalog[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return build(), nil
}

package solver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/expr/template"
	"github.com/expedition0/lumen/pkg/trit"
)

func TestNotSolvableError(t *testing.T) {
	assert.Equal(t, "template not solvable", NotSolvable{}.Error())
	assert.Equal(t, "template not solvable: stuck", NotSolvable{Reason: "stuck"}.Error())
}

func TestSolve(t *testing.T) {
	type tc struct {
		Name      string
		Template  func() *expr.Template
		Options   []Option
		Solutions int
		Values    []trit.Trit
		Operators []expr.Operator
		Error     error
	}

	for _, tt := range []tc{
		{
			Name: "locked and consistent",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.True, true, template.V(trit.True), template.V(trit.True))
			},
			Solutions: 1,
			Values:    []trit.Trit{trit.True, trit.True},
			Operators: []expr.Operator{expr.AND},
		},
		{
			Name: "locked and inconsistent",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.True, true, template.V(trit.False), template.V(trit.True))
			},
			Error: NotSolvable{},
		},
		{
			Name: "and to true forces both operands",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.True, true, nil, nil)
			},
			Solutions: 1,
			Values:    []trit.Trit{trit.True, trit.True},
			Operators: []expr.Operator{expr.AND},
		},
		{
			Name: "or to false forces both operands",
			Template: func() *expr.Template {
				return template.Binary(expr.OR, trit.False, true, nil, nil)
			},
			Solutions: 1,
			Values:    []trit.Trit{trit.False, trit.False},
			Operators: []expr.Operator{expr.OR},
		},
		{
			Name: "and to neutral",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.Neutral, true, nil, nil)
			},
			Solutions: 3,
		},
		{
			Name: "binary operators cannot reach neutral from classical operands",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.Neutral, false, template.V(trit.True), template.V(trit.False))
			},
			Options: []Option{WithPalette(expr.LogicOperators...)},
			Error:   NotSolvable{},
		},
		{
			Name: "open operator over neutral operands",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.Neutral, false, template.V(trit.Neutral), template.V(trit.Neutral))
			},
			Solutions: 4,
		},
		{
			Name: "open operator picks from the palette",
			Template: func() *expr.Template {
				return template.Binary(expr.AND, trit.True, false, template.V(trit.True), template.V(trit.False))
			},
			Options:   []Option{WithPalette(expr.NOR, expr.OR)},
			Solutions: 1,
			Operators: []expr.Operator{expr.OR},
		},
		{
			Name: "unary node only takes unary operators",
			Template: func() *expr.Template {
				return template.Unary(trit.True, false, nil)
			},
			Options:   []Option{WithPalette(expr.LogicOperators...)},
			Solutions: 1,
			Values:    []trit.Trit{trit.False},
			Operators: []expr.Operator{expr.NOT},
		},
		{
			Name: "nested tree with open values",
			Template: func() *expr.Template {
				return template.ComplexBinary(expr.AND, expr.OR, expr.XOR, trit.False, true,
					nil, nil, template.V(trit.Neutral), nil)
			},
			Solutions: 1,
			Values:    []trit.Trit{trit.True, trit.True, trit.Neutral, trit.True},
		},
		{
			Name: "locked arithmetic operator",
			Template: func() *expr.Template {
				return template.Binary(expr.PLUS, trit.True, true, nil, nil)
			},
			Error: &expr.UnsupportedOperatorError{Operator: expr.PLUS},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			tmpl := tt.Template()
			s, err := NewSolver(append([]Option{WithTemplate(tmpl)}, tt.Options...)...)
			require.NoError(t, err)

			solutions, err := s.Solutions(context.Background(), 0)
			if tt.Error != nil {
				assert.Equal(t, tt.Error, err)
				return
			}
			require.NoError(t, err)
			if tt.Solutions > 0 {
				assert.Len(t, solutions, tt.Solutions)
			}

			for _, sol := range solutions {
				check := tt.Template()
				require.NoError(t, sol.Apply(check))
				ok, err := check.Check()
				require.NoError(t, err, sol.String())
				assert.True(t, ok, sol.String())
			}

			first, err := s.Solve(context.Background())
			require.NoError(t, err)
			if tt.Values != nil {
				assert.Equal(t, tt.Values, first.Values)
			}
			if tt.Operators != nil {
				assert.Equal(t, tt.Operators, first.Operators)
			}
		})
	}
}

// TestEncodingMatchesTruthTables counts, for every locked logic operator and
// answer, the open operand pairs the solver finds and compares them with a
// brute force count over the trit package.
func TestEncodingMatchesTruthTables(t *testing.T) {
	for _, op := range expr.LogicOperators {
		if op.Arity() != 2 {
			continue
		}
		for _, answer := range trit.All {
			want := 0
			for _, a := range trit.All {
				for _, b := range trit.All {
					if got, _ := op.Apply(a, b); got == answer {
						want++
					}
				}
			}

			s, err := NewSolver(WithTemplate(template.Binary(op, answer, true, nil, nil)))
			require.NoError(t, err)
			solutions, err := s.Solutions(context.Background(), 0)
			if want == 0 {
				assert.Equal(t, NotSolvable{}, err, "%s = %s", op, answer)
				continue
			}
			require.NoError(t, err)
			assert.Len(t, solutions, want, "%s = %s", op, answer)
		}
	}
}

func TestSolutionsLimit(t *testing.T) {
	s, err := NewSolver(WithTemplate(template.Binary(expr.OR, trit.True, true, nil, nil)))
	require.NoError(t, err)

	solutions, err := s.Solutions(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, solutions, 2)
	assert.NotEqual(t, solutions[0], solutions[1])
}

func TestSolveCancelled(t *testing.T) {
	s, err := NewSolver(WithTemplate(template.Binary(expr.OR, trit.True, true, nil, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Solve(ctx)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestNewSolverOptions(t *testing.T) {
	_, err := NewSolver()
	assert.Equal(t, ErrNoTemplate, err)

	_, err = NewSolver(
		WithTemplate(template.Binary(expr.OR, trit.True, true, nil, nil)),
		WithPalette(expr.AND, expr.MINUS),
	)
	var unsupported *expr.UnsupportedOperatorError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, expr.MINUS, unsupported.Operator)
}

func TestApplyLeavesLockedSlots(t *testing.T) {
	tmpl := template.Binary(expr.AND, trit.Neutral, true, template.V(trit.Neutral), nil)
	err := Solution{
		Values:    []trit.Trit{trit.False, trit.True},
		Operators: []expr.Operator{expr.OR},
	}.Apply(tmpl)
	require.NoError(t, err)

	v, _ := tmpl.ValueSlots[0].Value()
	assert.Equal(t, trit.Neutral, v)
	v, _ = tmpl.ValueSlots[1].Value()
	assert.Equal(t, trit.True, v)
	op, _ := tmpl.OperatorSlots[0].Operator()
	assert.Equal(t, expr.AND, op)

	assert.Error(t, Solution{}.Apply(tmpl))
}

func TestLoggingTracer(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSolver(
		WithTemplate(template.Unary(trit.True, true, nil)),
		WithTracer(LoggingTracer{Writer: &buf}),
	)
	require.NoError(t, err)

	_, err = s.Solutions(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "---\nAttempt: 1\nSolution: values [0] operators [NOT]\n---\nAttempt: 2\nExhausted\n", buf.String())
}

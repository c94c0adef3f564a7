package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/trit"
)

var (
	ErrIncomplete = errors.New("cancelled before a solution could be found")
	ErrNoTemplate = errors.New("no template to solve")
)

// NotSolvable is returned when no assignment of the open slots makes the
// template evaluate to its answer.
type NotSolvable struct {
	Reason string
}

func (e NotSolvable) Error() string {
	const msg = "template not solvable"
	if e.Reason == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

// Solution assigns every slot of a template, indexed like the template's
// ValueSlots and OperatorSlots. Locked slots carry their locked contents.
type Solution struct {
	Values    []trit.Trit
	Operators []expr.Operator
}

func (s Solution) String() string {
	var b strings.Builder
	b.WriteString("values [")
	for i, v := range s.Values {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", v.Int())
	}
	b.WriteString("] operators [")
	for i, op := range s.Operators {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(op.String())
	}
	b.WriteString("]")
	return b.String()
}

// Apply writes the solution into the open slots of t. Locked slots are
// left alone.
func (s Solution) Apply(t *expr.Template) error {
	if len(s.Values) != len(t.ValueSlots) || len(s.Operators) != len(t.OperatorSlots) {
		return fmt.Errorf("solution shape %d/%d does not match template %d/%d",
			len(s.Values), len(s.Operators), len(t.ValueSlots), len(t.OperatorSlots))
	}
	for i, v := range t.ValueSlots {
		if v.Locked() {
			continue
		}
		if err := v.Set(s.Values[i]); err != nil {
			return err
		}
	}
	for i, o := range t.OperatorSlots {
		if o.Locked() {
			continue
		}
		if err := o.Set(s.Operators[i]); err != nil {
			return err
		}
	}
	return nil
}

type Solver interface {
	// Solve returns one assignment of the open slots that makes the
	// template evaluate to its answer.
	Solve(context.Context) (*Solution, error)
	// Solutions enumerates up to limit distinct assignments. A limit of
	// zero or less enumerates all of them.
	Solutions(ctx context.Context, limit int) ([]Solution, error)
}

type solver struct {
	template *expr.Template
	palette  []expr.Operator
	tracer   Tracer
}

const (
	satisfiable   = 1
	unsatisfiable = -1
)

type position struct {
	attempt  int
	solution *Solution
}

func (p position) Attempt() int {
	return p.attempt
}

func (p position) Solution() *Solution {
	return p.solution
}

func (s *solver) Solve(ctx context.Context) (*Solution, error) {
	solutions, err := s.Solutions(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(solutions) == 0 {
		return nil, NotSolvable{}
	}
	return &solutions[0], nil
}

func (s *solver) Solutions(ctx context.Context, limit int) ([]Solution, error) {
	e := newCircuit(s.palette)
	root, err := e.encode(s.template.Root)
	if err != nil {
		return nil, err
	}
	e.require(root, s.template.Answer)

	g := gini.New()
	e.c.ToCnf(g)

	var solutions []Solution
	for attempt := 1; limit <= 0 || len(solutions) < limit; attempt++ {
		if ctx.Err() != nil {
			return solutions, ErrIncomplete
		}
		g.Assume(e.assertions...)
		if g.Solve() != satisfiable {
			s.tracer.Trace(position{attempt: attempt})
			break
		}
		sol := s.extract(g, e)
		s.tracer.Trace(position{attempt: attempt, solution: &sol})
		solutions = append(solutions, sol)
		if len(e.free) == 0 {
			break
		}
		block(g, e.free)
	}
	if len(solutions) == 0 {
		return nil, NotSolvable{}
	}
	return solutions, nil
}

// block forbids the current model's assignment of the free literals.
func block(g inter.S, free []z.Lit) {
	for _, m := range free {
		if g.Value(m) {
			g.Add(m.Not())
		} else {
			g.Add(m)
		}
	}
	g.Add(0)
}

func decode(g inter.S, l tritLits) trit.Trit {
	switch {
	case g.Value(l.ge2):
		return trit.True
	case g.Value(l.ge1):
		return trit.Neutral
	}
	return trit.False
}

func (s *solver) extract(g inter.S, e *circuit) Solution {
	sol := Solution{
		Values:    make([]trit.Trit, len(s.template.ValueSlots)),
		Operators: make([]expr.Operator, len(s.template.OperatorSlots)),
	}
	for i, v := range s.template.ValueSlots {
		if lits, ok := e.values[v]; ok {
			sol.Values[i] = decode(g, lits)
		} else {
			sol.Values[i], _ = v.Value()
		}
	}
	for i, o := range s.template.OperatorSlots {
		sol.Operators[i], _ = o.Operator()
		for _, c := range e.choices[o] {
			if g.Value(c.sel) {
				sol.Operators[i] = c.op
				break
			}
		}
	}
	return sol
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithTemplate(t *expr.Template) Option {
	return func(s *solver) error {
		s.template = t
		return nil
	}
}

// WithPalette sets the operators an open operator slot may be assigned.
// The operator a slot currently shows is always a candidate.
func WithPalette(ops ...expr.Operator) Option {
	return func(s *solver) error {
		for _, op := range ops {
			if !op.Logical() {
				return &expr.UnsupportedOperatorError{Operator: op}
			}
		}
		s.palette = ops
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.template == nil || s.template.Root == nil {
			return ErrNoTemplate
		}
		return nil
	},
	func(s *solver) error {
		if s.palette == nil {
			s.palette = expr.DefaultPalette
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

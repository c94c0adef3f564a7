package puzzle

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/expedition0/lumen/internal/solver"
	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/trit"
)

// DefaultNthError is how many failed checks pass between OnNthError calls.
const DefaultNthError = 3

// Solution assigns every slot of a template, indexed like its slot slices.
type Solution = solver.Solution

// NotSolvable reports a template whose open slots cannot reach the answer.
type NotSolvable = solver.NotSolvable

// Verdict is the outcome of one Check.
type Verdict struct {
	Correct bool
	// Result is the evaluated tree, nil when evaluation failed.
	Result *trit.Trit
	// Err is set when the tree could not be evaluated, e.g. a slot is
	// still open.
	Err error
}

// Incomplete reports whether the check failed because a slot is unfilled.
func (v Verdict) Incomplete() bool {
	return errors.Is(v.Err, expr.ErrIncomplete)
}

// Checker verifies a player's attempts at one template and counts the
// failed ones.
type Checker struct {
	template  *expr.Template
	nth       int
	onNth     func(failures int)
	onCorrect func(Verdict)
	onWrong   func(Verdict)
	palette   []expr.Operator
	logger    logr.Logger
	failures  int
}

type CheckerOption func(c *Checker) error

// WithNthError calls fn on every n-th failed check.
func WithNthError(n int, fn func(failures int)) CheckerOption {
	return func(c *Checker) error {
		if n <= 0 {
			return fmt.Errorf("nth error trigger must be positive, got %d", n)
		}
		c.nth = n
		c.onNth = fn
		return nil
	}
}

// WithOnCorrect calls fn after every correct check.
func WithOnCorrect(fn func(Verdict)) CheckerOption {
	return func(c *Checker) error {
		c.onCorrect = fn
		return nil
	}
}

// WithOnIncorrect calls fn after every failed check, wrong or incomplete.
func WithOnIncorrect(fn func(Verdict)) CheckerOption {
	return func(c *Checker) error {
		c.onWrong = fn
		return nil
	}
}

// WithHintPalette sets the operators hints may place in open operator slots.
func WithHintPalette(ops ...expr.Operator) CheckerOption {
	return func(c *Checker) error {
		c.palette = ops
		return nil
	}
}

func WithLogger(l logr.Logger) CheckerOption {
	return func(c *Checker) error {
		c.logger = l
		return nil
	}
}

var checkerDefaults = []CheckerOption{
	func(c *Checker) error {
		if c.nth == 0 {
			c.nth = DefaultNthError
		}
		return nil
	},
	func(c *Checker) error {
		if c.palette == nil {
			c.palette = expr.DefaultPalette
		}
		return nil
	},
	func(c *Checker) error {
		if c.logger.GetSink() == nil {
			c.logger = logr.Discard()
		}
		return nil
	},
}

func NewChecker(t *expr.Template, options ...CheckerOption) (*Checker, error) {
	if t == nil || t.Root == nil {
		return nil, solver.ErrNoTemplate
	}
	c := Checker{template: t}
	for _, option := range append(options, checkerDefaults...) {
		if err := option(&c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (c *Checker) Template() *expr.Template {
	return c.template
}

// Failures is the number of failed checks so far.
func (c *Checker) Failures() int {
	return c.failures
}

// ResetFailures zeroes the failure count, restarting the nth-failure
// cadence, e.g. when the puzzle is reloaded.
func (c *Checker) ResetFailures() {
	c.failures = 0
	c.logger.V(1).Info("failures reset")
}

// Check evaluates the template's current contents against its answer.
// Incomplete trees count as failures.
func (c *Checker) Check() Verdict {
	var v Verdict
	result, err := c.template.Evaluate()
	if err != nil {
		v.Err = err
	} else {
		v.Result = trit.Ptr(result)
		v.Correct = result == c.template.Answer
	}

	if v.Correct {
		c.logger.V(1).Info("solution correct", "result", result)
		if c.onCorrect != nil {
			c.onCorrect(v)
		}
		return v
	}

	c.failures++
	c.logger.V(1).Info("solution incorrect", "failures", c.failures, "result", v.Result, "error", v.Err)
	if c.onWrong != nil {
		c.onWrong(v)
	}
	if c.failures%c.nth == 0 && c.onNth != nil {
		c.logger.V(1).Info("nth failure", "failures", c.failures)
		c.onNth(c.failures)
	}
	return v
}

// Hint finds an assignment of the open slots that solves the template. It
// does not modify the template; Solution.Apply does.
func (c *Checker) Hint(ctx context.Context) (*Solution, error) {
	s, err := solver.NewSolver(
		solver.WithTemplate(c.template),
		solver.WithPalette(c.palette...),
	)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx)
}

// Solve is Hint for a bare template with the player palette.
func Solve(ctx context.Context, t *expr.Template) (*Solution, error) {
	c, err := NewChecker(t)
	if err != nil {
		return nil, err
	}
	return c.Hint(ctx)
}

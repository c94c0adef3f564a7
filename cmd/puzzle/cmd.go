package puzzle

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/expedition0/lumen/internal/solver"
	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/puzzle"
	"github.com/expedition0/lumen/pkg/trit"
)

func NewPuzzleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Inspects, checks and solves the preset logic puzzles",
	}
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newSolveCommand())
	cmd.AddCommand(newEvalCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the preset puzzles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range puzzle.Kinds() {
				t, err := puzzle.New(k)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s = %d\n", k, expr.Format(t.Root), t.Answer.Int())
			}
			return nil
		},
	}
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind>",
		Short: "Prints a puzzle and its open slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(args[0])
			if err != nil {
				return err
			}
			show(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newSolveCommand() *cobra.Command {
	var all bool
	var palette string

	cmd := &cobra.Command{
		Use:   "solve <kind>",
		Short: "Finds values and operators for the open slots of a puzzle",
		Long: `Finds values and operators for the open slots of a puzzle with a SAT
solver. With --all every distinct assignment is listed, which shows
whether a puzzle has a unique answer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(args[0])
			if err != nil {
				return err
			}
			ops, err := parseOperators(palette)
			if err != nil {
				return err
			}

			logger := logr.FromContextOrDiscard(cmd.Context())
			options := []solver.Option{solver.WithTemplate(t)}
			if len(ops) > 0 {
				options = append(options, solver.WithPalette(ops...))
			}
			if logger.V(2).Enabled() {
				options = append(options, solver.WithTracer(solver.LoggingTracer{Writer: cmd.ErrOrStderr()}))
			}
			s, err := solver.NewSolver(options...)
			if err != nil {
				return err
			}

			limit := 1
			if all {
				limit = 0
			}
			solutions, err := s.Solutions(cmd.Context(), limit)
			var notSolvable solver.NotSolvable
			if errors.As(err, &notSolvable) {
				fmt.Fprintf(cmd.OutOrStdout(), "no solution found: %s\n", err)
				return nil
			}
			if err != nil {
				return err
			}
			logger.V(1).Info("solved", "kind", args[0], "solutions", len(solutions))
			for _, sol := range solutions {
				fmt.Fprintln(cmd.OutOrStdout(), sol.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every solution instead of the first")
	cmd.Flags().StringVar(&palette, "palette", "", "comma separated operators open operator slots may take (default NOT,AND,OR,XOR)")
	return cmd
}

func newEvalCommand() *cobra.Command {
	var values, operators string

	cmd := &cobra.Command{
		Use:   "eval <kind>",
		Short: "Fills the open slots of a puzzle in order and checks the result",
		Long: `Fills the open slots of a puzzle in order and checks the result. For
instance, for AND(OR(1, ?), ?) = 2:

  lumen puzzle eval AndOrNeutralXY --values 2,2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(args[0])
			if err != nil {
				return err
			}
			if err := fill(t, values, operators); err != nil {
				return err
			}

			checker, err := puzzle.NewChecker(t, puzzle.WithLogger(logr.FromContextOrDiscard(cmd.Context())))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s = %d\n", expr.Format(t.Root), t.Answer.Int())
			v := checker.Check()
			switch {
			case v.Correct:
				fmt.Fprintln(out, "correct")
			case v.Incomplete():
				fmt.Fprintf(out, "incomplete: %s\n", v.Err)
			case v.Err != nil:
				return v.Err
			default:
				fmt.Fprintf(out, "incorrect: got %d\n", v.Result.Int())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&values, "values", "", "comma separated trits for the open value slots, e.g. 0,1,2")
	cmd.Flags().StringVar(&operators, "operators", "", "comma separated operators for the open operator slots, e.g. AND,XOR")
	return cmd
}

func load(name string) (*expr.Template, error) {
	k, err := puzzle.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return puzzle.New(k)
}

func show(w io.Writer, t *expr.Template) {
	fmt.Fprintf(w, "%s = %d\n", expr.Format(t.Root), t.Answer.Int())
	values, operators := t.Open()
	fmt.Fprintf(w, "open value slots: %d of %d\n", len(values), len(t.ValueSlots))
	fmt.Fprintf(w, "open operator slots: %d of %d\n", len(operators), len(t.OperatorSlots))
}

func split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseOperators(s string) ([]expr.Operator, error) {
	var ops []expr.Operator
	for _, part := range split(s) {
		op, err := expr.ParseOperator(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// fill writes values and operators into the open slots of t in slot order.
func fill(t *expr.Template, values, operators string) error {
	openValues, openOperators := t.Open()

	parts := split(values)
	if len(parts) > len(openValues) {
		return fmt.Errorf("%d values given but the puzzle has %d open value slots", len(parts), len(openValues))
	}
	for i, part := range parts {
		v, err := trit.Parse(part)
		if err != nil {
			return err
		}
		if err := t.ValueSlots[openValues[i]].Set(v); err != nil {
			return err
		}
	}

	ops, err := parseOperators(operators)
	if err != nil {
		return err
	}
	if len(ops) > len(openOperators) {
		return fmt.Errorf("%d operators given but the puzzle has %d open operator slots", len(ops), len(openOperators))
	}
	for i, op := range ops {
		if err := t.OperatorSlots[openOperators[i]].Set(op); err != nil {
			return err
		}
	}
	return nil
}

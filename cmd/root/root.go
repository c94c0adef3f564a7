package root

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/expedition0/lumen/cmd/beam"
	"github.com/expedition0/lumen/cmd/puzzle"
)

func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Lumen solves ternary logic puzzles and traces laser beams",
		Long: `Lumen is the puzzle and beam core of a three-valued logic game.
It evaluates and solves Kleene logic puzzles and traces beams through
reflective, refractive and absorbing scenes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbosity < 0 {
				return fmt.Errorf("verbosity must not be negative, got %d", verbosity)
			}
			logger := NewLogger(cmd.ErrOrStderr(), verbosity)
			cmd.SetContext(logr.NewContext(cmd.Context(), logger))
			return nil
		},
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity, 0 logs nothing below errors")

	// add sub-commands
	rootCmd.AddCommand(puzzle.NewPuzzleCommand())
	rootCmd.AddCommand(beam.NewBeamCommand())

	return rootCmd
}

// NewLogger writes one line per log entry to w.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

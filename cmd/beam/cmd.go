package beam

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/expedition0/lumen/pkg/beam"
	"github.com/expedition0/lumen/pkg/beam/eventid"
	"github.com/expedition0/lumen/pkg/beam/metrics"
	"github.com/expedition0/lumen/pkg/beam/scene"
)

func NewBeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beam",
		Short: "Traces beams through YAML scenes",
	}
	cmd.AddCommand(newTraceCommand())
	return cmd
}

type traceOptions struct {
	origin  string
	dir     string
	dt      float64
	shots   int
	uuids   bool
	metrics bool
}

func newTraceCommand() *cobra.Command {
	var o traceOptions

	cmd := &cobra.Command{
		Use:   "trace <scene.yaml>",
		Short: "Fires a beam into a scene and prints its path and damage",
		Long: `Fires a beam into a scene and prints its path and damage.

The scene's beam section configures the solver. With --shots the same beam
is fired repeatedly in one firing session, so Instant damage lands once and
OverTime damage lands on every shot scaled by --dt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVar(&o.origin, "origin", "0,0,0", "beam origin as x,y,z")
	cmd.Flags().StringVar(&o.dir, "dir", "1,0,0", "beam direction as x,y,z")
	cmd.Flags().Float64Var(&o.dt, "dt", 1, "seconds between shots for OverTime damage")
	cmd.Flags().IntVar(&o.shots, "shots", 1, "number of times to fire the beam")
	cmd.Flags().BoolVar(&o.uuids, "uuid", false, "identify damage events with UUIDs instead of a counter")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "print the solve metrics in the Prometheus text format")
	return cmd
}

func runTrace(cmd *cobra.Command, path string, o traceOptions) error {
	origin, err := beam.ParseVec3(o.origin)
	if err != nil {
		return fmt.Errorf("invalid --origin: %w", err)
	}
	dir, err := beam.ParseVec3(o.dir)
	if err != nil {
		return fmt.Errorf("invalid --dir: %w", err)
	}
	if o.shots < 1 {
		return fmt.Errorf("invalid --shots %d: at least one shot is required", o.shots)
	}

	s, err := scene.LoadFile(path)
	if err != nil {
		return err
	}

	logger := logr.FromContextOrDiscard(cmd.Context())
	reg := prometheus.NewRegistry()
	options := []beam.Option{
		beam.WithConfig(s.Config),
		beam.WithLogger(logger),
		beam.WithRecorder(metrics.NewPrometheus(reg)),
	}
	if o.uuids {
		options = append(options, beam.WithEventIDs(eventid.UUID()))
	}
	if logger.V(2).Enabled() {
		options = append(options, beam.WithTracer(beam.LoggingTracer{Writer: cmd.ErrOrStderr()}))
	}
	solver, err := beam.NewSolver(s, options...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for shot := 1; shot <= o.shots; shot++ {
		if o.shots > 1 {
			fmt.Fprintf(out, "shot %d\n", shot)
		}
		printResult(out, solver.SolveDelta(origin, dir, o.dt))
	}

	if o.metrics {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
				return err
			}
		}
	}
	return nil
}

func printResult(w io.Writer, r beam.Result) {
	for i, seg := range r.Segments {
		fmt.Fprintf(w, "segment %d: %s -> %s intensity %g\n", i+1, seg.Start, seg.End, seg.Intensity)
	}
	for _, ev := range r.Damage {
		fmt.Fprintf(w, "damage %s: %s took %g at intensity %g\n", ev.ID, ev.Target, ev.Amount, ev.Intensity)
	}
	fmt.Fprintf(w, "outcome: %s after %d bounces, final point %s\n", r.Outcome, r.Bounces, r.FinalPoint)
}

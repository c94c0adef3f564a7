package beam

import (
	"fmt"
	"io"
)

// Step describes one cast of the trace loop.
type Step struct {
	Iteration int
	Position  Vec3
	Direction Vec3
	Intensity float64
	Bounces   int
	// Hit is nil when the cast found nothing.
	Hit *Hit
}

type Tracer interface {
	Trace(s Step)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Step) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(s Step) {
	fmt.Fprintf(t.Writer, "---\nIteration: %d\nPosition: %s\nDirection: %s\nIntensity: %g\nBounces: %d\n",
		s.Iteration, s.Position, s.Direction, s.Intensity, s.Bounces)
	if s.Hit == nil {
		fmt.Fprintf(t.Writer, "Hit: none\n")
		return
	}
	kind := "untagged"
	if s.Hit.Surface != nil {
		kind = s.Hit.Surface.Kind.String()
	}
	fmt.Fprintf(t.Writer, "Hit: %s at %s\n", kind, s.Hit.Point)
}

package solver

import (
	"fmt"
	"io"
)

type SearchPosition interface {
	Attempt() int
	// Solution is nil when the attempt found no further assignment.
	Solution() *Solution
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nAttempt: %d\n", p.Attempt())
	if sol := p.Solution(); sol != nil {
		fmt.Fprintf(t.Writer, "Solution: %s\n", sol)
		return
	}
	fmt.Fprintf(t.Writer, "Exhausted\n")
}

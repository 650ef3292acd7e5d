package solver

import (
	"fmt"
	"io"
	"time"
)

// SearchPosition is a snapshot of the solver's progress handed to a Tracer
// whenever a solution is produced.
type SearchPosition interface {
	// Solution returns the solution just produced.
	Solution() fmt.Stringer
	// SolutionCount returns the number of solutions produced so far.
	SolutionCount() int64
	// Elapsed returns the cumulative search time.
	Elapsed() time.Duration
}

// Tracer is notified of every solution a solver produces.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer traces nothing.
type DefaultTracer struct{}

// Trace implements Tracer.
func (DefaultTracer) Trace(_ SearchPosition) {
}

// LoggingTracer writes every solution to Writer.
type LoggingTracer struct {
	Writer io.Writer
}

// Trace implements Tracer.
func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "solution %d after %v: %v\n", p.SolutionCount(), p.Elapsed(), p.Solution())
}

type searchPosition struct {
	solution fmt.Stringer
	count    int64
	elapsed  time.Duration
}

func (p searchPosition) Solution() fmt.Stringer {
	return p.solution
}

func (p searchPosition) SolutionCount() int64 {
	return p.count
}

func (p searchPosition) Elapsed() time.Duration {
	return p.elapsed
}

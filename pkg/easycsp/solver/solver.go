// Package solver wraps a search algorithm in a reentrant produce-next-
// solution driver with an optional per-call time budget and cumulative
// statistics.
package solver

import (
	"errors"
	"fmt"
	"time"

	log "github.com/golang/glog"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp/algorithm"
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp/numeric"
)

// ErrNilAlgorithm is returned by New when no algorithm is given.
var ErrNilAlgorithm = errors.New("solver: algorithm is nil")

// Algorithm is the solver-facing surface of a search algorithm with
// solution type S. The algorithm and numeric packages provide the
// implementations.
type Algorithm[S fmt.Stringer] interface {
	Run()
	Interrupt()
	IsSuccessful() bool
	Solution() (S, error)
	Reset()
}

// Solver drives an algorithm step by step. The k-th successful Solve call
// returns the k-th solution of the algorithm's enumeration order. A solver
// must not be shared between goroutines.
type Solver[S fmt.Stringer] struct {
	algorithm Algorithm[S]
	tracer    Tracer
	elapsed   time.Duration
	count     int64
}

// Option configures a Solver.
type Option[S fmt.Stringer] func(s *Solver[S]) error

// WithTracer makes the solver report every produced solution to t.
func WithTracer[S fmt.Stringer](t Tracer) Option[S] {
	return func(s *Solver[S]) error {
		s.tracer = t
		return nil
	}
}

func defaults[S fmt.Stringer]() []Option[S] {
	return []Option[S]{
		func(s *Solver[S]) error {
			if s.tracer == nil {
				s.tracer = DefaultTracer{}
			}
			return nil
		},
	}
}

// New returns a solver over the given algorithm.
func New[S fmt.Stringer](a Algorithm[S], options ...Option[S]) (*Solver[S], error) {
	if a == nil {
		return nil, ErrNilAlgorithm
	}
	s := &Solver[S]{algorithm: a}
	for _, option := range append(options, defaults[S]()...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ForProblem returns a solver over the given problem using the default
// algorithm, forward checking.
func ForProblem[U any, T comparable](p *easycsp.Problem[U, T], options ...Option[*easycsp.Solution[U, T]]) (*Solver[*easycsp.Solution[U, T]], error) {
	return New(Algorithm[*easycsp.Solution[U, T]](algorithm.NewForwardChecking(p)), options...)
}

// ForIntProblem returns a solver over the given integer problem using the
// default algorithm, integer forward checking.
func ForIntProblem[U any](p *numeric.IntProblem[U], options ...Option[*numeric.IntSolution[U]]) (*Solver[*numeric.IntSolution[U]], error) {
	return New(Algorithm[*numeric.IntSolution[U]](numeric.NewIntForwardChecking(p)), options...)
}

// ElapsedTime returns the cumulative time spent in algorithm steps.
func (s *Solver[S]) ElapsedTime() time.Duration {
	return s.elapsed
}

// SolutionCount returns the number of solutions produced so far.
func (s *Solver[S]) SolutionCount() int64 {
	return s.count
}

// Solve runs one search step and reports whether a new solution was
// produced.
func (s *Solver[S]) Solve() bool {
	start := time.Now()
	s.algorithm.Run()
	s.elapsed += time.Since(start)
	return s.recordOutcome()
}

// SolveIn runs one search step on a worker goroutine and interrupts it
// after the given time budget; zero means unbounded. It reports whether a
// new solution was produced within the budget.
func (s *Solver[S]) SolveIn(limit time.Duration) bool {
	start := time.Now()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.algorithm.Run()
	}()
	if limit > 0 {
		select {
		case <-done:
		case <-time.After(limit):
			if log.V(1) {
				log.Infof("solver: interrupting step after %v budget", limit)
			}
		}
	} else {
		<-done
	}
	s.algorithm.Interrupt()
	// wait for the step to observe the interrupt before reading flags
	<-done
	s.elapsed += time.Since(start)
	return s.recordOutcome()
}

func (s *Solver[S]) recordOutcome() bool {
	if !s.algorithm.IsSuccessful() {
		return false
	}
	s.count++
	if solution, err := s.algorithm.Solution(); err == nil {
		s.tracer.Trace(searchPosition{solution: solution, count: s.count, elapsed: s.elapsed})
	}
	return true
}

// CurrentSolution returns the solution of the last successful step, or
// easycsp.ErrNoSolution. The solution is the algorithm's working state and
// is only valid until the next step.
func (s *Solver[S]) CurrentSolution() (S, error) {
	return s.algorithm.Solution()
}

// Reset clears the solver statistics and resets the algorithm to its
// initial state.
func (s *Solver[S]) Reset() {
	s.algorithm.Reset()
	s.elapsed = 0
	s.count = 0
}

// ForEach drains the solver lazily, passing each solution to fn until fn
// returns false or the search space is exhausted.
func (s *Solver[S]) ForEach(fn func(S) bool) {
	for s.Solve() {
		solution, err := s.CurrentSolution()
		if err != nil || !fn(solution) {
			return
		}
	}
}

// ForEachIn is ForEach with a per-solution time budget.
func (s *Solver[S]) ForEachIn(limit time.Duration, fn func(S) bool) {
	for s.SolveIn(limit) {
		solution, err := s.CurrentSolution()
		if err != nil || !fn(solution) {
			return
		}
	}
}

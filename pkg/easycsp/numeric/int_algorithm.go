package numeric

import (
	"sync/atomic"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// IntAlgorithm is a stateful solution generator over an integer problem.
// The contract matches algorithm.Algorithm with the integer solution type.
type IntAlgorithm[U any] interface {
	// Run performs one search step: it returns once a new solution is
	// found, the search space is exhausted, or Interrupt is observed.
	Run()
	// Interrupt signals the running step to return at its next safe
	// point. Safe to call from another goroutine.
	Interrupt()
	// IsRunning returns true while a step is in progress.
	IsRunning() bool
	// IsSuccessful returns true if the current solution is the next
	// solution to emit.
	IsSuccessful() bool
	// Solution returns the current solution, or easycsp.ErrNoSolution
	// when the algorithm is not successful.
	Solution() (*IntSolution[U], error)
	// Reset clears the solution and re-initializes the algorithm.
	Reset()
}

// IntFitness computes incrementally the score of a partial or complete
// integer solution.
type IntFitness[U any] func(s *IntSolution[U], variableIndex int, score float64) float64

type state[U any] struct {
	source     *IntProblem[U]
	solution   *IntSolution[U]
	running    atomic.Bool
	successful bool
}

func (s *state[U]) init(source *IntProblem[U]) {
	s.source = source
	s.solution = NewIntSolution(source)
}

func (s *state[U]) Interrupt() {
	s.running.Store(false)
}

func (s *state[U]) IsRunning() bool {
	return s.running.Load()
}

func (s *state[U]) IsSuccessful() bool {
	return s.successful
}

func (s *state[U]) Solution() (*IntSolution[U], error) {
	if !s.successful {
		return nil, easycsp.ErrNoSolution
	}
	return s.solution, nil
}

func (s *state[U]) resetState() {
	s.running.Store(false)
	s.successful = false
	s.solution.Clear()
}

// Package algorithm provides the search algorithms over generic problems:
// exhaustive backtracking, forward checking with minimum-remaining-values
// ordering, branch and bound optimization, greedy construction, and
// min-conflicts local search.
//
// Each algorithm is a stateful generator: Run drives the search until the
// next solution is found (IsSuccessful reports true) or the search space is
// exhausted. A subsequent Run resumes after the last solution. Interrupt
// may be called from another goroutine; the running step observes it at its
// next loop check and returns.
package algorithm

import (
	"sync/atomic"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// Algorithm is a stateful solution generator over a problem.
type Algorithm[U any, T comparable] interface {
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
	// Solution returns the current solution, or ErrNoSolution when the
	// algorithm is not successful. The returned solution is the
	// algorithm's working state: clone it to keep it across steps.
	Solution() (*easycsp.Solution[U, T], error)
	// Reset clears the solution and re-initializes the algorithm.
	Reset()
}

// Exhaustive is implemented by algorithms that enumerate the entire search
// space.
type Exhaustive interface {
	// InFinalState returns true once the search space is exhausted.
	InFinalState() bool
}

// Optimization is implemented by algorithms that optimize a scoring
// function.
type Optimization interface {
	// IsMinimize returns true if the objective is minimal evaluation.
	IsMinimize() bool
	// IsMaximize returns true if the objective is maximal evaluation.
	IsMaximize() bool
	// Evaluation returns the score of the best solution found so far.
	Evaluation() float64
}

// Fitness computes incrementally the score of a partial or complete
// solution: s is the solution, variableIndex the index of the variable
// assigned last, and score the score accumulated before that assignment.
type Fitness[U any, T comparable] func(s *easycsp.Solution[U, T], variableIndex int, score float64) float64

// state carries what every algorithm needs: the problem, the working
// solution, and the running/successful flags. The running flag is atomic
// because Interrupt crosses goroutines.
type state[U any, T comparable] struct {
	source     *easycsp.Problem[U, T]
	solution   *easycsp.Solution[U, T]
	running    atomic.Bool
	successful bool
}

func (s *state[U, T]) init(source *easycsp.Problem[U, T]) {
	s.source = source
	s.solution = easycsp.NewSolution(source)
}

func (s *state[U, T]) Interrupt() {
	s.running.Store(false)
}

func (s *state[U, T]) IsRunning() bool {
	return s.running.Load()
}

func (s *state[U, T]) IsSuccessful() bool {
	return s.successful
}

func (s *state[U, T]) Solution() (*easycsp.Solution[U, T], error) {
	if !s.successful {
		return nil, easycsp.ErrNoSolution
	}
	return s.solution, nil
}

func (s *state[U, T]) resetState() {
	s.running.Store(false)
	s.successful = false
	s.solution.Clear()
}

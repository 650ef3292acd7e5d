package algorithm

import (
	"math"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// Greedy builds one solution in a single sweep over the variables in
// declaration order, assigning each the conflict-free value its heuristic
// scores highest. It fails when some variable has no conflict-free value.
type Greedy[U any, T comparable] struct {
	state[U, T]
	heuristic Fitness[U, T]
}

// NewGreedy returns a greedy construction of the given problem. The
// heuristic receives the partial solution with the candidate value
// temporarily assigned at variableIndex; its score argument is the best
// heuristic value found so far for that variable, negative infinity before
// the first conflict-free candidate.
func NewGreedy[U any, T comparable](source *easycsp.Problem[U, T], heuristic Fitness[U, T]) *Greedy[U, T] {
	if heuristic == nil {
		panic("algorithm: heuristic is nil")
	}
	a := &Greedy[U, T]{heuristic: heuristic}
	a.state.init(source)
	return a
}

// Reset implements Algorithm.
func (a *Greedy[U, T]) Reset() {
	a.resetState()
}

// Run implements Algorithm.
func (a *Greedy[U, T]) Run() {
	a.running.Store(true)
	a.successful = false
	variableCount := a.source.VariableCount()
	for variableIndex := 0; variableIndex < variableCount; variableIndex++ {
		max := math.Inf(-1)
		var maxValue T
		found := false
		it := a.source.VariableAt(variableIndex).Domain().Iterator()
		for it.HasNext() {
			if !a.running.Load() {
				return // safe stopping point
			}
			value := it.Next()
			a.solution.Assign(variableIndex, value)
			if !a.source.HasConflictsWith(a.solution, variableIndex) {
				eval := a.heuristic(a.solution, variableIndex, max)
				a.solution.Unassign(variableIndex)
				if eval > max {
					max = eval
					maxValue = value
					found = true
				}
			}
		}
		if !found {
			a.solution.Unassign(variableIndex)
			a.running.Store(false)
			return
		}
		a.solution.Assign(variableIndex, maxValue)
	}
	a.successful = true
	a.running.Store(false)
}

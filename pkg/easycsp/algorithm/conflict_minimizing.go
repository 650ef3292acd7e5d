package algorithm

import (
	"math"
	"math/rand/v2"

	log "github.com/golang/glog"
	"github.com/samber/lo"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// ConflictMinimizing is the stochastic min-conflicts local search: every
// variable starts on a random value of its domain and the variable with the
// most violated incident constraints is repeatedly reassigned to its least
// conflicting value. Recommended for large or over-constrained problems
// where partial optima are acceptable.
type ConflictMinimizing[U any, T comparable] struct {
	state[U, T]
	global         bool
	conflicts      []int
	iterationLimit int64
}

// NewGlobalConflictMinimizing returns a min-conflicts search for a total
// solution: plateaus are escaped by kicking one random variable to a random
// value, and the search gives up once the iteration budget
// 2*|Z|*sum(|Di|) + 2*|C| is exceeded.
func NewGlobalConflictMinimizing[U any, T comparable](source *easycsp.Problem[U, T]) *ConflictMinimizing[U, T] {
	return newConflictMinimizing(source, true)
}

// NewLocalConflictMinimizing returns a min-conflicts search that accepts
// partial optima: the first plateau stops the search successfully.
func NewLocalConflictMinimizing[U any, T comparable](source *easycsp.Problem[U, T]) *ConflictMinimizing[U, T] {
	return newConflictMinimizing(source, false)
}

func newConflictMinimizing[U any, T comparable](source *easycsp.Problem[U, T], global bool) *ConflictMinimizing[U, T] {
	a := &ConflictMinimizing[U, T]{global: global}
	a.state.init(source)
	a.initComponents()
	return a
}

func (a *ConflictMinimizing[U, T]) initComponents() {
	variableCount := a.source.VariableCount()
	a.conflicts = make([]int, variableCount)
	allSizes := lo.SumBy(a.source.Variables(), func(v easycsp.Variable[U, T]) int64 {
		return int64(v.Domain().Size())
	})
	a.iterationLimit = 2*int64(variableCount)*allSizes + 2*int64(a.source.ConstraintCount())
}

// Reset implements Algorithm.
func (a *ConflictMinimizing[U, T]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements Algorithm.
func (a *ConflictMinimizing[U, T]) Run() {
	a.running.Store(true)
	a.successful = false
	// init assignments and conflicts:
	variableCount := a.source.VariableCount()
	for i := 0; i < variableCount; i++ {
		domain := a.source.VariableAt(i).Domain()
		if domain.IsEmpty() {
			a.running.Store(false)
			return
		}
		a.solution.AssignFromDomain(i, rand.IntN(domain.Size()))
	}
	a.initConflicts()
	// minimize conflicts:
	if a.global {
		var iterationCount int64
		for a.running.Load() {
			vi := a.nextVariable()
			if vi == -1 {
				break
			}
			iterationCount++
			if iterationCount > a.iterationLimit {
				if log.V(1) {
					log.Infof("min-conflicts: iteration budget %d exceeded on %s", a.iterationLimit, a.source.Name())
				}
				a.running.Store(false)
				return
			}
			a.assignVariable(vi)
			for a.running.Load() && a.initConflicts() {
				// plateau: kick one random variable
				vi = rand.IntN(variableCount)
				a.solution.AssignFromDomain(vi, rand.IntN(a.source.VariableAt(vi).Domain().Size()))
			}
		}
	} else {
		for a.running.Load() {
			vi := a.nextVariable()
			if vi == -1 {
				break
			}
			a.assignVariable(vi)
			if a.initConflicts() {
				// plateau: accept the partial optimum
				a.successful = true
				a.running.Store(false)
				return
			}
		}
	}
	if a.running.Load() {
		a.successful = true
	}
	a.running.Store(false)
}

// initConflicts recomputes the per-variable conflict counts and reports
// whether the whole vector is unchanged, which signals a plateau.
func (a *ConflictMinimizing[U, T]) initConflicts() bool {
	unchanged := true
	for i := range a.conflicts {
		count := a.source.CountConflictsWith(a.solution, i)
		unchanged = unchanged && a.conflicts[i] == count
		a.conflicts[i] = count
	}
	return unchanged
}

// nextVariable returns the variable with the largest positive conflict
// count, or -1 when no variable has conflicts.
func (a *ConflictMinimizing[U, T]) nextVariable() int {
	index, max := -1, 0
	for i, count := range a.conflicts {
		if count > max {
			max = count
			index = i
		}
	}
	return index
}

// assignVariable reassigns the variable to the domain value minimizing its
// conflict count.
func (a *ConflictMinimizing[U, T]) assignVariable(index int) {
	min := math.MaxInt
	var minValue T
	it := a.source.VariableAt(index).Domain().Iterator()
	for it.HasNext() {
		value := it.Next()
		a.solution.Assign(index, value)
		if count := a.source.CountConflictsWith(a.solution, index); count < min {
			min = count
			minValue = value
		}
	}
	a.solution.Assign(index, minValue)
}

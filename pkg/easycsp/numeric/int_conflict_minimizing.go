package numeric

import (
	"math"
	"math/rand/v2"

	log "github.com/golang/glog"
	"github.com/samber/lo"
)

// IntConflictMinimizing is min-conflicts local search over the original
// variables of an integer problem; auxiliary values ride along through the
// cascades of every reassignment.
type IntConflictMinimizing[U any] struct {
	state[U]
	global         bool
	conflicts      []int
	iterationLimit int64
}

var _ IntAlgorithm[any] = (*IntConflictMinimizing[any])(nil)

// NewIntGlobalConflictMinimizing returns a min-conflicts search for a
// total solution: plateaus are escaped by kicking one random variable to a
// random value, and the search gives up once the iteration budget
// 2*|Z|*sum(|Di|) + 2*|C| is exceeded.
func NewIntGlobalConflictMinimizing[U any](source *IntProblem[U]) *IntConflictMinimizing[U] {
	return newIntConflictMinimizing(source, true)
}

// NewIntLocalConflictMinimizing returns a min-conflicts search that
// accepts partial optima: the first plateau stops the search successfully.
func NewIntLocalConflictMinimizing[U any](source *IntProblem[U]) *IntConflictMinimizing[U] {
	return newIntConflictMinimizing(source, false)
}

func newIntConflictMinimizing[U any](source *IntProblem[U], global bool) *IntConflictMinimizing[U] {
	a := &IntConflictMinimizing[U]{global: global}
	a.state.init(source)
	a.initComponents()
	return a
}

func (a *IntConflictMinimizing[U]) initComponents() {
	originalVariableCount := a.source.OriginalVariableCount()
	a.conflicts = make([]int, originalVariableCount)
	allSizes := lo.SumBy(lo.Range(originalVariableCount), func(i int) int64 {
		return int64(a.source.VariableAt(i).IntDomain().Size())
	})
	a.iterationLimit = 2*int64(originalVariableCount)*allSizes + 2*int64(a.source.ConstraintCount())
}

// Reset implements IntAlgorithm.
func (a *IntConflictMinimizing[U]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements IntAlgorithm.
func (a *IntConflictMinimizing[U]) Run() {
	a.running.Store(true)
	a.successful = false
	// init assignments and conflicts:
	originalVariableCount := a.source.OriginalVariableCount()
	for i := 0; i < originalVariableCount; i++ {
		domain := a.source.VariableAt(i).IntDomain()
		if domain.IsEmpty() {
			a.running.Store(false)
			return
		}
		a.solution.Assign(i, domain.Get(rand.IntN(domain.Size())))
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
				vi = rand.IntN(originalVariableCount)
				domain := a.source.VariableAt(vi).IntDomain()
				a.solution.Assign(vi, domain.Get(rand.IntN(domain.Size())))
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

func (a *IntConflictMinimizing[U]) initConflicts() bool {
	unchanged := true
	for i := range a.conflicts {
		count := a.source.CountConflictsWith(a.solution, i)
		unchanged = unchanged && a.conflicts[i] == count
		a.conflicts[i] = count
	}
	return unchanged
}

func (a *IntConflictMinimizing[U]) nextVariable() int {
	index, max := -1, 0
	for i, count := range a.conflicts {
		if count > max {
			max = count
			index = i
		}
	}
	return index
}

func (a *IntConflictMinimizing[U]) assignVariable(index int) {
	min := math.MaxInt
	minValue := 0
	it := a.source.VariableAt(index).IntDomain().Iterator()
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

package numeric

import (
	"math"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// IntBranchAndBound is branch and bound optimization over the original
// variables of an integer problem, with assignments cascading through the
// auxiliaries. It emits one improving solution per step.
type IntBranchAndBound[U any] struct {
	state[U]
	// backtracking components:
	domains []easycsp.DomainIterator[int]
	index   int
	// solution score components:
	estimation IntFitness[U]
	evaluation IntFitness[U]
	option     float64
	scoreStack []float64
	bestScore  float64
}

var _ IntAlgorithm[any] = (*IntBranchAndBound[any])(nil)

// NewIntMinimization returns a branch and bound search for minimal
// evaluation solutions. The estimation function receives partial
// solutions, the evaluation function complete ones.
func NewIntMinimization[U any](source *IntProblem[U], estimation, evaluation IntFitness[U]) *IntBranchAndBound[U] {
	return newIntBranchAndBound(source, false, estimation, evaluation)
}

// NewIntMaximization returns a branch and bound search for maximal
// evaluation solutions. The estimation function receives partial
// solutions, the evaluation function complete ones.
func NewIntMaximization[U any](source *IntProblem[U], estimation, evaluation IntFitness[U]) *IntBranchAndBound[U] {
	return newIntBranchAndBound(source, true, estimation, evaluation)
}

func newIntBranchAndBound[U any](source *IntProblem[U], maximize bool, estimation, evaluation IntFitness[U]) *IntBranchAndBound[U] {
	if estimation == nil {
		panic("numeric: estimation is nil")
	}
	if evaluation == nil {
		panic("numeric: evaluation is nil")
	}
	a := &IntBranchAndBound[U]{
		estimation: estimation,
		evaluation: evaluation,
		option:     -1,
	}
	a.state.init(source)
	if maximize {
		a.option = 1
	}
	a.initComponents()
	return a
}

func (a *IntBranchAndBound[U]) initComponents() {
	originalVariableCount := a.source.OriginalVariableCount()
	a.index = 0
	a.domains = make([]easycsp.DomainIterator[int], originalVariableCount)
	for i := range a.domains {
		a.domains[i] = a.source.VariableAt(i).IntDomain().Iterator()
	}
	a.scoreStack = make([]float64, originalVariableCount)
	a.bestScore = math.Inf(-1)
}

// Reset implements IntAlgorithm.
func (a *IntBranchAndBound[U]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements IntAlgorithm.
func (a *IntBranchAndBound[U]) Run() {
	a.running.Store(true)
	a.successful = false
	for a.running.Load() && a.index > -1 {
		if a.domains[a.index].HasNext() {
			value := a.domains[a.index].Next()
			if a.solution.AssignAndCheck(a.index, value) {
				if a.index == len(a.domains)-1 {
					eval := a.option * a.evaluation(a.solution, a.index, a.scoreStack[a.index])
					if eval > a.bestScore {
						a.bestScore = eval
						a.successful = true
						a.running.Store(false)
						return
					}
				} else {
					esti := a.estimation(a.solution, a.index, a.scoreStack[a.index])
					if a.option*esti > a.bestScore {
						a.scoreStack[a.index+1] = esti
						a.index++
					}
				}
			}
		} else {
			a.domains[a.index].Reset()
			a.solution.Unassign(a.index)
			a.index--
		}
	}
	a.running.Store(false)
}

// InFinalState returns true once the search space is exhausted.
func (a *IntBranchAndBound[U]) InFinalState() bool {
	return a.index == -1
}

// IsMinimize returns true if the objective is minimal evaluation.
func (a *IntBranchAndBound[U]) IsMinimize() bool {
	return a.option != 1
}

// IsMaximize returns true if the objective is maximal evaluation.
func (a *IntBranchAndBound[U]) IsMaximize() bool {
	return a.option == 1
}

// Evaluation returns the best score under the caller's objective sign.
func (a *IntBranchAndBound[U]) Evaluation() float64 {
	return a.option * a.bestScore
}

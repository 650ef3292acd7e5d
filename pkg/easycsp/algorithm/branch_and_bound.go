package algorithm

import (
	"math"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// BranchAndBound is the exhaustive optimization enumeration: it emits one
// improving solution per step, in declaration order, pruning internal nodes
// whose estimation cannot beat the best score so far. Minimization and
// maximization are normalized through a sign so both maximize internally.
type BranchAndBound[U any, T comparable] struct {
	state[U, T]
	// backtracking components:
	domains []easycsp.DomainIterator[T]
	index   int
	// solution score components:
	estimation Fitness[U, T]
	evaluation Fitness[U, T]
	option     float64
	scoreStack []float64
	bestScore  float64
}

var (
	_ Algorithm[any, int] = (*BranchAndBound[any, int])(nil)
	_ Exhaustive          = (*BranchAndBound[any, int])(nil)
	_ Optimization        = (*BranchAndBound[any, int])(nil)
)

// NewMinimization returns a branch and bound search for minimal evaluation
// solutions. The estimation function receives partial solutions, the
// evaluation function complete ones.
func NewMinimization[U any, T comparable](source *easycsp.Problem[U, T], estimation, evaluation Fitness[U, T]) *BranchAndBound[U, T] {
	return newBranchAndBound(source, false, estimation, evaluation)
}

// NewMaximization returns a branch and bound search for maximal evaluation
// solutions. The estimation function receives partial solutions, the
// evaluation function complete ones.
func NewMaximization[U any, T comparable](source *easycsp.Problem[U, T], estimation, evaluation Fitness[U, T]) *BranchAndBound[U, T] {
	return newBranchAndBound(source, true, estimation, evaluation)
}

func newBranchAndBound[U any, T comparable](source *easycsp.Problem[U, T], maximize bool, estimation, evaluation Fitness[U, T]) *BranchAndBound[U, T] {
	if estimation == nil {
		panic("algorithm: estimation is nil")
	}
	if evaluation == nil {
		panic("algorithm: evaluation is nil")
	}
	a := &BranchAndBound[U, T]{
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

func (a *BranchAndBound[U, T]) initComponents() {
	a.index = 0
	a.domains = make([]easycsp.DomainIterator[T], a.source.VariableCount())
	for i := range a.domains {
		a.domains[i] = a.source.VariableAt(i).Domain().Iterator()
	}
	a.scoreStack = make([]float64, a.source.VariableCount())
	a.bestScore = math.Inf(-1)
}

// Reset implements Algorithm.
func (a *BranchAndBound[U, T]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements Algorithm.
func (a *BranchAndBound[U, T]) Run() {
	a.running.Store(true)
	a.successful = false
	for a.running.Load() && a.index > -1 {
		if a.domains[a.index].HasNext() {
			a.solution.Assign(a.index, a.domains[a.index].Next())
			if !a.source.HasConflictsWith(a.solution, a.index) {
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

// InFinalState implements Exhaustive.
func (a *BranchAndBound[U, T]) InFinalState() bool {
	return a.index == -1
}

// IsMinimize implements Optimization.
func (a *BranchAndBound[U, T]) IsMinimize() bool {
	return a.option != 1
}

// IsMaximize implements Optimization.
func (a *BranchAndBound[U, T]) IsMaximize() bool {
	return a.option == 1
}

// Evaluation implements Optimization, returning the best score under the
// caller's objective sign.
func (a *BranchAndBound[U, T]) Evaluation() float64 {
	return a.option * a.bestScore
}

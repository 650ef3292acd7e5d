package algorithm

import (
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// ForwardChecking is the exhaustive enumeration in minimum-remaining-values
// order: after each assignment the live values of every unassigned variable
// are checked against the partial solution, pruned positions are recorded
// in per-variable removed sets, and an undo trail keyed by the pruning
// level restores them on backtrack.
type ForwardChecking[U any, T comparable] struct {
	state[U, T]
	// backtracking components:
	stack   []int
	size    int
	domains []easycsp.DomainIterator[T]
	// forward-checking components:
	removed []*easycsp.IntDomain
	undo    [][]*easycsp.IntDomain
}

var (
	_ Algorithm[any, int] = (*ForwardChecking[any, int])(nil)
	_ Exhaustive          = (*ForwardChecking[any, int])(nil)
)

// NewForwardChecking returns a forward-checking enumeration of the given
// problem.
func NewForwardChecking[U any, T comparable](source *easycsp.Problem[U, T]) *ForwardChecking[U, T] {
	a := &ForwardChecking[U, T]{}
	a.state.init(source)
	a.initComponents()
	return a
}

func (a *ForwardChecking[U, T]) initComponents() {
	variableCount := a.source.VariableCount()
	a.stack = make([]int, variableCount)
	a.size = -1
	a.domains = make([]easycsp.DomainIterator[T], variableCount)
	a.removed = make([]*easycsp.IntDomain, variableCount)
	a.undo = make([][]*easycsp.IntDomain, variableCount)
	for i := 0; i < variableCount; i++ {
		a.domains[i] = a.source.VariableAt(i).Domain().Iterator()
		a.removed[i] = easycsp.NewIntDomain()
		a.undo[i] = make([]*easycsp.IntDomain, variableCount)
	}
}

// Reset implements Algorithm.
func (a *ForwardChecking[U, T]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements Algorithm.
func (a *ForwardChecking[U, T]) Run() {
	a.running.Store(true)
	a.successful = false
	if a.size == -1 {
		if firstIndex := a.check0(); firstIndex > -1 {
			a.stack[0] = firstIndex
			a.size = 1
		} else {
			a.size = 0
		}
	}
	for a.running.Load() && a.size > 0 {
		currentIndex := a.stack[a.size-1]
		if a.domains[currentIndex].HasNext() {
			value := a.domains[currentIndex].Next()
			if !a.removed[currentIndex].Contains(a.domains[currentIndex].CurrentIndex()) {
				a.solution.Assign(currentIndex, value)
				if a.size == len(a.domains) {
					a.successful = true
					a.running.Store(false)
					return
				}
				if nextIndex := a.check(currentIndex); nextIndex > -1 {
					a.stack[a.size] = nextIndex
					a.size++
				} else {
					a.undoDomainRemoves(currentIndex)
				}
			}
		} else {
			a.domains[currentIndex].Reset()
			a.solution.Unassign(currentIndex)
			a.size--
			if a.size > 0 {
				a.undoDomainRemoves(a.stack[a.size-1])
			}
		}
	}
	a.running.Store(false)
}

// check0 selects the starting variable: the smallest domain after node
// consistency has been applied into the removed sets. Returns -1 when a
// variable has no legal values left, making the search infeasible.
func (a *ForwardChecking[U, T]) check0() int {
	minVariable := 0
	minSize := a.source.VariableAt(0).Domain().Size()
	for i := 1; i < len(a.domains); i++ {
		if size := a.source.VariableAt(i).Domain().Size(); size < minSize {
			minSize = size
			minVariable = i
		}
	}
	for _, c := range a.source.Constraints() {
		if c.Degree() != easycsp.DegreeUnary {
			continue
		}
		variableIndex := c.VariableIndexAt(0)
		for a.domains[variableIndex].HasNext() {
			value := a.domains[variableIndex].Next()
			if !a.removed[variableIndex].Contains(a.domains[variableIndex].CurrentIndex()) {
				a.solution.Assign(variableIndex, value)
				if c.IsViolated(a.solution) {
					a.removed[variableIndex].Add(a.domains[variableIndex].CurrentIndex())
				}
			}
		}
		a.domains[variableIndex].Reset()
		a.solution.Unassign(variableIndex)
		domainSize := a.source.VariableAt(variableIndex).Domain().Size() - a.removed[variableIndex].Size()
		if domainSize == 0 {
			return -1
		}
		if domainSize < minSize {
			minSize = domainSize
			minVariable = variableIndex
		}
	}
	return minVariable
}

// check prunes the live values of every unassigned variable against the
// partial solution, recording prunings at level index, and returns the
// unassigned variable with the fewest live values, or -1 when a variable
// ran dry.
func (a *ForwardChecking[U, T]) check(index int) int {
	minVariable := -1
	minSize := -1
	for i := 0; i < len(a.domains); i++ {
		if a.solution.IsAssigned(i) {
			continue
		}
		j := 0
		for a.domains[i].HasNext() {
			value := a.domains[i].Next()
			if !a.removed[i].Contains(j) {
				a.solution.Assign(i, value)
				if a.source.HasConflictsWith(a.solution, i) {
					a.removed[i].Add(j)
					a.markForUndo(i, index, j)
				}
			}
			j++
		}
		a.domains[i].Reset()
		a.solution.Unassign(i)
		domainSize := a.source.VariableAt(i).Domain().Size() - a.removed[i].Size()
		if domainSize == 0 {
			return -1
		}
		if minVariable == -1 || domainSize < minSize {
			minSize = domainSize
			minVariable = i
		}
	}
	return minVariable
}

func (a *ForwardChecking[U, T]) markForUndo(variable, step, domainValueIndex int) {
	if a.undo[variable][step] == nil {
		a.undo[variable][step] = easycsp.NewIntSingletonDomain(domainValueIndex)
	} else {
		a.undo[variable][step].Add(domainValueIndex)
	}
}

func (a *ForwardChecking[U, T]) undoDomainRemoves(index int) {
	for i := 0; i < len(a.domains); i++ {
		if a.solution.IsAssigned(i) {
			continue
		}
		if pruned := a.undo[i][index]; pruned != nil {
			it := pruned.Iterator()
			for it.HasNext() {
				a.removed[i].Remove(it.Next())
			}
			pruned.Clear()
		}
	}
}

// InFinalState implements Exhaustive.
func (a *ForwardChecking[U, T]) InFinalState() bool {
	return a.size == 0
}

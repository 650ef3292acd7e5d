package numeric

import (
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// IntForwardChecking is forward checking with minimum-remaining-values
// ordering over the original variables of an integer problem. Auxiliary
// variables are never searched: their values cascade from the assignments,
// and a failing cascade rejects the assignment the same way a direct
// conflict does.
type IntForwardChecking[U any] struct {
	state[U]
	// backtracking components:
	stack   []int
	size    int
	domains []easycsp.DomainIterator[int]
	// forward-checking components:
	removed []*easycsp.IntDomain
	undo    [][]*easycsp.IntDomain
}

var _ IntAlgorithm[any] = (*IntForwardChecking[any])(nil)

// NewIntForwardChecking returns a forward-checking enumeration of the
// given problem.
func NewIntForwardChecking[U any](source *IntProblem[U]) *IntForwardChecking[U] {
	a := &IntForwardChecking[U]{}
	a.state.init(source)
	a.initComponents()
	return a
}

func (a *IntForwardChecking[U]) initComponents() {
	originalVariableCount := a.source.OriginalVariableCount()
	a.stack = make([]int, originalVariableCount)
	a.size = -1
	a.domains = make([]easycsp.DomainIterator[int], originalVariableCount)
	a.removed = make([]*easycsp.IntDomain, originalVariableCount)
	a.undo = make([][]*easycsp.IntDomain, originalVariableCount)
	for i := 0; i < originalVariableCount; i++ {
		a.domains[i] = a.source.VariableAt(i).IntDomain().Iterator()
		a.removed[i] = easycsp.NewIntDomain()
		a.undo[i] = make([]*easycsp.IntDomain, originalVariableCount)
	}
}

// Reset implements IntAlgorithm.
func (a *IntForwardChecking[U]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements IntAlgorithm.
func (a *IntForwardChecking[U]) Run() {
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
				if a.solution.AssignAndCheckAuxiliaries(currentIndex, value) {
					if a.solution.IsComplete() {
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
				} else {
					a.solution.Unassign(currentIndex)
				}
			}
		} else {
			a.solution.Unassign(currentIndex)
			a.domains[currentIndex].Reset()
			a.size--
			if a.size > 0 {
				a.undoDomainRemoves(a.stack[a.size-1])
			}
		}
	}
	a.running.Store(false)
}

// check0 selects the starting variable: the smallest domain after node
// consistency over the unary constraints of original variables has been
// applied into the removed sets. Returns -1 when a variable has no legal
// values left.
func (a *IntForwardChecking[U]) check0() int {
	minVariable := 0
	minSize := a.source.VariableAt(0).IntDomain().Size()
	for i := 1; i < len(a.domains); i++ {
		if size := a.source.VariableAt(i).IntDomain().Size(); size < minSize {
			minSize = size
			minVariable = i
		}
	}
	for _, c := range a.source.Constraints() {
		if c.Degree() != easycsp.DegreeUnary {
			continue
		}
		variableIndex := c.VariableIndexAt(0)
		variable := a.source.VariableAt(variableIndex)
		if variable.IsAuxiliary() {
			continue
		}
		for a.domains[variableIndex].HasNext() {
			value := a.domains[variableIndex].Next()
			if !a.removed[variableIndex].Contains(a.domains[variableIndex].CurrentIndex()) {
				a.solution.Solution.Assign(variableIndex, value)
				if c.IsViolated(a.solution) {
					a.removed[variableIndex].Add(a.domains[variableIndex].CurrentIndex())
				}
			}
		}
		a.solution.Solution.Unassign(variableIndex)
		a.domains[variableIndex].Reset()
		domainSize := variable.IntDomain().Size() - a.removed[variableIndex].Size()
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

// check prunes the live values of every unassigned original variable
// against the partial solution and its cascades, recording prunings at
// level index, and returns the unassigned variable with the fewest live
// values, or -1 when a variable ran dry.
func (a *IntForwardChecking[U]) check(index int) int {
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
				if !a.solution.AssignAndCheck(i, value) {
					a.removed[i].Add(j)
					a.markForUndo(i, index, j)
				}
				a.solution.Unassign(i)
			}
			j++
		}
		a.solution.Unassign(i)
		a.domains[i].Reset()
		domainSize := a.source.VariableAt(i).IntDomain().Size() - a.removed[i].Size()
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

func (a *IntForwardChecking[U]) markForUndo(variable, step, domainValueIndex int) {
	if a.undo[variable][step] == nil {
		a.undo[variable][step] = easycsp.NewIntSingletonDomain(domainValueIndex)
	} else {
		a.undo[variable][step].Add(domainValueIndex)
	}
}

func (a *IntForwardChecking[U]) undoDomainRemoves(index int) {
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

// InFinalState returns true once the search space is exhausted.
func (a *IntForwardChecking[U]) InFinalState() bool {
	return a.size == 0
}

package algorithm

import (
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// Backtracking is the exhaustive depth-first enumeration in variable
// declaration order.
type Backtracking[U any, T comparable] struct {
	state[U, T]
	domains []easycsp.DomainIterator[T]
	index   int
}

var (
	_ Algorithm[any, int] = (*Backtracking[any, int])(nil)
	_ Exhaustive          = (*Backtracking[any, int])(nil)
)

// NewBacktracking returns a backtracking enumeration of the given problem.
func NewBacktracking[U any, T comparable](source *easycsp.Problem[U, T]) *Backtracking[U, T] {
	a := &Backtracking[U, T]{}
	a.state.init(source)
	a.initComponents()
	return a
}

func (a *Backtracking[U, T]) initComponents() {
	a.domains = make([]easycsp.DomainIterator[T], a.source.VariableCount())
	for i := range a.domains {
		a.domains[i] = a.source.VariableAt(i).Domain().Iterator()
	}
	a.index = 0
}

// Reset implements Algorithm.
func (a *Backtracking[U, T]) Reset() {
	a.resetState()
	a.initComponents()
}

// Run implements Algorithm.
func (a *Backtracking[U, T]) Run() {
	a.running.Store(true)
	a.successful = false
	for a.running.Load() && a.index > -1 {
		if a.domains[a.index].HasNext() {
			a.solution.Assign(a.index, a.domains[a.index].Next())
			if !a.source.HasConflictsWith(a.solution, a.index) {
				if a.index == len(a.domains)-1 {
					a.successful = true
					a.running.Store(false)
					return
				}
				a.index++
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
func (a *Backtracking[U, T]) InFinalState() bool {
	return a.index == -1
}

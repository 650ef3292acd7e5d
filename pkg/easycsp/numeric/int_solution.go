package numeric

import (
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// IntSolution holds variable-value assignments for an integer problem and
// adds cascade semantics on top of the generic solution: assigning or
// unassigning a variable also derives or clears every auxiliary variable
// whose relation involves it, directly or through other auxiliaries.
// Auxiliaries are appended in creation order, so one ascending sweep
// resolves whole expression chains.
type IntSolution[U any] struct {
	*easycsp.Solution[U, int]
	src      *IntProblem[U]
	affected []bool
}

// NewIntSolution returns a solution for the given problem with every
// variable unassigned.
func NewIntSolution[U any](src *IntProblem[U]) *IntSolution[U] {
	return &IntSolution[U]{
		Solution: easycsp.NewSolution(src.graph),
		src:      src,
		affected: make([]bool, src.VariableCount()),
	}
}

// OriginalVariableCount returns the number of non-auxiliary variables.
func (s *IntSolution[U]) OriginalVariableCount() int {
	return s.src.OriginalVariableCount()
}

// Variable returns the variable at the given index.
func (s *IntSolution[U]) Variable(index int) *IntVariable[U] {
	return s.src.VariableAt(index)
}

// Assign cascade-assigns the variable at the given index: the value is set
// and every computable auxiliary affected by the variable is derived. No
// conflicts are checked.
func (s *IntSolution[U]) Assign(variableIndex, value int) {
	s.tryCascadeAssign(variableIndex, value, false)
}

// AssignFromDomain cascade-assigns the variable at the given index with
// the value at the given position of its own domain.
func (s *IntSolution[U]) AssignFromDomain(variableIndex, domainValueIndex int) {
	s.Assign(variableIndex, s.src.VariableAt(variableIndex).IntDomain().Get(domainValueIndex))
}

// AssignAndCheck cascade-assigns the variable at the given index, checking
// each assignment for conflicts. It returns false and stops the cascade as
// soon as a conflict is found.
func (s *IntSolution[U]) AssignAndCheck(variableIndex, value int) bool {
	return s.tryCascadeAssign(variableIndex, value, true)
}

// AssignAndCheckAuxiliaries cascade-assigns the variable at the given
// index, checking only the derived auxiliary assignments for conflicts. It
// returns false and stops the cascade as soon as a conflict is found.
func (s *IntSolution[U]) AssignAndCheckAuxiliaries(variableIndex, value int) bool {
	s.Solution.Assign(variableIndex, value)
	return s.assignAuxiliariesOf(variableIndex, true)
}

func (s *IntSolution[U]) tryCascadeAssign(variableIndex, value int, check bool) bool {
	s.Solution.Assign(variableIndex, value)
	if check && s.src.HasConflictsWith(s, variableIndex) {
		return false
	}
	return s.assignAuxiliariesOf(variableIndex, check)
}

// assignAuxiliariesOf derives, in ascending index order, every auxiliary
// whose relation involves the given variable or an auxiliary rederived
// earlier in the sweep, as soon as all of its inputs are assigned.
func (s *IntSolution[U]) assignAuxiliariesOf(variableIndex int, check bool) bool {
	affected := s.markAffected(variableIndex)
	variableCount := s.src.VariableCount()
	for i := s.src.OriginalVariableCount(); i < variableCount; i++ {
		switch r := s.src.VariableAt(i).Relation().(type) {
		case *BinaryRelation:
			if (affected[r.Input0()] || affected[r.Input1()]) &&
				s.IsAssigned(r.Input0()) && s.IsAssigned(r.Input1()) {
				s.Solution.Assign(i, r.Compute(s.Value(r.Input0()), s.Value(r.Input1())))
				affected[i] = true
				if check && s.src.HasConflictsWith(s, i) {
					return false
				}
			}
		case *UnaryRelation:
			if affected[r.Input()] && s.IsAssigned(r.Input()) {
				s.Solution.Assign(i, r.Compute(s.Value(r.Input())))
				affected[i] = true
				if check && s.src.HasConflictsWith(s, i) {
					return false
				}
			}
		}
	}
	return true
}

// Unassign cascade-unassigns the variable at the given index and every
// auxiliary depending on it, directly or through other auxiliaries.
func (s *IntSolution[U]) Unassign(variableIndex int) {
	s.Solution.Unassign(variableIndex)
	affected := s.markAffected(variableIndex)
	variableCount := s.src.VariableCount()
	for i := s.src.OriginalVariableCount(); i < variableCount; i++ {
		r := s.src.VariableAt(i).Relation()
		switch r := r.(type) {
		case *BinaryRelation:
			if affected[r.Input0()] || affected[r.Input1()] {
				s.Solution.Unassign(i)
				affected[i] = true
			}
		case *UnaryRelation:
			if affected[r.Input()] {
				s.Solution.Unassign(i)
				affected[i] = true
			}
		}
	}
}

func (s *IntSolution[U]) markAffected(variableIndex int) []bool {
	clear(s.affected)
	s.affected[variableIndex] = true
	return s.affected
}

// Clone returns a snapshot of this solution over the same problem.
func (s *IntSolution[U]) Clone() *IntSolution[U] {
	return &IntSolution[U]{
		Solution: s.Solution.Clone(),
		src:      s.src,
		affected: make([]bool, s.src.VariableCount()),
	}
}

// StringOriginal strings just the original variables, hiding the derived
// auxiliaries.
func (s *IntSolution[U]) StringOriginal() string {
	return s.StringFirst(s.src.OriginalVariableCount())
}

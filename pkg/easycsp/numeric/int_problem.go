package numeric

import (
	"github.com/samber/lo"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// IntProblem holds the graph of an integer CSP(Z,D,C). The variable vector
// starts with the original variables and continues with the auxiliaries
// synthesized by the builder's expression chains; OriginalVariableCount
// tells them apart. Consistency pre-processing is not available on the
// integer dialect: algorithms derive auxiliary values instead of searching
// their domains.
type IntProblem[U any] struct {
	graph                 *easycsp.Problem[U, int]
	variables             []*IntVariable[U]
	originalVariableCount int
}

func newIntProblem[U any](name string, originalVariableCount int, variables []*IntVariable[U], constraints []*easycsp.Constraint[U, int]) *IntProblem[U] {
	graphVariables := lo.Map(variables, func(v *IntVariable[U], _ int) easycsp.Variable[U, int] {
		return v
	})
	return &IntProblem[U]{
		graph:                 easycsp.NewProblem(name, graphVariables, constraints),
		variables:             variables,
		originalVariableCount: originalVariableCount,
	}
}

// Name returns the name of the problem.
func (p *IntProblem[U]) Name() string {
	return p.graph.Name()
}

// VariableCount returns the number of variables, auxiliaries included.
func (p *IntProblem[U]) VariableCount() int {
	return len(p.variables)
}

// OriginalVariableCount returns the number of non-auxiliary variables; they
// precede the auxiliaries in the variable vector.
func (p *IntProblem[U]) OriginalVariableCount() int {
	return p.originalVariableCount
}

// VariableAt returns the variable at the given index.
func (p *IntProblem[U]) VariableAt(index int) *IntVariable[U] {
	return p.variables[index]
}

// DegreeOfVariableAt returns how many constraints involve the variable at
// the given index.
func (p *IntProblem[U]) DegreeOfVariableAt(index int) int {
	return p.graph.DegreeOfVariableAt(index)
}

// ConstraintCount returns the number of constraints.
func (p *IntProblem[U]) ConstraintCount() int {
	return p.graph.ConstraintCount()
}

// Constraints returns the constraint vector. The returned slice must not
// be modified.
func (p *IntProblem[U]) Constraints() []*easycsp.Constraint[U, int] {
	return p.graph.Constraints()
}

// IsSatisfied returns true if the given solution is complete and violates
// no constraint of this problem.
func (p *IntProblem[U]) IsSatisfied(s *IntSolution[U]) bool {
	return p.graph.IsSatisfied(s.Solution)
}

// HasConflicts returns true if the given solution violates any constraint.
func (p *IntProblem[U]) HasConflicts(s *IntSolution[U]) bool {
	return p.graph.HasConflicts(s.Solution)
}

// HasConflictsWith returns true if the given solution violates any
// constraint incident to the variable at the given index.
func (p *IntProblem[U]) HasConflictsWith(s *IntSolution[U], variableIndex int) bool {
	return p.graph.HasConflictsWith(s.Solution, variableIndex)
}

// CountConflicts counts the constraints violated by the given solution.
func (p *IntProblem[U]) CountConflicts(s *IntSolution[U]) int {
	return p.graph.CountConflicts(s.Solution)
}

// CountConflictsWith counts the constraints incident to the variable at the
// given index that the given solution violates.
func (p *IntProblem[U]) CountConflictsWith(s *IntSolution[U], variableIndex int) int {
	return p.graph.CountConflictsWith(s.Solution, variableIndex)
}

// String implements fmt.Stringer.
func (p *IntProblem[U]) String() string {
	return p.graph.String()
}

package easycsp

import (
	"errors"
	"fmt"
)

// ErrEmptyDomain is the panic value of Min/Max on an empty IntDomain.
var ErrEmptyDomain = errors.New("easycsp: domain is empty")

// ErrNoSolution is returned when asking an algorithm for its solution while
// it is not successful.
var ErrNoSolution = errors.New("easycsp: algorithm has no current solution")

// ErrBuilderExhausted is the panic value of builder methods invoked after
// Build.
var ErrBuilderExhausted = errors.New("easycsp: builder already built its problem")

// ErrIteratorState is the panic value of DomainIterator.Remove before the
// first Next.
var ErrIteratorState = errors.New("easycsp: iterator remove called before next")

// OutOfRangeError reports indexed access past a domain's size.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("easycsp: index %d out of range, size %d", e.Index, e.Size)
}

// UnassignedVariableError reports reading the value of a variable that is
// currently unassigned.
type UnassignedVariableError struct {
	VariableIndex int
}

func (e *UnassignedVariableError) Error() string {
	return fmt.Sprintf("easycsp: variable at index %d is unassigned", e.VariableIndex)
}

// OverconstrainedError reports that consistency pre-processing found a
// variable whose domain would be emptied. The problem is left unchanged.
type OverconstrainedError struct {
	VariableIndex int
}

func (e *OverconstrainedError) Error() string {
	return fmt.Sprintf("easycsp: over-constrained, no legal values for variable at index %d", e.VariableIndex)
}

// SharedDomainError reports two variables referencing the same domain
// instance at pre-processing time.
type SharedDomainError struct {
	I int
	J int
}

func (e *SharedDomainError) Error() string {
	return fmt.Sprintf("easycsp: variables at indexes %d and %d share the same domain instance", e.I, e.J)
}

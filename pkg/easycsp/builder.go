package easycsp

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Builder assembles variables and constraints into a Problem. A builder is
// exhausted after Build: any further use panics with ErrBuilderExhausted.
type Builder[U any, T comparable] struct {
	name             string
	variables        []Variable[U, T]
	constraints      []*Constraint[U, T]
	constraintIDSeed int
	built            bool
}

// Of returns a builder for varCount variables sharing the given domain.
// An empty name is replaced by a fresh uuid.
func Of[U any, T comparable](name string, varCount int, sharedDomain Domain[T]) *Builder[U, T] {
	return newBuilder(name, lo.RepeatBy(varCount, func(i int) Variable[U, T] {
		return NewVariable[U](i, sharedDomain)
	}))
}

// OfDomains returns a builder with one variable per given domain.
func OfDomains[U any, T comparable](name string, domains ...Domain[T]) *Builder[U, T] {
	return newBuilder(name, lo.Map(domains, func(d Domain[T], i int) Variable[U, T] {
		return NewVariable[U](i, d)
	}))
}

// OfData returns a builder with one variable per payload, all sharing the
// given domain.
func OfData[U any, T comparable](name string, sharedDomain Domain[T], varData ...U) *Builder[U, T] {
	return newBuilder(name, lo.Map(varData, func(payload U, i int) Variable[U, T] {
		return NewVariableWith(i, payload, sharedDomain)
	}))
}

// OfVariables returns a builder over the given variables.
func OfVariables[U any, T comparable](name string, variables ...Variable[U, T]) *Builder[U, T] {
	return newBuilder(name, variables)
}

func newBuilder[U any, T comparable](name string, variables []Variable[U, T]) *Builder[U, T] {
	if len(variables) == 0 {
		panic("easycsp: builder without variables")
	}
	return &Builder[U, T]{name: problemName(name), variables: variables}
}

func problemName(name string) string {
	if name == "" {
		return uuid.NewString()
	}
	return name
}

func (b *Builder[U, T]) ensureUsable() {
	if b.built {
		panic(ErrBuilderExhausted)
	}
}

// Constrain adds an n-ary constraint with the given condition on the
// variables at the given indices.
func (b *Builder[U, T]) Constrain(condition Predicate[U, T], indices ...int) *Builder[U, T] {
	b.ensureUsable()
	b.constraintIDSeed++
	b.constraints = append(b.constraints, NewConstraint(b.constraintIDSeed, indices, condition))
	return b
}

// ConstrainEach constrains every variable with the given unary condition.
func (b *Builder[U, T]) ConstrainEach(unaryCondition Predicate[U, T]) *Builder[U, T] {
	return b.ConstrainEachInRange(unaryCondition, 0, len(b.variables))
}

// ConstrainEachOf constrains each of the given variables with the given
// unary condition.
func (b *Builder[U, T]) ConstrainEachOf(unaryCondition Predicate[U, T], indices ...int) *Builder[U, T] {
	for _, i := range indices {
		b.Constrain(unaryCondition, i)
	}
	return b
}

// ConstrainEachInRange constrains every variable in [start, end) with the
// given unary condition.
func (b *Builder[U, T]) ConstrainEachInRange(unaryCondition Predicate[U, T], start, end int) *Builder[U, T] {
	for i := start; i < end; i++ {
		b.Constrain(unaryCondition, i)
	}
	return b
}

// ConstrainSequentially constrains every two consecutive variables with the
// given binary condition.
func (b *Builder[U, T]) ConstrainSequentially(binaryCondition Predicate[U, T]) *Builder[U, T] {
	return b.ConstrainSequentiallyInRange(binaryCondition, 0, len(b.variables))
}

// ConstrainSequentiallyOf constrains consecutive pairs of the given
// variables with the given binary condition.
func (b *Builder[U, T]) ConstrainSequentiallyOf(binaryCondition Predicate[U, T], indices ...int) *Builder[U, T] {
	for i := 0; i < len(indices)-1; i++ {
		b.Constrain(binaryCondition, indices[i], indices[i+1])
	}
	return b
}

// ConstrainSequentiallyInRange constrains every two consecutive variables
// in [start, end) with the given binary condition.
func (b *Builder[U, T]) ConstrainSequentiallyInRange(binaryCondition Predicate[U, T], start, end int) *Builder[U, T] {
	for i := start; i < end-1; i++ {
		b.Constrain(binaryCondition, i, i+1)
	}
	return b
}

// ConstrainEachTwo constrains each distinct pair of variables with the
// given binary condition.
func (b *Builder[U, T]) ConstrainEachTwo(binaryCondition Predicate[U, T]) *Builder[U, T] {
	return b.ConstrainEachTwoInRange(binaryCondition, 0, len(b.variables))
}

// ConstrainEachTwoOf constrains each distinct pair of the given variables
// with the given binary condition.
func (b *Builder[U, T]) ConstrainEachTwoOf(binaryCondition Predicate[U, T], indices ...int) *Builder[U, T] {
	for i := 0; i < len(indices)-1; i++ {
		for j := i + 1; j < len(indices); j++ {
			b.Constrain(binaryCondition, indices[i], indices[j])
		}
	}
	return b
}

// ConstrainEachTwoInRange constrains each distinct pair of variables in
// [start, end) with the given binary condition.
func (b *Builder[U, T]) ConstrainEachTwoInRange(binaryCondition Predicate[U, T], start, end int) *Builder[U, T] {
	for i := start; i < end-1; i++ {
		for j := i + 1; j < end; j++ {
			b.Constrain(binaryCondition, i, j)
		}
	}
	return b
}

// Build finalizes the builder and returns the problem.
func (b *Builder[U, T]) Build() *Problem[U, T] {
	b.ensureUsable()
	b.built = true
	return NewProblem(b.name, b.variables, b.constraints)
}

package numeric

import (
	"errors"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// ErrDivisionByZero is the panic value of dividing a term by the constant
// zero.
var ErrDivisionByZero = errors.New("numeric: division by zero")

// IntBuilder assembles integer variables and constraints into an
// IntProblem. Besides the plain constraining methods it offers arithmetic
// expression chains through ConstrainVar: each arithmetic operator
// synthesizes an auxiliary variable pinned to its inputs by a binary or
// ternary constraint, so n-ary arithmetic decomposes into constraints the
// search algorithms can propagate.
//
// A builder is exhausted after Build: any further use panics with
// easycsp.ErrBuilderExhausted.
type IntBuilder[U any] struct {
	name                  string
	variables             []*IntVariable[U]
	constraints           []*easycsp.Constraint[U, int]
	constraintIDSeed      int
	variableIDSeed        int
	originalVariableCount int
	pendingInfix          *infixConstraint[U]
	built                 bool
}

type infixConstraint[U any] struct {
	binaryCondition easycsp.Predicate[U, int]
	var0Index       int
	var1Index       int
}

// Of returns a builder for varCount variables sharing the given domain.
// An empty name is replaced by a fresh uuid.
func Of[U any](name string, varCount int, sharedDomain *easycsp.IntDomain) *IntBuilder[U] {
	return newIntBuilder(name, lo.RepeatBy(varCount, func(i int) *IntVariable[U] {
		return NewIntVariable[U](i, sharedDomain)
	}))
}

// OfDomains returns a builder with one variable per given domain.
func OfDomains[U any](name string, domains ...*easycsp.IntDomain) *IntBuilder[U] {
	return newIntBuilder(name, lo.Map(domains, func(d *easycsp.IntDomain, i int) *IntVariable[U] {
		return NewIntVariable[U](i, d)
	}))
}

// OfData returns a builder with one variable per payload, all sharing the
// given domain.
func OfData[U any](name string, sharedDomain *easycsp.IntDomain, varData ...U) *IntBuilder[U] {
	return newIntBuilder(name, lo.Map(varData, func(payload U, i int) *IntVariable[U] {
		return NewIntVariableWith(i, payload, sharedDomain)
	}))
}

// OfVariables returns a builder over the given variables.
func OfVariables[U any](name string, variables ...*IntVariable[U]) *IntBuilder[U] {
	return newIntBuilder(name, variables)
}

func newIntBuilder[U any](name string, variables []*IntVariable[U]) *IntBuilder[U] {
	if len(variables) == 0 {
		panic("numeric: builder without variables")
	}
	if name == "" {
		name = uuid.NewString()
	}
	return &IntBuilder[U]{
		name:                  name,
		variables:             variables,
		originalVariableCount: len(variables),
	}
}

func (b *IntBuilder[U]) ensureUsable() {
	if b.built {
		panic(easycsp.ErrBuilderExhausted)
	}
}

// Constrain adds an n-ary constraint with the given condition on the
// variables at the given indices.
func (b *IntBuilder[U]) Constrain(condition easycsp.Predicate[U, int], indices ...int) *IntBuilder[U] {
	b.ensureUsable()
	b.constraintIDSeed++
	b.constraints = append(b.constraints, easycsp.NewConstraint(b.constraintIDSeed, indices, condition))
	return b
}

// ConstrainEach constrains every original variable with the given unary
// condition.
func (b *IntBuilder[U]) ConstrainEach(unaryCondition easycsp.Predicate[U, int]) *IntBuilder[U] {
	return b.ConstrainEachInRange(unaryCondition, 0, b.originalVariableCount)
}

// ConstrainEachOf constrains each of the given variables with the given
// unary condition.
func (b *IntBuilder[U]) ConstrainEachOf(unaryCondition easycsp.Predicate[U, int], indices ...int) *IntBuilder[U] {
	for _, i := range indices {
		b.Constrain(unaryCondition, i)
	}
	return b
}

// ConstrainEachInRange constrains every variable in [start, end) with the
// given unary condition.
func (b *IntBuilder[U]) ConstrainEachInRange(unaryCondition easycsp.Predicate[U, int], start, end int) *IntBuilder[U] {
	for i := start; i < end; i++ {
		b.Constrain(unaryCondition, i)
	}
	return b
}

// ConstrainSequentially constrains every two consecutive original
// variables with the given binary condition.
func (b *IntBuilder[U]) ConstrainSequentially(binaryCondition easycsp.Predicate[U, int]) *IntBuilder[U] {
	return b.ConstrainSequentiallyInRange(binaryCondition, 0, b.originalVariableCount)
}

// ConstrainSequentiallyOf constrains consecutive pairs of the given
// variables with the given binary condition.
func (b *IntBuilder[U]) ConstrainSequentiallyOf(binaryCondition easycsp.Predicate[U, int], indices ...int) *IntBuilder[U] {
	for i := 0; i < len(indices)-1; i++ {
		b.Constrain(binaryCondition, indices[i], indices[i+1])
	}
	return b
}

// ConstrainSequentiallyInRange constrains every two consecutive variables
// in [start, end) with the given binary condition.
func (b *IntBuilder[U]) ConstrainSequentiallyInRange(binaryCondition easycsp.Predicate[U, int], start, end int) *IntBuilder[U] {
	for i := start; i < end-1; i++ {
		b.Constrain(binaryCondition, i, i+1)
	}
	return b
}

// ConstrainEachTwo constrains each distinct pair of original variables
// with the given binary condition.
func (b *IntBuilder[U]) ConstrainEachTwo(binaryCondition easycsp.Predicate[U, int]) *IntBuilder[U] {
	return b.ConstrainEachTwoInRange(binaryCondition, 0, b.originalVariableCount)
}

// ConstrainEachTwoOf constrains each distinct pair of the given variables
// with the given binary condition.
func (b *IntBuilder[U]) ConstrainEachTwoOf(binaryCondition easycsp.Predicate[U, int], indices ...int) *IntBuilder[U] {
	for i := 0; i < len(indices)-1; i++ {
		for j := i + 1; j < len(indices); j++ {
			b.Constrain(binaryCondition, indices[i], indices[j])
		}
	}
	return b
}

// ConstrainEachTwoInRange constrains each distinct pair of variables in
// [start, end) with the given binary condition.
func (b *IntBuilder[U]) ConstrainEachTwoInRange(binaryCondition easycsp.Predicate[U, int], start, end int) *IntBuilder[U] {
	for i := start; i < end-1; i++ {
		for j := i + 1; j < end; j++ {
			b.Constrain(binaryCondition, i, j)
		}
	}
	return b
}

// ConstrainVar opens an arithmetic expression chain on the variable at the
// given index. Arithmetic operators return another term; comparison
// operators close the chain against a value, or pend a relation against
// the next chain when comparing to a variable.
func (b *IntBuilder[U]) ConstrainVar(var0Index int) *Term[U] {
	b.ensureUsable()
	b.flushPendingInfix()
	return &Term[U]{builder: b, index: var0Index}
}

func (b *IntBuilder[U]) flushPendingInfix() {
	if b.pendingInfix != nil {
		pending := b.pendingInfix
		b.pendingInfix = nil
		b.Constrain(pending.binaryCondition, pending.var0Index, pending.var1Index)
	}
}

// Build finalizes the builder and returns the problem.
func (b *IntBuilder[U]) Build() *IntProblem[U] {
	b.ensureUsable()
	b.flushPendingInfix()
	b.built = true
	return newIntProblem(b.name, b.originalVariableCount, b.variables, b.constraints)
}

// Term is an arithmetic expression position: the variable (original or
// auxiliary) holding the value of the expression so far. Comparison
// methods close or pend the chain.
type Term[U any] struct {
	builder *IntBuilder[U]
	index   int
}

// Index returns the index of the variable carrying the term's value.
func (t *Term[U]) Index() int {
	return t.index
}

func (t *Term[U]) registerAuxiliary(relation Relation) int {
	b := t.builder
	b.variableIDSeed--
	b.variables = append(b.variables, newAuxiliaryVariable[U](b.variableIDSeed, relation))
	return len(b.variables) - 1
}

func (t *Term[U]) constrainUnary(unary easycsp.Predicate[U, int]) {
	t.builder.Constrain(unary, t.index)
}

// constrainBinary pins a new auxiliary to this term through a binary
// constraint and returns the auxiliary as the next term.
func (t *Term[U]) constrainBinary(binary easycsp.Predicate[U, int], apply func(int) int) *Term[U] {
	auxIndex := t.registerAuxiliary(newUnaryRelation(t.index, apply))
	t.builder.Constrain(binary, t.index, auxIndex)
	return t.next(auxIndex)
}

// constrainTernary pins a new auxiliary to this term and a second variable
// through a ternary constraint and returns the auxiliary as the next term.
func (t *Term[U]) constrainTernary(ternary easycsp.Predicate[U, int], var1Index int, apply func(int, int) int) *Term[U] {
	auxIndex := t.registerAuxiliary(newBinaryRelation(t.index, var1Index, apply))
	t.builder.Constrain(ternary, t.index, var1Index, auxIndex)
	return t.next(auxIndex)
}

// next keeps a pending infix comparison anchored to the newest auxiliary
// of the right-hand chain.
func (t *Term[U]) next(auxIndex int) *Term[U] {
	if pending := t.builder.pendingInfix; pending != nil && pending.var1Index == t.index {
		pending.var1Index = auxIndex
	}
	return &Term[U]{builder: t.builder, index: auxIndex}
}

// Plus derives term + value.
func (t *Term[U]) Plus(value int) *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)+value == a.Value(1) },
		func(i0 int) int { return i0 + value })
}

// PlusVar derives term + variable.
func (t *Term[U]) PlusVar(var1Index int) *Term[U] {
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)+a.Value(1) == a.Value(2) },
		var1Index,
		func(i0, i1 int) int { return i0 + i1 })
}

// Minus derives term - value.
func (t *Term[U]) Minus(value int) *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)-value == a.Value(1) },
		func(i0 int) int { return i0 - value })
}

// MinusVar derives term - variable.
func (t *Term[U]) MinusVar(var1Index int) *Term[U] {
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)-a.Value(1) == a.Value(2) },
		var1Index,
		func(i0, i1 int) int { return i0 - i1 })
}

// MultipliedBy derives term * value.
func (t *Term[U]) MultipliedBy(value int) *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)*value == a.Value(1) },
		func(i0 int) int { return i0 * value })
}

// MultipliedByVar derives term * variable.
func (t *Term[U]) MultipliedByVar(var1Index int) *Term[U] {
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)*a.Value(1) == a.Value(2) },
		var1Index,
		func(i0, i1 int) int { return i0 * i1 })
}

// DividedBy derives term / value. It panics with ErrDivisionByZero when
// value is zero.
func (t *Term[U]) DividedBy(value int) *Term[U] {
	if value == 0 {
		panic(ErrDivisionByZero)
	}
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return a.Value(0)/value == a.Value(1) },
		func(i0 int) int { return i0 / value })
}

// DividedByVar derives term / variable. A zero divisor value violates the
// pinning constraint, so searches prune it rather than divide by zero.
func (t *Term[U]) DividedByVar(var1Index int) *Term[U] {
	if divisor := t.builder.variables[var1Index]; !divisor.IsAuxiliary() && divisor.IntDomain().Contains(0) {
		log.Warningf("numeric: divisor variable %d domain %v contains 0; zero values cannot satisfy the division", var1Index, divisor.IntDomain())
	}
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool {
			return a.Value(1) != 0 && a.Value(0)/a.Value(1) == a.Value(2)
		},
		var1Index,
		func(i0, i1 int) int {
			if i1 == 0 {
				return 0
			}
			return i0 / i1
		})
}

// MaxBy derives max(term, value).
func (t *Term[U]) MaxBy(value int) *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return max(a.Value(0), value) == a.Value(1) },
		func(i0 int) int { return max(i0, value) })
}

// MaxByVar derives max(term, variable).
func (t *Term[U]) MaxByVar(var1Index int) *Term[U] {
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool { return max(a.Value(0), a.Value(1)) == a.Value(2) },
		var1Index,
		func(i0, i1 int) int { return max(i0, i1) })
}

// MinBy derives min(term, value).
func (t *Term[U]) MinBy(value int) *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return min(a.Value(0), value) == a.Value(1) },
		func(i0 int) int { return min(i0, value) })
}

// MinByVar derives min(term, variable).
func (t *Term[U]) MinByVar(var1Index int) *Term[U] {
	return t.constrainTernary(
		func(a easycsp.Assignments[U, int]) bool { return min(a.Value(0), a.Value(1)) == a.Value(2) },
		var1Index,
		func(i0, i1 int) int { return min(i0, i1) })
}

// Abs derives |term|.
func (t *Term[U]) Abs() *Term[U] {
	return t.constrainBinary(
		func(a easycsp.Assignments[U, int]) bool { return abs(a.Value(0)) == a.Value(1) },
		abs)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

// Equals closes the chain: term == value.
func (t *Term[U]) Equals(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) == value })
}

// EqualsVar pends term == variable against the right-hand chain.
func (t *Term[U]) EqualsVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) == a.Value(1) })
}

// NotEquals closes the chain: term != value.
func (t *Term[U]) NotEquals(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) != value })
}

// NotEqualsVar pends term != variable against the right-hand chain.
func (t *Term[U]) NotEqualsVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) != a.Value(1) })
}

// GreaterThan closes the chain: term > value.
func (t *Term[U]) GreaterThan(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) > value })
}

// GreaterThanVar pends term > variable against the right-hand chain.
func (t *Term[U]) GreaterThanVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) > a.Value(1) })
}

// GreaterOrEquals closes the chain: term >= value.
func (t *Term[U]) GreaterOrEquals(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) >= value })
}

// GreaterOrEqualsVar pends term >= variable against the right-hand chain.
func (t *Term[U]) GreaterOrEqualsVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) >= a.Value(1) })
}

// LessThan closes the chain: term < value.
func (t *Term[U]) LessThan(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) < value })
}

// LessThanVar pends term < variable against the right-hand chain.
func (t *Term[U]) LessThanVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) < a.Value(1) })
}

// LessOrEquals closes the chain: term <= value.
func (t *Term[U]) LessOrEquals(value int) {
	t.constrainUnary(func(a easycsp.Assignments[U, int]) bool { return a.Value(0) <= value })
}

// LessOrEqualsVar pends term <= variable against the right-hand chain.
func (t *Term[U]) LessOrEqualsVar(var1Index int) *Term[U] {
	return t.pendInfix(var1Index, func(a easycsp.Assignments[U, int]) bool { return a.Value(0) <= a.Value(1) })
}

// pendInfix stashes a binary comparison between this term and the
// right-hand chain opened at var1Index. The constraint is emitted against
// the right-hand chain's last term at the next ConstrainVar or at Build.
func (t *Term[U]) pendInfix(var1Index int, binaryCondition easycsp.Predicate[U, int]) *Term[U] {
	t.builder.flushPendingInfix()
	t.builder.pendingInfix = &infixConstraint[U]{
		binaryCondition: binaryCondition,
		var0Index:       t.index,
		var1Index:       var1Index,
	}
	return &Term[U]{builder: t.builder, index: var1Index}
}

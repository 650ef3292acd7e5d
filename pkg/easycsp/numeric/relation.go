package numeric

// Relation is the pinned function of an auxiliary variable: its value is
// derived from one or two other variables' values. Relations must never be
// computed with unassigned inputs; the cascade-assign logic gates each call
// on the assignment of every input.
type Relation interface {
	// Involves returns true if the relation reads the variable at the
	// given index.
	Involves(variableIndex int) bool
}

// UnaryRelation derives a value from one input variable.
type UnaryRelation struct {
	input int
	apply func(int) int
}

func newUnaryRelation(input int, apply func(int) int) *UnaryRelation {
	return &UnaryRelation{input: input, apply: apply}
}

// Input returns the index of the input variable.
func (r *UnaryRelation) Input() int {
	return r.input
}

// Involves implements Relation.
func (r *UnaryRelation) Involves(variableIndex int) bool {
	return r.input == variableIndex
}

// Compute returns the derived value for the given input value.
func (r *UnaryRelation) Compute(value int) int {
	return r.apply(value)
}

// BinaryRelation derives a value from two input variables.
type BinaryRelation struct {
	input0 int
	input1 int
	apply  func(int, int) int
}

func newBinaryRelation(input0, input1 int, apply func(int, int) int) *BinaryRelation {
	return &BinaryRelation{input0: input0, input1: input1, apply: apply}
}

// Input0 returns the index of the first input variable.
func (r *BinaryRelation) Input0() int {
	return r.input0
}

// Input1 returns the index of the second input variable.
func (r *BinaryRelation) Input1() int {
	return r.input1
}

// Involves implements Relation.
func (r *BinaryRelation) Involves(variableIndex int) bool {
	return r.input0 == variableIndex || r.input1 == variableIndex
}

// Compute returns the derived value for the given input values.
func (r *BinaryRelation) Compute(value0, value1 int) int {
	return r.apply(value0, value1)
}

package easycsp

import (
	log "github.com/golang/glog"
)

// AchieveNodeConsistency removes the values that are illegal w.r.t. the
// unary constraints from the variable domains (AC-1 over unary
// constraints). On an *OverconstrainedError every domain is left unchanged.
// Unary constraints are inert afterwards, since no remaining value can
// violate them.
//
// Variables must not share domain instances; a *SharedDomainError is
// returned otherwise.
func (p *Problem[U, T]) AchieveNodeConsistency() error {
	if err := p.ensureNoSharedDomains(); err != nil {
		return err
	}
	marks, err := p.markNodeIllegals()
	if err != nil {
		return err
	}
	p.removeMarked(marks)
	return nil
}

// AchieveArcConsistency first achieves node consistency and then removes
// the values that cannot participate in any satisfying pair of a binary
// constraint (AC-1 over binary constraints). On an *OverconstrainedError
// every domain is left unchanged.
//
// Variables must not share domain instances; a *SharedDomainError is
// returned otherwise.
func (p *Problem[U, T]) AchieveArcConsistency() error {
	if err := p.ensureNoSharedDomains(); err != nil {
		return err
	}
	marks, err := p.markNodeIllegals()
	if err != nil {
		return err
	}
	work := NewSolution(p)
	for _, c := range p.constraints {
		if c.Degree() == DegreeBinary {
			if err := p.markArcIllegals(work, c, marks[c.VariableIndexAt(0)], marks[c.VariableIndexAt(1)]); err != nil {
				return err
			}
		}
	}
	p.removeMarked(marks)
	return nil
}

func (p *Problem[U, T]) ensureNoSharedDomains() error {
	for i := 0; i < len(p.variables)-1; i++ {
		for j := i + 1; j < len(p.variables); j++ {
			if p.variables[i].Domain() == p.variables[j].Domain() {
				return &SharedDomainError{I: i, J: j}
			}
		}
	}
	return nil
}

// markNodeIllegals collects, per variable, the domain positions violating
// some unary constraint. Domains are not touched.
func (p *Problem[U, T]) markNodeIllegals() ([]*IntDomain, error) {
	marks := make([]*IntDomain, len(p.variables))
	for i := range marks {
		marks[i] = NewIntDomain()
	}
	work := NewSolution(p)
	for _, c := range p.constraints {
		if c.Degree() != DegreeUnary {
			continue
		}
		vi := c.VariableIndexAt(0)
		domain := p.variables[vi].Domain()
		it := domain.Iterator()
		for it.HasNext() {
			value := it.Next()
			if !marks[vi].Contains(it.CurrentIndex()) {
				work.Assign(vi, value)
				if c.IsViolated(work) {
					marks[vi].Add(it.CurrentIndex())
				}
			}
		}
		if marks[vi].Size() == domain.Size() {
			return nil, &OverconstrainedError{VariableIndex: vi}
		}
	}
	return marks, nil
}

// markArcIllegals marks, from both sides of the given binary constraint,
// every unmarked value with no unmarked support on the other side.
func (p *Problem[U, T]) markArcIllegals(work *Solution[U, T], binary *Constraint[U, T], marks0, marks1 *IntDomain) error {
	vi0 := binary.VariableIndexAt(0)
	vi1 := binary.VariableIndexAt(1)
	iter0 := p.variables[vi0].Domain().Iterator()
	iter1 := p.variables[vi1].Domain().Iterator()
	// mark the domain of the first variable:
	for iter0.HasNext() {
		value0 := iter0.Next()
		if marks0.Contains(iter0.CurrentIndex()) {
			continue
		}
		work.Assign(vi0, value0)
		supported := false
		for iter1.HasNext() {
			value1 := iter1.Next()
			if !marks1.Contains(iter1.CurrentIndex()) {
				work.Assign(vi1, value1)
				if !binary.IsViolated(work) {
					supported = true
					break
				}
			}
		}
		iter1.Reset()
		if !supported {
			marks0.Add(iter0.CurrentIndex())
			if marks0.Size() == p.variables[vi0].Domain().Size() {
				return &OverconstrainedError{VariableIndex: vi0}
			}
		}
	}
	iter0.Reset()
	// mark the domain of the second variable:
	for iter1.HasNext() {
		value1 := iter1.Next()
		if marks1.Contains(iter1.CurrentIndex()) {
			continue
		}
		work.Assign(vi1, value1)
		supported := false
		for iter0.HasNext() {
			value0 := iter0.Next()
			if !marks0.Contains(iter0.CurrentIndex()) {
				work.Assign(vi0, value0)
				if !binary.IsViolated(work) {
					supported = true
					break
				}
			}
		}
		iter0.Reset()
		if !supported {
			marks1.Add(iter1.CurrentIndex())
			if marks1.Size() == p.variables[vi1].Domain().Size() {
				return &OverconstrainedError{VariableIndex: vi1}
			}
		}
	}
	iter1.Reset()
	return nil
}

// removeMarked physically removes the marked positions through each
// domain's iterator.
func (p *Problem[U, T]) removeMarked(marks []*IntDomain) {
	for i, variable := range p.variables {
		if marks[i].IsEmpty() {
			continue
		}
		if log.V(2) {
			log.Infof("consistency: removing %d of %d values of variable %d", marks[i].Size(), variable.Domain().Size(), i)
		}
		it := variable.Domain().Iterator()
		position := -1
		for it.HasNext() {
			it.Next()
			position++
			if marks[i].Contains(position) {
				it.Remove()
			}
		}
	}
}

// AchieveMinimalWidth reorders the variables by descending degree, in
// place. Swapping two variables rewrites every occurrence of their indexes
// inside the tuples of the incident constraints, so the solution set is
// preserved up to the permutation.
func (p *Problem[U, T]) AchieveMinimalWidth() {
	p.descendingQuicksort(0, len(p.variables)-1)
}

func (p *Problem[U, T]) descendingQuicksort(lo, hi int) {
	i, j := lo, hi
	x := len(p.arcs[(lo+hi)/2])
	for {
		for len(p.arcs[i]) > x {
			i++
		}
		for len(p.arcs[j]) < x {
			j--
		}
		if i <= j {
			if len(p.arcs[i]) < len(p.arcs[j]) {
				p.swapVariables(i, j)
			}
			i++
			j--
		}
		if i > j {
			break
		}
	}
	if lo < j {
		p.descendingQuicksort(lo, j)
	}
	if i < hi {
		p.descendingQuicksort(i, hi)
	}
}

func (p *Problem[U, T]) swapVariables(i0, i1 int) {
	// a constraint may be incident to both variables, so park i0
	// occurrences on a placeholder until the i1 rewrite is done
	const parked = -1
	for _, c := range p.arcs[i0] {
		for i, vi := range c.indices {
			if vi == i0 {
				c.indices[i] = parked
			}
		}
	}
	for _, c := range p.arcs[i1] {
		for i, vi := range c.indices {
			if vi == i1 {
				c.indices[i] = i0
			}
		}
	}
	for _, c := range p.arcs[i0] {
		for i, vi := range c.indices {
			if vi == parked {
				c.indices[i] = i1
			}
		}
	}
	p.arcs[i0], p.arcs[i1] = p.arcs[i1], p.arcs[i0]
	p.variables[i0], p.variables[i1] = p.variables[i1], p.variables[i0]
}

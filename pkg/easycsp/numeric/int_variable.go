package numeric

import (
	"errors"
	"fmt"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
)

// ErrAuxiliaryDomain is the panic value of IntDomain on an auxiliary
// variable.
var ErrAuxiliaryDomain = errors.New("numeric: auxiliary variables have no domain")

// IntVariable is a variable over an integer interval domain. It is either a
// base variable carrying a domain, or an auxiliary variable carrying a
// Relation deriving its value from other variables. Auxiliary variables are
// created by the builder's expression chains and receive negative ids.
type IntVariable[U any] struct {
	id       int
	payload  U
	domain   *easycsp.IntDomain
	relation Relation
}

var _ easycsp.Variable[any, int] = (*IntVariable[any])(nil)

// NewIntVariable returns a base variable with the given id and domain and a
// zero payload. It panics when domain is nil.
func NewIntVariable[U any](id int, domain *easycsp.IntDomain) *IntVariable[U] {
	var zero U
	return NewIntVariableWith(id, zero, domain)
}

// NewIntVariableWith returns a base variable with the given id, payload,
// and domain. It panics when domain is nil.
func NewIntVariableWith[U any](id int, payload U, domain *easycsp.IntDomain) *IntVariable[U] {
	if domain == nil {
		panic("numeric: variable domain is nil")
	}
	return &IntVariable[U]{id: id, payload: payload, domain: domain}
}

func newAuxiliaryVariable[U any](id int, relation Relation) *IntVariable[U] {
	return &IntVariable[U]{id: id, relation: relation}
}

// ID implements easycsp.Variable.
func (v *IntVariable[U]) ID() int {
	return v.id
}

// Payload implements easycsp.Variable.
func (v *IntVariable[U]) Payload() U {
	return v.payload
}

// Domain implements easycsp.Variable. Auxiliary variables return nil.
func (v *IntVariable[U]) Domain() easycsp.Domain[int] {
	if v.domain == nil {
		return nil
	}
	return v.domain
}

// IntDomain returns the concrete interval domain. It panics with
// ErrAuxiliaryDomain on auxiliary variables.
func (v *IntVariable[U]) IntDomain() *easycsp.IntDomain {
	if v.relation != nil {
		panic(ErrAuxiliaryDomain)
	}
	return v.domain
}

// IsAuxiliary returns true if this is a derived variable.
func (v *IntVariable[U]) IsAuxiliary() bool {
	return v.relation != nil
}

// Relation returns the relation of an auxiliary variable, nil for base
// variables.
func (v *IntVariable[U]) Relation() Relation {
	return v.relation
}

// Equal returns true if both variables carry the same id.
func (v *IntVariable[U]) Equal(other easycsp.Variable[U, int]) bool {
	return other != nil && v.id == other.ID()
}

// String implements fmt.Stringer.
func (v *IntVariable[U]) String() string {
	if v.relation != nil {
		return fmt.Sprintf("V%d{ derived}", v.id)
	}
	if p := fmt.Sprint(any(v.payload)); p != "" && p != "<nil>" {
		return fmt.Sprintf("V%d{ %s: %v}", v.id, p, v.domain)
	}
	return fmt.Sprintf("V%d{ %v}", v.id, v.domain)
}

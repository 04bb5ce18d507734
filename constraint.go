package cassowary

import (
	"fmt"
	"sync/atomic"
)

// Operator relates a constraint expression to zero.
type Operator int8

const (
	// LE constrains the expression to be at most zero.
	LE Operator = iota
	// EQ constrains the expression to equal zero.
	EQ
	// GE constrains the expression to be at least zero.
	GE
)

func (op Operator) String() string {
	switch op {
	case LE:
		return "<="
	case EQ:
		return "=="
	case GE:
		return ">="
	}
	return fmt.Sprintf("op(%d)", int8(op))
}

var nextConstraintID uint64

// Constraint relates a linear expression to zero with a given strength.
// Like variables, constraints have pointer identity: adding the same
// pointer twice is an error while two identically built constraints are
// distinct. A constraint is immutable once created and may be added to
// any number of solvers.
type Constraint struct {
	id         uint64
	expression Expression
	op         Operator
	strength   Strength
}

// NewConstraint relates expression to zero under op. The strength defaults
// to Required and is clipped to the representable range.
func NewConstraint(expression Expression, op Operator, strength ...Strength) *Constraint {
	s := Required
	if len(strength) > 0 {
		s = clipStrength(strength[0])
	}
	return &Constraint{
		id:         atomic.AddUint64(&nextConstraintID, 1),
		expression: expression.clone(),
		op:         op,
		strength:   s,
	}
}

// Expression returns a copy of the constrained expression.
func (c *Constraint) Expression() Expression {
	return c.expression.clone()
}

// Operator returns the relation of the expression to zero.
func (c *Constraint) Operator() Operator {
	return c.op
}

// Strength returns the constraint's clipped strength.
func (c *Constraint) Strength() Strength {
	return c.strength
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s %s 0 [%s]", c.expression, c.op, c.strength)
}

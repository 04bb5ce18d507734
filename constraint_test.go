package cassowary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConstraintDefaults(t *testing.T) {
	x := NewVariable("x")

	c := NewConstraint(NewExpression(x, -10), EQ)
	require.Equal(t, Required, c.Strength())
	require.Equal(t, EQ, c.Operator())

	// strengths outside the representable range are clipped
	c = NewConstraint(NewExpression(x), LE, Strength(2e12))
	require.Equal(t, Required, c.Strength())
	c = NewConstraint(NewExpression(x), GE, Strength(-1))
	require.Equal(t, Strength(0), c.Strength())
}

func TestConstraintIsImmutable(t *testing.T) {
	x := NewVariable("x")
	e := NewExpression(x, -10)

	c := NewConstraint(e, EQ)

	// mutating the input expression after construction has no effect
	e.Terms[0].Coefficient = 99
	require.Equal(t, 1.0, c.Expression().Terms[0].Coefficient)

	// the accessor hands out copies
	c.Expression().Terms[0].Coefficient = 42
	require.Equal(t, 1.0, c.Expression().Terms[0].Coefficient)
}

func TestConstraintString(t *testing.T) {
	x := NewVariable("x")

	c := NewConstraint(NewExpression(x, -10), EQ, Strong)
	require.Equal(t, "x + -10 == 0 [strong]", c.String())
}

func TestOperatorString(t *testing.T) {
	require.Equal(t, "<=", LE.String())
	require.Equal(t, "==", EQ.String())
	require.Equal(t, ">=", GE.String())
	require.Equal(t, "op(9)", Operator(9).String())
}

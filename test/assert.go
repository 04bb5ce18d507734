// Package test provides helpers to write tests against constraint systems.
package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelier-ui/cassowary"
)

// eps mirrors the solver tolerance; values closer than this are equal.
const eps = 1e-8

// Assert is a helper to test constraint systems
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for convenience
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		assert := &Assert{t, require.New(t)}
		fn(assert)
	})
}

// Add adds the given constraints to s, failing the test on the first error.
func (a *Assert) Add(s *cassowary.Solver, constraints ...*cassowary.Constraint) {
	a.t.Helper()
	for _, c := range constraints {
		a.NoError(s.AddConstraint(c), "adding %s", c)
	}
}

// Value asserts that v currently solves to want.
func (a *Assert) Value(s *cassowary.Solver, v *cassowary.Variable, want float64) {
	a.t.Helper()
	a.InDelta(want, s.Value(v), eps, "value of %s", v)
}

// Changes drains the solver's change feed and asserts it reports exactly
// want, in order. Feed order follows the variables' first appearance in the
// solver.
func (a *Assert) Changes(s *cassowary.Solver, want ...cassowary.Change) {
	a.t.Helper()
	got := s.FetchChanges()
	a.Len(got, len(want), "change feed length")
	for i := range want {
		if i >= len(got) {
			return
		}
		a.Same(want[i].Variable, got[i].Variable, "change %d variable", i)
		a.InDelta(want[i].Value, got[i].Value, eps, "change %d value", i)
	}
}

// Satisfied asserts that the solver's current values satisfy each given
// constraint. This is only meaningful for required constraints; soft
// constraints may legally be violated.
func (a *Assert) Satisfied(s *cassowary.Solver, constraints ...*cassowary.Constraint) {
	a.t.Helper()
	for _, c := range constraints {
		e := c.Expression()
		lhs := e.Constant
		for _, term := range e.Terms {
			lhs += term.Coefficient * s.Value(term.Variable)
		}

		var ok bool
		switch c.Operator() {
		case cassowary.LE:
			ok = lhs <= eps
		case cassowary.EQ:
			ok = lhs >= -eps && lhs <= eps
		case cassowary.GE:
			ok = lhs >= -eps
		}
		a.True(ok, "constraint %s not satisfied: lhs=%v", c, lhs)
	}
}

package cassowary

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const testEps = 1e-6

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := NewSolver()
	require.NoError(t, err)
	return s
}

// TestSolverLayoutScenario walks a one dimensional layout through its life
// cycle: three panes related by required constraints, a soft preference, and
// an interactive resize driven through an edit variable.
func TestSolverLayoutScenario(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	left := NewVariable("left")
	width := NewVariable("width")
	right := NewVariable("right")

	// right == left + width
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(left, width, NewTerm(right, -1)), EQ)))
	// left == 0
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(left), EQ)))
	// width == 100, soft
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(width, -100), EQ, Strong)))

	assert.InDelta(0, s.Value(left), testEps)
	assert.InDelta(100, s.Value(width), testEps)
	assert.InDelta(100, s.Value(right), testEps)

	changes := s.FetchChanges()
	assert.Len(changes, 2)
	assert.Equal(width, changes[0].Variable)
	assert.InDelta(100, changes[0].Value, testEps)
	assert.Equal(right, changes[1].Variable)
	assert.InDelta(100, changes[1].Value, testEps)

	// drag the pane edge to 150
	assert.NoError(s.AddEditVariable(width, Strong))
	assert.NoError(s.SuggestValue(width, 150))

	assert.InDelta(0, s.Value(left), testEps)
	assert.InDelta(150, s.Value(width), testEps)
	assert.InDelta(150, s.Value(right), testEps)

	changes = s.FetchChanges()
	assert.Len(changes, 2)
	assert.Equal(width, changes[0].Variable)
	assert.InDelta(150, changes[0].Value, testEps)
	assert.Equal(right, changes[1].Variable)
	assert.InDelta(150, changes[1].Value, testEps)
}

func TestAddConstraintDuplicate(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	c := NewConstraint(NewExpression(NewVariable("x"), -10), EQ)
	assert.NoError(s.AddConstraint(c))
	assert.ErrorIs(s.AddConstraint(c), ErrDuplicateConstraint)
	assert.Equal(1, s.NumConstraints())
}

func TestRemoveConstraintUnknown(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	c := NewConstraint(NewExpression(NewVariable("x"), -10), EQ)
	assert.ErrorIs(s.RemoveConstraint(c), ErrUnknownConstraint)

	assert.NoError(s.AddConstraint(c))
	assert.NoError(s.RemoveConstraint(c))
	assert.ErrorIs(s.RemoveConstraint(c), ErrUnknownConstraint)
}

func TestUnsatisfiableEquality(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -5), EQ)))

	conflicting := NewConstraint(NewExpression(x, -6), EQ)
	assert.ErrorIs(s.AddConstraint(conflicting), ErrUnsatisfiableConstraint)

	// the failed add left no trace
	assert.False(s.HasConstraint(conflicting))
	assert.Equal(1, s.NumConstraints())
	assert.InDelta(5, s.Value(x), testEps)

	// softened, the same relation is accepted and the required one wins
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -6), EQ, Medium)))
	assert.InDelta(5, s.Value(x), testEps)
}

// TestUnsatisfiableInequality drives the add through the artificial variable
// search, which pivots the live tableau before discovering the conflict. The
// solver must come back bit for bit identical.
func TestUnsatisfiableInequality(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -5), LE)))
	assert.InDelta(5, s.Value(x), testEps)
	s.FetchChanges()

	conflicting := NewConstraint(NewExpression(x, -10), GE)
	assert.ErrorIs(s.AddConstraint(conflicting), ErrUnsatisfiableConstraint)

	assert.InDelta(5, s.Value(x), testEps)
	assert.Equal(1, s.NumConstraints())
	assert.Len(s.rows, 1)
	assert.Empty(s.infeasible)
	assert.Empty(s.FetchChanges())
}

func TestRedundantEquality(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	first := NewConstraint(NewExpression(x, -5), EQ)
	second := NewConstraint(NewExpression(x, -5), EQ)

	// distinct constraint values carrying the same relation are both
	// accepted, the second one as a redundancy
	assert.NoError(s.AddConstraint(first))
	assert.NoError(s.AddConstraint(second))
	assert.Equal(2, s.NumConstraints())
	assert.InDelta(5, s.Value(x), testEps)

	assert.NoError(s.RemoveConstraint(second))
	assert.InDelta(5, s.Value(x), testEps)
	assert.NoError(s.RemoveConstraint(first))
	assert.InDelta(0, s.Value(x), testEps)
}

func TestStrengthOrdering(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	strong := NewConstraint(NewExpression(x, -100), EQ, Strong)
	medium := NewConstraint(NewExpression(x, -50), EQ, Medium)
	weak := NewConstraint(NewExpression(x, -80), EQ, Weak)

	assert.NoError(s.AddConstraint(strong))
	assert.NoError(s.AddConstraint(medium))
	assert.NoError(s.AddConstraint(weak))
	assert.InDelta(100, s.Value(x), testEps)

	assert.NoError(s.RemoveConstraint(strong))
	assert.InDelta(50, s.Value(x), testEps)

	assert.NoError(s.RemoveConstraint(medium))
	assert.InDelta(80, s.Value(x), testEps)
}

func TestAddRemoveRestoresValues(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	y := NewVariable("y")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -3), EQ, Weak)))
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(y, -4), EQ, Weak)))

	temp := NewConstraint(NewExpression(x, y, -10), EQ, Strong)
	assert.NoError(s.AddConstraint(temp))
	assert.InDelta(10, s.Value(x)+s.Value(y), testEps)

	assert.NoError(s.RemoveConstraint(temp))
	assert.InDelta(3, s.Value(x), testEps)
	assert.InDelta(4, s.Value(y), testEps)
}

func TestVariableGarbageCollection(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	c := NewConstraint(NewExpression(x, -10), EQ)

	assert.NoError(s.AddConstraint(c))
	assert.Len(s.vars, 1)
	assert.Len(s.varForSym, 1)
	assert.Equal([]Change{{Variable: x, Value: 10}}, s.FetchChanges())

	assert.NoError(s.RemoveConstraint(c))
	assert.Empty(s.vars)
	assert.Empty(s.varForSym)
	assert.Empty(s.rows)
	assert.Empty(s.cns)

	// a variable released with a pending change is not reported
	assert.Empty(s.FetchChanges())
	assert.InDelta(0, s.Value(x), testEps)

	// the same constraint value can be added again after removal
	assert.NoError(s.AddConstraint(c))
	assert.InDelta(10, s.Value(x), testEps)
}

func TestEditVariableErrors(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	w := NewVariable("w")
	assert.ErrorIs(s.SuggestValue(w, 1), ErrUnknownEditVariable)
	assert.ErrorIs(s.RemoveEditVariable(w), ErrUnknownEditVariable)

	assert.ErrorIs(s.AddEditVariable(w, Required), ErrBadRequiredStrength)
	assert.False(s.HasEditVariable(w))

	assert.NoError(s.AddEditVariable(w, Strong))
	assert.True(s.HasEditVariable(w))
	assert.Equal(1, s.NumEditVariables())
	assert.Equal(1, s.NumConstraints())
	assert.ErrorIs(s.AddEditVariable(w, Medium), ErrDuplicateEditVariable)

	assert.NoError(s.RemoveEditVariable(w))
	assert.False(s.HasEditVariable(w))
	assert.Zero(s.NumEditVariables())
	assert.Zero(s.NumConstraints())
}

func TestSuggestValueClamped(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x), GE)))
	assert.NoError(s.AddEditVariable(x, Strong))

	// the required bound defeats the suggestion
	assert.NoError(s.SuggestValue(x, -10))
	assert.InDelta(0, s.Value(x), testEps)

	assert.NoError(s.SuggestValue(x, 50))
	assert.InDelta(50, s.Value(x), testEps)

	assert.NoError(s.SuggestValue(x, -1))
	assert.InDelta(0, s.Value(x), testEps)
}

func TestFetchChangesDraining(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	w := NewVariable("w")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(w, -100), EQ, Medium)))

	changes := s.FetchChanges()
	assert.Len(changes, 1)
	assert.InDelta(100, changes[0].Value, testEps)

	// a fetch with no interleaved mutation reports nothing
	assert.Empty(s.FetchChanges())

	assert.NoError(s.AddEditVariable(w, Strong))
	assert.NoError(s.SuggestValue(w, 150))
	changes = s.FetchChanges()
	assert.Len(changes, 1)
	assert.Equal(w, changes[0].Variable)
	assert.InDelta(150, changes[0].Value, testEps)

	// suggesting the value already in place moves nothing
	assert.NoError(s.SuggestValue(w, 150))
	assert.Empty(s.FetchChanges())
}

func TestFetchChangesReportsReverts(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x), GE)))
	pref := NewConstraint(NewExpression(x, -5), EQ, Strong)
	assert.NoError(s.AddConstraint(pref))

	changes := s.FetchChanges()
	assert.Len(changes, 1)
	assert.InDelta(5, changes[0].Value, testEps)

	// removing the preference drops x back to 0, which is a change
	assert.NoError(s.RemoveConstraint(pref))
	changes = s.FetchChanges()
	assert.Len(changes, 1)
	assert.Equal(x, changes[0].Variable)
	assert.InDelta(0, changes[0].Value, testEps)
}

func TestReset(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	c := NewConstraint(NewExpression(x, -10), EQ)
	assert.NoError(s.AddConstraint(c))
	assert.NoError(s.AddEditVariable(NewVariable("y"), Strong))

	s.Reset()
	assert.Zero(s.NumConstraints())
	assert.Zero(s.NumEditVariables())
	assert.InDelta(0, s.Value(x), testEps)
	assert.Empty(s.FetchChanges())

	// constraints survive a reset and can be loaded again
	assert.NoError(s.AddConstraint(c))
	assert.InDelta(10, s.Value(x), testEps)
}

func TestValueUnknownVariable(t *testing.T) {
	s := newTestSolver(t)
	require.Zero(t, s.Value(NewVariable("never added")))
}

func TestRemoveEditVariableRestoresPreference(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	w := NewVariable("w")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(w, -100), EQ, Medium)))

	assert.NoError(s.AddEditVariable(w, Strong))
	assert.NoError(s.SuggestValue(w, 42))
	assert.InDelta(42, s.Value(w), testEps)

	assert.NoError(s.RemoveEditVariable(w))
	assert.InDelta(100, s.Value(w), testEps)
	assert.Equal(1, s.NumConstraints())
}

func TestInequalityCapsPreference(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -100), LE)))
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -120), EQ, Medium)))
	assert.InDelta(100, s.Value(x), testEps)
}

// TestRequiredBoundsOnPinnedVariable exercises the feasibility search on
// both of its exits: a satisfiable row with no direct subject, and a genuine
// conflict discovered mid-search.
func TestRequiredBoundsOnPinnedVariable(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x), EQ)))
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x), LE)))
	assert.InDelta(0, s.Value(x), testEps)

	assert.ErrorIs(
		s.AddConstraint(NewConstraint(NewExpression(x, -1), GE)),
		ErrUnsatisfiableConstraint,
	)
	assert.InDelta(0, s.Value(x), testEps)
	assert.Equal(2, s.NumConstraints())
}

func TestMidpointChain(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	l := NewVariable("l")
	r := NewVariable("r")
	m := NewVariable("m")

	// m == (l + r) / 2
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(l, r).Divide(2).Minus(m), EQ)))
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(l, -10), EQ)))
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(r, -30), EQ)))

	assert.InDelta(10, s.Value(l), testEps)
	assert.InDelta(30, s.Value(r), testEps)
	assert.InDelta(20, s.Value(m), testEps)
}

// TestSolversIndependent runs disjoint solvers in parallel. Solvers share
// nothing but the global id counters, so this mostly guards the allocators.
func TestSolversIndependent(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		target := float64(i * 10)
		g.Go(func() error {
			s, err := NewSolver()
			if err != nil {
				return err
			}
			a := NewVariable("a")
			b := NewVariable("b")
			if err := s.AddConstraint(NewConstraint(NewExpression(a, -target), EQ)); err != nil {
				return err
			}
			if err := s.AddConstraint(NewConstraint(NewExpression(a, 1, NewTerm(b, -1)), EQ)); err != nil {
				return err
			}
			if got := s.Value(b); got != target+1 {
				return fmt.Errorf("b = %v, want %v", got, target+1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestSolverString(t *testing.T) {
	assert := require.New(t)
	s := newTestSolver(t)

	x := NewVariable("x")
	assert.NoError(s.AddConstraint(NewConstraint(NewExpression(x, -10), EQ)))

	dump := s.String()
	assert.Contains(dump, "objective: 0")
	assert.Contains(dump, "(x)")
	assert.Contains(dump, " = 10")
}

func TestMustHelpers(t *testing.T) {
	assert := require.New(t)

	s := Must(NewSolver())
	assert.NotNil(s)

	c := NewConstraint(NewExpression(NewVariable("x"), -1), EQ)
	MustAdd(s, c)
	assert.Panics(func() { MustAdd(s, c) })
	assert.Panics(func() { Must(NewSolver(WithCapacity(-1))) })
}

func TestSolverOptions(t *testing.T) {
	assert := require.New(t)

	s, err := NewSolver(WithCapacity(128), WithLogger(zerolog.Nop()))
	assert.NoError(err)
	assert.NotNil(s)

	_, err = NewSolver(WithCapacity(-1))
	assert.ErrorContains(err, "negative capacity")
}

func BenchmarkAddConstraintChain(b *testing.B) {
	vars := make([]*Variable, 64)
	for i := range vars {
		vars[i] = NewVariable(fmt.Sprintf("v%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := Must(NewSolver(WithCapacity(len(vars))))
		MustAdd(s, NewConstraint(NewExpression(vars[0]), EQ))
		for j := 1; j < len(vars); j++ {
			MustAdd(s, NewConstraint(NewExpression(vars[j]).Minus(vars[j-1], 1), EQ))
		}
	}
}

func BenchmarkSuggestValue(b *testing.B) {
	s := Must(NewSolver())
	width := NewVariable("width")
	MustAdd(s, NewConstraint(NewExpression(width), GE))
	MustAdd(s, NewConstraint(NewExpression(width, -1000), LE))
	if err := s.AddEditVariable(width, Strong); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SuggestValue(width, float64(i%1000)); err != nil {
			b.Fatal(err)
		}
		s.FetchChanges()
	}
}

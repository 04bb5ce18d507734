package cassowary

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("panes fill the total width exactly", prop.ForAll(
		func(count int, total float64, prefs []float64) bool {
			s, err := NewSolver()
			if err != nil {
				return false
			}
			panes := make([]*Variable, count)
			sum := NewExpression(-total)
			for i := range panes {
				panes[i] = NewVariable("pane")
				sum = sum.Plus(panes[i])
				if err := s.AddConstraint(NewConstraint(NewExpression(panes[i]), GE)); err != nil {
					return false
				}
				if err := s.AddConstraint(NewConstraint(NewExpression(panes[i], -prefs[i]), EQ, Weak)); err != nil {
					return false
				}
			}
			if err := s.AddConstraint(NewConstraint(sum, EQ)); err != nil {
				return false
			}

			var got float64
			for _, p := range panes {
				v := s.Value(p)
				if v < -1e-6 {
					return false
				}
				got += v
			}
			return math.Abs(got-total) < 1e-6
		},
		gen.IntRange(1, 6),
		gen.Float64Range(100, 1000),
		gen.SliceOfN(6, gen.Float64Range(0, 500)),
	))

	properties.Property("a suggestion is honored within required bounds", prop.ForAll(
		func(value float64) bool {
			s, err := NewSolver()
			if err != nil {
				return false
			}
			w := NewVariable("w")
			if err := s.AddConstraint(NewConstraint(NewExpression(w), GE)); err != nil {
				return false
			}
			if err := s.AddConstraint(NewConstraint(NewExpression(w, -1000), LE)); err != nil {
				return false
			}
			if err := s.AddEditVariable(w, Strong); err != nil {
				return false
			}
			if err := s.SuggestValue(w, value); err != nil {
				return false
			}
			want := math.Min(math.Max(value, 0), 1000)
			return math.Abs(s.Value(w)-want) < 1e-6
		},
		gen.Float64Range(-500, 1500),
	))

	properties.Property("removing a constraint restores the previous solution", prop.ForAll(
		func(a, b, c float64) bool {
			s, err := NewSolver()
			if err != nil {
				return false
			}
			x := NewVariable("x")
			y := NewVariable("y")
			if err := s.AddConstraint(NewConstraint(NewExpression(x, -a), EQ, Weak)); err != nil {
				return false
			}
			if err := s.AddConstraint(NewConstraint(NewExpression(y, -b), EQ, Weak)); err != nil {
				return false
			}

			temp := NewConstraint(NewExpression(x, y, -c), EQ, Strong)
			if err := s.AddConstraint(temp); err != nil {
				return false
			}
			if math.Abs(s.Value(x)+s.Value(y)-c) > 1e-6 {
				return false
			}

			if err := s.RemoveConstraint(temp); err != nil {
				return false
			}
			return math.Abs(s.Value(x)-a) < 1e-6 && math.Abs(s.Value(y)-b) < 1e-6
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

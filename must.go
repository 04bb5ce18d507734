package cassowary

// Must unwraps a value and error pair, panicking on error. It is meant for
// wiring up static constraint systems at program start, where a failure is
// a programming error:
//
//	solver := cassowary.Must(cassowary.NewSolver())
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// MustAdd adds the given constraints to s and panics on the first error.
// Like Must it is meant for static systems known to be satisfiable.
func MustAdd(s *Solver, constraints ...*Constraint) {
	for _, c := range constraints {
		if err := s.AddConstraint(c); err != nil {
			panic(err)
		}
	}
}

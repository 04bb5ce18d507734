package cassowary

import (
	"errors"
	"fmt"

	"github.com/atelier-ui/cassowary/debug"
)

var (
	// ErrDuplicateConstraint is returned when adding a constraint pointer
	// that is already in the solver.
	ErrDuplicateConstraint = errors.New("constraint already added")

	// ErrUnsatisfiableConstraint is returned when a required constraint
	// contradicts the constraints already in the solver. The solver is
	// left exactly as it was before the call.
	ErrUnsatisfiableConstraint = errors.New("constraint is unsatisfiable")

	// ErrUnknownConstraint is returned when removing a constraint pointer
	// that was never added.
	ErrUnknownConstraint = errors.New("constraint is not in the solver")

	// ErrDuplicateEditVariable is returned when registering a variable
	// that is already being edited.
	ErrDuplicateEditVariable = errors.New("edit variable already added")

	// ErrBadRequiredStrength is returned when registering an edit variable
	// at Required strength. Suggestions are preferences and must be
	// defeasible.
	ErrBadRequiredStrength = errors.New("edit variable must not be required")

	// ErrUnknownEditVariable is returned when suggesting to or removing a
	// variable that was never registered for editing.
	ErrUnknownEditVariable = errors.New("edit variable is not in the solver")
)

// ErrInternalSolver is the base of the error class that signals a broken
// solver invariant. Errors wrapping it indicate a bug in the solver rather
// than bad input; they are not meant to be handled beyond reporting.
var ErrInternalSolver = errors.New("internal solver error")

var (
	ErrObjectiveUnbounded        = fmt.Errorf("%w: the objective is unbounded", ErrInternalSolver)
	ErrDualOptimizeFailed        = fmt.Errorf("%w: dual optimize failed", ErrInternalSolver)
	ErrFailedToFindLeavingRow    = fmt.Errorf("%w: failed to find leaving row", ErrInternalSolver)
	ErrEditConstraintNotInSystem = fmt.Errorf("%w: edit constraint is not in the system", ErrInternalSolver)
)

// internalError attaches the raise site's stack to an internal error under
// the debug build tag, where it points at the pivot sequence that broke the
// invariant.
func internalError(err error) error {
	if !debug.Debug {
		return err
	}
	return fmt.Errorf("%w\n%s", err, debug.Stack())
}

package cassowary

import (
	"strconv"
	"sync/atomic"
)

var nextVariableID uint64

// Variable names a value determined by a Solver. Identity is pointer
// identity: two Variables are the same unknown only if they are the same
// pointer, regardless of name. The name is used for display alone and
// need not be unique.
//
// A Variable holds no value of its own. Its value lives in whichever
// solvers currently constrain it and is read back with Solver.Value.
type Variable struct {
	id   uint64
	name string
}

// NewVariable returns a fresh variable. The name may be empty.
func NewVariable(name string) *Variable {
	return &Variable{id: atomic.AddUint64(&nextVariableID, 1), name: name}
}

// Name returns the display name given at creation.
func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return "var" + strconv.FormatUint(v.id, 10)
}

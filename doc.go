// Package cassowary provides an incremental solver for systems of linear
// equality and inequality constraints, built for interactive use such as
// constraint based user interface layout.
//
// Constraints relate linear expressions over variables and carry a
// strength:
//   - Required constraints must hold exactly
//   - Strong, Medium and Weak constraints are traded off against each
//     other, where no number of weaker constraints can outweigh a
//     stronger one
//
// The solver is incremental: constraints are added and removed one at a
// time and the solution is repaired rather than recomputed after each
// change. Registering a variable for editing and suggesting values for it
// makes repeated updates, such as tracking a mouse drag or an animation,
// cheap.
package cassowary

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.5.1")

package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this
// channel only has one "producer", and one "consumer". Its purpose is to
// guarantee the order of execution of adding / removing a profiling session
// and sampling events, while enabling the caller (Solver.AddConstraint) to
// sample the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		// it's a sampling of an event (a constraint entering a solver)
		collectSample(c.pc)
	}
}

// collectSample must be called from the worker go routine
func collectSample(pc []uintptr) {
	// for each session we may have a distinct sample, since ids of functions
	// and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}} // we just collect new constraints count
	}

	frames := runtime.CallersFrames(pc)
	// Loop to get frames.
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		// filter solver internals from the trace so constraints are
		// attributed to application call sites
		if filterSolverPrivateFunc(frame.Function) {
			if !more {
				break
			}
			continue
		}

		// generics display poorly in pprof
		// https://github.com/golang/go/issues/54105
		frame.Function = strings.ReplaceAll(frame.Function, "[...]", "[T]")

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
		if strings.HasSuffix(frame.Function, "testing.tRunner") {
			break
		}
		if strings.HasSuffix(frame.Function, "main.main") {
			break
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

// filterSolverPrivateFunc reports whether f is an unexported method of the
// solver, which should not appear in profiles.
func filterSolverPrivateFunc(f string) bool {
	const prefix = "github.com/atelier-ui/cassowary.(*Solver)."
	if strings.HasPrefix(f, prefix) && len(f) > len(prefix) {
		c := []rune(f)[len(prefix)]
		if unicode.IsLower(c) {
			return true
		}
	}
	return false
}

func shortFuncName(f string) string {
	fe := strings.Split(f, "/")
	return fe[len(fe)-1]
}

package cassowary

import (
	"math"
	"strconv"
)

// Strength encodes the priority of a constraint. Strengths form a strict
// lattice: any number of weaker constraints can never outweigh a single
// stronger one. This is achieved by packing three tiers into one float64
// with a factor of 1000 between tiers.
type Strength float64

const (
	// Required marks a constraint that must hold exactly. Adding a
	// required constraint that contradicts the current system fails with
	// ErrUnsatisfiableConstraint instead of being traded off.
	Required Strength = 1001001000

	// Strong, Medium and Weak are the standard soft tiers. A soft
	// constraint may be violated, at a cost proportional to its strength.
	Strong Strength = 1000000
	Medium Strength = 1000
	Weak   Strength = 1
)

// MakeStrength combines per-tier magnitudes into a single strength. Each
// tier is scaled by the optional weight and clipped to [0, 1000] before
// being packed, so no combination of soft tiers can reach Required.
func MakeStrength(strong, medium, weak float64, weight ...float64) Strength {
	w := 1.0
	if len(weight) > 0 {
		w = weight[0]
	}
	v := clipTier(strong*w)*1e6 + clipTier(medium*w)*1e3 + clipTier(weak*w)
	return Strength(v)
}

func clipTier(v float64) float64 {
	return math.Max(0, math.Min(1000, v))
}

// clipStrength confines s to the representable range [0, Required].
func clipStrength(s Strength) Strength {
	return Strength(math.Max(0, math.Min(float64(Required), float64(s))))
}

func (s Strength) String() string {
	switch s {
	case Required:
		return "required"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Weak:
		return "weak"
	}
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

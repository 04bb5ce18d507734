package cassowary

import (
	"strconv"
	"strings"
)

// Term is a variable scaled by a coefficient.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// NewTerm pairs v with the given coefficient.
func NewTerm(v *Variable, coefficient float64) Term {
	return Term{Variable: v, Coefficient: coefficient}
}

func (t Term) String() string {
	if t.Coefficient == 1 {
		return t.Variable.String()
	}
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(t.Coefficient, 'g', -1, 64))
	sb.WriteString("*")
	sb.WriteString(t.Variable.String())
	return sb.String()
}

package cassowary

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// String returns a multi-line dump of the tableau meant for debugging.
// Basic rows are listed in owner id order and external symbols are
// annotated with their variable names.
func (s *Solver) String() string {
	var sb strings.Builder

	sb.WriteString("objective: ")
	s.writeRow(&sb, s.objective)
	sb.WriteByte('\n')

	owners := make([]symbol, 0, len(s.rows))
	for owner := range s.rows {
		owners = append(owners, owner)
	}
	slices.SortFunc(owners, func(a, b symbol) int { return cmp.Compare(a.id, b.id) })

	for _, owner := range owners {
		s.writeSymbol(&sb, owner)
		sb.WriteString(" = ")
		s.writeRow(&sb, s.rows[owner])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *Solver) writeSymbol(sb *strings.Builder, sym symbol) {
	sb.WriteString(sym.String())
	if sym.kind != symbolExternal {
		return
	}
	if v, ok := s.varForSym[sym.id]; ok && v.name != "" {
		sb.WriteByte('(')
		sb.WriteString(v.name)
		sb.WriteByte(')')
	}
}

func (s *Solver) writeRow(sb *strings.Builder, r *row) {
	sb.WriteString(strconv.FormatFloat(r.constant, 'g', -1, 64))
	for _, c := range r.cells {
		sb.WriteString(" + ")
		sb.WriteString(strconv.FormatFloat(c.coeff, 'g', -1, 64))
		sb.WriteByte('*')
		s.writeSymbol(sb, c.sym)
	}
}

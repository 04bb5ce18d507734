package cassowary

import "strconv"

// symbolKind classifies a tableau column.
type symbolKind uint8

const (
	symbolInvalid symbolKind = iota
	symbolExternal
	symbolSlack
	symbolError
	symbolDummy
)

// symbol identifies a column of the tableau. The id is strictly increasing
// per solver and is used for deterministic ordering and tie-breaking only,
// never for arithmetic. The zero value is the invalid symbol.
type symbol struct {
	id   uint32
	kind symbolKind
}

func (s symbol) valid() bool {
	return s.kind != symbolInvalid
}

// restricted reports whether the symbol is constrained to non-negative values
// and may therefore be pivoted into the basis during feasibility searches.
func (s symbol) restricted() bool {
	return s.kind == symbolSlack || s.kind == symbolError
}

func (s symbol) String() string {
	var prefix byte
	switch s.kind {
	case symbolExternal:
		prefix = 'v'
	case symbolSlack:
		prefix = 's'
	case symbolError:
		prefix = 'e'
	case symbolDummy:
		prefix = 'd'
	default:
		prefix = 'i'
	}
	return string(prefix) + strconv.FormatUint(uint64(s.id), 10)
}

package cassowary

import (
	"math"
	"slices"

	"github.com/atelier-ui/cassowary/internal/debug"
)

// epsilon is the threshold below which a coefficient or constant is treated
// as zero. Cells whose coefficient falls below it are pruned so that rows
// stay sparse and stale columns cannot accumulate.
const epsilon = 1.0e-8

func nearZero(value float64) bool {
	return math.Abs(value) < epsilon
}

// cell is a single column entry of a row.
type cell struct {
	sym   symbol
	coeff float64
}

// row is one linear equation of the tableau: the basic variable owning the
// row equals constant plus the sum of its cells. Cells are kept sorted by
// symbol id so that iteration order, and with it every tie-break taken from
// it, is deterministic. No cell holds a near-zero coefficient.
type row struct {
	constant float64
	cells    []cell
}

func newRow(constant float64) *row {
	return &row{constant: constant}
}

func (r *row) clone() *row {
	return &row{constant: r.constant, cells: slices.Clone(r.cells)}
}

// find returns the position of sym in the cell slice. When sym is absent the
// returned index is its insertion point.
func (r *row) find(sym symbol) (int, bool) {
	return slices.BinarySearchFunc(r.cells, sym, func(c cell, target symbol) int {
		switch {
		case c.sym.id < target.id:
			return -1
		case c.sym.id > target.id:
			return 1
		default:
			return 0
		}
	})
}

// add shifts the constant by value and returns the new constant.
func (r *row) add(value float64) float64 {
	r.constant += value
	return r.constant
}

// insertSymbol adds coefficient to the cell for sym, creating the cell when
// missing and pruning it when the sum lands within epsilon of zero.
func (r *row) insertSymbol(sym symbol, coefficient float64) {
	i, ok := r.find(sym)
	if ok {
		r.cells[i].coeff += coefficient
		if nearZero(r.cells[i].coeff) {
			r.cells = slices.Delete(r.cells, i, i+1)
		}
		return
	}
	if nearZero(coefficient) {
		return
	}
	r.cells = slices.Insert(r.cells, i, cell{sym: sym, coeff: coefficient})
}

// insertRow adds other scaled by coefficient into the receiver, cell by cell.
func (r *row) insertRow(other *row, coefficient float64) {
	r.constant += other.constant * coefficient
	for _, c := range other.cells {
		r.insertSymbol(c.sym, c.coeff*coefficient)
	}
}

func (r *row) remove(sym symbol) {
	if i, ok := r.find(sym); ok {
		r.cells = slices.Delete(r.cells, i, i+1)
	}
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for i := range r.cells {
		r.cells[i].coeff = -r.cells[i].coeff
	}
}

// solveFor rewrites the row as a definition of sym. With the row read as
// 0 = constant + sum of cells, the cell for sym is dropped and every
// remaining entry is scaled by -1/coeff(sym). The caller guarantees sym is
// in the row with a usable coefficient.
func (r *row) solveFor(sym symbol) {
	i, ok := r.find(sym)
	debug.Assert(ok, "solveFor: symbol not in row")
	coeff := -1.0 / r.cells[i].coeff
	r.cells = slices.Delete(r.cells, i, i+1)
	r.constant *= coeff
	for i := range r.cells {
		r.cells[i].coeff *= coeff
	}
}

// solveForPair rewrites the row, currently a definition of lhs, into a
// definition of rhs. This is the pivot primitive.
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1.0)
	r.solveFor(rhs)
}

// coefficientFor returns the coefficient of sym, or 0 when absent.
func (r *row) coefficientFor(sym symbol) float64 {
	if i, ok := r.find(sym); ok {
		return r.cells[i].coeff
	}
	return 0
}

// substitute replaces every occurrence of sym with the given definition and
// reports whether the constant moved.
func (r *row) substitute(sym symbol, definition *row) bool {
	i, ok := r.find(sym)
	if !ok {
		return false
	}
	coefficient := r.cells[i].coeff
	r.cells = slices.Delete(r.cells, i, i+1)
	before := r.constant
	r.insertRow(definition, coefficient)
	return r.constant != before
}

// allDummies reports whether every cell is a dummy column.
func (r *row) allDummies() bool {
	for _, c := range r.cells {
		if c.sym.kind != symbolDummy {
			return false
		}
	}
	return true
}

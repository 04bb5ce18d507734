package cassowary

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/atelier-ui/cassowary/debug"
	"github.com/atelier-ui/cassowary/profile"
)

// tag remembers the symbols a constraint introduced so that removing the
// constraint can undo its effects. marker identifies the constraint in the
// tableau; other is the second error symbol of a soft equality, or the
// error symbol of a soft inequality.
type tag struct {
	marker symbol
	other  symbol
}

// editInfo tracks one edit variable: the synthesized equality constraint
// holding it in place, that constraint's tag, and the value last suggested.
type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// varData is the solver side bookkeeping of a Variable. refCount counts the
// live constraints referencing the variable with a non-zero coefficient;
// the entry is dropped when it reaches zero. lastValue is the value most
// recently reported through FetchChanges.
type varData struct {
	sym       symbol
	refCount  int
	lastValue float64
}

// Change reports a variable whose value moved since the previous call to
// Solver.FetchChanges.
type Change struct {
	Variable *Variable
	Value    float64
}

// Solver is an incremental solver for systems of linear equality and
// inequality constraints over real valued variables. Constraints are added
// and removed one at a time and the solution is repaired after each call
// rather than recomputed, which keeps interactive workloads cheap.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	log zerolog.Logger

	cns       map[*Constraint]tag
	rows      map[symbol]*row
	vars      map[*Variable]*varData
	varForSym map[uint32]*Variable
	edits     map[*Variable]*editInfo

	// infeasible holds basic symbols whose rows acquired a negative
	// constant and await the dual optimization pass. queued mirrors it
	// for O(1) dedup.
	infeasible []symbol
	queued     *bitset.BitSet

	objective  *row
	artificial *row

	idTick uint32

	// changed accumulates the external symbol ids whose rows moved since
	// the last FetchChanges. clearChanges defers the post-fetch reset
	// until the next mutation or fetch, so the fetched set stays valid
	// while the caller iterates it.
	changed      *bitset.BitSet
	clearChanges bool
}

// NewSolver returns an empty solver. It fails only when an option is
// invalid.
func NewSolver(opts ...Option) (*Solver, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("new solver: %w", err)
	}
	return &Solver{
		log:       cfg.logger,
		cns:       make(map[*Constraint]tag, cfg.capacity),
		rows:      make(map[symbol]*row, cfg.capacity),
		vars:      make(map[*Variable]*varData, cfg.capacity),
		varForSym: make(map[uint32]*Variable, cfg.capacity),
		edits:     make(map[*Variable]*editInfo),
		queued:    bitset.New(64),
		changed:   bitset.New(64),
		objective: newRow(0),
	}, nil
}

// AddConstraint adds c to the solver and re-optimizes. It returns
// ErrDuplicateConstraint when c is already present and
// ErrUnsatisfiableConstraint when c is required and contradicts the current
// system; in both cases the solver is left untouched.
func (s *Solver) AddConstraint(c *Constraint) error {
	if _, ok := s.cns[c]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateConstraint, c)
	}
	profile.RecordConstraint()

	// Build the row for c with every basic variable replaced by its
	// current definition, then pick the symbol the row will define.
	r, t := s.createRow(c)
	subject := chooseSubject(r, t)

	// A row left with only dummy columns cannot affect the solution. It
	// is either redundant or, with a non-zero constant, a contradiction
	// among required constraints.
	if !subject.valid() && r.allDummies() {
		if !nearZero(r.constant) {
			s.logUnsatisfiable(c)
			return fmt.Errorf("%w: %s", ErrUnsatisfiableConstraint, c)
		}
		subject = t.marker
	}

	if !subject.valid() {
		ok, err := s.addWithArtificialVariable(r)
		if err != nil {
			return err
		}
		if !ok {
			s.logUnsatisfiable(c)
			return fmt.Errorf("%w: %s", ErrUnsatisfiableConstraint, c)
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		if subject.kind == symbolExternal && r.constant != 0 {
			s.markSymChanged(subject)
		}
		s.rows[subject] = r
	}

	s.cns[c] = t
	for _, term := range c.expression.Terms {
		if !nearZero(term.Coefficient) {
			s.vars[term.Variable].refCount++
		}
	}

	if err := s.optimize(s.objective); err != nil {
		return err
	}
	if debug.Debug {
		s.assertFeasible()
	}

	s.log.Debug().Stringer("constraint", c).Int("rows", len(s.rows)).Msg("constraint added")
	return nil
}

// RemoveConstraint removes a previously added constraint and re-optimizes.
// It returns ErrUnknownConstraint when c is not in the solver.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	t, ok := s.cns[c]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConstraint, c)
	}
	delete(s.cns, c)

	// Undo the error weights before any pivoting, otherwise the
	// substitutions below would fold the stale weights back in.
	s.removeConstraintEffects(c, t)

	if _, basic := s.rows[t.marker]; basic {
		delete(s.rows, t.marker)
	} else {
		leaving, target, err := s.markerLeavingRow(t.marker)
		if err != nil {
			return err
		}
		delete(s.rows, leaving)
		if leaving.kind == symbolExternal && target.constant != 0 {
			s.markSymChanged(leaving)
		}
		target.solveForPair(leaving, t.marker)
		s.substitute(t.marker, target)
	}

	if err := s.optimize(s.objective); err != nil {
		return err
	}
	if debug.Debug {
		s.assertFeasible()
	}

	for _, term := range c.expression.Terms {
		if !nearZero(term.Coefficient) {
			s.releaseVariable(term.Variable)
		}
	}

	s.log.Debug().Stringer("constraint", c).Int("rows", len(s.rows)).Msg("constraint removed")
	return nil
}

// HasConstraint reports whether c is currently in the solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	_, ok := s.cns[c]
	return ok
}

// NumConstraints returns the number of constraints in the solver, counting
// the equalities synthesized for edit variables.
func (s *Solver) NumConstraints() int {
	return len(s.cns)
}

// AddEditVariable registers v so that values can be suggested for it. The
// strength must be below Required; Strong is the usual choice. Suggesting
// is implemented as a soft equality v == suggested held at the given
// strength, so ordinary constraints interact with it by strength as usual.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEditVariable, v)
	}
	strength = clipStrength(strength)
	if strength == Required {
		return fmt.Errorf("%w: %s", ErrBadRequiredStrength, v)
	}
	cn := NewConstraint(NewExpression(v), EQ, strength)
	if err := s.AddConstraint(cn); err != nil {
		return err
	}
	s.edits[v] = &editInfo{
		tag:        s.cns[cn],
		constraint: cn,
	}
	s.log.Debug().Stringer("variable", v).Stringer("strength", strength).Msg("edit variable added")
	return nil
}

// RemoveEditVariable deregisters v and removes the equality holding it.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEditVariable, v)
	}
	if err := s.RemoveConstraint(info.constraint); err != nil {
		if errors.Is(err, ErrUnknownConstraint) {
			return internalError(fmt.Errorf("%w: %s", ErrEditConstraintNotInSystem, v))
		}
		return err
	}
	delete(s.edits, v)
	s.log.Debug().Stringer("variable", v).Msg("edit variable removed")
	return nil
}

// HasEditVariable reports whether v is registered for editing.
func (s *Solver) HasEditVariable(v *Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// NumEditVariables returns the number of registered edit variables.
func (s *Solver) NumEditVariables() int {
	return len(s.edits)
}

// SuggestValue states that v should take the given value if the rest of the
// system allows. The slide from the previous suggestion is applied directly
// to the affected row constants and feasibility is then repaired with the
// dual simplex, which is what makes repeated suggestions cheap.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEditVariable, v)
	}

	delta := value - info.constant
	info.constant = value

	switch {
	case s.applyDeltaToBasic(info.tag.marker, -delta):
	case s.applyDeltaToBasic(info.tag.other, delta):
	default:
		// Neither error symbol is basic: propagate the delta through
		// every row holding the marker.
		for owner, target := range s.rows {
			coeff := target.coefficientFor(info.tag.marker)
			if coeff == 0 {
				continue
			}
			if owner.kind == symbolExternal {
				s.markSymChanged(owner)
				target.add(delta * coeff)
				continue
			}
			if target.add(delta*coeff) < 0 {
				s.enqueueInfeasible(owner)
			}
		}
	}

	if err := s.dualOptimize(); err != nil {
		return err
	}
	if debug.Debug {
		s.assertFeasible()
	}

	s.log.Debug().Stringer("variable", v).Float64("value", value).Msg("value suggested")
	return nil
}

// applyDeltaToBasic shifts the constant of sym's row when sym is basic,
// queueing the row for repair when it turns negative. It reports whether
// sym was basic.
func (s *Solver) applyDeltaToBasic(sym symbol, delta float64) bool {
	r, ok := s.rows[sym]
	if !ok {
		return false
	}
	if r.add(delta) < 0 {
		s.enqueueInfeasible(sym)
	}
	return true
}

// Value returns the current value of v, or 0 when v is unknown to the
// solver or not pinned by any constraint.
func (s *Solver) Value(v *Variable) float64 {
	data, ok := s.vars[v]
	if !ok {
		return 0
	}
	return s.valueOf(data.sym)
}

// FetchChanges returns the variables whose values moved since the previous
// call, with their new values. The returned slice is ordered by the age of
// the variables' first appearance in the solver and stays valid until the
// next call into the solver.
func (s *Solver) FetchChanges() []Change {
	s.flushChanged()

	var changes []Change
	for id, ok := s.changed.NextSet(0); ok; id, ok = s.changed.NextSet(id + 1) {
		v := s.varForSym[uint32(id)]
		if v == nil {
			// The variable was released while flagged.
			continue
		}
		data := s.vars[v]
		value := s.valueOf(data.sym)
		if value != data.lastValue {
			data.lastValue = value
			changes = append(changes, Change{Variable: v, Value: value})
		}
	}
	s.clearChanges = true
	return changes
}

// Reset returns the solver to its freshly constructed state. Variables and
// constraints created by the caller are unaffected and can be re-added.
func (s *Solver) Reset() {
	s.cns = make(map[*Constraint]tag)
	s.rows = make(map[symbol]*row)
	s.vars = make(map[*Variable]*varData)
	s.varForSym = make(map[uint32]*Variable)
	s.edits = make(map[*Variable]*editInfo)
	s.infeasible = s.infeasible[:0]
	s.queued.ClearAll()
	s.changed.ClearAll()
	s.clearChanges = false
	s.objective = newRow(0)
	s.artificial = nil
	s.idTick = 0
	s.log.Debug().Msg("solver reset")
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.idTick++
	return symbol{id: s.idTick, kind: kind}
}

// varSymbol returns the external symbol of v, allocating the bookkeeping
// entry on first sight.
func (s *Solver) varSymbol(v *Variable) symbol {
	if data, ok := s.vars[v]; ok {
		return data.sym
	}
	sym := s.newSymbol(symbolExternal)
	s.vars[v] = &varData{sym: sym}
	s.varForSym[sym.id] = v
	return sym
}

// releaseVariable drops one constraint reference to v and garbage collects
// the bookkeeping entry when none remain.
func (s *Solver) releaseVariable(v *Variable) {
	data, ok := s.vars[v]
	if !ok {
		return
	}
	data.refCount--
	if data.refCount > 0 {
		return
	}
	delete(s.varForSym, data.sym.id)
	s.changed.Clear(uint(data.sym.id))
	delete(s.vars, v)
}

// valueOf reads the current value of a symbol: its row constant when basic,
// 0 otherwise. Negative zero is normalized so callers never observe -0.
func (s *Solver) valueOf(sym symbol) float64 {
	if r, ok := s.rows[sym]; ok {
		if v := r.constant; v != 0 {
			return v
		}
	}
	return 0
}

func (s *Solver) markSymChanged(sym symbol) {
	s.flushChanged()
	s.changed.Set(uint(sym.id))
}

// flushChanged performs the reset deferred by the last FetchChanges.
func (s *Solver) flushChanged() {
	if s.clearChanges {
		s.changed.ClearAll()
		s.clearChanges = false
	}
}

func (s *Solver) enqueueInfeasible(sym symbol) {
	if s.queued.Test(uint(sym.id)) {
		return
	}
	s.queued.Set(uint(sym.id))
	s.infeasible = append(s.infeasible, sym)
}

// createRow translates c into a tableau row. Basic variables are replaced
// by their definitions so the row mentions non-basic symbols only. The
// returned tag carries the marker and error symbols allocated for c.
func (s *Solver) createRow(c *Constraint) (*row, tag) {
	expr := c.expression
	r := newRow(expr.Constant)

	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	var t tag
	switch c.op {
	case LE, GE:
		coeff := 1.0
		if c.op == GE {
			coeff = -1.0
		}
		slack := s.newSymbol(symbolSlack)
		t.marker = slack
		r.insertSymbol(slack, coeff)
		if c.strength < Required {
			errSym := s.newSymbol(symbolError)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, float64(c.strength))
		}
	default:
		if c.strength < Required {
			errPlus := s.newSymbol(symbolError)
			errMinus := s.newSymbol(symbolError)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1.0)
			r.insertSymbol(errMinus, 1.0)
			s.objective.insertSymbol(errPlus, float64(c.strength))
			s.objective.insertSymbol(errMinus, float64(c.strength))
		} else {
			dummy := s.newSymbol(symbolDummy)
			t.marker = dummy
			r.insertSymbol(dummy, 1.0)
		}
	}

	// Rows are kept with non-negative constants.
	if r.constant < 0 {
		r.reverseSign()
	}
	return r, t
}

// chooseSubject picks the symbol the new row will define: the first
// external symbol if any, otherwise the marker or error symbol when its
// coefficient is negative. The invalid symbol means no choice exists and
// an artificial variable is required.
func chooseSubject(r *row, t tag) symbol {
	for _, c := range r.cells {
		if c.sym.kind == symbolExternal {
			return c.sym
		}
	}
	if t.marker.restricted() && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if t.other.restricted() && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

// addWithArtificialVariable performs the phase one feasibility search for a
// row with no usable subject. It reports whether the row could be satisfied.
// The search pivots the live tableau; when it fails, the tableau, objective
// and queues are restored so the rejected constraint leaves no trace.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	cp := s.checkpoint()

	art := s.newSymbol(symbolSlack)
	s.rows[art] = r.clone()
	s.artificial = r.clone()

	// Minimize the artificial objective. The row is satisfiable exactly
	// when it reaches zero.
	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		s.restore(cp)
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if artRow, basic := s.rows[art]; basic {
		delete(s.rows, art)
		if len(artRow.cells) == 0 {
			if !success {
				s.restore(cp)
			}
			return success, nil
		}
		entering := anyPivotableSymbol(artRow)
		if !entering.valid() {
			s.restore(cp)
			if !success {
				return false, nil
			}
			return false, internalError(fmt.Errorf("%w: artificial row has no pivotable symbol", ErrInternalSolver))
		}
		artRow.solveForPair(art, entering)
		s.substitute(entering, artRow)
		s.rows[entering] = artRow
	}

	// Scrub the artificial column out of the tableau.
	for _, target := range s.rows {
		target.remove(art)
	}
	s.objective.remove(art)

	if !success {
		s.restore(cp)
	}
	return success, nil
}

// checkpoint captures the pivotable state of the solver. Variable and
// constraint bookkeeping is excluded: the feasibility search never touches
// it.
type checkpoint struct {
	rows         map[symbol]*row
	objective    *row
	infeasible   []symbol
	queued       *bitset.BitSet
	changed      *bitset.BitSet
	clearChanges bool
}

func (s *Solver) checkpoint() checkpoint {
	rows := make(map[symbol]*row, len(s.rows))
	for owner, r := range s.rows {
		rows[owner] = r.clone()
	}
	return checkpoint{
		rows:         rows,
		objective:    s.objective.clone(),
		infeasible:   append([]symbol(nil), s.infeasible...),
		queued:       s.queued.Clone(),
		changed:      s.changed.Clone(),
		clearChanges: s.clearChanges,
	}
}

func (s *Solver) restore(cp checkpoint) {
	s.rows = cp.rows
	s.objective = cp.objective
	s.infeasible = cp.infeasible
	s.queued = cp.queued
	s.changed = cp.changed
	s.clearChanges = cp.clearChanges
}

// anyPivotableSymbol returns the first slack or error symbol of the row.
func anyPivotableSymbol(r *row) symbol {
	for _, c := range r.cells {
		if c.sym.restricted() {
			return c.sym
		}
	}
	return symbol{}
}

// substitute replaces sym with its definition in every row, the objective
// and, during a feasibility search, the artificial objective. Rows owned by
// external symbols are flagged as changed when their constant moves; other
// rows are queued for dual repair when their constant turns negative.
func (s *Solver) substitute(sym symbol, definition *row) {
	for owner, target := range s.rows {
		constantChanged := target.substitute(sym, definition)
		if owner.kind == symbolExternal {
			if constantChanged {
				s.markSymChanged(owner)
			}
		} else if target.constant < 0 {
			s.enqueueInfeasible(owner)
		}
	}
	s.objective.substitute(sym, definition)
	if s.artificial != nil {
		s.artificial.substitute(sym, definition)
	}
}

// enteringSymbol picks the column to bring into the basis: the lowest id
// non-dummy symbol with a negative objective coefficient, or the invalid
// symbol at the optimum.
func enteringSymbol(objective *row) symbol {
	for _, c := range objective.cells {
		if c.sym.kind != symbolDummy && c.coeff < 0 {
			return c.sym
		}
	}
	return symbol{}
}

// optimize runs the primal simplex until the given objective is minimal.
// Ties in the ratio test break toward the lowest symbol id to keep pivots
// deterministic.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if !entering.valid() {
			return nil
		}

		var (
			leaving symbol
			target  *row
			ratio   = math.Inf(1)
		)
		for owner, candidate := range s.rows {
			if owner.kind == symbolExternal {
				continue
			}
			coeff := candidate.coefficientFor(entering)
			if coeff >= 0 {
				continue
			}
			r := -candidate.constant / coeff
			if r < ratio || (r == ratio && owner.id < leaving.id) {
				ratio, leaving, target = r, owner, candidate
			}
		}
		if target == nil {
			return internalError(ErrObjectiveUnbounded)
		}

		delete(s.rows, leaving)
		target.solveForPair(leaving, entering)
		s.substitute(entering, target)
		if entering.kind == symbolExternal && target.constant != 0 {
			s.markSymChanged(entering)
		}
		s.rows[entering] = target
	}
}

// dualEnteringSymbol picks the entering column for a dual pivot on the
// given infeasible row: the non-dummy cell with a positive coefficient
// minimizing objective coefficient over cell coefficient.
func (s *Solver) dualEnteringSymbol(r *row) symbol {
	var (
		entering symbol
		ratio    = math.Inf(1)
	)
	for _, c := range r.cells {
		if c.sym.kind == symbolDummy || c.coeff <= 0 {
			continue
		}
		candidate := s.objective.coefficientFor(c.sym) / c.coeff
		if candidate < ratio {
			ratio, entering = candidate, c.sym
		}
	}
	return entering
}

// dualOptimize restores feasibility after row constants have been shifted,
// pivoting each queued negative row against the entering symbol that
// degrades the objective least.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		n := len(s.infeasible) - 1
		leaving := s.infeasible[n]
		s.infeasible = s.infeasible[:n]
		s.queued.Clear(uint(leaving.id))

		target, ok := s.rows[leaving]
		if !ok || target.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(target)
		if !entering.valid() {
			return internalError(ErrDualOptimizeFailed)
		}

		delete(s.rows, leaving)
		target.solveForPair(leaving, entering)
		s.substitute(entering, target)
		if entering.kind == symbolExternal && target.constant != 0 {
			s.markSymChanged(entering)
		}
		s.rows[entering] = target
	}
	return nil
}

// markerLeavingRow selects the row to pivot against when removing a
// constraint whose marker is not basic. Restricted rows with a negative
// marker coefficient come first, then restricted rows with a positive one,
// then any row holding the marker, each by minimal exit ratio with ties
// broken toward the lowest owner id.
func (s *Solver) markerLeavingRow(marker symbol) (symbol, *row, error) {
	r1, r2 := math.Inf(1), math.Inf(1)
	var (
		first, second, third          symbol
		firstRow, secondRow, thirdRow *row
	)
	for owner, candidate := range s.rows {
		coeff := candidate.coefficientFor(marker)
		if coeff == 0 {
			continue
		}
		switch {
		case owner.kind == symbolExternal:
			if !third.valid() || owner.id < third.id {
				third, thirdRow = owner, candidate
			}
		case coeff < 0:
			ratio := -candidate.constant / coeff
			if ratio < r1 || (ratio == r1 && owner.id < first.id) {
				r1, first, firstRow = ratio, owner, candidate
			}
		default:
			ratio := candidate.constant / coeff
			if ratio < r2 || (ratio == r2 && owner.id < second.id) {
				r2, second, secondRow = ratio, owner, candidate
			}
		}
	}
	switch {
	case first.valid():
		return first, firstRow, nil
	case second.valid():
		return second, secondRow, nil
	case third.valid():
		return third, thirdRow, nil
	}
	return symbol{}, nil, internalError(ErrFailedToFindLeavingRow)
}

// removeConstraintEffects subtracts the error weights c contributed to the
// objective, using the current definition of any error symbol that is
// basic.
func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == symbolError {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == symbolError {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}

// logUnsatisfiable reports the call site of a conflicting constraint. Only
// active under the debug build tag, where the stack shows which piece of
// application code produced the conflict.
func (s *Solver) logUnsatisfiable(c *Constraint) {
	if !debug.Debug {
		return
	}
	s.log.Error().Str("stack", debug.Stack()).Stringer("constraint", c).Msg("unsatisfiable constraint")
}

// assertFeasible panics when a restricted row carries a negative constant.
// It only runs under the debug build tag.
func (s *Solver) assertFeasible() {
	for owner, r := range s.rows {
		if owner.kind != symbolExternal && r.constant < 0 {
			panic(fmt.Sprintf("row %s is infeasible: constant %v", owner, r.constant))
		}
	}
}

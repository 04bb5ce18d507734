package cassowary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/atelier-ui/cassowary/logger"
)

// System is a serializable, identity free description of a constraint set.
// Variables are reduced to indexes into Names; solving identity is
// re-established by Instantiate. Snapshots survive solver versions within
// reason: the version of the writing library travels with the data and is
// checked on load.
type System struct {
	// serialization header
	CassowaryVersion string

	Names       []string           `cbor:"-"`
	Constraints []SystemConstraint `cbor:"-"`
	Edits       []SystemEdit
}

// SystemTerm is one scaled variable of a serialized constraint. Var indexes
// into System.Names.
type SystemTerm struct {
	Var   uint32
	Coeff float64
}

// SystemConstraint is one serialized constraint: Terms plus Constant related
// to zero under Op, held at Strength.
type SystemConstraint struct {
	Terms    []SystemTerm
	Constant float64
	Op       Operator
	Strength float64
}

// SystemEdit is a serialized edit variable registration together with its
// last suggested value.
type SystemEdit struct {
	Var      uint32
	Strength float64
	Value    float64
}

// Suggestion pairs an edit variable with its strength and a suggested value.
type Suggestion struct {
	Variable *Variable
	Strength Strength
	Value    float64
}

// Snapshot captures constraints, and optionally edit suggestions, as a
// System. Variables are numbered by first appearance and keep their display
// names.
func Snapshot(constraints []*Constraint, suggestions ...Suggestion) *System {
	sys := &System{CassowaryVersion: Version.String()}

	index := make(map[*Variable]uint32)
	varID := func(v *Variable) uint32 {
		if id, ok := index[v]; ok {
			return id
		}
		id := uint32(len(sys.Names))
		index[v] = id
		sys.Names = append(sys.Names, v.String())
		return id
	}

	for _, c := range constraints {
		sc := SystemConstraint{
			Constant: c.expression.Constant,
			Op:       c.op,
			Strength: float64(c.strength),
		}
		for _, t := range c.expression.Terms {
			sc.Terms = append(sc.Terms, SystemTerm{Var: varID(t.Variable), Coeff: t.Coefficient})
		}
		sys.Constraints = append(sys.Constraints, sc)
	}
	for _, sug := range suggestions {
		sys.Edits = append(sys.Edits, SystemEdit{
			Var:      varID(sug.Variable),
			Strength: float64(sug.Strength),
			Value:    sug.Value,
		})
	}
	return sys
}

// Instance is a System reified into fresh variables and constraints, ready
// to be applied to a solver.
type Instance struct {
	Variables   []*Variable
	Constraints []*Constraint
	Suggestions []Suggestion
}

// Instantiate validates the system and creates fresh variables and
// constraints for it.
func (sys *System) Instantiate() (*Instance, error) {
	inst := &Instance{Variables: make([]*Variable, len(sys.Names))}
	for i, name := range sys.Names {
		inst.Variables[i] = NewVariable(name)
	}

	for i, sc := range sys.Constraints {
		if sc.Op < LE || sc.Op > GE {
			return nil, fmt.Errorf("constraint %d: unknown operator %d", i, sc.Op)
		}
		e := Expression{Constant: sc.Constant}
		for _, t := range sc.Terms {
			if int(t.Var) >= len(inst.Variables) {
				return nil, fmt.Errorf("constraint %d: variable index %d out of range", i, t.Var)
			}
			e.Terms = append(e.Terms, Term{Variable: inst.Variables[t.Var], Coefficient: t.Coeff})
		}
		inst.Constraints = append(inst.Constraints, NewConstraint(e, sc.Op, Strength(sc.Strength)))
	}

	for i, ed := range sys.Edits {
		if int(ed.Var) >= len(inst.Variables) {
			return nil, fmt.Errorf("edit %d: variable index %d out of range", i, ed.Var)
		}
		inst.Suggestions = append(inst.Suggestions, Suggestion{
			Variable: inst.Variables[ed.Var],
			Strength: Strength(ed.Strength),
			Value:    ed.Value,
		})
	}
	return inst, nil
}

// Apply loads the instance into s: constraints are added, edit variables
// registered and their suggestions applied.
func (inst *Instance) Apply(s *Solver) error {
	for _, c := range inst.Constraints {
		if err := s.AddConstraint(c); err != nil {
			return err
		}
	}
	for _, sug := range inst.Suggestions {
		if err := s.AddEditVariable(sug.Variable, sug.Strength); err != nil {
			return err
		}
		if err := s.SuggestValue(sug.Variable, sug.Value); err != nil {
			return err
		}
	}
	return nil
}

// Variable returns the first instantiated variable with the given name, or
// nil when the system has none.
func (inst *Instance) Variable(name string) *Variable {
	for _, v := range inst.Variables {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// ToBytes serializes the system to a byte slice.
func (sys *System) ToBytes() ([]byte, error) {
	// we prepare and write 3 distinct blocks of data;
	// that allows for a more efficient serialization/deserialization (+ parallelism)
	var names, constraints []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		names, err = cborEncode(sys.Names)
		return err
	})
	g.Go(func() error {
		var err error
		constraints, err = cborEncode(sys.Constraints)
		return err
	})
	body, err := cborEncode(sys)
	if err != nil {
		return nil, err
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := marshalHeader{
		namesLen:       uint64(len(names)),
		constraintsLen: uint64(len(constraints)),
		bodyLen:        uint64(len(body)),
	}

	buf := h.toBytes()
	buf = append(buf, names...)
	buf = append(buf, constraints...)
	buf = append(buf, body...)

	return buf, nil
}

// FromBytes deserializes the system from a byte slice and returns the number
// of bytes read.
func (sys *System) FromBytes(data []byte) (int, error) {
	if len(data) < marshalHeaderLen {
		return 0, errors.New("invalid data length")
	}

	// read the header which contains the length of each section
	h := new(marshalHeader)
	h.fromBytes(data)

	if uint64(len(data)) < marshalHeaderLen+h.namesLen+h.constraintsLen+h.bodyLen {
		return 0, errors.New("invalid data length")
	}

	// read the sections in parallel
	var g errgroup.Group
	g.Go(func() error {
		return cborDecode(data[marshalHeaderLen:marshalHeaderLen+h.namesLen], &sys.Names)
	})
	g.Go(func() error {
		return cborDecode(data[marshalHeaderLen+h.namesLen:marshalHeaderLen+h.namesLen+h.constraintsLen], &sys.Constraints)
	})

	if err := cborDecode(data[marshalHeaderLen+h.namesLen+h.constraintsLen:marshalHeaderLen+h.namesLen+h.constraintsLen+h.bodyLen], sys); err != nil {
		return 0, err
	}

	if err := sys.CheckSerializationHeader(); err != nil {
		return 0, err
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return marshalHeaderLen + int(h.namesLen) + int(h.constraintsLen) + int(h.bodyLen), nil
}

// CheckSerializationHeader verifies the library version header.
//
// This is meant to be used at the deserialization step, and will error for
// illegal values.
func (sys *System) CheckSerializationHeader() error {
	objectVersion, err := semver.Parse(sys.CassowaryVersion)
	if err != nil {
		return fmt.Errorf("when parsing cassowary version: %w", err)
	}

	if Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", Version.String()).Str("object", objectVersion.String()).Msg("cassowary version (binary) mismatch with serialized system. there are no guarantees on compatibility")
	}

	return nil
}

const marshalHeaderLen = 3 * 8

type marshalHeader struct {
	// length in bytes of each section
	namesLen       uint64
	constraintsLen uint64
	bodyLen        uint64
}

func (h *marshalHeader) toBytes() []byte {
	buf := make([]byte, 0, marshalHeaderLen+h.namesLen+h.constraintsLen+h.bodyLen)

	buf = binary.LittleEndian.AppendUint64(buf, h.namesLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.constraintsLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)

	return buf
}

func (h *marshalHeader) fromBytes(buf []byte) {
	h.namesLen = binary.LittleEndian.Uint64(buf[:8])
	h.constraintsLen = binary.LittleEndian.Uint64(buf[8:16])
	h.bodyLen = binary.LittleEndian.Uint64(buf[16:24])
}

func cborEncode(v interface{}) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := enc.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cborDecode(data []byte, v interface{}) error {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return err
	}
	return dm.NewDecoder(bytes.NewReader(data)).Decode(v)
}

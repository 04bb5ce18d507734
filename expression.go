package cassowary

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Expression is a linear combination of terms plus a constant. Expressions
// are values: every combinator returns a fresh expression and never mutates
// its operands, so they can be shared and reused freely when building
// constraints.
type Expression struct {
	Terms    []Term
	Constant float64
}

// NewExpression sums the given items into a single expression. Each item may
// be a *Variable (coefficient 1), a Term, another Expression, or any numeric
// value accepted by toFloat. Items of unsupported type panic, as they are
// invariably programming errors.
//
//	NewExpression(left, NewTerm(width, 0.5), -10)
func NewExpression(items ...interface{}) Expression {
	var e Expression
	for _, item := range items {
		switch v := item.(type) {
		case *Variable:
			e.Terms = append(e.Terms, Term{Variable: v, Coefficient: 1})
		case Term:
			e.Terms = append(e.Terms, v)
		case Expression:
			e.Terms = append(e.Terms, v.Terms...)
			e.Constant += v.Constant
		case *Expression:
			e.Terms = append(e.Terms, v.Terms...)
			e.Constant += v.Constant
		default:
			e.Constant += toFloat(item)
		}
	}
	return e
}

// toFloat converts the supported numeric kinds to float64. It mirrors the
// loose input convention of NewExpression and panics on anything else.
func toFloat(input interface{}) float64 {
	switch v := input.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	case big.Int:
		f, _ := new(big.Float).SetInt(&v).Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(fmt.Sprintf("unable to parse %q as a number", v))
		}
		return f
	default:
		panic(fmt.Sprintf("value to expression item not supported: %T", input))
	}
}

// Plus returns the sum of the expression and the given items.
func (e Expression) Plus(items ...interface{}) Expression {
	return NewExpression(append([]interface{}{e}, items...)...)
}

// Minus returns the expression minus the sum of the given items.
func (e Expression) Minus(items ...interface{}) Expression {
	return e.Plus(NewExpression(items...).Negate())
}

// Times returns the expression scaled by the given factor.
func (e Expression) Times(factor float64) Expression {
	out := Expression{Constant: e.Constant * factor}
	if len(e.Terms) > 0 {
		out.Terms = make([]Term, len(e.Terms))
		for i, t := range e.Terms {
			out.Terms[i] = Term{Variable: t.Variable, Coefficient: t.Coefficient * factor}
		}
	}
	return out
}

// Divide returns the expression scaled by 1/divisor.
func (e Expression) Divide(divisor float64) Expression {
	return e.Times(1 / divisor)
}

// Negate returns the expression scaled by -1.
func (e Expression) Negate() Expression {
	return e.Times(-1)
}

func (e Expression) clone() Expression {
	out := Expression{Constant: e.Constant}
	if len(e.Terms) > 0 {
		out.Terms = make([]Term, len(e.Terms))
		copy(out.Terms, e.Terms)
	}
	return out
}

func (e Expression) String() string {
	var sb strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(t.String())
	}
	if e.Constant != 0 || len(e.Terms) == 0 {
		if len(e.Terms) > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(strconv.FormatFloat(e.Constant, 'g', -1, 64))
	}
	return sb.String()
}

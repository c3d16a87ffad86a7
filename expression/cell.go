package expression

import (
	"fmt"

	"github.com/katalvlaran/lvopt/variable"
)

// Cell is the canonical atom a monomial expands into: either a constant, or
// a coefficient over one variable (linear term) or over an ordered pair of
// variables (quadratic term).
//
// Pairs are stored in canonical order (smaller variable key first), so
// QuadraticTerm(c, a, b) and QuadraticTerm(c, b, a) are the same cell.
// Cells are immutable values; every operation returns a new cell.
type Cell struct {
	constant    bool
	coefficient float64 // the value itself for constants
	first       *variable.Item
	second      *variable.Item // nil for constants and linear terms
}

// CellKey is the comparable identity of a cell's variable part. Two term
// cells may be added iff their keys are equal.
type CellKey struct {
	Constant bool
	Pair     bool
	First    variable.Key
	Second   variable.Key
}

// Constant returns a constant cell.
func Constant(value float64) Cell {
	return Cell{constant: true, coefficient: value}
}

// LinearTerm returns coefficient*v. It panics when v is nil.
func LinearTerm(coefficient float64, v *variable.Item) Cell {
	if v == nil {
		panic("expression: LinearTerm over nil variable")
	}

	return Cell{coefficient: coefficient, first: v}
}

// QuadraticTerm returns coefficient*a*b with the pair in canonical order.
// It panics when a or b is nil.
func QuadraticTerm(coefficient float64, a, b *variable.Item) Cell {
	if a == nil || b == nil {
		panic("expression: QuadraticTerm over nil variable")
	}
	if b.Key().Less(a.Key()) {
		a, b = b, a
	}

	return Cell{coefficient: coefficient, first: a, second: b}
}

// IsConstant reports whether the cell is a constant.
func (c Cell) IsConstant() bool { return c.constant }

// IsPair reports whether the cell is a quadratic (two-variable) term.
func (c Cell) IsPair() bool { return !c.constant && c.second != nil }

// Coefficient returns the term coefficient, or the value of a constant.
func (c Cell) Coefficient() float64 { return c.coefficient }

// Variables returns the variables of a term in canonical order; second is
// nil for linear terms, both are nil for constants.
func (c Cell) Variables() (first, second *variable.Item) { return c.first, c.second }

// Category returns Quadratic for pair terms and Linear otherwise.
func (c Cell) Category() Category {
	if c.IsPair() {
		return Quadratic
	}

	return Linear
}

// Key returns the canonical identity of the cell's variable part.
func (c Cell) Key() CellKey {
	switch {
	case c.constant:
		return CellKey{Constant: true}
	case c.second == nil:
		return CellKey{First: c.first.Key()}
	default:
		return CellKey{Pair: true, First: c.first.Key(), Second: c.second.Key()}
	}
}

// Equal compares kind, coefficient and canonical variables.
func (c Cell) Equal(other Cell) bool {
	return c.Key() == other.Key() && c.coefficient == other.coefficient
}

// Negate returns -c.
func (c Cell) Negate() Cell {
	c.coefficient = -c.coefficient

	return c
}

// Scale returns k*c.
func (c Cell) Scale(k float64) Cell {
	c.coefficient *= k

	return c
}

// Divide returns c/k.
func (c Cell) Divide(k float64) Cell {
	c.coefficient /= k

	return c
}

// Add returns c+other. Both cells must be constants, or terms over exactly
// the same variables.
func (c Cell) Add(other Cell) (Cell, error) {
	if err := c.compatible(other); err != nil {
		return Cell{}, fmt.Errorf("add %s and %s: %w", c, other, err)
	}
	c.coefficient += other.coefficient

	return c, nil
}

// Sub returns c-other under the same rules as Add.
func (c Cell) Sub(other Cell) (Cell, error) {
	if err := c.compatible(other); err != nil {
		return Cell{}, fmt.Errorf("subtract %s from %s: %w", other, c, err)
	}
	c.coefficient -= other.coefficient

	return c, nil
}

// Multiply returns c*other. A constant scales the other cell; two linear
// terms form a canonical pair; anything involving a pair term and another
// term fails with ErrDegreeExceeded.
func (c Cell) Multiply(other Cell) (Cell, error) {
	switch {
	case c.constant && other.constant:
		return Constant(c.coefficient * other.coefficient), nil
	case c.constant:
		return other.Scale(c.coefficient), nil
	case other.constant:
		return c.Scale(other.coefficient), nil
	case c.IsPair() || other.IsPair():
		return Cell{}, fmt.Errorf("multiply %s by %s: %w", c, other, ErrDegreeExceeded)
	default:
		return QuadraticTerm(c.coefficient*other.coefficient, c.first, other.first), nil
	}
}

// Evaluate resolves the cell against token results. A variable that is not
// registered, or registered without a result, makes the cell unresolvable:
// the call reports ok=false unless zeroIfMissing is set, in which case it
// returns (0, true).
func (c Cell) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	if c.constant {
		return c.coefficient, true
	}
	v1, ok := resultOf(tokens, c.first)
	if ok && c.second != nil {
		var v2 float64
		v2, ok = resultOf(tokens, c.second)
		v1 *= v2
	}
	if !ok {
		return missing(zeroIfMissing)
	}

	return c.coefficient * v1, true
}

// EvaluateResults resolves the cell positionally against a results vector
// indexed by tokens.IndexOf.
func (c Cell) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	if c.constant {
		return c.coefficient, true
	}
	v1, ok := resultAt(results, tokens, c.first)
	if ok && c.second != nil {
		var v2 float64
		v2, ok = resultAt(results, tokens, c.second)
		v1 *= v2
	}
	if !ok {
		return missing(zeroIfMissing)
	}

	return c.coefficient * v1, true
}

// String renders "k", "k * x" or "k * x * y".
func (c Cell) String() string {
	switch {
	case c.constant:
		return formatFloat(c.coefficient)
	case c.second == nil:
		return fmt.Sprintf("%s * %s", formatFloat(c.coefficient), c.first.Name())
	default:
		return fmt.Sprintf("%s * %s * %s", formatFloat(c.coefficient), c.first.Name(), c.second.Name())
	}
}

func (c Cell) compatible(other Cell) error {
	if c.constant != other.constant {
		return ErrIncompatibleCellKinds
	}
	if c.Key() != other.Key() {
		return ErrMismatchedVariable
	}

	return nil
}

func resultOf(tokens variable.Lookup, item *variable.Item) (float64, bool) {
	if tokens == nil {
		return 0, false
	}
	tok, ok := tokens.Find(item)
	if !ok {
		return 0, false
	}

	return tok.Result()
}

func resultAt(results []float64, tokens variable.Lookup, item *variable.Item) (float64, bool) {
	if tokens == nil {
		return 0, false
	}
	i, ok := tokens.IndexOf(item)
	if !ok || i < 0 || i >= len(results) {
		return 0, false
	}

	return results[i], true
}

func missing(zeroIfMissing bool) (float64, bool) {
	if zeroIfMissing {
		return 0, true
	}

	return 0, false
}

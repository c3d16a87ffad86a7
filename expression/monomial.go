package expression

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvopt/variable"
)

// Monomial is coefficient × Symbol with a lazily computed range and cell
// expansion.
//
// Both caches are filled on first access and kept until Flush drops them.
// A range installed through SetRange, IntersectRange or one of the Range*
// refinements is settled and survives Flush(false); the computed range does
// not. The cell cache survives Flush(false) only when the symbol caches its
// own expansion.
//
// A Monomial is owned by one builder at a time; the caches are not guarded.
type Monomial struct {
	// Name and DisplayName are optional labels for reporting.
	Name        string
	DisplayName string

	coefficient float64
	symbol      Symbol

	rng      Range
	rngReady bool
	rngSet   bool

	cells      []Cell
	cellsReady bool
	cellsGen   uint64
}

// NewMonomial returns coefficient × symbol.
func NewMonomial(coefficient float64, symbol Symbol) *Monomial {
	return &Monomial{coefficient: coefficient, symbol: symbol}
}

// Term returns coefficient × item.
func Term(coefficient float64, item *variable.Item) *Monomial {
	return NewMonomial(coefficient, SymbolOf(VariableOf(item)))
}

// TermOf returns coefficient × u.
func TermOf(coefficient float64, u Unit) *Monomial {
	return NewMonomial(coefficient, SymbolOf(u))
}

// Product returns coefficient × a × b, failing with ErrDegreeExceeded when
// either unit is above Linear.
func Product(coefficient float64, a, b Unit) (*Monomial, error) {
	s, err := ProductOf(a, b)
	if err != nil {
		return nil, err
	}

	return NewMonomial(coefficient, s), nil
}

// Coefficient returns the scalar factor.
func (m *Monomial) Coefficient() float64 { return m.coefficient }

// Symbol returns the symbolic factor.
func (m *Monomial) Symbol() Symbol { return m.symbol }

// Category returns the symbol category.
func (m *Monomial) Category() Category { return m.symbol.Category() }

// Discrete reports whether the monomial only takes integral values: a
// discrete symbol under an integral coefficient.
func (m *Monomial) Discrete() bool {
	return m.symbol.Discrete() && m.coefficient == math.Trunc(m.coefficient)
}

// Range returns coefficient ⊗ symbol range, or the settled range.
func (m *Monomial) Range() Range {
	if !m.rngReady {
		m.rng = m.symbol.Range().Scale(m.coefficient)
		m.rngReady = true
	}

	return m.rng
}

// RangeSettled reports whether the cached range was installed explicitly.
func (m *Monomial) RangeSettled() bool { return m.rngSet }

// SetRange installs r as the settled range.
func (m *Monomial) SetRange(r Range) {
	m.rng = r
	m.rngReady = true
	m.rngSet = true
}

// IntersectRange narrows the range to its intersection with r and settles it.
func (m *Monomial) IntersectRange(r Range) {
	m.SetRange(m.Range().Intersect(r))
}

// RangeLess narrows the range to values < v.
func (m *Monomial) RangeLess(v float64) {
	m.IntersectRange(Range{Lower: Bound{Value: math.Inf(-1), Interval: Open}, Upper: Bound{Value: v, Interval: Open}})
}

// RangeLessEqual narrows the range to values <= v.
func (m *Monomial) RangeLessEqual(v float64) {
	m.IntersectRange(Range{Lower: Bound{Value: math.Inf(-1), Interval: Open}, Upper: closedBound(v)})
}

// RangeGreater narrows the range to values > v.
func (m *Monomial) RangeGreater(v float64) {
	m.IntersectRange(Range{Lower: Bound{Value: v, Interval: Open}, Upper: Bound{Value: math.Inf(1), Interval: Open}})
}

// RangeGreaterEqual narrows the range to values >= v.
func (m *Monomial) RangeGreaterEqual(v float64) {
	m.IntersectRange(Range{Lower: closedBound(v), Upper: Bound{Value: math.Inf(1), Interval: Open}})
}

// Cells returns the symbol cells scaled by the coefficient. The slice is
// cached and shared between calls until the next effective Flush, or until
// a derived symbol underneath is flushed; callers must not modify it.
func (m *Monomial) Cells() ([]Cell, error) {
	gen := m.symbol.Generation()
	if m.cellsReady && m.cellsGen == gen {
		return m.cells, nil
	}
	cells, err := m.symbol.Cells()
	if err != nil {
		return nil, err
	}
	for i := range cells {
		cells[i] = cells[i].Scale(m.coefficient)
	}
	m.cells = cells
	m.cellsReady = true
	m.cellsGen = gen

	return m.cells, nil
}

// Flush drops stale caches. With force both caches are dropped, the settled
// range included. Otherwise the range is dropped unless settled, and the
// cells are dropped unless the symbol caches its own expansion and has not
// been flushed since they were computed.
func (m *Monomial) Flush(force bool) {
	if force || !m.rngSet {
		m.rng = Range{}
		m.rngReady = false
		m.rngSet = false
	}
	if force || !m.symbol.Cached() || m.cellsGen != m.symbol.Generation() {
		m.cells = nil
		m.cellsReady = false
	}
}

// Copy returns a monomial with the same coefficient, symbol and labels and
// empty caches.
func (m *Monomial) Copy() *Monomial {
	return &Monomial{Name: m.Name, DisplayName: m.DisplayName, coefficient: m.coefficient, symbol: m.symbol}
}

// Scale returns k × m.
func (m *Monomial) Scale(k float64) *Monomial {
	ret := m.Copy()
	ret.coefficient *= k

	return ret
}

// Divide returns m / k.
func (m *Monomial) Divide(k float64) *Monomial {
	ret := m.Copy()
	ret.coefficient /= k

	return ret
}

// Negate returns -m.
func (m *Monomial) Negate() *Monomial {
	return m.Scale(-1)
}

// Multiply returns m × other. Both monomials must be single units of Linear
// degree; a quadratic side fails with ErrDegreeExceeded.
func (m *Monomial) Multiply(other *Monomial) (*Monomial, error) {
	if m.Category() > Linear || other.Category() > Linear {
		return nil, fmt.Errorf("multiply %s by %s: %w", m, other, ErrDegreeExceeded)
	}
	ret, err := Product(m.coefficient*other.coefficient, m.symbol.first, other.symbol.first)
	if err != nil {
		return nil, fmt.Errorf("multiply %s by %s: %w", m, other, err)
	}

	return ret, nil
}

// MultiplyUnit returns m × u under the same degree rule as Multiply.
func (m *Monomial) MultiplyUnit(u Unit) (*Monomial, error) {
	if m.Category() > Linear || u.Category() > Linear {
		return nil, fmt.Errorf("multiply %s by %s: %w", m, u, ErrDegreeExceeded)
	}
	ret, err := Product(m.coefficient, m.symbol.first, u)
	if err != nil {
		return nil, fmt.Errorf("multiply %s by %s: %w", m, u, err)
	}

	return ret, nil
}

// Evaluate returns coefficient × symbol value.
func (m *Monomial) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	v, ok := m.symbol.Evaluate(tokens, zeroIfMissing)
	if !ok {
		return 0, false
	}

	return m.coefficient * v, true
}

// EvaluateResults returns coefficient × symbol value read from results.
func (m *Monomial) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	v, ok := m.symbol.EvaluateResults(results, tokens, zeroIfMissing)
	if !ok {
		return 0, false
	}

	return m.coefficient * v, true
}

// String renders "k * symbol".
func (m *Monomial) String() string {
	return formatFloat(m.coefficient) + " * " + m.symbol.String()
}

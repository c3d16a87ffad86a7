package expression

import (
	"fmt"

	"github.com/katalvlaran/lvopt/variable"
)

// SymbolOption configures an ExpressionSymbol.
type SymbolOption func(*ExpressionSymbol)

// WithDisplayName sets the display name of a derived symbol.
func WithDisplayName(name string) SymbolOption {
	return func(s *ExpressionSymbol) {
		s.displayName = name
	}
}

// WithSymbolRange replaces the computed range of a derived symbol with r.
func WithSymbolRange(r Range) SymbolOption {
	return func(s *ExpressionSymbol) {
		s.rng = r
		s.rngReady = true
		s.rngFixed = true
	}
}

// ExpressionSymbol is a named polynomial reused as a unit inside other
// monomials. It memoizes its expansion, so monomials built over it keep
// their cells across Flush(false) until the symbol itself is flushed.
//
// Terms added to the polynomial show up after the next Flush. Flushing a
// symbol the polynomial is built from is enough: the memo is checked
// against the generations underneath on every access.
type ExpressionSymbol struct {
	name        string
	displayName string
	category    Category
	polynomial  *Polynomial

	rng      Range
	rngReady bool
	rngFixed bool
	rngGen   uint64

	cells      []Cell
	cellsReady bool
	cellsGen   uint64

	flushes uint64 // bumped by every Flush
}

// NewLinearSymbol wraps a polynomial of degree at most one.
func NewLinearSymbol(name string, p *Polynomial, opts ...SymbolOption) (*ExpressionSymbol, error) {
	return newExpressionSymbol(name, p, Linear, opts)
}

// NewQuadraticSymbol wraps a polynomial of degree at most two.
func NewQuadraticSymbol(name string, p *Polynomial, opts ...SymbolOption) (*ExpressionSymbol, error) {
	return newExpressionSymbol(name, p, Quadratic, opts)
}

func newExpressionSymbol(name string, p *Polynomial, limit Category, opts []SymbolOption) (*ExpressionSymbol, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if p == nil {
		return nil, fmt.Errorf("symbol %q: %w", name, ErrNilPolynomial)
	}
	if c := p.Category(); c > limit {
		return nil, fmt.Errorf("symbol %q is %s, limit %s: %w", name, c, limit, ErrDegreeExceeded)
	}
	s := &ExpressionSymbol{name: name, displayName: name, category: limit, polynomial: p}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Name returns the symbol name.
func (s *ExpressionSymbol) Name() string { return s.name }

// DisplayName returns the display name, the name unless overridden.
func (s *ExpressionSymbol) DisplayName() string { return s.displayName }

// Category returns the declared category (Linear or Quadratic).
func (s *ExpressionSymbol) Category() Category { return s.category }

// Polynomial returns the wrapped polynomial.
func (s *ExpressionSymbol) Polynomial() *Polynomial { return s.polynomial }

// Range returns the polynomial range, or the range given at construction.
func (s *ExpressionSymbol) Range() Range {
	if s.rngFixed {
		return s.rng
	}
	gen := s.polynomial.generation()
	if !s.rngReady || s.rngGen != gen {
		s.rng = s.polynomial.Range()
		s.rngReady = true
		s.rngGen = gen
	}

	return s.rng
}

// Discrete reports whether the polynomial only takes integral values.
func (s *ExpressionSymbol) Discrete() bool { return s.polynomial.Discrete() }

// Cells returns the aggregated polynomial cells, computed once.
func (s *ExpressionSymbol) Cells() ([]Cell, error) {
	gen := s.polynomial.generation()
	if s.cellsReady && s.cellsGen == gen {
		return s.cells, nil
	}
	cells, err := s.polynomial.Cells()
	if err != nil {
		return nil, fmt.Errorf("symbol %q: %w", s.name, err)
	}
	s.cells = cells
	s.cellsReady = true
	s.cellsGen = gen

	return s.cells, nil
}

// Cached is always true: the symbol keeps its cells until Flush.
func (s *ExpressionSymbol) Cached() bool { return true }

// Generation counts the flushes of the symbol and of every symbol its
// polynomial is built from.
func (s *ExpressionSymbol) Generation() uint64 {
	return s.flushes + s.polynomial.generation()
}

// Flush drops the memoized cells and the computed range, then flushes the
// polynomial. A range given with WithSymbolRange is kept.
func (s *ExpressionSymbol) Flush(force bool) {
	s.flushes++
	s.cells = nil
	s.cellsReady = false
	if !s.rngFixed {
		s.rngReady = false
	}
	s.polynomial.Flush(force)
}

// Evaluate evaluates the polynomial.
func (s *ExpressionSymbol) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return s.polynomial.Evaluate(tokens, zeroIfMissing)
}

// EvaluateResults evaluates the polynomial against results.
func (s *ExpressionSymbol) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return s.polynomial.EvaluateResults(results, tokens, zeroIfMissing)
}

// String returns "name = polynomial".
func (s *ExpressionSymbol) String() string {
	return s.name + " = " + s.polynomial.String()
}

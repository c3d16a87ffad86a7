package expression

import (
	"fmt"

	"github.com/katalvlaran/lvopt/variable"
)

// Symbol is either a single unit or the product of two units. A product is
// always Quadratic; nesting stops at unit × unit.
//
// Product slots are ordered by unit kind (variables first, then linear, then
// quadratic symbols). Units of the same kind keep the order they were given
// in, and Equal compares the slots positionally, so x*y and y*x are
// distinct symbols even though they expand to the same cells.
type Symbol struct {
	first  Unit
	second Unit
	paired bool
}

// SymbolOf returns the single-unit symbol of u.
func SymbolOf(u Unit) Symbol {
	return Symbol{first: u}
}

// ProductOf returns the symbol a*b. Both units must be at most Linear,
// otherwise the product fails with ErrDegreeExceeded.
func ProductOf(a, b Unit) (Symbol, error) {
	if !a.Valid() || !b.Valid() {
		return Symbol{}, fmt.Errorf("product of %s and %s: %w", a, b, ErrNilSymbol)
	}
	if a.Category() > Linear || b.Category() > Linear {
		return Symbol{}, fmt.Errorf("product of %s (%s) and %s (%s): %w",
			a, a.Category(), b, b.Category(), ErrDegreeExceeded)
	}
	if b.kind < a.kind {
		a, b = b, a
	}

	return Symbol{first: a, second: b, paired: true}, nil
}

// Pure reports whether the symbol is a single unit.
func (s Symbol) Pure() bool { return !s.paired }

// Units returns the slots of the symbol; second is the zero Unit for a pure
// symbol.
func (s Symbol) Units() (first, second Unit) { return s.first, s.second }

// Name returns the unit name, or "a * b" for a product.
func (s Symbol) Name() string {
	if !s.paired {
		return s.first.Name()
	}

	return s.first.Name() + " * " + s.second.Name()
}

// DisplayName mirrors Name over display names.
func (s Symbol) DisplayName() string {
	if !s.paired {
		return s.first.DisplayName()
	}

	return s.first.DisplayName() + " * " + s.second.DisplayName()
}

// Category is the unit category, or Quadratic for a product.
func (s Symbol) Category() Category {
	if !s.paired {
		return s.first.Category()
	}

	return Quadratic
}

// Range is the unit range, or the interval product of both slots.
func (s Symbol) Range() Range {
	if !s.paired {
		return s.first.Range()
	}

	return s.first.Range().Mul(s.second.Range())
}

// Discrete reports whether every slot is discrete.
func (s Symbol) Discrete() bool {
	if !s.paired {
		return s.first.Discrete()
	}

	return s.first.Discrete() && s.second.Discrete()
}

// Cells expands the symbol. For a product this is the full cross product of
// both slots' cells.
func (s Symbol) Cells() ([]Cell, error) {
	lhs, err := s.first.Cells()
	if err != nil {
		return nil, err
	}
	if !s.paired {
		return lhs, nil
	}
	rhs, err := s.second.Cells()
	if err != nil {
		return nil, err
	}

	out := make([]Cell, 0, len(lhs)*len(rhs))
	for _, l := range lhs {
		for _, r := range rhs {
			c, err := l.Multiply(r)
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", s.Name(), err)
			}
			out = append(out, c)
		}
	}

	return out, nil
}

// Cached reports whether any slot memoizes its own expansion.
func (s Symbol) Cached() bool {
	if !s.paired {
		return s.first.Cached()
	}

	return s.first.Cached() || s.second.Cached()
}

// Generation sums the generations of both slots. Each term only grows, so
// the sum changes whenever either slot does.
func (s Symbol) Generation() uint64 {
	if !s.paired {
		return s.first.Generation()
	}

	return s.first.Generation() + s.second.Generation()
}

// Evaluate resolves the symbol against token results.
func (s Symbol) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	v1, ok := s.first.Evaluate(tokens, zeroIfMissing)
	if !ok || !s.paired {
		return v1, ok
	}
	v2, ok := s.second.Evaluate(tokens, zeroIfMissing)
	if !ok {
		return 0, false
	}

	return v1 * v2, true
}

// EvaluateResults resolves the symbol positionally against results.
func (s Symbol) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	v1, ok := s.first.EvaluateResults(results, tokens, zeroIfMissing)
	if !ok || !s.paired {
		return v1, ok
	}
	v2, ok := s.second.EvaluateResults(results, tokens, zeroIfMissing)
	if !ok {
		return 0, false
	}

	return v1 * v2, true
}

// Equal compares both slots positionally.
func (s Symbol) Equal(other Symbol) bool {
	if s.paired != other.paired {
		return false
	}
	if !s.first.Equal(other.first) {
		return false
	}

	return !s.paired || s.second.Equal(other.second)
}

// String renders the symbol with derived units parenthesised.
func (s Symbol) String() string {
	if !s.paired {
		return s.first.String()
	}

	return s.first.String() + " * " + s.second.String()
}

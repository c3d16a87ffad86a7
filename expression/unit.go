package expression

import (
	"fmt"

	"github.com/katalvlaran/lvopt/variable"
)

// DerivedSymbol is a named expression registered with a model and reused
// as a unit inside other monomials. Implementations must be comparable
// (pointer receivers in practice): units compare derived symbols by identity.
type DerivedSymbol interface {
	Name() string
	DisplayName() string
	Category() Category
	Range() Range
	Discrete() bool
	// Cells returns the expansion of the symbol. Callers must not modify
	// the returned slice.
	Cells() ([]Cell, error)
	// Cached reports whether the symbol memoizes its own cells, so a
	// monomial over it may keep its expansion across flushes.
	Cached() bool
	// Generation changes whenever the memoized cells of the symbol, or of
	// any symbol it is built from, are dropped. A monomial keeps its
	// expansion only while the generation it was computed at still holds.
	Generation() uint64
	Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool)
	EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool)
}

// UnitKind tags the three cases of Unit.
type UnitKind int

const (
	// VariableUnit wraps a raw decision variable.
	VariableUnit UnitKind = iota + 1
	// LinearUnit wraps a linear derived symbol.
	LinearUnit
	// QuadraticUnit wraps a quadratic derived symbol.
	QuadraticUnit
)

// String returns the kind name.
func (k UnitKind) String() string {
	switch k {
	case VariableUnit:
		return "variable"
	case LinearUnit:
		return "linear-symbol"
	case QuadraticUnit:
		return "quadratic-symbol"
	default:
		return "invalid"
	}
}

// Unit is the tagged union {variable, linear derived, quadratic derived}
// a Symbol is built from. The zero value is invalid.
type Unit struct {
	kind    UnitKind
	item    *variable.Item
	derived DerivedSymbol
}

// VariableOf wraps a decision variable. It panics when item is nil.
func VariableOf(item *variable.Item) Unit {
	if item == nil {
		panic("expression: VariableOf nil item")
	}

	return Unit{kind: VariableUnit, item: item}
}

// LinearDerived wraps a linear derived symbol. It fails with
// ErrDegreeExceeded when the symbol is above Linear.
func LinearDerived(s DerivedSymbol) (Unit, error) {
	if s == nil {
		return Unit{}, ErrNilSymbol
	}
	if s.Category() > Linear {
		return Unit{}, fmt.Errorf("linear symbol %q is %s: %w", s.Name(), s.Category(), ErrDegreeExceeded)
	}

	return Unit{kind: LinearUnit, derived: s}, nil
}

// QuadraticDerived wraps a quadratic derived symbol. It fails with
// ErrDegreeExceeded when the symbol is above Quadratic.
func QuadraticDerived(s DerivedSymbol) (Unit, error) {
	if s == nil {
		return Unit{}, ErrNilSymbol
	}
	if s.Category() > Quadratic {
		return Unit{}, fmt.Errorf("quadratic symbol %q is %s: %w", s.Name(), s.Category(), ErrDegreeExceeded)
	}

	return Unit{kind: QuadraticUnit, derived: s}, nil
}

// Kind returns the union tag.
func (u Unit) Kind() UnitKind { return u.kind }

// Valid reports whether u was built by one of the constructors.
func (u Unit) Valid() bool { return u.kind >= VariableUnit && u.kind <= QuadraticUnit }

// Item returns the wrapped variable for VariableUnit.
func (u Unit) Item() (*variable.Item, bool) { return u.item, u.kind == VariableUnit }

// Derived returns the wrapped symbol for LinearUnit and QuadraticUnit.
func (u Unit) Derived() (DerivedSymbol, bool) {
	return u.derived, u.kind == LinearUnit || u.kind == QuadraticUnit
}

// Name returns the variable or symbol name.
func (u Unit) Name() string {
	switch u.kind {
	case VariableUnit:
		return u.item.Name()
	case LinearUnit, QuadraticUnit:
		return u.derived.Name()
	default:
		return ""
	}
}

// DisplayName returns the display name; variables display their name.
func (u Unit) DisplayName() string {
	switch u.kind {
	case VariableUnit:
		return u.item.Name()
	case LinearUnit, QuadraticUnit:
		return u.derived.DisplayName()
	default:
		return ""
	}
}

// Category is Linear for variables and the symbol's own category otherwise.
func (u Unit) Category() Category {
	switch u.kind {
	case LinearUnit, QuadraticUnit:
		return u.derived.Category()
	default:
		return Linear
	}
}

// Range returns the variable bounds or the symbol range.
func (u Unit) Range() Range {
	switch u.kind {
	case VariableUnit:
		return NewRange(u.item.LowerBound(), u.item.UpperBound())
	case LinearUnit, QuadraticUnit:
		return u.derived.Range()
	default:
		return Point(0)
	}
}

// Discrete reports whether the unit only takes integral values.
func (u Unit) Discrete() bool {
	switch u.kind {
	case VariableUnit:
		return u.item.Discrete()
	case LinearUnit, QuadraticUnit:
		return u.derived.Discrete()
	default:
		return false
	}
}

// Cells returns a fresh expansion: [1*x] for a variable, a copy of the
// symbol's cells otherwise.
func (u Unit) Cells() ([]Cell, error) {
	switch u.kind {
	case VariableUnit:
		return []Cell{LinearTerm(1, u.item)}, nil
	case LinearUnit, QuadraticUnit:
		cells, err := u.derived.Cells()
		if err != nil {
			return nil, fmt.Errorf("cells of %q: %w", u.derived.Name(), err)
		}
		out := make([]Cell, len(cells))
		copy(out, cells)

		return out, nil
	default:
		return nil, nil
	}
}

// Cached reports whether the unit memoizes its own expansion. Variables do
// not; derived symbols answer for themselves.
func (u Unit) Cached() bool {
	switch u.kind {
	case LinearUnit, QuadraticUnit:
		return u.derived.Cached()
	default:
		return false
	}
}

// Generation is 0 for variables and the symbol's generation otherwise.
func (u Unit) Generation() uint64 {
	switch u.kind {
	case LinearUnit, QuadraticUnit:
		return u.derived.Generation()
	default:
		return 0
	}
}

// Evaluate resolves the unit against token results.
func (u Unit) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	switch u.kind {
	case VariableUnit:
		if v, ok := resultOf(tokens, u.item); ok {
			return v, true
		}

		return missing(zeroIfMissing)
	case LinearUnit, QuadraticUnit:
		return u.derived.Evaluate(tokens, zeroIfMissing)
	default:
		return missing(zeroIfMissing)
	}
}

// EvaluateResults resolves the unit positionally against results.
func (u Unit) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	switch u.kind {
	case VariableUnit:
		if v, ok := resultAt(results, tokens, u.item); ok {
			return v, true
		}

		return missing(zeroIfMissing)
	case LinearUnit, QuadraticUnit:
		return u.derived.EvaluateResults(results, tokens, zeroIfMissing)
	default:
		return missing(zeroIfMissing)
	}
}

// Equal compares kind and the wrapped reference: variables by key, derived
// symbols by identity.
func (u Unit) Equal(other Unit) bool {
	if u.kind != other.kind {
		return false
	}
	switch u.kind {
	case VariableUnit:
		return u.item.Equal(other.item)
	case LinearUnit, QuadraticUnit:
		return u.derived == other.derived
	default:
		return true
	}
}

// String returns the name, parenthesised for derived symbols.
func (u Unit) String() string {
	switch u.kind {
	case VariableUnit:
		return u.item.Name()
	case LinearUnit, QuadraticUnit:
		return "(" + u.derived.Name() + ")"
	default:
		return "<invalid>"
	}
}

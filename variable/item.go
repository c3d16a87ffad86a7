package variable

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Key identifies a variable: the vector identifier and the index inside it.
// Keys are comparable and usable as map keys.
type Key struct {
	Identifier uint64
	Index      int
}

// Compare orders keys by Identifier, then by Index.
// It returns -1, 0 or +1.
func (k Key) Compare(other Key) int {
	switch {
	case k.Identifier < other.Identifier:
		return -1
	case k.Identifier > other.Identifier:
		return 1
	case k.Index < other.Index:
		return -1
	case k.Index > other.Index:
		return 1
	default:
		return 0
	}
}

// Less reports whether k orders strictly before other.
func (k Key) Less(other Key) bool { return k.Compare(other) < 0 }

// String renders the key as "identifier:index".
func (k Key) String() string { return fmt.Sprintf("%d:%d", k.Identifier, k.Index) }

// Item is one decision variable.
//
// Identity is the Key: two items with the same key are the same variable.
// Bounds start at the type's widest bounds and may be tightened with SetBounds.
type Item struct {
	name  string
	typ   Type
	key   Key
	lower float64
	upper float64
}

// Name returns the variable name (vector elements are named "x_i").
func (it *Item) Name() string { return it.name }

// Type returns the variable domain.
func (it *Item) Type() Type { return it.typ }

// Key returns the identity of the variable.
func (it *Item) Key() Key { return it.key }

// Discrete reports whether the variable only takes integral values.
func (it *Item) Discrete() bool { return it.typ.Discrete() }

// LowerBound returns the current lower bound (may be -Inf).
func (it *Item) LowerBound() float64 { return it.lower }

// UpperBound returns the current upper bound (may be +Inf).
func (it *Item) UpperBound() float64 { return it.upper }

// SetBounds tightens the variable bounds.
// The new bounds must be ordered, not NaN, and inside the type's domain.
func (it *Item) SetBounds(lower, upper float64) error {
	// 1. Reject NaN and inverted intervals
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return fmt.Errorf("%w: [%v, %v]", ErrBadBounds, lower, upper)
	}
	// 2. Stay inside the widest domain of the type
	lo, hi := it.typ.Bounds()
	if lower < lo || upper > hi {
		return fmt.Errorf("%w: [%v, %v] outside %s domain [%v, %v]", ErrBadBounds, lower, upper, it.typ, lo, hi)
	}
	it.lower, it.upper = lower, upper

	return nil
}

// Equal reports whether both items denote the same variable.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}

	return it.key == other.key
}

// String returns the variable name.
func (it *Item) String() string { return it.name }

// Factory hands out vector identifiers. The zero value is ready to use and
// is safe for concurrent use.
type Factory struct {
	next atomic.Uint64
}

// NewFactory returns a Factory whose first identifier is 0.
func NewFactory() *Factory { return &Factory{} }

func (f *Factory) gen() uint64 { return f.next.Add(1) - 1 }

// New creates a single variable with its own identifier.
func (f *Factory) New(name string, typ Type) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	lo, hi := typ.Bounds()

	return &Item{name: name, typ: typ, key: Key{Identifier: f.gen()}, lower: lo, upper: hi}, nil
}

// NewVector creates n variables sharing one identifier, indexed 0..n-1 and
// named "name_i".
func (f *Factory) NewVector(name string, typ Type, n int) ([]*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if n <= 0 {
		return nil, ErrBadLength
	}
	id := f.gen()
	lo, hi := typ.Bounds()
	items := make([]*Item, n)
	for i := range items {
		items[i] = &Item{
			name:  fmt.Sprintf("%s_%d", name, i),
			typ:   typ,
			key:   Key{Identifier: id, Index: i},
			lower: lo,
			upper: hi,
		}
	}

	return items, nil
}

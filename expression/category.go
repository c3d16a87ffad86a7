package expression

// Category is the degree class of a term, totally ordered
// Linear < Quadratic < Standard < Nonlinear.
type Category int

const (
	// Linear terms have degree at most one.
	Linear Category = iota
	// Quadratic terms have degree exactly two.
	Quadratic
	// Standard covers expressions a solver accepts natively but that are not
	// polynomial of degree two (e.g. conic forms).
	Standard
	// Nonlinear is everything else.
	Nonlinear
)

// Rank returns the position of the category in the lattice.
func (c Category) Rank() int { return int(c) }

// Combine returns the higher of c and other. It is commutative, associative
// and idempotent, with Linear as identity.
func (c Category) Combine(other Category) Category {
	if other.Rank() > c.Rank() {
		return other
	}

	return c
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Standard:
		return "standard"
	case Nonlinear:
		return "nonlinear"
	default:
		return "unknown"
	}
}

// CombineAll folds Combine over categories, starting from Linear.
func CombineAll(categories ...Category) Category {
	ret := Linear
	for _, c := range categories {
		ret = ret.Combine(c)
	}

	return ret
}

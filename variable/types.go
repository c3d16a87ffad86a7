package variable

import (
	"errors"
	"math"
)

// Sentinel errors for variable and token operations.
var (
	// ErrNilItem indicates a nil *Item was passed where a variable is required.
	ErrNilItem = errors.New("variable: item is nil")

	// ErrEmptyName indicates a variable was created with an empty name.
	ErrEmptyName = errors.New("variable: name is empty")

	// ErrBadLength indicates a vector was requested with a non-positive length.
	ErrBadLength = errors.New("variable: vector length must be > 0")

	// ErrBadBounds indicates lower > upper, NaN bounds, or bounds outside the
	// domain of the variable type.
	ErrBadBounds = errors.New("variable: invalid bounds")

	// ErrDuplicateToken indicates the item is already registered in the token list.
	ErrDuplicateToken = errors.New("variable: token already registered")

	// ErrTokenNotFound indicates the item is not registered in the token list.
	ErrTokenNotFound = errors.New("variable: token not found")

	// ErrResultLength indicates a results vector whose length differs from
	// the number of registered tokens.
	ErrResultLength = errors.New("variable: results length mismatch")
)

// Type is the domain of a decision variable.
type Type int

const (
	// Binary takes values in {0, 1}.
	Binary Type = iota
	// Ternary takes values in {0, 1, 2}.
	Ternary
	// BalancedTernary takes values in {-1, 0, 1}.
	BalancedTernary
	// Percentage takes real values in [0, 1].
	Percentage
	// Integer takes any integer value.
	Integer
	// UInteger takes non-negative integer values.
	UInteger
	// Continuous takes any real value.
	Continuous
	// UContinuous takes non-negative real values.
	UContinuous
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Binary:
		return "binary"
	case Ternary:
		return "ternary"
	case BalancedTernary:
		return "balanced-ternary"
	case Percentage:
		return "percentage"
	case Integer:
		return "integer"
	case UInteger:
		return "uinteger"
	case Continuous:
		return "continuous"
	case UContinuous:
		return "ucontinuous"
	default:
		return "unknown"
	}
}

// Discrete reports whether the type only admits integral values.
func (t Type) Discrete() bool {
	switch t {
	case Binary, Ternary, BalancedTernary, Integer, UInteger:
		return true
	default:
		return false
	}
}

// Bounds returns the widest bounds the type admits.
// Unbounded sides are reported as ±Inf.
func (t Type) Bounds() (lower, upper float64) {
	switch t {
	case Binary, Percentage:
		return 0, 1
	case Ternary:
		return 0, 2
	case BalancedTernary:
		return -1, 1
	case UInteger, UContinuous:
		return 0, math.Inf(1)
	default: // Integer, Continuous
		return math.Inf(-1), math.Inf(1)
	}
}

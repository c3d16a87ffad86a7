// Package shadowprice maps dual values of a solved model back onto
// domain-level constraint keys.
//
// A Map is rebuilt once per optimization iteration. Pipeline stages that
// added a constraint group call RefreshGroup after the solve: the rows of
// the group are walked in lock-step with the domain keys that produced
// them, and every non-zero dual is stored under its key. Pricing code then
// calls Extract, which sums the extractors registered by every stage.
//
// Errors:
//
//	ErrUnknownConstraintGroup - the model has no rows for the group.
//	ErrDualOutOfRange         - the dual vector is shorter than the group window.
//	ErrNilModel               - refresh was handed a nil model.
package shadowprice

import "errors"

var (
	// ErrUnknownConstraintGroup indicates that refresh could not locate the
	// window of a constraint group.
	ErrUnknownConstraintGroup = errors.New("shadowprice: unknown constraint group")

	// ErrDualOutOfRange indicates a dual vector that does not cover the window.
	ErrDualOutOfRange = errors.New("shadowprice: dual index out of range")

	// ErrNilModel indicates a nil model was passed to refresh.
	ErrNilModel = errors.New("shadowprice: model is nil")
)

// GroupLocator is the part of a solved model refresh needs.
// *model.Model implements it.
type GroupLocator interface {
	IndicesOfConstraintGroup(name string) (start, end int, ok bool)
}

// Price is one stored dual value.
type Price[K comparable] struct {
	Key   K
	Value float64
}

// Extractor prices a pricing context against a map. It must not modify the map.
type Extractor[K comparable, A any] func(prices *Map[K, A], args A) float64

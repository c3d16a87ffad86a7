// SPDX-License-Identifier: MIT
// Package expression: sentinel error set.
// Every failure of the cell, symbol, and monomial algebra is reported with one
// of these sentinels (possibly wrapped with context via fmt.Errorf("...: %w")).
// They describe model-construction mistakes, not transient conditions, so
// callers should surface them rather than retry.

package expression

import "errors"

var (
	// ErrMismatchedVariable is returned when two term cells over different
	// variables (or different variable pairs) are added or subtracted.
	ErrMismatchedVariable = errors.New("expression: mismatched variable")

	// ErrIncompatibleCellKinds is returned when a constant cell and a term cell
	// are added or subtracted directly. Constants are aggregated one level up,
	// in the polynomial.
	ErrIncompatibleCellKinds = errors.New("expression: incompatible cell kinds")

	// ErrDegreeExceeded is returned by any operation that would produce a term
	// of degree greater than two.
	ErrDegreeExceeded = errors.New("expression: degree exceeded")

	// ErrNilSymbol indicates a nil derived symbol was wrapped into a unit.
	ErrNilSymbol = errors.New("expression: symbol is nil")

	// ErrNilPolynomial indicates a nil polynomial was given to a derived symbol.
	ErrNilPolynomial = errors.New("expression: polynomial is nil")

	// ErrEmptyName indicates a derived symbol was created without a name.
	ErrEmptyName = errors.New("expression: name is empty")
)

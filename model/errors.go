// SPDX-License-Identifier: MIT
// Package model: sentinel error set.
// All model-construction failures wrap one of these with fmt.Errorf("...: %w").
// Expression-level failures (degree, mismatched cells) keep their own
// sentinels from package expression and are wrapped, not replaced.

package model

import "errors"

var (
	// ErrEmptyName indicates a constraint, objective or symbol without a name.
	ErrEmptyName = errors.New("model: name is empty")

	// ErrNilPolynomial indicates a nil polynomial in an inequality or objective.
	ErrNilPolynomial = errors.New("model: polynomial is nil")

	// ErrUnknownVariable is returned in manual-token mode when an expression
	// references a variable that was not added with AddVariable.
	ErrUnknownVariable = errors.New("model: unknown variable")

	// ErrDuplicateVariable is returned when a variable is added twice.
	ErrDuplicateVariable = errors.New("model: duplicate variable")

	// ErrDuplicateSymbol is returned when two derived symbols share a name.
	ErrDuplicateSymbol = errors.New("model: duplicate symbol")

	// ErrCategoryMismatch is returned when an expression exceeds the model's
	// category limit, or when a linear export meets a quadratic term.
	ErrCategoryMismatch = errors.New("model: category mismatch")

	// ErrUnknownConstraintGroup is returned when a constraint group name has
	// no rows in the model.
	ErrUnknownConstraintGroup = errors.New("model: unknown constraint group")

	// ErrNonContiguousGroup is returned when a constraint joins a group that
	// was closed by a constraint of another group.
	ErrNonContiguousGroup = errors.New("model: constraint group is not contiguous")

	// ErrInvalidOption indicates an option value out of its domain.
	ErrInvalidOption = errors.New("model: invalid option")
)

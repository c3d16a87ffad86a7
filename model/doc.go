// Package model is the boundary between expression building and solvers.
//
// A Model registers decision variables (in a variable.TokenList), derived
// symbols, named constraints and sub-objectives. Constraints may be placed
// in named groups; the rows of a group are contiguous, and
// IndicesOfConstraintGroup returns their half-open window. Shadow-price
// refresh uses that window to map dual values back onto domain entities.
//
// Triad exports a linear model in row-wise sparse form for LP backends.
//
// Configuration uses functional options (WithCategory, WithDirection,
// WithManualTokens, WithLogger). Logging goes through zap and defaults to a
// no-op logger.
package model

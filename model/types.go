package model

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvopt/expression"
)

// Sign is the relation of an inequality.
type Sign int

const (
	// LessEqual is lhs <= rhs.
	LessEqual Sign = iota
	// GreaterEqual is lhs >= rhs.
	GreaterEqual
	// Equal is lhs = rhs.
	Equal
)

// String returns "<=", ">=" or "=".
func (s Sign) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Direction is the optimization direction of the objective.
type Direction int

const (
	// Minimize the objective.
	Minimize Direction = iota
	// Maximize the objective.
	Maximize
)

// String returns "min" or "max".
func (d Direction) String() string {
	if d == Maximize {
		return "max"
	}

	return "min"
}

// Option configures a Model.
type Option func(*Options)

// Options holds Model configuration.
type Options struct {
	// Name labels the model in logs and exports.
	Name string

	// Category is the highest term degree the model accepts.
	// Only Linear and Quadratic are valid. Default Linear.
	Category expression.Category

	// Direction of the combined objective. Default Minimize.
	Direction Direction

	// ManualTokens, when set, requires every variable to be added with
	// AddVariable before use. Otherwise variables are registered on first use.
	ManualTokens bool

	// Logger receives debug records for every build step. Default no-op.
	Logger *zap.Logger
}

// DefaultOptions returns Options with a linear, minimizing, auto-registering
// model and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Name:      "model",
		Category:  expression.Linear,
		Direction: Minimize,
		Logger:    zap.NewNop(),
	}
}

// WithName labels the model.
func WithName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Name = name
		}
	}
}

// WithCategory sets the category limit.
func WithCategory(c expression.Category) Option {
	return func(o *Options) {
		o.Category = c
	}
}

// WithDirection sets the objective direction.
func WithDirection(d Direction) Option {
	return func(o *Options) {
		o.Direction = d
	}
}

// WithManualTokens disables automatic variable registration.
func WithManualTokens() Option {
	return func(o *Options) {
		o.ManualTokens = true
	}
}

// WithLogger installs a logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// ConstraintOption configures a single AddConstraint call.
type ConstraintOption func(*constraintOptions)

type constraintOptions struct {
	group string
}

// WithGroup places the constraint in a named group. Rows of one group must
// be added back to back.
func WithGroup(name string) ConstraintOption {
	return func(o *constraintOptions) {
		o.group = name
	}
}

package solver

import "errors"

var (
	// ErrInfeasible indicates the model has no feasible point.
	ErrInfeasible = errors.New("solver: model is infeasible")

	// ErrUnbounded indicates the objective is unbounded in the model direction.
	ErrUnbounded = errors.New("solver: model is unbounded")

	// ErrUnsupportedCategory indicates a model above what the backend solves.
	ErrUnsupportedCategory = errors.New("solver: unsupported model category")

	// ErrNilModel indicates a nil model was passed to Solve.
	ErrNilModel = errors.New("solver: model is nil")

	// ErrNumerical indicates the backend could not factor or pivot the
	// problem, e.g. near-dependent equality rows it failed to detect.
	ErrNumerical = errors.New("solver: numerical failure")

	// ErrResultShape indicates a result that does not match the model.
	ErrResultShape = errors.New("solver: result does not match model")
)

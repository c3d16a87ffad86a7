// Package solver defines the boundary between lvopt models and
// mathematical-programming backends.
//
// A LinearSolver consumes a built *model.Model and returns the primal values
// (in token order) and one dual value per constraint row (in row order).
// Dual values are sensitivities of the optimal objective to the row's right
// hand side, in the model's own direction; shadow-price refresh reads them
// positionally through model.IndicesOfConstraintGroup.
package solver

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvopt/model"
)

// LinearSolver solves the linear relaxation of a model.
type LinearSolver interface {
	Solve(ctx context.Context, m *model.Model) (*Result, error)
}

// Result is the solution of a model.
type Result struct {
	// Objective is the optimal objective value, constant included.
	Objective float64
	// Values holds one primal value per token, in token order.
	Values []float64
	// Duals holds one dual value per constraint row, in row order.
	Duals []float64
}

// Apply writes the primal values into the model's token list so that
// expressions over the model can be evaluated.
func (r *Result) Apply(m *model.Model) error {
	if m == nil {
		return ErrNilModel
	}
	if len(r.Duals) != m.Len() {
		return fmt.Errorf("%w: %d duals for %d rows", ErrResultShape, len(r.Duals), m.Len())
	}
	if err := m.Tokens().SetResults(r.Values); err != nil {
		return fmt.Errorf("%w: %w", ErrResultShape, err)
	}

	return nil
}

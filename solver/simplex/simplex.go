// Package simplex is a reference LP backend for lvopt built on gonum's
// simplex implementation.
//
// The model is exported with model.Triad and rewritten in general form
//
//	minimize cᵀx  subject to  Gx <= h, Ax = b
//
// where G collects the <= rows, the negated >= rows and the finite variable
// bounds. Equality rows that are linear combinations of earlier ones are
// dropped before solving and report a zero dual; a dependent row whose
// right-hand side disagrees makes the model infeasible. The primal is solved
// with lp.Simplex; row duals are recovered by solving the dual of the
// standard-form problem. Integrality is relaxed.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/solver"
)

// Option configures a Solver.
type Option func(*Options)

// Options holds Solver configuration.
type Options struct {
	// Tolerance passed to lp.Simplex and used for trivial-row feasibility.
	Tolerance float64
	// Logger receives one debug record per phase. Default no-op.
	Logger *zap.Logger
}

// DefaultOptions returns a tolerance of 1e-10 and a no-op logger.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-10, Logger: zap.NewNop()}
}

// WithTolerance sets the simplex tolerance; non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
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

// Solver implements solver.LinearSolver. It holds no state between calls
// and is safe for concurrent use.
type Solver struct {
	opts Options
}

var _ solver.LinearSolver = (*Solver)(nil)

// New returns a Solver.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{opts: o}
}

// dependenceTol is the relative residual below which an equality row is
// taken as a combination of the rows kept before it.
const dependenceTol = 1e-9

// rowRef locates a model row in the general form.
type rowRef struct {
	equality bool
	index    int
	sign     float64 // +1, or -1 for negated >= rows
	omitted  bool    // no entries or a dependent equality; not passed to the LP
}

// generalForm is the LP handed to lp.Convert.
type generalForm struct {
	columns []int       // model column of each LP column
	c       []float64   // objective, negated when maximizing
	g       [][]float64 // inequality rows, then bound rows
	h       []float64   // right-hand sides of g
	a       [][]float64 // independent equality rows
	b       []float64   // right-hand sides of a
	rows    []rowRef    // where each model row ended up
}

// Solve implements solver.LinearSolver.
//
// Steps:
//  1. Export the triad and rewrite it in general form.
//  2. Solve the primal with lp.Simplex.
//  3. Solve the dual of the standard form and map it back to model rows.
//  4. Report the objective in the model direction.
//
// Complexity: two simplex runs. For n active columns, g inequality and
// bound rows and e equality rows the primal standard form is (g+e)×(2n+g),
// and each pivot solves a dense basis system.
func (s *Solver) Solve(ctx context.Context, m *model.Model) (*solver.Result, error) {
	if m == nil {
		return nil, solver.ErrNilModel
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Category() > expression.Linear {
		return nil, fmt.Errorf("%w: %s", solver.ErrUnsupportedCategory, m.Category())
	}
	log := s.opts.Logger.With(zap.String("model", m.Name()))

	// 1. Export and rewrite in general form
	tr, err := m.Triad()
	if err != nil {
		if errors.Is(err, model.ErrCategoryMismatch) {
			return nil, fmt.Errorf("%w: %w", solver.ErrUnsupportedCategory, err)
		}

		return nil, err
	}
	gf, err := s.build(tr)
	if err != nil {
		return nil, err
	}
	log.Debug("general form built",
		zap.Int("columns", len(gf.columns)),
		zap.Int("inequalities", len(gf.h)),
		zap.Int("equalities", len(gf.b)))

	res := &solver.Result{
		Values: make([]float64, len(tr.Variables)),
		Duals:  make([]float64, len(tr.Rows)),
	}
	if len(gf.columns) == 0 {
		res.Objective = tr.ObjectiveConstant

		return res, nil
	}

	// 2. Primal
	cStd, aStd, bStd := lp.Convert(gf.c, denseOrNil(gf.g, len(gf.columns)), gf.h, denseOrNil(gf.a, len(gf.columns)), gf.b)
	optF, xt, err := lp.Simplex(cStd, aStd, bStd, s.opts.Tolerance, nil)
	if err != nil {
		return nil, fmt.Errorf("primal: %w", mapError(err))
	}
	n := len(gf.columns)
	for j, col := range gf.columns {
		res.Values[col] = xt[j] - xt[n+j]
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Dual of the standard form: max bᵀy s.t. Aᵀy <= c
	mStd := len(bStd)
	negB := make([]float64, mStd)
	for i, v := range bStd {
		negB[i] = -v
	}
	dc, dA, db := lp.Convert(negB, aStd.T(), cStd, nil, nil)
	_, yt, err := lp.Simplex(dc, dA, db, s.opts.Tolerance, nil)
	if err != nil {
		return nil, fmt.Errorf("dual: %w", mapError(err))
	}
	nIneq := len(gf.h)
	for i, ref := range gf.rows {
		if ref.omitted {
			continue
		}
		k := ref.index
		if ref.equality {
			k += nIneq
		}
		y := (yt[k] - yt[mStd+k]) * ref.sign
		if tr.Direction == model.Maximize {
			y = -y
		}
		res.Duals[i] = y
	}

	// 4. Objective in the model direction
	res.Objective = optF
	if tr.Direction == model.Maximize {
		res.Objective = -optF
	}
	res.Objective += tr.ObjectiveConstant
	log.Debug("solved", zap.Float64("objective", res.Objective))

	return res, nil
}

// build rewrites the triad in general form. Columns that appear in no row
// and carry no finite bound are fixed at zero, or make the model unbounded
// when the objective moves them.
func (s *Solver) build(tr *model.Triad) (*generalForm, error) {
	nCols := len(tr.Variables)
	objective := tr.DenseObjective()
	if tr.Direction == model.Maximize {
		for j := range objective {
			objective[j] = -objective[j]
		}
	}

	// 1. Choose active columns
	used := make([]bool, nCols)
	for _, r := range tr.Rows {
		for _, e := range r.Entries {
			if e.Value != 0 {
				used[e.Column] = true
			}
		}
	}
	gf := &generalForm{rows: make([]rowRef, len(tr.Rows))}
	lpCol := make([]int, nCols)
	for j := 0; j < nCols; j++ {
		bounded := !math.IsInf(tr.Lower[j], -1) || !math.IsInf(tr.Upper[j], 1)
		if !used[j] && !bounded {
			if objective[j] != 0 {
				return nil, fmt.Errorf("%w: free column %s", solver.ErrUnbounded, tr.Variables[j].Name())
			}
			lpCol[j] = -1

			continue
		}
		lpCol[j] = len(gf.columns)
		gf.columns = append(gf.columns, j)
		gf.c = append(gf.c, objective[j])
	}

	// 2. Constraint rows
	n := len(gf.columns)
	for i, r := range tr.Rows {
		row := make([]float64, n)
		empty := true
		for _, e := range r.Entries {
			if k := lpCol[e.Column]; k >= 0 && e.Value != 0 {
				row[k] += e.Value
				empty = false
			}
		}
		if empty {
			if !trivialFeasible(r.Sign, r.RHS, s.opts.Tolerance) {
				return nil, fmt.Errorf("%w: row %q reads 0 %s %g", solver.ErrInfeasible, r.Name, r.Sign, r.RHS)
			}
			gf.rows[i] = rowRef{omitted: true}

			continue
		}
		switch r.Sign {
		case model.LessEqual:
			gf.rows[i] = rowRef{index: len(gf.h), sign: 1}
			gf.g = append(gf.g, row)
			gf.h = append(gf.h, r.RHS)
		case model.GreaterEqual:
			for k := range row {
				row[k] = -row[k]
			}
			gf.rows[i] = rowRef{index: len(gf.h), sign: -1}
			gf.g = append(gf.g, row)
			gf.h = append(gf.h, -r.RHS)
		default:
			gf.rows[i] = rowRef{equality: true, index: len(gf.b), sign: 1}
			gf.a = append(gf.a, row)
			gf.b = append(gf.b, r.RHS)
		}
	}

	// 3. Dependent equalities
	if err := gf.dropDependent(tr); err != nil {
		return nil, err
	}

	// 4. Finite bounds
	for k, j := range gf.columns {
		if lo := tr.Lower[j]; !math.IsInf(lo, -1) {
			row := make([]float64, n)
			row[k] = -1
			gf.g = append(gf.g, row)
			gf.h = append(gf.h, -lo)
		}
		if hi := tr.Upper[j]; !math.IsInf(hi, 1) {
			row := make([]float64, n)
			row[k] = 1
			gf.g = append(gf.g, row)
			gf.h = append(gf.h, hi)
		}
	}

	return gf, nil
}

// dropDependent removes equality rows spanned by the equality rows kept
// before them, so that the standard form has full row rank.
//
// Rows are orthogonalised one at a time (modified Gram-Schmidt) twice: on
// the coefficients alone and with the right-hand side appended. A row with
// a vanishing coefficient residual is redundant when its augmented residual
// vanishes too and contradictory otherwise.
//
// Complexity: O(E²·n) for E equality rows over n columns.
func (gf *generalForm) dropDependent(tr *model.Triad) error {
	if len(gf.a) < 2 {
		return nil
	}
	n := len(gf.columns)
	var (
		basis, augmented []*mat.VecDense
		keep             = make([]int, len(gf.a)) // new index, or -1
		a                [][]float64
		b                []float64
	)
	for i, row := range gf.a {
		coef, coefNorm := residual(basis, row, n)
		aug, augNorm := residual(augmented, append(append(make([]float64, 0, n+1), row...), gf.b[i]), n+1)
		scale := math.Max(1, mat.Norm(mat.NewVecDense(n, row), 2))
		if coefNorm <= dependenceTol*scale {
			if augNorm > dependenceTol*math.Max(scale, math.Abs(gf.b[i])) {
				return fmt.Errorf("%w: row %q contradicts earlier equalities", solver.ErrInfeasible, equalityName(tr, gf.rows, i))
			}
			keep[i] = -1

			continue
		}
		coef.ScaleVec(1/coefNorm, coef)
		aug.ScaleVec(1/augNorm, aug)
		basis = append(basis, coef)
		augmented = append(augmented, aug)
		keep[i] = len(a)
		a = append(a, row)
		b = append(b, gf.b[i])
	}
	if len(a) == len(gf.a) {
		return nil
	}
	for i := range gf.rows {
		ref := &gf.rows[i]
		if !ref.equality || ref.omitted {
			continue
		}
		if k := keep[ref.index]; k >= 0 {
			ref.index = k
		} else {
			*ref = rowRef{omitted: true}
		}
	}
	gf.a, gf.b = a, b

	return nil
}

func equalityName(tr *model.Triad, rows []rowRef, index int) string {
	for i, ref := range rows {
		if ref.equality && !ref.omitted && ref.index == index {
			return tr.Rows[i].Name
		}
	}

	return ""
}

// residual projects row off an orthonormal basis and returns what remains
// with its Euclidean norm.
func residual(basis []*mat.VecDense, row []float64, n int) (*mat.VecDense, float64) {
	v := mat.NewVecDense(n, append([]float64(nil), row...))
	for _, q := range basis {
		v.AddScaledVec(v, -mat.Dot(q, v), q)
	}

	return v, mat.Norm(v, 2)
}

// denseOrNil packs rows into a matrix. An empty block is returned as an
// untyped nil so that lp.Convert sees no constraint block.
func denseOrNil(rows [][]float64, cols int) mat.Matrix {
	if len(rows) == 0 {
		return nil
	}
	d := mat.NewDense(len(rows), cols, nil)
	for i, r := range rows {
		d.SetRow(i, r)
	}

	return d
}

func trivialFeasible(sign model.Sign, rhs, tol float64) bool {
	switch sign {
	case model.LessEqual:
		return 0 <= rhs+tol
	case model.GreaterEqual:
		return 0 >= rhs-tol
	default:
		return math.Abs(rhs) <= tol
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return fmt.Errorf("%w: %w", solver.ErrInfeasible, err)
	case errors.Is(err, lp.ErrUnbounded):
		return fmt.Errorf("%w: %w", solver.ErrUnbounded, err)
	case errors.Is(err, lp.ErrSingular), errors.Is(err, lp.ErrLinSolve),
		errors.Is(err, lp.ErrBland), errors.Is(err, lp.ErrZeroRow), errors.Is(err, lp.ErrZeroColumn):
		return fmt.Errorf("%w: %w", solver.ErrNumerical, err)
	default:
		return err
	}
}

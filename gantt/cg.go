package gantt

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/shadowprice"
	"github.com/katalvlaran/lvopt/solver"
	"github.com/katalvlaran/lvopt/variable"
)

// Option configures a ColumnGeneration run.
type Option func(*Options)

// Options holds ColumnGeneration configuration.
type Options struct {
	// MaxIterations bounds the number of master solves.
	MaxIterations int
	// Tolerance is the reduced cost a column must beat (below -Tolerance)
	// and the threshold above which a relaxed value is reported.
	Tolerance float64
	// Parallelism bounds the number of executors priced concurrently.
	Parallelism int
	// Logger receives one record per iteration. Default no-op.
	Logger *zap.Logger
}

// DefaultOptions returns 100 iterations, tolerance 1e-6, parallelism 4 and
// a no-op logger.
func DefaultOptions() Options {
	return Options{MaxIterations: 100, Tolerance: 1e-6, Parallelism: 4, Logger: zap.NewNop()}
}

// WithMaxIterations bounds the master solves; non-positive values are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithTolerance sets the reduced-cost tolerance; non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithParallelism bounds concurrent pricing; non-positive values are ignored.
func WithParallelism(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Parallelism = n
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

// Selected is a bunch with its relaxed master value.
type Selected struct {
	Bunch *Bunch
	Value float64
}

// Cancelled is a task with its relaxed cancel value.
type Cancelled struct {
	Task  *Task
	Value float64
}

// Solution is the outcome of a column generation run.
type Solution struct {
	// Iterations is the number of master solves.
	Iterations int
	// Converged is true when the last pricing round found no column.
	Converged bool
	// Objective is the relaxed master objective, a lower bound on the
	// integer schedule cost once converged.
	Objective float64
	// Selection lists the bunches with value above tolerance.
	Selection []Selected
	// Cancelled lists the tasks with cancel value above tolerance.
	Cancelled []Cancelled
	// Prices are the shadow prices of the last master solve.
	Prices []shadowprice.Price[Key]
	// Columns is the number of generated bunches.
	Columns int
}

// ColumnGeneration drives the restricted master problem of an instance.
type ColumnGeneration struct {
	opts   Options
	solver solver.LinearSolver
	comp   *Compilation
}

// NewColumnGeneration validates the instance and prepares an empty master.
func NewColumnGeneration(in *Instance, s solver.LinearSolver, opts ...Option) (*ColumnGeneration, error) {
	if s == nil {
		return nil, ErrNilSolver
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	comp, err := NewCompilation(in)
	if err != nil {
		return nil, err
	}

	return &ColumnGeneration{opts: o, solver: s, comp: comp}, nil
}

// Compilation returns the master state, for seeding columns before Run.
func (cg *ColumnGeneration) Compilation() *Compilation { return cg.comp }

// Run iterates build, solve, refresh, price and add until no improving
// column remains or the iteration budget is spent.
func (cg *ColumnGeneration) Run(ctx context.Context) (*Solution, error) {
	log := cg.opts.Logger
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// 1. Build the master over the current columns
		m, pipes, err := cg.build(iter)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		// 2. Solve its relaxation
		res, err := cg.solver.Solve(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		// 3. Refresh shadow prices
		prices := pipes.NewMapFor()
		if err = pipes.Refresh(prices, m, res.Duals); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		if iter >= cg.opts.MaxIterations {
			log.Info("column generation stopped", zap.Int("iteration", iter), zap.Float64("objective", res.Objective))

			return cg.solution(m, res, prices, iter, false)
		}
		// 4. Price every executor
		cols, err := cg.price(ctx, prices)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		// 5. Extend the master
		added, err := cg.comp.AddColumns(cols...)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		log.Debug("column generation iteration",
			zap.Int("iteration", iter),
			zap.Float64("objective", res.Objective),
			zap.Int("prices", prices.Len()),
			zap.Int("added", added),
			zap.Int("columns", len(cg.comp.bunches)))
		if added == 0 {
			log.Info("column generation converged", zap.Int("iteration", iter), zap.Float64("objective", res.Objective))

			return cg.solution(m, res, prices, iter, true)
		}
	}
}

// build returns a fresh master over the current columns.
func (cg *ColumnGeneration) build(iter int) (*model.Model, PipelineList, error) {
	m, err := model.New(model.WithName(fmt.Sprintf("rmp_%d", iter)), model.WithLogger(cg.opts.Logger))
	if err != nil {
		return nil, nil, err
	}
	if err = cg.comp.Register(m); err != nil {
		return nil, nil, err
	}
	pipes := Pipelines(cg.comp)
	if err = pipes.Apply(m); err != nil {
		return nil, nil, err
	}

	return m, pipes, nil
}

// price runs Price for every executor concurrently. The map is only read.
func (cg *ColumnGeneration) price(ctx context.Context, prices *PriceMap) ([]*Bunch, error) {
	executors := cg.comp.executors
	found := make([]*Bunch, len(executors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cg.opts.Parallelism)
	for i, e := range executors {
		i, e := i, e
		g.Go(func() error {
			b, _, err := Price(gctx, e, cg.comp.tasks, prices, cg.opts.Tolerance)
			if err != nil {
				return fmt.Errorf("price %s: %w", e.ID, err)
			}
			found[i] = b

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := found[:0]
	for _, b := range found {
		if b != nil {
			out = append(out, b)
		}
	}

	return out, nil
}

func (cg *ColumnGeneration) solution(m *model.Model, res *solver.Result, prices *PriceMap, iter int, converged bool) (*Solution, error) {
	if err := res.Apply(m); err != nil {
		return nil, err
	}
	sol := &Solution{
		Iterations: iter,
		Converged:  converged,
		Objective:  res.Objective,
		Prices:     prices.Prices(),
		Columns:    len(cg.comp.bunches),
	}
	tokens := m.Tokens()
	for i, b := range cg.comp.bunches {
		if v := value(tokens.Find(cg.comp.x[i])); v > cg.opts.Tolerance {
			sol.Selection = append(sol.Selection, Selected{Bunch: b, Value: v})
		}
	}
	for _, t := range cg.comp.tasks {
		if v := value(tokens.Find(cg.comp.y[t])); v > cg.opts.Tolerance {
			sol.Cancelled = append(sol.Cancelled, Cancelled{Task: t, Value: v})
		}
	}

	return sol, nil
}

func value(tok *variable.Token, ok bool) float64 {
	if !ok {
		return 0
	}
	v, _ := tok.Result()

	return v
}

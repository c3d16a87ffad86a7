package gantt

import (
	"fmt"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/shadowprice"
)

// TaskCompilationLimit adds one row per task,
//
//	task_compilation_t = 1
//
// and the bunch and cancel sub-objectives. Its duals price tasks.
type TaskCompilationLimit struct {
	c *Compilation
}

var _ Pipeline = (*TaskCompilationLimit)(nil)

// NewTaskCompilationLimit returns the limit over c.
func NewTaskCompilationLimit(c *Compilation) *TaskCompilationLimit {
	return &TaskCompilationLimit{c: c}
}

// Name returns the constraint group name.
func (l *TaskCompilationLimit) Name() string { return TaskCompilationGroup }

// Apply adds the task rows to m.
func (l *TaskCompilationLimit) Apply(m *model.Model) error {
	for _, t := range l.c.tasks {
		u, err := expression.LinearDerived(l.c.taskSymbols[t])
		if err != nil {
			return err
		}
		row := model.EqConst(expression.Sum(expression.TermOf(1, u)), 1)
		if err = m.AddConstraint(row, TaskCompilationGroup+"_"+t.ID, model.WithGroup(TaskCompilationGroup)); err != nil {
			return err
		}
	}
	if err := m.Minimize(l.c.BunchCost(), "bunch_cost"); err != nil {
		return err
	}

	return m.Minimize(l.c.CancelCost(), "cancel_cost")
}

// Extractor prices every step that covers a task.
func (l *TaskCompilationLimit) Extractor() shadowprice.Extractor[Key, Args] {
	return func(prices *PriceMap, args Args) float64 {
		if args.Task == nil {
			return 0
		}

		return prices.Price(Key{Kind: TaskKey, ID: args.Task.ID})
	}
}

// Refresh stores the task row duals.
func (l *TaskCompilationLimit) Refresh(prices *PriceMap, m *model.Model, duals []float64) error {
	keys := make([]Key, len(l.c.tasks))
	for i, t := range l.c.tasks {
		keys[i] = Key{Kind: TaskKey, ID: t.ID}
	}

	return shadowprice.RefreshGroup(prices, m, TaskCompilationGroup, keys, duals)
}

// ExecutorCompilationLimit adds one row per executor,
//
//	executor_compilation_e = 1
//
// and the leisure sub-objective. Its duals price executors.
type ExecutorCompilationLimit struct {
	c *Compilation
}

var _ Pipeline = (*ExecutorCompilationLimit)(nil)

// NewExecutorCompilationLimit returns the limit over c.
func NewExecutorCompilationLimit(c *Compilation) *ExecutorCompilationLimit {
	return &ExecutorCompilationLimit{c: c}
}

// Name returns the constraint group name.
func (l *ExecutorCompilationLimit) Name() string { return ExecutorCompilationGroup }

// Apply adds the executor rows to m.
func (l *ExecutorCompilationLimit) Apply(m *model.Model) error {
	for _, e := range l.c.executors {
		u, err := expression.LinearDerived(l.c.executorSymbols[e])
		if err != nil {
			return err
		}
		row := model.EqConst(expression.Sum(expression.TermOf(1, u)), 1)
		if err = m.AddConstraint(row, ExecutorCompilationGroup+"_"+e.ID, model.WithGroup(ExecutorCompilationGroup)); err != nil {
			return err
		}
	}

	return m.Minimize(l.c.LeisureCost(), "leisure_cost")
}

// Extractor prices the bunch itself, that is a context with no task and no
// predecessor.
func (l *ExecutorCompilationLimit) Extractor() shadowprice.Extractor[Key, Args] {
	return func(prices *PriceMap, args Args) float64 {
		if args.Executor == nil || args.Prev != nil || args.Task != nil {
			return 0
		}

		return prices.Price(Key{Kind: ExecutorKey, ID: args.Executor.ID})
	}
}

// Refresh stores the executor row duals.
func (l *ExecutorCompilationLimit) Refresh(prices *PriceMap, m *model.Model, duals []float64) error {
	keys := make([]Key, len(l.c.executors))
	for i, e := range l.c.executors {
		keys[i] = Key{Kind: ExecutorKey, ID: e.ID}
	}
	if err := shadowprice.RefreshGroup(prices, m, ExecutorCompilationGroup, keys, duals); err != nil {
		return fmt.Errorf("executors: %w", err)
	}

	return nil
}

// Pipelines returns the task and executor limits over c in row order.
func Pipelines(c *Compilation) PipelineList {
	return PipelineList{NewTaskCompilationLimit(c), NewExecutorCompilationLimit(c)}
}

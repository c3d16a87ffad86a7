package gantt

import (
	"fmt"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/variable"
)

// Constraint group names used by the compilation limits.
const (
	TaskCompilationGroup     = "task_compilation"
	ExecutorCompilationGroup = "executor_compilation"
)

// Compilation holds the restricted master problem state across column
// generation iterations: one x column per generated bunch, one y (cancel)
// column per task, one z (leisure) column per executor, and the derived
// symbols that sum them per task and per executor.
//
//	task_compilation_t     = Σ x[b ∋ t] + y[t]
//	executor_compilation_e = Σ x[b on e] + z[e]
//
// Columns are non-negative continuous; the rows bound them by 1.
type Compilation struct {
	factory   *variable.Factory
	tasks     []*Task
	executors []*Executor

	bunches []*Bunch
	x       []*variable.Item
	seen    map[string]bool

	y map[*Task]*variable.Item
	z map[*Executor]*variable.Item

	taskSymbols     map[*Task]*expression.ExpressionSymbol
	executorSymbols map[*Executor]*expression.ExpressionSymbol
}

// NewCompilation validates the instance and creates the y and z columns.
func NewCompilation(in *Instance) (*Compilation, error) {
	if in == nil {
		return nil, ErrNoExecutor
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &Compilation{
		factory:         variable.NewFactory(),
		tasks:           in.Tasks,
		executors:       in.Executors,
		seen:            make(map[string]bool),
		y:               make(map[*Task]*variable.Item, len(in.Tasks)),
		z:               make(map[*Executor]*variable.Item, len(in.Executors)),
		taskSymbols:     make(map[*Task]*expression.ExpressionSymbol, len(in.Tasks)),
		executorSymbols: make(map[*Executor]*expression.ExpressionSymbol, len(in.Executors)),
	}
	// 1. Cancel columns and task symbols
	for _, t := range in.Tasks {
		y, err := c.factory.New("y_"+t.ID, variable.UContinuous)
		if err != nil {
			return nil, err
		}
		s, err := expression.NewLinearSymbol(TaskCompilationGroup+"_"+t.ID, expression.Sum(expression.Term(1, y)))
		if err != nil {
			return nil, err
		}
		c.y[t], c.taskSymbols[t] = y, s
	}
	// 2. Leisure columns and executor symbols
	for _, e := range in.Executors {
		z, err := c.factory.New("z_"+e.ID, variable.UContinuous)
		if err != nil {
			return nil, err
		}
		s, err := expression.NewLinearSymbol(ExecutorCompilationGroup+"_"+e.ID, expression.Sum(expression.Term(1, z)))
		if err != nil {
			return nil, err
		}
		c.z[e], c.executorSymbols[e] = z, s
	}

	return c, nil
}

// Tasks returns the instance tasks.
func (c *Compilation) Tasks() []*Task { return c.tasks }

// Executors returns the instance executors.
func (c *Compilation) Executors() []*Executor { return c.executors }

// Bunches returns the generated columns in generation order.
func (c *Compilation) Bunches() []*Bunch { return c.bunches }

// BunchVariable returns the x column of bunch i.
func (c *Compilation) BunchVariable(i int) *variable.Item { return c.x[i] }

// CancelVariable returns the y column of t.
func (c *Compilation) CancelVariable(t *Task) *variable.Item { return c.y[t] }

// LeisureVariable returns the z column of e.
func (c *Compilation) LeisureVariable(e *Executor) *variable.Item { return c.z[e] }

// TaskSymbol returns task_compilation_t.
func (c *Compilation) TaskSymbol(t *Task) *expression.ExpressionSymbol { return c.taskSymbols[t] }

// ExecutorSymbol returns executor_compilation_e.
func (c *Compilation) ExecutorSymbol(e *Executor) *expression.ExpressionSymbol {
	return c.executorSymbols[e]
}

// AddColumns appends bunches not generated before and returns how many
// were added. Every touched symbol is flushed. A bunch on an unknown
// executor or covering an unknown task is rejected before anything of it
// is applied; the bunches before it stay added.
func (c *Compilation) AddColumns(bunches ...*Bunch) (int, error) {
	added := 0
	for _, b := range bunches {
		if b == nil || len(b.Tasks) == 0 {
			continue
		}
		// 1. Resolve every symbol the column enters
		if b.Executor == nil {
			return added, fmt.Errorf("%w: bunch of %d tasks", ErrNoExecutor, len(b.Tasks))
		}
		es, ok := c.executorSymbols[b.Executor]
		if !ok {
			return added, fmt.Errorf("%w: bunch on unknown executor %s", ErrNoExecutor, b.Executor.ID)
		}
		covered := make([]*expression.ExpressionSymbol, len(b.Tasks))
		for i, t := range b.Tasks {
			if covered[i], ok = c.taskSymbols[t]; !ok {
				return added, fmt.Errorf("%w: bunch covers unknown task %s", ErrInvalidTask, taskID(t))
			}
		}
		sig := b.Signature()
		if c.seen[sig] {
			continue
		}

		// 2. Create the column and extend the symbols
		x, err := c.factory.New(fmt.Sprintf("x_%d_%s", len(c.bunches), b.Executor.ID), variable.UContinuous)
		if err != nil {
			return added, err
		}
		for _, ts := range covered {
			ts.Polynomial().Add(expression.Term(1, x))
			ts.Flush(false)
		}
		es.Polynomial().Add(expression.Term(1, x))
		es.Flush(false)

		c.seen[sig] = true
		c.bunches = append(c.bunches, b)
		c.x = append(c.x, x)
		added++
	}

	return added, nil
}

func taskID(t *Task) string {
	if t == nil {
		return "<nil>"
	}

	return t.ID
}

// Register adds every column and derived symbol of the compilation to m, in
// a stable order: y, z, then x.
func (c *Compilation) Register(m *model.Model) error {
	for _, t := range c.tasks {
		if err := m.AddVariable(c.y[t]); err != nil {
			return err
		}
	}
	for _, e := range c.executors {
		if err := m.AddVariable(c.z[e]); err != nil {
			return err
		}
	}
	if err := m.AddVariable(c.x...); err != nil {
		return err
	}
	for _, t := range c.tasks {
		if err := m.AddSymbol(c.taskSymbols[t]); err != nil {
			return err
		}
	}
	for _, e := range c.executors {
		if err := m.AddSymbol(c.executorSymbols[e]); err != nil {
			return err
		}
	}

	return nil
}

// BunchCost returns Σ cost(b) x[b].
func (c *Compilation) BunchCost() *expression.Polynomial {
	p := expression.Sum()
	for i, b := range c.bunches {
		p.Add(expression.Term(b.Cost, c.x[i]))
	}

	return p
}

// CancelCost returns Σ cancel(t) y[t].
func (c *Compilation) CancelCost() *expression.Polynomial {
	p := expression.Sum()
	for _, t := range c.tasks {
		p.Add(expression.Term(t.CancelCost, c.y[t]))
	}

	return p
}

// LeisureCost returns Σ leisure(e) z[e].
func (c *Compilation) LeisureCost() *expression.Polynomial {
	p := expression.Sum()
	for _, e := range c.executors {
		p.Add(expression.Term(e.LeisureCost, c.z[e]))
	}

	return p
}

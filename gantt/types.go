package gantt

import (
	"fmt"
	"math"
	"strings"
)

// Executor runs a sequence of tasks (a bunch).
type Executor struct {
	ID string `yaml:"id"`
	// Turnaround is the minimum gap between two consecutive tasks.
	Turnaround float64 `yaml:"turnaround"`
	// LeisureCost is paid when the executor runs no bunch.
	LeisureCost float64 `yaml:"leisureCost"`
}

// String returns the executor ID.
func (e *Executor) String() string { return e.ID }

// Task is a job with a fixed time window.
type Task struct {
	ID    string  `yaml:"id"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	// Costs maps executor IDs to the cost of running the task on them.
	// Executors missing from the map cannot run the task.
	Costs map[string]float64 `yaml:"costs"`
	// CancelCost is paid when no bunch covers the task.
	CancelCost float64 `yaml:"cancelCost"`
}

// String returns the task ID.
func (t *Task) String() string { return t.ID }

// CostOn returns the cost of t on e and whether e may run t.
func (t *Task) CostOn(e *Executor) (float64, bool) {
	c, ok := t.Costs[e.ID]

	return c, ok
}

// Precedes reports whether t can be followed by next on e.
func (t *Task) Precedes(next *Task, e *Executor) bool {
	return t.End+e.Turnaround <= next.Start
}

// Bunch is an ordered task sequence assigned to one executor.
type Bunch struct {
	Executor *Executor
	Tasks    []*Task
	Cost     float64
}

// NewBunch returns the bunch of tasks on e with its cost. Tasks must be
// runnable by e and ordered by Precedes.
func NewBunch(e *Executor, tasks ...*Task) (*Bunch, error) {
	if e == nil {
		return nil, ErrNoExecutor
	}
	b := &Bunch{Executor: e, Tasks: tasks}
	for i, t := range tasks {
		c, ok := t.CostOn(e)
		if !ok {
			return nil, fmt.Errorf("%w: %s cannot run on %s", ErrInvalidTask, t.ID, e.ID)
		}
		if i > 0 && !tasks[i-1].Precedes(t, e) {
			return nil, fmt.Errorf("%w: %s does not follow %s on %s", ErrInvalidTask, t.ID, tasks[i-1].ID, e.ID)
		}
		b.Cost += c
	}

	return b, nil
}

// Contains reports whether the bunch covers task.
func (b *Bunch) Contains(task *Task) bool {
	for _, t := range b.Tasks {
		if t == task {
			return true
		}
	}

	return false
}

// Signature identifies a bunch by executor and task sequence.
func (b *Bunch) Signature() string {
	ids := make([]string, len(b.Tasks))
	for i, t := range b.Tasks {
		ids[i] = t.ID
	}

	return b.Executor.ID + ":" + strings.Join(ids, ",")
}

// String renders "e1[t1 t2] = 10".
func (b *Bunch) String() string {
	ids := make([]string, len(b.Tasks))
	for i, t := range b.Tasks {
		ids[i] = t.ID
	}

	return fmt.Sprintf("%s[%s] = %g", b.Executor.ID, strings.Join(ids, " "), b.Cost)
}

// Instance is a scheduling problem.
type Instance struct {
	Executors []*Executor `yaml:"executors"`
	Tasks     []*Task     `yaml:"tasks"`
}

// Validate checks identifiers, windows and costs.
func (in *Instance) Validate() error {
	if len(in.Executors) == 0 {
		return ErrNoExecutor
	}
	executors := make(map[string]bool, len(in.Executors))
	for _, e := range in.Executors {
		if e == nil || e.ID == "" {
			return fmt.Errorf("%w: executor without id", ErrNoExecutor)
		}
		if executors[e.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateExecutor, e.ID)
		}
		if e.Turnaround < 0 || e.LeisureCost < 0 {
			return fmt.Errorf("%w: executor %s has negative turnaround or leisure cost", ErrNoExecutor, e.ID)
		}
		executors[e.ID] = true
	}
	tasks := make(map[string]bool, len(in.Tasks))
	for _, t := range in.Tasks {
		if t == nil || t.ID == "" {
			return fmt.Errorf("%w: task without id", ErrInvalidTask)
		}
		if tasks[t.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidTask, t.ID)
		}
		tasks[t.ID] = true
		if !(t.End > t.Start) {
			return fmt.Errorf("%w: %s window [%g, %g] is empty", ErrInvalidTask, t.ID, t.Start, t.End)
		}
		if !(t.CancelCost > 0) || math.IsInf(t.CancelCost, 0) {
			return fmt.Errorf("%w: %s cancel cost must be positive and finite", ErrInvalidTask, t.ID)
		}
		for id, c := range t.Costs {
			if !executors[id] {
				return fmt.Errorf("%w: task %s names executor %q", ErrNoExecutor, t.ID, id)
			}
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: %s cost on %s is not finite", ErrInvalidTask, t.ID, id)
			}
		}
	}

	return nil
}

package gantt

import (
	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/shadowprice"
)

// KeyKind tells which constraint family a Key prices.
type KeyKind int

const (
	// TaskKey prices a task_compilation row.
	TaskKey KeyKind = iota + 1
	// ExecutorKey prices an executor_compilation row.
	ExecutorKey
)

// Key identifies one priced row.
type Key struct {
	Kind KeyKind
	ID   string
}

// String returns "task(t1)" or "executor(e1)".
func (k Key) String() string {
	switch k.Kind {
	case TaskKey:
		return "task(" + k.ID + ")"
	case ExecutorKey:
		return "executor(" + k.ID + ")"
	default:
		return "unknown(" + k.ID + ")"
	}
}

// Args is the pricing context of one step of a bunch on an executor.
//
//	{Executor}                  the bunch itself
//	{Executor, Prev, Task}      Task follows Prev (Prev nil for the first task)
//	{Executor, Prev: last}      the bunch ends after last
type Args struct {
	Executor *Executor
	Prev     *Task
	Task     *Task
}

// PriceMap is the shadow-price map of the gantt pipelines.
type PriceMap = shadowprice.Map[Key, Args]

// NewPriceMap returns an empty map without extractors.
func NewPriceMap() *PriceMap { return shadowprice.NewMap[Key, Args]() }

// Pipeline is a gantt model-building stage.
type Pipeline = shadowprice.Pipeline[*model.Model, Key, Args]

// PipelineList is a sequence of gantt stages.
type PipelineList = shadowprice.PipelineList[*model.Model, Key, Args]

// ReducedCost returns the reduced cost of a bunch against the dual prices:
// its cost minus the price of the executor, of every step, and of the end
// of the sequence.
func ReducedCost(prices *PriceMap, b *Bunch) float64 {
	ret := b.Cost
	ret -= prices.Extract(Args{Executor: b.Executor})
	var prev *Task
	for _, t := range b.Tasks {
		ret -= prices.Extract(Args{Executor: b.Executor, Prev: prev, Task: t})
		prev = t
	}
	if len(b.Tasks) > 0 {
		ret -= prices.Extract(Args{Executor: b.Executor, Prev: prev})
	}

	return ret
}

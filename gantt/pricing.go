package gantt

import (
	"context"
	"math"
)

// Price searches the bunch of e with the lowest reduced cost against prices.
//
// The search is a shortest path over the compatibility DAG of e, relaxed in
// topological order:
//
//	source → t    weight -price(e) + cost(t) - price(e, nil, t)
//	p → t         weight cost(t) - price(e, p, t)
//	t → sink      weight -price(e, t, end)
//
// It returns the best bunch and its reduced cost when that cost is below
// -tol, and a nil bunch otherwise. Among paths of equal cost the first end
// in topological order wins.
//
// Complexity:
//
//   - Time:   O(T² + A·X) for T runnable tasks, A arcs and extractor cost X
//   - Memory: O(T + A)
func Price(ctx context.Context, e *Executor, tasks []*Task, prices *PriceMap, tol float64) (*Bunch, float64, error) {
	if e == nil {
		return nil, 0, ErrNoExecutor
	}
	g := newTaskGraph(e, tasks)
	if len(g.tasks) == 0 {
		return nil, 0, nil
	}
	order, err := g.order(ctx)
	if err != nil {
		return nil, 0, err
	}

	// 1. Label every node with the path that starts directly at it
	n := len(g.tasks)
	dist := make([]float64, n)
	pred := make([]int, n)
	base := -prices.Extract(Args{Executor: e})
	for i, t := range g.tasks {
		c, _ := t.CostOn(e)
		dist[i] = base + c - prices.Extract(Args{Executor: e, Task: t})
		pred[i] = -1
	}
	// 2. Relax arcs in topological order
	for _, i := range order {
		from := g.tasks[i]
		for _, j := range g.next[i] {
			to := g.tasks[j]
			c, _ := to.CostOn(e)
			if d := dist[i] + c - prices.Extract(Args{Executor: e, Prev: from, Task: to}); d < dist[j] {
				dist[j] = d
				pred[j] = i
			}
		}
	}
	// 3. Close every path at the sink and keep the best
	best, bestCost := -1, math.Inf(1)
	for _, i := range order {
		if d := dist[i] - prices.Extract(Args{Executor: e, Prev: g.tasks[i]}); d < bestCost {
			best, bestCost = i, d
		}
	}
	if best < 0 || !(bestCost < -tol) {
		return nil, bestCost, nil
	}
	// 4. Walk predecessors back to the source
	var seq []*Task
	for i := best; i >= 0; i = pred[i] {
		seq = append(seq, g.tasks[i])
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	b, err := NewBunch(e, seq...)
	if err != nil {
		return nil, 0, err
	}

	return b, bestCost, nil
}

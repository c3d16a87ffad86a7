package gantt

import (
	"context"
)

// Visitation states of the topological sort.
const (
	white = iota
	gray
	black
)

// taskGraph is the compatibility DAG of one executor: its nodes are the
// tasks the executor may run, with an arc t→u whenever u can follow t.
type taskGraph struct {
	executor *Executor // owner of every arc
	tasks    []*Task   // runnable tasks, in input order
	next     [][]int   // next[i] lists the successors of tasks[i]
}

// newTaskGraph builds the compatibility graph of e over tasks.
//
// Complexity:
//
//   - Time:   O(T²) (every ordered pair of runnable tasks is tested)
//   - Memory: O(T + A) for A arcs
func newTaskGraph(e *Executor, tasks []*Task) *taskGraph {
	g := &taskGraph{executor: e}
	// 1. Keep the tasks e may run
	for _, t := range tasks {
		if _, ok := t.CostOn(e); ok {
			g.tasks = append(g.tasks, t)
		}
	}
	// 2. Link every compatible ordered pair
	g.next = make([][]int, len(g.tasks))
	for i, t := range g.tasks {
		for j, u := range g.tasks {
			if i != j && t.Precedes(u, e) {
				g.next[i] = append(g.next[i], j)
			}
		}
	}

	return g
}

// topoSorter holds the state of one depth-first topological sort.
type topoSorter struct {
	ctx   context.Context // checked on every node entry
	graph *taskGraph      // graph being sorted
	state []int           // white, gray or black per node
	order []int           // post-order, reversed at the end
}

// order returns the node indices of g in topological order. A back-edge
// yields ErrCycleDetected; a done context stops the walk with its error.
//
// Complexity:
//
//   - Time:   O(T + A) (each node and arc visited once)
//   - Memory: O(T)     (recursion stack and state slice)
func (g *taskGraph) order(ctx context.Context) ([]int, error) {
	s := &topoSorter{
		ctx:   ctx,
		graph: g,
		state: make([]int, len(g.tasks)),
		order: make([]int, 0, len(g.tasks)),
	}
	// 1. Drive DFS from every unvisited node
	for i := range g.tasks {
		if s.state[i] == white {
			if err := s.visit(i); err != nil {
				return nil, err
			}
		}
	}
	// 2. Reverse the post-order
	for i, j := 0, len(s.order)-1; i < j; i, j = i+1, j-1 {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}

	return s.order, nil
}

func (s *topoSorter) visit(i int) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}
	switch s.state[i] {
	case gray:
		return ErrCycleDetected
	case black:
		return nil
	}
	s.state[i] = gray
	for _, j := range s.graph.next[i] {
		if err := s.visit(j); err != nil {
			return err
		}
	}
	s.state[i] = black
	s.order = append(s.order, i)

	return nil
}

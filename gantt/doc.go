// Package gantt schedules fixed-window tasks on executors by column
// generation over bunches.
//
// A bunch is an ordered sequence of tasks on one executor, every task
// starting no earlier than the end of the previous one plus the executor's
// turnaround. The restricted master problem (RMP) selects bunches:
//
//	minimize   Σ cost(b) x[b] + Σ cancel(t) y[t] + Σ leisure(e) z[e]
//	subject to Σ x[b ∋ t] + y[t] = 1        for every task      (task_compilation)
//	           Σ x[b on e] + z[e] = 1       for every executor  (executor_compilation)
//
// Each constraint family is a shadowprice pipeline stage. After the
// relaxation is solved, the stages refresh a PriceMap and every executor is
// priced concurrently: a shortest path over the DAG of compatible tasks,
// relaxed in topological order, yields the bunch with the lowest reduced
// cost. Columns below -tolerance enter the next RMP.
//
//	cg, _ := gantt.NewColumnGeneration(instance, simplex.New())
//	sol, err := cg.Run(ctx)
//	// sol.Objective is the LP bound; sol.Selection the relaxed bunches.
//
// Complexity of one pricing round: O(E·T²) extractor calls for E
// executors and T tasks.
package gantt

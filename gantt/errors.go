// SPDX-License-Identifier: MIT
// Package gantt: sentinel error set.
// Instance validation failures wrap ErrInvalidTask or ErrNoExecutor with the
// offending identifier; pricing failures wrap ErrCycleDetected.

package gantt

import "errors"

var (
	// ErrNoExecutor indicates an instance without executors, or a task cost
	// that names an executor the instance does not define.
	ErrNoExecutor = errors.New("gantt: no executor")

	// ErrInvalidTask indicates a task with an empty or duplicate ID, an
	// empty time window, or an unusable cost.
	ErrInvalidTask = errors.New("gantt: invalid task")

	// ErrDuplicateExecutor indicates two executors sharing an ID.
	ErrDuplicateExecutor = errors.New("gantt: duplicate executor")

	// ErrCycleDetected indicates the task connection graph of an executor
	// is not acyclic.
	ErrCycleDetected = errors.New("gantt: cycle detected")

	// ErrNilSolver indicates a column generation run without a solver.
	ErrNilSolver = errors.New("gantt: solver is nil")
)

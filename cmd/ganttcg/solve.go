package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvopt/gantt"
	"github.com/katalvlaran/lvopt/solver/simplex"
)

// newRootCmd returns the command tree. Every call builds fresh state, so
// tests may execute it repeatedly.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ganttcg",
		Short:         "Column generation for fixed-window Gantt scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd())

	return root
}

func newSolveCmd() *cobra.Command {
	var instancePath, configPath string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the LP relaxation of an instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(s.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			in, err := loadInstance(instancePath)
			if err != nil {
				return err
			}

			return solve(cmd.Context(), cmd.OutOrStdout(), in, s, logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&instancePath, "instance", "i", "", "instance YAML file (required)")
	f.StringVarP(&configPath, "config", "c", "", "settings YAML file")
	f.Int(keyMaxIterations, 100, "maximum number of master solves")
	f.Float64(keyTolerance, 1e-6, "reduced-cost tolerance")
	f.Int(keyParallelism, 4, "executors priced concurrently")
	f.Float64(keySolverTolerance, 1e-10, "simplex tolerance")
	f.BoolP(keyVerbose, "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}

// newLogger builds the production config, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	return logger, nil
}

// loadInstance decodes and validates an instance file.
func loadInstance(path string) (*gantt.Instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	var in gantt.Instance
	if err = yaml.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode instance %s: %w", path, err)
	}
	if err = in.Validate(); err != nil {
		return nil, fmt.Errorf("instance %s: %w", path, err)
	}

	return &in, nil
}

// solve runs column generation and prints the report to w.
func solve(ctx context.Context, w io.Writer, in *gantt.Instance, s settings, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lp := simplex.New(simplex.WithTolerance(s.SolverTolerance), simplex.WithLogger(logger))
	cg, err := gantt.NewColumnGeneration(in, lp,
		gantt.WithMaxIterations(s.MaxIterations),
		gantt.WithTolerance(s.Tolerance),
		gantt.WithParallelism(s.Parallelism),
		gantt.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("solving",
		zap.Int("executors", len(in.Executors)),
		zap.Int("tasks", len(in.Tasks)),
		zap.Int("max_iterations", s.MaxIterations))
	sol, err := cg.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "bound:      %.4f\n", sol.Objective)
	fmt.Fprintf(w, "iterations: %d (converged: %v)\n", sol.Iterations, sol.Converged)
	fmt.Fprintf(w, "columns:    %d\n", sol.Columns)
	fmt.Fprintln(w, "selection:")
	for _, sel := range sol.Selection {
		fmt.Fprintf(w, "  %.4f  %s\n", sel.Value, sel.Bunch)
	}
	if len(sol.Cancelled) > 0 {
		fmt.Fprintln(w, "cancelled:")
		for _, c := range sol.Cancelled {
			fmt.Fprintf(w, "  %.4f  %s\n", c.Value, c.Task)
		}
	}
	fmt.Fprintln(w, "prices:")
	for _, p := range sol.Prices {
		fmt.Fprintf(w, "  %-24s %.4f\n", p.Key, p.Value)
	}

	return nil
}

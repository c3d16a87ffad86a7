package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvopt/gantt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

// TestSolve_Instance prints the bound, the selection and the prices.
func TestSolve_Instance(t *testing.T) {
	out, err := run(t, "solve", "--instance", filepath.Join("testdata", "instance.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "bound:      9.0000")
	assert.Contains(t, out, "converged: true")
	assert.Contains(t, out, "crane[load stack] = 4")
	assert.Contains(t, out, "cancelled:")
	assert.Contains(t, out, "prices:")
}

// TestSolve_ConfigAndFlags lets flags win over the config file.
func TestSolve_ConfigAndFlags(t *testing.T) {
	instance := filepath.Join("testdata", "instance.yaml")
	config := filepath.Join("testdata", "settings.yaml")

	out, err := run(t, "solve", "-i", instance, "-c", config)
	require.NoError(t, err)
	assert.Contains(t, out, "iterations: 1 (converged: false)")

	out, err = run(t, "solve", "-i", instance, "-c", config, "--max-iterations", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "converged: true")
}

// TestSolve_Env reads LVOPT_ overrides.
func TestSolve_Env(t *testing.T) {
	t.Setenv("LVOPT_MAX_ITERATIONS", "1")
	out, err := run(t, "solve", "-i", filepath.Join("testdata", "instance.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "converged: false")
}

// TestSolve_Errors covers missing flags, bad files and bad settings.
func TestSolve_Errors(t *testing.T) {
	_, err := run(t, "solve")
	assert.Error(t, err)

	_, err = run(t, "solve", "-i", filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("executors: []\ntasks: []\n"), 0o600))
	_, err = run(t, "solve", "-i", bad)
	assert.ErrorIs(t, err, gantt.ErrNoExecutor)

	_, err = run(t, "solve", "-i", filepath.Join("testdata", "instance.yaml"), "--tolerance", "0")
	assert.ErrorIs(t, err, errInvalidSettings)
}

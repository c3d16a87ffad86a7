package expression_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// cellsEqual compares cell lists by canonical value.
var cellsEqual = cmp.Comparer(func(a, b expression.Cell) bool { return a.Equal(b) })

// newVars returns continuous variables named after names, in key order.
func newVars(t testing.TB, names ...string) []*variable.Item {
	t.Helper()
	f := variable.NewFactory()
	out := make([]*variable.Item, len(names))
	for i, n := range names {
		it, err := f.New(n, variable.Continuous)
		require.NoError(t, err)
		out[i] = it
	}

	return out
}

// countingSymbol is a DerivedSymbol that counts expansions.
type countingSymbol struct {
	name     string
	category expression.Category
	cells    []expression.Cell
	cached   bool
	gen      uint64
	calls    int
}

func (s *countingSymbol) Name() string                  { return s.name }
func (s *countingSymbol) DisplayName() string           { return "<" + s.name + ">" }
func (s *countingSymbol) Category() expression.Category { return s.category }
func (s *countingSymbol) Range() expression.Range       { return expression.NewRange(-1, 1) }
func (s *countingSymbol) Discrete() bool                { return false }
func (s *countingSymbol) Cached() bool                  { return s.cached }
func (s *countingSymbol) Generation() uint64            { return s.gen }

func (s *countingSymbol) Cells() ([]expression.Cell, error) {
	s.calls++

	return s.cells, nil
}

func (s *countingSymbol) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return expression.Sum().Evaluate(tokens, zeroIfMissing)
}

func (s *countingSymbol) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return expression.Sum().EvaluateResults(results, tokens, zeroIfMissing)
}

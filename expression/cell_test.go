package expression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// TestCell_CanonicalPair verifies that both argument orders store the same pair.
func TestCell_CanonicalPair(t *testing.T) {
	v := newVars(t, "x", "y")
	x, y := v[0], v[1]

	xy := expression.QuadraticTerm(2, x, y)
	yx := expression.QuadraticTerm(2, y, x)

	assert.True(t, xy.Equal(yx))
	assert.Equal(t, xy.Key(), yx.Key())
	first, second := yx.Variables()
	assert.Same(t, x, first)
	assert.Same(t, y, second)

	// Equal keys collapse in a map.
	set := map[expression.CellKey]struct{}{xy.Key(): {}, yx.Key(): {}}
	assert.Len(t, set, 1)
	assert.Equal(t, "2 * x * y", yx.String())
}

// TestCell_CanonicalPair_SameIdentifier orders vector entries by index.
func TestCell_CanonicalPair_SameIdentifier(t *testing.T) {
	f := variable.NewFactory()
	xs, err := f.NewVector("x", variable.Binary, 3)
	require.NoError(t, err)

	c := expression.QuadraticTerm(1, xs[2], xs[0])
	first, second := c.Variables()
	assert.Equal(t, 0, first.Key().Index)
	assert.Equal(t, 2, second.Key().Index)
}

// TestCell_AddClosure checks that addition succeeds only over identical variables.
func TestCell_AddClosure(t *testing.T) {
	v := newVars(t, "x", "y", "z")
	x, y, z := v[0], v[1], v[2]

	sum, err := expression.LinearTerm(2, x).Add(expression.LinearTerm(3, x))
	require.NoError(t, err)
	assert.Equal(t, 5.0, sum.Coefficient())

	diff, err := expression.QuadraticTerm(2, x, y).Sub(expression.QuadraticTerm(3, y, x))
	require.NoError(t, err)
	assert.Equal(t, -1.0, diff.Coefficient())
	assert.True(t, diff.IsPair())

	k, err := expression.Constant(1).Add(expression.Constant(2))
	require.NoError(t, err)
	assert.True(t, k.IsConstant())
	assert.Equal(t, 3.0, k.Coefficient())

	cases := []struct {
		name string
		a, b expression.Cell
		want error
	}{
		{"different linear", expression.LinearTerm(1, x), expression.LinearTerm(1, y), expression.ErrMismatchedVariable},
		{"different pairs", expression.QuadraticTerm(1, x, y), expression.QuadraticTerm(1, x, z), expression.ErrMismatchedVariable},
		{"linear and pair", expression.LinearTerm(1, x), expression.QuadraticTerm(1, x, x), expression.ErrMismatchedVariable},
		{"term and constant", expression.LinearTerm(1, x), expression.Constant(1), expression.ErrIncompatibleCellKinds},
		{"constant and pair", expression.Constant(1), expression.QuadraticTerm(1, x, y), expression.ErrIncompatibleCellKinds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.a.Add(tc.b)
			assert.ErrorIs(t, err, tc.want)
			_, err = tc.a.Sub(tc.b)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestCell_Multiply covers every kind pairing.
func TestCell_Multiply(t *testing.T) {
	v := newVars(t, "x", "y")
	x, y := v[0], v[1]

	c, err := expression.LinearTerm(2, y).Multiply(expression.LinearTerm(3, x))
	require.NoError(t, err)
	assert.True(t, c.Equal(expression.QuadraticTerm(6, x, y)))

	c, err = expression.Constant(2).Multiply(expression.QuadraticTerm(3, x, y))
	require.NoError(t, err)
	assert.True(t, c.Equal(expression.QuadraticTerm(6, x, y)))

	c, err = expression.LinearTerm(4, x).Multiply(expression.Constant(0.5))
	require.NoError(t, err)
	assert.True(t, c.Equal(expression.LinearTerm(2, x)))

	c, err = expression.Constant(2).Multiply(expression.Constant(5))
	require.NoError(t, err)
	assert.True(t, c.Equal(expression.Constant(10)))

	_, err = expression.QuadraticTerm(1, x, y).Multiply(expression.QuadraticTerm(1, x, y))
	assert.ErrorIs(t, err, expression.ErrDegreeExceeded)
	_, err = expression.QuadraticTerm(1, x, y).Multiply(expression.LinearTerm(1, x))
	assert.ErrorIs(t, err, expression.ErrDegreeExceeded)
	_, err = expression.LinearTerm(1, x).Multiply(expression.QuadraticTerm(1, x, y))
	assert.ErrorIs(t, err, expression.ErrDegreeExceeded)
}

// TestCell_ScalePreservesKind checks scale, divide and negate.
func TestCell_ScalePreservesKind(t *testing.T) {
	x := newVars(t, "x")[0]

	c := expression.LinearTerm(3, x).Scale(2).Divide(4).Negate()
	assert.False(t, c.IsConstant())
	assert.False(t, c.IsPair())
	assert.Equal(t, -1.5, c.Coefficient())
	assert.Equal(t, expression.Linear, c.Category())
	assert.Equal(t, expression.Quadratic, expression.QuadraticTerm(1, x, x).Category())
}

// TestCell_Evaluate checks lookup and positional evaluation and the
// missing-value policy.
func TestCell_Evaluate(t *testing.T) {
	v := newVars(t, "x", "y", "z")
	x, y, z := v[0], v[1], v[2]
	tl := variable.NewTokenList()
	require.NoError(t, tl.Add(x, y))
	require.NoError(t, tl.SetResults([]float64{2, 3}))

	got, ok := expression.QuadraticTerm(4, x, y).Evaluate(tl, false)
	require.True(t, ok)
	assert.Equal(t, 24.0, got)

	got, ok = expression.LinearTerm(4, y).EvaluateResults([]float64{10, 20}, tl, false)
	require.True(t, ok)
	assert.Equal(t, 80.0, got)

	// z is not registered.
	_, ok = expression.LinearTerm(1, z).Evaluate(tl, false)
	assert.False(t, ok)
	got, ok = expression.QuadraticTerm(1, x, z).Evaluate(tl, true)
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	// Registered but unsolved.
	tl.ClearResults()
	_, ok = expression.LinearTerm(1, x).Evaluate(tl, false)
	assert.False(t, ok)

	// Short results vector.
	_, ok = expression.LinearTerm(1, y).EvaluateResults([]float64{1}, tl, false)
	assert.False(t, ok)

	got, ok = expression.Constant(7).Evaluate(nil, false)
	assert.True(t, ok)
	assert.Equal(t, 7.0, got)
}

package variable_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvopt/variable"
)

// TestKey_Compare checks identifier-major, index-minor ordering.
func TestKey_Compare(t *testing.T) {
	a := variable.Key{Identifier: 1, Index: 5}
	b := variable.Key{Identifier: 2, Index: 0}
	c := variable.Key{Identifier: 2, Index: 3}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(b))
	assert.Equal(t, 0, c.Compare(c))
	assert.Equal(t, "2:3", c.String())
}

// TestFactory_Identifiers verifies that vectors share an identifier and
// singles get fresh ones.
func TestFactory_Identifiers(t *testing.T) {
	f := variable.NewFactory()
	x, err := f.NewVector("x", variable.Binary, 3)
	require.NoError(t, err)
	y, err := f.New("y", variable.Continuous)
	require.NoError(t, err)

	for i, it := range x {
		assert.Equal(t, uint64(0), it.Key().Identifier)
		assert.Equal(t, i, it.Key().Index)
	}
	assert.Equal(t, "x_2", x[2].Name())
	assert.Equal(t, uint64(1), y.Key().Identifier)
	assert.False(t, x[0].Equal(x[1]))
	assert.True(t, x[1].Equal(x[1]))
}

// TestFactory_Errors covers empty names and bad lengths.
func TestFactory_Errors(t *testing.T) {
	f := variable.NewFactory()
	_, err := f.New("", variable.Binary)
	assert.ErrorIs(t, err, variable.ErrEmptyName)
	_, err = f.NewVector("x", variable.Binary, 0)
	assert.ErrorIs(t, err, variable.ErrBadLength)
}

// TestType_Bounds checks default domains and discreteness.
func TestType_Bounds(t *testing.T) {
	cases := []struct {
		typ      variable.Type
		lo, hi   float64
		discrete bool
	}{
		{variable.Binary, 0, 1, true},
		{variable.Ternary, 0, 2, true},
		{variable.BalancedTernary, -1, 1, true},
		{variable.Percentage, 0, 1, false},
		{variable.Integer, math.Inf(-1), math.Inf(1), true},
		{variable.UInteger, 0, math.Inf(1), true},
		{variable.Continuous, math.Inf(-1), math.Inf(1), false},
		{variable.UContinuous, 0, math.Inf(1), false},
	}
	for _, tc := range cases {
		lo, hi := tc.typ.Bounds()
		assert.Equal(t, tc.lo, lo, tc.typ.String())
		assert.Equal(t, tc.hi, hi, tc.typ.String())
		assert.Equal(t, tc.discrete, tc.typ.Discrete(), tc.typ.String())
	}
}

// TestItem_SetBounds checks that bounds may only be tightened inside the domain.
func TestItem_SetBounds(t *testing.T) {
	f := variable.NewFactory()
	x, err := f.New("x", variable.UContinuous)
	require.NoError(t, err)

	require.NoError(t, x.SetBounds(1, 4))
	assert.Equal(t, 1.0, x.LowerBound())
	assert.Equal(t, 4.0, x.UpperBound())

	assert.ErrorIs(t, x.SetBounds(5, 4), variable.ErrBadBounds)
	assert.ErrorIs(t, x.SetBounds(-1, 4), variable.ErrBadBounds)
	assert.ErrorIs(t, x.SetBounds(math.NaN(), 4), variable.ErrBadBounds)
}

// TestTokenList_Lookup covers registration, Find/IndexOf and results.
func TestTokenList_Lookup(t *testing.T) {
	f := variable.NewFactory()
	x, _ := f.NewVector("x", variable.Continuous, 2)
	y, _ := f.New("y", variable.Continuous)
	z, _ := f.New("z", variable.Continuous)

	tl := variable.NewTokenList()
	require.NoError(t, tl.Add(x[0], x[1], y))
	assert.ErrorIs(t, tl.Add(y), variable.ErrDuplicateToken)
	assert.ErrorIs(t, tl.Add(nil), variable.ErrNilItem)
	assert.Equal(t, 3, tl.Len())

	i, ok := tl.IndexOf(y)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = tl.IndexOf(z)
	assert.False(t, ok)

	tok, ok := tl.Find(x[1])
	require.True(t, ok)
	_, solved := tok.Result()
	assert.False(t, solved)

	assert.ErrorIs(t, tl.SetResults([]float64{1}), variable.ErrResultLength)
	require.NoError(t, tl.SetResults([]float64{1, 2, 3}))
	v, solved := tok.Result()
	assert.True(t, solved)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, []float64{1, 2, 3}, tl.Results())

	require.NoError(t, tl.SetResult(y, 7))
	assert.Equal(t, []float64{1, 2, 7}, tl.Results())
	assert.ErrorIs(t, tl.SetResult(z, 1), variable.ErrTokenNotFound)

	tl.ClearResults()
	_, solved = tok.Result()
	assert.False(t, solved)
	assert.Equal(t, []*variable.Item{x[0], x[1], y}, tl.Items())
}

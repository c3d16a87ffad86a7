package expression_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// TestPolynomial_CellsAggregation merges by canonical key, folds constants
// and drops zeros.
func TestPolynomial_CellsAggregation(t *testing.T) {
	v := newVars(t, "x", "y", "z")
	x, y, z := v[0], v[1], v[2]

	xy, err := expression.Product(1, expression.VariableOf(x), expression.VariableOf(y))
	require.NoError(t, err)
	yx, err := expression.Product(2, expression.VariableOf(y), expression.VariableOf(x))
	require.NoError(t, err)
	lin, err := expression.NewLinearSymbol("s", expression.NewPolynomial(4, expression.Term(1, z)))
	require.NoError(t, err)
	su, err := expression.LinearDerived(lin)
	require.NoError(t, err)

	p := expression.NewPolynomial(1,
		expression.Term(2, y),
		xy,
		expression.Term(3, x),
		yx,
		expression.Term(-2, y),
		expression.TermOf(0.5, su),
	)
	got, err := p.Cells()
	require.NoError(t, err)

	want := []expression.Cell{
		expression.QuadraticTerm(3, x, y),
		expression.LinearTerm(3, x),
		expression.LinearTerm(0.5, z),
		expression.Constant(3),
	}
	assert.Empty(t, cmp.Diff(want, got, cellsEqual))
	assert.Equal(t, expression.Quadratic, p.Category())

	empty, err := expression.NewPolynomial(0, expression.Term(0, x)).Cells()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestPolynomial_RangeAndEvaluate sums term ranges and values.
func TestPolynomial_RangeAndEvaluate(t *testing.T) {
	f := variable.NewFactory()
	a, err := f.New("a", variable.Binary)
	require.NoError(t, err)
	b, err := f.New("b", variable.Ternary)
	require.NoError(t, err)

	p := expression.NewPolynomial(1, expression.Term(2, a), expression.Term(-1, b))
	assert.Equal(t, expression.NewRange(-1, 3), p.Range())
	assert.True(t, p.Discrete())
	assert.False(t, p.Copy().AddConstant(0.5).Discrete())

	tl := variable.NewTokenList()
	require.NoError(t, tl.Add(a, b))
	require.NoError(t, tl.SetResults([]float64{1, 2}))
	got, ok := p.Evaluate(tl, false)
	require.True(t, ok)
	assert.Equal(t, 1.0, got)
	got, ok = p.EvaluateResults(tl.Results(), tl, false)
	require.True(t, ok)
	assert.Equal(t, 1.0, got)

	assert.Equal(t, "2 * a + -1 * b + 1", p.String())
	assert.Equal(t, "-2 * a + 1 * b + -1", p.Negate().String())
	assert.Equal(t, "0", expression.Sum().String())
}

// TestPolynomial_SubPolynomial builds lhs - rhs.
func TestPolynomial_SubPolynomial(t *testing.T) {
	x := newVars(t, "x")[0]
	lhs := expression.NewPolynomial(0, expression.Term(3, x))
	rhs := expression.NewPolynomial(2, expression.Term(1, x))

	cells, err := lhs.Copy().SubPolynomial(rhs).Cells()
	require.NoError(t, err)
	want := []expression.Cell{expression.LinearTerm(2, x), expression.Constant(-2)}
	assert.Empty(t, cmp.Diff(want, cells, cellsEqual))
	assert.Len(t, lhs.Monomials(), 1)
}

// TestExpressionSymbol_Construction rejects bad inputs.
func TestExpressionSymbol_Construction(t *testing.T) {
	v := newVars(t, "x", "y")
	xy, err := expression.Product(1, expression.VariableOf(v[0]), expression.VariableOf(v[1]))
	require.NoError(t, err)

	_, err = expression.NewLinearSymbol("s", expression.Sum(xy))
	assert.ErrorIs(t, err, expression.ErrDegreeExceeded)
	_, err = expression.NewLinearSymbol("", expression.Sum())
	assert.ErrorIs(t, err, expression.ErrEmptyName)
	_, err = expression.NewQuadraticSymbol("q", nil)
	assert.ErrorIs(t, err, expression.ErrNilPolynomial)

	q, err := expression.NewQuadraticSymbol("q", expression.Sum(xy), expression.WithDisplayName("Q"))
	require.NoError(t, err)
	assert.Equal(t, "Q", q.DisplayName())
	assert.Equal(t, expression.Quadratic, q.Category())
	assert.Equal(t, "q = 1 * x * y", q.String())
}

// TestExpressionSymbol_Flush recomputes cells after the polynomial changes.
func TestExpressionSymbol_Flush(t *testing.T) {
	v := newVars(t, "x", "y")
	x, y := v[0], v[1]
	p := expression.Sum(expression.Term(1, x))
	s, err := expression.NewLinearSymbol("s", p, expression.WithSymbolRange(expression.NewRange(0, 10)))
	require.NoError(t, err)
	assert.True(t, s.Cached())

	c1, err := s.Cells()
	require.NoError(t, err)
	require.Len(t, c1, 1)

	p.Add(expression.Term(1, y))
	c2, err := s.Cells()
	require.NoError(t, err)
	assert.Len(t, c2, 1)

	s.Flush(false)
	c3, err := s.Cells()
	require.NoError(t, err)
	assert.Len(t, c3, 2)
	assert.Equal(t, expression.NewRange(0, 10), s.Range())
}

// TestExpressionSymbol_NestedFlush extends an inner symbol and expects every
// expansion built over it to follow once the inner symbol is flushed.
func TestExpressionSymbol_NestedFlush(t *testing.T) {
	v := newVars(t, "x", "y")
	x, y := v[0], v[1]

	inner, err := expression.NewLinearSymbol("inner", expression.Sum(expression.Term(1, y)))
	require.NoError(t, err)
	iu, err := expression.LinearDerived(inner)
	require.NoError(t, err)
	outer, err := expression.NewLinearSymbol("outer", expression.Sum(expression.TermOf(2, iu)))
	require.NoError(t, err)
	ou, err := expression.LinearDerived(outer)
	require.NoError(t, err)
	m := expression.TermOf(3, ou)

	got, err := outer.Cells()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]expression.Cell{expression.LinearTerm(2, y)}, got, cellsEqual))
	got, err = m.Cells()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]expression.Cell{expression.LinearTerm(6, y)}, got, cellsEqual))

	before := outer.Generation()
	inner.Polynomial().Add(expression.Term(1, x))
	inner.Flush(false)
	assert.Greater(t, outer.Generation(), before)

	// outer was never flushed itself.
	got, err = m.Cells()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]expression.Cell{expression.LinearTerm(6, y), expression.LinearTerm(6, x)}, got, cellsEqual))

	outer.Flush(false)
	got, err = outer.Cells()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]expression.Cell{expression.LinearTerm(2, y), expression.LinearTerm(2, x)}, got, cellsEqual))

	// Unchanged symbols keep the expansion across a plain flush.
	c1, err := m.Cells()
	require.NoError(t, err)
	m.Flush(false)
	c2, err := m.Cells()
	require.NoError(t, err)
	assert.Same(t, &c1[0], &c2[0])
}

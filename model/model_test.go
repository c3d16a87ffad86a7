package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/model"
	"github.com/katalvlaran/lvopt/variable"
)

func vars(t *testing.T, typ variable.Type, names ...string) []*variable.Item {
	t.Helper()
	f := variable.NewFactory()
	out := make([]*variable.Item, len(names))
	for i, n := range names {
		it, err := f.New(n, typ)
		require.NoError(t, err)
		out[i] = it
	}

	return out
}

// TestModel_Options rejects unsupported categories.
func TestModel_Options(t *testing.T) {
	_, err := model.New(model.WithCategory(expression.Standard))
	assert.ErrorIs(t, err, model.ErrInvalidOption)

	m, err := model.New(model.WithName("lp"), model.WithDirection(model.Maximize), model.WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, "lp", m.Name())
	assert.Equal(t, model.Maximize, m.Direction())
	assert.Equal(t, expression.Linear, m.Category())
}

// TestModel_ConstraintGroups checks windows, lookups and contiguity.
func TestModel_ConstraintGroups(t *testing.T) {
	v := vars(t, variable.UContinuous, "a", "b", "c")
	m, err := model.New()
	require.NoError(t, err)

	add := func(name, group string) error {
		var opts []model.ConstraintOption
		if group != "" {
			opts = append(opts, model.WithGroup(group))
		}

		return m.AddConstraint(model.LeqConst(expression.Sum(expression.Term(1, v[0])), 1), name, opts...)
	}
	require.NoError(t, add("free0", ""))
	require.NoError(t, add("g0", "g"))
	require.NoError(t, add("g1", "g"))
	require.NoError(t, add("h0", "h"))
	require.NoError(t, add("free1", ""))

	start, end, ok := m.IndicesOfConstraintGroup("g")
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	rows, err := m.ConstraintsOfGroup("h")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "h0", rows[0].Name)
	assert.Equal(t, 3, rows[0].Index())

	_, _, ok = m.IndicesOfConstraintGroup("missing")
	assert.False(t, ok)
	_, err = m.ConstraintsOfGroup("missing")
	assert.ErrorIs(t, err, model.ErrUnknownConstraintGroup)

	assert.ErrorIs(t, add("g2", "g"), model.ErrNonContiguousGroup)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, []string{"g", "h"}, m.Groups())
}

// TestModel_Tokens covers automatic and manual variable registration.
func TestModel_Tokens(t *testing.T) {
	v := vars(t, variable.Binary, "x", "y")
	x, y := v[0], v[1]

	auto, err := model.New()
	require.NoError(t, err)
	require.NoError(t, auto.Minimize(expression.Sum(expression.Term(1, y), expression.Term(2, x)), "cost"))
	assert.Equal(t, []*variable.Item{y, x}, auto.Tokens().Items())
	assert.ErrorIs(t, auto.AddVariable(x), model.ErrDuplicateVariable)

	manual, err := model.New(model.WithManualTokens())
	require.NoError(t, err)
	require.NoError(t, manual.AddVariable(x))
	err = manual.AddConstraint(model.GeqConst(expression.Sum(expression.Term(1, y)), 0), "c")
	assert.ErrorIs(t, err, model.ErrUnknownVariable)
	assert.Equal(t, 0, manual.Len())
}

// TestModel_CategoryLimit rejects quadratic input in a linear model.
func TestModel_CategoryLimit(t *testing.T) {
	v := vars(t, variable.Continuous, "x", "y")
	xy, err := expression.Product(1, expression.VariableOf(v[0]), expression.VariableOf(v[1]))
	require.NoError(t, err)

	lin, err := model.New()
	require.NoError(t, err)
	assert.ErrorIs(t, lin.Minimize(expression.Sum(xy), "q"), model.ErrCategoryMismatch)
	assert.ErrorIs(t, lin.AddConstraint(model.EqConst(expression.Sum(xy), 1), "q"), model.ErrCategoryMismatch)

	sym, err := expression.NewQuadraticSymbol("q", expression.Sum(xy))
	require.NoError(t, err)
	assert.ErrorIs(t, lin.AddSymbol(sym), model.ErrCategoryMismatch)

	quad, err := model.New(model.WithCategory(expression.Quadratic))
	require.NoError(t, err)
	require.NoError(t, quad.AddSymbol(sym))
	assert.ErrorIs(t, quad.AddSymbol(sym), model.ErrDuplicateSymbol)
	got, ok := quad.Symbol("q")
	require.True(t, ok)
	assert.Same(t, sym, got)
	require.NoError(t, quad.Minimize(expression.Sum(xy), "q"))

	_, err = quad.Triad()
	assert.ErrorIs(t, err, model.ErrCategoryMismatch)
}

// TestModel_Triad exports rows, bounds and the combined objective.
func TestModel_Triad(t *testing.T) {
	v := vars(t, variable.UContinuous, "x", "y")
	x, y := v[0], v[1]
	require.NoError(t, y.SetBounds(0, 4))

	m, err := model.New(model.WithName("demo"))
	require.NoError(t, err)
	// x + 2y - 1 <= y + 3  ->  x + y <= 4
	lhs := expression.NewPolynomial(-1, expression.Term(1, x), expression.Term(2, y))
	rhs := expression.NewPolynomial(3, expression.Term(1, y))
	require.NoError(t, m.AddConstraint(model.Leq(lhs, rhs), "cap"))
	require.NoError(t, m.AddConstraint(model.GeqConst(expression.Sum(expression.Term(1, x)), 1), "floor"))
	require.NoError(t, m.Minimize(expression.NewPolynomial(5, expression.Term(3, x)), "cost"))
	require.NoError(t, m.Maximize(expression.Sum(expression.Term(1, y)), "gain"))

	tr, err := m.Triad()
	require.NoError(t, err)
	assert.Equal(t, "demo", tr.Name)
	require.Len(t, tr.Rows, 2)
	assert.Equal(t, []model.Entry{{Column: 0, Value: 1}, {Column: 1, Value: 1}}, tr.Rows[0].Entries)
	assert.Equal(t, 4.0, tr.Rows[0].RHS)
	assert.Equal(t, model.LessEqual, tr.Rows[0].Sign)
	assert.Equal(t, model.GreaterEqual, tr.Rows[1].Sign)
	assert.Equal(t, []float64{1, 0}, tr.Dense(1))

	assert.Equal(t, []float64{3, -1}, tr.DenseObjective())
	assert.Equal(t, 5.0, tr.ObjectiveConstant)
	assert.Equal(t, []float64{0, 0}, tr.Lower)
	assert.Equal(t, 4.0, tr.Upper[1])
	assert.Len(t, m.Objectives(), 2)
}

// TestModel_Logging emits debug records for build steps.
func TestModel_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m, err := model.New(model.WithLogger(zap.New(core)))
	require.NoError(t, err)

	x := vars(t, variable.Binary, "x")[0]
	require.NoError(t, m.AddConstraint(model.LeqConst(expression.Sum(expression.Term(1, x)), 1), "c", model.WithGroup("g")))
	require.NoError(t, m.Flush(true))

	assert.Equal(t, 1, logs.FilterMessage("constraint group opened").Len())
	assert.Equal(t, 1, logs.FilterMessage("model flushed").Len())
}

// TestModel_Errors covers empty names and nil polynomials.
func TestModel_Errors(t *testing.T) {
	m, err := model.New()
	require.NoError(t, err)

	assert.ErrorIs(t, m.AddConstraint(model.LeqConst(expression.Sum(), 0), ""), model.ErrEmptyName)
	assert.ErrorIs(t, m.AddConstraint(model.Inequality{}, "c"), model.ErrNilPolynomial)
	assert.ErrorIs(t, m.Minimize(nil, "o"), model.ErrNilPolynomial)
	assert.ErrorIs(t, m.Maximize(expression.Sum(), ""), model.ErrEmptyName)
	assert.ErrorIs(t, m.AddSymbol(nil), expression.ErrNilSymbol)
	assert.ErrorIs(t, m.AddVariable(nil), variable.ErrNilItem)
}

// TestModel_FlushRegisters picks up variables that entered a symbol and a
// row after they were added.
func TestModel_FlushRegisters(t *testing.T) {
	v := vars(t, variable.UContinuous, "x", "y", "z")
	x, y, z := v[0], v[1], v[2]

	sym, err := expression.NewLinearSymbol("s", expression.Sum(expression.Term(1, y)))
	require.NoError(t, err)
	su, err := expression.LinearDerived(sym)
	require.NoError(t, err)
	lhs := expression.Sum(expression.TermOf(1, su))

	m, err := model.New()
	require.NoError(t, err)
	require.NoError(t, m.AddSymbol(sym))
	require.NoError(t, m.AddConstraint(model.LeqConst(lhs, 4), "row"))
	require.NoError(t, m.Minimize(expression.Sum(expression.TermOf(1, su)), "cost"))
	assert.Equal(t, []*variable.Item{y}, m.Tokens().Items())

	sym.Polynomial().Add(expression.Term(2, x))
	lhs.Add(expression.Term(1, z))
	require.NoError(t, m.Flush(false))
	assert.Equal(t, []*variable.Item{y, x, z}, m.Tokens().Items())

	tr, err := m.Triad()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1}, tr.Dense(0))
	assert.Equal(t, []float64{1, 2, 0}, tr.DenseObjective())

	manual, err := model.New(model.WithManualTokens())
	require.NoError(t, err)
	require.NoError(t, manual.AddVariable(y))
	other, err := expression.NewLinearSymbol("o", expression.Sum(expression.Term(1, y)))
	require.NoError(t, err)
	require.NoError(t, manual.AddSymbol(other))
	other.Polynomial().Add(expression.Term(1, x))
	assert.ErrorIs(t, manual.Flush(false), model.ErrUnknownVariable)
}

// expanding is a self-caching derived symbol that counts expansions.
type expanding struct {
	item  *variable.Item
	calls int
}

func (s *expanding) Name() string                  { return "expanding" }
func (s *expanding) DisplayName() string           { return "expanding" }
func (s *expanding) Category() expression.Category { return expression.Linear }
func (s *expanding) Range() expression.Range       { return expression.NewRange(0, 1) }
func (s *expanding) Discrete() bool                { return true }
func (s *expanding) Cached() bool                  { return true }
func (s *expanding) Generation() uint64            { return 0 }

func (s *expanding) Cells() ([]expression.Cell, error) {
	s.calls++

	return []expression.Cell{expression.LinearTerm(1, s.item)}, nil
}

func (s *expanding) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return expression.Sum(expression.Term(1, s.item)).Evaluate(tokens, zeroIfMissing)
}

func (s *expanding) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	return expression.Sum(expression.Term(1, s.item)).EvaluateResults(results, tokens, zeroIfMissing)
}

// TestModel_ExportKeepsCaches exports rows and objectives from the monomial
// caches: repeated exports and plain flushes never expand the symbol again.
func TestModel_ExportKeepsCaches(t *testing.T) {
	x := vars(t, variable.Binary, "x")[0]
	sym := &expanding{item: x}
	su, err := expression.LinearDerived(sym)
	require.NoError(t, err)

	m, err := model.New()
	require.NoError(t, err)
	require.NoError(t, m.AddConstraint(model.LeqConst(expression.Sum(expression.TermOf(3, su)), 2), "row"))
	require.NoError(t, m.Minimize(expression.Sum(expression.TermOf(5, su)), "cost"))
	assert.Equal(t, 2, sym.calls)

	for i := 0; i < 2; i++ {
		tr, err := m.Triad()
		require.NoError(t, err)
		assert.Equal(t, []float64{3}, tr.Dense(0))
		assert.Equal(t, []float64{5}, tr.DenseObjective())
	}
	require.NoError(t, m.Flush(false))
	_, err = m.Triad()
	require.NoError(t, err)
	assert.Equal(t, 2, sym.calls)

	require.NoError(t, m.Flush(true))
	assert.Equal(t, 4, sym.calls)

	var unset *model.Model
	_, _, ok := unset.IndicesOfConstraintGroup("g")
	assert.False(t, ok)
}

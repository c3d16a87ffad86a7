package model

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// Entry is one non-zero coefficient of a row.
type Entry struct {
	Column int
	Value  float64
}

// Row is a linear constraint Σ entries (sign) RHS.
type Row struct {
	Name    string
	Entries []Entry
	Sign    Sign
	RHS     float64
}

// Triad is the row-wise sparse export of a linear model. Columns follow the
// token order of the model, so a solver's primal vector can be fed straight
// back with TokenList.SetResults.
type Triad struct {
	Name      string
	Direction Direction
	Variables []*variable.Item
	Lower     []float64
	Upper     []float64
	Discrete  []bool
	Rows      []Row

	Objective         []Entry
	ObjectiveConstant float64
}

// Triad exports the model. Every term must be linear.
func (m *Model) Triad() (*Triad, error) {
	items := m.tokens.Items()
	t := &Triad{
		Name:      m.opts.Name,
		Direction: m.opts.Direction,
		Variables: items,
		Lower:     make([]float64, len(items)),
		Upper:     make([]float64, len(items)),
		Discrete:  make([]bool, len(items)),
		Rows:      make([]Row, 0, len(m.constraints)),
	}
	for i, it := range items {
		t.Lower[i], t.Upper[i], t.Discrete[i] = it.LowerBound(), it.UpperBound(), it.Discrete()
	}

	// 1. Rows: lhs - rhs (sign) 0, constant moved to the right
	for _, c := range m.constraints {
		cells, err := c.Inequality.Cells()
		if err != nil {
			return nil, fmt.Errorf("export constraint %q: %w", c.Name, err)
		}
		entries, constant, err := m.linearEntries(cells)
		if err != nil {
			return nil, fmt.Errorf("export constraint %q: %w", c.Name, err)
		}
		t.Rows = append(t.Rows, Row{Name: c.Name, Entries: entries, Sign: c.Inequality.Sign, RHS: -constant})
	}

	// 2. Objective
	cells, err := m.ObjectiveCells()
	if err != nil {
		return nil, fmt.Errorf("export objective: %w", err)
	}
	if t.Objective, t.ObjectiveConstant, err = m.linearEntries(cells); err != nil {
		return nil, fmt.Errorf("export objective: %w", err)
	}
	m.opts.Logger.Debug("triad exported",
		zap.String("model", m.opts.Name),
		zap.Int("columns", len(items)),
		zap.Int("rows", len(t.Rows)))

	return t, nil
}

func (m *Model) linearEntries(cells []expression.Cell) ([]Entry, float64, error) {
	var (
		entries  = make([]Entry, 0, len(cells))
		constant float64
	)
	for _, c := range cells {
		if c.IsConstant() {
			constant += c.Coefficient()

			continue
		}
		if c.IsPair() {
			return nil, 0, fmt.Errorf("quadratic term %s: %w", c, ErrCategoryMismatch)
		}
		it, _ := c.Variables()
		col, ok := m.tokens.IndexOf(it)
		if !ok {
			return nil, 0, fmt.Errorf("%s: %w", it.Name(), ErrUnknownVariable)
		}
		entries = append(entries, Entry{Column: col, Value: c.Coefficient()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Column < entries[j].Column })

	return entries, constant, nil
}

// Dense returns row i as a dense coefficient vector.
func (t *Triad) Dense(i int) []float64 {
	out := make([]float64, len(t.Variables))
	for _, e := range t.Rows[i].Entries {
		out[e.Column] += e.Value
	}

	return out
}

// DenseObjective returns the objective as a dense coefficient vector.
func (t *Triad) DenseObjective() []float64 {
	out := make([]float64, len(t.Variables))
	for _, e := range t.Objective {
		out[e.Column] += e.Value
	}

	return out
}

package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// Objective is one named sub-objective. Sub-objectives are summed into the
// model objective; a sub-objective whose direction differs from the model's
// enters negated.
type Objective struct {
	Name       string
	Direction  Direction
	Polynomial *expression.Polynomial
}

type window struct {
	start, end int
}

// Model collects variables, derived symbols, constraints and objectives and
// exports them to a solver. It is built by one goroutine; once built it may
// be read concurrently.
type Model struct {
	opts Options

	tokens      *variable.TokenList
	symbols     []expression.DerivedSymbol
	symbolIndex map[string]int
	constraints []*Constraint
	groups      map[string]window
	lastGroup   string
	objectives  []Objective
}

// New returns an empty model.
func New(opts ...Option) (*Model, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Category != expression.Linear && o.Category != expression.Quadratic {
		return nil, fmt.Errorf("%w: category %s", ErrInvalidOption, o.Category)
	}
	if o.Direction != Minimize && o.Direction != Maximize {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidOption, o.Direction)
	}

	return &Model{
		opts:        o,
		tokens:      variable.NewTokenList(),
		symbolIndex: make(map[string]int),
		groups:      make(map[string]window),
	}, nil
}

// Name returns the model label.
func (m *Model) Name() string { return m.opts.Name }

// Category returns the category limit.
func (m *Model) Category() expression.Category { return m.opts.Category }

// Direction returns the objective direction.
func (m *Model) Direction() Direction { return m.opts.Direction }

// Tokens returns the variable registry. Solvers write results into it.
func (m *Model) Tokens() *variable.TokenList { return m.tokens }

// AddVariable registers variables in order.
func (m *Model) AddVariable(items ...*variable.Item) error {
	for _, it := range items {
		if it == nil {
			return fmt.Errorf("add variable: %w", variable.ErrNilItem)
		}
		if m.tokens.Contains(it) {
			return fmt.Errorf("add variable %s: %w", it.Name(), ErrDuplicateVariable)
		}
		if err := m.tokens.Add(it); err != nil {
			return fmt.Errorf("add variable %s: %w", it.Name(), err)
		}
	}
	m.opts.Logger.Debug("variables added", zap.String("model", m.opts.Name), zap.Int("count", len(items)), zap.Int("total", m.tokens.Len()))

	return nil
}

// AddSymbol registers a derived symbol under its name.
func (m *Model) AddSymbol(s expression.DerivedSymbol) error {
	if s == nil {
		return fmt.Errorf("add symbol: %w", expression.ErrNilSymbol)
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("add symbol: %w", ErrEmptyName)
	}
	if _, ok := m.symbolIndex[name]; ok {
		return fmt.Errorf("add symbol %q: %w", name, ErrDuplicateSymbol)
	}
	if s.Category() > m.opts.Category {
		return fmt.Errorf("add symbol %q (%s) to %s model: %w", name, s.Category(), m.opts.Category, ErrCategoryMismatch)
	}
	cells, err := s.Cells()
	if err != nil {
		return fmt.Errorf("add symbol %q: %w", name, err)
	}
	if err = m.register(cells); err != nil {
		return fmt.Errorf("add symbol %q: %w", name, err)
	}
	m.symbolIndex[name] = len(m.symbols)
	m.symbols = append(m.symbols, s)
	m.opts.Logger.Debug("symbol added", zap.String("model", m.opts.Name), zap.String("symbol", name), zap.Stringer("category", s.Category()))

	return nil
}

// Symbol looks a derived symbol up by name.
func (m *Model) Symbol(name string) (expression.DerivedSymbol, bool) {
	i, ok := m.symbolIndex[name]
	if !ok {
		return nil, false
	}

	return m.symbols[i], true
}

// Symbols returns the derived symbols in registration order.
func (m *Model) Symbols() []expression.DerivedSymbol {
	out := make([]expression.DerivedSymbol, len(m.symbols))
	copy(out, m.symbols)

	return out
}

// AddConstraint appends a named row. With WithGroup the row joins a
// constraint group; the rows of a group must be contiguous.
func (m *Model) AddConstraint(in Inequality, name string, opts ...ConstraintOption) error {
	var co constraintOptions
	for _, opt := range opts {
		opt(&co)
	}
	// 1. Validate the row
	if name == "" {
		return fmt.Errorf("add constraint: %w", ErrEmptyName)
	}
	if in.LHS == nil || in.RHS == nil {
		return fmt.Errorf("add constraint %q: %w", name, ErrNilPolynomial)
	}
	if c := in.Category(); c > m.opts.Category {
		return fmt.Errorf("add constraint %q (%s) to %s model: %w", name, c, m.opts.Category, ErrCategoryMismatch)
	}
	// 2. A group may only grow at the tail
	if co.group != "" {
		if _, seen := m.groups[co.group]; seen && m.lastGroup != co.group {
			return fmt.Errorf("add constraint %q to group %q: %w", name, co.group, ErrNonContiguousGroup)
		}
	}
	// 3. Register variables
	cells, err := in.Cells()
	if err != nil {
		return fmt.Errorf("add constraint %q: %w", name, err)
	}
	if err = m.register(cells); err != nil {
		return fmt.Errorf("add constraint %q: %w", name, err)
	}
	// 4. Append and extend the group window
	row := len(m.constraints)
	m.constraints = append(m.constraints, &Constraint{Name: name, Group: co.group, Inequality: in, index: row})
	m.lastGroup = co.group
	if co.group != "" {
		w, seen := m.groups[co.group]
		if !seen {
			w.start = row
			m.opts.Logger.Debug("constraint group opened", zap.String("model", m.opts.Name), zap.String("group", co.group), zap.Int("row", row))
		}
		w.end = row + 1
		m.groups[co.group] = w
	}

	return nil
}

// Minimize adds p as a minimized sub-objective.
func (m *Model) Minimize(p *expression.Polynomial, name string) error {
	return m.addObjective(p, name, Minimize)
}

// Maximize adds p as a maximized sub-objective.
func (m *Model) Maximize(p *expression.Polynomial, name string) error {
	return m.addObjective(p, name, Maximize)
}

func (m *Model) addObjective(p *expression.Polynomial, name string, d Direction) error {
	if name == "" {
		return fmt.Errorf("add objective: %w", ErrEmptyName)
	}
	if p == nil {
		return fmt.Errorf("add objective %q: %w", name, ErrNilPolynomial)
	}
	if c := p.Category(); c > m.opts.Category {
		return fmt.Errorf("add objective %q (%s) to %s model: %w", name, c, m.opts.Category, ErrCategoryMismatch)
	}
	cells, err := p.Cells()
	if err != nil {
		return fmt.Errorf("add objective %q: %w", name, err)
	}
	if err = m.register(cells); err != nil {
		return fmt.Errorf("add objective %q: %w", name, err)
	}
	m.objectives = append(m.objectives, Objective{Name: name, Direction: d, Polynomial: p})
	m.opts.Logger.Debug("objective added", zap.String("model", m.opts.Name), zap.String("objective", name), zap.Stringer("direction", d))

	return nil
}

// Objectives returns the sub-objectives in insertion order.
func (m *Model) Objectives() []Objective {
	out := make([]Objective, len(m.objectives))
	copy(out, m.objectives)

	return out
}

// ObjectiveCells aggregates the sub-objectives in the model direction,
// reading their cell caches in place.
func (m *Model) ObjectiveCells() ([]expression.Cell, error) {
	parts := make([]expression.Scaled, len(m.objectives))
	for i, o := range m.objectives {
		parts[i] = expression.Scaled{Factor: 1, Polynomial: o.Polynomial}
		if o.Direction != m.opts.Direction {
			parts[i].Factor = -1
		}
	}

	return expression.Combine(parts...)
}

// Objective returns the combined objective in the model direction as a new
// polynomial over copies of the sub-objective monomials.
func (m *Model) Objective() *expression.Polynomial {
	ret := expression.Sum()
	for _, o := range m.objectives {
		if o.Direction == m.opts.Direction {
			ret.AddPolynomial(o.Polynomial)
		} else {
			ret.SubPolynomial(o.Polynomial)
		}
	}

	return ret
}

// Constraints returns the rows in order. The slice is a copy.
func (m *Model) Constraints() []*Constraint {
	out := make([]*Constraint, len(m.constraints))
	copy(out, m.constraints)

	return out
}

// Len returns the number of rows.
func (m *Model) Len() int { return len(m.constraints) }

// Constraint returns row i.
func (m *Model) Constraint(i int) (*Constraint, bool) {
	if i < 0 || i >= len(m.constraints) {
		return nil, false
	}

	return m.constraints[i], true
}

// IndicesOfConstraintGroup returns the half-open row window [start, end) of
// a group. A nil model has no groups.
func (m *Model) IndicesOfConstraintGroup(name string) (start, end int, ok bool) {
	if m == nil {
		return 0, 0, false
	}
	w, ok := m.groups[name]

	return w.start, w.end, ok
}

// ConstraintsOfGroup returns the rows of a group in order.
func (m *Model) ConstraintsOfGroup(name string) ([]*Constraint, error) {
	w, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownConstraintGroup)
	}
	out := make([]*Constraint, w.end-w.start)
	copy(out, m.constraints[w.start:w.end])

	return out, nil
}

// Groups returns the group names in row order.
func (m *Model) Groups() []string {
	var out []string
	seen := make(map[string]bool, len(m.groups))
	for _, c := range m.constraints {
		if c.Group != "" && !seen[c.Group] {
			seen[c.Group] = true
			out = append(out, c.Group)
		}
	}

	return out
}

// Flush flushes every derived symbol that supports flushing and every
// polynomial held by the model, then registers the variables that entered
// them since they were added. In manual-token mode a new variable fails
// with ErrUnknownVariable; the caches are flushed either way.
func (m *Model) Flush(force bool) error {
	// 1. Drop caches
	for _, s := range m.symbols {
		if f, ok := s.(interface{ Flush(bool) }); ok {
			f.Flush(force)
		}
	}
	for _, c := range m.constraints {
		c.Inequality.Flush(force)
	}
	for _, o := range m.objectives {
		o.Polynomial.Flush(force)
	}

	// 2. Register new variables
	before := m.tokens.Len()
	for _, s := range m.symbols {
		cells, err := s.Cells()
		if err != nil {
			return fmt.Errorf("flush symbol %q: %w", s.Name(), err)
		}
		if err = m.register(cells); err != nil {
			return fmt.Errorf("flush symbol %q: %w", s.Name(), err)
		}
	}
	for _, c := range m.constraints {
		cells, err := c.Inequality.Cells()
		if err != nil {
			return fmt.Errorf("flush constraint %q: %w", c.Name, err)
		}
		if err = m.register(cells); err != nil {
			return fmt.Errorf("flush constraint %q: %w", c.Name, err)
		}
	}
	cells, err := m.ObjectiveCells()
	if err != nil {
		return fmt.Errorf("flush objective: %w", err)
	}
	if err = m.register(cells); err != nil {
		return fmt.Errorf("flush objective: %w", err)
	}
	m.opts.Logger.Debug("model flushed",
		zap.String("model", m.opts.Name),
		zap.Bool("force", force),
		zap.Int("registered", m.tokens.Len()-before))

	return nil
}

// register adds unknown variables of cells to the token list, or rejects
// them in manual-token mode.
func (m *Model) register(cells []expression.Cell) error {
	for _, c := range cells {
		if c.IsConstant() {
			continue
		}
		first, second := c.Variables()
		for _, it := range [2]*variable.Item{first, second} {
			if it == nil || m.tokens.Contains(it) {
				continue
			}
			if m.opts.ManualTokens {
				return fmt.Errorf("%s: %w", it.Name(), ErrUnknownVariable)
			}
			if err := m.tokens.Add(it); err != nil {
				return err
			}
		}
	}

	return nil
}

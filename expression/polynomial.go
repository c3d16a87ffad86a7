package expression

import (
	"math"
	"strings"

	"github.com/katalvlaran/lvopt/variable"
)

// Polynomial is a sum of monomials plus a constant. It is the unit of
// submission to a model: objectives and both sides of inequalities.
type Polynomial struct {
	monomials []*Monomial
	constant  float64
}

// NewPolynomial returns constant + Σ monomials. Nil monomials are skipped.
func NewPolynomial(constant float64, monomials ...*Monomial) *Polynomial {
	p := &Polynomial{constant: constant}
	p.Add(monomials...)

	return p
}

// Sum returns Σ monomials.
func Sum(monomials ...*Monomial) *Polynomial { return NewPolynomial(0, monomials...) }

// Add appends monomials in place and returns p.
func (p *Polynomial) Add(monomials ...*Monomial) *Polynomial {
	for _, m := range monomials {
		if m != nil {
			p.monomials = append(p.monomials, m)
		}
	}

	return p
}

// AddConstant adds v to the constant in place and returns p.
func (p *Polynomial) AddConstant(v float64) *Polynomial {
	p.constant += v

	return p
}

// AddPolynomial appends copies of q's monomials and its constant.
func (p *Polynomial) AddPolynomial(q *Polynomial) *Polynomial {
	if q == nil {
		return p
	}
	for _, m := range q.monomials {
		p.monomials = append(p.monomials, m.Copy())
	}
	p.constant += q.constant

	return p
}

// SubPolynomial appends negated copies of q's monomials and subtracts its
// constant.
func (p *Polynomial) SubPolynomial(q *Polynomial) *Polynomial {
	if q == nil {
		return p
	}
	for _, m := range q.monomials {
		p.monomials = append(p.monomials, m.Negate())
	}
	p.constant -= q.constant

	return p
}

// Monomials returns the terms in insertion order.
func (p *Polynomial) Monomials() []*Monomial { return p.monomials }

// Constant returns the constant part.
func (p *Polynomial) Constant() float64 { return p.constant }

// Category combines the categories of every monomial.
func (p *Polynomial) Category() Category {
	ret := Linear
	for _, m := range p.monomials {
		ret = ret.Combine(m.Category())
	}

	return ret
}

// Discrete reports whether every term and the constant are integral.
func (p *Polynomial) Discrete() bool {
	if p.constant != math.Trunc(p.constant) {
		return false
	}
	for _, m := range p.monomials {
		if !m.Discrete() {
			return false
		}
	}

	return true
}

// Range is the sum of the monomial ranges shifted by the constant.
func (p *Polynomial) Range() Range {
	ret := Point(p.constant)
	for _, m := range p.monomials {
		ret = ret.Add(m.Range())
	}

	return ret
}

// Cells aggregates the monomial cells: terms over the same canonical
// variables are merged in first-seen order, constants are folded into a
// single trailing cell, and zero coefficients are dropped. The returned
// slice is freshly allocated.
func (p *Polynomial) Cells() ([]Cell, error) {
	return Combine(Scaled{Factor: 1, Polynomial: p})
}

// Scaled is one factor × polynomial operand of Combine.
type Scaled struct {
	Factor     float64
	Polynomial *Polynomial
}

// Combine aggregates Σ factor × polynomial the way Polynomial.Cells does,
// reading every monomial's cached cells in place. Nil polynomials are
// skipped.
func Combine(parts ...Scaled) ([]Cell, error) {
	var (
		out      []Cell
		position = make(map[CellKey]int)
		constant float64
	)
	for _, part := range parts {
		p := part.Polynomial
		if p == nil {
			continue
		}
		constant += part.Factor * p.constant
		for _, m := range p.monomials {
			cells, err := m.Cells()
			if err != nil {
				return nil, err
			}
			for _, c := range cells {
				if part.Factor != 1 {
					c = c.Scale(part.Factor)
				}
				if c.IsConstant() {
					constant += c.Coefficient()

					continue
				}
				key := c.Key()
				i, seen := position[key]
				if !seen {
					position[key] = len(out)
					out = append(out, c)

					continue
				}
				merged, err := out[i].Add(c)
				if err != nil {
					return nil, err
				}
				out[i] = merged
			}
		}
	}

	ret := out[:0]
	for _, c := range out {
		if c.Coefficient() != 0 {
			ret = append(ret, c)
		}
	}
	if constant != 0 {
		ret = append(ret, Constant(constant))
	}

	return ret, nil
}

// generation sums the symbol generations of every monomial.
func (p *Polynomial) generation() uint64 {
	var ret uint64
	for _, m := range p.monomials {
		ret += m.symbol.Generation()
	}

	return ret
}

// Flush flushes every monomial.
func (p *Polynomial) Flush(force bool) {
	for _, m := range p.monomials {
		m.Flush(force)
	}
}

// Copy returns a polynomial over copies of the monomials.
func (p *Polynomial) Copy() *Polynomial {
	return NewPolynomial(0).AddPolynomial(p)
}

// Scale returns k × p.
func (p *Polynomial) Scale(k float64) *Polynomial {
	ret := &Polynomial{constant: p.constant * k, monomials: make([]*Monomial, 0, len(p.monomials))}
	for _, m := range p.monomials {
		ret.monomials = append(ret.monomials, m.Scale(k))
	}

	return ret
}

// Negate returns -p.
func (p *Polynomial) Negate() *Polynomial { return p.Scale(-1) }

// Evaluate sums the monomial values and the constant.
func (p *Polynomial) Evaluate(tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	ret := p.constant
	for _, m := range p.monomials {
		v, ok := m.Evaluate(tokens, zeroIfMissing)
		if !ok {
			return 0, false
		}
		ret += v
	}

	return ret, true
}

// EvaluateResults sums the monomial values read from results.
func (p *Polynomial) EvaluateResults(results []float64, tokens variable.Lookup, zeroIfMissing bool) (float64, bool) {
	ret := p.constant
	for _, m := range p.monomials {
		v, ok := m.EvaluateResults(results, tokens, zeroIfMissing)
		if !ok {
			return 0, false
		}
		ret += v
	}

	return ret, true
}

// String renders "m1 + m2 + k"; an empty polynomial renders its constant.
func (p *Polynomial) String() string {
	parts := make([]string, 0, len(p.monomials)+1)
	for _, m := range p.monomials {
		parts = append(parts, m.String())
	}
	if p.constant != 0 || len(parts) == 0 {
		parts = append(parts, formatFloat(p.constant))
	}

	return strings.Join(parts, " + ")
}

package model

import (
	"fmt"

	"github.com/katalvlaran/lvopt/expression"
)

// Inequality relates two polynomials.
type Inequality struct {
	LHS  *expression.Polynomial
	RHS  *expression.Polynomial
	Sign Sign
}

// Leq returns lhs <= rhs. A nil side reads as zero.
func Leq(lhs, rhs *expression.Polynomial) Inequality {
	return Inequality{LHS: orZero(lhs), RHS: orZero(rhs), Sign: LessEqual}
}

// Geq returns lhs >= rhs.
func Geq(lhs, rhs *expression.Polynomial) Inequality {
	return Inequality{LHS: orZero(lhs), RHS: orZero(rhs), Sign: GreaterEqual}
}

// Eq returns lhs = rhs.
func Eq(lhs, rhs *expression.Polynomial) Inequality {
	return Inequality{LHS: orZero(lhs), RHS: orZero(rhs), Sign: Equal}
}

// LeqConst returns lhs <= v.
func LeqConst(lhs *expression.Polynomial, v float64) Inequality {
	return Leq(lhs, expression.NewPolynomial(v))
}

// GeqConst returns lhs >= v.
func GeqConst(lhs *expression.Polynomial, v float64) Inequality {
	return Geq(lhs, expression.NewPolynomial(v))
}

// EqConst returns lhs = v.
func EqConst(lhs *expression.Polynomial, v float64) Inequality {
	return Eq(lhs, expression.NewPolynomial(v))
}

func orZero(p *expression.Polynomial) *expression.Polynomial {
	if p == nil {
		return expression.Sum()
	}

	return p
}

// Category combines both sides.
func (in Inequality) Category() expression.Category {
	return in.LHS.Category().Combine(in.RHS.Category())
}

// Cells returns the aggregated cells of lhs - rhs, read from the cell
// caches of both sides.
func (in Inequality) Cells() ([]expression.Cell, error) {
	if in.LHS == nil || in.RHS == nil {
		return nil, ErrNilPolynomial
	}

	return expression.Combine(
		expression.Scaled{Factor: 1, Polynomial: in.LHS},
		expression.Scaled{Factor: -1, Polynomial: in.RHS},
	)
}

// Flush flushes both sides.
func (in Inequality) Flush(force bool) {
	in.LHS.Flush(force)
	in.RHS.Flush(force)
}

// String renders "lhs <= rhs".
func (in Inequality) String() string {
	return fmt.Sprintf("%s %s %s", in.LHS, in.Sign, in.RHS)
}

// Constraint is a named row of the model.
type Constraint struct {
	Name       string
	Group      string
	Inequality Inequality
	index      int
}

// Index returns the row position of the constraint.
func (c *Constraint) Index() int { return c.index }

// Package expression is the polynomial-building vocabulary of lvopt.
//
// The algebra is layered, leaves first:
//
//   - Category: the degree lattice Linear < Quadratic < Standard < Nonlinear.
//   - Cell: the canonical atom (constant, coefficient × variable, or
//     coefficient × ordered variable pair).
//   - Unit and Symbol: a decision variable or a derived symbol, and the
//     product of two such units.
//   - Monomial: coefficient × Symbol with memoized range and cells.
//   - Polynomial: a sum of monomials and a constant, aggregated into cells
//     for a solver.
//
// Every operation that would produce a term of degree three or more fails
// with ErrDegreeExceeded. Cells over different variables never merge
// silently: Add and Sub report ErrMismatchedVariable or
// ErrIncompatibleCellKinds.
//
// Example:
//
//	f := variable.NewFactory()
//	x, _ := f.New("x", variable.Continuous)
//	y, _ := f.New("y", variable.Continuous)
//	xy, _ := expression.Product(2, expression.VariableOf(x), expression.VariableOf(y))
//	p := expression.NewPolynomial(1, expression.Term(3, x), xy)
//	cells, _ := p.Cells() // [3 * x, 2 * x * y, 1]
//
// Values in this package are not safe for concurrent mutation. Build and
// flush from one goroutine; share only after the caches have settled.
package expression

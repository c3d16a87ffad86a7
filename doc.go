// Package lvopt is a symbolic-expression core for optimization models, with
// a shadow-price protocol for decomposition and a Gantt column generation
// consumer on top.
//
// What is inside?
//
//	variable/       decision variables, vector identifiers, token tables
//	expression/     categories, ranges, cells, symbols, monomials, polynomials,
//	                derived expression symbols
//	model/          inequalities, named constraint groups, sub-objectives,
//	                sparse row export (Triad)
//	solver/         LinearSolver boundary and Result
//	solver/simplex/ gonum-backed LP backend with row duals
//	shadowprice/    dual refresh by constraint group, extractors, pipelines
//	gantt/          bunches, compilation limits, DAG pricing, CG driver
//	cmd/ganttcg/    command-line front end
//
// Quick example (a linear row over two binaries):
//
//	f := variable.NewFactory()
//	x, _ := f.New("x", variable.Binary)
//	y, _ := f.New("y", variable.Binary)
//	p := expression.Sum(expression.Term(2, x), expression.Term(3, y)).AddConstant(1)
//	cells, _ := p.Cells() // [2 * x 3 * y 1]
//
// Monomials cache their range and cells; Flush(false) keeps what is backed
// by self-caching symbols, Flush(true) drops everything.
//
//	go get github.com/katalvlaran/lvopt
package lvopt

// Package variable defines decision variables and the token table a solver
// fills with results.
//
// A variable is identified by a Key: the identifier of the vector it was
// created in, and its index inside that vector. Keys are totally ordered
// (identifier first, index second); the expression package relies on that
// order to canonicalise two-variable cells.
//
// Identifiers are handed out by a Factory. There is no package-level
// generator, so two independently built models never share state:
//
//	f := variable.NewFactory()
//	x := f.NewVector("x", variable.Binary, 3) // x[0..2], one identifier
//	y := f.New("y", variable.UContinuous)
//
// A TokenList registers variables in a stable order and carries solver
// results for them. Lookups come in two flavours, mirroring how results are
// consumed downstream:
//
//	Find(item)    the token itself (and its optional result)
//	IndexOf(item) the position of the item in a results vector
package variable

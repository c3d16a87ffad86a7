package expression_test

import (
	"testing"

	"github.com/katalvlaran/lvopt/expression"
	"github.com/katalvlaran/lvopt/variable"
)

// BenchmarkPolynomial_Cells aggregates a dense quadratic form over 50
// variables (2500 products over 1275 distinct pairs).
func BenchmarkPolynomial_Cells(b *testing.B) {
	f := variable.NewFactory()
	xs, err := f.NewVector("x", variable.Continuous, 50)
	if err != nil {
		b.Fatal(err)
	}
	p := expression.Sum()
	for i := range xs {
		for j := range xs {
			m, err := expression.Product(1, expression.VariableOf(xs[i]), expression.VariableOf(xs[j]))
			if err != nil {
				b.Fatal(err)
			}
			p.Add(m)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Flush(true)
		if _, err := p.Cells(); err != nil {
			b.Fatal(err)
		}
	}
}

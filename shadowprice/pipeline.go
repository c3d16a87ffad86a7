package shadowprice

import "fmt"

// Pipeline is one model-building stage that contributes constraints to a
// model of type M and prices them afterwards.
type Pipeline[M any, K comparable, A any] interface {
	// Name identifies the stage in errors and logs.
	Name() string
	// Apply adds the stage's constraints to the model.
	Apply(m M) error
	// Extractor returns the stage's pricing function, or nil when the stage
	// does not contribute to reduced costs.
	Extractor() Extractor[K, A]
	// Refresh stores the stage's duals into prices.
	Refresh(prices *Map[K, A], m M, duals []float64) error
}

// PipelineList runs a sequence of stages over one model.
type PipelineList[M any, K comparable, A any] []Pipeline[M, K, A]

// Apply applies every stage in order and stops at the first failure.
func (l PipelineList[M, K, A]) Apply(m M) error {
	for _, p := range l {
		if err := p.Apply(m); err != nil {
			return fmt.Errorf("apply %s: %w", p.Name(), err)
		}
	}

	return nil
}

// Register adds every stage extractor to prices.
func (l PipelineList[M, K, A]) Register(prices *Map[K, A]) {
	for _, p := range l {
		prices.AddExtractor(p.Extractor())
	}
}

// Refresh refreshes every stage in order and stops at the first failure.
func (l PipelineList[M, K, A]) Refresh(prices *Map[K, A], m M, duals []float64) error {
	for _, p := range l {
		if err := p.Refresh(prices, m, duals); err != nil {
			return fmt.Errorf("refresh %s: %w", p.Name(), err)
		}
	}

	return nil
}

// NewMapFor returns a fresh map with the extractors of l registered. Call it
// once per iteration, before Refresh.
func (l PipelineList[M, K, A]) NewMapFor() *Map[K, A] {
	prices := NewMap[K, A]()
	l.Register(prices)

	return prices
}

package shadowprice

import (
	"fmt"
	"sync"
)

// Map holds at most one price per key plus the extractors that read it.
// All methods are safe for concurrent use; the intended pattern is a single
// writer during refresh followed by many readers during pricing.
type Map[K comparable, A any] struct {
	mu         sync.RWMutex
	prices     map[K]float64
	order      []K
	extractors []Extractor[K, A]
}

// NewMap returns an empty map.
func NewMap[K comparable, A any]() *Map[K, A] {
	return &Map[K, A]{prices: make(map[K]float64)}
}

// Put stores value under key, replacing any previous price. A zero value
// leaves the key unpriced and removes an existing entry.
func (m *Map[K, A]) Put(key K, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value == 0 {
		if _, ok := m.prices[key]; ok {
			delete(m.prices, key)
			m.order = removeKey(m.order, key)
		}

		return
	}
	if _, ok := m.prices[key]; !ok {
		m.order = append(m.order, key)
	}
	m.prices[key] = value
}

// Get returns the price of key and whether it is priced.
func (m *Map[K, A]) Get(key K) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.prices[key]

	return v, ok
}

// Price returns the price of key, or 0.
func (m *Map[K, A]) Price(key K) float64 {
	v, _ := m.Get(key)

	return v
}

// Len returns the number of priced keys.
func (m *Map[K, A]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.prices)
}

// Prices returns the stored prices in first-insertion order.
func (m *Map[K, A]) Prices() []Price[K] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Price[K], 0, len(m.order))
	for _, k := range m.order {
		out = append(out, Price[K]{Key: k, Value: m.prices[k]})
	}

	return out
}

// Reset drops every price and keeps the extractors.
func (m *Map[K, A]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prices = make(map[K]float64)
	m.order = nil
}

// AddExtractor registers e. Nil extractors are ignored.
func (m *Map[K, A]) AddExtractor(e Extractor[K, A]) {
	if e == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.extractors = append(m.extractors, e)
}

// Extract sums every registered extractor over args. Unknown contexts price
// at zero; Extract never fails.
func (m *Map[K, A]) Extract(args A) float64 {
	m.mu.RLock()
	extractors := m.extractors
	m.mu.RUnlock()

	var ret float64
	for _, e := range extractors {
		ret += e(m, args)
	}

	return ret
}

// String renders the prices in insertion order.
func (m *Map[K, A]) String() string {
	return fmt.Sprint(m.Prices())
}

func removeKey[K comparable](keys []K, key K) []K {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}

	return keys
}

// RefreshGroup stores the duals of a constraint group under the keys that
// produced its rows.
//
// The group window [start, end) is located through the model; keys[i] is
// paired with duals[start+i]. Rows beyond the keys are ignored, keys beyond
// the window get no price. A zero dual leaves its key unpriced.
func RefreshGroup[K comparable, A any](prices *Map[K, A], m GroupLocator, group string, keys []K, duals []float64) error {
	if m == nil {
		return ErrNilModel
	}
	// 1. Locate the window
	start, end, ok := m.IndicesOfConstraintGroup(group)
	if !ok {
		return fmt.Errorf("refresh %q: %w", group, ErrUnknownConstraintGroup)
	}
	if start < 0 || end < start || end > len(duals) {
		return fmt.Errorf("refresh %q: window [%d, %d) over %d duals: %w", group, start, end, len(duals), ErrDualOutOfRange)
	}
	// 2. Walk rows and keys in lock-step
	for i := 0; i < len(keys) && start+i < end; i++ {
		prices.Put(keys[i], duals[start+i])
	}

	return nil
}

package variable

import "fmt"

// Token is the registration of one variable in a TokenList together with
// its optional solver result.
type Token struct {
	item   *Item
	index  int
	result float64
	solved bool
}

// Item returns the registered variable.
func (t *Token) Item() *Item { return t.item }

// Index returns the position of the token in its list (and in results vectors).
func (t *Token) Index() int { return t.index }

// Result returns the assigned solver result, if any.
func (t *Token) Result() (float64, bool) { return t.result, t.solved }

// Lookup resolves variables against solver output.
// Expression evaluation accepts this interface; TokenList implements it.
type Lookup interface {
	// Find returns the token registered for item.
	Find(item *Item) (*Token, bool)
	// IndexOf returns the position of item in a results vector.
	IndexOf(item *Item) (int, bool)
}

// TokenList is an ordered, key-indexed set of tokens.
// It is not safe for concurrent mutation; concurrent reads are fine once
// results are set.
type TokenList struct {
	tokens []*Token
	index  map[Key]int
}

// NewTokenList returns an empty list.
func NewTokenList() *TokenList {
	return &TokenList{index: make(map[Key]int)}
}

// Len returns the number of registered tokens.
func (tl *TokenList) Len() int { return len(tl.tokens) }

// Contains reports whether the item is registered.
func (tl *TokenList) Contains(item *Item) bool {
	if item == nil {
		return false
	}
	_, ok := tl.index[item.key]

	return ok
}

// Add registers items in order. Registering a nil or duplicate item fails
// and leaves the list unchanged from that item on.
func (tl *TokenList) Add(items ...*Item) error {
	for _, it := range items {
		if it == nil {
			return ErrNilItem
		}
		if _, ok := tl.index[it.key]; ok {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateToken, it.name, it.key)
		}
		tl.index[it.key] = len(tl.tokens)
		tl.tokens = append(tl.tokens, &Token{item: it, index: len(tl.tokens)})
	}

	return nil
}

// Find implements Lookup.
func (tl *TokenList) Find(item *Item) (*Token, bool) {
	if item == nil {
		return nil, false
	}
	i, ok := tl.index[item.key]
	if !ok {
		return nil, false
	}

	return tl.tokens[i], true
}

// IndexOf implements Lookup.
func (tl *TokenList) IndexOf(item *Item) (int, bool) {
	if item == nil {
		return 0, false
	}
	i, ok := tl.index[item.key]

	return i, ok
}

// Tokens returns the tokens in registration order. The slice is a copy; the
// tokens are shared.
func (tl *TokenList) Tokens() []*Token {
	out := make([]*Token, len(tl.tokens))
	copy(out, tl.tokens)

	return out
}

// Items returns the registered variables in order.
func (tl *TokenList) Items() []*Item {
	out := make([]*Item, len(tl.tokens))
	for i, t := range tl.tokens {
		out[i] = t.item
	}

	return out
}

// SetResults assigns results positionally; len(results) must equal Len().
func (tl *TokenList) SetResults(results []float64) error {
	if len(results) != len(tl.tokens) {
		return fmt.Errorf("%w: got %d, want %d", ErrResultLength, len(results), len(tl.tokens))
	}
	for i, t := range tl.tokens {
		t.result, t.solved = results[i], true
	}

	return nil
}

// SetResult assigns a single result.
func (tl *TokenList) SetResult(item *Item, value float64) error {
	t, ok := tl.Find(item)
	if !ok {
		return fmt.Errorf("%w: %v", ErrTokenNotFound, item)
	}
	t.result, t.solved = value, true

	return nil
}

// ClearResults drops every assigned result.
func (tl *TokenList) ClearResults() {
	for _, t := range tl.tokens {
		t.result, t.solved = 0, false
	}
}

// Results returns the results vector in token order; unsolved tokens read 0.
func (tl *TokenList) Results() []float64 {
	out := make([]float64, len(tl.tokens))
	for i, t := range tl.tokens {
		out[i] = t.result
	}

	return out
}

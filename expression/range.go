package expression

import (
	"fmt"
	"math"
	"strconv"
)

// Interval says whether a bound belongs to the range.
type Interval int

const (
	// Closed bounds belong to the range.
	Closed Interval = iota
	// Open bounds do not. Infinite bounds are always open.
	Open
)

// Bound is one end of a Range.
type Bound struct {
	Value    float64
	Interval Interval
}

func closedBound(v float64) Bound {
	if math.IsInf(v, 0) {
		return Bound{Value: v, Interval: Open}
	}

	return Bound{Value: v, Interval: Closed}
}

// Range is a real interval with independently open or closed ends.
// The zero value is the closed point [0, 0].
type Range struct {
	Lower Bound
	Upper Bound
}

// NewRange returns the closed interval [lower, upper]; infinite ends are open.
func NewRange(lower, upper float64) Range {
	return Range{Lower: closedBound(lower), Upper: closedBound(upper)}
}

// Point returns [v, v].
func Point(v float64) Range { return NewRange(v, v) }

// Unbounded returns (-Inf, +Inf).
func Unbounded() Range { return NewRange(math.Inf(-1), math.Inf(1)) }

// Empty reports whether the range contains no value.
func (r Range) Empty() bool {
	if math.IsNaN(r.Lower.Value) || math.IsNaN(r.Upper.Value) {
		return true
	}
	if r.Lower.Value > r.Upper.Value {
		return true
	}
	if r.Lower.Value == r.Upper.Value {
		return r.Lower.Interval == Open || r.Upper.Interval == Open
	}

	return false
}

// Fixed reports whether the range is a single closed point.
func (r Range) Fixed() bool {
	return !r.Empty() && r.Lower.Value == r.Upper.Value
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float64) bool {
	if r.Empty() {
		return false
	}
	if v < r.Lower.Value || (v == r.Lower.Value && r.Lower.Interval == Open) {
		return false
	}
	if v > r.Upper.Value || (v == r.Upper.Value && r.Upper.Interval == Open) {
		return false
	}

	return true
}

// Scale multiplies both ends by k; a negative k swaps them, zero collapses
// the range to [0, 0].
func (r Range) Scale(k float64) Range {
	switch {
	case k == 0:
		return Point(0)
	case k > 0:
		return Range{
			Lower: Bound{Value: r.Lower.Value * k, Interval: r.Lower.Interval},
			Upper: Bound{Value: r.Upper.Value * k, Interval: r.Upper.Interval},
		}
	default:
		return Range{
			Lower: Bound{Value: r.Upper.Value * k, Interval: r.Upper.Interval},
			Upper: Bound{Value: r.Lower.Value * k, Interval: r.Lower.Interval},
		}
	}
}

// Shift adds v to both ends.
func (r Range) Shift(v float64) Range {
	return Range{
		Lower: Bound{Value: r.Lower.Value + v, Interval: r.Lower.Interval},
		Upper: Bound{Value: r.Upper.Value + v, Interval: r.Upper.Interval},
	}
}

// Add returns the Minkowski sum of both ranges.
func (r Range) Add(other Range) Range {
	return Range{
		Lower: Bound{Value: r.Lower.Value + other.Lower.Value, Interval: joinInterval(r.Lower.Interval, other.Lower.Interval)},
		Upper: Bound{Value: r.Upper.Value + other.Upper.Value, Interval: joinInterval(r.Upper.Interval, other.Upper.Interval)},
	}
}

// Mul returns the range of products x*y for x in r and y in other.
// Zero times an infinite bound is zero.
func (r Range) Mul(other Range) Range {
	// 1. Candidate products of every pair of ends
	candidates := [4]Bound{
		mulBound(r.Lower, other.Lower),
		mulBound(r.Lower, other.Upper),
		mulBound(r.Upper, other.Lower),
		mulBound(r.Upper, other.Upper),
	}
	// 2. Pick extremes; a tie prefers the closed candidate
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		if c.Value < lo.Value || (c.Value == lo.Value && c.Interval == Closed) {
			lo = c
		}
		if c.Value > hi.Value || (c.Value == hi.Value && c.Interval == Closed) {
			hi = c
		}
	}

	return Range{Lower: lo, Upper: hi}
}

// Intersect returns the common part of both ranges (possibly Empty).
func (r Range) Intersect(other Range) Range {
	ret := r
	if other.Lower.Value > ret.Lower.Value || (other.Lower.Value == ret.Lower.Value && other.Lower.Interval == Open) {
		ret.Lower = other.Lower
	}
	if other.Upper.Value < ret.Upper.Value || (other.Upper.Value == ret.Upper.Value && other.Upper.Interval == Open) {
		ret.Upper = other.Upper
	}

	return ret
}

// String renders the range in interval notation, e.g. "[0, 1)".
func (r Range) String() string {
	left, right := "[", "]"
	if r.Lower.Interval == Open {
		left = "("
	}
	if r.Upper.Interval == Open {
		right = ")"
	}

	return fmt.Sprintf("%s%s, %s%s", left, formatFloat(r.Lower.Value), formatFloat(r.Upper.Value), right)
}

func mulBound(a, b Bound) Bound {
	if a.Value == 0 && a.Interval == Closed || b.Value == 0 && b.Interval == Closed {
		return Bound{Value: 0, Interval: Closed}
	}
	v := a.Value * b.Value
	if math.IsNaN(v) {
		v = 0
	}
	if math.IsInf(v, 0) {
		return Bound{Value: v, Interval: Open}
	}

	return Bound{Value: v, Interval: joinInterval(a.Interval, b.Interval)}
}

func joinInterval(a, b Interval) Interval {
	if a == Open || b == Open {
		return Open
	}

	return Closed
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		return "0"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// Package: wareflow/builder
//
// slack_fn.go - road cost slack above the geometric bound.

package builder

import (
	"fmt"
	"math/rand"
)

// SlackFn draws the extra cost of one road. It receives the configured RNG,
// which may be nil, and must never return a negative value.
type SlackFn func(rng *rand.Rand) int64

// ZeroSlack makes every road cost exactly its geometric bound.
func ZeroSlack(_ *rand.Rand) int64 { return 0 }

// ConstantSlack adds the same extra cost to every road. Panics if v < 0.
func ConstantSlack(v int64) SlackFn {
	if v < 0 {
		panic(fmt.Sprintf("ConstantSlack: value must be ≥ 0, got %d", v))
	}

	return func(_ *rand.Rand) int64 { return v }
}

// UniformSlack draws uniformly from [lo, hi]. Without an RNG it yields lo.
// Panics unless 0 ≤ lo ≤ hi.
func UniformSlack(lo, hi int64) SlackFn {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("UniformSlack: require 0 ≤ lo ≤ hi, got lo=%d, hi=%d", lo, hi))
	}

	return func(rng *rand.Rand) int64 {
		if rng == nil || hi == lo {
			return lo
		}
		return lo + rng.Int63n(hi-lo+1)
	}
}

// WithConstantSlack sets ConstantSlack(v).
func WithConstantSlack(v int64) BuilderOption { return WithSlackFn(ConstantSlack(v)) }

// WithUniformSlack sets UniformSlack(lo, hi).
func WithUniformSlack(lo, hi int64) BuilderOption { return WithSlackFn(UniformSlack(lo, hi)) }

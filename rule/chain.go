package rule

import (
	"math"
	"strings"
)

// Chain is an ordered sequence of steps along a conversion path.
// The empty chain is the identity.
type Chain []Step

// Apply evaluates every step left to right.
func (c Chain) Apply(x float64) float64 {
	for _, s := range c {
		x = s.Apply(x)
	}

	return x
}

// Factor multiplies the step factors together. ok is false as soon as one
// step is not a pure scale; the returned factor is then meaningless.
func (c Chain) Factor() (float64, bool) {
	f := 1.0
	for _, s := range c {
		sf, ok := s.Factor()
		if !ok {
			return 0, false
		}
		f *= sf
	}

	return f, true
}

// Linear reports whether the chain is a pure scale.
func (c Chain) Linear() bool {
	_, ok := c.Factor()

	return ok
}

// ApplyPow scales x by the chain's factor raised to exp, the equivalent of
// applying the chain exp times. The chain must be Linear.
func (c Chain) ApplyPow(x float64, exp int) float64 {
	f, _ := c.Factor()
	if exp == 1 {
		return x * f
	}

	return x * math.Pow(f, float64(exp))
}

func (c Chain) String() string {
	if len(c) == 0 {
		return "id"
	}
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}

	return strings.Join(parts, " ∘ ")
}

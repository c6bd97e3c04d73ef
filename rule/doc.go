// Package rule defines the conversion rules carried by the edges of a unit
// conversion graph.
//
// A Step transforms a magnitude expressed in one unit into the magnitude of
// the same quantity expressed in an adjacent unit. Two Step kinds exist:
//
//   - Affine{Scale, Offset}: y = x·Scale + Offset. With Offset == 0 the step is
//     a pure scale and can be raised to an integer power, which is what makes
//     compound expressions such as cm2/Vs convertible term by term.
//   - Func{Name, F}: an arbitrary scalar function, used for relations that must
//     run through exact registered formulas (temperature scales, pH/pOH).
//
// A Rule pairs a Forward and a Backward Step for the two directions of one
// relation. Constructors cover the common shapes:
//
//	rule.Scale(1e-2)              // cm → m, inverse derived
//	rule.Pair(0.98692, 1/0.98692) // independently tabulated factors
//	rule.Linear(5.0/9.0, -160.0/9.0)
//	rule.Custom("F→C", f2c, c2f)
//
// A Chain is an ordered list of Steps along a conversion path. Chain.Factor
// reports the composite multiplicative factor when every step is a pure scale;
// Chain.Apply evaluates the steps left to right.
//
// Errors:
//
//	ErrZeroScale – a scale of zero (or NaN/Inf) cannot be inverted.
//	ErrNilFunc   – a Func step without a function.
package rule

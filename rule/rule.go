package rule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel errors for rule validation.
var (
	// ErrZeroScale indicates a scale that is zero, NaN or infinite.
	ErrZeroScale = errors.New("rule: scale must be finite and non-zero")

	// ErrNilFunc indicates a Func step without a function.
	ErrNilFunc = errors.New("rule: conversion function is nil")
)

// Step is one directed transform between two adjacent units.
type Step interface {
	// Apply converts x from the source unit to the destination unit.
	Apply(x float64) float64

	// Factor reports the multiplicative factor of the step and whether the
	// step is a pure scale (no offset, no custom function).
	Factor() (float64, bool)

	// String renders the step for diagnostics.
	String() string
}

// Affine is the linear step y = x·Scale + Offset.
type Affine struct {
	Scale  float64
	Offset float64
}

// Apply implements Step.
func (a Affine) Apply(x float64) float64 { return x*a.Scale + a.Offset }

// Factor implements Step. Only offset-free steps are pure scales.
func (a Affine) Factor() (float64, bool) { return a.Scale, a.Offset == 0 }

// Inverse returns the affine step undoing a. The caller must ensure
// a.Scale is non-zero.
func (a Affine) Inverse() Affine {
	return Affine{Scale: 1 / a.Scale, Offset: -a.Offset / a.Scale}
}

func (a Affine) String() string {
	s := "×" + strconv.FormatFloat(a.Scale, 'g', -1, 64)
	if a.Offset != 0 {
		s += fmt.Sprintf("%+g", a.Offset)
	}

	return s
}

// Func is a named scalar function step.
type Func struct {
	Name string
	F    func(float64) float64
}

// Apply implements Step.
func (f Func) Apply(x float64) float64 { return f.F(x) }

// Factor implements Step; a function step is never a pure scale.
func (f Func) Factor() (float64, bool) { return 0, false }

func (f Func) String() string { return f.Name }

// Rule is a bidirectional conversion relation: Forward maps the "from"
// unit onto the "to" unit and Backward maps it back.
type Rule struct {
	Forward  Step
	Backward Step
}

// Identity relates two units that are numerically the same (torr and mmHg).
func Identity() Rule {
	return Rule{Forward: Affine{Scale: 1}, Backward: Affine{Scale: 1}}
}

// Scale relates units by a single factor: to = from·f. The backward factor
// is 1/f.
func Scale(f float64) Rule {
	return Rule{Forward: Affine{Scale: f}, Backward: Affine{Scale: 1 / f}}
}

// Pair relates units by two independently tabulated factors, so each
// direction reproduces its published constant exactly.
func Pair(forward, backward float64) Rule {
	return Rule{Forward: Affine{Scale: forward}, Backward: Affine{Scale: backward}}
}

// Linear relates units by to = from·scale + offset; the backward step is the
// exact affine inverse.
func Linear(scale, offset float64) Rule {
	fw := Affine{Scale: scale, Offset: offset}
	if scale == 0 {
		return Rule{Forward: fw, Backward: Affine{}}
	}

	return Rule{Forward: fw, Backward: fw.Inverse()}
}

// Custom relates units through two named functions.
func Custom(name string, forward, backward func(float64) float64) Rule {
	return Rule{
		Forward:  Func{Name: name, F: forward},
		Backward: Func{Name: name + "⁻¹", F: backward},
	}
}

// Reverse swaps the directions of r.
func (r Rule) Reverse() Rule { return Rule{Forward: r.Backward, Backward: r.Forward} }

// Linear reports whether both directions are pure scales.
func (r Rule) Linear() bool {
	_, okF := stepFactor(r.Forward)
	_, okB := stepFactor(r.Backward)

	return okF && okB
}

// Validate checks that both steps are usable.
func (r Rule) Validate() error {
	if err := validateStep(r.Forward); err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	if err := validateStep(r.Backward); err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	return nil
}

func validateStep(s Step) error {
	switch st := s.(type) {
	case nil:
		return ErrNilFunc
	case Affine:
		if st.Scale == 0 || math.IsNaN(st.Scale) || math.IsInf(st.Scale, 0) {
			return fmt.Errorf("%w (got %v)", ErrZeroScale, st.Scale)
		}
	case Func:
		if st.F == nil {
			return fmt.Errorf("%w: %q", ErrNilFunc, st.Name)
		}
	}

	return nil
}

func stepFactor(s Step) (float64, bool) {
	if s == nil {
		return 0, false
	}

	return s.Factor()
}

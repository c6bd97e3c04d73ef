package units

import "strconv"

// Physical dimension tags used by the built-in presets.
const (
	TypeEnergy            = "energy"
	TypeElectricPotential = "electric_potential"
	TypeLength            = "length"
	TypeTemperature       = "temperature"
	TypeTime              = "time"
	TypeVolume            = "volume"
	TypeAngle             = "angle"
	TypeMass              = "mass"
	TypePressure          = "pressure"
	TypeConcentration     = "concentration"
	TypeForce             = "force"
	TypeMagnetic          = "magnetic"
	TypeMisc              = "misc"
	TypePower             = "power"
	TypeFrequency         = "frequency"
	TypeData              = "data"
)

// Unit is an immutable descriptor of one named unit.
//
// Registered units are created by Registry.Define. A metric-prefixed form
// of a metric unit ("km" for "m") is synthesized on lookup: it is never
// stored in the registry, its Basis is the prefixed unit and its Exponent
// is the prefix power.
type Unit struct {
	symbol   string
	typ      string
	basis    *Unit
	metric   bool
	exponent int

	prefix string
	base   *Unit // registered unit behind a prefixed form; nil if registered
}

// Symbol returns the unit symbol ("cm").
func (u *Unit) Symbol() string { return u.symbol }

// Type returns the physical dimension tag ("length").
func (u *Unit) Type() string { return u.typ }

// Basis returns the unit this one is defined relative to, or nil for a
// basis unit.
func (u *Unit) Basis() *Unit { return u.basis }

// IsBasis reports whether u is the root of its basis chain.
func (u *Unit) IsBasis() bool { return u.basis == nil }

// Metric reports whether metric prefixes may be applied to u.
func (u *Unit) Metric() bool { return u.metric }

// Exponent returns the power of ten relating u to its basis: the prefix
// power for a prefixed unit, or the value given by WithPowerOfTen.
func (u *Unit) Exponent() int { return u.exponent }

// Prefix returns the metric prefix of a synthesized unit, or "".
func (u *Unit) Prefix() string { return u.prefix }

// Registered reports whether u is stored in the registry, as opposed to a
// prefixed form synthesized on lookup.
func (u *Unit) Registered() bool { return u.base == nil }

// Name renders u raised to exp: "m", "m2", "s-1".
func (u *Unit) Name(exp int) string {
	if exp == 1 {
		return u.symbol
	}

	return u.symbol + strconv.Itoa(exp)
}

func (u *Unit) String() string { return u.symbol }

// registered returns the stored unit behind u.
func (u *Unit) registered() *Unit {
	if u.base != nil {
		return u.base
	}

	return u
}

// withPrefix synthesizes p+u.
func (u *Unit) withPrefix(p Prefix) *Unit {
	return &Unit{
		symbol:   p.Symbol + u.symbol,
		typ:      u.typ,
		basis:    u,
		exponent: p.Power,
		prefix:   p.Symbol,
		base:     u,
	}
}

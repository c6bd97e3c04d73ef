// Package units is a physical-units conversion engine.
//
// A Registry holds named units grouped by type ("length", "pressure", ...)
// and a conversion graph relating them. Every unit is either a basis (the
// root of its component) or defined relative to a basis; Relate adds
// direct relations between any two units of the same type. Metric units
// accept SI prefixes from atto to exa, synthesized on lookup.
//
// Conversions accept compound expressions:
//
//	r, _ := units.NewRegistry(units.WithPresets(units.PresetAll))
//	r.Convert("1cm2/Vs", "m2/kVs", false) // "0.1"
//	r.Convert("72F", "C", false)          // "22.2222"
//	r.Convert("5.00min", "s", true)       // "300s"
//
// A value string is split into a numeric literal and a unit expression.
// Both expressions are decomposed into terms (unit, exponent); terms are
// paired by type and exponent and each pair is converted along the
// fewest-hop chain of the graph. Offset and function relations such as
// temperature scales only apply to a lone term with exponent 1.
//
// The package-level Find, Define, Convert, Validate, GetBasis and
// GetCompatible functions operate on Default, a lazily built registry with
// every preset, and report failures as integer codes (see Code) for
// callers that cannot carry Go errors.
//
// Registries are safe for concurrent use. Seal makes one read-only.
package units

package units

import (
	"context"
	"sync"
)

// Values for the showUnits argument of Convert.
const (
	UnitsOff = false
	UnitsOn  = true
)

// Default returns the process-wide registry holding every preset group.
// It is built on first use.
var Default = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(WithPresets(PresetAll))
	if err != nil {
		// presets are static tables; failing here is a programming error
		panic(err)
	}

	return r
})

// Find looks symbol up in the Default registry.
func Find(symbol string) (*Unit, error) { return Default().Find(symbol) }

// Define registers a unit in the Default registry.
func Define(symbol string, basis *Unit, typ string, opts ...DefineOption) (*Unit, error) {
	return Default().Define(symbol, basis, typ, opts...)
}

// GetBasis returns u's basis, or nil for a basis unit.
func GetBasis(u *Unit) *Unit { return Default().GetBasis(u) }

// GetCompatible lists the symbols convertible to u in the Default registry.
func GetCompatible(u *Unit) []string { return Default().GetCompatible(u, 1) }

// Convert converts value into toUnits with the Default registry. On
// failure the result holds the error message and code is non-zero.
func Convert(value, toUnits string, showUnits bool) (result string, code int) {
	res, err := Default().Convert(value, toUnits, showUnits)
	if err != nil {
		return err.Error(), Code(err)
	}

	return res, CodeOK
}

// Validate reports the type of a unit expression and, for a single term,
// its compatible symbols. On failure typ is empty and code is non-zero.
func Validate(units string) (typ string, compatible []string, code int) {
	typ, compatible, err := Default().Validate(units)

	return typ, compatible, Code(err)
}

// ConvertAll converts a vector of values with the Default registry.
// On failure results is nil and code is non-zero.
func ConvertAll(values []string, toUnits string, showUnits bool) (results []string, code int) {
	res, err := Default().ConvertAll(context.Background(), values, toUnits, showUnits)

	return res, Code(err)
}

package units

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/rpunits/rule"
)

// Preset group names accepted by AddPresets.
const (
	PresetAll               = "all"
	PresetTime              = TypeTime
	PresetTemperature       = TypeTemperature
	PresetLength            = TypeLength
	PresetEnergy            = TypeEnergy
	PresetElectricPotential = TypeElectricPotential
	PresetVolume            = TypeVolume
	PresetAngle             = TypeAngle
	PresetMass              = TypeMass
	PresetPressure          = TypePressure
	PresetConcentration     = TypeConcentration
	PresetForce             = TypeForce
	PresetMagnetic          = TypeMagnetic
	PresetMisc              = TypeMisc
	PresetPower             = TypePower
	PresetFrequency         = TypeFrequency
	PresetData              = TypeData
)

// ErrUnknownPreset indicates an AddPresets group that does not exist.
var ErrUnknownPreset = errors.New("units: unknown preset group")

// presetOrder is the load order used by PresetAll.
var presetOrder = []string{
	PresetTime, PresetTemperature, PresetLength, PresetEnergy,
	PresetElectricPotential, PresetVolume, PresetAngle, PresetMass,
	PresetPressure, PresetConcentration, PresetForce, PresetMagnetic,
	PresetMisc, PresetPower, PresetFrequency, PresetData,
}

var presetLoaders map[string]func(*presetBuilder)

// presetLoaders is filled in init because addVolume reaches it again
// through require/AddPresets, which a package-level initializer rejects.
func init() {
	presetLoaders = map[string]func(*presetBuilder){
		PresetTime:              addTime,
		PresetTemperature:       addTemperature,
		PresetLength:            addLength,
		PresetEnergy:            addEnergy,
		PresetElectricPotential: addElectricPotential,
		PresetVolume:            addVolume,
		PresetAngle:             addAngle,
		PresetMass:              addMass,
		PresetPressure:          addPressure,
		PresetConcentration:     addConcentration,
		PresetForce:             addForce,
		PresetMagnetic:          addMagnetic,
		PresetMisc:              addMisc,
		PresetPower:             addPower,
		PresetFrequency:         addFrequency,
		PresetData:              addData,
	}
}

// PresetGroups returns the preset group names in load order.
func PresetGroups() []string { return append([]string(nil), presetOrder...) }

// AddPresets loads a built-in unit group. Loading a group twice is a no-op.
//
// Errors: ErrUnknownPreset, ErrSealed, or the first definition failure.
func (r *Registry) AddPresets(group string) error {
	if group == PresetAll {
		for _, g := range presetOrder {
			if err := r.AddPresets(g); err != nil {
				return err
			}
		}

		return nil
	}
	load, ok := presetLoaders[group]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, group)
	}

	r.mu.Lock()
	loaded, sealed := r.presets[group], r.sealed
	r.mu.Unlock()
	if sealed {
		return fmt.Errorf("%w: presets %q", ErrSealed, group)
	}
	if loaded {
		return nil
	}

	b := &presetBuilder{r: r}
	load(b)
	if b.err != nil {
		return fmt.Errorf("preset %q: %w", group, b.err)
	}

	r.mu.Lock()
	r.presets[group] = true
	r.mu.Unlock()
	r.log.Debug("presets loaded", "group", group)

	return nil
}

// presetBuilder records the first error of a sequence of definitions.
type presetBuilder struct {
	r   *Registry
	err error
}

func (b *presetBuilder) define(symbol, basis, typ string, opts ...DefineOption) {
	if b.err != nil {
		return
	}
	var bu *Unit
	if basis != "" {
		if bu, b.err = b.r.Find(basis); b.err != nil {
			return
		}
	}
	_, b.err = b.r.Define(symbol, bu, typ, opts...)
}

func (b *presetBuilder) relate(from, to string, rl rule.Rule) {
	if b.err != nil {
		return
	}
	b.err = b.r.Relate(from, to, rl)
}

func (b *presetBuilder) equate(symbol string, factor float64, units string) {
	if b.err != nil {
		return
	}
	b.err = b.r.Equate(symbol, factor, units)
}

// require loads another group this one refers to.
func (b *presetBuilder) require(group string) {
	if b.err != nil {
		return
	}
	b.err = b.r.AddPresets(group)
}

func addTime(b *presetBuilder) {
	b.define("s", "", TypeTime, WithMetric())
	b.define("min", "s", "", WithScale(60))
	b.define("h", "s", "", WithScale(3600))
	b.define("d", "s", "", WithScale(86400))
}

func addTemperature(b *presetBuilder) {
	b.define("F", "", TypeTemperature)
	b.define("C", "", TypeTemperature)
	b.define("K", "", TypeTemperature, WithMetric())
	b.define("R", "", TypeTemperature)

	b.relate("F", "C", rule.Custom("F→C",
		func(f float64) float64 { return (f - 32.0) / (9.0 / 5.0) },
		func(c float64) float64 { return c*(9.0/5.0) + 32.0 }))
	b.relate("C", "K", rule.Linear(1, 273.15))
	b.relate("F", "K", rule.Custom("F→K",
		func(f float64) float64 { return (f + 459.67) * (5.0 / 9.0) },
		func(k float64) float64 { return (9.0/5.0)*k - 459.67 }))
	b.relate("R", "K", rule.Pair(5.0/9.0, 9.0/5.0))
	b.relate("F", "R", rule.Linear(1, 459.67))
	b.relate("R", "C", rule.Custom("R→C",
		func(r float64) float64 { return r*(5.0/9.0) - 273.15 },
		func(c float64) float64 { return (c + 273.15) * (9.0 / 5.0) }))
}

func addLength(b *presetBuilder) {
	b.define("m", "", TypeLength, WithMetric())
	b.define("A", "m", "", WithScale(1e-10))
	b.define("bohr", "m", "", WithScale(52.9177e-12))
	b.define("in", "m", "", WithRule(rule.Pair(1/39.37008, 39.37008)))
	b.define("ft", "in", "", WithScale(12))
	b.define("yd", "in", "", WithScale(36))
	b.define("mi", "in", "", WithScale(63360))
}

func addEnergy(b *presetBuilder) {
	b.define("eV", "", TypeEnergy, WithMetric())
	b.define("J", "", TypeEnergy, WithMetric())
	b.relate("eV", "J", rule.Pair(1.602177e-19, 1/1.602177e-19))
}

func addElectricPotential(b *presetBuilder) {
	b.define("V", "", TypeElectricPotential, WithMetric())
}

// addVolume ties volume to length cubed: m3, ft3 and friends parse as
// length terms and convert to L and gal through 1 L = 1e-3 m3.
func addVolume(b *presetBuilder) {
	b.require(PresetLength)
	b.define("L", "", TypeVolume, WithMetric())
	b.define("gal", "L", "", WithRule(rule.Pair(1e3/264.1721, 264.1721e-3)))
	b.equate("L", 1e-3, "m3")
}

func addAngle(b *presetBuilder) {
	b.define("rad", "", TypeAngle, WithMetric())
	b.define("deg", "rad", "", WithRule(rule.Pair(math.Pi/180, 180/math.Pi)))
	b.define("grad", "rad", "", WithRule(rule.Pair(math.Pi/200, 200/math.Pi)))
	b.relate("deg", "grad", rule.Pair(10.0/9.0, 9.0/10.0))
}

func addMass(b *presetBuilder) {
	b.define("g", "", TypeMass, WithMetric())
	b.define("amu", "g", "", WithScale(1.66053904e-24))
	b.define("lb", "g", "", WithScale(453.59237))
}

func addPressure(b *presetBuilder) {
	b.define("Pa", "", TypePressure, WithMetric())
	b.define("bar", "Pa", "", WithMetric(), WithRule(rule.Pair(1e5, 1e-5)))
	b.define("atm", "Pa", "", WithRule(rule.Pair(101325.024, 9.8692e-6)))
	b.define("torr", "Pa", "", WithRule(rule.Pair(1/7.5006e-3, 7.5006e-3)))
	b.define("psi", "Pa", "", WithRule(rule.Pair(6894.7625831, 145.04e-6)))
	b.define("mmHg", "torr", "", WithRule(rule.Identity()))

	b.relate("bar", "atm", rule.Pair(0.98692, 1/0.98692))
	b.relate("bar", "torr", rule.Pair(750.06, 1/750.06))
	b.relate("bar", "psi", rule.Pair(14.504, 0.0689476))
	b.relate("torr", "atm", rule.Pair(1.3158e-3, 760))
	b.relate("torr", "psi", rule.Pair(19.337e-3, 51.71496))
	b.relate("psi", "atm", rule.Pair(68.046e-3, 14.696))
}

func addConcentration(b *presetBuilder) {
	b.define("pH", "", TypeConcentration)
	b.define("pOH", "", TypeConcentration)
	b.relate("pH", "pOH", rule.Custom("pH→pOH",
		func(ph float64) float64 { return 14.0 - ph },
		func(poh float64) float64 { return 14.0 - poh }))
}

func addForce(b *presetBuilder) {
	b.define("N", "", TypeForce, WithMetric())
	b.define("dyn", "N", "", WithScale(1e-5))
}

func addMagnetic(b *presetBuilder) {
	b.define("T", "", TypeMagnetic, WithMetric())
	b.define("G", "", TypeMagnetic, WithMetric())
	b.relate("T", "G", rule.Pair(1e4, 1e-4))
	b.define("Wb", "", TypeMagnetic, WithMetric())
	b.define("Mx", "", TypeMagnetic)
	b.relate("Mx", "Wb", rule.Pair(1e-8, 1e8))
}

func addMisc(b *presetBuilder) {
	b.define("mol", "", TypeMisc, WithMetric())
}

func addPower(b *presetBuilder) {
	b.define("W", "", TypePower, WithMetric())
	b.define("hp", "W", "", WithScale(745.699872))
}

func addFrequency(b *presetBuilder) {
	b.define("Hz", "", TypeFrequency, WithMetric())
}

func addData(b *presetBuilder) {
	b.define("B", "", TypeData, WithMetric())
	b.define("bit", "B", "", WithMetric(), WithScale(0.125))
}

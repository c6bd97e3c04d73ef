package units_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/rpunits/units"
)

func ExampleRegistry_Convert() {
	r, err := units.NewRegistry(units.WithPresets(units.PresetAll))
	if err != nil {
		panic(err)
	}

	for _, c := range []struct{ value, to string }{
		{"5.00min", "s"},
		{"72F", "C"},
		{"1cm2/Vs", "m2/kVs"},
		{"5.00bar", "psi"},
	} {
		res, err := r.Convert(c.value, c.to, units.UnitsOn)
		if err != nil {
			panic(err)
		}
		fmt.Println(c.value, "=", res)
	}

	_, err = r.Convert("5kg", "m", units.UnitsOn)
	fmt.Println("kg to m incompatible:", errors.Is(err, units.ErrIncompatibleUnits))

	// Output:
	// 5.00min = 300s
	// 72F = 22.2222C
	// 1cm2/Vs = 0.1m2/kVs
	// 5.00bar = 72.52psi
	// kg to m incompatible: true
}

func ExampleRegistry_Define() {
	r, _ := units.NewRegistry(units.WithPresets(units.PresetLength))
	mi, _ := r.Find("mi")
	if _, err := r.Define("furlong", mi, "", units.WithScale(0.125)); err != nil {
		panic(err)
	}

	res, _ := r.Convert("1mi", "furlong", units.UnitsOn)
	fmt.Println(res)

	// Output:
	// 8furlong
}

func ExampleRegistry_MakeBasis() {
	r, _ := units.NewRegistry(units.WithPresets(units.PresetAll))
	v, basis, err := r.MakeBasis(5, "km/h")
	if err != nil {
		panic(err)
	}
	fmt.Println(units.Format(v, 6), basis)

	// Output:
	// 1.38889 m/s
}

func ExampleRegistry_GetCompatible() {
	r, _ := units.NewRegistry(units.WithPresets(units.PresetTime))
	h, _ := r.Find("h")
	fmt.Println(r.GetCompatible(h, 1))
	fmt.Println(r.GetCompatible(h, -1)[17:])

	// Output:
	// [s as fs ps ns us ms cs ds das hs ks Ms Gs Ts Ps Es min h d]
	// [min-1 h-1 d-1]
}

func ExampleRegistry_LoadDefinitions() {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := `
units:
  - symbol: wk
    basis: d
    scale: 7
`
	r, err := units.NewRegistry(
		units.WithLogger(quiet),
		units.WithPresets(units.PresetTime),
		units.WithDefinitions(strings.NewReader(doc)),
	)
	if err != nil {
		panic(err)
	}
	res, _ := r.Convert("2wk", "h", units.UnitsOn)
	fmt.Println(res)

	// Output:
	// 336h
}

func ExampleParseValue() {
	v, _ := units.ParseValue("-1.7e-4cm2/Vs")
	fmt.Println(v.Magnitude, v.Units)

	v, _ = units.ParseValue("5eV")
	fmt.Println(v.Magnitude, v.Units)

	// Output:
	// -0.00017 cm2/Vs
	// 5 eV
}

func ExampleValidate() {
	typ, compatible, code := units.Validate("cm2")
	fmt.Println(typ, code, compatible[:3])

	_, _, code = units.Validate("zorkels")
	fmt.Println(code == units.CodeUnknownUnit)

	// Output:
	// length^2 0 [m2 am2 fm2]
	// true
}

func ExampleConvert() {
	res, code := units.Convert("5.00torr", "mmHg", units.UnitsOn)
	fmt.Println(res, code)

	// Output:
	// 5mmHg 0
}

package units_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpunits/rule"
	"github.com/katalvlaran/rpunits/units"
)

func newRegistry(t *testing.T, groups ...string) *units.Registry {
	t.Helper()
	r, err := units.NewRegistry(units.WithLogger(quietLogger()), units.WithPresets(groups...))
	require.NoError(t, err)

	return r
}

func TestFind_PrefixPrecedence(t *testing.T) {
	r := MustRegistry(t)
	cases := []struct {
		symbol     string
		registered bool
		prefix     string
		exponent   int
		typ        string
	}{
		{"min", true, "", 0, units.TypeTime},
		{"mmHg", true, "", 0, units.TypePressure},
		{"dam", false, "da", 1, units.TypeLength},
		{"ms", false, "m", -3, units.TypeTime},
		{"Gs", false, "G", 9, units.TypeTime},
		{"kPa", false, "k", 3, units.TypePressure},
		{"mbar", false, "m", -3, units.TypePressure},
		{"us", false, "u", -6, units.TypeTime},
		{"µs", false, "μ", -6, units.TypeTime},
		{"pH", true, "", 0, units.TypeConcentration},
		{"G", true, "", 0, units.TypeMagnetic},
	}
	for _, tc := range cases {
		t.Run(tc.symbol, func(t *testing.T) {
			u := MustFind(t, r, tc.symbol)
			assert.Equal(t, tc.registered, u.Registered())
			assert.Equal(t, tc.prefix, u.Prefix())
			assert.Equal(t, tc.exponent, u.Exponent())
			assert.Equal(t, tc.typ, u.Type())
		})
	}
}

func TestFind_Unknown(t *testing.T) {
	r := MustRegistry(t)
	for _, s := range []string{"zorkels", "kmin", "kft", "km2", "", "k"} {
		_, err := r.Find(s)
		assert.ErrorIs(t, err, units.ErrUnknownUnit, "Find(%q)", s)
	}
}

func TestUnitAccessors(t *testing.T) {
	r := MustRegistry(t)

	m := MustFind(t, r, "m")
	assert.True(t, m.IsBasis())
	assert.True(t, m.Metric())
	assert.Nil(t, m.Basis())
	assert.Equal(t, "m3", m.Name(3))
	assert.Equal(t, "m-1", m.Name(-1))
	assert.Equal(t, "m", m.String())

	km := MustFind(t, r, "km")
	assert.False(t, km.IsBasis())
	assert.Same(t, m, km.Basis())
	assert.Equal(t, "km", km.Symbol())

	ft := MustFind(t, r, "ft")
	assert.Equal(t, "in", r.GetBasis(ft).Symbol())
	assert.Same(t, m, r.Root(ft))
	assert.Nil(t, r.GetBasis(m))
	assert.Nil(t, r.GetBasis(nil))
}

func TestDefine(t *testing.T) {
	r := newRegistry(t, units.PresetLength, units.PresetTime)

	mi := MustFind(t, r, "mi")
	furlong, err := r.Define("furlong", mi, "", units.WithScale(0.125))
	require.NoError(t, err)
	assert.Equal(t, units.TypeLength, furlong.Type())
	assert.Same(t, mi, furlong.Basis())

	got, err := r.Convert("8furlong", "mi", false)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	got, err = r.Convert("1furlong", "m", false)
	require.NoError(t, err)
	assert.Equal(t, "201.168", got)

	// A prefixed basis is resolved through its registered unit.
	_, err = r.Define("klick", MustFind(t, r, "km"), units.TypeLength)
	require.NoError(t, err)
	got, err = r.Convert("3klick", "m", false)
	require.NoError(t, err)
	assert.Equal(t, "3000", got)

	_, err = r.Define("angstrom", MustFind(t, r, "m"), "", units.WithPowerOfTen(-10))
	require.NoError(t, err)
	got, err = r.Convert("2angstrom", "A", false)
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	fortnight, err := r.Define("fortnight", MustFind(t, r, "d"), units.TypeTime, units.WithScale(14))
	require.NoError(t, err)
	assert.False(t, fortnight.Metric())
	got, err = r.Convert("1fortnight", "h", false)
	require.NoError(t, err)
	assert.Equal(t, "336", got)
}

func TestDefine_OffsetAndRule(t *testing.T) {
	r := newRegistry(t, units.PresetTemperature)

	// Rømer: °Rø = C·21/40 + 7.5, so C = (Rø − 7.5)·40/21.
	_, err := r.Define("Ro", MustFind(t, r, "C"), "", units.WithScale(40.0/21.0), units.WithOffset(-7.5*40.0/21.0))
	require.NoError(t, err)
	got, err := r.Convert("60Ro", "C", false)
	require.NoError(t, err)
	assert.Equal(t, "100", got)

	_, err = r.Define("De", MustFind(t, r, "C"), "", units.WithRule(rule.Linear(-2.0/3.0, 100)))
	require.NoError(t, err)
	got, err = r.Convert("0De", "K", false)
	require.NoError(t, err)
	assert.Equal(t, "373.15", got)

	_, err = r.Convert("1De2", "C2", false)
	assert.ErrorIs(t, err, units.ErrNonLinearExponent)
}

func TestDefine_Errors(t *testing.T) {
	r := newRegistry(t, units.PresetLength, units.PresetTime)
	other := newRegistry(t, units.PresetLength)
	m := MustFind(t, r, "m")

	cases := []struct {
		name   string
		symbol string
		basis  *units.Unit
		typ    string
		opts   []units.DefineOption
		want   error
		code   int
	}{
		{"digits", "m2", nil, units.TypeLength, nil, units.ErrInvalidSymbol, units.CodeInvalidSymbol},
		{"empty", "", nil, units.TypeLength, nil, units.ErrInvalidSymbol, units.CodeInvalidSymbol},
		{"slash", "m/s", nil, units.TypeLength, nil, units.ErrInvalidSymbol, units.CodeInvalidSymbol},
		{"duplicate", "ft", m, "", nil, units.ErrDuplicateDefinition, units.CodeDuplicateDefinition},
		{"missing type", "zz", nil, "", nil, units.ErrMissingType, units.CodeMissingType},
		{"type mismatch", "zz", m, units.TypeTime, nil, units.ErrTypeMismatch, units.CodeTypeMismatch},
		{"foreign basis", "zz", MustFind(t, other, "m"), "", nil, units.ErrUnknownUnit, units.CodeUnknownUnit},
		{"zero scale", "zz", m, "", []units.DefineOption{units.WithScale(0)}, rule.ErrZeroScale, units.CodeBadRule},
		{"nil func", "zz", m, "", []units.DefineOption{units.WithRule(rule.Rule{Forward: rule.Affine{Scale: 1}})}, rule.ErrNilFunc, units.CodeBadRule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Define(tc.symbol, tc.basis, tc.typ, tc.opts...)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.code, units.Code(err))
		})
	}
	_, err := r.Find("zz")
	assert.ErrorIs(t, err, units.ErrUnknownUnit, "failed definitions leave nothing behind")
}

func TestRelate(t *testing.T) {
	r := newRegistry(t, units.PresetLength, units.PresetTime)

	got, err := r.Convert("5000ft", "mi", false)
	require.NoError(t, err)
	assert.Equal(t, "0.94697", got)

	// A direct relation is one hop and wins over the path through in.
	require.NoError(t, r.Relate("ft", "mi", rule.Scale(1.0/5000)))
	got, err = r.Convert("5000ft", "mi", false)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	got, err = r.Convert("1mi", "ft", false)
	require.NoError(t, err)
	assert.Equal(t, "5000", got)

	assert.ErrorIs(t, r.Relate("in", "m", rule.Scale(0.0254)), units.ErrDuplicateDefinition)
	assert.ErrorIs(t, r.Relate("m", "in", rule.Scale(39.37)), units.ErrDuplicateDefinition)
	assert.ErrorIs(t, r.Relate("m", "s", rule.Scale(1)), units.ErrTypeMismatch)
	assert.ErrorIs(t, r.Relate("m", "zz", rule.Scale(1)), units.ErrUnknownUnit)
	assert.ErrorIs(t, r.Relate("zz", "m", rule.Scale(1)), units.ErrUnknownUnit)
	assert.ErrorIs(t, r.Relate("m", "m", rule.Scale(1)), units.ErrInvalidSymbol)
	assert.ErrorIs(t, r.Relate("yd", "mi", rule.Scale(0)), rule.ErrZeroScale)
}

func TestDelete(t *testing.T) {
	r := MustRegistry(t)

	err := r.Delete("in")
	assert.ErrorIs(t, err, units.ErrUnitInUse)
	assert.Equal(t, units.CodeUnitInUse, units.Code(err))
	assert.ErrorIs(t, r.Delete("zorkels"), units.ErrUnknownUnit)

	require.NoError(t, r.Delete("mi"))
	_, err = r.Find("mi")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.NotContains(t, r.Symbols(), "mi")

	// Relations of a deleted unit go with it.
	require.NoError(t, r.Delete("atm"))
	_, err = r.Convert("1bar", "atm", false)
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	got, err := r.Convert("1bar", "torr", false)
	require.NoError(t, err)
	assert.Equal(t, "750.06", got)

	// Once its dependants are gone a basis can be deleted.
	for _, s := range []string{"ft", "yd"} {
		require.NoError(t, r.Delete(s))
	}
	require.NoError(t, r.Delete("in"))
}

func TestSealAndClone(t *testing.T) {
	r := newRegistry(t, units.PresetLength)
	m := MustFind(t, r, "m")

	r.Seal()
	assert.True(t, r.Sealed())

	_, err := r.Define("zz", m, "")
	assert.ErrorIs(t, err, units.ErrSealed)
	assert.ErrorIs(t, r.Relate("ft", "mi", rule.Scale(1)), units.ErrSealed)
	assert.ErrorIs(t, r.Delete("mi"), units.ErrSealed)
	assert.ErrorIs(t, r.AddPresets(units.PresetTime), units.ErrSealed)
	assert.ErrorIs(t, r.AddPresets(units.PresetLength), units.ErrSealed)
	assert.Equal(t, units.CodeSealed, units.Code(r.Delete("mi")))

	// Reads still work.
	got, err := r.Convert("1km", "m", false)
	require.NoError(t, err)
	assert.Equal(t, "1000", got)

	c := r.Clone()
	assert.False(t, c.Sealed())
	_, err = c.Define("zz", MustFind(t, c, "m"), "", units.WithScale(2))
	require.NoError(t, err)
	require.NoError(t, c.Delete("mi"))

	_, err = r.Find("zz")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	MustFind(t, r, "mi")
	assert.Equal(t, r.Precision(), c.Precision())
}

func TestGetCompatible(t *testing.T) {
	r := MustRegistry(t)

	got := r.GetCompatible(MustFind(t, r, "ft"), 1)
	want := []string{"m"}
	for _, p := range units.Prefixes() {
		if p.Symbol != "μ" {
			want = append(want, p.Symbol+"m")
		}
	}
	want = append(want, "A", "bohr", "in", "ft", "yd", "mi")
	assert.Equal(t, want, got)

	sq := r.GetCompatible(MustFind(t, r, "cm"), 2)
	require.Len(t, sq, len(want))
	assert.Equal(t, "m2", sq[0])
	assert.Contains(t, sq, "cm2")
	assert.Contains(t, sq, "mi2")

	pressure := r.GetCompatible(MustFind(t, r, "mmHg"), 1)
	for _, s := range []string{"Pa", "kPa", "bar", "mbar", "atm", "torr", "psi", "mmHg"} {
		assert.Contains(t, pressure, s)
	}
	assert.NotContains(t, pressure, "katm")

	magnetic := r.GetCompatible(MustFind(t, r, "T"), 1)
	assert.Contains(t, magnetic, "G")
	assert.Contains(t, magnetic, "mT")
	assert.NotContains(t, magnetic, "Wb")

	assert.Equal(t, []string{"pH", "pOH"}, r.GetCompatible(MustFind(t, r, "pOH"), 1))
	assert.Nil(t, r.GetCompatible(nil, 1))
}

func TestAddPresets(t *testing.T) {
	r := newRegistry(t, units.PresetTime)
	assert.Equal(t, []string{"s", "min", "h", "d"}, r.Symbols())

	require.NoError(t, r.AddPresets(units.PresetTime))
	assert.Equal(t, []string{"s", "min", "h", "d"}, r.Symbols())

	err := r.AddPresets("zorkels")
	assert.ErrorIs(t, err, units.ErrUnknownPreset)
	assert.Equal(t, units.CodeOther, units.Code(err))

	require.NoError(t, r.AddPresets(units.PresetAll))
	MustFind(t, r, "psi")
	assert.Len(t, units.PresetGroups(), 16)

	_, err = units.NewRegistry(units.WithLogger(quietLogger()), units.WithPresets("zorkels"))
	assert.ErrorIs(t, err, units.ErrUnknownPreset)
}

func TestCode(t *testing.T) {
	assert.Equal(t, units.CodeOK, units.Code(nil))
	assert.Equal(t, units.CodeUnknownUnit, units.Code(fmt.Errorf("wrapped: %w", units.ErrUnknownUnit)))
	assert.Equal(t, units.CodeNoConversionPath, units.Code(units.ErrNoConversionPath))
	assert.Equal(t, units.CodeBadRule, units.Code(units.ErrBadDefinition))
	assert.Equal(t, units.CodeOther, units.Code(errors.New("boom")))
}

func TestEquate(t *testing.T) {
	r := newRegistry(t, units.PresetLength)
	_, err := r.Define("ha", nil, "area")
	require.NoError(t, err)
	require.NoError(t, r.Equate("ha", 1e4, "m2"))

	got, err := r.Convert("3ha", "km2", false)
	require.NoError(t, err)
	assert.Equal(t, "0.03", got)
	got, err = r.Convert("1000000ft2", "ha", false)
	require.NoError(t, err)
	assert.Equal(t, "9.2903", got)

	err = r.Delete("ha")
	assert.ErrorIs(t, err, units.ErrUnitInUse)

	c := r.Clone()
	got, err = c.Convert("1ha", "m2", false)
	require.NoError(t, err)
	assert.Equal(t, "10000", got)

	r.Seal()
	assert.ErrorIs(t, r.Equate("m", 1, "ha"), units.ErrSealed)
}

func TestEquate_Errors(t *testing.T) {
	r := MustRegistry(t)
	cases := []struct {
		name   string
		symbol string
		factor float64
		units  string
		want   error
	}{
		{"again", "L", 1e-3, "m3", units.ErrDuplicateDefinition},
		{"same type", "gal", 1, "L", units.ErrTypeMismatch},
		{"equated type", "g", 1, "L", units.ErrTypeMismatch},
		{"unknown", "zorkels", 1, "m3", units.ErrUnknownUnit},
		{"prefixed", "kg", 1, "m3", units.ErrInvalidSymbol},
		{"zero", "g", 0, "m3", rule.ErrZeroScale},
		{"dimensionless", "g", 1, "", units.ErrUnitSyntax},
		{"bad units", "g", 1, "zorkels", units.ErrUnknownUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, r.Equate(tc.symbol, tc.factor, tc.units), tc.want)
		})
	}
}

func TestAddPresets_VolumeLoadsLength(t *testing.T) {
	r := newRegistry(t, units.PresetVolume)
	MustFind(t, r, "in")

	got, err := r.Convert("1gal", "in3", false)
	require.NoError(t, err)
	assert.Equal(t, "231", got)
}

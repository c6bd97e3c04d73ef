package units_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpunits/units"
)

func TestConvertAll(t *testing.T) {
	r := MustRegistry(t)

	got, err := r.ConvertAll(context.Background(), []string{"5.00min", "5.00h", "5.00d"}, "s", units.UnitsOff)
	require.NoError(t, err)
	assert.Equal(t, []string{"300", "18000", "432000"}, got)

	got, err = r.ConvertAll(context.Background(), nil, "s", units.UnitsOff)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConvertAll_Large(t *testing.T) {
	r := MustRegistry(t)
	in := make([]string, 1000)
	want := make([]string, len(in))
	for i := range in {
		in[i] = units.Format(float64(i), 6) + "km"
		want[i] = units.Format(float64(i)*1000, 6) + "m"
	}

	got, err := r.ConvertAll(context.Background(), in, "m", units.UnitsOn)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConvertAll_Error(t *testing.T) {
	r := MustRegistry(t)

	got, err := r.ConvertAll(context.Background(), []string{"1m", "2kg", "3m"}, "cm", units.UnitsOff)
	require.ErrorIs(t, err, units.ErrIncompatibleUnits)
	assert.Contains(t, err.Error(), "values[1]")
	assert.Nil(t, got)
}

func TestConvertAll_Cancelled(t *testing.T) {
	r := MustRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ConvertAll(ctx, []string{"1m", "2m"}, "cm", units.UnitsOff)
	assert.ErrorIs(t, err, context.Canceled)
}

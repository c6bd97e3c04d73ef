package units_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpunits/units"
)

// quietLogger discards all log output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MustRegistry builds a registry with every preset loaded.
func MustRegistry(t *testing.T, opts ...units.Option) *units.Registry {
	t.Helper()
	opts = append([]units.Option{units.WithLogger(quietLogger()), units.WithPresets(units.PresetAll)}, opts...)
	r, err := units.NewRegistry(opts...)
	require.NoError(t, err)

	return r
}

// MustFind looks a unit up or fails the test.
func MustFind(t *testing.T, r *units.Registry, symbol string) *units.Unit {
	t.Helper()
	u, err := r.Find(symbol)
	require.NoError(t, err, "Find(%q)", symbol)

	return u
}

package units

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ConvertAll converts every value string into toUnits concurrently and
// returns the results in input order. The first failure cancels the rest
// and is returned with the index of the offending value.
func (r *Registry) ConvertAll(ctx context.Context, values []string, toUnits string, showUnits bool) ([]string, error) {
	out := make([]string, len(values))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, v := range values {
		i, v := i, v
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := r.Convert(v, toUnits, showUnits)
			if err != nil {
				return fmt.Errorf("values[%d]: %w", i, err)
			}
			out[i] = res

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

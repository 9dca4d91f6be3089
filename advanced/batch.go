package advanced

import (
	"context"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// Each transform call owns its grids and masks never change, so independent
// calls need no locking. A batch only bounds how many run at once.

// DistanceMaps2D runs t over every image concurrently. Results are in the
// order of images. If any call fails, the others are cancelled and only the
// first error is returned.
func DistanceMaps2D[T Number](ctx context.Context, t *DistanceTransform2D[T], images []Binary2D, options ...Option) ([]*Grid2D[T], error) {
	results := make([]*Grid2D[T], len(images))
	err := runBatch(ctx, len(images), newConfig(options), func(ctx context.Context, i int) error {
		grid, err := t.DistanceMap(ctx, images[i])
		results[i] = grid
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DistanceMaps3D is DistanceMaps2D for 3D images.
func DistanceMaps3D[T Number](ctx context.Context, t *DistanceTransform3D[T], images []Binary3D, options ...Option) ([]*Grid3D[T], error) {
	results := make([]*Grid3D[T], len(images))
	err := runBatch(ctx, len(images), newConfig(options), func(ctx context.Context, i int) error {
		grid, err := t.DistanceMap(ctx, images[i])
		results[i] = grid
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GeodesicPair2D is one marker and region input of a geodesic batch.
type GeodesicPair2D struct {
	Marker, Region Binary2D
}

// GeodesicPair3D is one marker and region input of a geodesic batch.
type GeodesicPair3D struct {
	Marker, Region Binary3D
}

// GeodesicDistanceMaps2D runs t over every pair concurrently, like
// DistanceMaps2D.
func GeodesicDistanceMaps2D[T Number](ctx context.Context, t *GeodesicDistanceTransform2D[T], pairs []GeodesicPair2D, options ...Option) ([]*Grid2D[T], error) {
	results := make([]*Grid2D[T], len(pairs))
	err := runBatch(ctx, len(pairs), newConfig(options), func(ctx context.Context, i int) error {
		grid, err := t.GeodesicDistanceMap(ctx, pairs[i].Marker, pairs[i].Region)
		results[i] = grid
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GeodesicDistanceMaps3D runs t over every pair concurrently, like
// DistanceMaps2D.
func GeodesicDistanceMaps3D[T Number](ctx context.Context, t *GeodesicDistanceTransform3D[T], pairs []GeodesicPair3D, options ...Option) ([]*Grid3D[T], error) {
	results := make([]*Grid3D[T], len(pairs))
	err := runBatch(ctx, len(pairs), newConfig(options), func(ctx context.Context, i int) error {
		grid, err := t.GeodesicDistanceMap(ctx, pairs[i].Marker, pairs[i].Region)
		results[i] = grid
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func runBatch(ctx context.Context, n int, cfg config, call func(ctx context.Context, i int) error) error {
	glog.V(1).Infof("batch of %d calls, %d at a time", n, cfg.concurrency)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return call(ctx, i)
		})
	}
	return g.Wait()
}

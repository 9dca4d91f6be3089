package advanced

import (
	"context"

	"github.com/golang/glog"
	"github.com/osuushi/chamfer/dbg"
	"github.com/osuushi/chamfer/internal"
	"github.com/pkg/errors"
)

// GeodesicDistanceTransform2D computes distances to a set of markers along
// paths that stay inside an allowed region.
//
// Unlike the unconstrained transform, a single forward and backward sweep
// does not reach around obstacles: a path that leaves a U-shaped bend and
// comes back against the raster order is only propagated one bend per
// sweep. Sweep pairs are therefore repeated until one changes nothing.
type GeodesicDistanceTransform2D[T Number] struct {
	mask   *Mask
	config config
}

func NewGeodesicDistanceTransform2D[T Number](mask *Mask, options ...Option) *GeodesicDistanceTransform2D[T] {
	return &GeodesicDistanceTransform2D[T]{mask, newConfig(options)}
}

func (t *GeodesicDistanceTransform2D[T]) Mask() *Mask {
	return t.mask
}

// GeodesicDistanceMap returns, for every foreground position of region, the
// weight of the lightest path from a marker that stays in region. Allowed
// positions no marker can reach hold the sentinel (the maximum value of T,
// or +Inf). Positions outside region are 0.
func (t *GeodesicDistanceTransform2D[T]) GeodesicDistanceMap(ctx context.Context, marker, region Binary2D) (*Grid2D[T], error) {
	if err := checkMask(t.mask, 2); err != nil {
		return nil, err
	}
	mw, mh := marker.Size()
	rw, rh := region.Size()
	if mw != rw || mh != rh {
		return nil, errors.Wrapf(ErrDimensionMismatch, "marker is %dx%d, region is %dx%d", mw, mh, rw, rh)
	}

	_, markers := foreground2D(marker)
	shape, allowed := foreground2D(region)
	values, err := geodesicMap[T](ctx, t.mask, shape, markers, allowed, t.config)
	if err != nil {
		return nil, err
	}
	return &Grid2D[T]{shape.Width, shape.Height, values}, nil
}

// GeodesicDistanceTransform3D is GeodesicDistanceTransform2D for 3D images.
type GeodesicDistanceTransform3D[T Number] struct {
	mask   *Mask
	config config
}

func NewGeodesicDistanceTransform3D[T Number](mask *Mask, options ...Option) *GeodesicDistanceTransform3D[T] {
	return &GeodesicDistanceTransform3D[T]{mask, newConfig(options)}
}

func (t *GeodesicDistanceTransform3D[T]) Mask() *Mask {
	return t.mask
}

// GeodesicDistanceMap is GeodesicDistanceTransform2D.GeodesicDistanceMap for
// 3D images.
func (t *GeodesicDistanceTransform3D[T]) GeodesicDistanceMap(ctx context.Context, marker, region Binary3D) (*Grid3D[T], error) {
	if err := checkMask(t.mask, 3); err != nil {
		return nil, err
	}
	mw, mh, md := marker.Size()
	rw, rh, rd := region.Size()
	if mw != rw || mh != rh || md != rd {
		return nil, errors.Wrapf(ErrDimensionMismatch, "marker is %dx%dx%d, region is %dx%dx%d", mw, mh, md, rw, rh, rd)
	}

	_, markers := foreground3D(marker)
	shape, allowed := foreground3D(region)
	values, err := geodesicMap[T](ctx, t.mask, shape, markers, allowed, t.config)
	if err != nil {
		return nil, err
	}
	return &Grid3D[T]{shape.Width, shape.Height, shape.Depth, values}, nil
}

func geodesicMap[T Number](ctx context.Context, mask *Mask, shape internal.Shape, markers, allowed []bool, cfg config) ([]T, error) {
	acc := internal.NewAccumulator[T]()
	values := make([]T, shape.Len())
	for i := range values {
		if !allowed[i] {
			if markers[i] && cfg.markerPolicy == RejectOutsideMarkers {
				x, y, z := i%shape.Width, (i/shape.Width)%shape.Height, i/(shape.Width*shape.Height)
				return nil, errors.Wrapf(ErrMarkerOutOfMask, "marker at (%d,%d,%d)", x, y, z)
			}
			continue
		}
		if !markers[i] {
			values[i] = acc.Sentinel
		}
	}

	var name string
	if glog.V(1) {
		name = dbg.Name(&values)
		glog.Infof("geodesic map %s: %dx%dx%d, %d offsets", name, shape.Width, shape.Height, shape.Depth, mask.Len())
	}

	forward, backward := mask.steps(true), mask.steps(false)
	cycles := 0
	for modified := true; modified; {
		modified = false
		cycles++
		for _, dir := range []internal.Direction{internal.Forward, internal.Backward} {
			// Cancellation discards the partially relaxed map.
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "geodesic map cancelled after %d cycles", cycles-1)
			}
			steps := forward
			if dir == internal.Backward {
				steps = backward
			}
			changed := internal.Sweep(shape, steps, values, allowed, dir, acc)
			if changed > 0 {
				modified = true
			}
			if glog.V(2) {
				glog.Infof("geodesic map %s: cycle %d %s sweep changed %d positions", name, cycles, dir, changed)
			}
		}
	}
	if glog.V(1) {
		glog.Infof("geodesic map %s: converged after %d cycles", name, cycles)
	}

	if cfg.normalize {
		acc.Normalize(values, allowed, int64(mask.NormalizationWeight()), mask.FloatNormalizationWeight())
	}
	return values, nil
}

package advanced

import (
	"context"

	"github.com/golang/glog"
	"github.com/osuushi/chamfer/dbg"
	"github.com/osuushi/chamfer/internal"
	"github.com/pkg/errors"
)

// DistanceTransform2D computes chamfer distance maps of 2D binary images.
// The type of T picks the numeric policy: integer types accumulate integer
// weights and saturate at their maximum value, float types accumulate float
// weights and use +Inf for positions with no source at all.
//
// A transform holds no state between calls and can be shared between
// goroutines.
type DistanceTransform2D[T Number] struct {
	mask   *Mask
	config config
}

func NewDistanceTransform2D[T Number](mask *Mask, options ...Option) *DistanceTransform2D[T] {
	return &DistanceTransform2D[T]{mask, newConfig(options)}
}

func (t *DistanceTransform2D[T]) Mask() *Mask {
	return t.mask
}

// DistanceMap gives every foreground position the weight of the lightest
// path to a background position, and every background position 0. With
// WithInverted the roles are swapped.
func (t *DistanceTransform2D[T]) DistanceMap(ctx context.Context, image Binary2D) (*Grid2D[T], error) {
	if err := checkMask(t.mask, 2); err != nil {
		return nil, err
	}
	shape, fg := foreground2D(image)
	values, err := distanceMap[T](ctx, t.mask, shape, fg, t.config)
	if err != nil {
		return nil, err
	}
	return &Grid2D[T]{shape.Width, shape.Height, values}, nil
}

// DistanceTransform3D is DistanceTransform2D for 3D images.
type DistanceTransform3D[T Number] struct {
	mask   *Mask
	config config
}

func NewDistanceTransform3D[T Number](mask *Mask, options ...Option) *DistanceTransform3D[T] {
	return &DistanceTransform3D[T]{mask, newConfig(options)}
}

func (t *DistanceTransform3D[T]) Mask() *Mask {
	return t.mask
}

// DistanceMap is DistanceTransform2D.DistanceMap for 3D images.
func (t *DistanceTransform3D[T]) DistanceMap(ctx context.Context, image Binary3D) (*Grid3D[T], error) {
	if err := checkMask(t.mask, 3); err != nil {
		return nil, err
	}
	shape, fg := foreground3D(image)
	values, err := distanceMap[T](ctx, t.mask, shape, fg, t.config)
	if err != nil {
		return nil, err
	}
	return &Grid3D[T]{shape.Width, shape.Height, shape.Depth, values}, nil
}

func checkMask(mask *Mask, dim int) error {
	if mask == nil {
		return errors.Wrap(ErrInvalidMask, "no mask")
	}
	if mask.Dim() != dim {
		return errors.Wrapf(ErrDimensionMismatch, "%dD mask used on a %dD image", mask.Dim(), dim)
	}
	return nil
}

// Two sweeps are enough here: with no region to get around, every lightest
// path can be split into a part the forward sweep sees and a part the
// backward sweep sees. The triangle inequality on mask weights keeps this
// true for knight moves.
func distanceMap[T Number](ctx context.Context, mask *Mask, shape internal.Shape, fg []bool, cfg config) ([]T, error) {
	acc := internal.NewAccumulator[T]()
	values := make([]T, shape.Len())
	for i, f := range fg {
		if f != cfg.inverted {
			values[i] = acc.Sentinel
		}
	}

	var name string
	if glog.V(1) {
		name = dbg.Name(&values)
		glog.Infof("distance map %s: %dx%dx%d, %d offsets", name, shape.Width, shape.Height, shape.Depth, mask.Len())
	}

	for _, dir := range []internal.Direction{internal.Forward, internal.Backward} {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "distance map cancelled")
		}
		changed := internal.Sweep(shape, mask.steps(dir == internal.Forward), values, nil, dir, acc)
		if glog.V(2) {
			glog.Infof("distance map %s: %s sweep changed %d positions", name, dir, changed)
		}
	}

	if cfg.normalize {
		acc.Normalize(values, nil, int64(mask.NormalizationWeight()), mask.FloatNormalizationWeight())
	}
	return values, nil
}

// Chamfer distance maps for Go.
//
// This package computes distance maps of 2D and 3D binary images by
// propagating the weights of a chamfer mask, a small table of neighbor
// offsets whose weights approximate Euclidean lengths. It also computes
// geodesic distance maps, where distances are measured along paths that
// stay inside an allowed region.
//
// The functions here take a mask by its catalog label and produce 16-bit
// maps. See the advanced package for explicit masks, float maps, inverted
// maps and batches.
package chamfer

import (
	"context"

	"github.com/osuushi/chamfer/advanced"
)

type Binary2D = advanced.Binary2D
type Binary3D = advanced.Binary3D
type Mask = advanced.Mask
type Offset = advanced.Offset

// Unreachable is the value of positions that no path reaches in the maps
// returned by this package.
const Unreachable = 65535

// Take a binary image and a mask label, and compute the distance of every
// foreground pixel to the nearest background pixel. With normalize, one
// orthogonal step counts as 1 whatever the mask weights.
func DistanceMap(ctx context.Context, image Binary2D, label string, normalize bool) (*advanced.Grid2D[uint16], error) {
	mask, err := advanced.Masks2D.Lookup(label)
	if err != nil {
		return nil, err
	}
	t := advanced.NewDistanceTransform2D[uint16](mask, advanced.WithNormalization(normalize))
	return t.DistanceMap(ctx, image)
}

// DistanceMap3D is DistanceMap for 3D images and 3D mask labels.
func DistanceMap3D(ctx context.Context, image Binary3D, label string, normalize bool) (*advanced.Grid3D[uint16], error) {
	mask, err := advanced.Masks3D.Lookup(label)
	if err != nil {
		return nil, err
	}
	t := advanced.NewDistanceTransform3D[uint16](mask, advanced.WithNormalization(normalize))
	return t.DistanceMap(ctx, image)
}

// Compute the distance of every pixel of region to the nearest marker pixel,
// moving only through region. Pixels of region that cannot be reached are
// Unreachable, pixels outside of it are 0. Markers outside of region are
// ignored.
func GeodesicDistanceMap(ctx context.Context, marker, region Binary2D, label string, normalize bool) (*advanced.Grid2D[uint16], error) {
	mask, err := advanced.Masks2D.Lookup(label)
	if err != nil {
		return nil, err
	}
	t := advanced.NewGeodesicDistanceTransform2D[uint16](mask, advanced.WithNormalization(normalize))
	return t.GeodesicDistanceMap(ctx, marker, region)
}

// GeodesicDistanceMap3D is GeodesicDistanceMap for 3D images and 3D mask
// labels.
func GeodesicDistanceMap3D(ctx context.Context, marker, region Binary3D, label string, normalize bool) (*advanced.Grid3D[uint16], error) {
	mask, err := advanced.Masks3D.Lookup(label)
	if err != nil {
		return nil, err
	}
	t := advanced.NewGeodesicDistanceTransform3D[uint16](mask, advanced.WithNormalization(normalize))
	return t.GeodesicDistanceMap(ctx, marker, region)
}

// Labels2D lists the labels accepted by DistanceMap and GeodesicDistanceMap.
func Labels2D() []string {
	return advanced.Masks2D.Labels()
}

// Labels3D lists the labels accepted by the 3D functions.
func Labels3D() []string {
	return advanced.Masks3D.Labels()
}

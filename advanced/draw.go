package advanced

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/chamfer/internal"
	"github.com/pkg/errors"
)

// Debug and CLI helpers. The transforms never call into this file.

// Render2D draws a distance map as a gray ramp from black (0) to white (the
// largest reachable value), with each sample scaled to a square of scale
// pixels. Unreachable samples are drawn dark red.
func Render2D[T Number](grid *Grid2D[T], scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	acc := internal.NewAccumulator[T]()
	summary := Summarize2D(grid)

	c := gg.NewContext(grid.Width*scale, grid.Height*scale)
	c.SetRGB(0, 0, 0)
	c.Clear()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := grid.At(x, y)
			switch {
			case acc.IsSentinel(v):
				c.SetRGB(0.5, 0, 0)
			case summary.Max > 0:
				level := float64(v) / summary.Max
				c.SetRGB(level, level, level)
			default:
				continue
			}
			c.DrawRectangle(float64(x*scale), float64(y*scale), float64(scale), float64(scale))
			c.Fill()
		}
	}
	return c.Image()
}

// Preview prints img inline to an iTerm-compatible terminal.
func Preview(img image.Image, w io.Writer) error {
	return errors.Wrap(imgcat.CatImage(img, w), "preview")
}

// Overlay2D blends c over a gray reference image wherever overlay is
// foreground. Opacity is a percentage: 0 leaves the reference untouched, 100
// paints c.
func Overlay2D(reference *Grid2D[uint8], overlay Binary2D, c color.Color, opacity int) (image.Image, error) {
	ow, oh := overlay.Size()
	if ow != reference.Width || oh != reference.Height {
		return nil, errors.Wrapf(ErrDimensionMismatch, "reference is %dx%d, overlay is %dx%d", reference.Width, reference.Height, ow, oh)
	}
	if opacity < 0 {
		opacity = 0
	} else if opacity > 100 {
		opacity = 100
	}
	over := opacity
	under := 100 - opacity
	r, g, b := rgb255(c)

	dc := gg.NewContext(reference.Width, reference.Height)
	for y := 0; y < reference.Height; y++ {
		for x := 0; x < reference.Width; x++ {
			gray := int(reference.At(x, y))
			if overlay.Foreground(x, y) {
				dc.SetRGB255((gray*under+r*over)/100, (gray*under+g*over)/100, (gray*under+b*over)/100)
			} else {
				dc.SetRGB255(gray, gray, gray)
			}
			dc.SetPixel(x, y)
		}
	}
	return dc.Image(), nil
}

type planeView struct {
	image Binary3D
	z     int
}

func (p planeView) Size() (int, int) {
	w, h, _ := p.image.Size()
	return w, h
}

func (p planeView) Foreground(x, y int) bool {
	return p.image.Foreground(x, y, p.z)
}

// Overlay3D applies Overlay2D to every plane.
func Overlay3D(reference *Grid3D[uint8], overlay Binary3D, c color.Color, opacity int) ([]image.Image, error) {
	ow, oh, od := overlay.Size()
	if ow != reference.Width || oh != reference.Height || od != reference.Depth {
		return nil, errors.Wrapf(ErrDimensionMismatch, "reference is %dx%dx%d, overlay is %dx%dx%d",
			reference.Width, reference.Height, reference.Depth, ow, oh, od)
	}
	planes := make([]image.Image, reference.Depth)
	for z := range planes {
		plane, err := Overlay2D(reference.Slice(z), planeView{overlay, z}, c, opacity)
		if err != nil {
			return nil, err
		}
		planes[z] = plane
	}
	return planes, nil
}

func rgb255(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

package advanced

import (
	"image"
	"image/color"
	"math"

	"github.com/osuushi/chamfer/internal"
)

// GridFromImage reads the gray level of every pixel of img into a 16-bit
// grid. The grid origin is the top left corner of img's bounds.
func GridFromImage(img image.Image) *Grid2D[uint16] {
	bounds := img.Bounds()
	grid := NewGrid2D[uint16](bounds.Dx(), bounds.Dy())
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			gray := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			grid.Set(x, y, gray.Y)
		}
	}
	return grid
}

// GridFromGray8 reads an 8-bit gray image without conversion.
func GridFromGray8(img *image.Gray) *Grid2D[uint8] {
	bounds := img.Bounds()
	grid := NewGrid2D[uint8](bounds.Dx(), bounds.Dy())
	for y := 0; y < grid.Height; y++ {
		copy(grid.Data[y*grid.Width:(y+1)*grid.Width], img.Pix[y*img.Stride:y*img.Stride+grid.Width])
	}
	return grid
}

// Gray16 writes a grid into a 16-bit gray image. Values are rounded and
// clamped to [0, 65535]; the sentinel of T maps to 65535.
func Gray16[T Number](grid *Grid2D[T]) *image.Gray16 {
	acc := internal.NewAccumulator[T]()
	img := image.NewGray16(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := grid.At(x, y)
			level := uint16(math.MaxUint16)
			if !acc.IsSentinel(v) {
				f := math.Round(float64(v))
				switch {
				case f < 0:
					level = 0
				case f < math.MaxUint16:
					level = uint16(f)
				}
			}
			img.SetGray16(x, y, color.Gray16{Y: level})
		}
	}
	return img
}

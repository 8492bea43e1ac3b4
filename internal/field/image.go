package field

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// Image colors every plane cell; the result is one pixel per cell.
func Image(plane mat.Matrix, cm *Colormap, scale float64) *image.RGBA {
	rows, cols := plane.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA(x, y, cm.Map(plane.At(y, x), scale))
		}
	}
	return img
}

// Upsample resizes by nearest neighbour. When the target is an integer
// multiple of the source this is plain pixel repetition.
func Upsample(src *image.RGBA, w, h int) *image.RGBA {
	sb := src.Bounds()
	if sb.Dx() == w && sb.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sb.Dy()/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sb.Dx()/w
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}

// Render colors a parsed grid and, when size > 0, resamples it to a
// size×size canvas.
func Render(g *Grid, cm *Colormap, scale float64, slice, size int) (*image.RGBA, error) {
	plane, err := g.Plane(slice)
	if err != nil {
		return nil, err
	}
	img := Image(plane, cm, scale)
	if size > 0 {
		img = Upsample(img, size, size)
	}
	return img, nil
}

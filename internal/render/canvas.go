package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Canvas is a square RGBA buffer with clipped drawing primitives.
type Canvas struct {
	Img  *image.RGBA
	Size int
}

func NewCanvas(size int, bg color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return &Canvas{Img: img, Size: size}
}

// Set writes one pixel; coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Size || y >= c.Size {
		return
	}
	c.Img.SetRGBA(x, y, col)
}

// Overlay copies src over the canvas, replacing pixels rather than
// blending them.
func (c *Canvas) Overlay(src image.Image) {
	draw.Draw(c.Img, c.Img.Bounds(), src, src.Bounds().Min, draw.Src)
}

// DrawLine draws a line using Bresenham's algorithm. The segment is
// clipped to the canvas first, so only visible pixels are walked.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	x0, y0, x1, y1, ok := ClipLine(x0, y0, x1, y1, c.Size, c.Size)
	if !ok {
		return
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a one-pixel outline with the midpoint algorithm.
// A zero radius marks the centre pixel; a negative radius draws nothing.
// Arguments are expected within geom.Limit.
func (c *Canvas) DrawCircle(cx, cy, r int, col color.RGBA) {
	if r < 0 {
		return
	}
	if cx+r < 0 || cy+r < 0 || cx-r >= c.Size || cy-r >= c.Size {
		return
	}
	if r == 0 {
		c.Set(cx, cy, col)
		return
	}
	if c.inside(cx, cy, r) {
		return
	}
	if r > 2*c.Size {
		c.scanCircle(cx, cy, r, col)
		return
	}

	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.plot8(cx, cy, x, y, col)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) plot8(cx, cy, x, y int, col color.RGBA) {
	c.Set(cx+x, cy+y, col)
	c.Set(cx-x, cy+y, col)
	c.Set(cx+x, cy-y, col)
	c.Set(cx-x, cy-y, col)
	c.Set(cx+y, cy+x, col)
	c.Set(cx-y, cy+x, col)
	c.Set(cx+y, cy-x, col)
	c.Set(cx-y, cy-x, col)
}

// inside reports whether the whole canvas lies strictly within the circle,
// leaving no outline pixel to draw.
func (c *Canvas) inside(cx, cy, r int) bool {
	lim := float64(r-1) * float64(r-1)
	for _, p := range [][2]int{{0, 0}, {c.Size - 1, 0}, {0, c.Size - 1}, {c.Size - 1, c.Size - 1}} {
		dx, dy := float64(p[0]-cx), float64(p[1]-cy)
		if dx*dx+dy*dy >= lim {
			return false
		}
	}
	return true
}

// scanCircle solves the outline once per canvas row and column. It is used
// for radii much larger than the canvas, where the midpoint walk would
// spend nearly all its steps off screen.
func (c *Canvas) scanCircle(cx, cy, r int, col color.RGBA) {
	rr := float64(r) * float64(r)
	for y := max(0, cy-r); y <= min(c.Size-1, cy+r); y++ {
		d := float64(y - cy)
		dx := int(math.Round(math.Sqrt(rr - d*d)))
		c.Set(cx+dx, y, col)
		c.Set(cx-dx, y, col)
	}
	for x := max(0, cx-r); x <= min(c.Size-1, cx+r); x++ {
		d := float64(x - cx)
		dy := int(math.Round(math.Sqrt(rr - d*d)))
		c.Set(x, cy+dy, col)
		c.Set(x, cy-dy, col)
	}
}

type outcode uint8

const (
	codeLeft outcode = 1 << iota
	codeRight
	codeTop
	codeBottom
)

func outcodeOf(x, y, maxX, maxY float64) outcode {
	var code outcode
	if x < 0 {
		code |= codeLeft
	} else if x > maxX {
		code |= codeRight
	}
	if y < 0 {
		code |= codeTop
	} else if y > maxY {
		code |= codeBottom
	}
	return code
}

// ClipLine trims a segment to the w×h rectangle at the origin with
// Cohen-Sutherland. ok is false when no part of the segment is inside.
// Segments already inside are returned unchanged.
func ClipLine(x0, y0, x1, y1, w, h int) (int, int, int, int, bool) {
	maxX, maxY := float64(w-1), float64(h-1)
	fx0, fy0, fx1, fy1 := float64(x0), float64(y0), float64(x1), float64(y1)
	c0, c1 := outcodeOf(fx0, fy0, maxX, maxY), outcodeOf(fx1, fy1, maxX, maxY)
	if c0|c1 == 0 {
		return x0, y0, x1, y1, true
	}

	for i := 0; i < 8; i++ {
		if c0|c1 == 0 {
			return round(fx0), round(fy0), round(fx1), round(fy1), true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		code := c0
		if code == 0 {
			code = c1
		}
		var x, y float64
		switch {
		case code&codeBottom != 0:
			x, y = fx0+(fx1-fx0)*(maxY-fy0)/(fy1-fy0), maxY
		case code&codeTop != 0:
			x, y = fx0+(fx1-fx0)*(0-fy0)/(fy1-fy0), 0
		case code&codeRight != 0:
			x, y = maxX, fy0+(fy1-fy0)*(maxX-fx0)/(fx1-fx0)
		default:
			x, y = 0, fy0+(fy1-fy0)*(0-fx0)/(fx1-fx0)
		}

		if code == c0 {
			fx0, fy0 = x, y
			c0 = outcodeOf(x, y, maxX, maxY)
		} else {
			fx1, fy1 = x, y
			c1 = outcodeOf(x, y, maxX, maxY)
		}
	}
	if c0|c1 != 0 {
		return 0, 0, 0, 0, false
	}
	return round(fx0), round(fy0), round(fx1), round(fy1), true
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

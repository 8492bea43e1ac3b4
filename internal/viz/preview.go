package viz

import (
	"github.com/san-kum/cellrender/internal/export"
	"github.com/san-kum/cellrender/internal/render"
)

// Preview draws the visible entities of a rendered frame onto a Braille
// canvas cols characters wide. Edges follow the same rules as the image.
func Preview(res *render.Result, canvasSize, cols int, adhesion bool) *Canvas {
	if cols < 1 {
		cols = 1
	}
	dots := cols * 2
	rows := (dots + 3) / 4
	c := NewCanvas(cols, rows)
	scale := float64(dots) / float64(canvasSize)

	at := func(v int) int { return int(float64(v) * scale) }

	for _, e := range res.Entities {
		if !e.Kind.Visible() || e.Invalid {
			continue
		}
		c.DrawCircle(at(e.X), at(e.Y), at(e.Radius))
	}

	if !adhesion {
		return c
	}
	for _, edge := range export.Edges(res.Entities) {
		a, b := edge[0], edge[1]
		c.DrawLine(at(a.X), at(a.Y), at(b.X), at(b.Y))
	}
	return c
}

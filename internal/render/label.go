package render

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelMargin = 8

// LabelText is the caption for a frame, with simulated time appended when
// the minutes-per-frame value is known.
func LabelText(id string, step int, minutesPerFrame float64) string {
	if step < 0 {
		return "frame: " + id
	}
	s := fmt.Sprintf("step: %05d", step)
	if minutesPerFrame > 0 {
		s += fmt.Sprintf("  t=%.1f min", float64(step)*minutesPerFrame)
	}
	return s
}

func (r *Renderer) drawLabel(c *Canvas, f Frame) {
	d := &font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(r.palette.Label),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(labelMargin),
			Y: fixed.I(c.Size - labelMargin),
		},
	}
	d.DrawString(LabelText(f.ID, f.Step(), r.sim.MinutesPerFrame))
}

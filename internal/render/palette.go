package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/snapshot"
)

type Palette struct {
	Background color.RGBA
	Adhesion   color.RGBA
	Guide      color.RGBA
	Label      color.RGBA
	kinds      map[snapshot.Kind]color.RGBA
}

func NewPalette(c config.Colors) (Palette, error) {
	var p Palette
	var err error

	fixed := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.Background, &p.Background},
		{"adhesion", c.Adhesion, &p.Adhesion},
		{"guide", c.Guide, &p.Guide},
		{"label", c.Label, &p.Label},
	}
	for _, f := range fixed {
		if *f.dst, err = ParseColor(f.hex); err != nil {
			return Palette{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	p.kinds = make(map[snapshot.Kind]color.RGBA)
	kinds := map[snapshot.Kind]string{
		snapshot.KindWorker:   c.Worker,
		snapshot.KindDead:     c.Dead,
		snapshot.KindTarget:   c.Target,
		snapshot.KindSender:   c.Sender,
		snapshot.KindReceiver: c.Receiver,
		snapshot.KindEnemy:    c.Enemy,
	}
	for k, hex := range kinds {
		col, err := ParseColor(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s: %w", k, err)
		}
		p.kinds[k] = col
	}
	return p, nil
}

// Kind returns the outline color for a cell type.
func (p Palette) Kind(k snapshot.Kind) color.RGBA {
	return p.kinds[k]
}

func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

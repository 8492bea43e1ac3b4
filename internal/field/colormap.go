package field

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// LUTSize matches the 256-entry tables the field images were calibrated
// against: an integer value indexes the table directly.
const LUTSize = 256

var stops = map[string][]string{
	"reds":    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"greys":   {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	"plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
}

type Colormap struct {
	Name string
	lut  [LUTSize]color.RGBA
}

// NewColormap builds a lookup table by linear RGB interpolation between
// evenly spaced stops.
func NewColormap(name string) (*Colormap, error) {
	hexes, ok := stops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownColormap, name, Colormaps())
	}

	keys := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		keys[i] = c
	}

	cm := &Colormap{Name: name}
	segs := float64(len(keys) - 1)
	for i := range cm.lut {
		t := float64(i) / float64(LUTSize-1) * segs
		k := int(t)
		if k >= len(keys)-1 {
			k = len(keys) - 2
		}
		c := keys[k].BlendRgb(keys[k+1], t-float64(k)).Clamped()
		r, g, b := c.RGB255()
		cm.lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return cm, nil
}

func Colormaps() []string {
	names := make([]string, 0, len(stops))
	for name := range stops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At clamps out-of-range indices to the end colors.
func (c *Colormap) At(i int) color.RGBA {
	if i < 0 {
		i = 0
	}
	if i >= LUTSize {
		i = LUTSize - 1
	}
	return c.lut[i]
}

// Map truncates v to an integer concentration, multiplies it by scale and
// looks the result up. Negative concentrations map to the first color.
func (c *Colormap) Map(v, scale float64) color.RGBA {
	if math.IsNaN(v) || v < 0 {
		return c.At(0)
	}
	idx := math.Floor(math.Trunc(v) * scale)
	if idx >= LUTSize {
		return c.At(LUTSize - 1)
	}
	return c.At(int(idx))
}

package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/render"
)

// FrameToSVG writes the vector layers of a rendered frame: guides, cell
// outlines and adhesion edges. The field raster is not included.
func FrameToSVG(res *render.Result, s config.Settings) (string, error) {
	if res == nil {
		return "", nil
	}
	pal, err := render.NewPalette(s.Colors)
	if err != nil {
		return "", err
	}

	size := s.CanvasSize
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, hex(pal.Background)))

	if s.Guides {
		half := size / 2
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1">
<circle cx="%d" cy="%d" r="%d"/>
<line x1="0" y1="%d" x2="%d" y2="%d"/>
<line x1="%d" y1="0" x2="%d" y2="%d"/>
</g>
`, hex(pal.Guide), half, half, half, half, size, half, half, half, size))
	}

	sb.WriteString(`<g fill="none" stroke-width="1">` + "\n")
	for _, e := range res.Entities {
		if !e.Kind.Visible() || e.Invalid {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle id="cell-%d" class="%s" cx="%d" cy="%d" r="%d" stroke="%s"/>
`, e.ID, strings.ToLower(e.Kind.String()), e.X, e.Y, e.Radius, hex(pal.Kind(e.Kind))))
	}
	sb.WriteString("</g>\n")

	if s.DrawAdhesion {
		sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">`+"\n", hex(pal.Adhesion)))
		for _, edge := range Edges(res.Entities) {
			sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, edge[0].X, edge[0].Y, edge[1].X, edge[1].Y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// Edges resolves adjacency between visible entities by declared id.
// Unknown ids, hidden endpoints and invalid endpoints are skipped.
func Edges(ents []render.Entity) [][2]render.Entity {
	byID := make(map[int]render.Entity, len(ents))
	for _, e := range ents {
		byID[e.ID] = e
	}

	var edges [][2]render.Entity
	for _, e := range ents {
		if !e.Kind.Visible() || e.Invalid {
			continue
		}
		for _, id := range e.Adjacency {
			other, ok := byID[id]
			if !ok || !other.Kind.Visible() || other.Invalid {
				continue
			}
			edges = append(edges, [2]render.Entity{e, other})
		}
	}
	return edges
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

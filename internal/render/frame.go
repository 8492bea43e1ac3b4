package render

import (
	"fmt"
	"image"
	"strconv"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/field"
	"github.com/san-kum/cellrender/internal/geom"
	"github.com/san-kum/cellrender/internal/snapshot"
)

// Frame is everything needed to draw one time step.
type Frame struct {
	ID      string
	Records []snapshot.Record
	Field   *field.Grid
}

// Step parses the frame id as a step number, or -1.
func (f Frame) Step() int {
	n, err := strconv.Atoi(f.ID)
	if err != nil {
		return -1
	}
	return n
}

// Entity is a record projected into canvas space. Invalid is set when the
// position or radius is not finite or lies beyond geom.Limit; such an
// entity is reported and never drawn.
type Entity struct {
	ID        int
	Kind      snapshot.Kind
	Pos       geom.Point
	X, Y      int
	Radius    int
	Adjacency []int
	Invalid   bool
}

type Result struct {
	Image     *image.RGBA
	Entities  []Entity
	Drawn     int
	Hidden    int
	Edges     int
	Anomalies []error
}

// Count returns how many entities of kind k the frame held.
func (r *Result) Count(k snapshot.Kind) int {
	n := 0
	for _, e := range r.Entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

type Renderer struct {
	sim      config.SimConfig
	settings config.Settings
	tr       geom.Transform
	palette  Palette
	cmap     *field.Colormap
}

// NewRenderer checks the settings and palette. The grid width is only
// needed when cells are drawn.
func NewRenderer(sim config.SimConfig, s *config.Settings) (*Renderer, error) {
	if s.Cells && sim.GridWidth <= 0 {
		return nil, fmt.Errorf("%w: width %d", config.ErrInvalidGrid, sim.GridWidth)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pal, err := NewPalette(s.Colors)
	if err != nil {
		return nil, err
	}
	cm, err := field.NewColormap(s.Colormap)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		sim:      sim,
		settings: *s,
		palette:  pal,
		cmap:     cm,
	}
	if sim.GridWidth > 0 {
		r.tr = geom.NewTransform(s.CanvasSize, sim.GridWidth, s.ScaleRadius)
	}
	return r, nil
}

// Render draws one frame onto a freshly allocated canvas. A field-only
// frame at native resolution is the colored field and nothing else.
func (r *Renderer) Render(f Frame) (*Result, error) {
	if !r.settings.Cells && r.settings.FieldNative && f.Field != nil {
		img, err := field.Render(f.Field, r.cmap, r.settings.FieldScale, r.settings.FieldSlice, 0)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", f.ID, err)
		}
		return &Result{Image: img}, nil
	}

	c := NewCanvas(r.settings.CanvasSize, r.palette.Background)

	if f.Field != nil {
		img, err := field.Render(f.Field, r.cmap, r.settings.FieldScale, r.settings.FieldSlice, r.settings.CanvasSize)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", f.ID, err)
		}
		c.Overlay(img)
	}

	if r.settings.Guides {
		r.drawGuides(c)
	}

	res := &Result{}
	if r.settings.Cells {
		res.Entities = r.project(f.Records)
		r.drawCells(c, f.ID, res)
		if r.settings.DrawAdhesion {
			r.drawAdhesion(c, f.ID, res)
		}
	}

	if r.settings.Label {
		r.drawLabel(c, f)
	}

	res.Image = c.Img
	return res, nil
}

func (r *Renderer) project(recs []snapshot.Record) []Entity {
	ents := make([]Entity, len(recs))
	for i, rec := range recs {
		p := r.tr.Project(rec.Pos.X, rec.Pos.Y)
		e := Entity{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Pos:       p,
			Adjacency: rec.Adjacency,
		}
		if geom.Drawable(p, r.tr.RadiusF(rec.Radius)) {
			e.X, e.Y = p.Pixel()
			e.Radius = r.tr.Radius(rec.Radius)
		} else {
			e.Invalid = true
		}
		ents[i] = e
	}
	return ents
}

func (r *Renderer) drawCells(c *Canvas, frame string, res *Result) {
	for _, e := range res.Entities {
		if !e.Kind.Visible() {
			res.Hidden++
			continue
		}
		if e.Invalid {
			res.Anomalies = append(res.Anomalies, &AnomalyError{
				Frame:  frame,
				CellID: e.ID,
				Detail: fmt.Sprintf("x=%g y=%g, not drawn", e.Pos.X, e.Pos.Y),
				Err:    ErrOutOfRange,
			})
			continue
		}
		if !r.tr.InBounds(e.Pos) {
			res.Anomalies = append(res.Anomalies, &AnomalyError{
				Frame:  frame,
				CellID: e.ID,
				Detail: fmt.Sprintf("x=%.1f y=%.1f", e.Pos.X, e.Pos.Y),
				Err:    ErrOutOfRange,
			})
		}
		c.DrawCircle(e.X, e.Y, e.Radius, r.palette.Kind(e.Kind))
		res.Drawn++
	}
}

// drawAdhesion resolves adjacency by declared id, so record order and id
// space are free to diverge. Edges touching a hidden or invalid cell are
// not drawn.
func (r *Renderer) drawAdhesion(c *Canvas, frame string, res *Result) {
	byID := make(map[int]*Entity, len(res.Entities))
	for i := range res.Entities {
		byID[res.Entities[i].ID] = &res.Entities[i]
	}

	for _, e := range res.Entities {
		if !e.Kind.Visible() || e.Invalid {
			continue
		}
		for _, id := range e.Adjacency {
			other, ok := byID[id]
			if !ok {
				res.Anomalies = append(res.Anomalies, &AnomalyError{
					Frame:  frame,
					CellID: e.ID,
					Detail: fmt.Sprintf("id %d", id),
					Err:    ErrUnknownAdjacency,
				})
				continue
			}
			if !other.Kind.Visible() || other.Invalid {
				continue
			}
			c.DrawLine(e.X, e.Y, other.X, other.Y, r.palette.Adhesion)
			res.Edges++
		}
	}
}

// drawGuides outlines the dish and its centre axes.
func (r *Renderer) drawGuides(c *Canvas) {
	half := c.Size / 2
	c.DrawCircle(half, half, half, r.palette.Guide)
	c.DrawLine(0, half, c.Size, half, r.palette.Guide)
	c.DrawLine(half, 0, half, c.Size, r.palette.Guide)
}

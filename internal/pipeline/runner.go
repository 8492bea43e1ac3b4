package pipeline

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/export"
	"github.com/san-kum/cellrender/internal/field"
	"github.com/san-kum/cellrender/internal/render"
	"github.com/san-kum/cellrender/internal/snapshot"
	"github.com/san-kum/cellrender/internal/storage"
)

const imagePrefix = "cells_"

type Options struct {
	ImageDir string
	SVG      bool
	// DryRun renders in memory and writes nothing.
	DryRun bool
}

type Runner struct {
	sim       config.SimConfig
	settings  config.Settings
	renderer  *render.Renderer
	opts      Options
	observers []Observer
}

func New(sim config.SimConfig, s *config.Settings, opts Options) (*Runner, error) {
	r, err := render.NewRenderer(sim, s)
	if err != nil {
		return nil, err
	}
	if opts.ImageDir == "" {
		opts.ImageDir = s.Paths.ImageDir
	}
	return &Runner{
		sim:       sim,
		settings:  *s,
		renderer:  r,
		opts:      opts,
		observers: make([]Observer, 0),
	}, nil
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Report summarizes a finished run.
type Report struct {
	Images    []string
	Stats     []storage.FrameStats
	Anomalies int
}

// ImagePath is where the frame with the given id is written.
func ImagePath(dir, id string) string {
	return filepath.Join(dir, imagePrefix+id+".png")
}

// source is what one frame is drawn from. snapshot is empty for a
// field-only frame.
type source struct {
	snapshot string
	field    string
}

// Run renders every snapshot in order. Field files, when given, are paired
// with snapshots by position; surplus field files are ignored. With cells
// turned off the snapshots are not read and one frame is drawn per field
// file instead.
func (r *Runner) Run(ctx context.Context, snapshots, fields []string) (*Report, error) {
	srcs, err := r.sources(snapshots, fields)
	if err != nil {
		return nil, err
	}
	if !r.opts.DryRun {
		if err := os.MkdirAll(r.opts.ImageDir, 0755); err != nil {
			return nil, err
		}
	}

	rep := &Report{
		Images: make([]string, 0, len(srcs)),
		Stats:  make([]storage.FrameStats, 0, len(srcs)),
	}
	for i, src := range srcs {
		select {
		case <-ctx.Done():
			return rep, ctx.Err()
		default:
		}

		frame, err := loadFrame(src)
		if err != nil {
			return rep, err
		}

		res, err := r.renderer.Render(frame)
		if err != nil {
			return rep, err
		}

		out := ImagePath(r.opts.ImageDir, frame.ID)
		if !r.opts.DryRun {
			if err := r.write(out, frame, res); err != nil {
				return rep, err
			}
			rep.Images = append(rep.Images, out)
		}

		st := r.stats(frame, res, out)
		rep.Stats = append(rep.Stats, st)
		rep.Anomalies += len(res.Anomalies)

		ev := FrameEvent{Index: i, Total: len(srcs), Path: out, Stats: st, Result: res}
		for _, o := range r.observers {
			o.OnFrame(ev)
		}
	}
	return rep, nil
}

func (r *Runner) sources(snapshots, fields []string) ([]source, error) {
	if !r.settings.Cells {
		if len(fields) == 0 {
			return nil, ErrNoFields
		}
		srcs := make([]source, len(fields))
		for i, f := range fields {
			srcs[i] = source{field: f}
		}
		return srcs, nil
	}

	if len(snapshots) == 0 {
		return nil, ErrNoSnapshots
	}
	if len(fields) > 0 && len(fields) < len(snapshots) {
		return nil, fmt.Errorf("%w: %d snapshots, %d fields", ErrFieldMismatch, len(snapshots), len(fields))
	}
	srcs := make([]source, len(snapshots))
	for i, p := range snapshots {
		srcs[i].snapshot = p
		if len(fields) > 0 {
			srcs[i].field = fields[i]
		}
	}
	return srcs, nil
}

func loadFrame(src source) (render.Frame, error) {
	var frame render.Frame
	if src.snapshot != "" {
		recs, err := snapshot.ParseFile(src.snapshot)
		if err != nil {
			return render.Frame{}, err
		}
		frame = render.Frame{ID: snapshot.FrameID(src.snapshot), Records: recs}
	} else {
		frame.ID = field.FrameID(src.field)
	}

	if src.field != "" {
		g, err := field.ParseFile(src.field)
		if err != nil {
			return render.Frame{}, err
		}
		frame.Field = g
	}
	return frame, nil
}

func (r *Runner) write(out string, frame render.Frame, res *render.Result) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, res.Image); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !r.opts.SVG {
		return nil
	}
	svg, err := export.FrameToSVG(res, r.settings)
	if err != nil {
		return err
	}
	svgPath := out[:len(out)-len(filepath.Ext(out))] + ".svg"
	return os.WriteFile(svgPath, []byte(svg), 0644)
}

func (r *Runner) stats(frame render.Frame, res *render.Result, out string) storage.FrameStats {
	step := frame.Step()
	st := storage.FrameStats{
		Frame:     frame.ID,
		Step:      step,
		Entities:  len(res.Entities),
		Drawn:     res.Drawn,
		Hidden:    res.Hidden,
		Workers:   res.Count(snapshot.KindWorker),
		Dead:      res.Count(snapshot.KindDead),
		Edges:     res.Edges,
		Anomalies: len(res.Anomalies),
	}
	if step >= 0 {
		st.Minutes = float64(step) * r.sim.MinutesPerFrame
	}
	if !r.opts.DryRun {
		st.Image = filepath.Base(out)
	}
	return st
}

package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/field"
	"github.com/san-kum/cellrender/internal/pipeline"
	"github.com/san-kum/cellrender/internal/render"
	"github.com/san-kum/cellrender/internal/snapshot"
	"github.com/san-kum/cellrender/internal/storage"
	"github.com/san-kum/cellrender/internal/video"
	"github.com/san-kum/cellrender/internal/viz"
	"github.com/spf13/cobra"
)

func renderCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	_, err = renderFrames(cmd.Context(), s)
	return err
}

func videoCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	return assembleVideo(cmd.Context(), s)
}

func runCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if _, err := renderFrames(cmd.Context(), s); err != nil {
		return err
	}
	return assembleVideo(cmd.Context(), s)
}

// loadInputs discovers the files a render reads. Without cells only the
// field files are required, and a missing config.txt leaves the simulation
// config empty.
func loadInputs(s *config.Settings) (config.SimConfig, []string, []string, error) {
	var fields []string
	if s.Paths.Fields != "" {
		var err error
		if fields, err = video.Discover(s.Paths.Fields); err != nil {
			return config.SimConfig{}, nil, nil, err
		}
	}

	if !s.Cells {
		if len(fields) == 0 {
			return config.SimConfig{}, nil, nil, fmt.Errorf("%w: nothing matches %q", pipeline.ErrNoFields, s.Paths.Fields)
		}
		sim, err := config.LoadSimConfig(s.Paths.SimConfig)
		if errors.Is(err, os.ErrNotExist) {
			return config.SimConfig{}, nil, fields, nil
		}
		return sim, nil, fields, err
	}

	sim, err := config.LoadSimConfig(s.Paths.SimConfig)
	if err != nil {
		return sim, nil, nil, err
	}

	snaps, err := video.Discover(s.Paths.Results)
	if err != nil {
		return sim, nil, nil, err
	}
	if len(snaps) == 0 {
		return sim, nil, nil, fmt.Errorf("%w: nothing matches %s", pipeline.ErrNoSnapshots, s.Paths.Results)
	}
	return sim, snaps, fields, nil
}

func renderFrames(ctx context.Context, s *config.Settings) (*pipeline.Report, error) {
	sim, snaps, fields, err := loadInputs(s)
	if err != nil {
		return nil, err
	}

	runner, err := pipeline.New(sim, s, pipeline.Options{SVG: svgOut, DryRun: dryRun})
	if err != nil {
		return nil, err
	}

	total := len(snaps)
	if s.Cells {
		log.Infof("rendering %d snapshots on a %dx%d grid to %s", len(snaps), sim.GridWidth, sim.GridHeight, s.Paths.ImageDir)
		if len(fields) > 0 {
			log.Infof("field overlay from %d files", len(fields))
		}
	} else {
		total = len(fields)
		log.Infof("rendering %d field-only frames to %s", len(fields), s.Paths.ImageDir)
	}

	var rep *pipeline.Report
	if useTUI {
		var anomalies []error
		err = withProgress(ctx, "rendering frames", total, func(ctx context.Context, send func(tea.Msg)) (string, error) {
			runner.AddObserver(pipeline.ObserverFunc(func(ev pipeline.FrameEvent) {
				anomalies = append(anomalies, ev.Result.Anomalies...)
				send(viz.FrameMsg{Done: ev.Index + 1, Total: ev.Total, Path: ev.Path, Drawn: ev.Stats.Drawn, Anomalies: ev.Stats.Anomalies})
			}))
			var err error
			rep, err = runner.Run(ctx, snaps, fields)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d frames", len(rep.Stats)), nil
		})
		for _, a := range anomalies {
			log.Warnf("%v", a)
		}
	} else {
		runner.AddObserver(pipeline.LogObserver{Log: log, Verbose: !quiet})
		rep, err = runner.Run(ctx, snaps, fields)
	}
	if err != nil {
		return rep, err
	}

	var st *storage.Store
	if !dryRun {
		st = storage.New(s.Paths.ImageDir)
		m := &storage.Manifest{
			Preset:    presetName,
			Sim:       sim,
			Settings:  *s,
			Snapshots: snaps,
			Fields:    fields,
			Frames:    len(rep.Images),
			Anomalies: rep.Anomalies,
		}
		if err := st.Save(m, rep.Stats); err != nil {
			return rep, fmt.Errorf("save run record: %w", err)
		}
	}

	log.Infof("done")
	log.Metric("frames", len(rep.Stats))
	log.Metric("anomalies", rep.Anomalies)
	if st != nil {
		log.Metric("images", st.Dir())
		log.Metric("record", filepath.Join(st.Dir(), storage.ManifestFile))
	}
	return rep, nil
}

func assembleVideo(ctx context.Context, s *config.Settings) error {
	frames, err := video.Discover(s.Paths.Images)
	if err != nil {
		return err
	}

	reg := video.NewRegistry()
	open, err := reg.Get(s.Encoder)
	if err != nil {
		return err
	}
	encName := s.Encoder
	if encName == "auto" {
		encName = video.ForPath(s.Paths.Video)
	}

	asm := &video.Assembler{Open: open, FPS: s.FPS}
	log.Infof("assembling %d frames into %s (%s, %g fps)", len(frames), s.Paths.Video, encName, s.FPS)

	var res *video.Result
	if useTUI {
		err = withProgress(ctx, "assembling video", len(frames), func(ctx context.Context, send func(tea.Msg)) (string, error) {
			asm.Progress = func(done, total int) {
				send(viz.FrameMsg{Done: done, Total: total})
			}
			var err error
			res, err = asm.Assemble(ctx, frames, s.Paths.Video)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d frames -> %s", res.Frames, res.Path), nil
		})
	} else {
		res, err = asm.Assemble(ctx, frames, s.Paths.Video)
	}
	if err != nil {
		return err
	}

	if res.Truncated {
		log.Warnf("video stopped after %d of %d frames: %v", res.Frames, res.Total, res.Err)
	}

	st := storage.New(s.Paths.ImageDir)
	if m, err := st.Load(); err == nil {
		m.Video = &storage.VideoInfo{
			Path:      res.Path,
			Encoder:   encName,
			Frames:    res.Frames,
			FPS:       res.FPS,
			Width:     res.Width,
			Height:    res.Height,
			Truncated: res.Truncated,
		}
		if err := st.SaveManifest(m); err != nil {
			log.Warnf("update run record: %v", err)
		}
	}

	log.Infof("wrote %s", res.Path)
	log.Metric("frames", res.Frames)
	log.Metric("size", fmt.Sprintf("%dx%d", res.Width, res.Height))
	return nil
}

// withProgress runs work in the background while a Progress view is shown.
// Quitting the view cancels work.
func withProgress(ctx context.Context, title string, total int, work func(context.Context, func(tea.Msg)) (string, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(viz.NewProgress(title, total, cancel))
	errc := make(chan error, 1)
	go func() {
		summary, err := work(ctx, p.Send)
		p.Send(viz.DoneMsg{Summary: summary, Err: err})
		errc <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	return <-errc
}

// fieldCommand renders field-only frames for every file matching the
// fields glob, or a single file when one is named.
func fieldCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	s.Cells = false

	if len(args) == 0 {
		_, err := renderFrames(cmd.Context(), s)
		return err
	}

	g, err := field.ParseFile(args[0])
	if err != nil {
		return err
	}
	cm, err := field.NewColormap(s.Colormap)
	if err != nil {
		return err
	}
	size := s.CanvasSize
	if s.FieldNative {
		size = 0
	}
	img, err := field.Render(g, cm, s.FieldScale, s.FieldSlice, size)
	if err != nil {
		return err
	}

	out := fieldOut
	if out == "" {
		out = pipeline.ImagePath(s.Paths.ImageDir, field.FrameID(args[0]))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	lo, hi := g.Range()
	log.Infof("wrote %s", out)
	log.Metric("shape", fmt.Sprintf("%dx%dx%d", g.X, g.Y, g.Z))
	log.Metric("size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	log.Metric("range", fmt.Sprintf("%g .. %g", lo, hi))
	log.Metric("colormap", s.Colormap)
	return nil
}

func statsCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	s.Paths.Fields = ""
	s.Cells = true

	sim, snaps, _, err := loadInputs(s)
	if err != nil {
		return err
	}
	runner, err := pipeline.New(sim, s, pipeline.Options{DryRun: true})
	if err != nil {
		return err
	}
	runner.AddObserver(pipeline.LogObserver{Log: log})

	rep, err := runner.Run(cmd.Context(), snaps, nil)
	if err != nil {
		return err
	}

	fmt.Println(viz.TitleStyle.Render(fmt.Sprintf("%d frames, grid %dx%d", len(rep.Stats), sim.GridWidth, sim.GridHeight)))
	fmt.Println()
	fmt.Print(viz.StatsTable(rep.Stats))
	fmt.Println(viz.Separator(plotWidth))
	fmt.Println(viz.PlotStats(rep.Stats, plotWidth, plotHeight))

	if statsCSV != "" {
		if err := storage.WriteStats(statsCSV, rep.Stats); err != nil {
			return err
		}
		log.Infof("wrote %s", statsCSV)
	}
	return nil
}

func previewCommand(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	sim, err := config.LoadSimConfig(s.Paths.SimConfig)
	if err != nil {
		return err
	}

	recs, err := snapshot.ParseFile(args[0])
	if err != nil {
		return err
	}
	r, err := render.NewRenderer(sim, s)
	if err != nil {
		return err
	}
	res, err := r.Render(render.Frame{ID: snapshot.FrameID(args[0]), Records: recs})
	if err != nil {
		return err
	}

	fmt.Print(viz.Preview(res, s.CanvasSize, previewCols, s.DrawAdhesion).String())
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("%s  drawn=%d hidden=%d edges=%d", args[0], res.Drawn, res.Hidden, res.Edges)))
	for _, a := range res.Anomalies {
		log.Warnf("%v", a)
	}
	return nil
}

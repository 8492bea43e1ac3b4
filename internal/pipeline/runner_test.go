package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/san-kum/cellrender/internal/field"
	"github.com/san-kum/cellrender/internal/snapshot"
)

const header = "ID\ttypeID\tX\tY\tZ\tVx\tVy\tVz\tR\tN_contact\tContact_IDs\n"

func writeSnapshot(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := header + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func threeCells(t *testing.T, dir, name string) string {
	return writeSnapshot(t, dir, name,
		"0\tWORKER\t0\t0\t0\t0\t0\t0\t2\t1\t1",
		"1\tDEAD\t10\t10\t0\t0\t0\t0\t2\t0\t_",
		"2\tNONE\t-20\t5\t0\t0\t0\t0\t2\t0\t_",
	)
}

func newRunner(t *testing.T, dir string, mutate func(*config.Settings), opts Options) *Runner {
	t.Helper()
	s := config.DefaultSettings()
	s.Paths.ImageDir = filepath.Join(dir, "image")
	if mutate != nil {
		mutate(s)
	}
	r, err := New(config.SimConfig{GridWidth: 100, GridHeight: 100, MinutesPerFrame: 3}, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRunWritesImagesAndStats(t *testing.T) {
	dir := t.TempDir()
	snaps := []string{threeCells(t, dir, "00000"), threeCells(t, dir, "00001")}

	r := newRunner(t, dir, nil, Options{})
	var events []FrameEvent
	r.AddObserver(ObserverFunc(func(ev FrameEvent) { events = append(events, ev) }))

	rep, err := r.Run(context.Background(), snaps, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(rep.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(rep.Images))
	}
	for i, want := range []string{"cells_00000.png", "cells_00001.png"} {
		if filepath.Base(rep.Images[i]) != want {
			t.Errorf("image %d: got %s, want %s", i, rep.Images[i], want)
		}
		if _, err := os.Stat(rep.Images[i]); err != nil {
			t.Errorf("image not written: %v", err)
		}
	}

	st := rep.Stats[1]
	if st.Frame != "00001" || st.Step != 1 || st.Minutes != 3 {
		t.Errorf("unexpected frame stats %+v", st)
	}
	if st.Entities != 3 || st.Drawn != 2 || st.Hidden != 1 || st.Workers != 1 || st.Dead != 1 || st.Edges != 1 {
		t.Errorf("unexpected counts %+v", st)
	}
	if len(events) != 2 || events[1].Index != 1 || events[1].Total != 2 {
		t.Errorf("unexpected observer events: %d", len(events))
	}
}

func TestRunSVG(t *testing.T) {
	dir := t.TempDir()
	snaps := []string{threeCells(t, dir, "00000")}

	r := newRunner(t, dir, nil, Options{SVG: true})
	if _, err := r.Run(context.Background(), snaps, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "image", "cells_00000.svg")); err != nil {
		t.Errorf("svg not written: %v", err)
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	snaps := []string{threeCells(t, dir, "00000")}

	r := newRunner(t, dir, nil, Options{DryRun: true})
	rep, err := r.Run(context.Background(), snaps, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Images) != 0 || len(rep.Stats) != 1 {
		t.Errorf("dry run: %d images, %d stats", len(rep.Images), len(rep.Stats))
	}
	if _, err := os.Stat(filepath.Join(dir, "image")); !os.IsNotExist(err) {
		t.Error("dry run created the image directory")
	}
}

func TestRunWithFields(t *testing.T) {
	dir := t.TempDir()
	snaps := []string{threeCells(t, dir, "00000"), threeCells(t, dir, "00001")}

	f0 := filepath.Join(dir, "molecule_0")
	f1 := filepath.Join(dir, "molecule_1")
	os.WriteFile(f0, []byte("0 0 \n0 0 \n"), 0644)
	os.WriteFile(f1, []byte("5 5 \n5 5 \n"), 0644)

	r := newRunner(t, dir, func(s *config.Settings) { s.DrawAdhesion = false }, Options{})
	var corner [2]uint8
	r.AddObserver(ObserverFunc(func(ev FrameEvent) {
		corner[ev.Index] = ev.Result.Image.RGBAAt(5, 5).G
	}))

	if _, err := r.Run(context.Background(), snaps, []string{f0, f1}); err != nil {
		t.Fatalf("run with fields failed: %v", err)
	}

	cm, _ := field.NewColormap("reds")
	if corner[0] != cm.At(0).G || corner[1] != cm.At(100).G {
		t.Errorf("field layer not applied per frame: %v", corner)
	}
}

func TestRunFieldOnly(t *testing.T) {
	dir := t.TempDir()
	fields := []string{filepath.Join(dir, "molecule_1"), filepath.Join(dir, "molecule_12")}
	for _, f := range fields {
		if err := os.WriteFile(f, []byte("1 2 3 \n4 5 6 \n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	r := newRunner(t, dir, func(s *config.Settings) {
		s.Cells = false
		s.FieldNative = true
	}, Options{})

	if _, err := r.Run(context.Background(), nil, nil); !errors.Is(err, ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}

	// snapshots are not read without cells
	rep, err := r.Run(context.Background(), []string{filepath.Join(dir, "missing")}, fields)
	if err != nil {
		t.Fatalf("field-only run failed: %v", err)
	}
	if len(rep.Images) != 2 {
		t.Fatalf("expected 2 images, got %v", rep.Images)
	}
	if filepath.Base(rep.Images[1]) != "cells_00012.png" {
		t.Errorf("unexpected image name %s", rep.Images[1])
	}
	if st := rep.Stats[1]; st.Step != 12 || st.Minutes != 36 || st.Entities != 0 {
		t.Errorf("unexpected stats %+v", st)
	}

	f, err := os.Open(rep.Images[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 2 || cfg.Height != 3 {
		t.Errorf("expected a 2x3 native frame, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	good := threeCells(t, dir, "00000")
	bad := writeSnapshot(t, dir, "00001", "0\tWORKER\tx\t0\t0\t0\t0\t0\t2")

	r := newRunner(t, dir, nil, Options{})

	if _, err := r.Run(context.Background(), nil, nil); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("expected ErrNoSnapshots, got %v", err)
	}
	if _, err := r.Run(context.Background(), []string{good, good}, []string{"f"}); !errors.Is(err, ErrFieldMismatch) {
		t.Errorf("expected ErrFieldMismatch, got %v", err)
	}

	rep, err := r.Run(context.Background(), []string{good, bad}, nil)
	if !errors.Is(err, snapshot.ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
	if rep == nil || len(rep.Images) != 1 {
		t.Error("frames before the bad one should be reported")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, []string{good}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type captureLog struct {
	infos, warns []string
}

func (c *captureLog) Infof(format string, args ...any) {
	c.infos = append(c.infos, fmt.Sprintf(format, args...))
}

func (c *captureLog) Warnf(format string, args ...any) {
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}

func TestLogObserver(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir, "00000",
		"0\tWORKER\t60\t0\t0\t0\t0\t0\t1\t1\t7",
	)

	log := &captureLog{}
	r := newRunner(t, dir, nil, Options{DryRun: true})
	r.AddObserver(LogObserver{Log: log, Verbose: true})

	rep, err := r.Run(context.Background(), []string{snap}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Anomalies != 2 {
		t.Errorf("expected 2 anomalies, got %d", rep.Anomalies)
	}
	if len(log.warns) != 2 || len(log.infos) != 1 {
		t.Fatalf("expected 2 warnings and 1 info, got %d and %d", len(log.warns), len(log.infos))
	}
	if strings.Contains(log.infos[0], ".png") || !strings.Contains(log.infos[0], "frame 00000") {
		t.Errorf("dry run should name the frame, not an unwritten file: %q", log.infos[0])
	}
}

func TestLogObserverNamesWrittenImages(t *testing.T) {
	dir := t.TempDir()
	snap := threeCells(t, dir, "00003")

	log := &captureLog{}
	r := newRunner(t, dir, nil, Options{})
	r.AddObserver(LogObserver{Log: log, Verbose: true})

	if _, err := r.Run(context.Background(), []string{snap}, nil); err != nil {
		t.Fatal(err)
	}
	if len(log.infos) != 1 || !strings.Contains(log.infos[0], "cells_00003.png") {
		t.Errorf("expected the image path in %v", log.infos)
	}
}

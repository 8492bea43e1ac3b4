package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/cellrender/internal/config"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(filepath.Join(tmpDir, "image"))

	settings := config.DefaultSettings()
	m := &Manifest{
		Preset:    "adhesion",
		Sim:       config.SimConfig{GridWidth: 100, GridHeight: 100, MinutesPerFrame: 3},
		Settings:  *settings,
		Snapshots: []string{"result/00000", "result/00001"},
		Frames:    2,
		Video: &VideoInfo{
			Path: "video/out.mp4", Encoder: "ffmpeg", Frames: 2, FPS: 20, Width: 1024, Height: 1024,
		},
	}
	stats := []FrameStats{
		{Frame: "00000", Step: 0, Entities: 3, Drawn: 2, Hidden: 1, Workers: 1, Dead: 1, Image: "cells_00000.png"},
		{Frame: "00001", Step: 1, Minutes: 3, Entities: 3, Drawn: 2, Hidden: 1, Workers: 1, Dead: 1, Edges: 1, Image: "cells_00001.png"},
	}

	if err := st.Save(m, stats); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if m.ID == "" || m.Timestamp.IsZero() {
		t.Error("expected id and timestamp to be filled in")
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != m.ID || got.Preset != "adhesion" {
		t.Errorf("unexpected manifest %+v", got)
	}
	if got.Sim.GridWidth != 100 || got.Sim.MinutesPerFrame != 3 {
		t.Errorf("sim config not round-tripped: %+v", got.Sim)
	}
	if got.Settings != *settings {
		t.Errorf("settings not round-tripped")
	}
	if got.Video == nil || got.Video.Frames != 2 || got.Video.FPS != 20 {
		t.Errorf("video info not round-tripped: %+v", got.Video)
	}

	rows, err := st.LoadStats()
	if err != nil {
		t.Fatalf("load stats failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1] != stats[1] {
		t.Errorf("row mismatch: got %+v, want %+v", rows[1], stats[1])
	}
}

func TestStatsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatsFile)
	if err := WriteStats(path, []FrameStats{{Frame: "00007", Step: 7}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "frame,step,minutes,entities,drawn,hidden,workers,dead,edges,anomalies,image\n"
	if got := string(data[:len(want)]); got != want {
		t.Errorf("header = %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestNewRunID(t *testing.T) {
	if got := NewRunID(time.Unix(1700000000, 0)); got != "render_1700000000" {
		t.Errorf("unexpected id %s", got)
	}
}

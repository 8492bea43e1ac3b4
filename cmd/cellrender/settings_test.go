package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "run"}
	addRenderFlags(cmd)
	addVideoFlags(cmd)
	return cmd
}

func resetGlobals() {
	presetName, settingsFile = "", ""
}

func TestResolveDefaults(t *testing.T) {
	resetGlobals()
	cmd := newTestCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if s.CanvasSize != 1024 || s.FPS != 20 || !s.DrawAdhesion {
		t.Errorf("unexpected defaults %+v", s)
	}
}

func TestFlagsOverridePreset(t *testing.T) {
	resetGlobals()
	presetName = "overlay"
	defer resetGlobals()

	cmd := newTestCmd()
	if err := cmd.ParseFlags([]string{"--canvas", "512", "--guides=false", "--image-dir", "out"}); err != nil {
		t.Fatal(err)
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if s.CanvasSize != 512 || s.Guides {
		t.Errorf("flags not applied: canvas=%d guides=%v", s.CanvasSize, s.Guides)
	}
	if s.FieldScale != 100 {
		t.Errorf("preset field scale lost: %g", s.FieldScale)
	}
	if s.Paths.ImageDir != "out" || s.Paths.Images != filepath.Join("out", "cells_*.png") {
		t.Errorf("image paths not moved: %+v", s.Paths)
	}
}

func TestSettingsFileBetweenPresetAndFlags(t *testing.T) {
	resetGlobals()
	defer resetGlobals()

	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("fps: 10\nlabel: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	presetName = "classic"
	settingsFile = path

	cmd := newTestCmd()
	if err := cmd.ParseFlags([]string{"--fps", "30"}); err != nil {
		t.Fatal(err)
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if s.FPS != 30 {
		t.Errorf("flag should win over file, got fps %g", s.FPS)
	}
	if !s.Label || !s.Guides {
		t.Errorf("file and preset values lost: label=%v guides=%v", s.Label, s.Guides)
	}
}

func TestUnknownPreset(t *testing.T) {
	resetGlobals()
	presetName = "nope"
	defer resetGlobals()

	cmd := newTestCmd()
	cmd.ParseFlags(nil)
	if _, err := resolveSettings(cmd); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestCellsFlag(t *testing.T) {
	resetGlobals()
	presetName = "overlay"
	defer resetGlobals()

	cmd := newTestCmd()
	if err := cmd.ParseFlags([]string{"--cells=false", "--field-native"}); err != nil {
		t.Fatal(err)
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if s.Cells || !s.FieldNative {
		t.Errorf("cells=%v field_native=%v", s.Cells, s.FieldNative)
	}
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/cellrender/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resolveSettings layers the preset, the settings file and any flags the
// user set explicitly, in that order.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	s := config.DefaultSettings()
	if presetName != "" {
		s = config.GetPreset(presetName)
		if s == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if settingsFile != "" {
		var err error
		s, err = config.LoadOver(settingsFile, s)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	applyFlags(cmd.Flags(), s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyFlags(f *pflag.FlagSet, s *config.Settings) {
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"config", func() { s.Paths.SimConfig = simConfigPath }},
		{"results", func() { s.Paths.Results = resultsGlob }},
		{"fields", func() { s.Paths.Fields = fieldsGlob }},
		{"image-dir", func() { s.Paths.ImageDir = imageDir }},
		{"images", func() { s.Paths.Images = imagesGlob }},
		{"out", func() { s.Paths.Video = videoPath }},
		{"canvas", func() { s.CanvasSize = canvasSize }},
		{"field-scale", func() { s.FieldScale = fieldScale }},
		{"slice", func() { s.FieldSlice = fieldSlice }},
		{"colormap", func() { s.Colormap = colormap }},
		{"scale-radius", func() { s.ScaleRadius = scaleRadius }},
		{"adhesion", func() { s.DrawAdhesion = adhesion }},
		{"guides", func() { s.Guides = guides }},
		{"label", func() { s.Label = label }},
		{"cells", func() { s.Cells = cells }},
		{"field-native", func() { s.FieldNative = fieldNative }},
		{"fps", func() { s.FPS = fps }},
		{"encoder", func() { s.Encoder = encoder }},
	}
	for _, o := range overrides {
		if f.Changed(o.flag) {
			o.apply()
		}
	}

	// a new image directory moves the default frame glob with it
	if f.Changed("image-dir") && !f.Changed("images") {
		s.Paths.Images = filepath.Join(imageDir, "cells_*.png")
	}
}

package config

import "sort"

// Presets reproduce the frame styles the simulator has shipped with.
var Presets = map[string]func() *Settings{
	// Cells only, with the dish outline and centre axes.
	"classic": func() *Settings {
		s := DefaultSettings()
		s.Guides = true
		s.DrawAdhesion = false
		return s
	},
	// Cells plus adhesion edges.
	"adhesion": func() *Settings {
		s := DefaultSettings()
		s.Guides = true
		s.DrawAdhesion = true
		return s
	},
	// Molecule field underneath unscaled cell outlines.
	"overlay": func() *Settings {
		s := DefaultSettings()
		s.Guides = true
		s.DrawAdhesion = false
		s.ScaleRadius = false
		s.FieldScale = 100
		s.Paths.Fields = "molecule_result/0/molecule_*"
		s.Paths.ImageDir = "./sample"
		s.Paths.Images = "./sample/cells_*.png"
		return s
	},
	// Field only, no cells, one pixel per grid cell.
	"field": func() *Settings {
		s := DefaultSettings()
		s.Cells = false
		s.FieldNative = true
		s.DrawAdhesion = false
		s.FieldScale = 20
		s.Paths.Fields = "molecule_result/0/molecule_*"
		s.Paths.ImageDir = "./figs"
		s.Paths.Images = "./figs/cells_*.png"
		s.Paths.Video = "./video/molecule.mp4"
		return s
	},
}

func GetPreset(name string) *Settings {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

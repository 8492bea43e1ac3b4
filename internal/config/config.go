package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCanvasSize = 1024
	DefaultFPS        = 20.0
	DefaultFieldScale = 20.0
	DefaultColormap   = "reds"
	DefaultEncoder    = "auto"

	DefaultSimConfigPath = "config.txt"
	DefaultResultsGlob   = "./result/*"
	DefaultImageDir      = "./image"
	DefaultImageGlob     = "./image/cells_*.png"
	DefaultVideoPath     = "./video/out.mp4"
)

// Settings holds everything about how frames are drawn and assembled.
// It is built once per run and passed by value into the renderer.
//
// With Cells off, one field-only frame is drawn per field file and
// snapshots are not read. FieldNative then keeps those frames at one pixel
// per grid cell instead of resizing them to CanvasSize; it is ignored while
// cells are drawn.
type Settings struct {
	CanvasSize   int     `yaml:"canvas_size"`
	FPS          float64 `yaml:"fps"`
	FieldScale   float64 `yaml:"field_scale"`
	FieldSlice   int     `yaml:"field_slice"`
	Colormap     string  `yaml:"colormap"`
	ScaleRadius  bool    `yaml:"scale_radius"`
	DrawAdhesion bool    `yaml:"draw_adhesion"`
	Guides       bool    `yaml:"guides"`
	Label        bool    `yaml:"label"`
	Cells        bool    `yaml:"cells"`
	FieldNative  bool    `yaml:"field_native"`
	Encoder      string  `yaml:"encoder"`
	Colors       Colors  `yaml:"colors"`
	Paths        Paths   `yaml:"paths"`
}

type Colors struct {
	Background string `yaml:"background"`
	Worker     string `yaml:"worker"`
	Dead       string `yaml:"dead"`
	Target     string `yaml:"target"`
	Sender     string `yaml:"sender"`
	Receiver   string `yaml:"receiver"`
	Enemy      string `yaml:"enemy"`
	Adhesion   string `yaml:"adhesion"`
	Guide      string `yaml:"guide"`
	Label      string `yaml:"label"`
}

type Paths struct {
	SimConfig string `yaml:"sim_config"`
	Results   string `yaml:"results"`
	Fields    string `yaml:"fields"`
	ImageDir  string `yaml:"image_dir"`
	Images    string `yaml:"images"`
	Video     string `yaml:"video"`
}

func DefaultColors() Colors {
	return Colors{
		Background: "#ffffff",
		Worker:     "#00c800",
		Dead:       "#000000",
		Target:     "#ff8800",
		Sender:     "#0077be",
		Receiver:   "#9c179e",
		Enemy:      "#ff00ff",
		Adhesion:   "#ff0000",
		Guide:      "#000000",
		Label:      "#000000",
	}
}

func DefaultSettings() *Settings {
	return &Settings{
		CanvasSize:   DefaultCanvasSize,
		FPS:          DefaultFPS,
		FieldScale:   DefaultFieldScale,
		Colormap:     DefaultColormap,
		ScaleRadius:  true,
		DrawAdhesion: true,
		Cells:        true,
		Encoder:      DefaultEncoder,
		Colors:       DefaultColors(),
		Paths: Paths{
			SimConfig: DefaultSimConfigPath,
			Results:   DefaultResultsGlob,
			ImageDir:  DefaultImageDir,
			Images:    DefaultImageGlob,
			Video:     DefaultVideoPath,
		},
	}
}

// Load reads YAML settings on top of the defaults, so a file only needs
// the keys it changes.
func Load(path string) (*Settings, error) {
	return LoadOver(path, DefaultSettings())
}

// LoadOver reads YAML settings on top of base, typically a preset. base is
// not modified.
func LoadOver(path string, base *Settings) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := base.Clone()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Validate() error {
	if s.CanvasSize <= 0 {
		return fmt.Errorf("%w: canvas_size must be positive, got %d", ErrInvalidSettings, s.CanvasSize)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %g", ErrInvalidSettings, s.FPS)
	}
	if s.FieldScale < 0 {
		return fmt.Errorf("%w: field_scale must not be negative, got %g", ErrInvalidSettings, s.FieldScale)
	}
	if s.FieldSlice < 0 {
		return fmt.Errorf("%w: field_slice must not be negative, got %d", ErrInvalidSettings, s.FieldSlice)
	}
	return nil
}

// Clone returns a copy that can be modified without touching a preset.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

package video

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"
)

// Encoder receives frames in order and finalizes the container on Close.
type Encoder interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Opener creates an encoder writing a width×height video to path.
type Opener func(path string, width, height int, fps float64) (Encoder, error)

type Registry struct {
	openers map[string]Opener
}

func NewRegistry() *Registry {
	r := &Registry{openers: make(map[string]Opener)}

	r.openers["mjpeg"] = OpenMJPEG
	r.openers["ffmpeg"] = OpenFFmpeg
	r.openers["auto"] = r.openAuto

	return r
}

// Register adds or replaces an encoder under name.
func (r *Registry) Register(name string, open Opener) {
	r.openers[name] = open
}

func (r *Registry) Get(name string) (Opener, error) {
	open, ok := r.openers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoder, name)
	}
	return open, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.openers))
	for name := range r.openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForPath names the encoder auto picks for an output file.
func ForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".avi") {
		return "mjpeg"
	}
	return "ffmpeg"
}

func (r *Registry) openAuto(path string, width, height int, fps float64) (Encoder, error) {
	open, err := r.Get(ForPath(path))
	if err != nil {
		return nil, err
	}
	return open(path, width, height, fps)
}

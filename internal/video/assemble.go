package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Result describes what ended up in the video. Truncated is set when an
// unreadable or mis-sized frame stopped assembly early; Err says which.
type Result struct {
	Path      string
	Frames    int
	Total     int
	Width     int
	Height    int
	FPS       float64
	Truncated bool
	Err       error
}

type Assembler struct {
	Open     Opener
	FPS      float64
	Progress func(done, total int)
}

// Assemble writes paths, in the given order, to out. The first frame fixes
// the video size. A later frame that cannot be decoded or has another size
// ends the video there; that is reported in the Result, not as an error.
func (a *Assembler) Assemble(ctx context.Context, paths []string, out string) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoFrames
	}

	first, err := decodeFrame(paths[0])
	if err != nil {
		return nil, err
	}
	size := first.Bounds().Size()

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	enc, err := a.Open(out, size.X, size.Y, a.FPS)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: out, Total: len(paths), Width: size.X, Height: size.Y, FPS: a.FPS}
	if err := a.write(ctx, enc, first, paths, res); err != nil {
		enc.Close()
		return res, err
	}
	if err := enc.Close(); err != nil {
		return res, fmt.Errorf("finalize %s: %w", out, err)
	}
	return res, nil
}

func (a *Assembler) write(ctx context.Context, enc Encoder, first image.Image, paths []string, res *Result) error {
	img := first
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if i > 0 {
			var err error
			img, err = decodeFrame(path)
			if err != nil {
				res.Truncated, res.Err = true, err
				return nil
			}
			if s := img.Bounds().Size(); s.X != res.Width || s.Y != res.Height {
				res.Truncated = true
				res.Err = fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrFrameSize, path, s.X, s.Y, res.Width, res.Height)
				return nil
			}
		}

		if err := enc.WriteFrame(img); err != nil {
			return fmt.Errorf("write frame %s: %w", path, err)
		}
		res.Frames++
		if a.Progress != nil {
			a.Progress(res.Frames, res.Total)
		}
	}
	return nil
}

func decodeFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrameDecode, path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrameDecode, path, err)
	}
	return img, nil
}

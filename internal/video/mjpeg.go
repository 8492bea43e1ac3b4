package video

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/icza/mjpeg"
)

const jpegQuality = 90

type mjpegEncoder struct {
	w    mjpeg.AviWriter
	buf  bytes.Buffer
	opts jpeg.Options
}

// OpenMJPEG writes a Motion-JPEG AVI. The container stores an integer
// frame rate, so fps is rounded.
func OpenMJPEG(path string, width, height int, fps float64) (Encoder, error) {
	rate := int32(math.Round(fps))
	if rate < 1 {
		rate = 1
	}
	w, err := mjpeg.New(path, int32(width), int32(height), rate)
	if err != nil {
		return nil, fmt.Errorf("open avi %s: %w", path, err)
	}
	return &mjpegEncoder{w: w, opts: jpeg.Options{Quality: jpegQuality}}, nil
}

func (e *mjpegEncoder) WriteFrame(img image.Image) error {
	e.buf.Reset()
	if err := jpeg.Encode(&e.buf, img, &e.opts); err != nil {
		return err
	}
	return e.w.AddFrame(e.buf.Bytes())
}

func (e *mjpegEncoder) Close() error {
	return e.w.Close()
}

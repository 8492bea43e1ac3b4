package video

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegBinary is the executable the ffmpeg encoder runs.
var FFmpegBinary = "ffmpeg"

type ffmpegEncoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	png    png.Encoder
}

// OpenFFmpeg starts an ffmpeg process that reads PNG frames on stdin and
// writes an MPEG-4 Part 2 stream tagged mp4v. yuv420p needs even
// dimensions, so odd frame sizes are padded by one pixel on the right or
// bottom.
func OpenFFmpeg(path string, width, height int, fps float64) (Encoder, error) {
	bin, err := exec.LookPath(FFmpegBinary)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg encoder: %w", err)
	}

	e := &ffmpegEncoder{png: png.Encoder{CompressionLevel: png.BestSpeed}}
	e.cmd = exec.Command(bin,
		"-y", "-loglevel", "error",
		"-f", "image2pipe",
		"-c:v", "png",
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
		"-vf", evenPad(width, height),
		"-c:v", "mpeg4",
		"-tag:v", "mp4v",
		"-q:v", "3",
		"-pix_fmt", "yuv420p",
		path,
	)
	e.cmd.Stderr = &e.stderr

	e.stdin, err = e.cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return e, nil
}

func evenPad(width, height int) string {
	return fmt.Sprintf("pad=%d:%d", width+width%2, height+height%2)
}

func (e *ffmpegEncoder) WriteFrame(img image.Image) error {
	if err := e.png.Encode(e.stdin, img); err != nil {
		return fmt.Errorf("pipe frame to ffmpeg: %w", err)
	}
	return nil
}

func (e *ffmpegEncoder) Close() error {
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(e.stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

package video

import "errors"

var (
	ErrNoFrames       = errors.New("video: no frames found")
	ErrFrameDecode    = errors.New("video: frame could not be decoded")
	ErrFrameSize      = errors.New("video: frame size differs from first frame")
	ErrUnknownEncoder = errors.New("video: unknown encoder")
)

package config

import "errors"

var (
	// ErrMalformedConfig indicates a config.txt line that is missing or not numeric.
	ErrMalformedConfig = errors.New("config: malformed simulation config")

	// ErrInvalidGrid indicates a grid dimension that cannot produce a scale factor.
	ErrInvalidGrid = errors.New("config: grid dimensions must be positive")

	// ErrInvalidSettings indicates a render setting outside its valid range.
	ErrInvalidSettings = errors.New("config: invalid render settings")
)

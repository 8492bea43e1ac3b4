package pipeline

import "errors"

var (
	ErrNoSnapshots   = errors.New("pipeline: no snapshot files")
	ErrFieldMismatch = errors.New("pipeline: fewer field files than snapshots")
	ErrNoFields      = errors.New("pipeline: no field files")
)

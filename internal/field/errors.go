package field

import "errors"

var (
	// ErrMalformedField indicates a field file whose rows do not form a
	// rectangular grid of numbers.
	ErrMalformedField = errors.New("field: malformed field file")

	// ErrUnknownColormap indicates a colormap name with no registered stops.
	ErrUnknownColormap = errors.New("field: unknown colormap")

	// ErrSliceRange indicates a z-slice outside a three-dimensional field.
	ErrSliceRange = errors.New("field: slice index out of range")
)

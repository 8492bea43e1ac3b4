package render

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a visible cell whose projected position lies
	// outside the canvas. The cell is still drawn and clipped, unless its
	// position or radius is not a usable number, in which case it is
	// skipped along with its edges.
	ErrOutOfRange = errors.New("render: cell position out of range")

	// ErrUnknownAdjacency indicates an adhesion reference to an id that no
	// record in the frame declares. The edge is skipped.
	ErrUnknownAdjacency = errors.New("render: adhesion to unknown cell")

	// ErrBadColor indicates a settings color that is not a #rrggbb hex string.
	ErrBadColor = errors.New("render: invalid color")
)

// AnomalyError ties a non-fatal rendering anomaly to its frame and cell.
type AnomalyError struct {
	Frame  string
	CellID int
	Detail string
	Err    error
}

func (e *AnomalyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("frame %s: cell %d: %v", e.Frame, e.CellID, e.Err)
	}
	return fmt.Sprintf("frame %s: cell %d: %v (%s)", e.Frame, e.CellID, e.Err, e.Detail)
}

func (e *AnomalyError) Unwrap() error {
	return e.Err
}

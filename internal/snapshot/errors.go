package snapshot

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord indicates a snapshot line that cannot be mapped onto
// the record layout. It aborts the run.
var ErrMalformedRecord = errors.New("snapshot: malformed record")

// RecordError locates a malformed record inside its file.
type RecordError struct {
	Line  int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: line %d: %v", ErrMalformedRecord, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: line %d: field %s: %v", ErrMalformedRecord, e.Line, e.Field, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

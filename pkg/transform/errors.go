package transform

import (
	"fmt"

	"github.com/goliatone/go-canvas/pkg/form"
)

// UnknownFieldError marks an answer whose entry id has no match in the form's
// field index. Recoverable: the answer is omitted and the transformation
// continues.
type UnknownFieldError struct {
	EntryID int64
	Label   string
}

func (e *UnknownFieldError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("transform: entry %d (%q) not found in form", e.EntryID, e.Label)
	}
	return fmt.Sprintf("transform: entry %d not found in form", e.EntryID)
}

// UnmappableValueError marks an answer whose value shape does not match its
// entry's declared type. Recoverable: the answer is omitted and the
// transformation continues.
type UnmappableValueError struct {
	EntryID int64
	Type    form.EntryType
	Reason  string
}

func (e *UnmappableValueError) Error() string {
	return fmt.Sprintf("transform: entry %d: value does not match type %q: %s", e.EntryID, e.Type, e.Reason)
}

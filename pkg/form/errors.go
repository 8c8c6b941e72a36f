package form

import "fmt"

// SchemaError reports a malformed form definition: a duplicate entry id (the
// join key against submission answers would be ambiguous) or a group entry
// with no child declarations. It is fatal for any transformation using the
// definition.
type SchemaError struct {
	EntryID int64
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("form: entry %d: %s", e.EntryID, e.Reason)
}

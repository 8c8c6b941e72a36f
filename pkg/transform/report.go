package transform

// DiagnosticKind classifies a recoverable per-answer anomaly.
type DiagnosticKind string

const (
	// DiagnosticUnknownField marks an answer with no matching form entry.
	DiagnosticUnknownField DiagnosticKind = "unknown_field"
	// DiagnosticUnmappableValue marks an answer whose value shape conflicts
	// with its declared type.
	DiagnosticUnmappableValue DiagnosticKind = "unmappable_value"
	// DiagnosticUnknownType marks an answer mapped through the string
	// fallback because its declared type has no canonical rule.
	DiagnosticUnknownType DiagnosticKind = "unknown_type"
)

// Diagnostic records one anomaly encountered while transforming a submission.
// Err carries the typed error (*UnknownFieldError, *UnmappableValueError) for
// kinds that skip the answer; fallback diagnostics have a nil Err.
type Diagnostic struct {
	Kind    DiagnosticKind
	EntryID int64
	Label   string
	Err     error
}

// Report accumulates the recoverable anomalies of a single transformation.
// A non-empty report still accompanies a fully consistent output document;
// only the listed answers are missing from it.
type Report struct {
	Diagnostics []Diagnostic
}

// Skipped counts the answers omitted from the output.
func (r Report) Skipped() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == DiagnosticUnknownField || d.Kind == DiagnosticUnmappableValue {
			n++
		}
	}
	return n
}

// Clean reports whether the transformation completed without anomalies.
func (r Report) Clean() bool {
	return len(r.Diagnostics) == 0
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

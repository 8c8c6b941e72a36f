// Package transform converts v3 submissions into the legacy v2 document shape
// using the form definition they were filled against. The conversion is a
// pure, synchronous computation: index the form, map each answer's typed
// value, then re-nest the mapped values into the v2 tree. Transformers hold no
// per-call state and are safe for concurrent use.
package transform

import (
	"fmt"

	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/submission"
)

// DefaultDateLayout is the dotted timestamp layout the v2 consumer expects.
const DefaultDateLayout = "2006.01.02 15:04:05"

// Options configures a Transformer.
type Options struct {
	// DateLayout overrides the layout used for the root Date field.
	DateLayout string
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithDateLayout overrides the v2 root timestamp layout.
func WithDateLayout(layout string) Option {
	return func(opts *Options) {
		if layout != "" {
			opts.DateLayout = layout
		}
	}
}

// NewOptions applies Option values over the defaults.
func NewOptions(options ...Option) Options {
	opts := Options{DateLayout: DefaultDateLayout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

// Transformer converts v3 submissions to v2 documents.
type Transformer struct {
	opts Options
}

// New constructs a Transformer with the supplied options.
func New(options ...Option) *Transformer {
	return &Transformer{opts: NewOptions(options...)}
}

// Transform produces the v2 document for one submission. A malformed form
// definition aborts with a *form.SchemaError; per-answer anomalies are
// collected into the returned Report while the rest of the submission is
// still transformed. Same inputs always produce the same output.
func (t *Transformer) Transform(def form.Definition, doc submission.Document) (submission.DocumentV2, Report, error) {
	index, err := form.Index(def)
	if err != nil {
		return submission.DocumentV2{}, Report{}, fmt.Errorf("transform: index form %d: %w", def.ID, err)
	}

	var report Report
	m := &mapper{index: index, report: &report}

	mapped := make(map[int64]mappedAnswer, len(doc.Responses))
	for _, answer := range doc.Responses {
		meta, ok := index.Lookup(answer.EntryID)
		if !ok {
			report.add(Diagnostic{
				Kind:    DiagnosticUnknownField,
				EntryID: answer.EntryID,
				Label:   answer.Label,
				Err:     &UnknownFieldError{EntryID: answer.EntryID, Label: answer.Label},
			})
			continue
		}

		// Group children are only reachable through their group's row objects;
		// a flat answer keyed to one has no slot in the output structure.
		if meta.Group() {
			report.add(Diagnostic{
				Kind:    DiagnosticUnmappableValue,
				EntryID: answer.EntryID,
				Label:   answer.Label,
				Err: &UnmappableValueError{
					EntryID: answer.EntryID,
					Type:    meta.Entry.Type,
					Reason:  "group child answered outside its group's rows",
				},
			})
			continue
		}

		value, err := m.mapValue(meta, answer.Value)
		if err != nil {
			report.add(Diagnostic{
				Kind:    DiagnosticUnmappableValue,
				EntryID: answer.EntryID,
				Label:   answer.Label,
				Err:     err,
			})
			continue
		}
		if !value.Present() {
			continue
		}
		mapped[answer.EntryID] = mappedAnswer{answer: answer, value: value}
	}

	out := assemble(def, mapped, doc, t.opts.DateLayout)
	return out, report, nil
}

// Package canvas ties together the GoCanvas v3 retrieval client and the
// v3→v2 submission transformer. The root package only re-exports the common
// path; the pieces live in pkg/canvasapi, pkg/form, pkg/submission,
// pkg/transform, and pkg/export.
package canvas

import (
	internalLoader "github.com/goliatone/go-canvas/internal/record/loader"
	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/record"
	"github.com/goliatone/go-canvas/pkg/submission"
	"github.com/goliatone/go-canvas/pkg/transform"
)

// Report aliases the transformation diagnostics container for convenience.
type Report = transform.Report

// Diagnostic aliases a single transformation anomaly record.
type Diagnostic = transform.Diagnostic

// NewLoader constructs a record loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...record.LoaderOption) record.Loader {
	cfg := record.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewTransformer exposes the transformer constructor from the top-level
// module.
func NewTransformer(options ...transform.Option) *transform.Transformer {
	return transform.New(options...)
}

// Transform converts one v3 submission into the v2 document shape using the
// form definition it was filled against. It is the simplest entry point for
// callers holding already-parsed documents.
func Transform(def form.Definition, doc submission.Document) (submission.DocumentV2, Report, error) {
	return transform.New().Transform(def, doc)
}

// TransformRaw parses a form definition and a v3 submission from raw JSON and
// transforms them, bypassing the loader stage.
func TransformRaw(formJSON, submissionJSON []byte) (submission.DocumentV2, Report, error) {
	def, err := form.Parse(formJSON)
	if err != nil {
		return submission.DocumentV2{}, Report{}, err
	}
	doc, err := submission.Parse(submissionJSON)
	if err != nil {
		return submission.DocumentV2{}, Report{}, err
	}
	return Transform(def, doc)
}

// Package export orchestrates retrieval and transformation runs: list
// submissions for a date range, fetch each one, persist the raw v3 payload,
// transform it against its form definition, and persist the v2 result. The
// transformation core stays pure; everything stateful (HTTP, caching, files,
// logging) happens here.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-canvas/pkg/canvasapi"
	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/submission"
	"github.com/goliatone/go-canvas/pkg/transform"
)

// API is the slice of the canvas client the exporter needs; narrowed so tests
// can stub it.
type API interface {
	ListAllSubmissions(ctx context.Context, req canvasapi.ListSubmissionsRequest) ([]canvasapi.SubmissionSummary, error)
	GetSubmission(ctx context.Context, submissionID int64) (submission.Document, error)
	GetForm(ctx context.Context, formID int64, req canvasapi.GetFormRequest) (form.Definition, error)
}

var _ API = (*canvasapi.Client)(nil)

const defaultWorkers = 4

// Option customises an Exporter.
type Option func(*Exporter)

// WithTransformer injects a configured transformer.
func WithTransformer(t *transform.Transformer) Option {
	return func(e *Exporter) {
		e.transformer = t
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithWorkers bounds how many submissions are processed concurrently.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Exporter drives one or more export runs. Safe for concurrent Run calls;
// the form cache is shared across them.
type Exporter struct {
	api         API
	store       Store
	transformer *transform.Transformer
	logger      *slog.Logger
	workers     int
	forms       formCache
}

// New constructs an Exporter. API and store are required; missing options
// fall back to defaults.
func New(api API, store Store, options ...Option) (*Exporter, error) {
	if api == nil {
		return nil, fmt.Errorf("export: api client is required")
	}
	if store == nil {
		return nil, fmt.Errorf("export: store is required")
	}

	e := &Exporter{
		api:     api,
		store:   store,
		workers: defaultWorkers,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.transformer == nil {
		e.transformer = transform.New()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// Request scopes one export run.
type Request struct {
	// StartDate / EndDate bound the submission search (YYYY-MM-DD). When
	// StartDate is empty the range is derived from Days.
	StartDate string
	EndDate   string

	// Days is the look-back window used when no explicit range is given.
	Days int

	// FormID optionally filters submissions to one form; it also serves as
	// the transformation fallback for submissions that do not carry their own
	// form id.
	FormID int64
}

// Summary reports the outcome of one run.
type Summary struct {
	RunID           string
	Found           int
	Retrieved       int
	Failed          int
	Transformed     int
	TransformFailed int
	SkippedAnswers  int
}

// Run lists submissions for the requested range and processes each one:
// fetch, persist v3, transform, persist v2. Individual submission failures
// are counted, not fatal; listing failures abort the run.
func (e *Exporter) Run(ctx context.Context, req Request) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}

	startDate, endDate := req.StartDate, req.EndDate
	if startDate == "" {
		days := req.Days
		if days <= 0 {
			days = 7
		}
		startDate, endDate = DateRange(days)
	}

	logger := e.logger.With("run_id", summary.RunID)
	logger.Info("starting export run", "start_date", startDate, "end_date", endDate, "form_id", req.FormID)

	summaries, err := e.api.ListAllSubmissions(ctx, canvasapi.ListSubmissionsRequest{
		StartDate: startDate,
		EndDate:   endDate,
		FormID:    req.FormID,
	})
	if err != nil {
		return summary, fmt.Errorf("export: list submissions: %w", err)
	}
	summary.Found = len(summaries)
	if len(summaries) == 0 {
		logger.Warn("no submissions found for date range")
		return summary, nil
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for _, item := range summaries {
		item := item
		group.Go(func() error {
			outcome := e.processSubmission(groupCtx, logger, item, req.FormID)

			mu.Lock()
			defer mu.Unlock()
			if outcome.retrieved {
				summary.Retrieved++
			} else {
				summary.Failed++
			}
			if outcome.transformed {
				summary.Transformed++
			} else if outcome.transformAttempted {
				summary.TransformFailed++
			}
			summary.SkippedAnswers += outcome.skippedAnswers
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return summary, err
	}

	logger.Info("export run complete",
		"found", summary.Found,
		"retrieved", summary.Retrieved,
		"failed", summary.Failed,
		"transformed", summary.Transformed,
		"transform_failed", summary.TransformFailed,
		"skipped_answers", summary.SkippedAnswers,
	)
	return summary, nil
}

type outcome struct {
	retrieved          bool
	transformAttempted bool
	transformed        bool
	skippedAnswers     int
}

func (e *Exporter) processSubmission(ctx context.Context, logger *slog.Logger, item canvasapi.SubmissionSummary, fallbackFormID int64) outcome {
	var out outcome
	logger = logger.With("submission_id", item.ID)

	doc, err := e.api.GetSubmission(ctx, item.ID)
	if err != nil {
		logger.Error("retrieve submission", "error", err)
		return out
	}

	payload, err := marshalDocument(doc)
	if err != nil {
		logger.Error("encode submission", "error", err)
		return out
	}
	if _, err := e.store.SaveSubmission(doc.ID, doc.SubmissionNumber, payload); err != nil {
		logger.Error("persist submission", "error", err)
		return out
	}
	out.retrieved = true

	formID := doc.FormID
	if formID == 0 {
		formID = item.FormID
	}
	if formID == 0 {
		formID = fallbackFormID
	}
	if formID == 0 {
		logger.Warn("no form id available, skipping transformation")
		return out
	}

	out.transformAttempted = true
	def, err := e.formDefinition(ctx, formID)
	if err != nil {
		logger.Error("retrieve form", "form_id", formID, "error", err)
		return out
	}

	v2, report, err := e.transformer.Transform(def, doc)
	if err != nil {
		logger.Error("transform submission", "form_id", formID, "error", err)
		return out
	}
	for _, diag := range report.Diagnostics {
		logger.Warn("transform diagnostic", "kind", string(diag.Kind), "entry_id", diag.EntryID, "label", diag.Label)
	}
	out.skippedAnswers = report.Skipped()

	v2Payload, err := marshalDocument(v2)
	if err != nil {
		logger.Error("encode transformed submission", "error", err)
		return out
	}
	if _, err := e.store.SaveSubmissionV2(doc.ID, doc.SubmissionNumber, v2Payload); err != nil {
		logger.Error("persist transformed submission", "error", err)
		return out
	}

	out.transformed = true
	return out
}

// formCache memoizes form definitions per form id so a run touching many
// submissions of the same form fetches it once. The lock is held across the
// fetch to keep concurrent workers from duplicating it.
type formCache struct {
	mu   sync.Mutex
	defs map[int64]form.Definition
}

func (e *Exporter) formDefinition(ctx context.Context, formID int64) (form.Definition, error) {
	e.forms.mu.Lock()
	defer e.forms.mu.Unlock()

	if def, ok := e.forms.defs[formID]; ok {
		return def, nil
	}

	def, err := e.api.GetForm(ctx, formID, canvasapi.GetFormRequest{})
	if err != nil {
		return form.Definition{}, err
	}

	if payload, err := marshalDocument(def); err == nil {
		if _, err := e.store.SaveForm(def.ID, def.Name, payload); err != nil {
			e.logger.Warn("persist form", "form_id", def.ID, "error", err)
		}
	}

	if e.forms.defs == nil {
		e.forms.defs = make(map[int64]form.Definition)
	}
	e.forms.defs[formID] = def
	return def, nil
}

// DateRange returns the YYYY-MM-DD bounds for the last N days.
func DateRange(days int) (string, string) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

// marshalDocument renders output the way the legacy tooling did: three-space
// indentation, unescaped unicode left to encoding/json defaults.
func marshalDocument(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "   ")
}

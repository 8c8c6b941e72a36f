package record

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/submission"
)

// Loader fetches and decodes canvas documents. Loading is typed: the payload
// is validated against the target wire shape as part of the load, so a form
// file fed where a submission is expected fails at the load site, not deep in
// the transformation.
type Loader interface {
	LoadForm(ctx context.Context, src Source) (form.Definition, error)
	LoadSubmission(ctx context.Context, src Source) (submission.Document, error)
}

// LoaderOptions configures how a Loader resolves sources. Loading stays
// offline-first: URL sources are rejected unless HTTP is explicitly enabled.
type LoaderOptions struct {
	// FileSystem enables loading FSSource entries.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means URL sources are disabled unless AllowHTTPFallback
	// is set.
	HTTPClient *http.Client

	// AllowHTTPFallback enables a default HTTP client when none is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for FSSource entries.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL loading using a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// The implementation lives in internal/record/loader; construction goes
// through the top-level canvas package to keep the concrete type hidden.

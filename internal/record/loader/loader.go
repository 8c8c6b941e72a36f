// Package loader implements record.Loader over local files, an fs.FS, or
// HTTP. Fetched payloads are decoded into their typed documents immediately,
// so shape problems carry the source location in the error.
package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/record"
	"github.com/goliatone/go-canvas/pkg/submission"
)

// Loader resolves record.Source values and parses the fetched payloads.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

var _ record.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. URL loading is enabled
// only when a client is injected or the HTTP fallback is switched on.
func New(options record.LoaderOptions) record.Loader {
	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: options.RequestTimeout,
	}
}

// LoadForm fetches and decodes a form definition.
func (l *Loader) LoadForm(ctx context.Context, src record.Source) (form.Definition, error) {
	raw, err := l.fetch(ctx, src)
	if err != nil {
		return form.Definition{}, err
	}
	def, err := form.Parse(raw)
	if err != nil {
		return form.Definition{}, fmt.Errorf("record loader: %s: %w", src.Location(), err)
	}
	return def, nil
}

// LoadSubmission fetches and decodes a v3 submission document.
func (l *Loader) LoadSubmission(ctx context.Context, src record.Source) (submission.Document, error) {
	raw, err := l.fetch(ctx, src)
	if err != nil {
		return submission.Document{}, err
	}
	doc, err := submission.Parse(raw)
	if err != nil {
		return submission.Document{}, fmt.Errorf("record loader: %s: %w", src.Location(), err)
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, src record.Source) ([]byte, error) {
	if src.Location() == "" {
		return nil, fmt.Errorf("record loader: source location is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case record.SourceKindFile:
		return l.readFile(src.Location())
	case record.SourceKindFS:
		return l.readFS(src.Location())
	case record.SourceKindURL:
		return l.fetchURL(ctx, src.Location())
	default:
		return nil, fmt.Errorf("record loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("record loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("record loader: %w", err)
	}
	return data, nil
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.fs == nil {
		return nil, fmt.Errorf("record loader: no filesystem configured for %s", name)
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("record loader: %w", err)
	}
	return data, nil
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, fmt.Errorf("record loader: http loading is disabled")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("record loader: build request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record loader: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("record loader: %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("record loader: read response: %w", err)
	}
	return data, nil
}

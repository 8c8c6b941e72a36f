package loader_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-canvas/internal/record/loader"
	"github.com/goliatone/go-canvas/pkg/record"
)

const formFixture = `{
	"id": 77,
	"name": "Well Survey",
	"sections": [{
		"description": "General",
		"position": 1,
		"sheets": [{
			"description": "Site",
			"position": 1,
			"entries": [{"id": 5, "label": "Operator", "type": "text", "position": 1}]
		}]
	}]
}`

const submissionFixture = `{
	"id": 9001,
	"form_id": 77,
	"responses": [{"entry_id": 5, "value": "Ada"}]
}`

func TestLoadFormFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(formFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(record.NewLoaderOptions())
	def, err := l.LoadForm(context.Background(), record.FileSource(path))
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if def.ID != 77 || def.Name != "Well Survey" {
		t.Fatalf("definition = %+v", def)
	}
	if len(def.Sections) != 1 {
		t.Fatalf("sections = %+v", def.Sections)
	}
}

func TestLoadFormRejectsMalformedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(record.NewLoaderOptions())
	_, err := l.LoadForm(context.Background(), record.FileSource(path))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error must carry the source location, got %v", err)
	}
}

func TestLoadFormMissingFile(t *testing.T) {
	l := loader.New(record.NewLoaderOptions())
	if _, err := l.LoadForm(context.Background(), record.FileSource(filepath.Join(t.TempDir(), "absent.json"))); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadSubmissionFromFS(t *testing.T) {
	files := fstest.MapFS{
		"fixtures/submission.json": {Data: []byte(submissionFixture)},
	}

	l := loader.New(record.NewLoaderOptions(record.WithFileSystem(files)))
	doc, err := l.LoadSubmission(context.Background(), record.FSSource("fixtures/submission.json"))
	if err != nil {
		t.Fatalf("load submission: %v", err)
	}
	if doc.ID != 9001 || doc.FormID != 77 {
		t.Fatalf("document = %+v", doc)
	}
	if len(doc.Responses) != 1 {
		t.Fatalf("responses = %+v", doc.Responses)
	}
}

func TestLoadSubmissionRejectsFormPayload(t *testing.T) {
	// A form document has no submission id, so feeding it to the submission
	// side fails at the load site.
	files := fstest.MapFS{
		"form.json": {Data: []byte(`{"name":"Well Survey","sections":[]}`)},
	}

	l := loader.New(record.NewLoaderOptions(record.WithFileSystem(files)))
	if _, err := l.LoadSubmission(context.Background(), record.FSSource("form.json")); err == nil {
		t.Fatal("expected a shape error")
	}
}

func TestLoadFromFSWithoutFilesystem(t *testing.T) {
	l := loader.New(record.NewLoaderOptions())
	if _, err := l.LoadForm(context.Background(), record.FSSource("anything.json")); err == nil {
		t.Fatal("expected an error when no fs is configured")
	}
}

func TestLoadFormFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, formFixture)
	}))
	t.Cleanup(server.Close)

	src, err := record.URLSource(server.URL + "/form.json")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	l := loader.New(record.NewLoaderOptions(record.WithHTTPFallback(5 * time.Second)))
	def, err := l.LoadForm(context.Background(), src)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if def.ID != 77 {
		t.Fatalf("definition = %+v", def)
	}
}

func TestLoadFromURLDisabledByDefault(t *testing.T) {
	src, err := record.URLSource("https://example.com/form.json")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	l := loader.New(record.NewLoaderOptions())
	if _, err := l.LoadForm(context.Background(), src); err == nil {
		t.Fatal("http loading must be opt-in")
	}
}

func TestLoadFromURLNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	src, err := record.URLSource(server.URL)
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	l := loader.New(record.NewLoaderOptions(record.WithHTTPFallback(5 * time.Second)))
	if _, err := l.LoadForm(context.Background(), src); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestURLSourceValidation(t *testing.T) {
	if _, err := record.URLSource(""); err == nil {
		t.Fatal("empty url must be rejected")
	}
	if _, err := record.URLSource("://bad"); err == nil {
		t.Fatal("malformed url must be rejected")
	}
	src, err := record.URLSource("https://example.com/doc.json")
	if err != nil {
		t.Fatalf("valid url rejected: %v", err)
	}
	if src.Kind() != record.SourceKindURL {
		t.Fatalf("kind = %q", src.Kind())
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(formFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(record.NewLoaderOptions())
	if _, err := l.LoadForm(ctx, record.FileSource(path)); err == nil {
		t.Fatal("expected a context error")
	}
}

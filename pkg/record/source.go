package record

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates where a canvas document can be loaded from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names one loadable document location: a disk path, an entry in a
// configured fs.FS, or an HTTP(S) endpoint.
type Source struct {
	kind     SourceKind
	location string
}

// Kind returns the loading modality.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Location returns the path, name, or URL the source points at.
func (s Source) Location() string {
	return s.location
}

// FileSource points at an on-disk path.
func FileSource(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// FSSource points at a name inside the loader's configured fs.FS.
func FSSource(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// URLSource points at an HTTP(S) endpoint. Invalid URLs are rejected here so
// configuration mistakes surface before any fetch happens.
func URLSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, fmt.Errorf("record: url source is empty")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return Source{}, fmt.Errorf("record: invalid url %q: %w", raw, err)
	}
	return Source{kind: SourceKindURL, location: raw}, nil
}

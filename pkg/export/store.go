package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store persists fetched and transformed documents. Implementations return
// the location written so callers can log it.
type Store interface {
	SaveForm(formID int64, name string, payload []byte) (string, error)
	SaveSubmission(submissionID int64, number string, payload []byte) (string, error)
	SaveSubmissionV2(submissionID int64, number string, payload []byte) (string, error)
}

// DirStore writes documents into a flat output directory using the legacy
// naming scheme: form_<id>_<name>.json, submission_<id>[_<number>].json and
// the matching _v2 variant.
type DirStore struct {
	dir string
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates the output directory when missing and returns a store
// rooted at it.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("export: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create output directory: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the output directory path.
func (s *DirStore) Dir() string {
	return s.dir
}

// SaveForm writes a form definition payload.
func (s *DirStore) SaveForm(formID int64, name string, payload []byte) (string, error) {
	filename := fmt.Sprintf("form_%d_%s.json", formID, sanitizeFilename(name))
	return s.write(filename, payload)
}

// SaveSubmission writes a raw v3 submission payload.
func (s *DirStore) SaveSubmission(submissionID int64, number string, payload []byte) (string, error) {
	return s.write(submissionFilename(submissionID, number, ""), payload)
}

// SaveSubmissionV2 writes a transformed v2 submission payload.
func (s *DirStore) SaveSubmissionV2(submissionID int64, number string, payload []byte) (string, error) {
	return s.write(submissionFilename(submissionID, number, "_v2"), payload)
}

func (s *DirStore) write(filename string, payload []byte) (string, error) {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", filename, err)
	}
	return path, nil
}

func submissionFilename(id int64, number, suffix string) string {
	base := "submission_" + strconv.FormatInt(id, 10)
	if number != "" {
		base += "_" + sanitizeFilename(number)
	}
	return base + suffix + ".json"
}

// sanitizeFilename strips characters that are invalid on common filesystems.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_",
		"|", "_", "?", "_", "*", "_", "/", "_", `\`, "_",
	)
	return replacer.Replace(name)
}

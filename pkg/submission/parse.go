package submission

import (
	"encoding/json"
	"fmt"
)

// Parse decodes a v3 submission document.
func Parse(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("submission: document is empty")
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("submission: decode document: %w", err)
	}
	if doc.ID == 0 {
		return Document{}, fmt.Errorf("submission: document is missing an id")
	}
	return doc, nil
}

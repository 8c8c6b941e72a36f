package canvasapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// pageInfo is the pagination block some deployments return under "pagination"
// and others under "meta".
type pageInfo struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// splitEnvelope extracts the record array from a list response. The v3 API is
// inconsistent across deployments: the payload is either a bare array or an
// object keyed by the collection name (or "data") with optional pagination
// metadata. A nil pageInfo means the caller should fall back to the
// full-page heuristic.
func splitEnvelope(raw []byte, keys ...string) (json.RawMessage, *pageInfo, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("canvasapi: empty list payload")
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return nil, nil, fmt.Errorf("canvasapi: decode list payload: %w", err)
	}

	var items json.RawMessage
	for _, key := range append(keys, "data") {
		if value, ok := body[key]; ok {
			items = value
			break
		}
	}
	if items == nil {
		items = json.RawMessage("[]")
	}

	for _, key := range []string{"pagination", "meta"} {
		value, ok := body[key]
		if !ok {
			continue
		}
		var info pageInfo
		if err := json.Unmarshal(value, &info); err == nil {
			return items, &info, nil
		}
	}

	return items, nil, nil
}

// hasMore decides whether another page follows, preferring explicit
// pagination metadata over the got-a-full-page heuristic.
func hasMore(info *pageInfo, page, perPage, got int) bool {
	if info != nil && info.TotalPages > 0 {
		current := info.CurrentPage
		if current == 0 {
			current = page
		}
		return current < info.TotalPages
	}
	return got == perPage
}

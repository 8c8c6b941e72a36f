package submission

import "encoding/json"

// Answer is one v3 response record: the entry it answers and the raw typed
// value payload. Value stays undecoded until the transformer knows the entry's
// declared type; shape mismatches are detected there, per answer, instead of
// failing the whole document decode.
type Answer struct {
	EntryID int64           `json:"entry_id"`
	GUID    string          `json:"guid,omitempty"`
	Label   string          `json:"label,omitempty"`
	Type    string          `json:"type,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

// Document is a v3 submission: flat answer records plus submission-level
// metadata.
type Document struct {
	ID               int64    `json:"id"`
	ClientGUID       string   `json:"client_guid,omitempty"`
	SubmissionNumber string   `json:"submission_number,omitempty"`
	FormID           int64    `json:"form_id,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	Responses        []Answer `json:"responses,omitempty"`
}

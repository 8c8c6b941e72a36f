package canvasapi

// FormSummary is one record from the forms list endpoint.
type FormSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Status  string `json:"status,omitempty"`
	Version int    `json:"version,omitempty"`
}

// SubmissionSummary is one record from the submissions list endpoint. The
// full answer payload requires a follow-up GetSubmission call.
type SubmissionSummary struct {
	ID               int64  `json:"id"`
	SubmissionNumber string `json:"submission_number,omitempty"`
	FormID           int64  `json:"form_id,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// ListFormsRequest filters and pages the forms list endpoint.
type ListFormsRequest struct {
	// Status filters by form lifecycle state (published, archived, …).
	Status string
	// Page is 1-based; zero means the first page.
	Page int
	// PerPage is capped at the API limit of 100.
	PerPage int
}

// GetFormRequest narrows which revision of a form to fetch.
type GetFormRequest struct {
	Status  string
	Version int
}

// ListSubmissionsRequest filters and pages the submissions list endpoint.
// Dates use YYYY-MM-DD.
type ListSubmissionsRequest struct {
	StartDate string
	EndDate   string
	FormID    int64
	Page      int
	PerPage   int
}

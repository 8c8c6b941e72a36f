package canvasapi

import "fmt"

// APIError reports a non-2xx response from the v3 API. Body holds a snippet
// of the response payload for diagnostics.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("canvasapi: unexpected status %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("canvasapi: unexpected status %s", e.Status)
}

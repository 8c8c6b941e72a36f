package canvasapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-canvas/pkg/canvasapi"
)

func newTestClient(t *testing.T, handler http.Handler, options ...canvasapi.Option) *canvasapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := append([]canvasapi.Option{
		canvasapi.WithBaseURL(server.URL),
		canvasapi.WithCredentials("user@example.com", "secret"),
	}, options...)
	client, err := canvasapi.New(base...)
	require.NoError(t, err)
	return client
}

func TestNewRequiresAuth(t *testing.T) {
	_, err := canvasapi.New()
	require.Error(t, err)

	_, err = canvasapi.New(canvasapi.WithBearerToken("tok"))
	require.NoError(t, err)

	_, err = canvasapi.New(canvasapi.WithCredentials("user", ""))
	require.Error(t, err)
}

func TestClientSendsBasicAuth(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user@example.com", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `[]`)
	}))

	_, _, err := client.ListForms(context.Background(), canvasapi.ListFormsRequest{})
	require.NoError(t, err)
}

func TestClientSendsBearerToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}), canvasapi.WithBearerToken("tok-123"))

	_, _, err := client.ListForms(context.Background(), canvasapi.ListFormsRequest{})
	require.NoError(t, err)
}

func TestListFormsEnvelopeVariants(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		wantMore bool
	}{
		{
			name:     "bare array short page",
			payload:  `[{"id":1,"name":"Well Survey"}]`,
			wantMore: false,
		},
		{
			name:     "keyed with pagination",
			payload:  `{"forms":[{"id":1,"name":"Well Survey"}],"pagination":{"current_page":1,"total_pages":3}}`,
			wantMore: true,
		},
		{
			name:     "data key with meta",
			payload:  `{"data":[{"id":1,"name":"Well Survey"}],"meta":{"current_page":3,"total_pages":3}}`,
			wantMore: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.payload)
			}))

			forms, more, err := client.ListForms(context.Background(), canvasapi.ListFormsRequest{Page: 1, PerPage: 50})
			require.NoError(t, err)
			require.Len(t, forms, 1)
			assert.Equal(t, int64(1), forms[0].ID)
			assert.Equal(t, "Well Survey", forms[0].Name)
			assert.Equal(t, tc.wantMore, more)
		})
	}
}

func TestListAllSubmissionsWalksPages(t *testing.T) {
	var pages []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		switch page {
		case "1":
			fmt.Fprint(w, `{"submissions":[{"id":10},{"id":11}],"pagination":{"current_page":1,"total_pages":2}}`)
		default:
			fmt.Fprint(w, `{"submissions":[{"id":12}],"pagination":{"current_page":2,"total_pages":2}}`)
		}
	}))

	subs, err := client.ListAllSubmissions(context.Background(), canvasapi.ListSubmissionsRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	})
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, []string{"1", "2"}, pages)
	assert.Equal(t, int64(12), subs[2].ID)
}

func TestListSubmissionsPassesFilters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-01-01", q.Get("start_date"))
		assert.Equal(t, "2025-01-31", q.Get("end_date"))
		assert.Equal(t, "42", q.Get("form_id"))
		fmt.Fprint(w, `[]`)
	}))

	_, _, err := client.ListSubmissions(context.Background(), canvasapi.ListSubmissionsRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
		FormID:    42,
	})
	require.NoError(t, err)
}

func TestGetFormDecodesDefinition(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/77", r.URL.Path)
		assert.Equal(t, "published", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{
			"id": 77,
			"name": "Well Survey",
			"status": "published",
			"version": 3,
			"sections": [{
				"description": "General",
				"position": 1,
				"sheets": [{
					"description": "Site",
					"position": 1,
					"entries": [{"id": 5, "label": "Operator", "type": "text", "position": 1}]
				}]
			}]
		}`)
	}))

	def, err := client.GetForm(context.Background(), 77, canvasapi.GetFormRequest{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, int64(77), def.ID)
	assert.Equal(t, 3, def.Version)
	require.Len(t, def.Sections, 1)
	require.Len(t, def.Sections[0].Sheets, 1)
	assert.Equal(t, "Operator", def.Sections[0].Sheets[0].Entries[0].Label)
}

func TestGetSubmissionDecodesDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/9001", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 9001,
			"client_guid": "cg-1",
			"submission_number": "17",
			"form_id": 77,
			"created_at": "2025-12-06T15:04:05Z",
			"responses": [{"entry_id": 5, "value": "hello"}]
		}`)
	}))

	doc, err := client.GetSubmission(context.Background(), 9001)
	require.NoError(t, err)
	assert.Equal(t, int64(9001), doc.ID)
	assert.Equal(t, "cg-1", doc.ClientGUID)
	require.Len(t, doc.Responses, 1)
	assert.Equal(t, int64(5), doc.Responses[0].EntryID)
}

func TestNonSuccessStatusYieldsAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))

	_, _, err := client.ListForms(context.Background(), canvasapi.ListFormsRequest{})
	var apiErr *canvasapi.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid credentials")
}

func TestFullPageHeuristicWithoutPagination(t *testing.T) {
	page := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page++
		perPage := r.URL.Query().Get("per_page")
		assert.Equal(t, "2", perPage)
		if page == 1 {
			fmt.Fprint(w, `[{"id":1},{"id":2}]`)
			return
		}
		fmt.Fprint(w, `[{"id":3}]`)
	}))

	forms, more, err := client.ListForms(context.Background(), canvasapi.ListFormsRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.True(t, more, "a full page without metadata must signal more")
	require.Len(t, forms, 2)

	forms, more, err = client.ListForms(context.Background(), canvasapi.ListFormsRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, forms, 1)
}

// Package canvasapi is a thin client for the GoCanvas API v3: list and fetch
// forms, list and fetch submissions. Authentication, retryable pagination,
// and payload envelope quirks live here so the transformation core never sees
// them.
package canvasapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/submission"
)

// maxPerPage is the API's page-size ceiling.
const maxPerPage = 100

// Client calls the GoCanvas API v3. All methods honour the supplied context
// and return *APIError for non-2xx responses.
type Client struct {
	baseURL  string
	http     *http.Client
	username string
	password string
	bearer   string
	logger   *slog.Logger
}

// New constructs a Client. Either Basic credentials or a bearer token must be
// configured.
func New(options ...Option) (*Client, error) {
	opts := NewOptions(options...)

	if opts.BearerToken == "" && (opts.Username == "" || opts.Password == "") {
		return nil, errors.New("canvasapi: credentials or a bearer token are required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.RequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		username: opts.Username,
		password: opts.Password,
		bearer:   opts.BearerToken,
		logger:   logger,
	}, nil
}

// ListForms fetches one page of form summaries. The second return value
// reports whether another page follows.
func (c *Client) ListForms(ctx context.Context, req ListFormsRequest) ([]FormSummary, bool, error) {
	page, perPage := normalizePaging(req.Page, req.PerPage)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if req.Status != "" {
		params.Set("status", req.Status)
	}

	raw, err := c.get(ctx, "forms", params)
	if err != nil {
		return nil, false, err
	}

	items, info, err := splitEnvelope(raw, "forms")
	if err != nil {
		return nil, false, err
	}
	var forms []FormSummary
	if err := json.Unmarshal(items, &forms); err != nil {
		return nil, false, fmt.Errorf("canvasapi: decode forms: %w", err)
	}
	return forms, hasMore(info, page, perPage, len(forms)), nil
}

// ListAllForms walks every page of the forms list.
func (c *Client) ListAllForms(ctx context.Context, status string) ([]FormSummary, error) {
	var all []FormSummary
	for page := 1; ; page++ {
		forms, more, err := c.ListForms(ctx, ListFormsRequest{Status: status, Page: page, PerPage: maxPerPage})
		if err != nil {
			return nil, err
		}
		all = append(all, forms...)
		c.logger.Debug("listed forms page", "page", page, "count", len(forms), "total", len(all))
		if !more || len(forms) == 0 {
			break
		}
	}
	return all, nil
}

// GetForm fetches the full nested definition of one form.
func (c *Client) GetForm(ctx context.Context, formID int64, req GetFormRequest) (form.Definition, error) {
	params := url.Values{}
	if req.Status != "" {
		params.Set("status", req.Status)
	}
	if req.Version > 0 {
		params.Set("version", strconv.Itoa(req.Version))
	}

	raw, err := c.get(ctx, "forms/"+strconv.FormatInt(formID, 10), params)
	if err != nil {
		return form.Definition{}, err
	}
	return form.Parse(raw)
}

// ListSubmissions fetches one page of submission summaries.
func (c *Client) ListSubmissions(ctx context.Context, req ListSubmissionsRequest) ([]SubmissionSummary, bool, error) {
	page, perPage := normalizePaging(req.Page, req.PerPage)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if req.StartDate != "" {
		params.Set("start_date", req.StartDate)
	}
	if req.EndDate != "" {
		params.Set("end_date", req.EndDate)
	}
	if req.FormID > 0 {
		params.Set("form_id", strconv.FormatInt(req.FormID, 10))
	}

	raw, err := c.get(ctx, "submissions", params)
	if err != nil {
		return nil, false, err
	}

	items, info, err := splitEnvelope(raw, "submissions")
	if err != nil {
		return nil, false, err
	}
	var submissions []SubmissionSummary
	if err := json.Unmarshal(items, &submissions); err != nil {
		return nil, false, fmt.Errorf("canvasapi: decode submissions: %w", err)
	}
	return submissions, hasMore(info, page, perPage, len(submissions)), nil
}

// ListAllSubmissions walks every page of the submissions list for the given
// filters.
func (c *Client) ListAllSubmissions(ctx context.Context, req ListSubmissionsRequest) ([]SubmissionSummary, error) {
	var all []SubmissionSummary
	for page := 1; ; page++ {
		req.Page = page
		req.PerPage = maxPerPage
		submissions, more, err := c.ListSubmissions(ctx, req)
		if err != nil {
			return nil, err
		}
		all = append(all, submissions...)
		c.logger.Debug("listed submissions page", "page", page, "count", len(submissions), "total", len(all))
		if !more || len(submissions) == 0 {
			break
		}
	}
	return all, nil
}

// GetSubmission fetches the full answer payload of one submission.
func (c *Client) GetSubmission(ctx context.Context, submissionID int64) (submission.Document, error) {
	raw, err := c.get(ctx, "submissions/"+strconv.FormatInt(submissionID, 10), nil)
	if err != nil {
		return submission.Document{}, err
	}
	return submission.Parse(raw)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("canvasapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	} else {
		req.SetBasicAuth(c.username, c.password)
	}

	c.logger.Debug("canvas api request", "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvasapi: %s: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("canvasapi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(string(body), 512),
		}
	}
	return body, nil
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package canvasapi

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL is the production API v3 root.
const DefaultBaseURL = "https://www.gocanvas.com/api/v3"

// DefaultRequestTimeout caps individual API calls when no custom client is
// injected.
const DefaultRequestTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string

	// HTTPClient allows callers to inject custom HTTP behaviour (proxies,
	// instrumentation). A nil client gets a default with RequestTimeout.
	HTTPClient *http.Client

	// Username and Password enable HTTP Basic authentication.
	Username string
	Password string

	// BearerToken enables OAuth bearer authentication instead of Basic.
	BearerToken string

	// RequestTimeout applies when no HTTPClient is supplied.
	RequestTimeout time.Duration

	// Logger receives request-level debug output; defaults to slog.Default().
	Logger *slog.Logger
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithCredentials configures HTTP Basic authentication.
func WithCredentials(username, password string) Option {
	return func(opts *Options) {
		opts.Username = username
		opts.Password = password
	}
}

// WithBearerToken configures bearer-token authentication.
func WithBearerToken(token string) Option {
	return func(opts *Options) {
		opts.BearerToken = token
	}
}

// WithRequestTimeout caps call durations for the default HTTP client.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.RequestTimeout = timeout
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// NewOptions applies Option values over the defaults.
func NewOptions(options ...Option) Options {
	opts := Options{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

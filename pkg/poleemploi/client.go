// Package poleemploi provides a client for the Pôle Emploi "Offres d'emploi v2"
// API from Emploi Store. It handles the OAuth2 client credentials flow and
// exposes the job search and referentiel lookup operations.
package poleemploi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.emploi-store.fr/partenaire/offresdemploi/v2"

	searchPath      = "/offres/search"
	referentielPath = "/referentiel"
)

// TokenProvider defines the interface for obtaining OAuth2 access tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Searcher defines the interface for the job search operation. The Paginator
// accepts any Searcher, so tests can substitute a fake.
type Searcher interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

// Client executes authenticated requests against the Offres d'emploi v2 API.
type Client struct {
	tokens      TokenProvider
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that paces API calls. The API
// documents a limit of 3 requests per second; pacing is the caller's
// responsibility and nothing is enforced unless a limiter is set.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets a logger for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client using an externally constructed TokenProvider.
func NewClient(tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		tokens:  tokens,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New creates a Client authenticating with the given application credentials
// via the OAuth2 client credentials grant. Both credentials are required; an
// empty client ID or secret surfaces as an *AuthError on the first call.
func New(clientID, clientSecret string, opts ...Option) *Client {
	return NewClient(NewOAuthTokenProvider(clientID, clientSecret), opts...)
}

func (c *Client) searchURL() string {
	return c.baseURL + searchPath
}

func (c *Client) referentielURL(name string) string {
	return c.baseURL + referentielPath + "/" + name
}

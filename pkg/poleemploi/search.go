package poleemploi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/emploitools/offresemploi/internal/metrics"
)

// DefaultRange is the result window requested when the caller supplies no
// "range" parameter. A caller-provided value always wins, even one outside
// the documented bounds; the remote service is authoritative for rejecting
// those.
const DefaultRange = "0-149"

type searchAPIResponse struct {
	FiltresPossibles []Filtre `json:"filtresPossibles"`
	Resultats        []Offre  `json:"resultats"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

// Search runs a parametrized job search. Caller params are merged over the
// built-in defaults, with caller values winning on collision, and forwarded
// verbatim; no local validation against the remote schema is performed.
//
// A 204 response (no offer matches) yields an empty result with a zero
// ContentRange. A 429 (more than 3 requests per second) or any other
// non-success status yields an *APIError; nothing is retried here, pacing is
// the caller's contract.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u := c.buildSearchURL(params)
	if c.logger != nil {
		c.logger.Debug("searching offers", "url", u)
	}

	start := time.Now()
	metrics.APICallsTotal.WithLabelValues("search").Inc()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("search").Inc()
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	metrics.RequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	// 204: no offer matches the criteria. The remote sends no body and no
	// Content-Range, so the zero-result shape is synthesized here.
	if resp.StatusCode == http.StatusNoContent {
		return &SearchResult{
			FiltresPossibles: []Filtre{},
			Resultats:        []Offre{},
		}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("search").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	// A full window comes back as 200, a ranged slice as 206.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		metrics.APIErrorsTotal.WithLabelValues("search").Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiMessage(body),
		}
	}

	contentRange, err := ParseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("search").Inc()
		return nil, err
	}

	var apiResp searchAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		metrics.APIErrorsTotal.WithLabelValues("search").Inc()
		return nil, &ParseError{Reason: "search response body", Err: err}
	}

	if apiResp.FiltresPossibles == nil {
		apiResp.FiltresPossibles = []Filtre{}
	}
	if apiResp.Resultats == nil {
		apiResp.Resultats = []Offre{}
	}

	return &SearchResult{
		FiltresPossibles: apiResp.FiltresPossibles,
		Resultats:        apiResp.Resultats,
		ContentRange:     contentRange,
	}, nil
}

func (c *Client) buildSearchURL(params SearchParams) string {
	values := url.Values{}
	values.Set("range", DefaultRange)

	for k, v := range params {
		values.Set(k, v)
	}

	return c.searchURL() + "?" + values.Encode()
}

// apiMessage pulls the "message" field the API puts in error bodies, falling
// back to the raw body.
func apiMessage(body []byte) string {
	var errResp apiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(body)
}

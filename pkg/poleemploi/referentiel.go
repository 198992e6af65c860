package poleemploi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/emploitools/offresemploi/internal/metrics"
)

// referentiels is the set of reference tables the Offres d'emploi v2 API
// publishes. Membership is checked locally so an unknown name never costs a
// network round trip.
var referentiels = map[string]struct{}{
	"appellations":      {},
	"communes":          {},
	"continents":        {},
	"departements":      {},
	"domaines":          {},
	"langues":           {},
	"metiers":           {},
	"naturesContrats":   {},
	"niveauxFormations": {},
	"pays":              {},
	"permis":            {},
	"regions":           {},
	"secteursActivites": {},
	"themes":            {},
	"typesContrats":     {},
}

// ValidReferentiels returns the recognized referentiel names, sorted.
func ValidReferentiels() []string {
	names := make([]string, 0, len(referentiels))
	for name := range referentiels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Referentiel fetches the named reference table as ordered code/label pairs,
// preserving the order the remote service returned. An unrecognized name
// fails with *UnknownReferentielError before any request is issued.
func (c *Client) Referentiel(ctx context.Context, name string) ([]RefEntry, error) {
	if _, ok := referentiels[name]; !ok {
		return nil, &UnknownReferentielError{Name: name}
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u := c.referentielURL(name)
	if c.logger != nil {
		c.logger.Debug("fetching referentiel", "name", name, "url", u)
	}

	start := time.Now()
	metrics.APICallsTotal.WithLabelValues("referentiel").Inc()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("referentiel").Inc()
		return nil, fmt.Errorf("executing referentiel request: %w", err)
	}
	defer resp.Body.Close()

	metrics.RequestDuration.WithLabelValues("referentiel").Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues("referentiel").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.APIErrorsTotal.WithLabelValues("referentiel").Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiMessage(body),
		}
	}

	var entries []RefEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		metrics.APIErrorsTotal.WithLabelValues("referentiel").Inc()
		return nil, &ParseError{Reason: "referentiel response body", Err: err}
	}

	return entries, nil
}

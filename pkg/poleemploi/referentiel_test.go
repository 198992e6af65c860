package poleemploi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

func TestClient_Referentiel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referentiel/themes", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"code": "14", "libelle": "Aide et services à la personne"},
			{"code": "4", "libelle": "Bâtiment et construction"},
			{"code": "1", "libelle": "Agriculture"}
		]`))
	}))
	defer srv.Close()

	client := poleemploi.NewClient(
		&staticTokens{token: "test-token"},
		poleemploi.WithBaseURL(srv.URL),
	)

	entries, err := client.Referentiel(context.Background(), "themes")
	require.NoError(t, err)

	// Remote ordering is preserved, no local sort.
	require.Len(t, entries, 3)
	assert.Equal(t, poleemploi.RefEntry{Code: "14", Libelle: "Aide et services à la personne"}, entries[0])
	assert.Equal(t, "4", entries[1].Code)
	assert.Equal(t, "1", entries[2].Code)
}

func TestClient_Referentiel_UnknownName(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	tokens := &staticTokens{token: "test-token"}
	client := poleemploi.NewClient(tokens, poleemploi.WithBaseURL(srv.URL))

	_, err := client.Referentiel(context.Background(), "salaires")

	var refErr *poleemploi.UnknownReferentielError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "salaires", refErr.Name)

	// Rejected before any network activity, token requests included.
	assert.Equal(t, int32(0), requests.Load())
	assert.Equal(t, int32(0), tokens.calls.Load())
}

func TestClient_Referentiel_RemoteError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := poleemploi.NewClient(
		&staticTokens{token: "test-token"},
		poleemploi.WithBaseURL(srv.URL),
	)

	_, err := client.Referentiel(context.Background(), "metiers")

	var apiErr *poleemploi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_Referentiel_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := poleemploi.NewClient(
		&staticTokens{token: "test-token"},
		poleemploi.WithBaseURL(srv.URL),
	)

	_, err := client.Referentiel(context.Background(), "domaines")

	var parseErr *poleemploi.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestValidReferentiels(t *testing.T) {
	t.Parallel()

	names := poleemploi.ValidReferentiels()
	assert.Len(t, names, 15)
	assert.Contains(t, names, "metiers")
	assert.Contains(t, names, "naturesContrats")
	assert.IsIncreasing(t, names)
}

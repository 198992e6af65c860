// Package main implements a mock Pôle Emploi API server for local development.
// It serves canned offers from a JSON fixture to simulate the Offres d'emploi
// v2 search and referentiel endpoints plus the OAuth token endpoint, without
// requiring real Emploi Store credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type offersFixture struct {
	Resultats []json.RawMessage `json:"resultats"`
}

type offerTitle struct {
	Intitule string `json:"intitule"`
}

func main() {
	port := flag.Int("port", 8091, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/offres.json", "path to offers fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "offers", len(fixture.Resultats))

	mux := http.NewServeMux()
	mux.HandleFunc("/connexion/oauth2/access_token", requireMethod(http.MethodPost, tokenHandler(logger)))
	mux.HandleFunc("/partenaire/offresdemploi/v2/offres/search", requireMethod(http.MethodGet, searchHandler(logger, fixture)))
	mux.HandleFunc(referentielPrefix, requireMethod(http.MethodGet, referentielHandler(logger)))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Pôle Emploi server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*offersFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f offersFixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

const referentielPrefix = "/partenaire/offresdemploi/v2/referentiel/"

// requireMethod restricts a handler to one HTTP method (plus HEAD for GET),
// matching the routing the Go 1.22+ ServeMux method patterns provided.
func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		// Validate the form fields are present (don't verify creds).
		if r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") == "" ||
			r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing credentials")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-" + uuid.NewString(),
			"expires_in":   1499,
			"token_type":   "Bearer",
			"scope":        r.PostForm.Get("scope"),
		})
		logger.Info("issued mock token", "client_id", r.PostForm.Get("client_id"))
	}
}

func searchHandler(logger *slog.Logger, fixture *offersFixture) http.HandlerFunc {
	// Pre-parse titles for filtering.
	type indexedOffer struct {
		raw   json.RawMessage
		title string
	}
	offers := make([]indexedOffer, 0, len(fixture.Resultats))
	for _, raw := range fixture.Resultats {
		var o offerTitle
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &o)
		offers = append(offers, indexedOffer{raw: raw, title: strings.ToLower(o.Intitule)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer mock-") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		motsCles := strings.ToLower(r.URL.Query().Get("motsCles"))
		first, last, err := parseRange(r.URL.Query().Get("range"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Filter offers by keyword substring match on the title.
		var matched []json.RawMessage
		for _, o := range offers {
			if motsCles == "" || strings.Contains(o.title, motsCles) {
				matched = append(matched, o.raw)
			}
		}

		total := len(matched)
		if total == 0 || first >= total {
			w.WriteHeader(http.StatusNoContent)
			logger.Info("search", "motsCles", motsCles, "matched", 0)
			return
		}

		end := min(last+1, total)
		window := matched[first:end]

		status := http.StatusOK
		if end < total {
			status = http.StatusPartialContent
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", fmt.Sprintf("offres %d-%d/%d", first, end-1, total))
		w.WriteHeader(status)
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"resultats":        window,
			"filtresPossibles": []any{},
		})
		logger.Info("search", "motsCles", motsCles, "matched", total, "returned", len(window), "range", fmt.Sprintf("%d-%d", first, end-1))
	}
}

func parseRange(raw string) (first, last int, err error) {
	if raw == "" {
		return 0, 149, nil
	}
	lo, hi, ok := strings.Cut(raw, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q", raw)
	}
	first, err = strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", raw)
	}
	last, err = strconv.Atoi(hi)
	if err != nil || last < first {
		return 0, 0, fmt.Errorf("invalid range %q", raw)
	}
	return first, last, nil
}

// referentielData is a trimmed selection of reference table entries, enough
// to exercise clients locally.
var referentielData = map[string][]map[string]string{
	"typesContrats": {
		{"code": "CDI", "libelle": "Contrat à durée indéterminée"},
		{"code": "CDD", "libelle": "Contrat à durée déterminée"},
		{"code": "MIS", "libelle": "Mission intérimaire"},
		{"code": "SAI", "libelle": "Contrat travail saisonnier"},
	},
	"naturesContrats": {
		{"code": "E1", "libelle": "Contrat travail"},
		{"code": "E2", "libelle": "Contrat apprentissage"},
	},
	"themes": {
		{"code": "A", "libelle": "Agriculture"},
		{"code": "B", "libelle": "Arts"},
		{"code": "C", "libelle": "Banque"},
	},
	"regions": {
		{"code": "75", "libelle": "Nouvelle-Aquitaine"},
		{"code": "76", "libelle": "Occitanie"},
		{"code": "84", "libelle": "Auvergne-Rhône-Alpes"},
	},
}

func referentielHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer mock-") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, referentielPrefix)
		entries, ok := referentielData[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			logger.Warn("unknown referentiel", "name", name)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(entries)
		logger.Info("referentiel", "name", name, "entries", len(entries))
	}
}

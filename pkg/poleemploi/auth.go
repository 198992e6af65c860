package poleemploi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/emploitools/offresemploi/internal/metrics"
)

const (
	defaultTokenURL = "https://entreprise.pole-emploi.fr/connexion/oauth2/access_token" //nolint:gosec // not a credential
	tokenRealm      = "/partenaire"
)

// OAuthTokenProvider implements TokenProvider using the OAuth2 client
// credentials grant against the Emploi Store authentication endpoint. The
// token is cached and re-requested lazily once its expiry has passed. A
// failed grant leaves any previously cached token in place.
type OAuthTokenProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default authentication endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.tokenURL = u
	}
}

// WithTokenHTTPClient overrides the default HTTP client.
func WithTokenHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a token provider for the given application
// credentials.
func NewOAuthTokenProvider(
	clientID, clientSecret string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 60 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Token returns a valid access token, performing a grant request when no
// token is cached or the cached one has expired.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

// scope returns the fixed scope string the Offres d'emploi v2 API expects,
// which embeds the application's client ID.
func (p *OAuthTokenProvider) scope() string {
	return "api_offresdemploiv2 o2dsoffre application_" + p.clientID
}

func (p *OAuthTokenProvider) refreshLocked(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"scope":         {p.scope()},
	}

	grantURL := p.tokenURL + "?realm=" + url.QueryEscape(tokenRealm)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		grantURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	now := p.nowFunc()

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.TokenRefreshFailuresTotal.Inc()
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		msg := strings.TrimSpace(errResp.Error + " " + errResp.ErrorDescription)
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", &AuthError{StatusCode: resp.StatusCode, Message: msg}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("parsing grant response: %v", err),
		}
	}

	if tokenResp.AccessToken == "" || tokenResp.ExpiresIn <= 0 {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "grant response missing access_token or expires_in",
		}
	}

	p.token = tokenResp.AccessToken
	p.expiry = now.Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	metrics.TokenRefreshesTotal.Inc()

	return p.token, nil
}

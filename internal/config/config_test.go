package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
api:
  client_id: my-client-id
  client_secret: my-client-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "my-client-id", cfg.API.ClientID)
				assert.Equal(t, "my-client-secret", cfg.API.ClientSecret)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
api:
  client_id: my-client-id
  client_secret: my-client-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t,
					"https://entreprise.pole-emploi.fr/connexion/oauth2/access_token",
					cfg.API.TokenURL,
				)
				assert.Equal(t,
					"https://api.emploi-store.fr/partenaire/offresdemploi/v2",
					cfg.API.BaseURL,
				)
				assert.False(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 3.0, cfg.RateLimit.PerSecond)
				assert.Equal(t, 3, cfg.RateLimit.Burst)
				assert.Equal(t, int64(0), cfg.RateLimit.DailyLimit)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
api:
  client_id: my-client-id
  client_secret: "${TEST_PE_CLIENT_SECRET}"
`,
			envVars: map[string]string{
				"TEST_PE_CLIENT_SECRET": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.API.ClientSecret)
			},
		},
		{
			name: "missing required api.client_id",
			yaml: `
api:
  client_secret: my-client-secret
`,
			wantErr: "api.client_id is required",
		},
		{
			name: "missing required api.client_secret",
			yaml: `
api:
  client_id: my-client-id
`,
			wantErr: "api.client_secret is required",
		},
		{
			name: "invalid logging format",
			yaml: `
api:
  client_id: my-client-id
  client_secret: my-client-secret
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
api:
  client_id: my-client-id
  client_secret: my-client-secret
  token_url: http://localhost:8089/connexion/oauth2/access_token
  base_url: http://localhost:8089/partenaire/offresdemploi/v2
rate_limit:
  enabled: true
  per_second: 1.5
  burst: 2
  daily_limit: 500
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t,
					"http://localhost:8089/connexion/oauth2/access_token",
					cfg.API.TokenURL,
				)
				assert.Equal(t,
					"http://localhost:8089/partenaire/offresdemploi/v2",
					cfg.API.BaseURL,
				)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 1.5, cfg.RateLimit.PerSecond)
				assert.Equal(t, 2, cfg.RateLimit.Burst)
				assert.Equal(t, int64(500), cfg.RateLimit.DailyLimit)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

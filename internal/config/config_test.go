package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("GRAPHQL_URL", "")
	t.Setenv("NEXT_PUBLIC_GRAPHQL_URL", "")
	t.Setenv("SEARCH_FALLBACK", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "http://localhost:4000/graphql", cfg.GraphQLURL)
	assert.Equal(t, 15*time.Second, cfg.GraphQLTimeout)
	assert.True(t, cfg.SearchFallback)
	assert.Contains(t, cfg.CORSAllowedOrigins, "http://localhost:3000")
}

func TestLoad_NextPublicAlias(t *testing.T) {
	t.Setenv("GRAPHQL_URL", "")
	t.Setenv("NEXT_PUBLIC_GRAPHQL_URL", "https://api.traveladdicts.test/graphql")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.traveladdicts.test/graphql", cfg.GraphQLURL)
}

func TestLoad_ExtraOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://traveladdicts.test, https://admin.traveladdicts.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.CORSAllowedOrigins, "https://traveladdicts.test")
	assert.Contains(t, cfg.CORSAllowedOrigins, "https://admin.traveladdicts.test")
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"GRAPHQL_TIMEOUT": "soon",
		"RATE_LIMIT_RPS":  "fast",
		"GRAPHQL_URL":     "ftp://example.test",
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionRejectsFallback(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GRAPHQL_URL", "https://api.traveladdicts.test/graphql")
	t.Setenv("JWT_SECRET", "prod-secret")

	t.Setenv("SEARCH_FALLBACK", "true")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SEARCH_FALLBACK", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SearchFallback)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GRAPHQL_URL", "https://api.traveladdicts.test/graphql")
	t.Setenv("SEARCH_FALLBACK", "")

	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestLoad_DevAllowsMissingJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret)
}

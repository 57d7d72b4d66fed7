package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultGraphQLURL       = "http://localhost:4000/graphql"
	defaultGraphQLTimeout   = "15s"
	defaultDatabaseURL      = "travel_addicts.db"
	defaultCacheTTL         = "5m"
	defaultSearchSessionTTL = "30m"
	defaultRateLimitRPS     = "20"
	defaultRateLimitBurst   = "40"
	defaultLogLevel         = "info"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	GraphQLURL     string
	GraphQLTimeout time.Duration

	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration

	// SearchFallback fills failed searches with canned results so the site stays populated.
	SearchFallback   bool
	SearchSessionTTL time.Duration
	FacetsFile       string
	// FacetsRemote asks the travel API for filter options instead of only the local table.
	FacetsRemote bool

	// JWTSecret is required in prod-like envs. Without it every admin session is
	// confirmed with the travel API before it is served.
	JWTSecret string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	CloudinaryURL string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	// NEXT_PUBLIC_GRAPHQL_URL is what the Next.js frontend uses; accept it so both share one .env.
	cfg.GraphQLURL = strings.TrimSpace(getEnv("GRAPHQL_URL", getEnv("NEXT_PUBLIC_GRAPHQL_URL", defaultGraphQLURL)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.FacetsFile = strings.TrimSpace(os.Getenv("FACETS_FILE"))
	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	cfg.CloudinaryURL = strings.TrimSpace(os.Getenv("CLOUDINARY_URL"))

	var err error
	cfg.GraphQLTimeout, err = parseDurationEnv("GRAPHQL_TIMEOUT", defaultGraphQLTimeout)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}
	cfg.SearchSessionTTL, err = parseDurationEnv("SEARCH_SESSION_TTL", defaultSearchSessionTTL)
	if err != nil {
		return nil, err
	}

	fallbackDefault := "true"
	if isProdLike(cfg.AppEnv) {
		fallbackDefault = "false"
	}
	cfg.SearchFallback = parseBoolEnv("SEARCH_FALLBACK", fallbackDefault)
	cfg.FacetsRemote = parseBoolEnv("FACETS_REMOTE", "false")

	cfg.RateLimitRPS, err = strconv.ParseFloat(strings.TrimSpace(getEnv("RATE_LIMIT_RPS", defaultRateLimitRPS)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimitBurst, err = strconv.Atoi(strings.TrimSpace(getEnv("RATE_LIMIT_BURST", defaultRateLimitBurst)))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg.CORSAllowedOrigins = []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	slog.Info("config loaded",
		"env", cfg.AppEnv,
		"graphql_url", cfg.GraphQLURL,
		"redis", cfg.RedisURL != "",
		"search_fallback", cfg.SearchFallback,
	)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.GraphQLURL == "" {
		return fmt.Errorf("GRAPHQL_URL must not be empty")
	}
	if !strings.HasPrefix(cfg.GraphQLURL, "http://") && !strings.HasPrefix(cfg.GraphQLURL, "https://") {
		return fmt.Errorf("GRAPHQL_URL must be an http(s) URL")
	}
	if cfg.GraphQLTimeout <= 0 {
		return fmt.Errorf("GRAPHQL_TIMEOUT must be > 0")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cfg.SearchSessionTTL <= 0 {
		return fmt.Errorf("SEARCH_SESSION_TTL must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.SearchFallback {
			return fmt.Errorf("in prod/release SEARCH_FALLBACK must be disabled")
		}
		if cfg.JWTSecret == "" {
			return fmt.Errorf("in prod/release JWT_SECRET must be set")
		}
		if strings.HasPrefix(cfg.GraphQLURL, "http://localhost") {
			return fmt.Errorf("in prod/release GRAPHQL_URL must not point at localhost")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

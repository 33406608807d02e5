// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubOrg            string
	GitHubToken          string
	TemplateRepo         string
	ConfigPath           string
	ListenAddr           string
	HTTPTimeout          time.Duration
	FetchConcurrency     int
	ListingTTL           time.Duration
	CacheMaxAge          time.Duration
	StaleWhileRevalidate time.Duration
	CacheDBPath          string
	CacheRetention       time.Duration
}

// HasGitHubToken reports whether an API token is configured. Without one the
// service still works but is limited to unauthenticated rate limits.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Variables from a .env file in the working directory are applied first when
// present; real environment variables take precedence.
//
// Optional variables with defaults: STARTERHUB_GITHUB_ORG (deepgram-starters),
// STARTERHUB_GITHUB_TOKEN (falls back to GH_PAT), STARTERHUB_TEMPLATE_REPO
// (project-template), STARTERHUB_CONFIG_PATH (deepgram.toml),
// STARTERHUB_LISTEN_ADDR (127.0.0.1:8080), STARTERHUB_HTTP_TIMEOUT (15s),
// STARTERHUB_FETCH_CONCURRENCY (8), STARTERHUB_LISTING_TTL (5m),
// STARTERHUB_CACHE_MAX_AGE (24h), STARTERHUB_STALE_WHILE_REVALIDATE (48h),
// STARTERHUB_CACHE_DB_PATH (empty: in-memory response cache),
// STARTERHUB_CACHE_RETENTION (168h, 0 disables pruning).
//
// STARTERHUB_CACHE_MAX_AGE only sets the client-facing s-maxage;
// STARTERHUB_CACHE_RETENTION governs how long persisted GitHub responses live.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubOrg:    stringOr("STARTERHUB_GITHUB_ORG", "deepgram-starters"),
		GitHubToken:  os.Getenv("STARTERHUB_GITHUB_TOKEN"),
		TemplateRepo: stringOr("STARTERHUB_TEMPLATE_REPO", "project-template"),
		ConfigPath:   stringOr("STARTERHUB_CONFIG_PATH", "deepgram.toml"),
		ListenAddr:   stringOr("STARTERHUB_LISTEN_ADDR", "127.0.0.1:8080"),
		CacheDBPath:  os.Getenv("STARTERHUB_CACHE_DB_PATH"),
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GH_PAT")
	}

	if cfg.GitHubOrg == "" {
		return nil, fmt.Errorf("STARTERHUB_GITHUB_ORG must not be empty")
	}
	if cfg.ConfigPath == "" {
		return nil, fmt.Errorf("STARTERHUB_CONFIG_PATH must not be empty")
	}

	var err error
	if cfg.HTTPTimeout, err = durationOr("STARTERHUB_HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.ListingTTL, err = durationOr("STARTERHUB_LISTING_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = durationOr("STARTERHUB_CACHE_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.StaleWhileRevalidate, err = durationOr("STARTERHUB_STALE_WHILE_REVALIDATE", 48*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheRetention, err = durationOr("STARTERHUB_CACHE_RETENTION", 7*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.FetchConcurrency = 8
	if v, ok := os.LookupEnv("STARTERHUB_FETCH_CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("STARTERHUB_FETCH_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.FetchConcurrency = n
	}

	return cfg, nil
}

// stringOr returns the value of key, or def when key is unset.
// An explicitly empty value is kept.
func stringOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %q", key, v)
	}
	return parsed, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIKey is used when WEATHER_API_KEY is not set. Upstream rejects it,
	// so every weather call will fail with a bad request.
	DefaultAPIKey          = "demo_key"
	DefaultBaseURL         = "http://api.weatherapi.com/v1"
	DefaultPort            = "8000"
	DefaultUpstreamTimeout = 10 * time.Second
)

// DefaultAllowedOrigins are the local development hosts of the web frontend.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Config is the process configuration, read once at startup and passed into
// constructors.
type Config struct {
	APIKey          string
	BaseURL         string
	Port            string
	AllowedOrigins  []string
	UpstreamTimeout time.Duration
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from the process environment, falling back to values in
// the given dotenv files (".env" when none are given). Missing files are skipped.
// Non-empty process environment values win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	fileVars := make(map[string]string)
	for _, f := range envFiles {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("reading env file %s: %w", f, err)
		}
		maps.Copy(fileVars, vars)
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

// FromLookup builds a Config from an arbitrary key lookup. Empty values count
// as unset.
func FromLookup(lookup LookupFunc) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		APIKey:          get("WEATHER_API_KEY", DefaultAPIKey),
		BaseURL:         strings.TrimRight(get("WEATHER_BASE_URL", DefaultBaseURL), "/"),
		Port:            get("PORT", DefaultPort),
		UpstreamTimeout: DefaultUpstreamTimeout,
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	if raw := get("UPSTREAM_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parsing UPSTREAM_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", d)
		}
		cfg.UpstreamTimeout = d
	}

	origins := slices.Clone(DefaultAllowedOrigins)
	if raw := get("ALLOWED_ORIGINS", ""); raw != "" {
		origins = splitList(raw)
	}
	if frontend := get("FRONTEND_ORIGIN", ""); frontend != "" && !slices.Contains(origins, frontend) {
		origins = append(origins, frontend)
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config loads multaguia configuration. Precedence, lowest to
// highest: hardcoded defaults, .multaguia.yaml in the working
// directory, environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	guiaerr "github.com/multaguia/multaguia/internal/errors"
)

// Config is the complete multaguia configuration.
type Config struct {
	// CatalogPath is the SQLite catalog database. Empty selects an
	// in-memory catalog (tests and dry runs).
	CatalogPath string `yaml:"catalog_path"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
	Spell  SpellConfig  `yaml:"spell"`
	Warmup WarmupConfig `yaml:"warmup"`
}

// SearchConfig tunes the query pipeline.
type SearchConfig struct {
	// DefaultLimit is the page size when the caller does not set one.
	DefaultLimit int `yaml:"default_limit"`
	// MaxResults caps the page size.
	MaxResults int `yaml:"max_results"`
	// QueryTimeoutSeconds bounds every backing-store call.
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds"`
}

// CacheConfig tunes the response cache.
type CacheConfig struct {
	TTLSeconds             int `yaml:"ttl_seconds"`
	MaxMemoryMB            int `yaml:"max_memory_mb"`
	CleanupIntervalSeconds int `yaml:"cleanup_interval_seconds"`
}

// SpellConfig tunes the suggestion engine.
type SpellConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	LevenshteinMaxDist  int     `yaml:"levenshtein_max_distance"`
	LevenshteinScanCap  int     `yaml:"levenshtein_scan_cap"`
}

// WarmupConfig lists the startup warm-up queries.
type WarmupConfig struct {
	Queries []string `yaml:"queries"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Search: SearchConfig{
			DefaultLimit:        10,
			MaxResults:          20,
			QueryTimeoutSeconds: 5,
		},
		Cache: CacheConfig{
			TTLSeconds:             300,
			MaxMemoryMB:            100,
			CleanupIntervalSeconds: 1800,
		},
		Spell: SpellConfig{
			SimilarityThreshold: 0.6,
			LevenshteinMaxDist:  2,
			LevenshteinScanCap:  50,
		},
	}
}

// Load builds the effective configuration for the given directory.
func Load(dir string) (*Config, error) {
	cfg := New()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile merges .multaguia.yaml or .multaguia.yml when present.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{".multaguia.yaml", ".multaguia.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return guiaerr.Wrap(guiaerr.ErrCodeConfigNotFound, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
				fmt.Sprintf("failed to parse %s: %v", path, err), err)
		}
		return nil
	}
	// No config file is fine - use defaults
	return nil
}

// applyEnvOverrides applies the enumerated environment variables, the
// single external tuning surface of the service.
func (c *Config) applyEnvOverrides() {
	if v, ok := envFloat("FUZZY_SIMILARITY_THRESHOLD"); ok {
		c.Spell.SimilarityThreshold = v
	}
	if v, ok := envInt("MAX_RESULTS"); ok {
		c.Search.MaxResults = v
	}
	if v, ok := envInt("CACHE_TTL_SECONDS"); ok {
		c.Cache.TTLSeconds = v
	}
	if v, ok := envInt("CACHE_MAX_MEMORY_MB"); ok {
		c.Cache.MaxMemoryMB = v
	}
	if v, ok := envInt("CACHE_CLEANUP_INTERVAL_SECONDS"); ok {
		c.Cache.CleanupIntervalSeconds = v
	}
	if v, ok := envInt("LEVENSHTEIN_MAX_DISTANCE"); ok {
		c.Spell.LevenshteinMaxDist = v
	}
	if v, ok := envInt("LEVENSHTEIN_SCAN_CAP"); ok {
		c.Spell.LevenshteinScanCap = v
	}
	if raw := os.Getenv("WARMUP_QUERIES"); raw != "" {
		var queries []string
		for _, q := range strings.Split(raw, ",") {
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
		c.Warmup.Queries = queries
	}
}

// Validate rejects configurations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Spell.SimilarityThreshold <= 0 || c.Spell.SimilarityThreshold > 1 {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("similarity_threshold must be in (0,1], got %v", c.Spell.SimilarityThreshold), nil)
	}
	if c.Search.MaxResults < 1 {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("max_results must be >= 1, got %d", c.Search.MaxResults), nil)
	}
	if c.Search.DefaultLimit < 1 || c.Search.DefaultLimit > c.Search.MaxResults {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("default_limit must be in [1,%d], got %d", c.Search.MaxResults, c.Search.DefaultLimit), nil)
	}
	if c.Cache.TTLSeconds < 1 {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("cache ttl_seconds must be >= 1, got %d", c.Cache.TTLSeconds), nil)
	}
	if c.Cache.MaxMemoryMB < 1 {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("cache max_memory_mb must be >= 1, got %d", c.Cache.MaxMemoryMB), nil)
	}
	if c.Spell.LevenshteinMaxDist < 1 {
		return guiaerr.New(guiaerr.ErrCodeConfigInvalid,
			fmt.Sprintf("levenshtein_max_distance must be >= 1, got %d", c.Spell.LevenshteinMaxDist), nil)
	}
	return nil
}

// QueryTimeout returns the store timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Search.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns the default cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CacheCleanupInterval returns the sweep period as a duration.
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.Cache.CleanupIntervalSeconds) * time.Second
}

// CacheMaxMemoryBytes returns the cache budget in bytes.
func (c *Config) CacheMaxMemoryBytes() int64 {
	return int64(c.Cache.MaxMemoryMB) << 20
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(name string) (float64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

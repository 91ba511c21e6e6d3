package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guiaerr "github.com/multaguia/multaguia/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 100, cfg.Cache.MaxMemoryMB)
	assert.Equal(t, 0.6, cfg.Spell.SimilarityThreshold)
	assert.Equal(t, 2, cfg.Spell.LevenshteinMaxDist)
	assert.Empty(t, cfg.Warmup.Queries)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
catalog_path: /var/lib/multaguia/catalog.db
log_level: debug
search:
  max_results: 15
cache:
  ttl_seconds: 60
warmup:
  queries:
    - estacionar
    - "5169-1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".multaguia.yaml"), []byte(yamlContent), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/multaguia/catalog.db", cfg.CatalogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15, cfg.Search.MaxResults)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, []string{"estacionar", "5169-1"}, cfg.Warmup.Queries)

	// Untouched sections keep their defaults.
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Cache.MaxMemoryMB)
}

func TestLoad_YMLExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".multaguia.yml"),
		[]byte("log_level: warn\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".multaguia.yaml"),
		[]byte("search: [not a mapping"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, guiaerr.ErrCodeConfigInvalid, guiaerr.GetCode(err))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FUZZY_SIMILARITY_THRESHOLD", "0.75")
	t.Setenv("MAX_RESULTS", "12")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("CACHE_MAX_MEMORY_MB", "50")
	t.Setenv("CACHE_CLEANUP_INTERVAL_SECONDS", "600")
	t.Setenv("LEVENSHTEIN_MAX_DISTANCE", "3")
	t.Setenv("LEVENSHTEIN_SCAN_CAP", "25")
	t.Setenv("WARMUP_QUERIES", "estacionar, velocidade ,5169-1")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Spell.SimilarityThreshold)
	assert.Equal(t, 12, cfg.Search.MaxResults)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.Equal(t, 50, cfg.Cache.MaxMemoryMB)
	assert.Equal(t, 600, cfg.Cache.CleanupIntervalSeconds)
	assert.Equal(t, 3, cfg.Spell.LevenshteinMaxDist)
	assert.Equal(t, 25, cfg.Spell.LevenshteinScanCap)
	assert.Equal(t, []string{"estacionar", "velocidade", "5169-1"}, cfg.Warmup.Queries)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".multaguia.yaml"),
		[]byte("cache:\n  ttl_seconds: 60\n"), 0o644))
	t.Setenv("CACHE_TTL_SECONDS", "90")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Cache.TTLSeconds)
}

func TestLoad_UnparseableEnvIgnored(t *testing.T) {
	t.Setenv("MAX_RESULTS", "muitos")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Search.MaxResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold zero", func(c *Config) { c.Spell.SimilarityThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.Spell.SimilarityThreshold = 1.5 }},
		{"max_results zero", func(c *Config) { c.Search.MaxResults = 0 }},
		{"default_limit zero", func(c *Config) { c.Search.DefaultLimit = 0 }},
		{"default_limit above max", func(c *Config) { c.Search.DefaultLimit = 25 }},
		{"ttl zero", func(c *Config) { c.Cache.TTLSeconds = 0 }},
		{"memory zero", func(c *Config) { c.Cache.MaxMemoryMB = 0 }},
		{"distance zero", func(c *Config) { c.Spell.LevenshteinMaxDist = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, guiaerr.ErrCodeConfigInvalid, guiaerr.GetCode(err))
		})
	}

	assert.NoError(t, New().Validate())
}

func TestDurationHelpers(t *testing.T) {
	cfg := New()

	assert.Equal(t, 5*time.Second, cfg.QueryTimeout())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 30*time.Minute, cfg.CacheCleanupInterval())
	assert.Equal(t, int64(100<<20), cfg.CacheMaxMemoryBytes())
}

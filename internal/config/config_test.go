package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scent/internal/config"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Preprocess.LargestComponent)
	assert.Equal(t, []string{"RPS", "RPL", "MT"}, cfg.Preprocess.ArtifactPrefixes)
	budget, err := cfg.Compute.Budget()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<30), budget)
	assert.Equal(t, -1, cfg.Input.ScoreColumn)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := writeYAML(t, `
input:
  expression: cells.csv
  network: ppi.tsv
  delimiter: comma
compute:
  batch_size: 256
  memory_limit: 512MiB
  normalize: true
  progress_interval: 2s
preprocess:
  artifact_prefixes: []
output:
  format: jsonl
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cells.csv", cfg.Input.Expression)
	assert.Equal(t, 256, cfg.Compute.BatchSize)
	assert.True(t, cfg.Compute.Normalize)
	assert.Equal(t, 2*time.Second, cfg.Compute.ProgressInterval)
	assert.Empty(t, cfg.Preprocess.ArtifactPrefixes)
	assert.True(t, cfg.Preprocess.LargestComponent, "untouched default")
	assert.Equal(t, 0.3, cfg.Compute.Overhead, "untouched default")

	r, err := cfg.Input.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ',', r)
	limit, err := cfg.Compute.Limit()
	require.NoError(t, err)
	assert.Equal(t, uint64(512<<20), limit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCENT_BATCH_SIZE", "64")
	t.Setenv("SCENT_WORKERS", "not-a-number")
	t.Setenv("SCENT_LOG_LEVEL", "debug")
	t.Setenv("SCENT_NORMALIZE", "true")
	t.Setenv("SCENT_GRAPH_URI", "bolt://localhost:7687")

	cfg, err := config.Load(writeYAML(t, "compute:\n  batch_size: 8\n  workers: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Compute.BatchSize)
	assert.Equal(t, 3, cfg.Compute.Workers, "unparsable env keeps the file value")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Compute.Normalize)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI)
	assert.Equal(t, 3, cfg.Compute.EffectiveWorkers())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeYAML(t, "compute: [oops"))
	require.Error(t, err)

	_, err = config.Load(writeYAML(t, "compute:\n  overhead: 1.5\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"workers":    func(c *config.Config) { c.Compute.Workers = -1 },
		"batch":      func(c *config.Config) { c.Compute.BatchSize = -4 },
		"start":      func(c *config.Config) { c.Compute.StartBatch = -1 },
		"overhead":   func(c *config.Config) { c.Compute.Overhead = 1 },
		"interval":   func(c *config.Config) { c.Compute.ProgressInterval = -time.Second },
		"budget":     func(c *config.Config) { c.Compute.MemoryBudget = "lots" },
		"limit":      func(c *config.Config) { c.Compute.MemoryLimit = "12 parsecs" },
		"format":     func(c *config.Config) { c.Output.Format = "xlsx" },
		"log format": func(c *config.Config) { c.Logging.Format = "xml" },
		"delimiter":  func(c *config.Config) { c.Input.Delimiter = "pipe" },
		"store kind": func(c *config.Config) { c.Store.Kind = "postgres" },
		"store path": func(c *config.Config) { c.Store.Kind = "sqlite" },
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig, name)
	}
}

// SPDX-License-Identifier: MIT

// Package config loads scent's run configuration: a YAML file over built-in
// defaults, then SCENT_* environment overrides (a .env file in the working
// directory is loaded first and never overrides variables already set).
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/scent/output"
)

// ErrInvalidConfig indicates a configuration value Validate rejects.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config aggregates every section.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Compute    ComputeConfig    `yaml:"compute"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Graph      GraphConfig      `yaml:"graph"`
	Store      StoreConfig      `yaml:"store"`
}

// InputConfig locates and describes the input files.
type InputConfig struct {
	Expression    string  `yaml:"expression"`
	Network       string  `yaml:"network"` // empty: read edges from the graph database
	Delimiter     string  `yaml:"delimiter"`
	GenesAsRows   bool    `yaml:"genes_as_rows"`
	NetworkHeader bool    `yaml:"network_header"`
	ScoreColumn   int     `yaml:"score_column"` // -1: no confidence filter
	MinScore      float64 `yaml:"min_score"`
}

// PreprocessConfig controls harmonization.
type PreprocessConfig struct {
	ArtifactPrefixes []string `yaml:"artifact_prefixes"`
	LargestComponent bool     `yaml:"largest_component"`
}

// ComputeConfig controls the scorer and its backend.
type ComputeConfig struct {
	Workers          int           `yaml:"workers"`    // 0: one per CPU
	BatchSize        int           `yaml:"batch_size"` // 0: derive from MemoryBudget
	StartBatch       int           `yaml:"start_batch"`
	MemoryBudget     string        `yaml:"memory_budget"` // e.g. "2GiB"
	MemoryLimit      string        `yaml:"memory_limit"`  // backend cap, "" or "0" for none
	Overhead         float64       `yaml:"overhead"`
	Prefetch         bool          `yaml:"prefetch"`
	Normalize        bool          `yaml:"normalize"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// OutputConfig controls where scores go.
type OutputConfig struct {
	Path    string `yaml:"path"` // "-" or empty: stdout
	Format  string `yaml:"format"`
	Summary bool   `yaml:"summary"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

// GraphConfig describes the optional graph database edge source.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
	Query          string `yaml:"query"`
}

// StoreConfig selects run persistence. An empty Kind disables it.
type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

const (
	defaultDelimiter        = "tab"
	defaultMemoryBudget     = "1GiB"
	defaultOverhead         = 0.3
	defaultProgressInterval = 5 * time.Second
	defaultFormat           = "tsv"
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{Delimiter: defaultDelimiter, ScoreColumn: -1},
		Preprocess: PreprocessConfig{
			ArtifactPrefixes: []string{"RPS", "RPL", "MT"},
			LargestComponent: true,
		},
		Compute: ComputeConfig{
			MemoryBudget:     defaultMemoryBudget,
			Overhead:         defaultOverhead,
			ProgressInterval: defaultProgressInterval,
		},
		Output:  OutputConfig{Path: "-", Format: defaultFormat, Summary: true},
		Logging: LoggingConfig{Level: defaultLoggingLevel, Format: defaultLoggingFormat},
		Graph:   GraphConfig{MaxConnections: defaultGraphMaxSessions},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}
	_ = godotenv.Load()
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Input.Expression = valueOrDefault("SCENT_EXPRESSION", cfg.Input.Expression)
	cfg.Input.Network = valueOrDefault("SCENT_NETWORK", cfg.Input.Network)

	cfg.Compute.Workers = parseIntWithDefault("SCENT_WORKERS", cfg.Compute.Workers)
	cfg.Compute.BatchSize = parseIntWithDefault("SCENT_BATCH_SIZE", cfg.Compute.BatchSize)
	cfg.Compute.MemoryBudget = valueOrDefault("SCENT_MEMORY_BUDGET", cfg.Compute.MemoryBudget)
	cfg.Compute.MemoryLimit = valueOrDefault("SCENT_MEMORY_LIMIT", cfg.Compute.MemoryLimit)
	cfg.Compute.Normalize = parseBoolWithDefault("SCENT_NORMALIZE", cfg.Compute.Normalize)

	cfg.Logging.Level = valueOrDefault("SCENT_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("SCENT_LOG_FORMAT", cfg.Logging.Format)

	cfg.Graph.URI = valueOrDefault("SCENT_GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("SCENT_GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("SCENT_GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("SCENT_GRAPH_PASSWORD", cfg.Graph.Password)

	cfg.Store.Kind = valueOrDefault("SCENT_STORE", cfg.Store.Kind)
	cfg.Store.Path = valueOrDefault("SCENT_STORE_PATH", cfg.Store.Path)
}

// Validate reports the first invalid value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if _, err := c.Input.DelimiterRune(); err != nil {
		return err
	}
	switch {
	case c.Compute.Workers < 0:
		return invalid("compute.workers=%d must be ≥ 0", c.Compute.Workers)
	case c.Compute.BatchSize < 0:
		return invalid("compute.batch_size=%d must be ≥ 0", c.Compute.BatchSize)
	case c.Compute.StartBatch < 0:
		return invalid("compute.start_batch=%d must be ≥ 0", c.Compute.StartBatch)
	case c.Compute.Overhead < 0 || c.Compute.Overhead >= 1:
		return invalid("compute.overhead=%g must be in [0,1)", c.Compute.Overhead)
	case c.Compute.ProgressInterval < 0:
		return invalid("compute.progress_interval=%s must be ≥ 0", c.Compute.ProgressInterval)
	}
	if _, err := c.Compute.Budget(); err != nil {
		return err
	}
	if _, err := c.Compute.Limit(); err != nil {
		return err
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return invalid("logging.format=%q must be text or json", c.Logging.Format)
	}
	switch c.Store.Kind {
	case "", "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return invalid("store.path is required for sqlite")
		}
	default:
		return invalid("store.kind=%q must be memory or sqlite", c.Store.Kind)
	}

	return nil
}

// DelimiterRune maps the configured delimiter name to a rune.
func (i InputConfig) DelimiterRune() (rune, error) {
	switch strings.ToLower(i.Delimiter) {
	case "", "tab", `\t`, "\t":
		return '\t', nil
	case "comma", ",":
		return ',', nil
	case "semicolon", ";":
		return ';', nil
	default:
		return 0, invalid("input.delimiter=%q", i.Delimiter)
	}
}

// Budget parses MemoryBudget; empty means 0 (no automatic sizing).
func (c ComputeConfig) Budget() (uint64, error) { return parseBytes("compute.memory_budget", c.MemoryBudget) }

// Limit parses MemoryLimit; empty means 0 (unlimited).
func (c ComputeConfig) Limit() (uint64, error) { return parseBytes("compute.memory_limit", c.MemoryLimit) }

// EffectiveWorkers resolves Workers=0 to the CPU count.
func (c ComputeConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.NumCPU()
}

func parseBytes(field, s string) (uint64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, invalid("%s=%q: %v", field, s, err)
	}

	return n, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func valueOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return fallback
}

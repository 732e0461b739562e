// Package config provides configuration management for the normalizer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied before any file, env or flag override.
const (
	DefaultInputPath  = "data/malawi pharmacy data - malawi healthsites.csv"
	DefaultOutputName = "healthsites_processed.json"
	DefaultSampleName = "healthsites_llm.json"
	DefaultSampleSize = 50
	DefaultTable      = "facilities"

	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "HEALTHSITES_"
)

// Configuration validation errors.
var (
	ErrMissingInputPath   = errors.New("input.path is required")
	ErrInvalidInputFormat = errors.New("input.format must be one of: auto, csv, xlsx")
	ErrInvalidEncoding    = errors.New("input.encoding must be one of: utf-8, iso-8859-1, windows-1252")
	ErrInvalidSampleSize  = errors.New("output.sample_size must be non-negative")
	ErrSameOutputPaths    = errors.New("output.path and output.sample_path must differ")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidTableName   = errors.New("database.table must be a plain SQL identifier")
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config represents the complete normalizer configuration.
type Config struct {
	Normalizer NormalizerConfig `yaml:"normalizer"`
}

// NormalizerConfig contains normalizer settings.
type NormalizerConfig struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Database DatabaseConfig `yaml:"database"`
}

// InputConfig describes the source table.
type InputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`
	Encoding string `yaml:"encoding"`
	Sheet    string `yaml:"sheet"`
}

// OutputConfig defines where the two JSON documents go.
// Empty paths are resolved beside the input file.
type OutputConfig struct {
	Path       string `yaml:"path"`
	SamplePath string `yaml:"sample_path"`
	SampleSize int    `yaml:"sample_size"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// DatabaseConfig enables the optional Postgres sink.
type DatabaseConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// Enabled reports whether a DSN was configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// Default returns the configuration used when nothing else is supplied.
func Default() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			Input: InputConfig{
				Path:     DefaultInputPath,
				Format:   FormatAuto,
				Encoding: "utf-8",
			},
			Output: OutputConfig{
				SampleSize: DefaultSampleSize,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
			Database: DatabaseConfig{
				Table: DefaultTable,
			},
		},
	}
}

// LoadConfig loads configuration from YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFiles reads .env style files into the process environment.
// Missing files are skipped; variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}

	return nil
}

// ApplyEnv overrides settings from HEALTHSITES_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	n := &c.Normalizer

	strs := map[string]*string{
		"INPUT":          &n.Input.Path,
		"INPUT_FORMAT":   &n.Input.Format,
		"INPUT_ENCODING": &n.Input.Encoding,
		"INPUT_SHEET":    &n.Input.Sheet,
		"OUTPUT":         &n.Output.Path,
		"SAMPLE_OUTPUT":  &n.Output.SamplePath,
		"LOG_LEVEL":      &n.Logging.Level,
		"LOG_FORMAT":     &n.Logging.Format,
		"METRICS_FILE":   &n.Metrics.Textfile,
		"DATABASE_DSN":   &n.Database.DSN,
		"DATABASE_TABLE": &n.Database.Table,
	}

	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "SAMPLE_SIZE"); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sSAMPLE_SIZE=%q", ErrInvalidSampleSize, EnvPrefix, v)
		}

		n.Output.SampleSize = size
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	n := &c.Normalizer

	if n.Input.Path == "" {
		return ErrMissingInputPath
	}

	switch strings.ToLower(n.Input.Format) {
	case FormatAuto, FormatCSV, FormatXLSX:
	default:
		return ErrInvalidInputFormat
	}

	if !validEncoding(n.Input.Encoding) {
		return ErrInvalidEncoding
	}

	if n.Output.SampleSize < 0 {
		return ErrInvalidSampleSize
	}

	if filepath.Clean(c.OutputPath()) == filepath.Clean(c.SamplePath()) {
		return ErrSameOutputPaths
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[n.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if n.Logging.Format != "text" && n.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if n.Database.Enabled() && !tableNamePattern.MatchString(n.Database.Table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, n.Database.Table)
	}

	return nil
}

func validEncoding(enc string) bool {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8", "iso-8859-1", "latin1", "windows-1252", "cp1252":
		return true
	}

	return false
}

// InputFormat resolves "auto" from the input file extension.
func (c *Config) InputFormat() string {
	f := strings.ToLower(c.Normalizer.Input.Format)
	if f != "" && f != FormatAuto {
		return f
	}

	if strings.EqualFold(filepath.Ext(c.Normalizer.Input.Path), ".xlsx") {
		return FormatXLSX
	}

	return FormatCSV
}

// OutputPath returns the full output path, defaulting to a file beside the input.
func (c *Config) OutputPath() string {
	if c.Normalizer.Output.Path != "" {
		return c.Normalizer.Output.Path
	}

	return filepath.Join(filepath.Dir(c.Normalizer.Input.Path), DefaultOutputName)
}

// SamplePath returns the sample output path, defaulting to a file beside the input.
func (c *Config) SamplePath() string {
	if c.Normalizer.Output.SamplePath != "" {
		return c.Normalizer.Output.SamplePath
	}

	return filepath.Join(filepath.Dir(c.Normalizer.Input.Path), DefaultSampleName)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s (%s), Output: %s, Sample: %s (%d)}",
		c.Normalizer.Input.Path,
		c.InputFormat(),
		c.OutputPath(),
		c.SamplePath(),
		c.Normalizer.Output.SampleSize,
	)
}

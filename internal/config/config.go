package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Normalizer drivers.
const (
	DriverBuiltin = "builtin"
	DriverHTTP    = "http"
)

// Config holds the vetdex service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Database   DatabaseConfig   `yaml:"database"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Search     SearchConfig     `yaml:"search"`
	Keywords   KeywordsConfig   `yaml:"keywords"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Empty keys disable auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int     `yaml:"port"`
	ReadTimeoutSec  int     `yaml:"read_timeout_sec"`
	WriteTimeoutSec int     `yaml:"write_timeout_sec"`
	ShutdownSec     int     `yaml:"shutdown_timeout_sec"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"` // 0 = unlimited
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// CatalogConfig describes where drug records are loaded from.
type CatalogConfig struct {
	Source    string `yaml:"source"` // file (default), redis
	Path      string `yaml:"path"`   // .csv or .xlsx
	Separator string `yaml:"separator"`
	Encoding  string `yaml:"encoding"` // utf-8 (default), windows-1251
	Sheet     string `yaml:"sheet"`
}

// DatabaseConfig holds Redis/Valkey connection settings for the catalog snapshot.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// NormalizerConfig selects the linguistic normalizer.
type NormalizerConfig struct {
	Driver      string   `yaml:"driver"` // builtin (default), http
	URL         string   `yaml:"url"`
	TimeoutSec  int      `yaml:"timeout_sec"`
	FunctionPOS []string `yaml:"function_pos"`
	Cache       bool     `yaml:"cache"` // кэш разбора в Redis
}

// SearchConfig holds ranking parameters.
type SearchConfig struct {
	Threshold   float64 `yaml:"threshold"`
	ExactCutoff float64 `yaml:"exact_cutoff"`
	TopN        int     `yaml:"top_n"`
}

// KeywordsConfig overrides the built-in vocabularies. Empty lists keep the defaults.
type KeywordsConfig struct {
	Animals                 map[string][]string `yaml:"animals"`
	Categories              map[string][]string `yaml:"categories"`
	ContraindicationMarkers []string            `yaml:"contraindication_markers"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst <= 0 {
		c.HTTP.RateLimitBurst = int(c.HTTP.RateLimitRPS) + 1
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = SourceFile
	}
	if c.Catalog.Separator == "" {
		c.Catalog.Separator = ","
	}
	if c.Catalog.Encoding == "" {
		c.Catalog.Encoding = "utf-8"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "vetdex:"
	}
	if c.Normalizer.Driver == "" {
		c.Normalizer.Driver = DriverBuiltin
	}
	if c.Normalizer.TimeoutSec <= 0 {
		c.Normalizer.TimeoutSec = 5
	}
	if c.Search.Threshold <= 0 {
		c.Search.Threshold = 0.75
	}
	if c.Search.ExactCutoff <= 0 {
		c.Search.ExactCutoff = 0.99
	}
	if c.Search.TopN <= 0 {
		c.Search.TopN = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("http.rate_limit_rps must not be negative, got %v", c.HTTP.RateLimitRPS)
	}
	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", SourceFile)
		}
	case SourceRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for source %q", SourceRedis)
		}
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", SourceFile, SourceRedis, c.Catalog.Source)
	}
	if len([]rune(c.Catalog.Separator)) != 1 {
		return fmt.Errorf("catalog.separator must be a single character, got %q", c.Catalog.Separator)
	}
	switch c.Normalizer.Driver {
	case DriverBuiltin:
	case DriverHTTP:
		if c.Normalizer.URL == "" {
			return fmt.Errorf("normalizer.url is required for driver %q", DriverHTTP)
		}
	default:
		return fmt.Errorf("normalizer.driver must be %q or %q, got %q", DriverBuiltin, DriverHTTP, c.Normalizer.Driver)
	}
	if c.Normalizer.Cache && len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required when normalizer.cache is enabled")
	}
	if c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be in (0, 1], got %v", c.Search.Threshold)
	}
	if c.Search.ExactCutoff > 1 {
		return fmt.Errorf("search.exact_cutoff must be in (0, 1], got %v", c.Search.ExactCutoff)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

package vetdex

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Normalizer tokenizes text and tags tokens with lemmas and POS tags.
// The built-in rule tokenizer is used when none is given.
type Normalizer interface {
	Analyze(ctx context.Context, text string) ([]Token, error)
}

type clientConfig struct {
	records []Drug

	tabularPath string
	separator   rune
	encoding    string
	sheet       string

	addrs     []string
	password  string
	keyPrefix string

	normalizer  Normalizer
	threshold   float64
	exactCutoff float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func (c *clientConfig) sources() int {
	n := 0
	if c.records != nil {
		n++
	}
	if c.tabularPath != "" {
		n++
	}
	if len(c.addrs) > 0 {
		n++
	}
	return n
}

// WithRecords uses an in-memory knowledge base.
func WithRecords(records []Drug) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = records
	})
}

// WithTabularFile loads the knowledge base from a .csv or .xlsx file.
func WithTabularFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tabularPath = path
	})
}

// WithCSVFormat sets the CSV separator and encoding ("utf-8" or "windows-1251").
// Defaults: ',' and utf-8.
func WithCSVFormat(separator rune, encoding string) Option {
	return optionFunc(func(c *clientConfig) {
		c.separator = separator
		c.encoding = encoding
	})
}

// WithSheet selects the XLSX sheet. Defaults to the first one.
func WithSheet(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sheet = name
	})
}

// WithRedis loads the knowledge base snapshot from a Redis or Valkey instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis key prefix of the snapshot. Default: "vetdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithNormalizer replaces the built-in rule tokenizer.
func WithNormalizer(n Normalizer) Option {
	return optionFunc(func(c *clientConfig) {
		c.normalizer = n
	})
}

// WithThreshold sets the minimal similarity a drug needs to match. Default: 0.75.
func WithThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithExactCutoff sets the score at which near-exact matches suppress
// weaker ones. Default: 0.99.
func WithExactCutoff(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.exactCutoff = t
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// Package morphology is an HTTP client for an external morphological analyzer.
//
// The service contract:
//
//	POST /analyze  {"text": "..."} -> {"tokens": [{"text", "lemma", "pos"}]}
//	GET  /health   -> 200
package morphology

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain/query"
	"github.com/kailas-cloud/vetdex/internal/metrics"
)

const driverName = "http"

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Breaker trips after MinRequests with a failure ratio of at least FailureRatio.
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// Client calls the morphology service. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]query.Token]
	logger  *zap.Logger
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Tokens []struct {
		Text  string `json:"text"`
		Lemma string `json:"lemma"`
		POS   string `json:"pos"`
	} `json:"tokens"`
}

// New creates a morphology client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("morphology base url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}
	if cfg.FailureRatio <= 0 {
		cfg.FailureRatio = 0.5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{baseURL: base, http: httpClient, logger: logger}
	c.breaker = gobreaker.NewCircuitBreaker[[]query.Token](gobreaker.Settings{
		Name:        "morphology",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// caller cancellations say nothing about the service
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return c, nil
}

// Analyze sends text to the service and returns its tokens.
func (c *Client) Analyze(ctx context.Context, text string) ([]query.Token, error) {
	start := time.Now()
	tokens, err := c.breaker.Execute(func() ([]query.Token, error) {
		return c.analyze(ctx, text)
	})
	if err != nil {
		metrics.NormalizerRequestsTotal.WithLabelValues(driverName, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("morphology circuit open: %w", err)
		}
		return nil, err
	}
	metrics.NormalizerRequestsTotal.WithLabelValues(driverName, "success").Inc()
	metrics.NormalizerRequestDuration.WithLabelValues(driverName).Observe(time.Since(start).Seconds())
	return tokens, nil
}

func (c *Client) analyze(ctx context.Context, text string) ([]query.Token, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analyze: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	out := make([]query.Token, 0, len(parsed.Tokens))
	for _, t := range parsed.Tokens {
		out = append(out, query.Token{Text: t.Text, Lemma: t.Lemma, POS: strings.ToUpper(t.POS)})
	}
	return out, nil
}

// Ping checks that the service answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: status %d", resp.StatusCode)
	}
	return nil
}

// WaitForReady polls Ping until the service responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for morphology service: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

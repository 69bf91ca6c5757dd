// Package catalog reads the published content index (hash plus keywords per
// entry) from the resource server
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "verdian/internal/platform/errors"
	"verdian/internal/platform/logger"
	"verdian/internal/services/evaluator/domain"

	"github.com/cenkalti/backoff/v4"
)

// EntriesPath is the index endpoint relative to the base URL
const EntriesPath = "/api/content-hashes-keywords"

const maxBodyBytes = 16 << 20

// Config configures the client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    uint64
	HTTPClient *http.Client
}

// Client fetches catalog entries over HTTP
type Client struct {
	url     string
	retries uint64
	hc      *http.Client
	newBO   func() backoff.BackOff
}

// New builds a client; zero values fall back to a 10s timeout and 2 retries
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		url:     strings.TrimRight(cfg.BaseURL, "/") + EntriesPath,
		retries: cfg.Retries,
		hc:      hc,
		newBO: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = cfg.Timeout
			return b
		},
	}
}

type wireEntry struct {
	Hash     string   `json:"hash"`
	Keywords []string `json:"keywords"`
}

// Entries returns the current index. Transport errors and 5xx answers are
// retried; everything else fails fast. Failures are BadGateway errors
func (c *Client) Entries(ctx context.Context) ([]domain.CatalogEntry, error) {
	log := logger.C(ctx).With().Str("component", "catalog").Logger()

	var out []domain.CatalogEntry
	attempt := 0
	op := func() error {
		attempt++
		entries, err := c.fetch(ctx)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("catalog fetch failed")
			return err
		}
		out = entries
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBO(), c.retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeBadGateway, "catalog unavailable")
	}
	log.Debug().Int("entries", len(out)).Msg("catalog fetched")
	return out, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("catalog status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("catalog status %d", resp.StatusCode))
	}

	var wire []wireEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&wire); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode catalog: %w", err))
	}
	entries := make([]domain.CatalogEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, domain.CatalogEntry{Hash: w.Hash, Keywords: w.Keywords})
	}
	return entries, nil
}

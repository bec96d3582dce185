// Package ledgerclient queries the ledger service for unconsolidated entries.
package ledgerclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
)

const entriesPath = "/api/v1/entries"

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	// Consecutive failures that open the breaker.
	FailureThreshold uint32
	// How long the breaker stays open before letting a trial call through.
	OpenTimeout time.Duration
	// Entries requested per page. Zero leaves the size to the ledger.
	PageSize int
}

// Client implements the period query over HTTP. Calls go through a circuit
// breaker and are retried with exponential backoff while it stays closed.
type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	cfg     Config
	logger  zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	logger = logger.With().Str("component", "ledger_client").Logger()

	settings := gobreaker.Settings{
		Name:    "ledger",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
		},
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		cfg:     cfg,
		logger:  logger,
	}
}

// ListUnconsolidated returns entries of the period whose consolidated flag is
// still false, optionally restricted to one merchant. It follows the page
// cursor until the ledger reports no further page, so the result is the
// whole period.
func (c *Client) ListUnconsolidated(ctx context.Context, period domain.Period, merchant string) ([]*domain.LedgerEntry, error) {
	query := url.Values{}
	query.Set("startDate", period.Start.String())
	query.Set("endDate", period.End.String())
	query.Set("consolidated", "false")
	if merchant != "" {
		query.Set("merchant", merchant)
	}
	if c.cfg.PageSize > 0 {
		query.Set("limit", strconv.Itoa(c.cfg.PageSize))
	}

	var (
		entries []*domain.LedgerEntry
		cursor  string
		pages   int
	)
	for {
		if cursor != "" {
			query.Set("afterId", cursor)
		}
		body, err := c.fetchPage(ctx, c.cfg.BaseURL+entriesPath+"?"+query.Encode())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
		}
		pages++

		for _, e := range body.Entries {
			entry, err := e.ToDomain()
			if err != nil {
				return nil, fmt.Errorf("entry %s: %w", e.ID, err)
			}
			entries = append(entries, entry)
		}

		if body.NextAfterID == "" {
			break
		}
		if body.NextAfterID == cursor || len(body.Entries) == 0 {
			return nil, fmt.Errorf("%w: page cursor %q did not advance", domain.ErrLedgerUnavailable, body.NextAfterID)
		}
		cursor = body.NextAfterID
	}

	c.logger.Debug().Int("pages", pages).Int("entries", len(entries)).Msg("ledger period read")
	return entries, nil
}

// fetchPage reads one page through the breaker, retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, endpoint string) (*dto.ListEntriesResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0

	var body *dto.ListEntriesResponse
	err := backoff.Retry(func() error {
		res, err := c.breaker.Execute(func() (any, error) {
			return c.fetch(ctx, endpoint)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(err)
			}
			var perm *permanentError
			if errors.As(err, &perm) {
				return backoff.Permanent(err)
			}
			c.logger.Warn().Err(err).Msg("ledger query failed")
			return err
		}
		body = res.(*dto.ListEntriesResponse)
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxAttempts-1)), ctx))

	return body, err
}

// permanentError marks 4xx responses; retrying them cannot help.
type permanentError struct {
	status int
	body   string
}

func (e *permanentError) Error() string {
	return fmt.Sprintf("ledger returned %d: %s", e.status, e.body)
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*dto.ListEntriesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &permanentError{status: resp.StatusCode, body: string(msg)}
		}
		return nil, fmt.Errorf("ledger returned %d: %s", resp.StatusCode, msg)
	}

	var body dto.ListEntriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ledger response: %w", err)
	}

	return &body, nil
}

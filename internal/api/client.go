// Package api is the HTTP client for the order backend: paginated reads,
// order updates, and login. All calls carry the session bearer token and a
// generated request ID, retry transient failures with exponential backoff,
// and run through a circuit breaker.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"orderdesk/internal/auth"
	"orderdesk/internal/config"
)

// Client talks to the order backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *auth.Session
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	cfg        config.APIConfig
	logger     zerolog.Logger
}

// NewClient creates a new API client. The session provides the bearer
// credential at request time, so a login performed after construction is
// picked up automatically.
func NewClient(cfg config.APIConfig, session *auth.Session, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "api-client").Logger()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	settings := gobreaker.Settings{
		Name:    "order-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		session: session,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		cfg:     cfg,
		logger:  logger,
	}
}

// do executes a request through the circuit breaker with retry. The request
// body, if any, is JSON-encoded. The response body is left open for the
// caller to decode and close.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	requestID := uuid.New().String()

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.send(ctx, method, path, encoded, requestID)
	})
	if err != nil {
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	return resp, nil
}

// send performs the request with exponential backoff between attempts.
// Responses with 5xx status are retried; once attempts are exhausted the
// last response is returned for the caller to decode.
func (c *Client) send(ctx context.Context, method, path string, body []byte, requestID string) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.cfg.RetryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > c.cfg.RetryWaitMax {
				wait = c.cfg.RetryWaitMax
			}

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if reqErr != nil {
			return nil, fmt.Errorf("create request: %w", reqErr)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if isRetryableError(err) && attempt < c.cfg.MaxRetries {
				continue
			}
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		}

		// Retry on 5xx (except 501 Not Implemented)
		if resp.StatusCode >= 500 && resp.StatusCode != 501 && attempt < c.cfg.MaxRetries {
			resp.Body.Close()
			continue
		}

		return resp, nil
	}

	return resp, err
}

// isRetryableError determines if a transport error is worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	return false
}

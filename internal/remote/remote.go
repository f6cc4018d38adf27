// Package remote provides the boundary wrapper for external HTTP services and
// the retry discipline shared by every outbound call site. A Client performs
// exactly one round trip per invocation; bounded retries with exponential
// backoff are layered on top via Do.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Kind classifies a failed external call.
type Kind int

const (
	// KindTimeout indicates the call exceeded the fixed timeout.
	KindTimeout Kind = iota
	// KindConnectionFailure indicates the remote host could not be reached.
	KindConnectionFailure
	// KindServerError indicates a 5xx response.
	KindServerError
	// KindClientError indicates a 4xx response.
	KindClientError
	// KindParseError indicates the response body could not be decoded.
	KindParseError
)

// String returns a stable label for the failure kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnectionFailure:
		return "connection_failure"
	case KindServerError:
		return "server_error"
	case KindClientError:
		return "client_error"
	case KindParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// CallError describes a failed external call. Status and Body are populated
// for HTTP-level failures so callers can inspect structured application error
// payloads before treating the call as fully failed.
type CallError struct {
	Kind   Kind
	Status int
	Body   []byte
	Err    error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("remote call failed (%s, status %d)", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote call failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("remote call failed (%s)", e.Kind)
}

// Unwrap returns the underlying transport error, if any.
func (e *CallError) Unwrap() error {
	return e.Err
}

// Transient reports whether a retry is likely to succeed: timeouts,
// connection failures, and 5xx responses. Everything else, including 4xx
// responses, is permanent.
func (e *CallError) Transient() bool {
	switch e.Kind {
	case KindTimeout, KindConnectionFailure:
		return true
	case KindServerError:
		return e.Status >= 500 && e.Status < 600
	default:
		return false
	}
}

// DecodeBody attempts to decode the error response body into out. It returns
// false when no body was captured or the body is not valid JSON for out.
func (e *CallError) DecodeBody(out any) bool {
	if len(e.Body) == 0 {
		return false
	}
	return json.Unmarshal(e.Body, out) == nil
}

// Client performs single HTTP round trips against external services with a
// fixed timeout. It never retries and never logs business state.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client with the given per-call timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Post sends a JSON payload to endpoint and decodes a 2xx response body into
// out. Non-2xx responses produce a *CallError carrying the status and raw
// body; transport failures produce a *CallError classified as timeout or
// connection failure.
func (c *Client) Post(ctx context.Context, endpoint string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &CallError{Kind: KindParseError, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &CallError{Kind: KindConnectionFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(req, out)
}

// Get fetches endpoint and decodes a 2xx response body into out, with the
// same error classification as Post.
func (c *Client) Get(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &CallError{Kind: KindConnectionFailure, Err: err}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CallError{Kind: KindConnectionFailure, Err: fmt.Errorf("read response: %w", err)}
	}

	if c.logger != nil {
		c.logger.Debug("remote call completed",
			slog.String("url", req.URL.Redacted()),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := KindClientError
		if resp.StatusCode >= 500 {
			kind = KindServerError
		}
		return &CallError{Kind: kind, Status: resp.StatusCode, Body: body}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &CallError{Kind: KindParseError, Status: resp.StatusCode, Body: body, Err: err}
	}

	return nil
}

// classifyTransportError maps transport-level failures onto the error
// taxonomy. Context deadlines and net timeouts become KindTimeout, everything
// else becomes KindConnectionFailure.
func classifyTransportError(err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{Kind: KindTimeout, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &CallError{Kind: KindTimeout, Err: err}
	}

	return &CallError{Kind: KindConnectionFailure, Err: err}
}

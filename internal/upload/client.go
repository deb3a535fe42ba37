// Package upload sends a form payload to the processing endpoint.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"schedupload/internal/form"
)

// DefaultEndpoint is the path the upload form posts to.
const DefaultEndpoint = "/upload"

// ErrResponseNotOK is returned for any non-2xx response, whatever its body.
var ErrResponseNotOK = errors.New("Network response was not ok")

// ErrPayloadNil is returned when Upload is called without a payload.
var ErrPayloadNil = errors.New("payload is nil")

// StatusError carries the status of a rejected upload. Its message is always
// that of ErrResponseNotOK.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string { return ErrResponseNotOK.Error() }

func (e *StatusError) Unwrap() error { return ErrResponseNotOK }

// Result is a successful upload response.
type Result struct {
	StatusCode int
	Body       string
}

// Uploader defines the single network operation of the upload form.
type Uploader interface {
	// Upload POSTs the payload as multipart/form-data and resolves to a result or an error.
	Upload(ctx context.Context, p *form.Payload) (*Result, error)
}

// Client is an Uploader over net/http. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client posting to endpoint. No timeout is applied;
// cancellation is left to the caller's context.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Upload posts the payload as multipart/form-data and reads the response body as text.
func (c *Client) Upload(ctx context.Context, p *form.Payload) (*Result, error) {
	if p == nil {
		return nil, ErrPayloadNil
	}

	body, contentType, err := p.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not reported.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.DebugContext(ctx, "upload rejected",
			"endpoint", c.endpoint,
			"status", resp.StatusCode,
		)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "upload accepted",
		"endpoint", c.endpoint,
		"status", resp.StatusCode,
		"entries", p.Len(),
	)
	return &Result{StatusCode: resp.StatusCode, Body: string(text)}, nil
}

var _ Uploader = (*Client)(nil)

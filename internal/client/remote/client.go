// Package remote talks to the quotedesk API service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/quote"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	// UserAgent is sent with every request.
	UserAgent = "quotedesk-client/1.0"
)

// Client is the HTTP implementation of the remote quote store.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client. Its timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the service at baseURL. A zero timeout uses
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListQuotes returns every stored quote in service order.
func (c *Client) ListQuotes(ctx context.Context) ([]quote.Quote, error) {
	var quotes []quote.Quote
	if err := c.do(ctx, "list quotes", http.MethodGet, "/quotes", nil, &quotes); err != nil {
		return nil, err
	}
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	return quotes, nil
}

// CreateQuote stores a new quote.
func (c *Client) CreateQuote(ctx context.Context, in quote.Input) (*quote.Quote, error) {
	var q quote.Quote
	if err := c.do(ctx, "create quote", http.MethodPost, "/quotes", requestBody(in), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuote replaces a stored quote. A missing id yields an error matching
// ErrNotFound.
func (c *Client) UpdateQuote(ctx context.Context, id int64, in quote.Input) (*quote.Quote, error) {
	var q quote.Quote
	if err := c.do(ctx, "update quote", http.MethodPut, quotePath(id), requestBody(in), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuote removes a stored quote. A missing id yields an error matching
// ErrNotFound.
func (c *Client) DeleteQuote(ctx context.Context, id int64) error {
	return c.do(ctx, "delete quote", http.MethodDelete, quotePath(id), nil, nil)
}

func quotePath(id int64) string {
	return "/quotes/" + strconv.FormatInt(id, 10)
}

// wireQuote keeps tags as an array on the wire even when empty.
type wireQuote struct {
	Text   string   `json:"text"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

func requestBody(in quote.Input) wireQuote {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return wireQuote{Text: in.Text, Author: in.Author, Tags: tags}
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed", "op", op, "method", method, "path", path, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("remote request", "op", op, "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(data) > MaxResponseSize {
		return fmt.Errorf("%s: response exceeds %d bytes", op, MaxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage extracts the service's {"error": "..."} message, if any.
func errorMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}

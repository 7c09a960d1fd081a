// ABOUTME: HTTP client for the SeeFirst marketplace API
// ABOUTME: One call contract: token header, JSON or multipart bodies, uniform error mapping

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seefirst/seefirst-cli/internal/session"
)

const (
	// DefaultBaseURL is the backend origin used when none is configured
	DefaultBaseURL = "http://localhost:3000"
	// TokenHeader carries the session token on every authenticated call
	TokenHeader = "x-access-token"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1 << 20
)

// SessionSource supplies the token and is cleared when the backend rejects it
type SessionSource interface {
	Get(ctx context.Context) (session.Session, error)
	Clear(ctx context.Context) error
}

// Client is the API client for the SeeFirst backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sessions       SessionSource
	onUnauthorized func()
}

// Option customizes a Client
type Option func(*Client)

// WithSessions attaches the session store that provides the auth token
func WithSessions(s SessionSource) Option {
	return func(c *Client) { c.sessions = s }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler runs fn after a 401/403 has cleared the session
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: newLoggingTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one backend call
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     any // JSON-encoded unless it implements RawBody
	Header   http.Header
	SkipAuth bool
}

// Call performs req and decodes a successful JSON response into out (which may be nil).
// A 401 or 403 returns ErrUnauthorized; on calls that sent the token it also
// clears the session and runs the unauthorized handler.
func (c *Client) Call(ctx context.Context, req *Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if !req.SkipAuth {
			c.expireSession(ctx)
		}
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Error("Failed to decode backend response", "path", req.Path, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch b := req.Body.(type) {
	case nil:
	case RawBody:
		body = b
		contentType = b.ContentType()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	if !req.SkipAuth && c.sessions != nil {
		if sess, err := c.sessions.Get(ctx); err == nil {
			httpReq.Header.Set(TokenHeader, sess.Token)
		}
	}
	return httpReq, nil
}

func (c *Client) expireSession(ctx context.Context) {
	if c.sessions != nil {
		if err := c.sessions.Clear(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Failed to clear rejected session", "error", err)
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// handleRequestError converts transport errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled: %w", ctx.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", ctx.Err())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: request timed out: %v", ErrNetwork, err)
	}
	slog.Error("Backend unreachable", "base_url", c.baseURL, "error", err)
	return fmt.Errorf("%w: cannot connect to backend at %s: %v", ErrNetwork, c.baseURL, err)
}

// handleErrorResponse builds an APIError from a non-2xx response
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil {
		apiErr.Message = errResp.Error
		if apiErr.Message == "" {
			apiErr.Message = errResp.Message
		}
	}
	return apiErr
}

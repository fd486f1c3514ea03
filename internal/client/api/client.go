package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcards/internal/logging"
	"github.com/google/uuid"
)

const (
	pathLogin    = "/login"
	pathRegister = "/register"

	headerRequestID = "X-Request-ID"

	// error bodies larger than this are truncated in messages
	maxErrorBody = 4 << 10
)

// Client is the net/http implementation of API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	timeout *time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request; 0 disables the bound. It applies to a copy
// of the HTTP client, so an injected client is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  TokenFunc(func() string { return "" }),
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c
}

// SetTokenSource replaces the token source. The session store and the client
// reference each other, so the source is usually wired after construction.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) BaseURL() string { return c.baseURL }

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do performs one request and decodes a 2xx body into out (when non-nil and
// the body is not empty).
func (c *Client) do(ctx context.Context, rc call, out any) error {
	reqID := uuid.NewString()
	log := c.log.With("method", rc.method, "path", rc.path, "request_id", reqID)

	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}

	var body io.Reader
	if rc.body != nil {
		b, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", rc.method, rc.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, target, body)
	if err != nil {
		log.Error(ctx, "failed to build request", "error", err)
		return fmt.Errorf("failed to build %s %s: %w", rc.method, rc.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.auth {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			log.Debug(ctx, "request canceled")
			return ctxErr
		}
		log.Error(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, rc.method, rc.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "failed to read response", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: reading %s %s: %v", ErrUnavailable, rc.method, rc.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Method:     rc.method,
			Path:       rc.path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			RequestID:  reqID,
			kind:       mapStatus(rc.path, resp.StatusCode),
		}
		log.Error(ctx, "request rejected", "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "took", time.Since(started))

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Error(ctx, "failed to decode response", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("failed to decode %s %s: %w", rc.method, rc.path, err)
	}
	return nil
}

// errorMessage extracts the backend's "message" or "error" field, falling back
// to the raw (truncated) body.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case payload.Msg != "":
			return payload.Msg
		}
	}

	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	if strings.HasPrefix(s, "<") {
		return ""
	}
	return s
}

// segment escapes one path element.
func segment(s string) string {
	return url.PathEscape(s)
}

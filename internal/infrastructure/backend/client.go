// Package backend is the HTTP client for the café REST backend. Every call
// made with a credential on its context (see ports.WithCredential) sends it
// as a bearer token.
package backend

import (
	"bytes"
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

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Code)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
}

// Unwrap maps the status to the matching domain sentinel.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrBackendUnavailable
	}
}

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements the ports.*API interfaces over JSON/HTTP.
type Client struct {
	base *url.URL
	http *http.Client
}

var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.ProductAPI = (*Client)(nil)
	_ ports.EventAPI   = (*Client)(nil)
	_ ports.MenuAPI    = (*Client)(nil)
	_ ports.VenueAPI   = (*Client)(nil)
)

// New validates cfg.BaseURL and returns a Client. A default timeout is
// applied when none is provided.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url %q: scheme must be http or https", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{base: base, http: &http.Client{Timeout: timeout}}, nil
}

// Ping reports whether the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/products"), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) url(path string) string {
	return c.base.String() + path
}

// request is one backend call. body is JSON-encoded unless it is already an
// io.Reader, in which case contentType must be set.
type request struct {
	op          string
	method      string
	path        string
	body        any
	contentType string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	contentType := r.contentType
	switch b := r.body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path), body)
	if err != nil {
		return fmt.Errorf("%s: %w", r.op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if cred, ok := ports.CredentialFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(r.op, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%s: %w: %v", r.op, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(r.op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: %w", r.op, &StatusError{Code: resp.StatusCode, Message: errorMessage(msg)})
	}

	return decode(resp.Body, out, r.op)
}

// decode reads the response into out. A *string receives the raw body,
// which is how the backend answers auth and product mutations.
func decode(body io.Reader, out any, op string) error {
	switch dst := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, body)
		return nil
	case *string:
		raw, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("%s: read response: %w", op, err)
		}
		*dst = string(raw)
		return nil
	default:
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w: %v", op, domain.ErrBackendUnavailable, err)
		}
		return nil
	}
}

// errorMessage extracts a readable message from an error body, which is
// either plain text or a JSON object with a message or error field.
func errorMessage(raw []byte) string {
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func idPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

var errNilResponse = errors.New("backend returned an empty body")

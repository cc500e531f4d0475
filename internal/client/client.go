package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
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

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds every upstream call when the config sets none
const DefaultTimeout = 30 * time.Second

// Config configures the upstream API client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client performs requests against the data-mart REST API.
// Identical requests in flight at the same time share one network call.
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
	group      singleflight.Group
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at cfg.BaseURL
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(u.String(), "/") + "/",
		timeout:    cfg.Timeout,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{},
		log:        slog.Default(),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = "indicators-dashboard"
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "api-client")

	return c, nil
}

// Request describes one upstream call
type Request struct {
	Method    string // Empty means GET
	Endpoint  string
	ID        string
	Query     string // Already encoded
	Body      any
	Multipart bool // Encode Body (map[string]any) as multipart/form-data
}

// BuildURL joins the base address, endpoint, optional id and query
func (c *Client) BuildURL(endpoint, id, query string) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL)
	sb.WriteString(strings.TrimPrefix(endpoint, "/"))
	if id != "" {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(id))
	}
	if query != "" {
		sb.WriteByte('?')
		sb.WriteString(query)
	}
	return sb.String()
}

type encodedBody struct {
	data        []byte
	contentType string
}

// Do sends the request and returns the raw response body.
// Failures are reported as *APIError.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body *encodedBody
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodPut {
		b, err := encodeBody(r)
		if err != nil {
			return nil, err
		}
		body = b
	}

	target := c.BuildURL(r.Endpoint, r.ID, r.Query)
	key := method + " " + target
	if body != nil {
		sum := sha256.Sum256(body.data)
		key += " " + hex.EncodeToString(sum[:])
	}

	// The shared call must survive the cancellation of whichever caller started it.
	callCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.send(callCtx, method, target, body)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, timeoutError(ctx.Err())
		}
		return nil, networkError(ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.log.Debug("joined in-flight request", "method", method, "url", target)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		data, _ := res.Val.([]byte)
		return data, nil
	}
}

func (c *Client) send(ctx context.Context, method, target string, body *encodedBody) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("upstream request failed", "method", method, "url", target, "error", err)
		if isTimeout(err) {
			return nil, timeoutError(err)
		}
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, timeoutError(err)
		}
		return nil, networkError(err)
	}

	c.log.Debug("upstream request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, data)
	}
	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func encodeBody(r Request) (*encodedBody, error) {
	if r.Multipart {
		fields, ok := r.Body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("multipart body must be map[string]any, got %T", r.Body)
		}
		return encodeMultipart(fields)
	}

	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return &encodedBody{data: data, contentType: "application/json"}, nil
}

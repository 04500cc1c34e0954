// Package apiclient is the HTTP transport for the ExoticWorld catalog and
// cart service: one method per REST endpoint, JSON bodies, and the
// connect/read timeouts the service is operated with.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

const (
	apiPrefix       = "api/v1/"
	maxResponseSize = 10 << 20 // 10MB
	requestIDHeader = "X-Request-ID"

	DefaultConnectTimeout = 30 * time.Second
	DefaultReadTimeout    = 60 * time.Second
)

// ErrEmptyBody is returned by endpoints whose response must carry a body
// when the service answered 2xx with nothing (or JSON null).
var ErrEmptyBody = errors.New("empty response body")

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to one service instance. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	verbose bool
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client, timeouts included.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeouts sets the TCP connect timeout and the time allowed for the
// service to start answering once the request is sent.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Client) {
		c.http = newHTTPClient(connect, read)
	}
}

// WithVerbose logs one line per request.
func WithVerbose(verbose bool) Option {
	return func(c *Client) {
		c.verbose = verbose
	}
}

// New creates a client for the service rooted at baseURL, e.g.
// "https://exoticworld-backend.onrender.com/".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL: u,
		http:    newHTTPClient(DefaultConnectTimeout, DefaultReadTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newHTTPClient(connect, read time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connect,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.ResponseHeaderTimeout = read

	return &http.Client{
		Transport: transport,
		Timeout:   connect + read,
	}
}

// do sends one request below api/v1/ and decodes a 2xx body into out.
// It reports whether the response carried a body; an empty body or a bare
// JSON null counts as absent and leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (bool, error) {
	rel := &url.URL{Path: apiPrefix + path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	target := c.baseURL.ResolveReference(rel)

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return false, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return false, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.verbose {
			log.Printf("[api] %s %s failed after %s (request %s): %v", method, rel.Path, time.Since(start), requestID, err)
		}
		return false, errors.Wrapf(err, "%s %s", method, rel.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if c.verbose {
		log.Printf("[api] %s %s -> %d in %s (%d bytes, request %s)", method, target.RequestURI(), resp.StatusCode, time.Since(start), len(raw), requestID)
	}
	if err != nil {
		return false, errors.Wrapf(err, "%s %s: read body", method, rel.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &StatusError{
			Method:     method,
			Path:       rel.Path,
			StatusCode: resp.StatusCode,
			Body:       errorMessage(raw),
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, errors.Wrapf(err, "%s %s: decode body", method, rel.Path)
	}
	return true, nil
}

// errorMessage extracts {"error": "..."} or {"message": "..."} from an error
// body, falling back to a short prefix of the raw text.
func errorMessage(raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

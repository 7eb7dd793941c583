// Package transport performs the actual HTTP calls against the configured
// backend: one base URL, uniform short timeouts, bearer-token injection and
// optional request/response logging. It knows nothing about what each call
// means.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Config holds the transport settings.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout bounds connect, read and write per request. Defaults to 5s.
	// Kept short so a down backend surfaces quickly instead of hanging
	// the caller.
	Timeout time.Duration
	// Log receives request/response dumps at debug level.
	Log zerolog.Logger
}

// Client is the shared HTTP client. One instance is constructed at process
// start and handed to every component that needs wire access.
type Client struct {
	http *http.Client
	base *url.URL
	tok  *tokenHolder
}

// New builds a Client from the config. Requests never retry on connection
// failure; failing fast keeps the caller responsive.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("transport: parse base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("transport: base url %q missing scheme or host", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	tok := &tokenHolder{}
	var rt http.RoundTripper = &http.Transport{
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	rt = &logTransport{next: rt, log: cfg.Log}
	rt = &authTransport{next: rt, tok: tok}

	return &Client{
		http: &http.Client{Transport: rt, Timeout: timeout},
		base: base,
		tok:  tok,
	}, nil
}

// SetToken installs the bearer token attached to every subsequent request.
func (c *Client) SetToken(token string) { c.tok.set(token) }

// ClearToken drops the bearer token; requests go out unauthenticated.
func (c *Client) ClearToken() { c.tok.set("") }

// NewRequest builds a request against the configured base URL. path must
// start with "/".
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	return req, nil
}

// Do executes the request through the configured round-tripper chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

// tokenHolder serialises access to the current token. Reads happen on every
// request; writes only on login, logout and hard auth failure.
type tokenHolder struct {
	mu    sync.RWMutex
	token string
}

func (t *tokenHolder) set(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *tokenHolder) get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// authTransport stamps outgoing requests with the current bearer token. A
// request with no token held goes out unmodified; login, registration and
// the category listing are intentionally token-less.
type authTransport struct {
	next http.RoundTripper
	tok  *tokenHolder
}

func (a *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := a.tok.get(); token != "" {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		return a.next.RoundTrip(clone)
	}
	return a.next.RoundTrip(req)
}

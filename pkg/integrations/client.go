package integrations

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	circuit "github.com/rubyist/circuitbreaker"

	apperr "github.com/matzehuels/artifactscout/pkg/errors"
	"github.com/matzehuels/artifactscout/pkg/observability"
)

// Options configures a [Client]. The zero value is usable.
type Options struct {
	HTTPClient       *http.Client      // nil: NewHTTPClient(Timeout)
	Timeout          time.Duration     // per request; default 30s
	UserAgent        string            // default "artifactscout"
	Headers          map[string]string // applied to every request
	Attempts         int               // retry attempts; default 3
	InitialBackoff   time.Duration     // first retry delay; default 1s
	BreakerThreshold int64             // consecutive failures before a host's breaker trips; default 5
}

// Client provides shared HTTP functionality for all repository layouts.
// It handles retries, per-host circuit breaking, auth and common request
// headers, and reports requests to the observability HTTP hooks.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http      *http.Client
	headers   map[string]string
	userAgent string
	attempts  int
	backoff   time.Duration
	breakers  *breakers
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		headers:   opts.Headers,
		userAgent: opts.UserAgent,
		attempts:  opts.Attempts,
		backoff:   opts.InitialBackoff,
		breakers:  newBreakers(opts.BreakerThreshold),
	}
	if c.http == nil {
		c.http = NewHTTPClient(opts.Timeout)
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.attempts <= 0 {
		c.attempts = 3
	}
	if c.backoff <= 0 {
		c.backoff = time.Second
	}
	if opts.BreakerThreshold <= 0 {
		c.breakers.threshold = 5
	}
	return c
}

// GetBytes performs an HTTP GET and returns the response body.
//
// Returns [ErrNotFound] for 404, an error wrapping [ErrNetwork] for transport
// failures and unexpected statuses, and an [apperr.ErrCodeCircuitOpen] error
// (also wrapping ErrNetwork) when the host's breaker is open.
func (c *Client) GetBytes(ctx context.Context, rawURL string, auth *BasicAuth) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.attempts, c.backoff, func() error {
		var err error
		body, err = c.guarded(ctx, rawURL, auth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// GetXML performs an HTTP GET and XML-decodes the response into v.
func (c *Client) GetXML(ctx context.Context, rawURL string, auth *BasicAuth, v any) error {
	body, err := c.GetBytes(ctx, rawURL, auth)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// GetText performs an HTTP GET and returns the body as a string.
// Used for directory listings.
func (c *Client) GetText(ctx context.Context, rawURL string, auth *BasicAuth) (string, error) {
	body, err := c.GetBytes(ctx, rawURL, auth)
	return string(body), err
}

// BreakerStates returns "open" or "closed" for every host contacted so far.
func (c *Client) BreakerStates() map[string]string {
	return c.breakers.states()
}

// guarded runs one request through the host's circuit breaker. Only
// transient failures count against the breaker; a 404 is a valid answer.
func (c *Client) guarded(ctx context.Context, rawURL string, auth *BasicAuth) ([]byte, error) {
	host := hostOf(rawURL)
	br := c.breakers.get(host)
	if !br.Ready() {
		return nil, apperr.Wrap(apperr.ErrCodeCircuitOpen, ErrNetwork, "circuit breaker open for %s", host)
	}

	var (
		body    []byte
		permErr error
	)
	err := br.Call(func() error {
		var err error
		body, err = c.do(ctx, rawURL, auth)
		if err != nil && !IsRetryable(err) {
			permErr = err
			return nil
		}
		return err
	}, 0)
	if err == circuit.ErrBreakerOpen {
		return nil, apperr.Wrap(apperr.ErrCodeCircuitOpen, ErrNetwork, "circuit breaker open for %s", host)
	}
	if err != nil {
		return nil, err
	}
	return body, permErr
}

func (c *Client) do(ctx context.Context, rawURL string, auth *BasicAuth) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if auth != nil && auth.User != "" {
		req.SetBasicAuth(auth.User, auth.Password)
	}

	host, path := req.URL.Host, requestPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	return body, nil
}

func requestPath(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

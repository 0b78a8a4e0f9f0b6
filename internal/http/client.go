// Package http wraps a single logical GET against the Pexels API with
// retry-on-failure semantics: transport errors, 429 and 5xx responses are
// retried up to a configured budget, sleeping between attempts according to
// a caller override, the server's Retry-After hint, or exponential backoff,
// in that priority order.
package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/pexels-client/internal/constants"
	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// Request represents an HTTP request to the API. NoAuth suppresses the
// Authorization header, used when fetching media assets from the CDN host.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	NoAuth bool
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client is a retrying HTTP client for the Pexels API.
type Client struct {
	baseURL            string
	token              string
	userAgent          string
	locale             string
	debug              bool
	retryAfterOverride time.Duration
	logger             zerolog.Logger
	httpClient         *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for retry warnings and debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLocale sets the Accept-Language header.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig sets the maximum number of retries per logical request.
func WithRetryConfig(retryMax int) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
	}
}

// WithRetryAfterOverride forces a fixed sleep before retrying rate-limit and
// server errors, taking precedence over the server's Retry-After hint.
func WithRetryAfterOverride(d time.Duration) Option {
	return func(c *Client) {
		c.retryAfterOverride = d
	}
}

// NewClient creates a new retrying API client. The token is sent verbatim in
// the Authorization header (the Pexels API does not use a Bearer prefix).
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		userAgent:  "pexels-client/dev",
		logger:     zerolog.Nop(),
		httpClient: retryablehttp.NewClient(),
	}

	client.httpClient.RetryMax = constants.DefaultRetryMax
	client.httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	client.httpClient.Logger = nil
	client.httpClient.CheckRetry = retryPolicy
	client.httpClient.Backoff = client.backoff
	// Keep the last response on budget exhaustion so a structured error
	// can be built from it instead of a bare "giving up" string.
	client.httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// retryPolicy retries transport-level failures, rate limiting (429), and
// server errors (5xx). Everything else is terminal.
func retryPolicy(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == nethttp.StatusTooManyRequests || resp.StatusCode >= nethttp.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// backoff selects the sleep before retry attempt (0-based). For HTTP-level
// retries the caller override wins, then a parseable Retry-After header,
// then the computed exponential backoff. Transport-level retries always use
// the computed backoff.
func (c *Client) backoff(_, _ time.Duration, attempt int, resp *nethttp.Response) time.Duration {
	delay := Backoff(attempt)

	if resp != nil {
		switch {
		case c.retryAfterOverride > 0:
			delay = c.retryAfterOverride
		default:
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
				delay = time.Duration(secs) * time.Second
			}
		}

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying request")

		return delay
	}

	c.logger.Warn().
		Int("attempt", attempt).
		Dur("delay", delay).
		Msg("retrying after transport error")

	return delay
}

// Do executes a request against the API, retrying per the client policy, and
// returns the response. Non-2xx terminal responses are returned alongside a
// *pexels.APIError; transport failures surface as *pexels.TransportError
// with credential material redacted.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL, err := c.resolveURL(req)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = nethttp.MethodGet
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.token != "" && !req.NoAuth {
		httpReq.Header.Set("Authorization", c.token)
	}

	if c.locale != "" {
		httpReq.Header.Set("Accept-Language", c.locale)
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", c.redact(requestURL)).
			Msg("HTTP request")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp == nil {
			return nil, &pexels.TransportError{Message: c.redact(err.Error())}
		}
		// Retry budget exhausted on a retryable status: fall through and
		// build the structured terminal error from the last response.
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil {
		return nil, &pexels.TransportError{Message: c.redact(readErr.Error())}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Int("bytes", len(body)).
			Msg("HTTP response")
	}

	if resp.StatusCode < nethttp.StatusOK || resp.StatusCode >= nethttp.StatusMultipleChoices {
		return resp, pexels.NewAPIError(resp.StatusCode, httpResp.Header.Get("X-Request-Id"), body)
	}

	return resp, nil
}

// Get executes a GET request against a path or absolute URL.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// resolveURL joins the request path with the base URL. Absolute URLs (such as
// a next_page link from a prior response) are used verbatim; the link is
// assumed self-contained, so the query is only attached when set.
func (c *Client) resolveURL(req *Request) (string, error) {
	raw := req.Path
	if !strings.Contains(raw, "://") {
		raw = c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", pexels.ErrInvalidHost, c.redact(raw))
	}

	if len(req.Query) > 0 {
		parsed.RawQuery = req.Query.Encode()
	}

	return parsed.String(), nil
}

// redact masks the API token in diagnostic text so credential material never
// reaches logs or error output.
func (c *Client) redact(s string) string {
	if c.token == "" {
		return s
	}

	return strings.ReplaceAll(s, c.token, constants.MaskedSecret)
}

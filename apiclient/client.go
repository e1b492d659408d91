// Package apiclient is the HTTP gateway to the remote task-manager API.
//
// Every request carries the session cookie, runs under a bounded
// timeout, and resolves failures to a classified *Error. A 401 from any
// endpoint additionally fires the session-invalidated hook so the host
// application can route the user back to login without each caller
// implementing its own 401 handling.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds each request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// OnSessionInvalid is called whenever any request receives a 401,
	// before the error is returned to the caller. May be nil.
	OnSessionInvalid func()

	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// Client performs authenticated JSON requests against the remote API.
// The session credential is a cookie held in the client's jar; callers
// never handle it directly.
type Client struct {
	baseURL          *url.URL
	httpClient       *http.Client
	timeout          time.Duration
	onSessionInvalid func()
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Jar:       jar,
			Transport: opts.Transport,
		},
		timeout:          timeout,
		onSessionInvalid: opts.OnSessionInvalid,
	}, nil
}

// Do performs a request and decodes a 2xx response body into out.
// body is JSON-encoded when non-nil; out may be nil to discard the
// response. Failures are returned as *Error; decode failures wrap
// ErrDecode.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return nil
	}

	apiErr := &Error{
		StatusCode:    resp.StatusCode,
		ServerMessage: decodeServerMessage(data),
	}
	apiErr.Kind = classify(resp.StatusCode, apiErr.ServerMessage)

	if apiErr.Kind == KindAuth && c.onSessionInvalid != nil {
		c.onSessionInvalid()
	}

	return apiErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Cookies returns the cookies currently held for the API origin.
// Hosts that outlive a single process persist these between runs.
func (c *Client) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.baseURL)
}

// SetCookies seeds the jar with previously persisted cookies.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.httpClient.Jar.SetCookies(c.baseURL, cookies)
}

// resolve joins path onto the base URL. The path is taken as already
// escaped, so segments a caller ran through url.PathEscape come out
// encoded exactly once.
func (c *Client) resolve(path string) string {
	base := *c.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		ref = &url.URL{Path: strings.TrimPrefix(path, "/")}
	}
	return base.ResolveReference(ref).String()
}

// decodeServerMessage extracts the message field from an error body.
// Bodies without a message field (or that aren't JSON at all) yield "".
func decodeServerMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every call when the config leaves Timeout zero.
const DefaultTimeout = 30 * time.Second

// TokenSource yields the currently persisted bearer token. A false result
// means no token is persisted and the request goes out unauthenticated.
type TokenSource func(ctx context.Context) (string, bool)

// AuthExpiredHook runs when any call receives a 401. It must clear the
// local session state so no later call retries the stale token.
type AuthExpiredHook func(ctx context.Context)

// Config describes one backend deployment.
type Config struct {
	// BaseURL is the fixed API root, e.g. "https://host/pmo/api/".
	BaseURL string
	// Timeout bounds each call; DefaultTimeout when zero.
	Timeout time.Duration
	// BasicAuthUser and BasicAuthPass authenticate the token-acquisition
	// endpoint only. Inject them from configuration; never bake them in.
	BasicAuthUser string
	BasicAuthPass string

	// TokenSource supplies the bearer token for authenticated calls.
	TokenSource TokenSource
	// OnAuthExpired tears down the local session on a 401.
	OnAuthExpired AuthExpiredHook
	// HTTPClient overrides the underlying client; mainly for tests. Its
	// Timeout is forced to Config.Timeout.
	HTTPClient *http.Client
}

type authMode int

const (
	authBearer authMode = iota
	authBasic
	authNone
)

// Client is the outbound HTTP client. One Client per deployment; safe for
// concurrent use.
type Client struct {
	http          *http.Client
	baseURL       string
	basicUser     string
	basicPass     string
	tokenSource   TokenSource
	onAuthExpired AuthExpiredHook
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway: base URL required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL: %w", err)
	}
	if cfg.BasicAuthUser == "" || cfg.BasicAuthPass == "" {
		return nil, errors.New("gateway: basic auth pair required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	tokenSource := cfg.TokenSource
	if tokenSource == nil {
		tokenSource = func(context.Context) (string, bool) { return "", false }
	}

	return &Client{
		http:          httpClient,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/") + "/",
		basicUser:     cfg.BasicAuthUser,
		basicPass:     cfg.BasicAuthPass,
		tokenSource:   tokenSource,
		onAuthExpired: cfg.OnAuthExpired,
	}, nil
}

// postForm sends a form-encoded POST. Fields with empty values are omitted
// from the body rather than sent empty.
func (c *Client) postForm(ctx context.Context, path string, fields map[string]string, mode authMode) (*Response, error) {
	form := url.Values{}
	for k, v := range fields {
		if v == "" {
			continue
		}
		form.Set(k, v)
	}

	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.do(req, mode)
}

// get sends a GET with the given query parameters, empty values omitted.
func (c *Client) get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request %s: %w", path, err)
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			if v == "" {
				continue
			}
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	return c.do(req, authBearer)
}

func (c *Client) do(req *http.Request, mode authMode) (*Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	switch mode {
	case authBasic:
		req.SetBasicAuth(c.basicUser, c.basicPass)
	case authBearer:
		if token, ok := c.tokenSource(req.Context()); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// No response reached us: context cancellation, timeout, DNS,
		// connection refused. All normalize to the same envelope.
		return networkErrorResponse(), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && c.onAuthExpired != nil {
		c.onAuthExpired(req.Context())
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErrorResponse(), nil
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("gateway: decode %s response: %w", req.URL.Path, err)
		}
		return &Response{
			Status:  StatusError,
			Message: []string{http.StatusText(resp.StatusCode)},
		}, nil
	}
	return &envelope, nil
}

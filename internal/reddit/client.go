// Package reddit is a small read-only Reddit API client: OAuth2 password
// grant authentication, subreddit listings and flattened comment trees.
package reddit

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

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"forum-sentiment/internal/logger"
)

const (
	// DefaultAuthURL is Reddit's OAuth2 token endpoint
	DefaultAuthURL = "https://www.reddit.com/api/v1/access_token"

	// DefaultBaseURL is the host serving authenticated API calls
	DefaultBaseURL = "https://oauth.reddit.com"

	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerMinute matches Reddit's OAuth client quota
	DefaultRequestsPerMinute = 60

	// maxPageSize is the largest listing page Reddit serves
	maxPageSize = 100
)

var ErrNotConnected = errors.New("reddit client is not connected")

// Credentials for a Reddit "script" application
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// APIError is a non-200 response from the Reddit API
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit API error %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Client talks to the Reddit API. Call Connect before any listing call.
type Client struct {
	authURL    string
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	base       http.RoundTripper
	httpClient *http.Client
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithAuthURL overrides the token endpoint
func WithAuthURL(authURL string) ClientOption {
	return func(c *Client) {
		c.authURL = authURL
	}
}

// WithBaseURL overrides the API host
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithTransport sets the base round tripper used for token and API calls
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.base = rt
	}
}

// WithRateLimit paces requests. Zero or less disables pacing.
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		c.limiter = newLimiter(requestsPerMinute)
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}

// NewClient creates an unauthenticated client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		authURL: DefaultAuthURL,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		limiter: newLimiter(DefaultRequestsPerMinute),
		base:    http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// userAgentTransport stamps every request, token requests included.
// Reddit throttles requests that carry a generic user agent.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// Connect performs the password grant and keeps an authorized HTTP client
func (c *Client) Connect(ctx context.Context, creds Credentials) error {
	if creds.ClientID == "" || creds.UserAgent == "" || creds.Username == "" {
		return fmt.Errorf("incomplete reddit credentials")
	}

	hc := &http.Client{
		Timeout:   c.timeout,
		Transport: &userAgentTransport{userAgent: creds.UserAgent, base: c.base},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.authURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	token, err := conf.PasswordCredentialsToken(ctx, creds.Username, creds.Password)
	if err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}

	client := conf.Client(ctx, token)
	client.Timeout = c.timeout
	c.httpClient = client

	logger.Info(ctx, "Authenticated with Reddit", "username", creds.Username, "token_expiry", token.Expiry)
	return nil
}

// get performs a paced GET against the API host and decodes the JSON body
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if c.httpClient == nil {
		return ErrNotConnected
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("raw_json", "1")
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	logger.Debug(ctx, "Reddit API request", "path", path, "params", params.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

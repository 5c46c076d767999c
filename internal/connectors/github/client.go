package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// listPageSize is the page size for list endpoints.
	listPageSize = 100
)

// Ensure Client implements the content source port.
var _ driven.ContentSource = (*Client)(nil)

// Client wraps the go-github client for one content repository.
type Client struct {
	gh          *gh.Client
	creds       domain.Credentials
	rateLimiter *RateLimiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
// The token transport is not installed when this is used.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.gh = gh.NewClient(httpClient)
	}
}

// WithBaseURL points the client at a different API base. Used in tests.
// go-github requires the base URL to end in a slash.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return
		}
		c.gh.BaseURL = u
	}
}

// New creates a client for the repository named by creds. A token installs
// an oauth2 bearer transport; without one the client is restricted to
// read-only, anonymously rate-limited calls.
func New(ctx context.Context, creds domain.Credentials, opts ...Option) *Client {
	creds.ApplyDefaults()

	httpClient := &http.Client{Timeout: DefaultTimeout}
	if creds.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = DefaultTimeout
	}

	c := &Client{
		gh:          gh.NewClient(httpClient),
		creds:       creds,
		rateLimiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAuthenticated returns true iff a token is currently held.
func (c *Client) IsAuthenticated() bool {
	return c.creds.IsAuthenticated()
}

// Owner returns the configured repository owner.
func (c *Client) Owner() string {
	return c.creds.Owner
}

// Repo returns the configured repository name.
func (c *Client) Repo() string {
	return c.creds.Repo
}

// ValidateCredentials checks the held token by fetching the authenticated
// user. Fails with domain.ErrAuthRequired when no token is held.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	if !c.IsAuthenticated() {
		return domain.ErrAuthRequired
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		err = c.wrapError(err, "validate credentials")
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
		}
		return err
	}

	c.updateRateLimitFromResponse(resp)
	return nil
}

// updateRateLimitFromResponse updates the rate limiter from response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// Package oauth runs the GitHub device authorization flow for interactive
// login. The browser original fabricated a token client-side behind a mock
// OAuth screen; that flow is not ported. Device flow is a genuine
// server-mediated exchange and needs no client secret in the binary.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/oauth"
	gh "github.com/google/go-github/v80/github"
)

// DefaultScopes are the scopes requested for publishing posts and comments.
var DefaultScopes = []string{"repo"}

// ErrClientIDMissing indicates no OAuth client id was configured.
// The id comes from configuration (INKPOST_CLIENT_ID), never a constant.
var ErrClientIDMissing = errors.New("oauth: client id not configured")

// Result is the outcome of a completed device flow.
type Result struct {
	Token string
	Login string
}

// DeviceFlow drives the GitHub device authorization grant.
type DeviceFlow struct {
	clientID     string
	scopes       []string
	onDeviceCode func(code, verificationURL string)
}

// NewDeviceFlow creates a flow for the given OAuth client id.
func NewDeviceFlow(clientID string, scopes []string) *DeviceFlow {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return &DeviceFlow{
		clientID: clientID,
		scopes:   scopes,
	}
}

// OnDeviceCode sets the callback invoked with the user code and
// verification URL once GitHub issues them.
func (f *DeviceFlow) OnDeviceCode(callback func(code, verificationURL string)) {
	f.onDeviceCode = callback
}

// Run executes the device flow and resolves the authenticated login.
func (f *DeviceFlow) Run(ctx context.Context) (*Result, error) {
	if f.clientID == "" {
		return nil, ErrClientIDMissing
	}

	host, err := oauth.NewGitHubHost("https://github.com")
	if err != nil {
		return nil, fmt.Errorf("github host: %w", err)
	}

	flow := &oauth.Flow{
		Host:     host,
		ClientID: f.clientID,
		Scopes:   f.scopes,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if f.onDeviceCode != nil {
		flow.DisplayCode = func(code, verificationURL string) error {
			f.onDeviceCode(code, verificationURL)
			return nil
		}
	}

	token, err := flow.DeviceFlow()
	if err != nil {
		return nil, fmt.Errorf("device flow: %w", err)
	}

	login, err := f.resolveLogin(ctx, token.Token)
	if err != nil {
		return nil, fmt.Errorf("resolve login: %w", err)
	}

	return &Result{Token: token.Token, Login: login}, nil
}

// resolveLogin fetches the authenticated user for the new token.
func (f *DeviceFlow) resolveLogin(ctx context.Context, token string) (string, error) {
	client := gh.NewClient(&http.Client{Timeout: 30 * time.Second}).WithAuthToken(token)
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}

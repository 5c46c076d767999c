package driving

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
)

// CredentialsService manages the credential record lifecycle.
type CredentialsService interface {
	// Current returns the persisted record, defaults applied.
	Current(ctx context.Context) (*domain.Credentials, error)

	// Set overwrites token, owner, and repo unconditionally. No token
	// validation happens here; validation is a separate caller-driven
	// round-trip against the remote.
	Set(ctx context.Context, token, owner, repo string) error

	// ClearToken drops the token; owner and repo are retained.
	ClearToken(ctx context.Context) error

	// IsAuthenticated returns true iff a token is currently persisted.
	IsAuthenticated(ctx context.Context) bool
}

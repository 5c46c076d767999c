package driven

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
)

// CredentialsStore persists the single credential record.
type CredentialsStore interface {
	// Load returns the current record. A missing backing file yields a
	// default record (owner/repo defaults, no token), never an error.
	Load(ctx context.Context) (*domain.Credentials, error)

	// Save overwrites the record unconditionally.
	Save(ctx context.Context, creds domain.Credentials) error
}

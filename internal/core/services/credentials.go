package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
)

// Ensure CredentialsService implements the interface.
var _ driving.CredentialsService = (*CredentialsService)(nil)

// CredentialsService manages the credential record lifecycle on top of the
// persisted store.
type CredentialsService struct {
	store driven.CredentialsStore
	now   func() time.Time
}

// NewCredentialsService creates a new credentials service.
func NewCredentialsService(store driven.CredentialsStore) *CredentialsService {
	return &CredentialsService{
		store: store,
		now:   time.Now,
	}
}

// Current returns the persisted record, defaults applied.
func (s *CredentialsService) Current(ctx context.Context) (*domain.Credentials, error) {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	creds.ApplyDefaults()
	return creds, nil
}

// Set overwrites token, owner, and repo unconditionally. Empty owner/repo
// fall back to the defaults so the invariant of non-empty coordinates holds.
func (s *CredentialsService) Set(ctx context.Context, token, owner, repo string) error {
	current, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	id := current.ID
	if id == "" {
		id = uuid.NewString()
	}

	creds := domain.Credentials{
		ID:        id,
		Token:     token,
		Owner:     owner,
		Repo:      repo,
		UpdatedAt: s.now(),
	}
	creds.ApplyDefaults()

	if err := s.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// ClearToken drops the token from the persisted record. Owner and repo are
// retained so unauthenticated reads keep working.
func (s *CredentialsService) ClearToken(ctx context.Context) error {
	current, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	current.Token = ""
	current.UpdatedAt = s.now()
	current.ApplyDefaults()

	if err := s.store.Save(ctx, *current); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// IsAuthenticated returns true iff a token is currently persisted.
func (s *CredentialsService) IsAuthenticated(ctx context.Context) bool {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return false
	}
	return creds.IsAuthenticated()
}

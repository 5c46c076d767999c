// Package file persists the credential record as a TOML file in the inkpost
// config directory. The browser original stored token, owner, and repo as
// three bare localStorage keys with no schema version; here the record is
// typed, carries a version field, and is migrated explicitly on load.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
)

// schemaVersion is the current on-disk record version.
const schemaVersion = 1

// credentialsFile is the file name within the config directory.
const credentialsFile = "config.toml"

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// record is the on-disk TOML shape.
type record struct {
	Version int           `toml:"version"`
	GitHub  githubSection `toml:"github"`
}

type githubSection struct {
	ID        string    `toml:"id,omitempty"`
	Token     string    `toml:"token,omitempty"`
	Owner     string    `toml:"owner"`
	Repo      string    `toml:"repo"`
	UpdatedAt time.Time `toml:"updated_at,omitempty"`
}

// CredentialsStore is a TOML-file-backed credentials store.
type CredentialsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewCredentialsStore creates a store under configDir.
// If configDir is empty, defaults to ~/.inkpost.
func NewCredentialsStore(configDir string) (*CredentialsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".inkpost")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &CredentialsStore{
		filePath: filepath.Join(configDir, credentialsFile),
	}, nil
}

// Path returns the backing file path.
func (s *CredentialsStore) Path() string {
	return s.filePath
}

// Load returns the current record. A missing file yields the default record
// (owner/repo defaults, no token) rather than an error.
func (s *CredentialsStore) Load(_ context.Context) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			creds := domain.Credentials{}
			creds.ApplyDefaults()
			return &creds, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	rec, migrated := migrate(rec)
	creds := domain.Credentials{
		ID:        rec.GitHub.ID,
		Token:     rec.GitHub.Token,
		Owner:     rec.GitHub.Owner,
		Repo:      rec.GitHub.Repo,
		UpdatedAt: rec.GitHub.UpdatedAt,
	}
	creds.ApplyDefaults()

	if migrated {
		if err := s.save(creds); err != nil {
			return nil, fmt.Errorf("persisting migrated record: %w", err)
		}
	}

	return &creds, nil
}

// Save overwrites the record unconditionally.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(creds)
}

// save writes the record to disk (caller must hold the lock).
// The file holds a token, so it is not group or world readable.
func (s *CredentialsStore) save(creds domain.Credentials) error {
	rec := record{
		Version: schemaVersion,
		GitHub: githubSection{
			ID:        creds.ID,
			Token:     creds.Token,
			Owner:     creds.Owner,
			Repo:      creds.Repo,
			UpdatedAt: creds.UpdatedAt,
		},
	}

	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// migrate upgrades older on-disk shapes to the current version. Returns the
// upgraded record and whether anything changed.
func migrate(rec record) (record, bool) {
	if rec.Version >= schemaVersion {
		return rec, false
	}

	// Version 0: the pre-versioning shape, possibly with empty coordinates.
	if rec.GitHub.Owner == "" {
		rec.GitHub.Owner = domain.DefaultOwner
	}
	if rec.GitHub.Repo == "" {
		rec.GitHub.Repo = domain.DefaultRepo
	}
	rec.Version = schemaVersion
	return rec, true
}

package domain

import "time"

// Default remote coordinates used until the user configures their own.
// Owner and Repo must never be empty: reads against the public content
// repository work without any authentication.
const (
	DefaultOwner = "gitsofaryan"
	DefaultRepo  = "blog-content"
)

// Credentials holds the remote repository coordinates and the optional
// access token. Without a token the client is restricted to read-only,
// anonymously rate-limited operations.
type Credentials struct {
	// ID is the unique identifier (UUID) of the credentials record.
	ID string `json:"id"`

	// Token is the GitHub access token (PAT or OAuth). Optional.
	Token string `json:"token,omitempty"`

	// Owner is the repository owner login. Never empty.
	Owner string `json:"owner"`

	// Repo is the content repository name. Never empty.
	Repo string `json:"repo"`

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthenticated returns true if a non-empty token is held.
func (c Credentials) IsAuthenticated() bool {
	return c.Token != ""
}

// ApplyDefaults fills empty owner/repo with the site defaults.
func (c *Credentials) ApplyDefaults() {
	if c.Owner == "" {
		c.Owner = DefaultOwner
	}
	if c.Repo == "" {
		c.Repo = DefaultRepo
	}
}

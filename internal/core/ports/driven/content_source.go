package driven

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
)

// IssueDraft is the payload for creating a remote issue-backed post.
type IssueDraft struct {
	Title  string
	Body   string
	Labels []string
}

// IssuePatch carries partial fields for updating a remote issue.
// Nil fields are left untouched.
type IssuePatch struct {
	Title  *string
	Body   *string
	Labels *[]string
	State  *string
}

// ContentSource is the remote content repository: GitHub issues standing in
// for published posts, issue comments for discussion threads.
//
// Failure policy is deliberately asymmetric. List-style reads feeding a
// page's main listing degrade to an empty result so one transient network
// error does not blank the whole listing; single-item reads and all writes
// surface errors because the caller has a specific action that must report
// success or failure.
type ContentSource interface {
	// IsAuthenticated returns true iff a token is currently held.
	IsAuthenticated() bool

	// GetIssues lists open issues filtered server-side by the given labels,
	// normalised to content items. Degrades to an empty slice on failure.
	GetIssues(ctx context.Context, labels ...string) []domain.ContentItem

	// GetIssue fetches a single issue by number. Errors propagate.
	GetIssue(ctx context.Context, number int) (*domain.ContentItem, error)

	// CreateIssue publishes a new issue. Requires a token; fails with
	// domain.ErrAuthRequired before any network call when unauthenticated.
	CreateIssue(ctx context.Context, draft IssueDraft) (*domain.ContentItem, error)

	// UpdateIssue applies a partial update to an issue. Same authentication
	// requirement and failure modes as CreateIssue.
	UpdateIssue(ctx context.Context, number int, patch IssuePatch) (*domain.ContentItem, error)

	// GetComments lists comments on an issue. Unauthenticated calls are
	// allowed. Degrades to an empty slice on failure.
	GetComments(ctx context.Context, number int) []domain.Comment

	// CreateComment posts a comment on an issue. Requires a token.
	CreateComment(ctx context.Context, number int, body string) (*domain.Comment, error)

	// GetRepoDetails fetches repository metadata for display.
	// Returns nil on failure.
	GetRepoDetails(ctx context.Context) *domain.RepoDetails

	// GetUserDetails fetches profile metadata for display.
	// Returns nil on failure.
	GetUserDetails(ctx context.Context) *domain.UserDetails

	// ValidateCredentials checks the held token with a metadata round-trip.
	ValidateCredentials(ctx context.Context) error
}

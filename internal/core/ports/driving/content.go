package driving

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
)

// ListOptions controls a merged listing request.
type ListOptions struct {
	// Type selects notes or blog posts.
	Type domain.ContentType

	// Query filters items whose title contains it, case-insensitively.
	Query string

	// LocalOnly skips the remote source.
	LocalOnly bool

	// RemoteOnly skips the local draft store.
	RemoteOnly bool
}

// NewDraft is the payload for saving a new local draft.
type NewDraft struct {
	Type  domain.ContentType
	Title string
	Body  string
	Tags  []string
}

// ContentService is the content aggregator: it merges local drafts and
// remote issue-backed posts into a unified year-bucketed view, resolves a
// single selected item by id, and owns the local-first write path.
type ContentService interface {
	// List builds the merged, year-grouped, newest-first listing.
	List(ctx context.Context, opts ListOptions) ([]domain.YearBucket, error)

	// Resolve returns the one item identified by id, dispatching to the
	// correct source. Remote fetch failures and missing local drafts
	// propagate as errors; there is no placeholder fallback.
	Resolve(ctx context.Context, id string, t domain.ContentType) (*domain.ContentItem, error)

	// SaveDraft persists a new local draft and returns it.
	SaveDraft(ctx context.Context, draft NewDraft) (*domain.ContentItem, error)

	// Publish submits an existing local draft as a new remote issue.
	// The local draft is never touched; publishing is an independent,
	// non-transactional second step.
	Publish(ctx context.Context, id string, t domain.ContentType) (*domain.ContentItem, error)

	// Comments lists the discussion thread of a published post.
	Comments(ctx context.Context, issueNumber int) []domain.Comment

	// AddComment posts to the discussion thread of a published post.
	AddComment(ctx context.Context, issueNumber int, body string) (*domain.Comment, error)
}

package driven

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
)

// DraftStore persists local drafts. The store is append-only from the
// service's perspective: no update or delete operation is defined.
// Append must be atomic so concurrent writers cannot lose entries.
type DraftStore interface {
	// Append stores a new draft. Fails with domain.ErrAlreadyExists if the
	// id is taken.
	Append(ctx context.Context, item domain.ContentItem) error

	// List returns all drafts of the given type, newest first.
	List(ctx context.Context, t domain.ContentType) ([]domain.ContentItem, error)

	// Get retrieves a draft by id and type.
	// Fails with domain.ErrNotFound if absent.
	Get(ctx context.Context, id string, t domain.ContentType) (*domain.ContentItem, error)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
	"github.com/inkpost/inkpost/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// ContentService merges two disjoint content sources into one
// year-bucketed, newest-first view and resolves single items by id. It
// owns the merge/sort/filter policy and treats the draft store and the
// remote source as interchangeable read sources behind the normalised
// ContentItem shape.
type ContentService struct {
	drafts driven.DraftStore
	remote driven.ContentSource
	now    func() time.Time
}

// NewContentService creates a content service.
func NewContentService(drafts driven.DraftStore, remote driven.ContentSource) *ContentService {
	return &ContentService{
		drafts: drafts,
		remote: remote,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock. Useful for testing freshness and ids.
func (s *ContentService) WithClock(now func() time.Time) *ContentService {
	s.now = now
	return s
}

// List builds the merged listing. Local and remote reads are issued
// concurrently and joined before the merge; both degrade to empty on
// failure so the listing renders "no posts" instead of an error page.
func (s *ContentService) List(ctx context.Context, opts driving.ListOptions) ([]domain.YearBucket, error) {
	if !opts.Type.IsValid() {
		return nil, fmt.Errorf("content type %q: %w", opts.Type, domain.ErrInvalidInput)
	}

	var (
		wg     sync.WaitGroup
		local  []domain.ContentItem
		remote []domain.ContentItem
	)

	if !opts.LocalOnly && s.remote != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			remote = s.remote.GetIssues(ctx, opts.Type.Label())
		}()
	}

	if !opts.RemoteOnly {
		drafts, err := s.drafts.List(ctx, opts.Type)
		if err != nil {
			logger.Warn("draft store: list: %v", err)
		} else {
			local = drafts
		}
	}

	wg.Wait()

	merged := make([]domain.ContentItem, 0, len(local)+len(remote))
	merged = append(merged, local...)
	merged = append(merged, remote...)
	merged = domain.FilterByTitle(merged, opts.Query)

	return domain.GroupByYear(merged), nil
}

// Resolve returns the one item identified by id. A remote-prefixed id
// triggers exactly one single-issue fetch keyed by its numeric suffix;
// anything else is a local draft lookup. Failures propagate so the caller
// can abandon the selection and surface the error.
func (s *ContentService) Resolve(ctx context.Context, id string, t domain.ContentType) (*domain.ContentItem, error) {
	if number, ok := domain.ParseRemoteID(id); ok {
		item, err := s.remote.GetIssue(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", id, err)
		}
		return item, nil
	}

	item, err := s.drafts.Get(ctx, id, t)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", id, err)
	}
	return item, nil
}

// SaveDraft persists a new local draft with a time-based distinct id.
func (s *ContentService) SaveDraft(ctx context.Context, draft driving.NewDraft) (*domain.ContentItem, error) {
	if draft.Title == "" || draft.Body == "" {
		return nil, fmt.Errorf("title and body are required: %w", domain.ErrInvalidInput)
	}
	if !draft.Type.IsValid() {
		return nil, fmt.Errorf("content type %q: %w", draft.Type, domain.ErrInvalidInput)
	}

	now := s.now()
	item := domain.ContentItem{
		ID:        domain.NewDraftID(now),
		Title:     draft.Title,
		Body:      draft.Body,
		Type:      draft.Type,
		Origin:    domain.OriginLocal,
		Tags:      draft.Tags,
		CreatedAt: now,
	}

	if err := s.drafts.Append(ctx, item); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	logger.Info("saved %s draft %s", item.Type, item.ID)
	return &item, nil
}

// Publish submits an existing local draft as a new remote issue. The local
// draft stays untouched whether or not the remote write succeeds; the two
// writes are deliberately not transactional.
func (s *ContentService) Publish(ctx context.Context, id string, t domain.ContentType) (*domain.ContentItem, error) {
	draft, err := s.drafts.Get(ctx, id, t)
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", id, err)
	}

	labels := append([]string{draft.Type.Label()}, draft.Tags...)
	published, err := s.remote.CreateIssue(ctx, driven.IssueDraft{
		Title:  draft.Title,
		Body:   draft.Body,
		Labels: labels,
	})
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", id, err)
	}

	logger.Info("published draft %s as issue #%d", id, published.IssueNumber)
	return published, nil
}

// Comments lists the discussion thread of a published post.
func (s *ContentService) Comments(ctx context.Context, issueNumber int) []domain.Comment {
	return s.remote.GetComments(ctx, issueNumber)
}

// AddComment posts to the discussion thread of a published post. The
// authentication check happens before any network request.
func (s *ContentService) AddComment(ctx context.Context, issueNumber int, body string) (*domain.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment body is required: %w", domain.ErrInvalidInput)
	}
	if !s.remote.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}
	return s.remote.CreateComment(ctx, issueNumber, body)
}

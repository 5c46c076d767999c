package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
)

// mockDraftStore implements driven.DraftStore in memory.
type mockDraftStore struct {
	items   []domain.ContentItem
	listErr error
}

func (m *mockDraftStore) Append(_ context.Context, item domain.ContentItem) error {
	for _, existing := range m.items {
		if existing.ID == item.ID && existing.Type == item.Type {
			return domain.ErrAlreadyExists
		}
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockDraftStore) List(_ context.Context, t domain.ContentType) ([]domain.ContentItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.ContentItem
	for _, item := range m.items {
		if item.Type == t {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockDraftStore) Get(_ context.Context, id string, t domain.ContentType) (*domain.ContentItem, error) {
	for _, item := range m.items {
		if item.ID == id && item.Type == t {
			found := item
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockContentSource implements driven.ContentSource with canned responses
// and call counters.
type mockContentSource struct {
	authenticated bool

	issues   []domain.ContentItem
	issueErr error
	comments []domain.Comment

	getIssuesCalls     int
	getIssueCalls      int
	getIssueNumbers    []int
	createIssueCalls   int
	createIssueErr     error
	createCommentCalls int
}

func (m *mockContentSource) IsAuthenticated() bool { return m.authenticated }

func (m *mockContentSource) GetIssues(_ context.Context, _ ...string) []domain.ContentItem {
	m.getIssuesCalls++
	return m.issues
}

func (m *mockContentSource) GetIssue(_ context.Context, number int) (*domain.ContentItem, error) {
	m.getIssueCalls++
	m.getIssueNumbers = append(m.getIssueNumbers, number)
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	for _, item := range m.issues {
		if item.IssueNumber == number {
			found := item
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockContentSource) CreateIssue(_ context.Context, draft driven.IssueDraft) (*domain.ContentItem, error) {
	m.createIssueCalls++
	if !m.authenticated {
		return nil, domain.ErrAuthRequired
	}
	if m.createIssueErr != nil {
		return nil, m.createIssueErr
	}
	return &domain.ContentItem{
		ID:          domain.RemoteID(42),
		Title:       draft.Title,
		Body:        draft.Body,
		Type:        domain.ContentTypeBlog,
		Origin:      domain.OriginRemote,
		IssueNumber: 42,
		CreatedAt:   time.Now(),
	}, nil
}

func (m *mockContentSource) UpdateIssue(_ context.Context, _ int, _ driven.IssuePatch) (*domain.ContentItem, error) {
	return nil, domain.ErrNotFound
}

func (m *mockContentSource) GetComments(_ context.Context, _ int) []domain.Comment {
	return m.comments
}

func (m *mockContentSource) CreateComment(_ context.Context, _ int, body string) (*domain.Comment, error) {
	m.createCommentCalls++
	if !m.authenticated {
		return nil, domain.ErrAuthRequired
	}
	return &domain.Comment{ID: "1", Author: "octocat", Body: body, CreatedAt: time.Now()}, nil
}

func (m *mockContentSource) GetRepoDetails(_ context.Context) *domain.RepoDetails { return nil }
func (m *mockContentSource) GetUserDetails(_ context.Context) *domain.UserDetails { return nil }
func (m *mockContentSource) ValidateCredentials(_ context.Context) error          { return nil }

func newTestService(drafts *mockDraftStore, remote *mockContentSource) *ContentService {
	return NewContentService(drafts, remote)
}

func TestContentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("merges local drafts and remote issues into year buckets", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{{
			ID:        "1700000000000",
			Title:     "Hello",
			Type:      domain.ContentTypeBlog,
			Origin:    domain.OriginLocal,
			CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		}}}
		remote := &mockContentSource{issues: []domain.ContentItem{{
			ID:          "github-7",
			Title:       "Remote Post",
			Type:        domain.ContentTypeBlog,
			Origin:      domain.OriginRemote,
			IssueNumber: 7,
			CreatedAt:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		}}}

		buckets, err := newTestService(drafts, remote).List(ctx, driving.ListOptions{Type: domain.ContentTypeBlog})
		require.NoError(t, err)

		require.Len(t, buckets, 2)
		assert.Equal(t, 2025, buckets[0].Year)
		require.Len(t, buckets[0].Items, 1)
		assert.Equal(t, "Remote Post", buckets[0].Items[0].Title)
		assert.Equal(t, 2024, buckets[1].Year)
		require.Len(t, buckets[1].Items, 1)
		assert.Equal(t, "Hello", buckets[1].Items[0].Title)
	})

	t.Run("query filter drops empty year buckets", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{
			{ID: "1", Title: "Go generics", Type: domain.ContentTypeNote, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "2", Title: "Gardening", Type: domain.ContentTypeNote, CreatedAt: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		}}
		remote := &mockContentSource{}

		buckets, err := newTestService(drafts, remote).List(ctx, driving.ListOptions{
			Type:  domain.ContentTypeNote,
			Query: "GENERICS",
		})
		require.NoError(t, err)

		require.Len(t, buckets, 1)
		assert.Equal(t, 2024, buckets[0].Year)
		require.Len(t, buckets[0].Items, 1)
		assert.Equal(t, "Go generics", buckets[0].Items[0].Title)
	})

	t.Run("draft store failure degrades to remote-only listing", func(t *testing.T) {
		drafts := &mockDraftStore{listErr: errors.New("disk gone")}
		remote := &mockContentSource{issues: []domain.ContentItem{{
			ID: "github-3", Title: "Still here", Type: domain.ContentTypeBlog,
			IssueNumber: 3, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}}}

		buckets, err := newTestService(drafts, remote).List(ctx, driving.ListOptions{Type: domain.ContentTypeBlog})
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, "Still here", buckets[0].Items[0].Title)
	})

	t.Run("local-only listing never touches the remote", func(t *testing.T) {
		drafts := &mockDraftStore{}
		remote := &mockContentSource{}

		_, err := newTestService(drafts, remote).List(ctx, driving.ListOptions{
			Type:      domain.ContentTypeNote,
			LocalOnly: true,
		})
		require.NoError(t, err)
		assert.Zero(t, remote.getIssuesCalls)
	})

	t.Run("rejects an unknown content type", func(t *testing.T) {
		_, err := newTestService(&mockDraftStore{}, &mockContentSource{}).List(ctx, driving.ListOptions{Type: "essay"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestContentService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("remote id triggers exactly one single-issue fetch", func(t *testing.T) {
		remote := &mockContentSource{issues: []domain.ContentItem{{
			ID: "github-7", Title: "Remote Post", Type: domain.ContentTypeBlog, IssueNumber: 7,
		}}}
		svc := newTestService(&mockDraftStore{}, remote)

		item, err := svc.Resolve(ctx, "github-7", domain.ContentTypeBlog)
		require.NoError(t, err)
		assert.Equal(t, "Remote Post", item.Title)

		assert.Equal(t, 1, remote.getIssueCalls)
		assert.Equal(t, []int{7}, remote.getIssueNumbers)
		assert.Zero(t, remote.getIssuesCalls, "must never fall back to a full-list fetch")
	})

	t.Run("remote fetch failure propagates", func(t *testing.T) {
		remote := &mockContentSource{issueErr: errors.New("network down")}
		svc := newTestService(&mockDraftStore{}, remote)

		_, err := svc.Resolve(ctx, "github-7", domain.ContentTypeBlog)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network down")
	})

	t.Run("local id resolves from the draft store", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{{
			ID: "1700000000000", Title: "Draft", Type: domain.ContentTypeNote, Origin: domain.OriginLocal,
		}}}
		svc := newTestService(drafts, &mockContentSource{})

		item, err := svc.Resolve(ctx, "1700000000000", domain.ContentTypeNote)
		require.NoError(t, err)
		assert.Equal(t, "Draft", item.Title)
	})

	t.Run("missing local draft is a not-found error, no placeholder", func(t *testing.T) {
		svc := newTestService(&mockDraftStore{}, &mockContentSource{})

		item, err := svc.Resolve(ctx, "1700000000001", domain.ContentTypeNote)
		assert.Nil(t, item)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContentService_SaveDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("persists locally with a time-based id", func(t *testing.T) {
		drafts := &mockDraftStore{}
		now := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
		svc := newTestService(drafts, &mockContentSource{}).WithClock(func() time.Time { return now })

		item, err := svc.SaveDraft(ctx, driving.NewDraft{
			Type:  domain.ContentTypeBlog,
			Title: "Hello",
			Body:  "world",
			Tags:  []string{"go"},
		})
		require.NoError(t, err)

		assert.Equal(t, "1700000000000", item.ID)
		assert.Equal(t, domain.OriginLocal, item.Origin)
		require.Len(t, drafts.items, 1)
		assert.Equal(t, "Hello", drafts.items[0].Title)
	})

	t.Run("missing required fields fail validation before any write", func(t *testing.T) {
		drafts := &mockDraftStore{}
		svc := newTestService(drafts, &mockContentSource{})

		_, err := svc.SaveDraft(ctx, driving.NewDraft{Type: domain.ContentTypeNote, Title: "", Body: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, drafts.items)
	})
}

func TestContentService_Publish(t *testing.T) {
	ctx := context.Background()

	draft := domain.ContentItem{
		ID:        "1700000000000",
		Title:     "Hello",
		Body:      "world",
		Type:      domain.ContentTypeBlog,
		Origin:    domain.OriginLocal,
		Tags:      []string{"go"},
		CreatedAt: time.Now(),
	}

	t.Run("publishes an existing draft as a remote issue", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{draft}}
		remote := &mockContentSource{authenticated: true}
		svc := newTestService(drafts, remote)

		published, err := svc.Publish(ctx, draft.ID, domain.ContentTypeBlog)
		require.NoError(t, err)
		assert.Equal(t, 42, published.IssueNumber)
		assert.Equal(t, 1, remote.createIssueCalls)
	})

	t.Run("publish failure leaves the local draft untouched", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{draft}}
		remote := &mockContentSource{authenticated: true, createIssueErr: errors.New("503")}
		svc := newTestService(drafts, remote)

		_, err := svc.Publish(ctx, draft.ID, domain.ContentTypeBlog)
		require.Error(t, err)

		kept, err := drafts.Get(ctx, draft.ID, domain.ContentTypeBlog)
		require.NoError(t, err)
		assert.Equal(t, "Hello", kept.Title)
	})

	t.Run("unauthenticated publish fails with the auth error", func(t *testing.T) {
		drafts := &mockDraftStore{items: []domain.ContentItem{draft}}
		svc := newTestService(drafts, &mockContentSource{authenticated: false})

		_, err := svc.Publish(ctx, draft.ID, domain.ContentTypeBlog)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}

func TestContentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated comment performs zero network requests", func(t *testing.T) {
		remote := &mockContentSource{authenticated: false}
		svc := newTestService(&mockDraftStore{}, remote)

		_, err := svc.AddComment(ctx, 7, "nice post")
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.Zero(t, remote.createCommentCalls)
	})

	t.Run("authenticated comment is posted", func(t *testing.T) {
		remote := &mockContentSource{authenticated: true}
		svc := newTestService(&mockDraftStore{}, remote)

		comment, err := svc.AddComment(ctx, 7, "nice post")
		require.NoError(t, err)
		assert.Equal(t, "nice post", comment.Body)
		assert.Equal(t, 1, remote.createCommentCalls)
	})

	t.Run("empty body fails validation", func(t *testing.T) {
		remote := &mockContentSource{authenticated: true}
		svc := newTestService(&mockDraftStore{}, remote)

		_, err := svc.AddComment(ctx, 7, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, remote.createCommentCalls)
	})
}

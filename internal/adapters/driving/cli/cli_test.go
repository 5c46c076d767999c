package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driving"
)

// stubContentService is a canned-response content service for command tests.
type stubContentService struct {
	buckets    []domain.YearBucket
	listErr    error
	listOpts   driving.ListOptions
	item       *domain.ContentItem
	resolveErr error
	saved      []driving.NewDraft
	saveErr    error
	publishIDs []string
	publishErr error
	published  *domain.ContentItem
	comments   []domain.Comment
	added      *domain.Comment
	addErr     error
}

var _ driving.ContentService = (*stubContentService)(nil)

func (s *stubContentService) List(_ context.Context, opts driving.ListOptions) ([]domain.YearBucket, error) {
	s.listOpts = opts
	return s.buckets, s.listErr
}

func (s *stubContentService) Resolve(_ context.Context, _ string, _ domain.ContentType) (*domain.ContentItem, error) {
	return s.item, s.resolveErr
}

func (s *stubContentService) SaveDraft(_ context.Context, draft driving.NewDraft) (*domain.ContentItem, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = append(s.saved, draft)
	return &domain.ContentItem{
		ID:    "1736951520000",
		Title: draft.Title,
		Type:  draft.Type,
	}, nil
}

func (s *stubContentService) Publish(_ context.Context, id string, _ domain.ContentType) (*domain.ContentItem, error) {
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	s.publishIDs = append(s.publishIDs, id)
	return s.published, nil
}

func (s *stubContentService) Comments(_ context.Context, _ int) []domain.Comment {
	return s.comments
}

func (s *stubContentService) AddComment(_ context.Context, _ int, _ string) (*domain.Comment, error) {
	return s.added, s.addErr
}

// stubCredentialsService is a canned-response credentials service.
type stubCredentialsService struct {
	creds      domain.Credentials
	setToken   string
	setOwner   string
	setRepo    string
	clearCalls int
}

var _ driving.CredentialsService = (*stubCredentialsService)(nil)

func (s *stubCredentialsService) Current(_ context.Context) (*domain.Credentials, error) {
	creds := s.creds
	creds.ApplyDefaults()
	return &creds, nil
}

func (s *stubCredentialsService) Set(_ context.Context, token, owner, repo string) error {
	s.setToken, s.setOwner, s.setRepo = token, owner, repo
	return nil
}

func (s *stubCredentialsService) ClearToken(_ context.Context) error {
	s.clearCalls++
	s.creds.Token = ""
	return nil
}

func (s *stubCredentialsService) IsAuthenticated(_ context.Context) bool {
	return s.creds.IsAuthenticated()
}

// withStubs installs stub services and restores state afterwards.
func withStubs(t *testing.T, content *stubContentService, creds *stubCredentialsService) {
	t.Helper()
	contentService = content
	credentialsService = creds
	remote = nil
	t.Cleanup(func() {
		contentService = nil
		credentialsService = nil
		remote = nil
		resetFlags()
	})
}

// resetFlags restores flag variables shared across executions.
func resetFlags() {
	listQuery, listLocalOnly, listRemoteOnly, listJSON = "", false, false, false
	showType, showHTML = "note", false
	writeType, writeTitle, writeTags, writeFile, writePublish = "note", "", "", "", false
	publishType = "note"
	commentMessage = ""
	loginToken, loginDevice, loginOwner, loginRepo = "", false, "", ""
}

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithStdin(t, "", args...)
}

// executeWithStdin runs the root command with args and stdin content.
func executeWithStdin(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

package github

import (
	"context"
	"fmt"
	"strconv"

	gh "github.com/google/go-github/v80/github"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/core/ports/driven"
	"github.com/inkpost/inkpost/internal/logger"
)

// GetIssues lists open issues filtered server-side by labels, normalised to
// content items. Pull requests are skipped (they share the issues endpoint).
// Degrades to an empty slice on failure so one transient error does not
// blank the whole listing.
func (c *Client) GetIssues(ctx context.Context, labels ...string) []domain.ContentItem {
	issues, err := c.listIssues(ctx, labels)
	if err != nil {
		logger.Warn("github: list issues: %v", err)
		return []domain.ContentItem{}
	}

	items := make([]domain.ContentItem, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		items = append(items, itemFromIssue(issue))
	}
	return items
}

// listIssues pages through the open issues of the content repository.
func (c *Client) listIssues(ctx context.Context, labels []string) ([]*gh.Issue, error) {
	var allIssues []*gh.Issue

	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		Labels:      labels,
		ListOptions: gh.ListOptions{PerPage: listPageSize},
	}

	for {
		select {
		case <-ctx.Done():
			return allIssues, ctx.Err()
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.creds.Owner, c.creds.Repo, opts)
		if err != nil {
			return nil, c.wrapError(err, "list issues")
		}

		c.updateRateLimitFromResponse(resp)
		allIssues = append(allIssues, issues...)

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return allIssues, nil
}

// GetIssue fetches a single issue by number. Errors propagate: detail views
// and write paths must observe failures distinctly from "no results".
func (c *Client) GetIssue(ctx context.Context, number int) (*domain.ContentItem, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issue, resp, err := c.gh.Issues.Get(ctx, c.creds.Owner, c.creds.Repo, number)
	if err != nil {
		return nil, c.wrapError(err, "get issue")
	}
	c.updateRateLimitFromResponse(resp)

	if issue.IsPullRequest() {
		return nil, fmt.Errorf("issue %d: %w", number, domain.ErrNotFound)
	}

	item := itemFromIssue(issue)
	return &item, nil
}

// CreateIssue publishes a new issue-backed post.
func (c *Client) CreateIssue(ctx context.Context, draft driven.IssueDraft) (*domain.ContentItem, error) {
	if !c.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := &gh.IssueRequest{
		Title:  gh.Ptr(draft.Title),
		Body:   gh.Ptr(draft.Body),
		Labels: &draft.Labels,
	}
	issue, resp, err := c.gh.Issues.Create(ctx, c.creds.Owner, c.creds.Repo, req)
	if err != nil {
		return nil, c.wrapError(err, "create issue")
	}
	c.updateRateLimitFromResponse(resp)

	item := itemFromIssue(issue)
	return &item, nil
}

// UpdateIssue applies a partial update to an existing issue.
func (c *Client) UpdateIssue(ctx context.Context, number int, patch driven.IssuePatch) (*domain.ContentItem, error) {
	if !c.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := &gh.IssueRequest{
		Title:  patch.Title,
		Body:   patch.Body,
		Labels: patch.Labels,
		State:  patch.State,
	}
	issue, resp, err := c.gh.Issues.Edit(ctx, c.creds.Owner, c.creds.Repo, number, req)
	if err != nil {
		return nil, c.wrapError(err, "update issue")
	}
	c.updateRateLimitFromResponse(resp)

	item := itemFromIssue(issue)
	return &item, nil
}

// itemFromIssue normalises a GitHub issue into a content item. The
// note/blog label becomes the content type (blog when neither is present);
// remaining labels become tags.
func itemFromIssue(issue *gh.Issue) domain.ContentItem {
	contentType := domain.ContentTypeBlog
	var tags []string
	for _, l := range issue.Labels {
		name := l.GetName()
		switch domain.ContentType(name) {
		case domain.ContentTypeNote, domain.ContentTypeBlog:
			contentType = domain.ContentType(name)
		default:
			tags = append(tags, name)
		}
	}

	return domain.ContentItem{
		ID:          domain.RemoteID(issue.GetNumber()),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		Type:        contentType,
		Origin:      domain.OriginRemote,
		Tags:        tags,
		CreatedAt:   issue.GetCreatedAt().Time,
		IssueNumber: issue.GetNumber(),
	}
}

// commentFromIssueComment normalises a GitHub issue comment.
func commentFromIssueComment(comment *gh.IssueComment) domain.Comment {
	return domain.Comment{
		ID:           strconv.FormatInt(comment.GetID(), 10),
		Author:       comment.GetUser().GetLogin(),
		AuthorAvatar: comment.GetUser().GetAvatarURL(),
		Body:         comment.GetBody(),
		CreatedAt:    comment.GetCreatedAt().Time,
	}
}

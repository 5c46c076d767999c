package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/logger"
)

// GetComments lists all comments on an issue, oldest first. Unauthenticated
// calls are allowed, subject to the anonymous rate limit. Degrades to an
// empty slice on failure.
func (c *Client) GetComments(ctx context.Context, number int) []domain.Comment {
	var all []*gh.IssueComment

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: listPageSize},
	}

	for {
		select {
		case <-ctx.Done():
			logger.Warn("github: list comments: %v", ctx.Err())
			return []domain.Comment{}
		default:
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			logger.Warn("github: list comments: %v", err)
			return []domain.Comment{}
		}

		comments, resp, err := c.gh.Issues.ListComments(ctx, c.creds.Owner, c.creds.Repo, number, opts)
		if err != nil {
			logger.Warn("github: list comments: %v", c.wrapError(err, "list comments"))
			return []domain.Comment{}
		}

		c.updateRateLimitFromResponse(resp)
		all = append(all, comments...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	result := make([]domain.Comment, 0, len(all))
	for _, comment := range all {
		result = append(result, commentFromIssueComment(comment))
	}
	return result
}

// CreateComment posts a comment on an issue. Requires a token; fails with
// domain.ErrAuthRequired before any network call when unauthenticated.
func (c *Client) CreateComment(ctx context.Context, number int, body string) (*domain.Comment, error) {
	if !c.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	comment, resp, err := c.gh.Issues.CreateComment(ctx, c.creds.Owner, c.creds.Repo, number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return nil, c.wrapError(err, "create comment")
	}
	c.updateRateLimitFromResponse(resp)

	normalised := commentFromIssueComment(comment)
	return &normalised, nil
}

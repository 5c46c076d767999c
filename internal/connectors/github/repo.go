package github

import (
	"context"

	"github.com/inkpost/inkpost/internal/core/domain"
	"github.com/inkpost/inkpost/internal/logger"
)

// GetRepoDetails fetches display metadata for the content repository.
// Returns nil on failure; the caller renders an absent card, not an error.
func (c *Client) GetRepoDetails(ctx context.Context) *domain.RepoDetails {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		logger.Warn("github: get repo details: %v", err)
		return nil
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, c.creds.Owner, c.creds.Repo)
	if err != nil {
		logger.Warn("github: get repo details: %v", c.wrapError(err, "get repo"))
		return nil
	}
	c.updateRateLimitFromResponse(resp)

	return &domain.RepoDetails{
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		HTMLURL:     repo.GetHTMLURL(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Watchers:    repo.GetSubscribersCount(),
	}
}

// GetUserDetails fetches display metadata for the site owner's profile.
// The authenticated user is preferred when a token is held; otherwise the
// configured owner's public profile is fetched. Returns nil on failure.
func (c *Client) GetUserDetails(ctx context.Context) *domain.UserDetails {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		logger.Warn("github: get user details: %v", err)
		return nil
	}

	login := c.creds.Owner
	if c.IsAuthenticated() {
		login = ""
	}

	user, resp, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		logger.Warn("github: get user details: %v", c.wrapError(err, "get user"))
		return nil
	}
	c.updateRateLimitFromResponse(resp)

	return &domain.UserDetails{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		HTMLURL:     user.GetHTMLURL(),
		Bio:         user.GetBio(),
		Followers:   user.GetFollowers(),
		PublicRepos: user.GetPublicRepos(),
	}
}

// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
	"github.com/ericfisherdev/starterhub/internal/domain/port/driven"
)

const userAgent = "starterhub/1.0"

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching, backed by cache)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client, bearer auth when token is set)
//
// A nil cache selects an in-memory cache. timeout bounds every request;
// zero means no client-side timeout.
func NewClient(token string, cache httpcache.Cache, timeout time.Duration) *Client {
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}
	cacheTransport := httpcache.NewTransport(cache)
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = timeout

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	client.UserAgent = userAgent

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u
	client.UserAgent = userAgent

	return &Client{gh: client}, nil
}

// ListOrgRepositories retrieves all repositories of org.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) ListOrgRepositories(ctx context.Context, org string) ([]model.Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		Type: "public",
		Sort: "full_name",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var allRepos []model.Repository

	for {
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("listing repositories for %s (page %d): %w", org, opts.Page, err)
		}

		logRateLimit(resp, "orgs/"+org+"/repos", opts.Page, len(repos))

		for _, r := range repos {
			allRepos = append(allRepos, mapRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allRepos == nil {
		allRepos = []model.Repository{}
	}

	return allRepos, nil
}

// FetchFileContent returns the undecoded content of path in org/repo.
// Returns driven.ErrFileNotFound on 404 or when path names a directory.
func (c *Client) FetchFileContent(ctx context.Context, org, repo, path string) (*model.FileContent, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, org, repo, path, nil)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, fmt.Errorf("%s/%s/%s: %w", org, repo, path, driven.ErrFileNotFound)
		}
		return nil, fmt.Errorf("fetching %s from %s/%s: %w", path, org, repo, err)
	}

	logRateLimit(resp, org+"/"+repo+"/contents", 0, 1)

	if file == nil {
		return nil, fmt.Errorf("%s/%s/%s is a directory: %w", org, repo, path, driven.ErrFileNotFound)
	}

	return mapFileContent(file), nil
}

// FetchReadme returns the undecoded content of the repository's README.
// Returns driven.ErrFileNotFound on 404.
func (c *Client) FetchReadme(ctx context.Context, org, repo string) (*model.FileContent, error) {
	file, resp, err := c.gh.Repositories.GetReadme(ctx, org, repo, nil)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, fmt.Errorf("readme of %s/%s: %w", org, repo, driven.ErrFileNotFound)
		}
		return nil, fmt.Errorf("fetching readme of %s/%s: %w", org, repo, err)
	}

	logRateLimit(resp, org+"/"+repo+"/readme", 0, 1)

	return mapFileContent(file), nil
}

// isNotFound reports whether a failed call ended in a 404.
func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	// Unauthenticated clients only get 60 requests per hour.
	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapRepository converts a go-github Repository to a domain model Repository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) model.Repository {
	topics := make([]string, 0, len(r.Topics))
	topics = append(topics, r.Topics...)

	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Owner:       r.GetOwner().GetLogin(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		CloneURL:    r.GetCloneURL(),
		Language:    r.GetLanguage(),
		Topics:      topics,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		PushedAt:    r.GetPushedAt().Time,
		Private:     r.GetPrivate(),
		Visibility:  r.GetVisibility(),
	}
}

// mapFileContent keeps the payload encoded; decoding is the caller's concern.
func mapFileContent(f *gh.RepositoryContent) *model.FileContent {
	var content string
	if f.Content != nil {
		content = *f.Content
	}

	return &model.FileContent{
		Path:     f.GetPath(),
		Content:  content,
		Encoding: f.GetEncoding(),
	}
}

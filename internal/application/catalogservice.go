// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
	"github.com/ericfisherdev/starterhub/internal/domain/port/driven"
)

const listingCacheKey = "starters"

// CatalogOptions configures a CatalogService.
type CatalogOptions struct {
	Org          string
	TemplateRepo string        // Excluded from the listing by exact name match.
	ConfigPath   string        // Repository-relative path of the config file.
	Concurrency  int           // Maximum concurrent config fetches; <= 0 means unbounded.
	ListingTTL   time.Duration // How long a built listing is reused; <= 0 disables caching.
}

// CatalogService builds the starter listing from the GitHub organization and
// resolves single-starter lookups against it.
type CatalogService struct {
	ghClient driven.GitHubClient
	opts     CatalogOptions
	cache    *gocache.Cache
	group    singleflight.Group
}

// NewCatalogService creates a CatalogService. The listing cache exists only
// when opts.ListingTTL is positive.
func NewCatalogService(ghClient driven.GitHubClient, opts CatalogOptions) *CatalogService {
	s := &CatalogService{
		ghClient: ghClient,
		opts:     opts,
	}
	if opts.ListingTTL > 0 {
		s.cache = gocache.New(opts.ListingTTL, 2*opts.ListingTTL)
	}
	return s
}

// Org returns the organization this catalog lists.
func (s *CatalogService) Org() string {
	return s.opts.Org
}

// ListStarters returns the starter listing, reusing a cached copy while it
// is fresh. Upstream failures degrade to an empty listing, which is never
// cached.
func (s *CatalogService) ListStarters(ctx context.Context) ([]model.Starter, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(listingCacheKey); ok {
			return v.([]model.Starter), nil
		}
	}

	// The shared build is detached from the caller's cancellation.
	buildCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(listingCacheKey, func() (any, error) {
		starters, err := s.buildListing(buildCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && len(starters) > 0 {
			s.cache.SetDefault(listingCacheKey, starters)
		}
		return starters, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]model.Starter), nil
	}
}

// Refresh discards any cached listing and rebuilds it.
func (s *CatalogService) Refresh(ctx context.Context) ([]model.Starter, error) {
	if s.cache != nil {
		s.cache.Delete(listingCacheKey)
	}
	return s.ListStarters(ctx)
}

// GetStarter returns the listed starter whose name equals slug.
// Returns driven.ErrStarterNotFound when there is none.
func (s *CatalogService) GetStarter(ctx context.Context, slug string) (*model.Starter, error) {
	starters, err := s.ListStarters(ctx)
	if err != nil {
		return nil, err
	}

	for i := range starters {
		if starters[i].Name == slug {
			starter := starters[i]
			return &starter, nil
		}
	}

	return nil, fmt.Errorf("get starter %s: %w", slug, driven.ErrStarterNotFound)
}

// GetReadme returns the decoded README text of the listed starter named slug.
// Returns driven.ErrStarterNotFound when slug is not in the listing and
// driven.ErrReadmeNotFound when the repository has no README.
func (s *CatalogService) GetReadme(ctx context.Context, slug string) (string, error) {
	if _, err := s.GetStarter(ctx, slug); err != nil {
		return "", err
	}

	fc, err := s.ghClient.FetchReadme(ctx, s.opts.Org, slug)
	if errors.Is(err, driven.ErrFileNotFound) || (err == nil && fc == nil) {
		return "", fmt.Errorf("readme for %s: %w", slug, driven.ErrReadmeNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("fetch readme for %s: %w", slug, err)
	}

	text, err := DecodeFileContent(*fc)
	if err != nil {
		return "", fmt.Errorf("decode readme for %s: %w", slug, err)
	}

	return text, nil
}

// buildListing runs one full fetch cycle: list, fan out config lookups,
// join, transform.
func (s *CatalogService) buildListing(ctx context.Context) ([]model.Starter, error) {
	start := time.Now()

	repos := s.fetchRepositories(ctx)
	if len(repos) == 0 {
		return []model.Starter{}, nil
	}

	// Each task owns exactly one slot of results.
	results := make([]model.RepoWithConfig, len(repos))

	var g errgroup.Group
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}

	for i, repo := range repos {
		g.Go(func() error {
			cfg, status := s.fetchConfig(ctx, repo.Name)
			results[i] = model.RepoWithConfig{Repo: repo, Config: cfg, Status: status}
			return nil
		})
	}

	// Tasks never fail; per-repository problems are folded into a status.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[model.ConfigStatus]int, 4)
	for _, r := range results {
		counts[r.Status]++
	}

	slog.Info("catalog listing built",
		"org", s.opts.Org,
		"repos", len(results),
		"configs_loaded", counts[model.ConfigLoaded],
		"configs_missing", counts[model.ConfigMissing],
		"configs_unavailable", counts[model.ConfigUnavailable],
		"configs_invalid", counts[model.ConfigInvalid],
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return TransformStarters(results), nil
}

// fetchRepositories lists the organization and drops the template repository
// and anything not public. Any failure yields an empty slice.
func (s *CatalogService) fetchRepositories(ctx context.Context) []model.Repository {
	all, err := s.ghClient.ListOrgRepositories(ctx, s.opts.Org)
	if err != nil {
		slog.Error("failed to list organization repositories", "org", s.opts.Org, "error", err)
		return []model.Repository{}
	}

	repos := make([]model.Repository, 0, len(all))
	for _, repo := range all {
		if repo.Name == "" || repo.Name == s.opts.TemplateRepo {
			continue
		}
		if !repo.IsPublic() {
			slog.Debug("skipping non-public repository", "repo", repo.Name, "visibility", repo.Visibility)
			continue
		}
		repos = append(repos, repo)
	}

	slog.Debug("organization repositories listed", "org", s.opts.Org, "fetched", len(all), "kept", len(repos))
	return repos
}

// fetchConfig looks up and parses one repository's config file. Every
// failure is logged and reported as a status with a nil config.
func (s *CatalogService) fetchConfig(ctx context.Context, repo string) (*model.RepoConfig, model.ConfigStatus) {
	fc, err := s.ghClient.FetchFileContent(ctx, s.opts.Org, repo, s.opts.ConfigPath)
	if errors.Is(err, driven.ErrFileNotFound) || (err == nil && fc == nil) {
		slog.Debug("no config file, using defaults", "repo", repo, "path", s.opts.ConfigPath)
		return nil, model.ConfigMissing
	}
	if err != nil {
		slog.Warn("config fetch failed, using defaults", "repo", repo, "error", err)
		return nil, model.ConfigUnavailable
	}

	cfg, err := ParseRepoConfig(*fc)
	if err != nil {
		slog.Warn("config parse failed, using defaults", "repo", repo, "error", err)
		return nil, model.ConfigInvalid
	}

	return cfg, model.ConfigLoaded
}

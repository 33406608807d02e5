package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

// ErrFileNotFound indicates the requested file does not exist in the repository.
var ErrFileNotFound = errors.New("file not found")

// GitHubClient defines the driven port for read-only access to the GitHub API.
type GitHubClient interface {
	// ListOrgRepositories returns every repository of org visible to the
	// client's credential. Filtering is left to the caller.
	ListOrgRepositories(ctx context.Context, org string) ([]model.Repository, error)

	// FetchFileContent returns the raw (still encoded) payload of path.
	// Returns ErrFileNotFound when the file or repository does not exist.
	FetchFileContent(ctx context.Context, org, repo, path string) (*model.FileContent, error)

	// FetchReadme returns the raw payload of the repository's preferred README.
	// Returns ErrFileNotFound when the repository has no README.
	FetchReadme(ctx context.Context, org, repo string) (*model.FileContent, error)
}

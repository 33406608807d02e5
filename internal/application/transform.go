package application

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

// TransformStarters merges each repository with its optional configuration
// into a display record. Output order follows input order. For every
// overlapping field a non-empty config value wins over a non-empty
// repository value, which wins over the fixed fallback.
func TransformStarters(items []model.RepoWithConfig) []model.Starter {
	starters := make([]model.Starter, 0, len(items))
	for _, item := range items {
		starters = append(starters, transformStarter(item.Repo, item.Config))
	}
	return starters
}

func transformStarter(repo model.Repository, cfg *model.RepoConfig) model.Starter {
	var meta model.ConfigMeta
	var links model.ConfigLinks
	var tags []string
	var deployment *model.Deployment
	if cfg != nil {
		if cfg.Meta != nil {
			meta = *cfg.Meta
		}
		if cfg.Links != nil {
			links = *cfg.Links
		}
		tags = cfg.Tags
		deployment = cfg.Deployment
	}

	return model.Starter{
		ID:          repo.ID,
		Name:        repo.Name,
		Title:       firstNonEmpty(meta.Title, FormatRepoName(repo.Name)),
		Description: firstNonEmpty(meta.Description, repo.Description, model.FallbackDescription),
		Language:    firstNonEmpty(meta.Language, repo.Language, model.FallbackLanguage),
		Framework:   meta.Framework,
		Category:    meta.UseCase,
		Tags:        mergeTags(tags, repo.Topics),
		Links: model.StarterLinks{
			GitHub: githubURL(repo),
			Docs:   links.Docs,
			Demo:   links.Demo,
			Video:  links.Video,
		},
		Stats: model.StarterStats{
			Stars:       repo.Stars,
			Forks:       repo.Forks,
			LastUpdated: repo.UpdatedAt,
		},
		Deployment: deployment,
		Config:     cfg,
	}
}

// FormatRepoName derives a display title from a slug: split on hyphens,
// upper-case the first character of each segment, join with spaces.
// "node-live-transcription" becomes "Node Live Transcription".
func FormatRepoName(name string) string {
	segments := strings.Split(name, "-")
	for i, seg := range segments {
		r, size := utf8.DecodeRuneInString(seg)
		if r == utf8.RuneError {
			continue
		}
		segments[i] = string(unicode.ToUpper(r)) + seg[size:]
	}
	return strings.Join(segments, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// mergeTags returns a copy of the config tags when present, else of the topics.
// The result is never nil.
func mergeTags(configTags, topics []string) []string {
	src := configTags
	if len(src) == 0 {
		src = topics
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func githubURL(repo model.Repository) string {
	if repo.HTMLURL != "" {
		return repo.HTMLURL
	}
	fullName := repo.FullName
	if fullName == "" {
		fullName = repo.Owner + "/" + repo.Name
	}
	return "https://github.com/" + fullName
}

package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/starterhub/internal/application"
	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

func nodeLiveTranscription() model.Repository {
	return model.Repository{
		ID:          101,
		Name:        "node-live-transcription",
		FullName:    "acme/node-live-transcription",
		Owner:       "acme",
		Description: "Live transcription demo",
		HTMLURL:     "https://github.com/acme/node-live-transcription",
		Language:    "JavaScript",
		Topics:      nil,
		Stars:       42,
		Forks:       7,
		UpdatedAt:   time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Visibility:  "public",
	}
}

func transformOne(t *testing.T, repo model.Repository, cfg *model.RepoConfig) model.Starter {
	t.Helper()
	starters := application.TransformStarters([]model.RepoWithConfig{{Repo: repo, Config: cfg}})
	require.Len(t, starters, 1)
	return starters[0]
}

func TestTransformStarters_NoConfig(t *testing.T) {
	s := transformOne(t, nodeLiveTranscription(), nil)

	assert.Equal(t, int64(101), s.ID)
	assert.Equal(t, "node-live-transcription", s.Name)
	assert.Equal(t, "Node Live Transcription", s.Title)
	assert.Equal(t, "Live transcription demo", s.Description)
	assert.Equal(t, "JavaScript", s.Language)
	assert.Equal(t, "", s.Framework)
	assert.Equal(t, "", s.Category)
	assert.Equal(t, "", s.Vertical)
	assert.Equal(t, []string{}, s.Tags)
	assert.Equal(t, "https://github.com/acme/node-live-transcription", s.Links.GitHub)
	assert.Equal(t, "", s.Links.Docs)
	assert.Equal(t, 42, s.Stats.Stars)
	assert.Equal(t, 7, s.Stats.Forks)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), s.Stats.LastUpdated)
	assert.Nil(t, s.Config)
	assert.Nil(t, s.Deployment)
}

func TestTransformStarters_ConfigTitleAndFramework(t *testing.T) {
	cfg := &model.RepoConfig{
		Meta: &model.ConfigMeta{Title: "Node Transcriber", Framework: "Express"},
	}

	s := transformOne(t, nodeLiveTranscription(), cfg)

	assert.Equal(t, "Node Transcriber", s.Title)
	assert.Equal(t, "Live transcription demo", s.Description, "falls back to raw description")
	assert.Equal(t, "JavaScript", s.Language)
	assert.Equal(t, "Express", s.Framework)
	assert.Same(t, cfg, s.Config)
}

func TestTransformStarters_ConfigWinsEverywhere(t *testing.T) {
	repo := nodeLiveTranscription()
	repo.Topics = []string{"topic-a"}
	cfg := &model.RepoConfig{
		Meta: &model.ConfigMeta{
			Title:       "Configured",
			Description: "Configured description",
			Language:    "TypeScript",
			Framework:   "Next.js",
			UseCase:     "Speech-to-Text",
		},
		Links:      &model.ConfigLinks{Docs: "https://docs", Demo: "https://demo", Video: "https://video"},
		Tags:       []string{"ai", "speech"},
		Deployment: &model.Deployment{Platforms: []string{"vercel"}},
	}

	s := transformOne(t, repo, cfg)

	assert.Equal(t, "Configured", s.Title)
	assert.Equal(t, "Configured description", s.Description)
	assert.Equal(t, "TypeScript", s.Language)
	assert.Equal(t, "Next.js", s.Framework)
	assert.Equal(t, "Speech-to-Text", s.Category)
	assert.Equal(t, "", s.Vertical)
	assert.Equal(t, []string{"ai", "speech"}, s.Tags)
	assert.Equal(t, "https://docs", s.Links.Docs)
	assert.Equal(t, "https://demo", s.Links.Demo)
	assert.Equal(t, "https://video", s.Links.Video)
	assert.Equal(t, "https://github.com/acme/node-live-transcription", s.Links.GitHub)
	assert.Equal(t, []string{"vercel"}, s.Deployment.Platforms)
}

func TestTransformStarters_EmptyConfigStringsFallThrough(t *testing.T) {
	cfg := &model.RepoConfig{
		Meta: &model.ConfigMeta{Title: "", Description: "", Language: ""},
		Tags: []string{},
	}
	repo := nodeLiveTranscription()
	repo.Topics = []string{"stt"}

	s := transformOne(t, repo, cfg)

	assert.Equal(t, "Node Live Transcription", s.Title)
	assert.Equal(t, "Live transcription demo", s.Description)
	assert.Equal(t, "JavaScript", s.Language)
	assert.Equal(t, []string{"stt"}, s.Tags)
}

func TestTransformStarters_FixedFallbacks(t *testing.T) {
	repo := model.Repository{ID: 5, Name: "bare", FullName: "acme/bare"}

	s := transformOne(t, repo, &model.RepoConfig{})

	assert.Equal(t, "Bare", s.Title)
	assert.Equal(t, model.FallbackDescription, s.Description)
	assert.Equal(t, model.FallbackLanguage, s.Language)
	assert.Equal(t, []string{}, s.Tags)
	assert.Equal(t, "https://github.com/acme/bare", s.Links.GitHub, "github link is derived when missing")
}

func TestTransformStarters_DerivedLinkWithoutFullName(t *testing.T) {
	repo := model.Repository{Name: "bare", Owner: "acme"}

	s := transformOne(t, repo, nil)

	assert.Equal(t, "https://github.com/acme/bare", s.Links.GitHub)
}

func TestTransformStarters_TagsAreCopied(t *testing.T) {
	repo := nodeLiveTranscription()
	repo.Topics = []string{"stt"}

	s := transformOne(t, repo, nil)
	s.Tags[0] = "mutated"

	assert.Equal(t, []string{"stt"}, repo.Topics)
}

func TestTransformStarters_PreservesOrderAndIsDeterministic(t *testing.T) {
	items := []model.RepoWithConfig{
		{Repo: model.Repository{ID: 3, Name: "c-repo", HTMLURL: "https://github.com/acme/c-repo"}},
		{Repo: model.Repository{ID: 1, Name: "a-repo", HTMLURL: "https://github.com/acme/a-repo"}},
		{Repo: model.Repository{ID: 2, Name: "b-repo", HTMLURL: "https://github.com/acme/b-repo"}},
	}

	first := application.TransformStarters(items)
	second := application.TransformStarters(items)

	require.Len(t, first, 3)
	assert.Equal(t, "c-repo", first[0].Name)
	assert.Equal(t, "a-repo", first[1].Name)
	assert.Equal(t, "b-repo", first[2].Name)
	assert.Equal(t, first, second)
}

func TestTransformStarters_EmptyInput(t *testing.T) {
	starters := application.TransformStarters(nil)

	assert.NotNil(t, starters)
	assert.Empty(t, starters)
}

func TestFormatRepoName(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want string
	}{
		{name: "hyphenated", slug: "node-live-transcription", want: "Node Live Transcription"},
		{name: "single word", slug: "starter", want: "Starter"},
		{name: "keeps remaining case", slug: "python-fastAPI-demo", want: "Python FastAPI Demo"},
		{name: "digits", slug: "go-1-demo", want: "Go 1 Demo"},
		{name: "empty segment", slug: "a--b", want: "A  B"},
		{name: "non-ascii", slug: "été-demo", want: "Été Demo"},
		{name: "empty", slug: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.FormatRepoName(tt.slug))
		})
	}
}

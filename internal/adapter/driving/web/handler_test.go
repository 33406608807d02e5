package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
	"github.com/ericfisherdev/starterhub/internal/domain/port/driven"
)

type stubCatalog struct {
	starters     []model.Starter
	listErr      error
	readme       string
	readmeErr    error
	refreshCalls int
}

func (s *stubCatalog) ListStarters(_ context.Context) ([]model.Starter, error) {
	return s.starters, s.listErr
}

func (s *stubCatalog) Refresh(_ context.Context) ([]model.Starter, error) {
	s.refreshCalls++
	return s.starters, s.listErr
}

func (s *stubCatalog) GetStarter(_ context.Context, slug string) (*model.Starter, error) {
	for _, st := range s.starters {
		if st.Name == slug {
			return &st, nil
		}
	}
	return nil, fmt.Errorf("starter %q: %w", slug, driven.ErrStarterNotFound)
}

func (s *stubCatalog) GetReadme(_ context.Context, _ string) (string, error) {
	return s.readme, s.readmeErr
}

func galleryStarters() []model.Starter {
	return []model.Starter{
		{
			ID:          1,
			Name:        "node-live-transcription",
			Title:       "Node Live Transcription",
			Description: "Streams <audio> to text",
			Language:    "JavaScript",
			Framework:   "Express",
			Category:    "Speech-to-Text",
			Tags:        []string{"websocket"},
			Links:       model.StarterLinks{GitHub: "https://github.com/acme/node-live-transcription"},
			Stats:       model.StarterStats{Stars: 3, LastUpdated: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
			Config: &model.RepoConfig{
				Author:       &model.ConfigAuthor{Name: "Zoë"},
				Build:        &model.ConfigBuild{Command: "npm install"},
				Requirements: &model.ConfigRequirements{Node: ">=18"},
			},
		},
		{
			ID:          2,
			Name:        "python-tts",
			Title:       "Python TTS",
			Description: model.FallbackDescription,
			Language:    "Python",
			Tags:        []string{},
			Links:       model.StarterLinks{GitHub: "https://github.com/acme/python-tts"},
		},
	}
}

func setupWeb(catalog *stubCatalog) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewHandler(catalog, "acme", slog.Default()))
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGallery_RendersCards(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{starters: galleryStarters()}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Node Live Transcription")
	assert.Contains(t, body, "Python TTS")
	assert.Contains(t, body, `href="/starters/node-live-transcription"`)
	assert.Contains(t, body, "Streams &lt;audio&gt; to text")
	assert.NotContains(t, body, "<audio>")
	assert.Contains(t, body, "Showing 2 of 2 starters")
	assert.Contains(t, body, `name="language" value="Python"`)
	assert.Contains(t, body, `name="csrf_token"`)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestGallery_AppliesFilters(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{starters: galleryStarters()}), "/?language=python")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Showing 1 of 2 starters")
	assert.Contains(t, body, `value="Python" checked`)
	assert.NotContains(t, body, `href="/starters/node-live-transcription"`)
}

func TestGallery_NoMatches(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{starters: galleryStarters()}), "/?search=rust")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No starters match the current filters.")
}

func TestGallery_EmptyCatalog(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{}), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No starter repositories found.")
}

func TestGallery_CatalogError(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{listErr: errors.New("boom")}), "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStarterDetail_RendersReadme(t *testing.T) {
	catalog := &stubCatalog{starters: galleryStarters(), readme: "# Setup\n\n<script>alert(1)</script>\n\nRun **it**."}
	rec := get(setupWeb(catalog), "/starters/node-live-transcription")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Node Live Transcription | Starter Apps</title>")
	assert.Contains(t, body, "<strong>it</strong>")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Zoë")
	assert.Contains(t, body, "npm install")
	assert.Contains(t, body, "&gt;=18")
}

func TestStarterDetail_ReadmeMissing(t *testing.T) {
	catalog := &stubCatalog{
		starters:  galleryStarters(),
		readmeErr: fmt.Errorf("python-tts: %w", driven.ErrReadmeNotFound),
	}
	rec := get(setupWeb(catalog), "/starters/python-tts")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This starter has no README.")
}

func TestStarterDetail_ReadmeFailureDegrades(t *testing.T) {
	catalog := &stubCatalog{starters: galleryStarters(), readmeErr: errors.New("timeout")}
	rec := get(setupWeb(catalog), "/starters/python-tts")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be loaded")
}

func TestStarterDetail_NotFound(t *testing.T) {
	mux := setupWeb(&stubCatalog{starters: galleryStarters()})

	for _, path := range []string{"/starters/missing", "/starters/bad%20name"} {
		rec := get(mux, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "That starter does not exist.", path)
	}
}

func TestRefresh_RequiresCSRF(t *testing.T) {
	catalog := &stubCatalog{starters: galleryStarters()}
	mux := setupWeb(catalog)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, catalog.refreshCalls)
}

func TestRefresh_WithToken(t *testing.T) {
	catalog := &stubCatalog{starters: galleryStarters()}
	mux := setupWeb(catalog)

	form := url.Values{csrfFormField: {"token-123"}}
	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "token-123"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, catalog.refreshCalls)
}

func TestStaticAssets(t *testing.T) {
	rec := get(setupWeb(&stubCatalog{}), "/static/style.css")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".card")
}

func TestToStarterDetailViewModel_FallsBackToMetaAuthor(t *testing.T) {
	s := model.Starter{
		Name:   "alpha",
		Config: &model.RepoConfig{Meta: &model.ConfigMeta{Author: "Meta Author"}},
		Deployment: &model.Deployment{
			Platforms:    []string{"fly.io"},
			Requirements: []string{"DEEPGRAM_API_KEY"},
		},
	}

	d := toStarterDetailViewModel(s, "<p>ignored</p>", readmeMissing)

	assert.Equal(t, "Meta Author", d.Author)
	assert.Equal(t, []string{"fly.io"}, d.Platforms)
	assert.Equal(t, []string{"DEEPGRAM_API_KEY"}, d.DeployRequirements)
	assert.True(t, d.ReadmeMissing)
	assert.Empty(t, d.ReadmeHTML)
	assert.Equal(t, "/starters/alpha", d.DetailPath)
}

package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/starterhub/internal/application"
	"github.com/ericfisherdev/starterhub/internal/domain/model"
	"github.com/ericfisherdev/starterhub/internal/domain/port/driven"
)

// StarterCatalog is the subset of the catalog service the JSON API needs.
type StarterCatalog interface {
	ListStarters(ctx context.Context) ([]model.Starter, error)
	Refresh(ctx context.Context) ([]model.Starter, error)
	GetStarter(ctx context.Context, slug string) (*model.Starter, error)
	GetReadme(ctx context.Context, slug string) (string, error)
}

// MarkdownRenderer converts README markdown into sanitized HTML. Relative
// links resolve against repoURL when it is non-empty.
type MarkdownRenderer func(src, repoURL string) string

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	catalog      StarterCatalog
	render       MarkdownRenderer
	cacheControl string
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. A nil render
// leaves the html field of README responses empty.
func NewHandler(
	catalog StarterCatalog,
	render MarkdownRenderer,
	maxAge, staleWhileRevalidate time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:      catalog,
		render:       render,
		cacheControl: CacheControlValue(maxAge, staleWhileRevalidate),
		logger:       logger,
	}
}

// RegisterRoutes registers the JSON API routes on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/starters", h.ListStarters)
	mux.HandleFunc("GET /api/starters/{slug}", h.GetStarter)
	mux.HandleFunc("GET /api/starters/{slug}/readme", h.GetReadme)
	mux.HandleFunc("GET /api/filters", h.FilterOptions)
	mux.HandleFunc("POST /api/refresh", h.Refresh)
	mux.HandleFunc("GET /api/health", h.Health)
}

// NewServeMux creates an http.Handler with the JSON API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return Wrap(mux, logger)
}

// Wrap applies the standard middleware chain to next.
func Wrap(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListStarters returns the starter listing, narrowed by any filter query
// parameters. An empty upstream listing is reported as 404.
func (h *Handler) ListStarters(w http.ResponseWriter, r *http.Request) {
	starters, err := h.catalog.ListStarters(r.Context())
	if err != nil {
		h.logger.Error("failed to list starters", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(starters) == 0 {
		writeError(w, http.StatusNotFound, "No starter repositories found")
		return
	}

	filtered := application.FilterStarters(starters, ParseFilter(r))

	resp := make([]StarterResponse, 0, len(filtered))
	for _, s := range filtered {
		resp = append(resp, toStarterResponse(s))
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, resp)
}

// GetStarter returns a single starter by repository name.
func (h *Handler) GetStarter(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !IsValidSlug(slug) {
		writeError(w, http.StatusBadRequest, "invalid starter name")
		return
	}

	starter, err := h.catalog.GetStarter(r.Context(), slug)
	if err != nil {
		if errors.Is(err, driven.ErrStarterNotFound) {
			writeError(w, http.StatusNotFound, "starter not found")
			return
		}
		h.logger.Error("failed to get starter", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, toStarterResponse(*starter))
}

// GetReadme returns the decoded README of a starter repository.
func (h *Handler) GetReadme(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !IsValidSlug(slug) {
		writeError(w, http.StatusBadRequest, "invalid starter name")
		return
	}

	content, err := h.catalog.GetReadme(r.Context(), slug)
	if err != nil {
		if errors.Is(err, driven.ErrStarterNotFound) {
			writeError(w, http.StatusNotFound, "starter not found")
			return
		}
		if errors.Is(err, driven.ErrReadmeNotFound) {
			writeError(w, http.StatusNotFound, "README not found")
			return
		}
		h.logger.Error("failed to fetch readme", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch README")
		return
	}

	resp := ReadmeResponse{Content: content, Encoding: "utf-8"}
	if h.render != nil {
		var repoURL string
		if starter, err := h.catalog.GetStarter(r.Context(), slug); err == nil {
			repoURL = starter.Links.GitHub
		}
		resp.HTML = h.render(content, repoURL)
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, resp)
}

// FilterOptions returns the distinct values present in the listing for each
// filter dimension.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	starters, err := h.catalog.ListStarters(r.Context())
	if err != nil {
		h.logger.Error("failed to list starters", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.setCacheControl(w)
	writeJSON(w, http.StatusOK, toFilterOptionsResponse(application.CollectFilterOptions(starters)))
}

// Refresh discards the cached listing and rebuilds it from upstream.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	starters, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.logger.Error("failed to refresh starters", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("starter listing refreshed", "count", len(starters))
	writeJSON(w, http.StatusOK, RefreshResponse{Starters: len(starters)})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) setCacheControl(w http.ResponseWriter) {
	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
}

// ParseFilter builds a StarterFilter from query parameters. Each dimension
// accepts repeated parameters and comma-separated values; blanks are dropped.
func ParseFilter(r *http.Request) model.StarterFilter {
	q := r.URL.Query()

	return model.StarterFilter{
		Search:    strings.TrimSpace(q.Get("search")),
		Language:  splitValues(q["language"]),
		Category:  splitValues(q["category"]),
		Framework: splitValues(q["framework"]),
		Vertical:  splitValues(q["vertical"]),
		Tags:      splitValues(q["tag"]),
	}
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IsValidSlug reports whether slug is a plausible repository name: non-empty,
// not a relative path element, and made of alphanumerics, hyphens, dots or
// underscores.
func IsValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." || len(slug) > 100 {
		return false
	}

	for _, ch := range slug {
		if !isValidRepoChar(ch) {
			return false
		}
	}

	return true
}

// isValidRepoChar returns true if the rune is allowed in a repository name.
func isValidRepoChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '.' || ch == '_'
}

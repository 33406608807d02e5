// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	httphandler "github.com/ericfisherdev/starterhub/internal/adapter/driving/http"
	"github.com/ericfisherdev/starterhub/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/starterhub/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/starterhub/internal/application"
	"github.com/ericfisherdev/starterhub/internal/domain/model"
	"github.com/ericfisherdev/starterhub/internal/domain/port/driven"
)

const siteTitle = "Starter Apps"

type readmeState int

const (
	readmeOK readmeState = iota
	readmeMissing
	readmeFailed
)

// Catalog is the subset of the catalog service the web GUI needs.
type Catalog interface {
	ListStarters(ctx context.Context) ([]model.Starter, error)
	Refresh(ctx context.Context) ([]model.Starter, error)
	GetStarter(ctx context.Context, slug string) (*model.Starter, error)
	GetReadme(ctx context.Context, slug string) (string, error)
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	catalog Catalog
	org     string
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(catalog Catalog, org string, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		org:     org,
		logger:  logger,
	}
}

// Gallery renders the starter gallery, narrowed by the same query parameters
// the JSON listing accepts.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	starters, err := h.catalog.ListStarters(r.Context())
	if err != nil {
		h.logger.Error("failed to list starters", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	filter := httphandler.ParseFilter(r)
	shown := application.FilterStarters(starters, filter)
	options := application.CollectFilterOptions(starters)
	token := csrfToken(w, r)

	gallery := toGalleryViewModel(h.org, starters, shown, options, filter, token)
	h.render(w, r, http.StatusOK, "gallery", templates.Layout(siteTitle, pages.Gallery(gallery)))
}

// StarterDetail renders a single starter with its README. A README failure
// degrades the page instead of failing it.
func (h *Handler) StarterDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !httphandler.IsValidSlug(slug) {
		h.render(w, r, http.StatusNotFound, "not found",
			templates.Layout(siteTitle, pages.NotFound("That starter does not exist.")))
		return
	}

	starter, err := h.catalog.GetStarter(r.Context(), slug)
	if err != nil {
		if errors.Is(err, driven.ErrStarterNotFound) {
			h.render(w, r, http.StatusNotFound, "not found",
				templates.Layout(siteTitle, pages.NotFound("That starter does not exist.")))
			return
		}
		h.logger.Error("failed to get starter", "slug", slug, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	state := readmeOK
	var readmeHTML string
	readme, err := h.catalog.GetReadme(r.Context(), slug)
	switch {
	case errors.Is(err, driven.ErrReadmeNotFound):
		state = readmeMissing
	case err != nil:
		h.logger.Warn("failed to fetch readme", "slug", slug, "error", err)
		state = readmeFailed
	default:
		readmeHTML = RenderReadme(readme, starter.Links.GitHub)
	}

	detail := toStarterDetailViewModel(*starter, readmeHTML, state)
	h.render(w, r, http.StatusOK, "starter detail",
		templates.Layout(starter.Title+" | "+siteTitle, pages.StarterDetail(detail)))
}

// Refresh rebuilds the catalog listing and redirects back to the gallery.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	starters, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.logger.Error("failed to refresh starters", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("starter listing refreshed", "count", len(starters))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", err)
	}
}

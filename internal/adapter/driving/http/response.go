package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// StarterResponse is the JSON representation of a starter. Field names match
// what the gallery front end consumes.
type StarterResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Language    string            `json:"language"`
	Framework   string            `json:"framework,omitempty"`
	Category    string            `json:"category,omitempty"`
	Vertical    string            `json:"vertical,omitempty"`
	Tags        []string          `json:"tags"`
	Links       LinksResponse     `json:"links"`
	Stats       StatsResponse     `json:"stats"`
	Deployment  *model.Deployment `json:"deployment,omitempty"`
	Config      *model.RepoConfig `json:"config,omitempty"`
}

// LinksResponse groups a starter's outbound links.
type LinksResponse struct {
	GitHub string `json:"github"`
	Docs   string `json:"docs,omitempty"`
	Demo   string `json:"demo,omitempty"`
	Video  string `json:"video,omitempty"`
}

// StatsResponse holds repository statistics.
type StatsResponse struct {
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	LastUpdated string `json:"lastUpdated"`
}

// ReadmeResponse is the decoded README of a starter.
type ReadmeResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	HTML     string `json:"html,omitempty"`
}

// FilterOptionsResponse lists the values available for each filter dimension.
type FilterOptionsResponse struct {
	Languages  []string `json:"languages"`
	Categories []string `json:"categories"`
	Frameworks []string `json:"frameworks"`
	Verticals  []string `json:"verticals"`
	Tags       []string `json:"tags"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// RefreshResponse reports the size of a rebuilt listing.
type RefreshResponse struct {
	Starters int `json:"starters"`
}

// toStarterResponse converts a domain Starter to its JSON response representation.
func toStarterResponse(s model.Starter) StarterResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	var lastUpdated string
	if !s.Stats.LastUpdated.IsZero() {
		lastUpdated = s.Stats.LastUpdated.UTC().Format(time.RFC3339)
	}

	return StarterResponse{
		ID:          s.ID,
		Name:        s.Name,
		Title:       s.Title,
		Description: s.Description,
		Language:    s.Language,
		Framework:   s.Framework,
		Category:    s.Category,
		Vertical:    s.Vertical,
		Tags:        tags,
		Links: LinksResponse{
			GitHub: s.Links.GitHub,
			Docs:   s.Links.Docs,
			Demo:   s.Links.Demo,
			Video:  s.Links.Video,
		},
		Stats: StatsResponse{
			Stars:       s.Stats.Stars,
			Forks:       s.Stats.Forks,
			LastUpdated: lastUpdated,
		},
		Deployment: s.Deployment,
		Config:     s.Config,
	}
}

func toFilterOptionsResponse(o model.FilterOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Languages:  nonNil(o.Languages),
		Categories: nonNil(o.Categories),
		Frameworks: nonNil(o.Frameworks),
		Verticals:  nonNil(o.Verticals),
		Tags:       nonNil(o.Tags),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

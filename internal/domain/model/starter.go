package model

import (
	"strings"
	"time"
)

// Fallback values used when neither config nor repository supply a field.
const (
	FallbackDescription = "No description available"
	FallbackLanguage    = "Unknown"
)

// Starter is the normalized, presentation-ready record for one repository.
type Starter struct {
	ID          int64
	Name        string
	Title       string
	Description string
	Language    string
	Framework   string
	Category    string
	Vertical    string // Reserved; no data source populates it yet.
	Tags        []string
	Links       StarterLinks
	Stats       StarterStats
	Deployment  *Deployment
	Config      *RepoConfig
}

// StarterLinks groups outbound links. GitHub is always set.
type StarterLinks struct {
	GitHub string
	Docs   string
	Demo   string
	Video  string
}

// StarterStats is sourced only from the raw repository.
type StarterStats struct {
	Stars       int
	Forks       int
	LastUpdated time.Time
}

// StarterFilter selects starters. An empty Search and empty dimension sets
// select everything.
type StarterFilter struct {
	Search    string
	Language  []string
	Category  []string
	Framework []string
	Vertical  []string
	Tags      []string
}

// IsZero reports whether the filter narrows nothing.
func (f StarterFilter) IsZero() bool {
	return len(f.Language) == 0 &&
		len(f.Category) == 0 &&
		len(f.Framework) == 0 &&
		len(f.Vertical) == 0 &&
		len(f.Tags) == 0 &&
		strings.TrimSpace(f.Search) == ""
}

// FilterOptions holds the sorted distinct values available per dimension.
type FilterOptions struct {
	Languages  []string
	Categories []string
	Frameworks []string
	Verticals  []string
	Tags       []string
}

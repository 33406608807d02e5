// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// StarterCardViewModel holds presentation-ready data for a starter card in the gallery grid.
type StarterCardViewModel struct {
	Name        string
	Title       string
	Description string
	Language    string
	Framework   string
	Category    string
	Tags        []string
	Stars       int
	Forks       int
	LastUpdated string
	GitHubURL   string
	DetailPath  string
}

// StarterDetailViewModel holds presentation-ready data for the starter detail page.
type StarterDetailViewModel struct {
	StarterCardViewModel

	DocsURL  string
	DemoURL  string
	VideoURL string

	Author           string
	BuildCommand     string
	PostBuildMessage string
	NodeVersion      string
	PythonVersion    string
	Dependencies     []string

	Platforms          []string
	DeployRequirements []string

	ReadmeHTML    string
	ReadmeMissing bool
	ReadmeFailed  bool
}

// FilterOptionViewModel is one checkbox within a filter group.
type FilterOptionViewModel struct {
	Value    string
	Selected bool
}

// FilterGroupViewModel is one filter dimension rendered in the sidebar.
type FilterGroupViewModel struct {
	Param   string
	Label   string
	Options []FilterOptionViewModel
}

// GalleryViewModel holds everything the gallery page renders.
type GalleryViewModel struct {
	Org       string
	Search    string
	Groups    []FilterGroupViewModel
	Starters  []StarterCardViewModel
	Total     int
	CSRFToken string
}

// HasFilters reports whether any search term or filter selection is active.
func (g GalleryViewModel) HasFilters() bool {
	if g.Search != "" {
		return true
	}
	for _, group := range g.Groups {
		for _, opt := range group.Options {
			if opt.Selected {
				return true
			}
		}
	}
	return false
}

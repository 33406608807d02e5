package web

import (
	"fmt"
	"net/url"
	"strings"

	vm "github.com/ericfisherdev/starterhub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

const lastUpdatedLayout = "Jan 2, 2006"

// toStarterCardViewModel converts a domain Starter to a StarterCardViewModel.
func toStarterCardViewModel(s model.Starter) vm.StarterCardViewModel {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	var lastUpdated string
	if !s.Stats.LastUpdated.IsZero() {
		lastUpdated = s.Stats.LastUpdated.UTC().Format(lastUpdatedLayout)
	}

	return vm.StarterCardViewModel{
		Name:        s.Name,
		Title:       s.Title,
		Description: s.Description,
		Language:    s.Language,
		Framework:   s.Framework,
		Category:    s.Category,
		Tags:        tags,
		Stars:       s.Stats.Stars,
		Forks:       s.Stats.Forks,
		LastUpdated: lastUpdated,
		GitHubURL:   s.Links.GitHub,
		DetailPath:  fmt.Sprintf("/starters/%s", url.PathEscape(s.Name)),
	}
}

// toStarterDetailViewModel converts a starter and its rendered README into a
// StarterDetailViewModel. readmeHTML is ignored unless readmeState is readmeOK.
func toStarterDetailViewModel(s model.Starter, readmeHTML string, state readmeState) vm.StarterDetailViewModel {
	detail := vm.StarterDetailViewModel{
		StarterCardViewModel: toStarterCardViewModel(s),
		DocsURL:              s.Links.Docs,
		DemoURL:              s.Links.Demo,
		VideoURL:             s.Links.Video,
		ReadmeMissing:        state == readmeMissing,
		ReadmeFailed:         state == readmeFailed,
	}
	if state == readmeOK {
		detail.ReadmeHTML = readmeHTML
	}

	if s.Deployment != nil {
		detail.Platforms = s.Deployment.Platforms
		detail.DeployRequirements = s.Deployment.Requirements
	}

	cfg := s.Config
	if cfg == nil {
		return detail
	}

	if cfg.Author != nil {
		detail.Author = cfg.Author.Name
	}
	if detail.Author == "" && cfg.Meta != nil {
		detail.Author = cfg.Meta.Author
	}
	if cfg.Build != nil {
		detail.BuildCommand = cfg.Build.Command
	}
	if cfg.PostBuild != nil {
		detail.PostBuildMessage = cfg.PostBuild.Message
	}
	if cfg.Requirements != nil {
		detail.NodeVersion = cfg.Requirements.Node
		detail.PythonVersion = cfg.Requirements.Python
		detail.Dependencies = cfg.Requirements.Dependencies
	}

	return detail
}

// toGalleryViewModel builds the gallery page model from the full listing, the
// filtered subset and the active filter.
func toGalleryViewModel(
	org string,
	all, shown []model.Starter,
	options model.FilterOptions,
	filter model.StarterFilter,
	csrf string,
) vm.GalleryViewModel {
	cards := make([]vm.StarterCardViewModel, 0, len(shown))
	for _, s := range shown {
		cards = append(cards, toStarterCardViewModel(s))
	}

	groups := []vm.FilterGroupViewModel{
		toFilterGroup("language", "Language", options.Languages, filter.Language),
		toFilterGroup("category", "Use case", options.Categories, filter.Category),
		toFilterGroup("framework", "Framework", options.Frameworks, filter.Framework),
		toFilterGroup("vertical", "Vertical", options.Verticals, filter.Vertical),
		toFilterGroup("tag", "Tags", options.Tags, filter.Tags),
	}

	return vm.GalleryViewModel{
		Org:       org,
		Search:    filter.Search,
		Groups:    groups,
		Starters:  cards,
		Total:     len(all),
		CSRFToken: csrf,
	}
}

func toFilterGroup(param, label string, values, selected []string) vm.FilterGroupViewModel {
	opts := make([]vm.FilterOptionViewModel, 0, len(values))
	for _, v := range values {
		opts = append(opts, vm.FilterOptionViewModel{
			Value:    v,
			Selected: containsFold(selected, v),
		})
	}
	return vm.FilterGroupViewModel{Param: param, Label: label, Options: opts}
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

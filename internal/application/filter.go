package application

import (
	"sort"
	"strings"

	"github.com/ericfisherdev/starterhub/internal/domain/model"
)

// FilterStarters returns the starters matching every active rule of f, in
// input order. A zero filter returns the input unchanged.
//
// The trimmed search term is matched case-insensitively as a substring of
// title, description, name, language, framework, category or any tag. Each
// dimension with a non-empty selection keeps only starters whose value
// equals one of the selected values, ignoring case; a starter without a value
// for an active dimension is dropped. Dimensions combine with AND.
func FilterStarters(starters []model.Starter, f model.StarterFilter) []model.Starter {
	if f.IsZero() {
		return starters
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Starter, 0, len(starters))
	for _, s := range starters {
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		if !matchesAny(f.Language, s.Language) ||
			!matchesAny(f.Category, s.Category) ||
			!matchesAny(f.Framework, s.Framework) ||
			!matchesAny(f.Vertical, s.Vertical) ||
			!matchesAnyTag(f.Tags, s.Tags) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesSearch expects term to be lower-cased and non-empty.
func matchesSearch(s model.Starter, term string) bool {
	fields := []string{s.Title, s.Description, s.Name, s.Language, s.Framework, s.Category}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// matchesAny reports whether value equals one of selected. An empty
// selection always matches; an empty value never matches a non-empty one.
func matchesAny(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, sel := range selected {
		if strings.EqualFold(sel, value) {
			return true
		}
	}
	return false
}

func matchesAnyTag(selected, tags []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range tags {
		if matchesAny(selected, tag) {
			return true
		}
	}
	return false
}

// CollectFilterOptions gathers the distinct non-empty values of each
// dimension across starters, each sorted ascending.
func CollectFilterOptions(starters []model.Starter) model.FilterOptions {
	languages := map[string]struct{}{}
	categories := map[string]struct{}{}
	frameworks := map[string]struct{}{}
	verticals := map[string]struct{}{}
	tags := map[string]struct{}{}

	for _, s := range starters {
		addValue(languages, s.Language)
		addValue(categories, s.Category)
		addValue(frameworks, s.Framework)
		addValue(verticals, s.Vertical)
		for _, tag := range s.Tags {
			addValue(tags, tag)
		}
	}

	return model.FilterOptions{
		Languages:  sortedKeys(languages),
		Categories: sortedKeys(categories),
		Frameworks: sortedKeys(frameworks),
		Verticals:  sortedKeys(verticals),
		Tags:       sortedKeys(tags),
	}
}

func addValue(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package pages holds the page-level components of the web GUI.
package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/starterhub/internal/adapter/driving/web/viewmodel"
)

// page buffers a component's markup so a failed write never leaves a partial document.
func page(build func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// href sanitizes an outbound URL for use in an attribute.
func href(u string) string {
	return templ.EscapeString(string(templ.URL(u)))
}

// Gallery renders the searchable starter grid with its filter sidebar.
func Gallery(g vm.GalleryViewModel) templ.Component {
	return page(func(b *strings.Builder) {
		b.WriteString(`<div class="gallery">`)
		writeFilterForm(b, g)

		b.WriteString(`<section class="results">`)
		if g.Total == 0 {
			b.WriteString(`<p class="empty">No starter repositories found.</p>`)
		} else {
			fmt.Fprintf(b, `<p class="count">Showing %d of %d starters</p>`, len(g.Starters), g.Total)
			if len(g.Starters) == 0 {
				b.WriteString(`<p class="empty">No starters match the current filters. <a href="/">Clear filters</a></p>`)
			}
			b.WriteString(`<div class="grid">`)
			for _, card := range g.Starters {
				writeCard(b, card)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</section>`)

		b.WriteString(`</div>`)
	})
}

func writeFilterForm(b *strings.Builder, g vm.GalleryViewModel) {
	b.WriteString(`<aside class="filters"><form method="get" action="/">`)
	fmt.Fprintf(b, `<input type="search" name="search" placeholder="Search starters" value="%s">`, esc(g.Search))

	for _, group := range g.Groups {
		if len(group.Options) == 0 {
			continue
		}
		fmt.Fprintf(b, `<fieldset><legend>%s</legend>`, esc(group.Label))
		for _, opt := range group.Options {
			checked := ""
			if opt.Selected {
				checked = " checked"
			}
			fmt.Fprintf(b, `<label><input type="checkbox" name="%s" value="%s"%s> %s</label>`,
				esc(group.Param), esc(opt.Value), checked, esc(opt.Value))
		}
		b.WriteString(`</fieldset>`)
	}

	b.WriteString(`<button type="submit">Apply</button>`)
	if g.HasFilters() {
		b.WriteString(` <a class="clear" href="/">Clear</a>`)
	}
	b.WriteString(`</form>`)

	b.WriteString(`<form method="post" action="/refresh" class="refresh">`)
	fmt.Fprintf(b, `<input type="hidden" name="csrf_token" value="%s">`, esc(g.CSRFToken))
	b.WriteString(`<button type="submit">Refresh catalog</button></form>`)
	b.WriteString(`</aside>`)
}

func writeCard(b *strings.Builder, c vm.StarterCardViewModel) {
	b.WriteString(`<article class="card">`)
	fmt.Fprintf(b, `<h2><a href="%s">%s</a></h2>`, esc(c.DetailPath), esc(c.Title))
	fmt.Fprintf(b, `<p class="description">%s</p>`, esc(c.Description))

	b.WriteString(`<p class="badges">`)
	writeBadge(b, "language", c.Language)
	writeBadge(b, "framework", c.Framework)
	writeBadge(b, "category", c.Category)
	b.WriteString(`</p>`)

	if len(c.Tags) > 0 {
		b.WriteString(`<ul class="tags">`)
		for _, tag := range c.Tags {
			fmt.Fprintf(b, `<li>%s</li>`, esc(tag))
		}
		b.WriteString(`</ul>`)
	}

	fmt.Fprintf(b, `<p class="stats">★ %d · forks %d`, c.Stars, c.Forks)
	if c.LastUpdated != "" {
		fmt.Fprintf(b, ` · updated %s`, esc(c.LastUpdated))
	}
	b.WriteString(`</p>`)
	fmt.Fprintf(b, `<a class="github" href="%s" rel="noopener">View on GitHub</a>`, href(c.GitHubURL))
	b.WriteString(`</article>`)
}

func writeBadge(b *strings.Builder, class, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, `<span class="badge %s">%s</span>`, class, esc(value))
}

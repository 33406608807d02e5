package pages

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/starterhub/internal/adapter/driving/web/viewmodel"
)

// StarterDetail renders a single starter with its metadata and README.
// ReadmeHTML must already be sanitized.
func StarterDetail(d vm.StarterDetailViewModel) templ.Component {
	return page(func(b *strings.Builder) {
		b.WriteString(`<article class="detail">`)
		b.WriteString(`<p><a href="/">&larr; All starters</a></p>`)
		fmt.Fprintf(b, `<h1>%s</h1>`, esc(d.Title))
		fmt.Fprintf(b, `<p class="description">%s</p>`, esc(d.Description))

		b.WriteString(`<p class="badges">`)
		writeBadge(b, "language", d.Language)
		writeBadge(b, "framework", d.Framework)
		writeBadge(b, "category", d.Category)
		for _, tag := range d.Tags {
			writeBadge(b, "tag", tag)
		}
		b.WriteString(`</p>`)

		writeLinks(b, d)
		writeFacts(b, d)

		b.WriteString(`<section class="readme"><h2>README</h2>`)
		switch {
		case d.ReadmeFailed:
			b.WriteString(`<p class="empty">The README could not be loaded right now.</p>`)
		case d.ReadmeMissing || d.ReadmeHTML == "":
			b.WriteString(`<p class="empty">This starter has no README.</p>`)
		default:
			b.WriteString(`<div class="markdown">`)
			b.WriteString(d.ReadmeHTML)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</section>`)

		b.WriteString(`</article>`)
	})
}

func writeLinks(b *strings.Builder, d vm.StarterDetailViewModel) {
	b.WriteString(`<ul class="links">`)
	link := func(label, u string) {
		if u == "" {
			return
		}
		fmt.Fprintf(b, `<li><a href="%s" rel="noopener">%s</a></li>`, href(u), label)
	}
	link("GitHub", d.GitHubURL)
	link("Documentation", d.DocsURL)
	link("Live demo", d.DemoURL)
	link("Video", d.VideoURL)
	b.WriteString(`</ul>`)
}

func writeFacts(b *strings.Builder, d vm.StarterDetailViewModel) {
	b.WriteString(`<dl class="facts">`)
	fact := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(b, `<dt>%s</dt><dd>%s</dd>`, label, esc(value))
	}

	fmt.Fprintf(b, `<dt>Stars</dt><dd>%d</dd><dt>Forks</dt><dd>%d</dd>`, d.Stars, d.Forks)
	fact("Last updated", d.LastUpdated)
	fact("Author", d.Author)
	fact("Install", d.BuildCommand)
	fact("After install", d.PostBuildMessage)
	fact("Node", d.NodeVersion)
	fact("Python", d.PythonVersion)
	fact("Dependencies", strings.Join(d.Dependencies, ", "))
	fact("Deploy to", strings.Join(d.Platforms, ", "))
	fact("Deploy requires", strings.Join(d.DeployRequirements, ", "))
	b.WriteString(`</dl>`)
}

// NotFound renders a short message for unknown starters.
func NotFound(message string) templ.Component {
	return page(func(b *strings.Builder) {
		fmt.Fprintf(b, `<section class="not-found"><h1>Not found</h1><p>%s</p><p><a href="/">Back to all starters</a></p></section>`,
			esc(message))
	})
}

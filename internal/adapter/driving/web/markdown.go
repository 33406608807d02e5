package web

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	readmeMarkdown goldmark.Markdown
	readmePolicy   *bluemonday.Policy

	repoURLKey = parser.NewContextKey()
)

func init() {
	readmeMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(repoLinkResolver{}, 100)),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// Heading ids are kept so in-page "#section" links keep working.
	readmePolicy = bluemonday.UGCPolicy()
	readmePolicy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

// RenderReadme converts a starter README to sanitized HTML. Relative link
// targets resolve to the file view of repoURL and relative images to its raw
// content, both on the default branch. Raw HTML survives goldmark and is then
// filtered by the UGC policy, so badges keep working. An empty repoURL leaves
// relative targets alone. Returns empty string for empty input.
func RenderReadme(src, repoURL string) string {
	if src == "" {
		return ""
	}

	pc := parser.NewContext()
	if base, err := url.Parse(strings.TrimSuffix(repoURL, "/")); err == nil && base.IsAbs() {
		pc.Set(repoURLKey, base)
	}

	var buf bytes.Buffer
	if err := readmeMarkdown.Convert([]byte(src), &buf, parser.WithContext(pc)); err != nil {
		return readmePolicy.Sanitize(src)
	}

	return readmePolicy.Sanitize(buf.String())
}

// repoLinkResolver rewrites repository-relative link and image destinations.
type repoLinkResolver struct{}

func (repoLinkResolver) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	base, ok := pc.Get(repoURLKey).(*url.URL)
	if !ok {
		return
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = resolveRepoPath(base, "blob", node.Destination)
		case *ast.Image:
			node.Destination = resolveRepoPath(base, "raw", node.Destination)
		}
		return ast.WalkContinue, nil
	})
}

// resolveRepoPath maps dest onto <repo>/<view>/HEAD/<path>. Absolute URLs,
// protocol-relative URLs and pure fragments are returned unchanged.
func resolveRepoPath(base *url.URL, view string, dest []byte) []byte {
	ref, err := url.Parse(string(dest))
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.Path == "" {
		return dest
	}

	root := *base
	root.Path = base.Path + "/" + view + "/HEAD/"
	resolved := root.ResolveReference(&url.URL{
		Path:     strings.TrimPrefix(ref.Path, "/"),
		RawQuery: ref.RawQuery,
		Fragment: ref.Fragment,
	})

	// Dot segments may not climb out of the branch root.
	if !strings.HasPrefix(resolved.Path, root.Path) {
		return dest
	}

	return []byte(resolved.String())
}

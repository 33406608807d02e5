package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReadme_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderReadme("", "https://github.com/acme/node-app"))
}

func TestRenderReadme_PlainText(t *testing.T) {
	result := RenderReadme("hello world", "")
	assert.Contains(t, result, "hello world")
}

func TestRenderReadme_Bold(t *testing.T) {
	result := RenderReadme("**bold text**", "")
	assert.Contains(t, result, "<strong>bold text</strong>")
}

func TestRenderReadme_InlineCode(t *testing.T) {
	result := RenderReadme("use `fmt.Println`", "")
	assert.Contains(t, result, "<code>fmt.Println</code>")
}

func TestRenderReadme_CodeBlock(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	result := RenderReadme(input, "")
	assert.Contains(t, result, "<code")
	assert.Contains(t, result, "fmt.Println")
}

func TestRenderReadme_Link(t *testing.T) {
	result := RenderReadme("[click](https://example.com)", "")
	assert.Contains(t, result, `<a href="https://example.com"`)
	assert.Contains(t, result, "click</a>")
}

func TestRenderReadme_SanitizesScript(t *testing.T) {
	result := RenderReadme(`<script>alert("xss")</script>`, "")
	assert.NotContains(t, result, "<script>")
}

func TestRenderReadme_GFMStrikethrough(t *testing.T) {
	result := RenderReadme("~~deleted~~", "")
	assert.Contains(t, result, "<del>deleted</del>")
}

func TestRenderReadme_GFMTaskList(t *testing.T) {
	result := RenderReadme("- [x] done\n- [ ] todo", "")
	assert.Contains(t, result, "<li>")
	assert.Contains(t, result, "done")
	assert.Contains(t, result, "todo")
}

func TestRenderReadme_GFMTable(t *testing.T) {
	result := RenderReadme("| Env | Value |\n| --- | --- |\n| DEEPGRAM_API_KEY | required |", "")
	assert.Contains(t, result, "<table>")
	assert.Contains(t, result, "<td>DEEPGRAM_API_KEY</td>")
}

func TestRenderReadme_KeepsBadgeImages(t *testing.T) {
	result := RenderReadme(`<img src="https://img.shields.io/badge/license-MIT-blue" alt="license">`, "")
	assert.Contains(t, result, `src="https://img.shields.io/badge/license-MIT-blue"`)
}

func TestRenderReadme_StripsEventHandlers(t *testing.T) {
	result := RenderReadme(`<a href="https://example.com" onclick="steal()">x</a>`, "")
	assert.NotContains(t, result, "onclick")
	assert.Equal(t, 1, strings.Count(result, "<a "))
}

func TestRenderReadme_StripsJavascriptLinks(t *testing.T) {
	result := RenderReadme("[bad](javascript:alert(1))", "")
	assert.NotContains(t, result, "javascript:")
}

func TestRenderReadme_ResolvesRelativeImages(t *testing.T) {
	result := RenderReadme("![diagram](docs/arch.png)", "https://github.com/acme/node-app")
	assert.Contains(t, result, `src="https://github.com/acme/node-app/raw/HEAD/docs/arch.png"`)
}

func TestRenderReadme_ResolvesRelativeLinks(t *testing.T) {
	result := RenderReadme("[guide](./CONTRIBUTING.md#setup) and [root](/LICENSE)", "https://github.com/acme/node-app/")
	assert.Contains(t, result, `href="https://github.com/acme/node-app/blob/HEAD/CONTRIBUTING.md#setup"`)
	assert.Contains(t, result, `href="https://github.com/acme/node-app/blob/HEAD/LICENSE"`)
}

func TestRenderReadme_LeavesOtherDestinations(t *testing.T) {
	src := "[site](https://deepgram.com) [cdn](//cdn.example.com/x.js) [usage](#usage) [up](../../../other-repo)"
	result := RenderReadme(src, "https://github.com/acme/node-app")

	assert.Contains(t, result, `href="https://deepgram.com"`)
	assert.Contains(t, result, `href="#usage"`)
	assert.NotContains(t, result, "blob/HEAD/#")
	assert.Contains(t, result, `href="../../../other-repo"`)
	assert.NotContains(t, result, "github.com/acme/other-repo")
	assert.NotContains(t, result, "blob/HEAD/cdn.example.com")
}

func TestRenderReadme_KeepsHeadingAnchors(t *testing.T) {
	result := RenderReadme("## Getting Started", "https://github.com/acme/node-app")
	assert.Contains(t, result, `id="getting-started"`)
}

func TestRenderReadme_WithoutRepositoryKeepsRelativePaths(t *testing.T) {
	result := RenderReadme("![diagram](docs/arch.png)", "")
	assert.NotContains(t, result, "raw/HEAD")
}

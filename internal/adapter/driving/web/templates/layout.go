// Package templates holds the shared page chrome for the web GUI.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the full HTML document with the shared header and footer.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`+templ.EscapeString(title)+`</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header class="site-header"><a class="brand" href="/">Starter Apps</a></header>
<main class="container">
`); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `
</main>
<footer class="site-footer">Browse, filter and clone ready-to-run starter applications.</footer>
</body>
</html>
`)
		return err
	})
}

package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DatastarScript is the client bundle the pages load
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// Base wraps body in the html document shell
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="es"><head><meta charset="UTF-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1.0">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="/static/css/app.css">` +
			`<script type="module" src="` + DatastarScript + `"></script>` +
			`</head><body><main class="container">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

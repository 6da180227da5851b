package layouts

import (
	"testing"

	"cardsearch/internal/testhelpers"

	"github.com/a-h/templ"
)

func TestBaseLayout(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("renders with title", func(t *testing.T) {
		renderer.Render(Base("Buscador de cartas", nil)).
			AssertNotEmpty().
			AssertValid().
			AssertContains("Buscador de cartas").
			AssertHasElement("html").
			AssertHasElement("head").
			AssertHasElement("body").
			AssertHasElement("title").
			AssertContains("<!doctype html>")
	})

	t.Run("includes viewport meta tag", func(t *testing.T) {
		renderer.Render(Base("Mobile Test", nil)).
			AssertContains(`name="viewport"`).
			AssertContains(`content="width=device-width, initial-scale=1.0"`)
	})

	t.Run("includes datastar script and stylesheet", func(t *testing.T) {
		renderer.Render(Base("Datastar Test", nil)).
			AssertHasElement("script").
			AssertContains(`type="module"`).
			AssertContains(DatastarScript).
			AssertContains(`href="/static/css/app.css"`)
	})

	t.Run("renders body inside main", func(t *testing.T) {
		body := templ.Raw(`<p id="inner">hola</p>`)

		renderer.Render(Base("Structure Test", body)).
			AssertMatches(`(?s)<!doctype html>.*<html.*>.*<head>.*</head>.*<body>.*<main class="container"><p id="inner">hola</p></main>.*</body>.*</html>`).
			AssertElementCount("html", 1).
			AssertElementCount("head", 1).
			AssertElementCount("body", 1)
	})

	t.Run("escapes HTML in title", func(t *testing.T) {
		renderer.Render(Base("<script>alert('xss')</script>", nil)).
			AssertNotContains("<script>alert('xss')</script>").
			AssertContains("&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;")
	})
}

package pages

import (
	"context"
	"io"
	"strings"

	"cardsearch/internal/search"
	"cardsearch/internal/views/components"
	"cardsearch/internal/views/layouts"
	"cardsearch/internal/widget"

	"github.com/a-h/templ"
)

// HomeData is what the search page shows on first load
type HomeData struct {
	Title        string
	CardName     string
	Search       string
	Notification widget.Notification
	Panel        widget.Panel
}

type modeOption struct {
	value string
	label string
}

var modeOptions = []modeOption{
	{string(search.ModeExactName), "Nombre exacto"},
	{string(search.ModeFuzzyName), "Nombre parecido"},
	{string(search.ModeArchetype), "Arquetipo"},
	{"all", "Todas las cartas"},
}

// Home renders the search widget page
func Home(data HomeData) templ.Component {
	return layouts.Base(data.Title, homeBody(data))
}

func homeBody(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<h1>` + templ.EscapeString(data.Title) + `</h1>`)
		b.WriteString(`<div id="widget" data-signals="` + templ.EscapeString("{searching: false}") + `" data-on-load="` + templ.EscapeString("@get('/sse/widget')") + `">`)

		b.WriteString(`<form id="search-form" data-attr-aria-busy="$searching" data-on-submit="` +
			templ.EscapeString("@post('/search', {contentType: 'form'})") + `">`)
		b.WriteString(`<label for="cardName">Carta</label>`)
		b.WriteString(`<input type="text" id="cardName" name="cardName" value="` +
			templ.EscapeString(data.CardName) + `" placeholder="Nombre de la carta" autocomplete="off">`)
		b.WriteString(`<select id="search" name="search">`)
		for _, opt := range modeOptions {
			b.WriteString(`<option value="` + opt.value + `"`)
			if opt.value == data.Search {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + opt.label + `</option>`)
		}
		b.WriteString(`</select><button type="submit">Buscar</button></form>`)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		for _, c := range []templ.Component{
			components.Notification(data.Notification),
			components.ShareLink(data.CardName, data.Search),
			components.Results(data.Panel),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

package components

import (
	"context"
	"io"
	"strings"

	"cardsearch/internal/cards"
	"cardsearch/internal/widget"

	"github.com/a-h/templ"
)

// ResultsID is the element the widget stream patches for results
const ResultsID = "data-card"

// Results renders the results panel for the panel's display mode
func Results(p widget.Panel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		class := "cards"
		if p.Mode == widget.DisplaySingle {
			class += " single"
		}
		if !p.Visible {
			class += " hidden"
		}
		b.WriteString(`<section id="` + ResultsID + `" data-card class="` + class + `">`)

		if p.Mode == widget.DisplaySingle {
			writeSingle(&b, p.Shown())
		} else {
			for _, card := range p.Shown() {
				b.WriteString(`<div class="card_info"><p>` + templ.EscapeString(card.Name) + `</p>`)
				writeImage(&b, "", card)
				b.WriteString(`</div>`)
			}
		}

		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// writeSingle fills the fixed name and image slots. With nothing shown
// the slots stay mounted but carry no text or image attributes.
func writeSingle(b *strings.Builder, shown cards.SearchResult) {
	b.WriteString(`<div class="card_info">`)
	card, ok := shown.First()
	if !ok {
		b.WriteString(`<p id="card-name"></p><img id="card-img">`)
	} else {
		b.WriteString(`<p id="card-name">` + templ.EscapeString(card.Name) + `</p>`)
		writeImage(b, "card-img", card)
	}
	b.WriteString(`</div>`)
}

func writeImage(b *strings.Builder, id string, card cards.CardRecord) {
	b.WriteString(`<img`)
	if id != "" {
		b.WriteString(` id="` + id + `"`)
	}
	if card.HasImage() {
		b.WriteString(` src="` + templ.EscapeString(card.ImageURL) + `"`)
	}
	name := templ.EscapeString(card.Name)
	b.WriteString(` alt="` + name + `" title="` + name + `" loading="lazy">`)
}

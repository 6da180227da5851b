package components

import (
	"testing"

	"cardsearch/internal/cards"
	"cardsearch/internal/testhelpers"
	"cardsearch/internal/widget"
)

var blueEyes = cards.SearchResult{
	{Name: "Blue-Eyes White Dragon", ImageURL: "https://images.ygoprodeck.com/images/cards/89631139.jpg"},
	{Name: "Blue-Eyes Alternative White Dragon", ImageURL: "https://images.ygoprodeck.com/images/cards/38517737.jpg"},
	{Name: "Blue-Eyes Shining Dragon", ImageURL: "https://images.ygoprodeck.com/images/cards/53347303.jpg"},
}

func TestNotification(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("info toast", func(t *testing.T) {
		renderer.Render(Notification(widget.Notification{Message: "Buscando...", Kind: widget.KindInfo})).
			AssertValid().
			AssertHasElementWithID(NotificationID).
			AssertHasClass("toast-info").
			AssertNotContains("toast-error").
			AssertNotContains("hidden").
			AssertContains(">Buscando...</p>")
	})

	t.Run("error toast replaces info class", func(t *testing.T) {
		renderer.Render(Notification(widget.Notification{Message: "Error de red. Intente más tarde.", Kind: widget.KindError})).
			AssertHasClass("toast-error").
			AssertNotContains("toast-info")
	})

	t.Run("cleared toast is hidden and empty", func(t *testing.T) {
		renderer.Render(Notification(widget.Notification{})).
			AssertHasClass("hidden").
			AssertNotContains("toast-info").
			AssertNotContains("toast-error").
			AssertContains(`<p id="toast" data-toast></p>`)
	})

	t.Run("escapes message", func(t *testing.T) {
		renderer.Render(Notification(widget.Notification{Message: "<b>x</b> no fue encontrado.", Kind: widget.KindError})).
			AssertNotContains("<b>x</b>").
			AssertContains("&lt;b&gt;x&lt;/b&gt;")
	})
}

func TestResultsMulti(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("one block per card in order", func(t *testing.T) {
		renderer.Render(Results(widget.Panel{Mode: widget.DisplayMulti, Visible: true, Cards: blueEyes})).
			AssertValid().
			AssertHasElementWithID(ResultsID).
			AssertNotContains("hidden").
			AssertClassCount("card_info", 3).
			AssertElementCount("img", 3).
			AssertOrder(
				"<p>Blue-Eyes White Dragon</p>",
				"<p>Blue-Eyes Alternative White Dragon</p>",
				"<p>Blue-Eyes Shining Dragon</p>",
			)

		for _, card := range blueEyes {
			renderer.AssertImage(card.ImageURL, card.Name)
		}
	})

	t.Run("hidden panel has no blocks", func(t *testing.T) {
		renderer.Render(Results(widget.Panel{Mode: widget.DisplayMulti})).
			AssertHasClass("hidden").
			AssertClassCount("card_info", 0).
			AssertElementCount("img", 0)
	})

	t.Run("card without image keeps alt and title", func(t *testing.T) {
		renderer.Render(Results(widget.Panel{Mode: widget.DisplayMulti, Visible: true, Cards: cards.SearchResult{{Name: "Token"}}})).
			AssertNotContains("src=").
			AssertContains(`alt="Token" title="Token"`)
	})
}

func TestResultsSingle(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	t.Run("shows only the first card in the slots", func(t *testing.T) {
		renderer.Render(Results(widget.Panel{Mode: widget.DisplaySingle, Visible: true, Cards: blueEyes})).
			AssertValid().
			AssertHasElementWithID("card-name").
			AssertHasElementWithID("card-img").
			AssertContains(`<p id="card-name">Blue-Eyes White Dragon</p>`).
			AssertImage(blueEyes[0].ImageURL, blueEyes[0].Name).
			AssertNotContains("Alternative").
			AssertElementCount("img", 1)
	})

	t.Run("cleared slots carry no image attributes", func(t *testing.T) {
		renderer.Render(Results(widget.Panel{Mode: widget.DisplaySingle})).
			AssertHasClass("hidden").
			AssertContains(`<p id="card-name"></p><img id="card-img">`).
			AssertNotContains("src=").
			AssertNotContains("alt=").
			AssertNotContains("title=")
	})
}

func TestShareLink(t *testing.T) {
	renderer := testhelpers.NewTemplateRenderer(t)

	renderer.Render(ShareLink("dark magician", "oneCard")).
		AssertHasElementWithID(ShareID).
		AssertContains(`href="/share.png?cardName=dark+magician&amp;search=oneCard"`)

	renderer.Render(ShareLink("", "oneCard")).
		AssertHasClass("hidden").
		AssertNotContains("href")

	if got := SharePath("kuriboh", ""); got != "/share.png?cardName=kuriboh" {
		t.Errorf("unexpected share path %q", got)
	}
}

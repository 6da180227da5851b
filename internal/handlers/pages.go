package handlers

import (
	"net/http"

	"cardsearch/internal/views/pages"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Home renders the search page. cardName and search query parameters
// pre-fill the form so a search can be shared as a link.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	q := r.URL.Query()
	mode := q.Get("search")
	if mode == "" {
		mode = string(h.cfg.DefaultSearchMode())
	}

	component := pages.Home(pages.HomeData{
		Title:        h.cfg.Widget.Title,
		CardName:     q.Get("cardName"),
		Search:       mode,
		Notification: sess.Notifier.Current(),
		Panel:        sess.Display.Snapshot(),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to render home page"), "render error", "session", sess.ID)
	}
}

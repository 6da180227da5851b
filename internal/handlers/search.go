package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cardsearch/internal/search"
	"cardsearch/internal/store"
	"cardsearch/internal/views/components"

	"github.com/a-h/templ"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// shareState is what the share link of a session points at
type shareState struct {
	CardName string
	Search   string
}

// Search runs one search for the caller's session. The result reaches
// the page through the widget stream, so the response has no body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sess := h.session(w, r)

	field, present := r.PostForm["search"]
	searchField := ""
	if present && len(field) > 0 {
		searchField = field[0]
	}
	req := search.NewRequest(r.PostForm.Get("cardName"), searchField, present, h.cfg.DefaultSearchMode())

	shared := shareState{CardName: req.Term, Search: searchField}
	if !present {
		shared.Search = string(req.Mode)
	}
	h.eventBus.Publish(Event{Type: EventSearchStarted, SessionID: sess.ID, Data: shared})

	// Searches are not cancelled when the browser drops the request
	outcome := sess.Controller.Submit(context.WithoutCancel(r.Context()), req)

	h.eventBus.Publish(Event{Type: EventSearchDone, SessionID: sess.ID})

	logger.Debug("Search finished",
		"session", sess.ID,
		"term", req.Term,
		"mode", string(req.Mode),
		"state", string(outcome.State),
		"cards", strconv.Itoa(outcome.Cards),
		"stale", strconv.FormatBool(outcome.Stale),
	)

	w.WriteHeader(http.StatusNoContent)
}

// StreamWidget streams notification and result patches for the caller's session
func (h *Handler) StreamWidget(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	// Create SSE connection
	sse := datastar.NewSSE(w, r)

	events := h.eventBus.Subscribe(sess.ID)
	defer h.eventBus.Unsubscribe(sess.ID, events)

	logger.Debug("Widget stream opened", "session", sess.ID)

	// Bring a (re)connecting page up to date
	if err := h.sendSnapshot(sse, sess); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to send widget snapshot"), "stream error", "session", sess.ID)
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("Widget stream closed", "session", sess.ID)
			return

		case <-heartbeat.C:
			sess.Touch(time.Now())
			if err := sse.Send("keepalive", []string{fmt.Sprintf(`{"time":"%s"}`, time.Now().Format(time.RFC3339))}); err != nil {
				logger.Debug("Keepalive failed, closing widget stream", "session", sess.ID)
				return
			}

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := h.applyEvent(sse, sess, event); err != nil {
				logger.LogErr(serr.Wrap(err, "failed to patch widget"), "stream error", "session", sess.ID, "event", event.Type)
				return
			}
		}
	}
}

func (h *Handler) applyEvent(sse *datastar.ServerSentEventGenerator, sess *store.Session, event Event) error {
	switch event.Type {
	case EventNotification:
		return patchNotification(sse, sess)
	case EventResults:
		return patchResults(sse, sess)
	case EventSearchStarted:
		if shared, ok := event.Data.(shareState); ok {
			if err := patchShare(sse, shared); err != nil {
				return err
			}
		}
		return sse.MarshalAndPatchSignals(map[string]interface{}{"searching": true})
	case EventSearchDone:
		return sse.MarshalAndPatchSignals(map[string]interface{}{
			"searching": sess.Controller.State() == search.StateSearching,
		})
	}
	return nil
}

func (h *Handler) sendSnapshot(sse *datastar.ServerSentEventGenerator, sess *store.Session) error {
	if err := patchNotification(sse, sess); err != nil {
		return err
	}
	if err := patchResults(sse, sess); err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(map[string]interface{}{
		"searching": sess.Controller.State() == search.StateSearching,
	})
}

func patchNotification(sse *datastar.ServerSentEventGenerator, sess *store.Session) error {
	html := renderToString(components.Notification(sess.Notifier.Current()))
	return sse.PatchElements(html, datastar.WithSelector("#"+components.NotificationID))
}

func patchResults(sse *datastar.ServerSentEventGenerator, sess *store.Session) error {
	html := renderToString(components.Results(sess.Display.Snapshot()))
	return sse.PatchElements(html, datastar.WithSelector("#"+components.ResultsID))
}

func patchShare(sse *datastar.ServerSentEventGenerator, shared shareState) error {
	html := renderToString(components.ShareLink(shared.CardName, shared.Search))
	return sse.PatchElements(html, datastar.WithSelector("#"+components.ShareID))
}

// renderToString renders a templ component to string
func renderToString(component templ.Component) string {
	buf := &bytes.Buffer{}
	if err := component.Render(context.Background(), buf); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to render component"), "render error")
	}
	return buf.String()
}

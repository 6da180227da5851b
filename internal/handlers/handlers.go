package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cardsearch/internal/cards"
	"cardsearch/internal/config"
	localMiddleware "cardsearch/internal/middleware"
	"cardsearch/internal/search"
	"cardsearch/internal/store"
	"cardsearch/internal/widget"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

const sessionCookie = "session"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    *store.MemoryStore
	eventBus *EventBus
	cfg      *config.ServerConfig
	limiter  *localMiddleware.RateLimiter

	// heartbeat is the keepalive interval of widget streams
	heartbeat time.Duration
}

// New creates a new handler. Every session gets its own controller
// wired to fetcher and to a surface that publishes on the event bus.
func New(fetcher search.Fetcher, cfg *config.ServerConfig) *Handler {
	h := &Handler{
		eventBus:  NewEventBus(),
		cfg:       cfg,
		heartbeat: 30 * time.Second,
	}
	h.store = store.NewMemoryStore(h.newSession(fetcher))
	return h
}

// Store returns the handler's store (for testing)
func (h *Handler) Store() *store.MemoryStore {
	return h.store
}

// Events returns the handler's event bus
func (h *Handler) Events() *EventBus {
	return h.eventBus
}

func (h *Handler) newSession(fetcher search.Fetcher) store.SessionFactory {
	return func(id string) *store.Session {
		n := widget.NewNotifier()
		d := widget.NewDisplay(h.cfg.Display())
		surface := search.Surface{
			Notifier: &publishingNotifier{Notifier: n, publish: h.publisher(id, EventNotification)},
			Renderer: &publishingDisplay{Display: d, publish: h.publisher(id, EventResults)},
		}
		return &store.Session{
			Notifier:   n,
			Display:    d,
			Controller: search.NewController(fetcher, surface, h.cfg.Widget.Messages),
		}
	}
}

func (h *Handler) publisher(sessionID, eventType string) func() {
	return func() {
		h.eventBus.Publish(Event{Type: eventType, SessionID: sessionID})
	}
}

// RunJanitor drops idle sessions and rate limiter entries until ctx is done
func (h *Handler) RunJanitor(ctx context.Context) {
	ttl := h.cfg.Server.SessionTimeout
	interval := ttl / 4
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}

	if h.limiter != nil {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					h.limiter.Forget(ttl)
				}
			}
		}()
	}

	h.store.RunJanitor(ctx, interval, ttl, func(id string) {
		logger.Debug("Session expired", "session", id)
	})
}

// Event types published per session
const (
	EventNotification  = "notification"
	EventResults       = "results"
	EventSearchStarted = "search_started"
	EventSearchDone    = "search_done"
)

// Event represents a widget state change
type Event struct {
	Type      string
	SessionID string
	Data      interface{}
}

// EventBus manages event subscriptions
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe subscribes to events for a session
func (eb *EventBus) Subscribe(sessionID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 16)
	eb.subscribers[sessionID] = append(eb.subscribers[sessionID], ch)
	return ch
}

// Unsubscribe removes a subscription
func (eb *EventBus) Unsubscribe(sessionID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[sessionID]
	for i, sub := range subs {
		if sub == ch {
			subs = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(subs) == 0 {
		delete(eb.subscribers, sessionID)
	} else {
		eb.subscribers[sessionID] = subs
	}
}

// Subscribers returns the number of open subscriptions for a session
func (eb *EventBus) Subscribers(sessionID string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[sessionID])
}

// Publish publishes an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[event.SessionID] {
		select {
		case ch <- event:
		default:
			// Channel full, skip. Streams resend a snapshot on reconnect.
		}
	}
}

// publishingNotifier announces every toast change to the session's streams
type publishingNotifier struct {
	*widget.Notifier
	publish func()
}

func (n *publishingNotifier) Notify(message string, kind widget.Kind) {
	n.Notifier.Notify(message, kind)
	n.publish()
}

func (n *publishingNotifier) Clear() {
	n.Notifier.Clear()
	n.publish()
}

// publishingDisplay announces every panel change to the session's streams
type publishingDisplay struct {
	*widget.Display
	publish func()
}

func (d *publishingDisplay) Render(result cards.SearchResult) {
	d.Display.Render(result)
	d.publish()
}

func (d *publishingDisplay) Clear() {
	d.Display.Clear()
	d.publish()
}

// session returns the caller's session, issuing a cookie on first visit
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *store.Session {
	return h.store.GetOrCreate(sessionID(w, r))
}

// sessionID reads the session cookie or creates a new one
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	})

	return id
}

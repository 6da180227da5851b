package search

import (
	"context"
	"strconv"
	"sync"

	"cardsearch/internal/cards"
	"cardsearch/internal/widget"

	"github.com/rohanthewiz/logger"
)

// State is the phase of the controller's current search cycle
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateDisplayed State = "displayed"
	StateFailed    State = "failed"
)

// Fetcher looks cards up by one query parameter
type Fetcher interface {
	FetchCards(ctx context.Context, param cards.QueryParam, value string) (cards.SearchResult, error)
}

// Notifier shows and clears the single status message
type Notifier interface {
	Notify(message string, kind widget.Kind)
	Clear()
}

// Renderer mounts and unmounts result cards
type Renderer interface {
	Render(result cards.SearchResult)
	Clear()
}

// Surface is the set of outputs a controller drives. It is built once per
// widget and handed to the controller instead of being looked up.
type Surface struct {
	Notifier Notifier
	Renderer Renderer
}

// Outcome describes how a submitted search ended
type Outcome struct {
	Seq   uint64
	State State
	Kind  cards.ErrorKind
	Cards int
	// Stale is set when a newer search was submitted before this one
	// resolved; a stale outcome changed nothing on the surface.
	Stale bool
	Err   error
}

// Controller runs searches for one widget. Submissions may overlap; only
// the response of the most recently submitted search is applied.
type Controller struct {
	fetcher  Fetcher
	surface  Surface
	messages Messages

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewController creates a controller in the idle state
func NewController(fetcher Fetcher, surface Surface, messages Messages) *Controller {
	return &Controller{
		fetcher:  fetcher,
		surface:  surface,
		messages: messages.WithDefaults(),
		state:    StateIdle,
	}
}

// State returns the current phase
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one search to completion. It blocks while the lookup is in
// flight; the surface is updated before it returns.
func (c *Controller) Submit(ctx context.Context, req Request) Outcome {
	if err := req.Validate(); err != nil {
		return c.reject(req, err)
	}

	seq := c.begin()
	result, err := c.fetcher.FetchCards(ctx, req.Mode.QueryParam(), req.Value())
	return c.finish(seq, req, result, err)
}

// reject counts as a new search: it supersedes anything in flight
func (c *Controller) reject(req Request, err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.surface.Renderer.Clear()
	c.surface.Notifier.Clear()
	c.surface.Notifier.Notify(c.messages.EmptyTerm, widget.KindError)
	c.state = StateFailed

	logger.Debug("Search rejected", "mode", string(req.Mode), "reason", err.Error())
	return Outcome{Seq: c.seq, State: c.state, Err: err}
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.state = StateSearching
	c.surface.Renderer.Clear()
	c.surface.Notifier.Clear()
	c.surface.Notifier.Notify(c.messages.Searching, widget.KindInfo)
	return c.seq
}

func (c *Controller) finish(seq uint64, req Request, result cards.SearchResult, err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		logger.Debug("Dropping stale search response", "seq", strconv.FormatUint(seq, 10),
			"latest", strconv.FormatUint(c.seq, 10), "term", req.Term)
		return Outcome{Seq: seq, State: c.state, Kind: cards.KindOf(err), Cards: len(result), Stale: true, Err: err}
	}

	if err != nil {
		kind := cards.KindOf(err)
		logger.LogErr(err, "card search failed", "term", req.Term, "mode", string(req.Mode), "kind", string(kind))
		c.surface.Notifier.Notify(c.messages.ForKind(kind, req.Term), widget.KindError)
		c.state = StateFailed
		return Outcome{Seq: seq, State: c.state, Kind: kind, Err: err}
	}

	if len(result) == 0 {
		c.surface.Notifier.Notify(c.messages.ForKind(cards.KindNotFound, req.Term), widget.KindError)
		c.state = StateFailed
		return Outcome{Seq: seq, State: c.state, Kind: cards.KindNotFound}
	}

	c.surface.Notifier.Clear()
	c.surface.Renderer.Render(result)
	c.state = StateDisplayed

	logger.Debug("Search displayed", "term", req.Term, "mode", string(req.Mode), "cards", strconv.Itoa(len(result)))
	return Outcome{Seq: seq, State: c.state, Cards: len(result)}
}

package widget

import (
	"fmt"
	"strings"
	"sync"

	"cardsearch/internal/cards"
)

// DisplayMode selects how a result is shown
type DisplayMode string

const (
	// DisplayMulti shows one block per card
	DisplayMulti DisplayMode = "multi"
	// DisplaySingle shows the first card in fixed name/image slots
	DisplaySingle DisplayMode = "single"
)

// ParseDisplayMode accepts "multi" or "single", case-insensitively
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(s))) {
	case DisplayMulti, "":
		return DisplayMulti, nil
	case DisplaySingle:
		return DisplaySingle, nil
	default:
		return "", fmt.Errorf("unknown display mode %q", s)
	}
}

// Panel is the display state of the results container
type Panel struct {
	Mode    DisplayMode
	Visible bool
	Cards   cards.SearchResult
}

// Shown returns the records the panel puts on screen
func (p Panel) Shown() cards.SearchResult {
	if !p.Visible {
		return nil
	}
	if p.Mode == DisplaySingle && len(p.Cards) > 1 {
		return p.Cards[:1]
	}
	return p.Cards
}

// Display holds the results panel of one widget
type Display struct {
	mu    sync.RWMutex
	panel Panel
}

// NewDisplay returns a hidden panel in the given mode
func NewDisplay(mode DisplayMode) *Display {
	return &Display{panel: Panel{Mode: mode}}
}

// Render replaces the shown cards and reveals the panel. An empty result
// leaves the panel hidden since single mode has nothing to show.
func (d *Display) Render(result cards.SearchResult) {
	d.mu.Lock()
	defer d.mu.Unlock()

	shown := make(cards.SearchResult, len(result))
	copy(shown, result)
	d.panel.Cards = shown
	d.panel.Visible = len(shown) > 0
}

// Clear hides the panel and unmounts every card
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.panel.Cards = nil
	d.panel.Visible = false
}

// Snapshot returns a copy of the panel
func (d *Display) Snapshot() Panel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot()
}

func (d *Display) snapshot() Panel {
	p := d.panel
	if p.Cards != nil {
		p.Cards = append(cards.SearchResult(nil), p.Cards...)
	}
	return p
}

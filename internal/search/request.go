package search

import (
	"errors"
	"strings"

	"cardsearch/internal/cards"
)

// Mode is the kind of lookup the user asked for
type Mode string

const (
	ModeExactName   Mode = "oneCard"
	ModeFuzzyName   Mode = "similarCard"
	ModeArchetype   Mode = "archetype"
	ModeUnspecified Mode = ""
)

// ErrEmptyTerm is returned for a constrained search without a term
var ErrEmptyTerm = errors.New("search term is required")

// ParseMode maps the form's search field onto a Mode. Unknown values fall
// into the unconstrained listing.
func ParseMode(field string) Mode {
	switch Mode(strings.TrimSpace(field)) {
	case ModeExactName:
		return ModeExactName
	case ModeFuzzyName:
		return ModeFuzzyName
	case ModeArchetype:
		return ModeArchetype
	default:
		return ModeUnspecified
	}
}

// QueryParam returns the API key used for the mode
func (m Mode) QueryParam() cards.QueryParam {
	switch m {
	case ModeExactName:
		return cards.ParamName
	case ModeFuzzyName:
		return cards.ParamFuzzyName
	case ModeArchetype:
		return cards.ParamArchetype
	default:
		return cards.ParamNone
	}
}

// Constrained reports whether the mode needs a term
func (m Mode) Constrained() bool {
	return m.QueryParam() != cards.ParamNone
}

// Request is one submitted search
type Request struct {
	Term string
	Mode Mode
}

// NewRequest builds a request from the form fields. present tells whether
// the form had a search field at all; without one defaultMode applies.
func NewRequest(cardName, searchField string, present bool, defaultMode Mode) Request {
	mode := defaultMode
	if present {
		mode = ParseMode(searchField)
	}
	return Request{
		Term: strings.ToLower(strings.TrimSpace(cardName)),
		Mode: mode,
	}
}

// Validate checks the request before any lookup is issued
func (r Request) Validate() error {
	if r.Mode.Constrained() && r.Term == "" {
		return ErrEmptyTerm
	}
	return nil
}

// Value is the query value sent to the API; unconstrained searches send none
func (r Request) Value() string {
	if !r.Mode.Constrained() {
		return ""
	}
	return r.Term
}

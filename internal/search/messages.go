package search

import (
	"strings"

	"cardsearch/internal/cards"
)

// Messages are the user-facing texts of the widget. NotFound may contain a
// %s placeholder for the searched term.
type Messages struct {
	Searching  string `mapstructure:"searching"`
	NotFound   string `mapstructure:"notFound"`
	Transient  string `mapstructure:"transient"`
	Unexpected string `mapstructure:"unexpected"`
	EmptyTerm  string `mapstructure:"emptyTerm"`
}

// DefaultMessages returns the Spanish texts the widget shipped with
func DefaultMessages() Messages {
	return Messages{
		Searching:  "Buscando...",
		NotFound:   "%s no fue encontrado.",
		Transient:  "Error de red. Intente más tarde.",
		Unexpected: "🔥 Error inesperado. Everything is fine... 🔥",
		EmptyTerm:  "Ingrese un nombre para buscar.",
	}
}

// WithDefaults fills empty texts from DefaultMessages
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.Searching == "" {
		m.Searching = d.Searching
	}
	if m.NotFound == "" {
		m.NotFound = d.NotFound
	}
	if m.Transient == "" {
		m.Transient = d.Transient
	}
	if m.Unexpected == "" {
		m.Unexpected = d.Unexpected
	}
	if m.EmptyTerm == "" {
		m.EmptyTerm = d.EmptyTerm
	}
	return m
}

// ForKind returns the message for a failure kind
func (m Messages) ForKind(kind cards.ErrorKind, term string) string {
	switch kind {
	case cards.KindNotFound:
		return strings.ReplaceAll(m.NotFound, "%s", term)
	case cards.KindTransient:
		return m.Transient
	default:
		return m.Unexpected
	}
}

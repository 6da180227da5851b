// Package widget holds the two state slots of a search widget: the
// transient notification and the results panel.
package widget

import "sync"

// Kind is the style of a notification
type Kind int

const (
	KindNone Kind = iota
	KindInfo
	KindError
)

// ClassName returns the style class for the kind; KindNone has none
func (k Kind) ClassName() string {
	switch k {
	case KindInfo:
		return "toast-info"
	case KindError:
		return "toast-error"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// Notification is the value of the notification slot
type Notification struct {
	Message string
	Kind    Kind
}

// Visible reports whether the notification area should be shown
func (n Notification) Visible() bool {
	return n.Kind != KindNone
}

// Notifier holds the single notification slot. A new Notify replaces
// message and kind together.
type Notifier struct {
	mu      sync.RWMutex
	current Notification
}

// NewNotifier returns an empty, hidden notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify sets the slot. KindNone is treated as Clear.
func (n *Notifier) Notify(message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if kind == KindNone {
		n.current = Notification{}
		return
	}
	n.current = Notification{Message: message, Kind: kind}
}

// Clear empties the slot
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = Notification{}
}

// Current returns a copy of the slot
func (n *Notifier) Current() Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

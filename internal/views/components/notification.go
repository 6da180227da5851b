package components

import (
	"context"
	"io"

	"cardsearch/internal/widget"

	"github.com/a-h/templ"
)

// NotificationID is the element the widget stream patches for toasts
const NotificationID = "notifications"

// Notification renders the single toast slot. A cleared slot keeps the
// element mounted with the hidden class and no message.
func Notification(n widget.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "toast hidden"
		if n.Visible() {
			class = "toast " + n.Kind.ClassName()
		}

		_, err := io.WriteString(w, `<div id="`+NotificationID+`" data-notifications class="`+class+
			`" role="status" aria-live="polite"><p id="toast" data-toast>`+
			templ.EscapeString(n.Message)+`</p></div>`)
		return err
	})
}

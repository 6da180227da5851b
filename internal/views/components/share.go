package components

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// ShareID is the element holding the share link
const ShareID = "share"

// SharePath builds the QR image path for a search
func SharePath(cardName, search string) string {
	q := url.Values{}
	q.Set("cardName", cardName)
	if search != "" {
		q.Set("search", search)
	}
	return "/share.png?" + q.Encode()
}

// ShareLink renders the link to the QR code of the last search
func ShareLink(cardName, search string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if cardName == "" {
			_, err := io.WriteString(w, `<a id="`+ShareID+`" class="share hidden"></a>`)
			return err
		}
		_, err := io.WriteString(w, `<a id="`+ShareID+`" class="share" href="`+
			templ.EscapeString(SharePath(cardName, search))+
			`" target="_blank" rel="noopener">Compartir búsqueda (QR)</a>`)
		return err
	})
}

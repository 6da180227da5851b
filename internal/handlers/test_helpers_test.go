package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"cardsearch/internal/cards"
	"cardsearch/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const blueEyesJSON = `{"data":[
	{"id":89631139,"name":"Blue-Eyes White Dragon","card_images":[{"id":89631139,"image_url":"https://images.ygoprodeck.com/images/cards/89631139.jpg"}]},
	{"id":38517737,"name":"Blue-Eyes Alternative White Dragon","card_images":[{"id":38517737,"image_url":"https://images.ygoprodeck.com/images/cards/38517737.jpg"}]}
]}`

// fakeCardAPI stands in for the card database and records queries
type fakeCardAPI struct {
	*httptest.Server

	mu      sync.Mutex
	queries []url.Values
	status  int
	body    string
}

func newFakeCardAPI(t *testing.T) *fakeCardAPI {
	t.Helper()
	api := &fakeCardAPI{status: http.StatusOK, body: blueEyesJSON}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.queries = append(api.queries, r.URL.Query())
		status, body := api.status, api.body
		api.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeCardAPI) respond(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status, a.body = status, body
}

func (a *fakeCardAPI) lastQuery() url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queries) == 0 {
		return nil
	}
	return a.queries[len(a.queries)-1]
}

// newTestHandler creates a handler backed by a fake card API
func newTestHandler(t *testing.T) (*Handler, *fakeCardAPI) {
	t.Helper()
	api := newFakeCardAPI(t)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = api.URL + "/"
	require.NoError(t, cfg.Validate())

	client, err := cards.NewClient(cfg.ClientOptions())
	require.NoError(t, err)

	return New(client, cfg), api
}

// setupTestRouter creates a router without rate limiting or request logging
func setupTestRouter(h *Handler) *chi.Mux {
	return SetupRouter(h, h.cfg, &RouterOptions{
		DisableRateLimiting:  true,
		DisableRequestLogger: true,
	})
}

// postSearch submits the search form the way the page does
func postSearch(router http.Handler, session *http.Cookie, cardName, mode string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("cardName", cardName)
	if mode != "" {
		form.Set("search", mode)
	}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// sessionCookieFrom returns the session cookie set on a response
func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

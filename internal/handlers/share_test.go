package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareQR(t *testing.T) {
	h, _ := newTestHandler(t)
	router := setupTestRouter(h)

	t.Run("serves a png", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/share.png?cardName=dark+magician&search=oneCard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("requires a card name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/share.png?cardName=+", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "https://cards.example.com/?cardName=dark+magician&search=archetype",
		shareLink("https://cards.example.com", "dark magician", "archetype"))
	assert.Equal(t, "http://localhost:8080/?cardName=kuriboh",
		shareLink("http://localhost:8080", "kuriboh", ""))
}

func TestGetBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/share.png", nil)
	req.Host = "localhost:8080"
	assert.Equal(t, "http://localhost:8080", getBaseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "cards.example.com")
	assert.Equal(t, "https://cards.example.com", getBaseURL(req))
}

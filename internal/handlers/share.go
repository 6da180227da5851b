package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// ShareQR serves a PNG QR code of the deep link that reruns a search
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cardName := strings.TrimSpace(q.Get("cardName"))
	if cardName == "" {
		http.Error(w, "cardName is required", http.StatusBadRequest)
		return
	}

	link := shareLink(getBaseURL(r), cardName, q.Get("search"))

	png, err := generateQRCode(link)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to generate share QR code"), "qr error", "link", link)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// shareLink builds the home page URL that pre-fills a search
func shareLink(baseURL, cardName, search string) string {
	v := url.Values{}
	v.Set("cardName", cardName)
	if search != "" {
		v.Set("search", search)
	}
	return baseURL + "/?" + v.Encode()
}

// generateQRCode generates a QR code for the given URL and returns the PNG bytes
func generateQRCode(link string) ([]byte, error) {
	// Create QR code with medium error correction level
	qrc, err := qrcode.NewWith(link,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// The standard writer only writes to files
	tmpFile := filepath.Join(os.TempDir(), "cardsearch_qr_"+uuid.NewString()+".png")
	defer os.Remove(tmpFile)

	w, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8), // 8 pixels per module
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}

	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	return data, nil
}

// getBaseURL constructs the base URL from the request
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	// Check for X-Forwarded-Proto header (common in reverse proxy setups)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

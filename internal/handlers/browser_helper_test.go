package handlers

import (
	"testing"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// skipIfNoBrowser skips the test if Chrome/Chromium is not available
func skipIfNoBrowser(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	path, exists := launcher.LookPath()
	if !exists {
		t.Skip("Skipping browser test: Chrome/Chromium not available")
	}
	t.Logf("Found browser at: %s", path)
}

// launchBrowser starts a headless browser that is closed with the test
func launchBrowser(t *testing.T) *rod.Browser {
	t.Helper()

	l := launcher.New().Headless(true)
	browserURL := l.MustLaunch()
	t.Cleanup(l.Kill)

	browser := rod.New().ControlURL(browserURL).MustConnect()
	t.Cleanup(browser.MustClose)
	return browser
}

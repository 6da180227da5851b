package cards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// QueryParam is the single search key set on a request
type QueryParam string

const (
	ParamName      QueryParam = "name"
	ParamFuzzyName QueryParam = "fname"
	ParamArchetype QueryParam = "archetype"
	ParamNone      QueryParam = ""
)

// searchParams lists every key a request may carry from a previous search
var searchParams = []QueryParam{ParamName, ParamFuzzyName, ParamArchetype}

const (
	DefaultBaseURL   = "https://db.ygoprodeck.com/"
	DefaultPath      = "api/v7/cardinfo.php"
	DefaultUserAgent = "cardsearch/1.0 (+https://db.ygoprodeck.com/api-guide/)"
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL   string
	Path      string
	UserAgent string
	// Timeout of 0 keeps the transport defaults
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client queries the card database API
type Client struct {
	base       *url.URL
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client against the configured origin and path
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, serr.Wrap(err, "invalid card API base URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, serr.New("card API base URL must be absolute: " + opts.BaseURL)
	}
	base.Path = "/" + strings.TrimLeft(opts.Path, "/")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		base:       base,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
	}, nil
}

// BuildURL returns the request URL for one search. Other recognized search
// keys are removed so nothing leaks in from the base URL or a prior call.
func (c *Client) BuildURL(param QueryParam, value string) *url.URL {
	u := *c.base
	q := u.Query()
	for _, p := range searchParams {
		q.Del(string(p))
	}
	if param != ParamNone {
		q.Set(string(param), value)
	}
	u.RawQuery = q.Encode()
	return &u
}

// FetchCards performs one lookup. Every failure is a *FetchError.
func (c *Client) FetchCards(ctx context.Context, param QueryParam, value string) (SearchResult, error) {
	u := c.BuildURL(param, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug("Fetching cards", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, Err: err}
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			logger.Debug("close body failed", "error", e.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: ClassifyStatus(resp.StatusCode), Status: resp.StatusCode}
	}

	var collection CardCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, &FetchError{
			Kind:   KindUnexpected,
			Status: resp.StatusCode,
			Err:    serr.Wrap(err, "failed to decode card response"),
		}
	}

	return collection.Result(), nil
}

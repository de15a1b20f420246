package crates

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/cratesbot/pkg/buildinfo"
	"github.com/matzehuels/cratesbot/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// SearchPageSize is the number of results requested from the search endpoint.
// It matches the platform's cap on inline results per answer.
const SearchPageSize = 50

// Mode selects which listing [Client.Fetch] requests.
// The zero value is the trending mode.
type Mode struct {
	query  string
	search bool
}

// Trending selects the summary endpoint's most recently downloaded crates.
func Trending() Mode { return Mode{} }

// Search selects a relevance-sorted search for query. The query is passed
// through as typed; URL encoding happens when the request is built.
func Search(query string) Mode { return Mode{query: query, search: true} }

// ModeFor picks the mode for an inline query: trending for empty text,
// search otherwise.
func ModeFor(text string) Mode {
	if text == "" {
		return Trending()
	}
	return Search(text)
}

// IsSearch reports whether m is a search.
func (m Mode) IsSearch() bool { return m.search }

// Query returns the search text, or "" for trending.
func (m Mode) Query() string { return m.query }

// String returns "search" or "trending".
func (m Mode) String() string {
	if m.search {
		return "search"
	}
	return "trending"
}

// Client provides access to the crates.io registry API.
//
// Every method issues a single request: no cache, no retries.
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client rooted at baseURL (use [DefaultBaseURL]
// for the public registry). timeout bounds each request; a non-positive value
// selects [integrations.DefaultTimeout].
func NewClient(baseURL string, timeout time.Duration) *Client {
	headers := map[string]string{
		"User-Agent": buildinfo.UserAgent(),
		"Accept":     "application/json",
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(headers, timeout),
		baseURL: baseURL,
	}
}

// Fetch retrieves one page of crates for mode, in the order the registry
// returns them (recency for trending, relevance for search).
//
// Transport failures, non-2xx responses and malformed JSON are all returned
// as errors; a well-formed response with no crates is an empty list, not an
// error.
func (c *Client) Fetch(ctx context.Context, mode Mode) ([]Crate, error) {
	if mode.IsSearch() {
		var data searchResponse
		if err := c.Get(ctx, c.SearchURL(mode.Query()), &data); err != nil {
			return nil, fmt.Errorf("search crates %q: %w", mode.Query(), err)
		}
		return data.Crates, nil
	}

	var data summaryResponse
	if err := c.Get(ctx, c.SummaryURL(), &data); err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}
	return data.MostRecentlyDownloaded, nil
}

// FetchCrate retrieves a single crate by name.
//
// The name is path-escaped, so arbitrary user input is safe to pass; callers
// typically validate it first.
//
// Returns:
//   - the crate on success (never nil when err is nil)
//   - an error wrapping [integrations.ErrNotFound] if the crate doesn't exist
//   - an error wrapping [integrations.ErrNetwork] or [integrations.ErrDecode] otherwise
func (c *Client) FetchCrate(ctx context.Context, name string) (*Crate, error) {
	var data crateResponse
	if err := c.Get(ctx, c.CrateURL(name), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: crate %s", err, name)
		}
		return nil, fmt.Errorf("fetch crate %s: %w", name, err)
	}
	return &data.Crate, nil
}

// SummaryURL returns the URL of the registry summary endpoint.
func (c *Client) SummaryURL() string {
	return c.baseURL + "/summary"
}

// SearchURL returns the URL of a relevance-sorted search for query.
func (c *Client) SearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "relevance")
	params.Set("per_page", strconv.Itoa(SearchPageSize))
	return c.baseURL + "/crates?" + params.Encode()
}

// CrateURL returns the URL of the single-crate endpoint for name.
func (c *Client) CrateURL(name string) string {
	return c.baseURL + "/crates/" + url.PathEscape(name)
}

type summaryResponse struct {
	MostRecentlyDownloaded []Crate `json:"most_recently_downloaded"`
}

type searchResponse struct {
	Crates []Crate `json:"crates"`
}

type crateResponse struct {
	Crate Crate `json:"crate"`
}

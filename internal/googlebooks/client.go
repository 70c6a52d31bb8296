// Package googlebooks implements the Google Books volumes search client
// used by the resolver. One call to Search covers one query strategy:
// it builds a field-scoped query, issues the request with bounded retry
// and exponential backoff, and caches responses (including negative
// ones) in the shared SQLite cache.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/bookmatch/internal/cache"
	errs "github.com/lepinkainen/bookmatch/internal/errors"
	"github.com/lepinkainen/bookmatch/internal/ratelimit"
	"github.com/lepinkainen/bookmatch/internal/textmatch"
)

const (
	defaultBaseURL     = "https://www.googleapis.com/books/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxAttempts = 3
	maxResults         = 10

	cacheTable = "googlebooks_cache"
)

// retryBaseDelay yields 2s, 4s, ... for attempts 1, 2, ...
const retryBaseDelay = time.Second

// Client talks to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
	baseURL     string
	apiKey      string
	languages   []string

	retryMaxAttempts int
	sleeper          func(ctx context.Context, d time.Duration) error
	useCache         bool
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey sets the Google Books API key appended to each request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLanguages sets the preferred language codes sent as langRestrict.
func WithLanguages(langs []string) Option {
	return func(c *Client) {
		if len(langs) > 0 {
			c.languages = langs
		}
	}
}

// WithRetryMaxAttempts overrides the per-strategy attempt budget.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithSleeper overrides how backoff sleeps are performed (tests use
// this to record delays instead of blocking).
func WithSleeper(sleeper func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithRateLimiter overrides the default request limiter.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.rateLimiter = limiter
	}
}

// WithoutCache disables the SQLite response cache for this client.
func WithoutCache() Option {
	return func(c *Client) {
		c.useCache = false
	}
}

// NewClient constructs a Google Books client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient:       &http.Client{Timeout: defaultHTTPTimeout},
		rateLimiter:      ratelimit.New("googlebooks", 1),
		baseURL:          defaultBaseURL,
		languages:        []string{"he", "en"},
		retryMaxAttempts: defaultMaxAttempts,
		useCache:         true,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Languages returns the preferred language codes this client searches in.
func (c *Client) Languages() []string {
	return c.languages
}

// cachedSearchResult wraps a volumes response for the cache so that
// "no results" can be stored with a shorter TTL.
type cachedSearchResult struct {
	Response *VolumesResponse `json:"response"`
	NotFound bool             `json:"not_found"`
}

// Search issues one volumes query for the given title and optional
// author. Both are normalized before being placed into intitle:/inauthor:
// field scopes. Transient failures are retried with exponential backoff;
// an empty result set returns errs.ErrNoResults without retrying.
func (c *Client) Search(ctx context.Context, title, author string) (*VolumesResponse, error) {
	query := buildQuery(title, author)
	if query == "" {
		return nil, errs.ErrNoResults
	}

	fetch := func() (*cachedSearchResult, error) {
		return c.searchWithRetry(ctx, query)
	}

	var cached *cachedSearchResult
	var err error
	if c.useCache {
		cached, _, err = cache.GetOrFetchWithTTL(cacheTable, query, fetch,
			cache.SelectNegativeCacheTTL(func(r *cachedSearchResult) bool {
				return r.NotFound
			}))
	} else {
		cached, err = fetch()
	}
	if err != nil {
		return nil, err
	}

	if cached.NotFound {
		return nil, errs.ErrNoResults
	}
	return cached.Response, nil
}

// buildQuery assembles the field-scoped query string from normalized
// title and author. Spaces become '+' during URL encoding.
func buildQuery(title, author string) string {
	normTitle := textmatch.Normalize(title)
	if normTitle == "" {
		return ""
	}
	query := "intitle:" + normTitle
	if normAuthor := textmatch.Normalize(author); normAuthor != "" {
		query += " inauthor:" + normAuthor
	}
	return query
}

func (c *Client) searchWithRetry(ctx context.Context, query string) (*cachedSearchResult, error) {
	attempts := c.retryAttempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.searchOnce(ctx, query)
		if err == nil {
			if resp.TotalItems == 0 || len(resp.Items) == 0 {
				slog.Debug("Search returned no items", "query", query)
				return &cachedSearchResult{NotFound: true}, nil
			}
			return &cachedSearchResult{Response: resp}, nil
		}

		lastErr = err
		if !errs.IsRetryable(err) {
			return nil, err
		}
		if attempt == attempts {
			break
		}

		delay := retryBaseDelay << attempt
		slog.Warn("Transient Google Books failure, backing off",
			"query", query, "attempt", attempt, "delay", delay, "error", err)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
	}

	return nil, fmt.Errorf("search failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) searchOnce(ctx context.Context, query string) (*VolumesResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("langRestrict", strings.Join(c.languages, ","))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errs.NewStatusError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result VolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

func (c *Client) retryAttempts() int {
	if c.retryMaxAttempts <= 0 {
		return 1
	}
	return c.retryMaxAttempts
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if c.sleeper != nil {
		return c.sleeper(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

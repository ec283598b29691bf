// Package tmdb provides a client for TheMovieDB catalog API.
package tmdb

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/retry"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p/w500"
	defaultTimeout       = 10 * time.Second
	defaultMaxWidth      = 1000
	defaultRatePerSecond = 4 // TMDB allows ~40 requests per 10 seconds
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// ResponseStore persists raw response bodies between runs.
// *cache.CacheDB satisfies it.
type ResponseStore interface {
	Get(table, key string, ttl time.Duration) (string, bool, error)
	Set(table, key, data string) error
}

// Client is a TMDB catalog client. Public operations never return errors:
// failures are logged and turned into empty results.
type Client struct {
	token        string
	baseURL      string
	imageBaseURL string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	retry        retry.Policy
	genres       *GenreCache
	store        ResponseStore
	storeTTL     time.Duration
	logger       *slog.Logger
}

// NewClient creates a new TMDB client authenticating with a bearer token.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		token:        token,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		rateLimiter:  ratelimit.New("TMDB", defaultRatePerSecond),
		retry:        retry.Default(),
		genres:       NewGenreCache(),
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryPolicy replaces the whole retry policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(client *Client) {
		client.retry = p
	}
}

// WithRetryAttempts sets the total number of attempts per request.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retry.MaxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the linear backoff base. Zero disables waiting.
func WithRetryDelay(d time.Duration) Option {
	return func(client *Client) {
		if d >= 0 {
			client.retry.Backoff = retry.Linear(d)
		}
	}
}

// WithClock sets the clock used for backoff waits.
func WithClock(clock clockwork.Clock) Option {
	return func(client *Client) {
		if clock != nil {
			client.retry.Clock = clock
		}
	}
}

// WithRateLimiter sets the client-side rate limiter. nil disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithGenreCache shares a genre cache between clients.
func WithGenreCache(cache *GenreCache) Option {
	return func(client *Client) {
		if cache != nil {
			client.genres = cache
		}
	}
}

// WithResponseCache stores list and detail responses for ttl.
func WithResponseCache(store ResponseStore, ttl time.Duration) Option {
	return func(client *Client) {
		client.store = store
		client.storeTTL = ttl
	}
}

// WithLogger sets the logger used for degraded results.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

package tmdb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FallbackGenres is installed when the genre list cannot be fetched.
var FallbackGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

// GenreCache maps genre ids to names. It is safe for concurrent use.
type GenreCache struct {
	mu     sync.RWMutex
	byID   map[int]string
	loadMu sync.Mutex
}

// NewGenreCache returns an empty cache.
func NewGenreCache() *GenreCache {
	return &GenreCache{byID: make(map[int]string)}
}

// Replace swaps the cache contents for genres.
func (g *GenreCache) Replace(genres []Genre) {
	next := make(map[int]string, len(genres))
	for _, genre := range genres {
		next[genre.ID] = genre.Name
	}

	g.mu.Lock()
	g.byID = next
	g.mu.Unlock()
}

// Lookup returns the name for id.
func (g *GenreCache) Lookup(id int) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	name, ok := g.byID[id]
	return name, ok
}

// Len returns the number of cached genres.
func (g *GenreCache) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byID)
}

// Sorted returns the cached genres ordered by name.
func (g *GenreCache) Sorted() []Genre {
	g.mu.RLock()
	genres := make([]Genre, 0, len(g.byID))
	for id, name := range g.byID {
		genres = append(genres, Genre{ID: id, Name: name})
	}
	g.mu.RUnlock()

	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Name == genres[j].Name {
			return genres[i].ID < genres[j].ID
		}
		return genres[i].Name < genres[j].Name
	})
	return genres
}

// Names resolves ids and joins the known names with ", ". Unknown ids are skipped.
func (g *GenreCache) Names(ids []int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := g.byID[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// Initialize loads the genre list, installing FallbackGenres when the
// request fails or returns nothing. The cache is never empty afterwards.
func (c *Client) Initialize(ctx context.Context) {
	c.genres.loadMu.Lock()
	defer c.genres.loadMu.Unlock()

	if c.genres.Len() > 0 {
		return
	}

	if err := c.RefreshGenres(ctx); err != nil {
		c.logger.Warn("Using fallback genre list", "error", err)
		c.genres.Replace(FallbackGenres)
	}
}

// RefreshGenres re-fetches the genre list. The cache is left untouched on failure.
func (c *Client) RefreshGenres(ctx context.Context) error {
	body, err := c.get(ctx, "/genre/movie/list", nil, false)
	if err != nil {
		return err
	}

	genres, err := decodeGenres(body)
	if err != nil {
		return err
	}
	if len(genres) == 0 {
		return fmt.Errorf("%w: empty genre list", ErrMalformedPayload)
	}

	c.genres.Replace(genres)
	c.logger.Debug("Loaded genres", "count", len(genres))
	return nil
}

// Genres returns all cached genres sorted by name, loading them first if needed.
func (c *Client) Genres(ctx context.Context) []Genre {
	if c.genres.Len() == 0 {
		c.Initialize(ctx)
	}
	return c.genres.Sorted()
}

package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchMovies searches movies by title. Returns an empty slice on any failure.
func (c *Client) SearchMovies(ctx context.Context, query string, filter ListFilter) []MovieSummary {
	params := filter.params(true)
	params.Set("query", query)
	return c.list(ctx, "search", "/search/movie", params)
}

// PopularMovies lists popular, top rated or now playing movies depending on
// filter.SortBy. The sort key selects the endpoint and is not sent upstream.
func (c *Client) PopularMovies(ctx context.Context, filter ListFilter) []MovieSummary {
	return c.list(ctx, "popular", popularEndpoint(filter.SortBy), filter.params(false))
}

// DiscoverMovies runs a filter-driven discovery query, sorted by popularity unless told otherwise.
func (c *Client) DiscoverMovies(ctx context.Context, filter ListFilter) []MovieSummary {
	if filter.SortBy == "" {
		filter.SortBy = SortPopularity
	}
	return c.list(ctx, "discover", "/discover/movie", filter.params(true))
}

// SimilarMovies lists movies similar to id.
func (c *Client) SimilarMovies(ctx context.Context, id int) []MovieSummary {
	return c.list(ctx, "similar", fmt.Sprintf("/movie/%d/similar", id), nil)
}

func popularEndpoint(sortBy string) string {
	switch sortBy {
	case SortRating:
		return "/movie/top_rated"
	case SortReleaseDate:
		return "/movie/now_playing"
	default:
		return "/movie/popular"
	}
}

func (f ListFilter) params(withSort bool) url.Values {
	params := url.Values{}
	if f.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(f.GenreID))
	}
	if f.Year != "" && f.Year != AllYears {
		params.Set("primary_release_year", f.Year)
	}
	if f.MinRating != nil {
		params.Set("vote_average.gte", strconv.FormatFloat(*f.MinRating, 'f', -1, 64))
	}
	if withSort && f.SortBy != "" {
		params.Set("sort_by", f.SortBy)
	}
	return params
}

func (c *Client) list(ctx context.Context, op, path string, params url.Values) []MovieSummary {
	movies, err := c.fetchList(ctx, path, params)
	if err != nil {
		c.logger.Warn("TMDB list request failed", "operation", op, "error", err)
		return []MovieSummary{}
	}
	return movies
}

func (c *Client) fetchList(ctx context.Context, path string, params url.Values) ([]MovieSummary, error) {
	body, err := c.get(ctx, path, params, true)
	if err != nil {
		return nil, err
	}
	items, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return c.summarizeAll(items), nil
}

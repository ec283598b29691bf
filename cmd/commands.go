package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/render"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

// ListFlags are the filters shared by the list commands
type ListFlags struct {
	Genre     string  `help:"Genre name or id"`
	Year      string  `help:"Release year, or \"All Years\" for no filter"`
	MinRating float64 `help:"Minimum average rating (0-10)"`
	Sort      string  `help:"Sort key: popularity.desc, vote_average.desc or release_date.desc"`
}

// filter resolves the flags into a ListFilter, looking genre names up in the genre cache.
func (f ListFlags) filter(ctx context.Context, client *tmdb.Client) (tmdb.ListFilter, error) {
	filter := tmdb.ListFilter{
		Year:   strings.TrimSpace(f.Year),
		SortBy: f.Sort,
	}
	if f.MinRating > 0 {
		rating := f.MinRating
		filter.MinRating = &rating
	}

	genre := strings.TrimSpace(f.Genre)
	if genre == "" {
		return filter, nil
	}
	if id, err := strconv.Atoi(genre); err == nil {
		filter.GenreID = id
		return filter, nil
	}
	for _, g := range client.Genres(ctx) {
		if strings.EqualFold(g.Name, genre) {
			filter.GenreID = g.ID
			return filter, nil
		}
	}
	return filter, fmt.Errorf("unknown genre %q (run 'marquee genres' for the list)", f.Genre)
}

// GenresCmd lists all genres
type GenresCmd struct{}

func (c *GenresCmd) Run(app *App) error {
	client, done, err := app.client()
	if err != nil {
		return err
	}
	defer done()

	genres := client.Genres(app.Ctx)
	return app.emit(genres, func(r *render.Renderer) error { return r.Genres(genres) })
}

// SearchCmd searches movies by title
type SearchCmd struct {
	Query string `arg:"" help:"Title to search for"`
	ListFlags `embed:""`
}

func (c *SearchCmd) Run(app *App) error {
	return runList(app, c.ListFlags, func(client *tmdb.Client, filter tmdb.ListFilter) []tmdb.MovieSummary {
		return client.SearchMovies(app.Ctx, c.Query, filter)
	})
}

// PopularCmd lists popular, top rated or now playing movies depending on --sort
type PopularCmd struct {
	ListFlags `embed:""`
}

func (c *PopularCmd) Run(app *App) error {
	return runList(app, c.ListFlags, func(client *tmdb.Client, filter tmdb.ListFilter) []tmdb.MovieSummary {
		return client.PopularMovies(app.Ctx, filter)
	})
}

// DiscoverCmd runs a filter-driven discovery query
type DiscoverCmd struct {
	ListFlags `embed:""`
}

func (c *DiscoverCmd) Run(app *App) error {
	return runList(app, c.ListFlags, func(client *tmdb.Client, filter tmdb.ListFilter) []tmdb.MovieSummary {
		return client.DiscoverMovies(app.Ctx, filter)
	})
}

// SimilarCmd lists movies similar to a movie
type SimilarCmd struct {
	ID int `arg:"" help:"TMDB movie id"`
}

func (c *SimilarCmd) Run(app *App) error {
	return runList(app, ListFlags{}, func(client *tmdb.Client, _ tmdb.ListFilter) []tmdb.MovieSummary {
		return client.SimilarMovies(app.Ctx, c.ID)
	})
}

func runList(app *App, flags ListFlags, fetch func(*tmdb.Client, tmdb.ListFilter) []tmdb.MovieSummary) error {
	client, done, err := app.client()
	if err != nil {
		return err
	}
	defer done()

	client.Initialize(app.Ctx)
	filter, err := flags.filter(app.Ctx, client)
	if err != nil {
		return err
	}

	movies := fetch(client, filter)
	slog.Debug("Fetched movies", "count", len(movies))
	return app.emit(movies, func(r *render.Renderer) error { return r.Movies(movies) })
}

// DetailsCmd shows one movie in full
type DetailsCmd struct {
	ID int `arg:"" help:"TMDB movie id"`
}

func (c *DetailsCmd) Run(app *App) error {
	client, done, err := app.client()
	if err != nil {
		return err
	}
	defer done()

	detail := client.MovieDetails(app.Ctx, c.ID)
	if detail.Empty() {
		slog.Warn("No details found", "tmdb_id", c.ID)
	}
	return app.emit(detail, func(r *render.Renderer) error { return r.Detail(detail) })
}

// StreamCmd prints the embed player link
type StreamCmd struct {
	ID int `arg:"" help:"TMDB movie id"`
}

func (c *StreamCmd) Run(app *App) error {
	link := tmdb.StreamLink(c.ID)
	return app.emit(map[string]string{"kind": "stream", "url": link}, func(r *render.Renderer) error {
		return r.Link("stream", link)
	})
}

// TrailerCmd prints a YouTube trailer link for a video key, or for a movie's selected trailer
type TrailerCmd struct {
	Key   string `arg:"" optional:"" help:"YouTube video key"`
	Movie int    `help:"Look up the trailer of this TMDB movie id instead"`
}

func (c *TrailerCmd) Run(app *App) error {
	key := c.Key
	if key == "" && c.Movie > 0 {
		client, done, err := app.client()
		if err != nil {
			return err
		}
		defer done()

		detail := client.MovieDetails(app.Ctx, c.Movie)
		if detail.HasTrailer() {
			key = *detail.TrailerKey
		}
	}
	if key == "" && c.Movie == 0 {
		return fmt.Errorf("a video key or --movie is required")
	}

	link := tmdb.TrailerURL(key)
	return app.emit(map[string]string{"kind": "trailer", "url": link}, func(r *render.Renderer) error {
		return r.Link("trailer", link)
	})
}

// PosterCmd downloads a movie poster
type PosterCmd struct {
	ID       int    `arg:"" help:"TMDB movie id"`
	Dir      string `short:"d" help:"Directory to save the poster in" default:"."`
	MaxWidth int    `help:"Scale posters wider than this down" default:"1000"`
}

func (c *PosterCmd) Run(app *App) error {
	client, done, err := app.client()
	if err != nil {
		return err
	}
	defer done()

	detail := client.MovieDetails(app.Ctx, c.ID)
	if detail.Empty() {
		return fmt.Errorf("movie %d not found", c.ID)
	}
	if detail.PosterPath == "" {
		return fmt.Errorf("movie %d: %w", c.ID, tmdb.ErrNoPoster)
	}

	path := filepath.Join(c.Dir, fileutil.BuildPosterFilename(detail.Title, detail.Year))
	if fileutil.FileExists(path) && !config.OverwriteFiles {
		slog.Info("Poster already exists, skipping", "path", path)
		return nil
	}

	if err := client.DownloadPoster(app.Ctx, detail.PosterPath, path, c.MaxWidth); err != nil {
		return fmt.Errorf("download poster: %w", err)
	}
	slog.Info("Saved poster", "title", detail.Title, "path", path)
	return nil
}

// BrowseCmd searches and lets the user open details of results until they quit
type BrowseCmd struct {
	Query string `arg:"" help:"Title to search for"`
	ListFlags `embed:""`
}

func (c *BrowseCmd) Run(app *App) error {
	client, done, err := app.client()
	if err != nil {
		return err
	}
	defer done()

	client.Initialize(app.Ctx)
	filter, err := c.filter(app.Ctx, client)
	if err != nil {
		return err
	}

	movies := client.SearchMovies(app.Ctx, c.Query, filter)
	if len(movies) == 0 {
		return app.emit(movies, func(r *render.Renderer) error { return r.Movies(movies) })
	}

	err = browse(app, client, fmt.Sprintf("Results for: %s", c.Query), movies)
	if errors.IsStopProcessingError(err) {
		slog.Debug("Browse finished", "reason", err)
		return nil
	}
	return err
}

func browse(app *App, client *tmdb.Client, header string, movies []tmdb.MovieSummary) error {
	for {
		result, err := app.selectMovie(header, movies)
		if err != nil {
			return err
		}
		if result.Action != tui.ActionSelected || result.Selection == nil {
			return errors.NewStopProcessingError("picker closed")
		}

		detail := client.MovieDetails(app.Ctx, result.Selection.TMDBID)
		if err := render.New(app.Stdout, app.Format).Detail(detail); err != nil {
			return err
		}
	}
}

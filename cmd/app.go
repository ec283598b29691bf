package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/render"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

// App carries what every command needs: a context, the output target and
// the way to build a catalog client.
type App struct {
	Ctx        context.Context
	Stdout     io.Writer
	Format     render.Format
	OutputFile string

	newClient   func(config.Settings) (*tmdb.Client, func(), error)
	selectMovie func(header string, movies []tmdb.MovieSummary) (tui.SelectionResult, error)
}

func newApp(ctx context.Context, stdout io.Writer, format render.Format, outputFile string) *App {
	return &App{
		Ctx:         ctx,
		Stdout:      stdout,
		Format:      format,
		OutputFile:  outputFile,
		newClient:   newCatalogClient,
		selectMovie: tui.Select,
	}
}

// client builds a catalog client from the current configuration.
// The returned func releases the response cache.
func (a *App) client() (*tmdb.Client, func(), error) {
	return a.newClient(config.Load())
}

func newCatalogClient(s config.Settings) (*tmdb.Client, func(), error) {
	if s.APIToken == "" {
		return nil, nil, fmt.Errorf("TMDB API token is required (set TMDB_API_TOKEN or tmdb.token in config)")
	}

	opts := []tmdb.Option{
		tmdb.WithBaseURL(s.BaseURL),
		tmdb.WithImageBaseURL(s.ImageBaseURL),
		tmdb.WithHTTPClient(&http.Client{Timeout: s.Timeout}),
		tmdb.WithRetryAttempts(s.RetryAttempts),
		tmdb.WithRetryDelay(s.RetryDelay),
		tmdb.WithRateLimiter(ratelimit.New("TMDB", s.RatePerSecond)),
		tmdb.WithLogger(slog.Default()),
	}

	closer := func() {}
	if s.CacheEnabled {
		db, err := cache.Open(s.CacheDBFile)
		if err != nil {
			slog.Warn("Response cache unavailable, continuing without it", "database", s.CacheDBFile, "error", err)
		} else {
			opts = append(opts, tmdb.WithResponseCache(db, s.CacheTTL))
			closer = func() {
				if err := db.Close(); err != nil {
					slog.Warn("Failed to close response cache", "error", err)
				}
			}
		}
	}

	return tmdb.NewClient(s.APIToken, opts...), closer, nil
}

// emit renders through draw, either to stdout or to the --output file.
// JSON exports to a file go through fileutil.WriteJSONFile with the raw value.
func (a *App) emit(value any, draw func(*render.Renderer) error) error {
	if a.OutputFile == "" {
		return draw(render.New(a.Stdout, a.Format))
	}

	if a.Format == render.FormatJSON {
		_, err := fileutil.WriteJSONFile(value, a.OutputFile, config.OverwriteFiles)
		return err
	}

	var buf bytes.Buffer
	if err := draw(render.New(&buf, a.Format)); err != nil {
		return err
	}
	written, err := fileutil.WriteFileWithOverwrite(a.OutputFile, buf.Bytes(), 0o644, config.OverwriteFiles)
	if err != nil {
		return err
	}
	if written {
		slog.Info("Wrote output file", "filename", a.OutputFile, "format", a.Format)
	}
	return nil
}

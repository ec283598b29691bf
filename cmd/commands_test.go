package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/render"
	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

// fakeCatalog serves a tiny TMDB API and records the queries it saw.
type fakeCatalog struct {
	mu      sync.Mutex
	queries map[string]url.Values
}

func (f *fakeCatalog) query(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries[r.URL.Path] = r.URL.Query()
	f.mu.Unlock()

	matrix := map[string]any{"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "vote_average": 8.2, "genre_ids": []int{28, 878}, "poster_path": "/matrix.png"}
	var payload any
	switch r.URL.Path {
	case "/genre/movie/list":
		payload = map[string]any{"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}}}
	case "/search/movie", "/movie/popular", "/movie/top_rated", "/discover/movie", "/movie/603/similar":
		payload = map[string]any{"results": []any{matrix}}
	case "/movie/603":
		payload = map[string]any{
			"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "runtime": 136, "poster_path": "/matrix.png",
			"genres":  []map[string]any{{"id": 28, "name": "Action"}},
			"credits": map[string]any{"crew": []map[string]any{{"name": "Lana Wachowski", "job": "Director", "department": "Directing"}}},
			"videos":  map[string]any{"results": []map[string]any{{"key": "m8e-FF8MsqU", "name": "Trailer", "type": "Trailer", "site": "YouTube", "official": true}}},
		}
	case "/movie/7":
		payload = map[string]any{"id": 7, "title": "No Poster"}
	case "/img/matrix.png":
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, image.NewRGBA(image.Rect(0, 0, 20, 30)))
		return
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func newTestApp(t *testing.T, format render.Format) (*App, *bytes.Buffer, *fakeCatalog) {
	t.Helper()

	catalog := &fakeCatalog{queries: make(map[string]url.Values)}
	server := httptest.NewServer(catalog)
	t.Cleanup(server.Close)

	testutil.SetTestConfig(t, server.URL)
	viper.Set("tmdb.imagebaseurl", server.URL+"/img")

	var out bytes.Buffer
	app := newApp(context.Background(), &out, format, "")
	return app, &out, catalog
}

func TestNewCatalogClientRequiresToken(t *testing.T) {
	_, _, err := newCatalogClient(config.Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TMDB_API_TOKEN")
}

func TestNewCatalogClientWithCache(t *testing.T) {
	env := testutil.NewTestEnv(t)
	client, done, err := newCatalogClient(config.Settings{
		APIToken:     "token",
		CacheEnabled: true,
		CacheDBFile:  env.Path("cache.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	done()

	assert.True(t, env.FileExists("cache.db"))
}

func TestGenresCommand(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatText)

	require.NoError(t, (&GenresCmd{}).Run(app))
	assert.Equal(t, "    28  Action\n   878  Science Fiction\n", out.String())
}

func TestSearchCommandResolvesGenreName(t *testing.T) {
	app, out, catalog := newTestApp(t, render.FormatJSON)

	cmd := &SearchCmd{Query: "matrix", ListFlags: ListFlags{Genre: "science fiction", Year: "1999", MinRating: 7}}
	require.NoError(t, cmd.Run(app))

	q := catalog.query("/search/movie")
	assert.Equal(t, "matrix", q.Get("query"))
	assert.Equal(t, "878", q.Get("with_genres"))
	assert.Equal(t, "1999", q.Get("primary_release_year"))
	assert.Equal(t, "7", q.Get("vote_average.gte"))

	var movies []tmdb.MovieSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "Action, Science Fiction", movies[0].Genre)
}

func TestSearchCommandUnknownGenre(t *testing.T) {
	app, _, _ := newTestApp(t, render.FormatText)

	err := (&SearchCmd{Query: "matrix", ListFlags: ListFlags{Genre: "Westerns"}}).Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown genre "Westerns"`)
}

func TestPopularCommandUsesSortEndpoint(t *testing.T) {
	app, out, catalog := newTestApp(t, render.FormatText)

	require.NoError(t, (&PopularCmd{ListFlags: ListFlags{Sort: tmdb.SortRating, Genre: "28"}}).Run(app))

	q := catalog.query("/movie/top_rated")
	require.NotNil(t, q)
	assert.Equal(t, "28", q.Get("with_genres"))
	assert.Contains(t, out.String(), "The Matrix (1999)")
}

func TestDiscoverAndSimilarCommands(t *testing.T) {
	app, out, catalog := newTestApp(t, render.FormatYAML)

	require.NoError(t, (&DiscoverCmd{}).Run(app))
	assert.Equal(t, tmdb.SortPopularity, catalog.query("/discover/movie").Get("sort_by"))
	assert.Contains(t, out.String(), "tmdb_id: 603")

	out.Reset()
	require.NoError(t, (&SimilarCmd{ID: 603}).Run(app))
	assert.Contains(t, out.String(), "title: The Matrix")
}

func TestDetailsCommand(t *testing.T) {
	app, out, catalog := newTestApp(t, render.FormatText)

	require.NoError(t, (&DetailsCmd{ID: 603}).Run(app))

	assert.Equal(t, "credits,videos,recommendations", catalog.query("/movie/603").Get("append_to_response"))
	assert.Contains(t, out.String(), "Lana Wachowski")
	assert.Contains(t, out.String(), "2h 16m")
	assert.Contains(t, out.String(), "https://www.youtube.com/watch?v=m8e-FF8MsqU")
}

func TestDetailsCommandUnknownMovie(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatText)

	require.NoError(t, (&DetailsCmd{ID: 999}).Run(app))
	assert.Equal(t, "No details available\n", out.String())
}

func TestStreamCommand(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatText)

	require.NoError(t, (&StreamCmd{ID: 603}).Run(app))
	assert.Equal(t, "https://vidsrc.to/embed/movie/603\n", out.String())
}

func TestTrailerCommand(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatText)

	require.NoError(t, (&TrailerCmd{Key: "abc123"}).Run(app))
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123\n", out.String())

	out.Reset()
	require.NoError(t, (&TrailerCmd{Movie: 603}).Run(app))
	assert.Equal(t, "https://www.youtube.com/watch?v=m8e-FF8MsqU\n", out.String())

	out.Reset()
	require.NoError(t, (&TrailerCmd{Movie: 7}).Run(app))
	assert.Equal(t, "No trailer link available\n", out.String())

	assert.Error(t, (&TrailerCmd{}).Run(app))
}

func TestPosterCommand(t *testing.T) {
	app, _, _ := newTestApp(t, render.FormatText)
	dir := t.TempDir()

	require.NoError(t, (&PosterCmd{ID: 603, Dir: dir, MaxWidth: 1000}).Run(app))
	assert.True(t, fileutil.FileExists(filepath.Join(dir, "The Matrix (1999) - poster.jpg")))

	err := (&PosterCmd{ID: 7, Dir: dir}).Run(app)
	assert.ErrorIs(t, err, tmdb.ErrNoPoster)

	err = (&PosterCmd{ID: 999, Dir: dir}).Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "movie 999 not found")
}

func TestOutputFile(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatJSON)
	env := testutil.NewTestEnv(t)
	app.OutputFile = env.Path("exports", "genres.json")

	require.NoError(t, (&GenresCmd{}).Run(app))

	assert.Empty(t, out.String())
	var genres []tmdb.Genre
	require.NoError(t, json.Unmarshal([]byte(env.ReadFileString("exports/genres.json")), &genres))
	assert.Len(t, genres, 2)
}

func TestOutputFileRespectsOverwrite(t *testing.T) {
	app, _, _ := newTestApp(t, render.FormatMarkdown)
	env := testutil.NewTestEnv(t)
	env.WriteFile("matrix.md", []byte("keep me"))
	app.OutputFile = env.Path("matrix.md")

	config.OverwriteFiles = false
	require.NoError(t, (&DetailsCmd{ID: 603}).Run(app))
	assert.Equal(t, "keep me", env.ReadFileString("matrix.md"))

	config.OverwriteFiles = true
	require.NoError(t, (&DetailsCmd{ID: 603}).Run(app))
	assert.Contains(t, env.ReadFileString("matrix.md"), `title: "The Matrix"`)
}

func TestBrowseCommand(t *testing.T) {
	app, out, _ := newTestApp(t, render.FormatText)

	calls := 0
	app.selectMovie = func(header string, movies []tmdb.MovieSummary) (tui.SelectionResult, error) {
		calls++
		assert.Equal(t, "Results for: matrix", header)
		if calls == 1 {
			movie := movies[0]
			return tui.SelectionResult{Action: tui.ActionSelected, Selection: &movie}, nil
		}
		return tui.SelectionResult{Action: tui.ActionStopped}, nil
	}

	require.NoError(t, (&BrowseCmd{Query: "matrix"}).Run(app))
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "Director: Lana Wachowski")
}

func TestMissingTokenFails(t *testing.T) {
	app, _, _ := newTestApp(t, render.FormatText)
	viper.Set("tmdb.token", "")
	config.APIToken = ""

	err := (&GenresCmd{}).Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
}

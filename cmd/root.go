package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/render"
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Output flags
	Format    string `short:"F" help:"Output format (text, json, yaml, markdown)" enum:"text,json,yaml,markdown" default:"text"`
	Output    string `short:"o" help:"Write output to this file instead of stdout"`
	Overwrite bool   `help:"Overwrite existing output and poster files"`

	// Behaviour flags, empty values keep config.yaml settings
	LogLevel    string `help:"Log level (debug, info, warn, error)"`
	UseCache    bool   `help:"Cache API responses in a local SQLite database"`
	CacheDBFile string `help:"Path to cache SQLite database file"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 24h)"`

	Genres   GenresCmd   `cmd:"" help:"List movie genres"`
	Search   SearchCmd   `cmd:"" help:"Search movies by title"`
	Popular  PopularCmd  `cmd:"" help:"List popular, top rated or now playing movies"`
	Discover DiscoverCmd `cmd:"" help:"Discover movies by genre, year and rating"`
	Details  DetailsCmd  `cmd:"" help:"Show full details for a movie"`
	Similar  SimilarCmd  `cmd:"" help:"List movies similar to a movie"`
	Stream   StreamCmd   `cmd:"" help:"Print the stream link for a movie"`
	Trailer  TrailerCmd  `cmd:"" help:"Print the YouTube trailer link for a video key or movie"`
	Poster   PosterCmd   `cmd:"" help:"Download a movie poster"`
	Browse   BrowseCmd   `cmd:"" help:"Search and pick movies interactively"`
	Cache    CacheCmd    `cmd:"" help:"Manage the response cache"`
}

// CacheCmd groups the cache subcommands
type CacheCmd struct {
	Clear cache.ClearCmd `cmd:"" help:"Remove cached API responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initConfig()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Browse the TMDB movie catalog from the terminal."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)
	initLogging(os.Stderr, config.ParseLogLevel(viper.GetString("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app := newApp(ctx, os.Stdout, render.Format(cli.Format), cli.Output)
	err := kctx.Run(app)
	stop()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support, e.g. MARQUEE_CACHE_ENABLED
	viper.SetEnvPrefix("marquee")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("tmdb.token", "TMDB_API_TOKEN", "MARQUEE_TMDB_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.config/marquee")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)

	if cli.LogLevel != "" {
		viper.Set("log.level", cli.LogLevel)
	}
	if cli.UseCache {
		viper.Set("cache.enabled", true)
	}
	if cli.CacheDBFile != "" {
		viper.Set("cache.dbfile", cli.CacheDBFile)
	}
	if cli.CacheTTL != "" {
		viper.Set("cache.ttl", cli.CacheTTL)
	}
}

func initLogging(w io.Writer, level slog.Level) {
	// Logs go to stderr so rendered output on stdout stays pipeable
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

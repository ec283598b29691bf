// Package config holds marquee's viper-backed settings.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing output files may be replaced
	OverwriteFiles bool
	// APIToken is the bearer token for the catalog API
	APIToken string
)

// Settings is the typed view of the catalog configuration.
type Settings struct {
	APIToken      string
	BaseURL       string
	ImageBaseURL  string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	RatePerSecond int

	CacheEnabled bool
	CacheDBFile  string
	CacheTTL     time.Duration

	LogLevel string
}

// SetDefaults registers every default value with viper.
func SetDefaults() {
	viper.SetDefault("OverwriteFiles", false)

	viper.SetDefault("tmdb.baseurl", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.imagebaseurl", "https://image.tmdb.org/t/p/w500")
	viper.SetDefault("tmdb.timeout", "10s")
	viper.SetDefault("tmdb.retryattempts", 3)
	viper.SetDefault("tmdb.retrydelay", "1s")
	viper.SetDefault("tmdb.ratepersecond", 4) // TMDB allows ~40 requests per 10 seconds

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.dbfile", "./marquee-cache.db")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("log.level", "info")
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OverwriteFiles = viper.GetBool("OverwriteFiles")
	APIToken = viper.GetString("tmdb.token")
}

// Load reads the current viper state into Settings.
func Load() Settings {
	token := viper.GetString("tmdb.token")
	if token == "" {
		token = APIToken
	}

	return Settings{
		APIToken:      token,
		BaseURL:       viper.GetString("tmdb.baseurl"),
		ImageBaseURL:  viper.GetString("tmdb.imagebaseurl"),
		Timeout:       durationOr("tmdb.timeout", 10*time.Second),
		RetryAttempts: viper.GetInt("tmdb.retryattempts"),
		RetryDelay:    durationOr("tmdb.retrydelay", time.Second),
		RatePerSecond: viper.GetInt("tmdb.ratepersecond"),
		CacheEnabled:  viper.GetBool("cache.enabled"),
		CacheDBFile:   viper.GetString("cache.dbfile"),
		CacheTTL:      durationOr("cache.ttl", 24*time.Hour),
		LogLevel:      viper.GetString("log.level"),
	}
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("Invalid duration in config, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

// ParseLogLevel maps a config string to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

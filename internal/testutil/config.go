package testutil

import (
	"testing"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	APIToken       string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		APIToken:       config.APIToken,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.APIToken = state.APIToken
}

// ResetConfig resets viper and restores config globals when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig installs defaults pointing the catalog client at baseURL
// with instant retries and no client-side throttling.
func SetTestConfig(t *testing.T, baseURL string) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()

	viper.Set("tmdb.token", "test-token")
	viper.Set("tmdb.baseurl", baseURL)
	viper.Set("tmdb.imagebaseurl", "https://images.test/w500")
	viper.Set("tmdb.retrydelay", "0s")
	viper.Set("tmdb.ratepersecond", 0)
	viper.Set("cache.enabled", false)

	config.APIToken = "test-token"
	config.OverwriteFiles = true
}

package testutil

import (
	"testing"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFile("nested/dir/file.txt", []byte("hello"))

	assert.True(t, env.FileExists("nested/dir/file.txt"))
	assert.False(t, env.FileExists("nested/dir"))
	assert.Equal(t, "hello", env.ReadFileString("nested/dir/file.txt"))
}

func TestTestEnv_PathStaysInSandbox(t *testing.T) {
	env := NewTestEnv(t)

	p := env.Path("a", "..", "b")
	assert.Equal(t, env.Path("b"), p)
	assert.True(t, env.isWithinSandbox(p))
	assert.False(t, env.isWithinSandbox("/etc/passwd"))
}

func TestSetTestConfig(t *testing.T) {
	SetTestConfig(t, "http://catalog.test")

	assert.Equal(t, "http://catalog.test", viper.GetString("tmdb.baseurl"))
	assert.Equal(t, "test-token", config.APIToken)

	s := config.Load()
	require.Equal(t, "test-token", s.APIToken)
	assert.Zero(t, s.RetryDelay)
	assert.Zero(t, s.RatePerSecond)
}

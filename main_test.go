package main

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMainRunsCLI(t *testing.T) {
	runs := 0
	saved := execute
	t.Cleanup(func() { execute = saved })
	execute = func() { runs++ }

	main()

	assert.Equal(t, 1, runs)
}

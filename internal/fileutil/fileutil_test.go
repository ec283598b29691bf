package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "The Matrix", expected: "The Matrix"},
		{input: "Star Wars: A New Hope", expected: "Star Wars - A New Hope"},
		{input: "AC/DC\\Live", expected: "AC-DC-Live"},
		{input: "What? Why*", expected: "What Why"},
		{input: `Say "Hi" <now> | later`, expected: "Say 'Hi' now - later"},
		{input: "  padded  ", expected: "padded"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestBuildPosterFilename(t *testing.T) {
	assert.Equal(t, "The Matrix (1999) - poster.jpg", BuildPosterFilename("The Matrix", "1999"))
	assert.Equal(t, "Alien - poster.jpg", BuildPosterFilename("Alien", "Unknown"))
	assert.Equal(t, "Untitled - poster.jpg", BuildPosterFilename("", ""))
	assert.Equal(t, "Mission - Impossible (1996) - poster.jpg", BuildPosterFilename("Mission: Impossible", "1996"))
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFile("exists.txt", []byte("x"))

	assert.True(t, FileExists(env.Path("exists.txt")))
	assert.False(t, FileExists(env.Path("missing.txt")))
	assert.False(t, FileExists(env.RootDir()))
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)

	testCases := []struct {
		name           string
		file           string
		overwrite      bool
		existingData   []byte
		expectedResult bool
		expectedData   string
	}{
		{
			name:           "new file",
			file:           "nested/new-file.txt",
			expectedResult: true,
			expectedData:   "new content",
		},
		{
			name:           "existing file with overwrite",
			file:           "existing-overwrite.txt",
			overwrite:      true,
			existingData:   []byte("old content"),
			expectedResult: true,
			expectedData:   "new content",
		},
		{
			name:           "existing file without overwrite",
			file:           "existing-no-overwrite.txt",
			existingData:   []byte("old content"),
			expectedResult: false,
			expectedData:   "old content",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.existingData != nil {
				env.WriteFile(tc.file, tc.existingData)
			}

			result, err := WriteFileWithOverwrite(env.Path(tc.file), []byte("new content"), 0o644, tc.overwrite)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, result)
			assert.Equal(t, tc.expectedData, env.ReadFileString(tc.file))
		})
	}
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("out", "movies.json")
	data := []map[string]any{{"tmdb_id": 603, "title": "The Matrix"}}

	written, err := WriteJSONFile(data, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "The Matrix", decoded[0]["title"])

	written, err = WriteJSONFile([]int{1}, path, false)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	written, err := WriteJSONFile(map[string]any{"ch": make(chan int)}, path, true)
	require.Error(t, err)
	assert.False(t, written)
	assert.False(t, FileExists(path))
}

package tui

import (
	"bytes"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

func sampleMovies() []tmdb.MovieSummary {
	return []tmdb.MovieSummary{
		{TMDBID: 603, Title: "The Matrix", Year: "1999", VoteAverage: 8.2, Genre: "Action, Science Fiction", Overview: "A hacker learns the truth."},
		{TMDBID: 604, Title: "The Matrix Reloaded", Year: "2003", VoteAverage: 7.1},
	}
}

func newTestModel() *model {
	movies := sampleMovies()
	items := make([]movieItem, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{MovieSummary: movie}
	}
	return newModel("Results for: matrix", items)
}

func TestModelEnterSelectsCurrentItem(t *testing.T) {
	m := newTestModel()

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, ActionSelected, m.result.Action)
	require.NotNil(t, m.result.Selection)
	assert.Equal(t, 604, m.result.Selection.TMDBID)
}

func TestModelQuitKeysStop(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := newTestModel()
			_, cmd := m.Update(key)

			require.NotNil(t, cmd)
			assert.Equal(t, ActionStopped, m.result.Action)
			assert.Nil(t, m.result.Selection)
		})
	}
}

func TestModelViewShowsMovies(t *testing.T) {
	m := newTestModel()
	view := m.View()

	assert.Contains(t, view, "Results for: matrix")
	assert.Contains(t, view, "THE MATRIX (1999)")
	assert.Contains(t, view, "8.2/10")
	assert.Contains(t, view, "Action, Science Fiction")
}

func TestDelegateRenderIgnoresForeignItems(t *testing.T) {
	m := newTestModel()
	var buf bytes.Buffer

	newDelegate().Render(&buf, m.list, 0, nil)
	assert.Empty(t, buf.String())
}

func TestSelectEmptyListSkipsProgram(t *testing.T) {
	called := false
	restore := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		called = true
		return m, nil
	}
	t.Cleanup(func() { runProgram = restore })

	result, err := Select("nothing", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
	assert.False(t, called)
}

func TestSelectReturnsProgramResult(t *testing.T) {
	restore := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, nil
	}
	t.Cleanup(func() { runProgram = restore })

	result, err := Select("matrix", sampleMovies())
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	assert.Equal(t, "The Matrix", result.Selection.Title)
}

func TestSelectPropagatesProgramError(t *testing.T) {
	restore := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		return nil, errors.New("no tty")
	}
	t.Cleanup(func() { runProgram = restore })

	_, err := Select("matrix", sampleMovies())
	require.EqualError(t, err, "no tty")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a   b\n c", 0))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "Amélie", truncate("Amélie", 6))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 72, clamp(72, 100, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
	assert.Equal(t, 72, clamp(72, 0, 40))
}

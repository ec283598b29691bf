// Package render writes catalog records as text, JSON, YAML or markdown.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Format selects the output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Renderer writes records to w in one format.
type Renderer struct {
	w      io.Writer
	format Format
	styles styles
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
}

// New returns a Renderer for w. Styling is dropped when w is not a terminal.
func New(w io.Writer, format Format) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:      w,
		format: format,
		styles: styles{
			title:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			heading: lr.NewStyle().Bold(true).Underline(true),
			label:   lr.NewStyle().Foreground(lipgloss.Color("110")),
			faint:   lr.NewStyle().Faint(true),
		},
	}
}

type linkRecord struct {
	Kind string `json:"kind" yaml:"kind"`
	URL  string `json:"url" yaml:"url"`
}

// Genres writes a genre list.
func (r *Renderer) Genres(genres []tmdb.Genre) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(genres)
	case FormatMarkdown:
		return r.write(genresMarkdown(genres))
	default:
		return r.genresText(genres)
	}
}

// Movies writes a list of movie summaries.
func (r *Renderer) Movies(movies []tmdb.MovieSummary) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(movies)
	case FormatMarkdown:
		return r.write(moviesMarkdown(movies))
	default:
		return r.moviesText(movies)
	}
}

// Detail writes one movie detail record.
func (r *Renderer) Detail(detail tmdb.MovieDetail) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(detail)
	case FormatMarkdown:
		return r.write(detailMarkdown(detail))
	default:
		return r.detailText(detail)
	}
}

// Link writes a single URL such as a stream or trailer link.
func (r *Renderer) Link(kind, url string) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(linkRecord{Kind: kind, URL: url})
	case FormatMarkdown:
		return r.write(fmt.Sprintf("[%s](%s)\n", kind, url))
	default:
		if url == "" {
			return r.write(fmt.Sprintf("No %s link available\n", kind))
		}
		return r.write(url + "\n")
	}
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

func (r *Renderer) genresText(genres []tmdb.Genre) error {
	var b strings.Builder
	for _, g := range genres {
		fmt.Fprintf(&b, "%6d  %s\n", g.ID, g.Name)
	}
	return r.write(b.String())
}

func (r *Renderer) moviesText(movies []tmdb.MovieSummary) error {
	if len(movies) == 0 {
		return r.write("No movies found\n")
	}

	var b strings.Builder
	for _, m := range movies {
		fmt.Fprintf(&b, "%s %s\n", r.styles.title.Render(fmt.Sprintf("%s (%s)", m.Title, m.Year)), r.styles.faint.Render(fmt.Sprintf("#%d", m.TMDBID)))
		fmt.Fprintf(&b, "  %s %.1f/10", r.styles.label.Render("Rating:"), m.VoteAverage)
		if m.Genre != "" {
			fmt.Fprintf(&b, "  %s %s", r.styles.label.Render("Genre:"), m.Genre)
		}
		b.WriteString("\n")
		if m.Overview != "" {
			fmt.Fprintf(&b, "  %s\n", oneLine(m.Overview, 100))
		}
	}
	return r.write(b.String())
}

func (r *Renderer) detailText(d tmdb.MovieDetail) error {
	if d.Empty() {
		return r.write("No details available\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.styles.title.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year)))
	fmt.Fprintf(&b, "%s %.1f/10  %s %s  %s %s\n",
		r.styles.label.Render("Rating:"), d.VoteAverage,
		r.styles.label.Render("Runtime:"), d.RuntimeFormatted,
		r.styles.label.Render("Genre:"), d.Genre)
	fmt.Fprintf(&b, "%s %s\n", r.styles.label.Render("Director:"), d.Director)
	fmt.Fprintf(&b, "%s %s\n", r.styles.label.Render("Cast:"), d.Cast)
	if d.PosterPath != "" {
		fmt.Fprintf(&b, "%s %s\n", r.styles.label.Render("Poster:"), d.PosterPath)
	}
	if d.HasTrailer() {
		fmt.Fprintf(&b, "%s %s\n", r.styles.label.Render("Trailer:"), tmdb.TrailerURL(*d.TrailerKey))
	}
	fmt.Fprintf(&b, "%s %s\n", r.styles.label.Render("Stream:"), tmdb.StreamLink(d.TMDBID))

	if d.Overview != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", r.styles.heading.Render("Overview"), d.Overview)
	}

	if len(d.CastList) > 0 {
		fmt.Fprintf(&b, "\n%s\n", r.styles.heading.Render("Cast"))
		for _, c := range d.CastList {
			if c.Character != "" {
				fmt.Fprintf(&b, "  %s as %s\n", c.Name, c.Character)
			} else {
				fmt.Fprintf(&b, "  %s\n", c.Name)
			}
		}
	}

	if len(d.CrewByDepartment) > 0 {
		fmt.Fprintf(&b, "\n%s\n", r.styles.heading.Render("Crew"))
		for _, dept := range sortedKeys(d.CrewByDepartment) {
			fmt.Fprintf(&b, "  %s: %s\n", dept, strings.Join(d.CrewByDepartment[dept], ", "))
		}
	}

	if len(d.SimilarMovies) > 0 {
		fmt.Fprintf(&b, "\n%s\n", r.styles.heading.Render("Similar"))
		for _, s := range d.SimilarMovies {
			fmt.Fprintf(&b, "  %s %s\n", s.Title, r.styles.faint.Render(fmt.Sprintf("#%d", s.TMDBID)))
		}
	}

	return r.write(b.String())
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func oneLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

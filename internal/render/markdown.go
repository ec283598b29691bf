package render

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

func genresMarkdown(genres []tmdb.Genre) string {
	items := make([]string, 0, len(genres))
	for _, g := range genres {
		items = append(items, fmt.Sprintf("%s (`%d`)", g.Name, g.ID))
	}
	return fileutil.NewMarkdownBuilder().AddHeading("Genres").AddList(items).Build()
}

func moviesMarkdown(movies []tmdb.MovieSummary) string {
	var b strings.Builder
	b.WriteString("| ID | Title | Year | Rating | Genre |\n")
	b.WriteString("|---:|---|---|---:|---|\n")
	for _, m := range movies {
		fmt.Fprintf(&b, "| %d | %s | %s | %.1f | %s |\n", m.TMDBID, escapeCell(m.Title), m.Year, m.VoteAverage, escapeCell(m.Genre))
	}
	return b.String()
}

// detailMarkdown builds an Obsidian-style note for one movie.
func detailMarkdown(d tmdb.MovieDetail) string {
	mb := fileutil.NewMarkdownBuilder()
	if d.Empty() {
		return mb.AddParagraph("No details available").Build()
	}

	mb.AddTitle(d.Title).
		AddField("tmdb_id", d.TMDBID).
		AddField("year", d.Year).
		AddField("release_date", d.ReleaseDate).
		AddField("rating", d.VoteAverage).
		AddField("runtime", d.Runtime).
		AddField("director", d.Director).
		AddStringArray("genres", d.GenresList)

	mb.AddImage(d.PosterPath).
		AddHeading("Overview").
		AddParagraph(d.Overview)

	if len(d.CastList) > 0 {
		cast := make([]string, 0, len(d.CastList))
		for _, c := range d.CastList {
			if c.Character != "" {
				cast = append(cast, fmt.Sprintf("%s as %s", c.Name, c.Character))
			} else {
				cast = append(cast, c.Name)
			}
		}
		mb.AddHeading("Cast").AddList(cast)
	}

	if len(d.CrewByDepartment) > 0 {
		lines := make([]string, 0, len(d.CrewByDepartment))
		for _, dept := range sortedKeys(d.CrewByDepartment) {
			lines = append(lines, fmt.Sprintf("**%s**: %s", dept, strings.Join(d.CrewByDepartment[dept], ", ")))
		}
		mb.AddCallout("info", "Crew", strings.Join(lines, "\n"))
	}

	if len(d.SimilarMovies) > 0 {
		similar := make([]string, 0, len(d.SimilarMovies))
		for _, s := range d.SimilarMovies {
			similar = append(similar, fmt.Sprintf("%s (`%d`)", s.Title, s.TMDBID))
		}
		mb.AddHeading("Similar").AddList(similar)
	}

	if d.HasTrailer() {
		mb.AddExternalLink("Trailer", tmdb.TrailerURL(*d.TrailerKey))
	}
	mb.AddExternalLink("Stream", tmdb.StreamLink(d.TMDBID))

	return mb.Build()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

package tmdb

import (
	"fmt"
	"strings"
)

// yearOf returns the part of a release date before the first "-", or
// UnknownValue for dates shorter than four characters.
func yearOf(releaseDate string) string {
	if len(releaseDate) < 4 {
		return UnknownValue
	}
	year, _, _ := strings.Cut(releaseDate, "-")
	return year
}

// formatRuntime renders minutes as "2h 16m" or "45m".
func formatRuntime(minutes int) string {
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes%60)
}

func (c *Client) imagePath(path *string) string {
	if path == nil {
		return ""
	}
	return c.ImageURL(*path)
}

func (c *Client) summarize(item listItem) MovieSummary {
	releaseDate := stringOr(item.ReleaseDate, "")
	summary := MovieSummary{
		Title:       stringOr(item.Title, UnknownValue),
		Overview:    stringOr(item.Overview, ""),
		ReleaseDate: releaseDate,
		Year:        yearOf(releaseDate),
		PosterPath:  c.imagePath(item.PosterPath),
		Genre:       c.genres.Names(item.GenreIDs),
	}
	if item.ID != nil {
		summary.TMDBID = *item.ID
	}
	if item.VoteAverage != nil {
		summary.VoteAverage = *item.VoteAverage
	}
	return summary
}

func (c *Client) summarizeAll(items []listItem) []MovieSummary {
	movies := make([]MovieSummary, 0, len(items))
	for _, item := range items {
		if item.ID == nil {
			continue
		}
		movies = append(movies, c.summarize(item))
	}
	return movies
}

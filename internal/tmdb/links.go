package tmdb

import "strconv"

const (
	streamBaseURL  = "https://vidsrc.to/embed/movie/"
	trailerBaseURL = "https://www.youtube.com/watch?v="
)

// StreamLink returns the embed player URL for a movie.
func StreamLink(id int) string {
	return streamBaseURL + strconv.Itoa(id)
}

// TrailerURL returns the YouTube watch URL for key, or "" when key is empty.
func TrailerURL(key string) string {
	if key == "" {
		return ""
	}
	return trailerBaseURL + key
}

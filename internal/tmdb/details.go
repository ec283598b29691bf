package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	maxCast          = 8
	maxSimilarMovies = 6
	jobDirector      = "Director"
	siteYouTube      = "YouTube"
	videoTypeTrailer = "Trailer"
)

// MovieDetails fetches one movie with credits, videos and recommendations.
// Returns the empty MovieDetail on any failure.
func (c *Client) MovieDetails(ctx context.Context, id int) MovieDetail {
	detail, err := c.fetchDetails(ctx, id)
	if err != nil {
		c.logger.Warn("TMDB details request failed", "tmdb_id", id, "error", err)
		return MovieDetail{}
	}
	return detail
}

func (c *Client) fetchDetails(ctx context.Context, id int) (MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,recommendations")

	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, true)
	if err != nil {
		return MovieDetail{}, err
	}
	payload, err := decodeDetail(body)
	if err != nil {
		return MovieDetail{}, err
	}
	return c.buildDetail(payload), nil
}

func (c *Client) buildDetail(p *detailPayload) MovieDetail {
	detail := MovieDetail{
		MovieSummary:     c.summarize(p.listItem),
		BackdropPath:     c.imagePath(p.BackdropPath),
		RuntimeFormatted: UnknownValue,
		Director:         UnknownValue,
		Cast:             UnknownValue,
		GenresList:       []string{},
		CastList:         []CastMember{},
		CrewByDepartment: map[string][]string{},
		Videos:           []Video{},
		SimilarMovies:    []SimilarMovie{},
	}

	if p.Runtime != nil {
		detail.Runtime = *p.Runtime
		detail.RuntimeFormatted = formatRuntime(*p.Runtime)
	}

	detail.Genre = UnknownValue
	if p.Genres != nil {
		for _, g := range *p.Genres {
			if g.Name != nil && *g.Name != "" {
				detail.GenresList = append(detail.GenresList, *g.Name)
			}
		}
		detail.Genre = strings.Join(detail.GenresList, ", ")
	}

	if p.Credits != nil {
		if p.Credits.Cast != nil {
			detail.CastList = c.castList(*p.Credits.Cast)
			names := make([]string, 0, len(detail.CastList))
			for _, member := range detail.CastList {
				names = append(names, member.Name)
			}
			detail.Cast = strings.Join(names, ", ")
		}
		if p.Credits.Crew != nil {
			detail.Director, detail.CrewByDepartment = groupCrew(*p.Credits.Crew)
		}
	}

	if p.Videos != nil && p.Videos.Results != nil {
		detail.Videos, detail.TrailerKey = pickVideos(*p.Videos.Results)
	}

	if p.Recommendations != nil && p.Recommendations.Results != nil {
		detail.SimilarMovies = c.similarList(*p.Recommendations.Results)
	}

	return detail
}

func (c *Client) castList(cast []castItem) []CastMember {
	if len(cast) > maxCast {
		cast = cast[:maxCast]
	}
	members := make([]CastMember, 0, len(cast))
	for _, item := range cast {
		members = append(members, CastMember{
			Name:        stringOr(item.Name, UnknownValue),
			Character:   stringOr(item.Character, ""),
			ProfilePath: c.imagePath(item.ProfilePath),
		})
	}
	return members
}

// groupCrew returns the first credited director and every other crew member
// grouped by department as "name (job)". Entries without a department are dropped.
func groupCrew(crew []crewItem) (string, map[string][]string) {
	director := UnknownValue
	foundDirector := false
	byDepartment := map[string][]string{}

	for _, item := range crew {
		name := stringOr(item.Name, "")
		job := stringOr(item.Job, "")
		if job == jobDirector {
			if !foundDirector && name != "" {
				director = name
				foundDirector = true
			}
			continue
		}

		department := stringOr(item.Department, "")
		if department == "" || name == "" {
			continue
		}
		byDepartment[department] = append(byDepartment[department], fmt.Sprintf("%s (%s)", name, job))
	}

	return director, byDepartment
}

// pickVideos keeps YouTube videos and selects a trailer, preferring official ones.
func pickVideos(results []videoItem) ([]Video, *string) {
	videos := make([]Video, 0, len(results))
	var official, anyTrailer *string

	for _, item := range results {
		if stringOr(item.Site, "") != siteYouTube || item.Key == nil {
			continue
		}
		video := Video{
			Key:  *item.Key,
			Name: stringOr(item.Name, ""),
			Type: stringOr(item.Type, ""),
		}
		if item.Official != nil {
			video.Official = *item.Official
		}
		videos = append(videos, video)

		if video.Type != videoTypeTrailer || video.Key == "" {
			continue
		}
		key := video.Key
		if anyTrailer == nil {
			anyTrailer = &key
		}
		if official == nil && video.Official {
			official = &key
		}
	}

	if official != nil {
		return videos, official
	}
	return videos, anyTrailer
}

func (c *Client) similarList(items []listItem) []SimilarMovie {
	similar := make([]SimilarMovie, 0, maxSimilarMovies)
	for _, item := range items {
		if len(similar) == maxSimilarMovies {
			break
		}
		if item.ID == nil {
			continue
		}
		similar = append(similar, SimilarMovie{
			TMDBID:     *item.ID,
			Title:      stringOr(item.Title, UnknownValue),
			PosterPath: c.imagePath(item.PosterPath),
		})
	}
	return similar
}

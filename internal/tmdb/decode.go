package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when a response body does not have the expected shape.
var ErrMalformedPayload = errors.New("malformed payload")

type genrePayload struct {
	Genres *[]struct {
		ID   *int    `json:"id"`
		Name *string `json:"name"`
	} `json:"genres"`
}

type listItem struct {
	ID          *int     `json:"id"`
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	ReleaseDate *string  `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	PosterPath  *string  `json:"poster_path"`
	GenreIDs    []int    `json:"genre_ids"`
}

type listPayload struct {
	Results *[]listItem `json:"results"`
}

type castItem struct {
	Name        *string `json:"name"`
	Character   *string `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type crewItem struct {
	Name       *string `json:"name"`
	Job        *string `json:"job"`
	Department *string `json:"department"`
}

type videoItem struct {
	Key      *string `json:"key"`
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Site     *string `json:"site"`
	Official *bool   `json:"official"`
}

type detailPayload struct {
	listItem
	BackdropPath *string `json:"backdrop_path"`
	Runtime      *int    `json:"runtime"`
	Genres       *[]struct {
		ID   *int    `json:"id"`
		Name *string `json:"name"`
	} `json:"genres"`
	Credits *struct {
		Cast *[]castItem `json:"cast"`
		Crew *[]crewItem `json:"crew"`
	} `json:"credits"`
	Videos *struct {
		Results *[]videoItem `json:"results"`
	} `json:"videos"`
	Recommendations *struct {
		Results *[]listItem `json:"results"`
	} `json:"recommendations"`
}

func decodeGenres(body []byte) ([]Genre, error) {
	var payload genrePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if payload.Genres == nil {
		return nil, fmt.Errorf("%w: missing genres", ErrMalformedPayload)
	}

	genres := make([]Genre, 0, len(*payload.Genres))
	for _, g := range *payload.Genres {
		if g.ID == nil || g.Name == nil {
			continue
		}
		genres = append(genres, Genre{ID: *g.ID, Name: *g.Name})
	}
	return genres, nil
}

func decodeList(body []byte) ([]listItem, error) {
	var payload listPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedPayload)
	}
	return *payload.Results, nil
}

func decodeDetail(body []byte) (*detailPayload, error) {
	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if payload.ID == nil {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedPayload)
	}
	return &payload, nil
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

package tmdb

// UnknownValue is substituted for missing titles, years, directors and similar text fields.
const UnknownValue = "Unknown"

// Genre is a TMDB movie genre.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ListFilter holds the optional filters shared by the list operations.
type ListFilter struct {
	GenreID   int      // 0 means no genre filter
	Year      string   // "" or AllYears means no year filter
	MinRating *float64 // nil means no rating filter
	SortBy    string
}

// AllYears is the year sentinel meaning "do not filter by year".
const AllYears = "All Years"

// Sort keys understood by PopularMovies and DiscoverMovies.
const (
	SortPopularity  = "popularity.desc"
	SortRating      = "vote_average.desc"
	SortReleaseDate = "release_date.desc"
)

// MovieSummary is the flattened record built from list responses.
type MovieSummary struct {
	TMDBID      int     `json:"tmdb_id" yaml:"tmdb_id"`
	Title       string  `json:"title" yaml:"title"`
	Overview    string  `json:"overview" yaml:"overview"`
	ReleaseDate string  `json:"release_date" yaml:"release_date"`
	Year        string  `json:"year" yaml:"year"`
	VoteAverage float64 `json:"vote_average" yaml:"vote_average"`
	PosterPath  string  `json:"poster_path" yaml:"poster_path"`
	Genre       string  `json:"genre" yaml:"genre"`
}

// CastMember is one billed cast entry of a detail record.
type CastMember struct {
	Name        string `json:"name" yaml:"name"`
	Character   string `json:"character" yaml:"character"`
	ProfilePath string `json:"profile_path" yaml:"profile_path"`
}

// Video is a YouTube video attached to a movie.
type Video struct {
	Key      string `json:"key" yaml:"key"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Official bool   `json:"official" yaml:"official"`
}

// SimilarMovie is the abbreviated record used for recommendations.
type SimilarMovie struct {
	TMDBID     int    `json:"tmdb_id" yaml:"tmdb_id"`
	Title      string `json:"title" yaml:"title"`
	PosterPath string `json:"poster_path" yaml:"poster_path"`
}

// MovieDetail is the extended record built from a single-movie response.
// The zero value is the empty record returned on failure.
type MovieDetail struct {
	MovieSummary     `yaml:",inline"`
	BackdropPath     string              `json:"backdrop_path" yaml:"backdrop_path"`
	Runtime          int                 `json:"runtime" yaml:"runtime"`
	RuntimeFormatted string              `json:"runtime_formatted" yaml:"runtime_formatted"`
	GenresList       []string            `json:"genres_list" yaml:"genres_list"`
	Cast             string              `json:"cast" yaml:"cast"`
	CastList         []CastMember        `json:"cast_list" yaml:"cast_list"`
	CrewByDepartment map[string][]string `json:"crew_by_department" yaml:"crew_by_department"`
	Director         string              `json:"director" yaml:"director"`
	TrailerKey       *string             `json:"trailer_key" yaml:"trailer_key"`
	Videos           []Video             `json:"videos" yaml:"videos"`
	SimilarMovies    []SimilarMovie      `json:"similar_movies" yaml:"similar_movies"`
}

// Empty reports whether d is the empty record.
func (d MovieDetail) Empty() bool {
	return d.TMDBID == 0
}

// HasTrailer reports whether a trailer was selected.
func (d MovieDetail) HasTrailer() bool {
	return d.TrailerKey != nil && *d.TrailerKey != ""
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the film-aggregator pipeline:
// the provider records as they arrive on the wire and the joined Film that the
// pipeline hands to its caller.
package types

// GhibliFilm is a catalog entry from the Studio Ghibli API. It is the
// authoritative record: its ID and position in the catalog drive the output.
type GhibliFilm struct {
	// ID is the provider-assigned identifier (a UUID string).
	ID string `json:"id" yaml:"id"`

	// ReleaseDate is the release year as the provider reports it (e.g. "1988").
	ReleaseDate string `json:"release_date" yaml:"release_date"`

	// RunningTime is the length in minutes, as a string.
	RunningTime string `json:"running_time" yaml:"running_time"`

	// OriginalTitle is the Japanese title used to search TMDB.
	OriginalTitle string `json:"original_title" yaml:"original_title"`
}

// TMDBResult is one entry of a TMDB movie search.
type TMDBResult struct {
	Title        string  `json:"title" yaml:"title"`
	PosterPath   string  `json:"poster_path" yaml:"poster_path"`
	BackdropPath string  `json:"backdrop_path" yaml:"backdrop_path"`
	Overview     string  `json:"overview" yaml:"overview"`
	Popularity   float64 `json:"popularity" yaml:"popularity"`
	GenreIDs     []int   `json:"genre_ids" yaml:"genre_ids"`
}

// TMDBSearchPage is the body of a TMDB search response. Only the results
// of the first page are ever requested.
type TMDBSearchPage struct {
	Results []TMDBResult `json:"results" yaml:"results"`
}

// Genre is one row of the TMDB genre list.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// GenreList is the body of the TMDB genre list response.
type GenreList struct {
	Genres []Genre `json:"genres" yaml:"genres"`
}

// GenreTable maps genre ids to display names.
type GenreTable map[int]string

// Table indexes the list by id. When an id repeats, the last entry wins.
func (l GenreList) Table() GenreTable {
	t := make(GenreTable, len(l.Genres))
	for _, g := range l.Genres {
		t[g.ID] = g.Name
	}
	return t
}

// Film is the joined record: Ghibli identity and timing, TMDB text and
// popularity, resolved genre label, and both image binaries. A Film is only
// ever built once every part is available.
type Film struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	PosterImage []byte  `json:"poster_image,omitempty" yaml:"poster_image,omitempty"`
	BannerImage []byte  `json:"banner_image,omitempty" yaml:"banner_image,omitempty"`
	RunningTime string  `json:"running_time" yaml:"running_time"`
	ReleaseDate string  `json:"release_date" yaml:"release_date"`
	Genre       string  `json:"genre" yaml:"genre"`
	Description string  `json:"description" yaml:"description"`
	Popularity  float64 `json:"popularity" yaml:"popularity"`
}

// Skip identifies a Ghibli film that was dropped because TMDB returned no
// search results for its title.
type Skip struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

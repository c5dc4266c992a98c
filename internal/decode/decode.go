// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode turns provider response bodies into typed records. Decoding
// is strict: a body that does not fully match the expected shape is an error
// and nothing partial is returned.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

// Shape names used in Error.
const (
	ShapeFilms      = "ghibli films"
	ShapeSearchPage = "tmdb search page"
	ShapeGenres     = "tmdb genre list"
)

// Error reports a body that could not be decoded into Shape.
type Error struct {
	Shape string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Shape, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Decode unmarshals exactly one JSON value of type T from data.
func Decode[T any](shape string, data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		var zero T
		return zero, &Error{Shape: shape, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var zero T
		return zero, &Error{Shape: shape, Err: errors.New("unexpected data after JSON value")}
	}
	return v, nil
}

// Films decodes the Ghibli films array. Every record must carry an id and
// an original title, since both drive the rest of the pipeline.
func Films(data []byte) ([]types.GhibliFilm, error) {
	films, err := Decode[[]types.GhibliFilm](ShapeFilms, data)
	if err != nil {
		return nil, err
	}
	for i, f := range films {
		if f.ID == "" {
			return nil, &Error{Shape: ShapeFilms, Err: fmt.Errorf("record %d: missing id", i)}
		}
		if f.OriginalTitle == "" {
			return nil, &Error{Shape: ShapeFilms, Err: fmt.Errorf("record %d (%s): missing original_title", i, f.ID)}
		}
	}
	return films, nil
}

// SearchPage decodes a TMDB search response.
func SearchPage(data []byte) (types.TMDBSearchPage, error) {
	return Decode[types.TMDBSearchPage](ShapeSearchPage, data)
}

// Genres decodes the TMDB genre list.
func Genres(data []byte) (types.GenreList, error) {
	return Decode[types.GenreList](ShapeGenres, data)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate joins one Ghibli film with its TMDB search match, its
// resolved genres and its images into a single types.Film.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/film-aggregator/internal/assets"
	"github.com/pdiddy/film-aggregator/internal/genre"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

// ErrNoMatch is returned when the TMDB search for a title is empty. The
// film is skipped, not failed.
var ErrNoMatch = errors.New("no TMDB match")

// Searcher finds TMDB records by title.
type Searcher interface {
	Search(ctx context.Context, title string) ([]types.TMDBResult, error)
}

// GenreResolver turns genre ids into names.
type GenreResolver interface {
	Resolve(ctx context.Context, ids []int) ([]string, error)
}

// AssetFetcher downloads the two images of a film.
type AssetFetcher interface {
	Fetch(ctx context.Context, posterPath, backdropPath string) (assets.Pair, error)
}

// Aggregator builds Films. Its dependencies are stateless across calls, so
// one Aggregator serves every film of a run concurrently.
type Aggregator struct {
	Search Searcher
	Genres GenreResolver
	Assets AssetFetcher
	Logger *log.Logger
}

// Aggregate produces the Film for src. onMatch, if non-nil, is called once
// the first search result is known to exist and before any further request,
// so the caller can count the film as expected output.
//
// The first search result is taken as the match; later results are ignored.
func (a *Aggregator) Aggregate(ctx context.Context, src types.GhibliFilm, onMatch func()) (types.Film, error) {
	results, err := a.Search.Search(ctx, src.OriginalTitle)
	if err != nil {
		return types.Film{}, fmt.Errorf("searching %q: %w", src.OriginalTitle, err)
	}
	if len(results) == 0 {
		return types.Film{}, ErrNoMatch
	}
	match := results[0]
	if onMatch != nil {
		onMatch()
	}
	if a.Logger != nil {
		a.Logger.Debug("matched", "id", src.ID, "title", match.Title, "candidates", len(results))
	}

	names, err := a.Genres.Resolve(ctx, match.GenreIDs)
	if err != nil {
		return types.Film{}, fmt.Errorf("resolving genres of %q: %w", match.Title, err)
	}

	pair, err := a.Assets.Fetch(ctx, match.PosterPath, match.BackdropPath)
	if err != nil {
		return types.Film{}, fmt.Errorf("fetching images of %q: %w", match.Title, err)
	}

	return types.Film{
		ID:          src.ID,
		Title:       match.Title,
		PosterImage: pair.Poster,
		BannerImage: pair.Banner,
		RunningTime: src.RunningTime,
		ReleaseDate: src.ReleaseDate,
		Genre:       genre.Label(names),
		Description: match.Overview,
		Popularity:  match.Popularity,
	}, nil
}

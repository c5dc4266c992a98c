// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/film-aggregator/internal/decode"
	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

const (
	DefaultTMDBURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/original"
	DefaultLanguage     = "pt-BR"

	searchPath = "/search/movie"
	genrePath  = "/genre/movie/list"

	// searchPage is fixed: only the first page of results is ever used.
	searchPage = "1"
)

// TMDB queries The Movie Database for search results and the genre table.
type TMDB struct {
	Getter   httputil.Getter
	BaseURL  string
	APIKey   string
	Language string
}

// NewTMDB returns a TMDB client configured from cfg, filling defaults for
// empty fields.
func NewTMDB(g httputil.Getter, cfg types.ProviderConfig) *TMDB {
	t := &TMDB{
		Getter:   g,
		BaseURL:  strings.TrimRight(cfg.TMDBURL, "/"),
		APIKey:   cfg.TMDBAPIKey,
		Language: cfg.Language,
	}
	if t.BaseURL == "" {
		t.BaseURL = DefaultTMDBURL
	}
	if t.Language == "" {
		t.Language = DefaultLanguage
	}
	return t
}

// Search runs a movie search for title and returns the first page of
// results in provider order.
func (p *TMDB) Search(ctx context.Context, title string) ([]types.TMDBResult, error) {
	params := []httputil.Param{
		{Key: "api_key", Value: p.APIKey},
		{Key: "language", Value: p.Language},
		{Key: "query", Value: title},
		{Key: "page", Value: searchPage},
	}
	body, _, err := p.Getter.Get(ctx, p.BaseURL+searchPath, params, nil)
	if err != nil {
		return nil, fmt.Errorf("TMDB search request: %w", err)
	}
	page, err := decode.SearchPage(body)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GenreTable fetches the full movie genre list.
func (p *TMDB) GenreTable(ctx context.Context) (types.GenreTable, error) {
	params := []httputil.Param{
		{Key: "api_key", Value: p.APIKey},
		{Key: "language", Value: p.Language},
	}
	body, _, err := p.Getter.Get(ctx, p.BaseURL+genrePath, params, nil)
	if err != nil {
		return nil, fmt.Errorf("TMDB genre request: %w", err)
	}
	list, err := decode.Genres(body)
	if err != nil {
		return nil, err
	}
	return list.Table(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider wraps the two upstream APIs: the Studio Ghibli catalog
// (primary records) and TMDB (search results, genre table, images).
package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/film-aggregator/internal/decode"
	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

// DefaultGhibliURL is the Studio Ghibli films endpoint.
const DefaultGhibliURL = "https://ghibliapi.vercel.app/films"

// Ghibli fetches the primary catalog.
type Ghibli struct {
	Getter httputil.Getter
	URL    string
}

// NewGhibli returns a Ghibli client; an empty url selects DefaultGhibliURL.
func NewGhibli(g httputil.Getter, url string) *Ghibli {
	if url == "" {
		url = DefaultGhibliURL
	}
	return &Ghibli{Getter: g, URL: url}
}

// Films fetches and decodes every catalog entry in a single request.
func (p *Ghibli) Films(ctx context.Context) ([]types.GhibliFilm, error) {
	body, _, err := p.Getter.Get(ctx, p.URL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("Ghibli API request: %w", err)
	}
	return decode.Films(body)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assets downloads the poster and backdrop images of a film.
package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/film-aggregator/internal/httputil"
)

// ErrEmptyPath is returned when TMDB gave no path for one of the images.
var ErrEmptyPath = errors.New("empty image path")

// Pair holds both image binaries of one film.
type Pair struct {
	Poster []byte
	Banner []byte
}

// Fetcher downloads images relative to BaseURL.
type Fetcher struct {
	Getter  httputil.Getter
	BaseURL string
}

// URL returns the absolute URL of a provider-relative image path.
func (f *Fetcher) URL(path string) string {
	return strings.TrimRight(f.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Fetch downloads the poster and the backdrop concurrently. It returns the
// first error observed and cancels the other download; a Pair is only
// returned when both succeed.
func (f *Fetcher) Fetch(ctx context.Context, posterPath, backdropPath string) (Pair, error) {
	if posterPath == "" {
		return Pair{}, fmt.Errorf("poster: %w", ErrEmptyPath)
	}
	if backdropPath == "" {
		return Pair{}, fmt.Errorf("backdrop: %w", ErrEmptyPath)
	}

	var pair Pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := f.get(gctx, posterPath)
		if err != nil {
			return fmt.Errorf("poster: %w", err)
		}
		pair.Poster = b
		return nil
	})
	g.Go(func() error {
		b, err := f.get(gctx, backdropPath)
		if err != nil {
			return fmt.Errorf("backdrop: %w", err)
		}
		pair.Banner = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

func (f *Fetcher) get(ctx context.Context, path string) ([]byte, error) {
	body, _, err := f.Getter.Get(ctx, f.URL(path), nil, map[string]string{})
	return body, err
}

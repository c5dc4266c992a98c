// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genre resolves TMDB genre ids to display names and builds the
// short genre label shown for each film.
package genre

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

const (
	// MaxGenres is how many leading ids are resolved per film.
	MaxGenres = 2

	// Unknown is the name used for ids missing from the table.
	Unknown = "unknown"

	labelSep = " - "
)

// ErrNoGenres is returned when a film carries no genre ids at all.
var ErrNoGenres = errors.New("no genre ids")

// TableSource supplies the id -> name table.
type TableSource interface {
	GenreTable(ctx context.Context) (types.GenreTable, error)
}

// Resolver maps genre ids to names using a table fetched from Source on
// every call.
type Resolver struct {
	Source TableSource
	Logger *log.Logger
}

// Resolve returns one name per id for the first MaxGenres ids, in input
// order. Ids absent from the table resolve to Unknown.
func (r *Resolver) Resolve(ctx context.Context, ids []int) ([]string, error) {
	if len(ids) == 0 {
		return nil, ErrNoGenres
	}

	table, err := r.Source.GenreTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching genre table: %w", err)
	}

	if len(ids) > MaxGenres {
		ids = ids[:MaxGenres]
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		name, ok := table[id]
		if !ok {
			name = Unknown
			if r.Logger != nil {
				r.Logger.Debug("unknown genre id", "id", id)
			}
		}
		names[i] = name
	}
	return names, nil
}

// Label joins resolved names for display: one name as-is, two as "A - B".
func Label(names []string) string {
	if len(names) > MaxGenres {
		names = names[:MaxGenres]
	}
	return strings.Join(names, labelSep)
}

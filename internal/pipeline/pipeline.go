// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one aggregation: fetch the Ghibli catalog, build a
// Film for every entry concurrently, and return them in catalog order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/film-aggregator/internal/aggregate"
	"github.com/pdiddy/film-aggregator/internal/assets"
	"github.com/pdiddy/film-aggregator/internal/genre"
	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/internal/logging"
	"github.com/pdiddy/film-aggregator/internal/provider"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

// Catalog lists the primary records.
type Catalog interface {
	Films(ctx context.Context) ([]types.GhibliFilm, error)
}

// ItemAggregator builds the Film of one catalog entry. It returns
// aggregate.ErrNoMatch for entries that have no TMDB match.
type ItemAggregator interface {
	Aggregate(ctx context.Context, src types.GhibliFilm, onMatch func()) (types.Film, error)
}

// Output is the result of a successful run.
type Output struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// Films holds one Film per matched catalog entry, in catalog order.
	Films []types.Film `json:"films" yaml:"films"`

	// Skipped lists catalog entries without a TMDB match, in catalog order.
	Skipped []types.Skip `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Expected is the number of catalog entries that found a match.
	Expected int `json:"expected" yaml:"expected"`
}

// ItemError reports the catalog entry whose aggregation aborted the run.
type ItemError struct {
	Index int
	ID    string
	Title string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("film %d (%s %q): %v", e.Index, e.ID, e.Title, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Pipeline wires a catalog to an item aggregator. It keeps no state between
// runs.
type Pipeline struct {
	Catalog     Catalog
	Aggregator  ItemAggregator
	Interaction Interaction
	Logger      *log.Logger

	// MaxConcurrency bounds concurrent aggregations; 0 means unbounded.
	MaxConcurrency int

	// RunTimeout is the deadline of a whole run; 0 disables it.
	RunTimeout time.Duration
}

// New builds a Pipeline over the Ghibli and TMDB providers using g for
// every request.
func New(cfg types.PipelineConfig, g httputil.Getter, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	tmdb := provider.NewTMDB(g, cfg.ProviderConfig)

	imageBase := cfg.ImageBaseURL
	if imageBase == "" {
		imageBase = provider.DefaultImageBaseURL
	}

	return &Pipeline{
		Catalog: provider.NewGhibli(g, cfg.GhibliURL),
		Aggregator: &aggregate.Aggregator{
			Search: tmdb,
			Genres: &genre.Resolver{
				Source: genre.NewCachedSource(tmdb, cfg.GenreCacheTTL),
				Logger: logger,
			},
			Assets: &assets.Fetcher{Getter: g, BaseURL: imageBase},
			Logger: logger,
		},
		Logger:         logger,
		MaxConcurrency: cfg.MaxConcurrency,
		RunTimeout:     cfg.RunTimeout,
	}
}

// Run fetches the catalog and aggregates every entry. The first failing
// entry cancels the others and its error is returned; entries without a
// TMDB match are skipped and listed in Output.Skipped.
func (p *Pipeline) Run(ctx context.Context) (Output, error) {
	runID := uuid.NewString()
	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("run", runID)

	ui := p.Interaction
	if ui == nil {
		ui = nopInteraction{}
	}
	ui.SetInteractive(false)
	defer ui.SetInteractive(true)

	if p.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	catalog, err := p.Catalog.Films(ctx)
	if err != nil {
		logger.Error("catalog fetch failed", "err", err)
		return Output{RunID: runID}, fmt.Errorf("fetching catalog: %w", err)
	}
	logger.Info("catalog fetched", "films", len(catalog))

	if len(catalog) == 0 {
		return Output{RunID: runID, Films: []types.Film{}}, nil
	}

	buf := newGather(len(catalog))
	eg, egctx := errgroup.WithContext(ctx)
	if p.MaxConcurrency > 0 {
		eg.SetLimit(p.MaxConcurrency)
	}

	for i, src := range catalog {
		if egctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			film, err := p.Aggregator.Aggregate(egctx, src, func() { buf.match(i) })
			if errors.Is(err, aggregate.ErrNoMatch) {
				logger.Warn("no TMDB match, skipping", "id", src.ID, "title", src.OriginalTitle)
				buf.skip(i, types.Skip{ID: src.ID, Title: src.OriginalTitle})
				return nil
			}
			if err != nil {
				return &ItemError{Index: i, ID: src.ID, Title: src.OriginalTitle, Err: err}
			}
			logger.Debug("film ready", "index", i, "id", src.ID, "title", film.Title)
			return buf.put(i, film)
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Error("run failed", "err", err, "elapsed", time.Since(start))
		return Output{RunID: runID}, err
	}
	if err := ctx.Err(); err != nil {
		return Output{RunID: runID}, fmt.Errorf("run aborted: %w", err)
	}

	films, skipped, expected, err := buf.complete()
	if err != nil {
		return Output{RunID: runID}, err
	}
	logger.Info("run complete", "films", len(films), "skipped", len(skipped), "elapsed", time.Since(start))
	return Output{RunID: runID, Films: films, Skipped: skipped, Expected: expected}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/film-aggregator/internal/format"
	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/internal/pipeline"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Aggregate the catalog and print every joined film",
	Long: `Fetch runs one aggregation: the Ghibli catalog is fetched, every film is
matched on TMDB concurrently, genres are resolved, and poster and backdrop
images are downloaded. Films are printed in catalog order.`,
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.String("format", "table", "output format: table, json, yaml")
	f.Bool("include-images", false, "embed image bytes (base64) in json/yaml output")
	f.Int("max-concurrency", defaultMaxConcurrency, "films aggregated at once (0 = unbounded)")
	f.Duration("run-timeout", defaultRunTimeout, "deadline for the whole run (0 = none)")
	f.Duration("timeout", defaultTimeout, "per-request HTTP timeout")
	f.Float64("requests-per-second", 0, "cap on outbound requests (0 = unlimited)")
	f.Duration("genre-cache-ttl", 0, "reuse the genre table for this long (0 = fetch per film)")

	viper.BindPFlag("max_concurrency", f.Lookup("max-concurrency"))
	viper.BindPFlag("run_timeout", f.Lookup("run-timeout"))
	viper.BindPFlag("timeout", f.Lookup("timeout"))
	viper.BindPFlag("requests_per_second", f.Lookup("requests-per-second"))
	viper.BindPFlag("genre_cache_ttl", f.Lookup("genre-cache-ttl"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	outFormat, _ := cmd.Flags().GetString("format")
	includeImages, _ := cmd.Flags().GetBool("include-images")
	switch outFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q: use table, json, or yaml", outFormat)
	}

	cfg := pipelineConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg, httputil.NewClient(cfg.HTTPConfig, logger), logger)
	p.Interaction = pipeline.InteractionFunc(func(enabled bool) {
		logger.Debug("interaction", "enabled", enabled)
	})

	out, err := p.Run(ctx)
	if err != nil {
		return err
	}
	for _, s := range out.Skipped {
		logger.Warn("no TMDB match", "id", s.ID, "title", s.Title)
	}

	w := cmd.OutOrStdout()
	opts := format.Options{IncludeImages: includeImages}
	switch outFormat {
	case "json":
		return format.JSON(out, opts, w)
	case "yaml":
		return format.YAML(out, opts, w)
	default:
		format.Table(out, w)
		return nil
	}
}

func requireAPIKey(cfg types.PipelineConfig) error {
	if cfg.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB API key required: set tmdb_api_key, FILM_AGGREGATOR_TMDB_API_KEY, or the tmdb-api-key secret file")
	}
	return nil
}

// commandContext returns cmd's context, or Background when Execute was
// called without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

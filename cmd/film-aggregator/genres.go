// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/film-aggregator/internal/genre"
	"github.com/pdiddy/film-aggregator/internal/httputil"
	"github.com/pdiddy/film-aggregator/internal/provider"
)

var genresCmd = &cobra.Command{
	Use:   "genres <id>...",
	Short: "Resolve TMDB genre ids to the label shown for a film",
	Long: `Genres fetches the TMDB genre table and resolves the given ids the same
way fetch does: only the first two ids are used, unknown ids become
"unknown", and the names are joined with " - ".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenres,
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

func runGenres(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid genre id %q: %w", a, err)
		}
		ids = append(ids, id)
	}

	cfg := pipelineConfig()
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	g := httputil.NewClient(cfg.HTTPConfig, logger)
	r := &genre.Resolver{Source: provider.NewTMDB(g, cfg.ProviderConfig), Logger: logger}

	names, err := r.Resolve(commandContext(cmd), ids)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, n := range names {
		fmt.Fprintf(w, "%d\t%s\n", ids[i], n)
	}
	fmt.Fprintln(w, genre.Label(names))
	return nil
}

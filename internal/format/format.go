// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders a pipeline run for the terminal: a table, JSON, or
// YAML. Image binaries are summarized by size unless explicitly included.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/film-aggregator/internal/pipeline"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

// Options controls structured output.
type Options struct {
	IncludeImages bool
}

// filmView is the serialized form of a Film.
type filmView struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	ReleaseDate string  `json:"release_date" yaml:"release_date"`
	RunningTime string  `json:"running_time" yaml:"running_time"`
	Genre       string  `json:"genre" yaml:"genre"`
	Description string  `json:"description" yaml:"description"`
	Popularity  float64 `json:"popularity" yaml:"popularity"`
	PosterBytes int     `json:"poster_bytes" yaml:"poster_bytes"`
	BannerBytes int     `json:"banner_bytes" yaml:"banner_bytes"`
	PosterImage []byte  `json:"poster_image,omitempty" yaml:"poster_image,omitempty"`
	BannerImage []byte  `json:"banner_image,omitempty" yaml:"banner_image,omitempty"`
}

type outputView struct {
	RunID   string       `json:"run_id" yaml:"run_id"`
	Films   []filmView   `json:"films" yaml:"films"`
	Skipped []types.Skip `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func view(out pipeline.Output, opts Options) outputView {
	v := outputView{RunID: out.RunID, Films: make([]filmView, 0, len(out.Films)), Skipped: out.Skipped}
	for _, f := range out.Films {
		fv := filmView{
			ID:          f.ID,
			Title:       f.Title,
			ReleaseDate: f.ReleaseDate,
			RunningTime: f.RunningTime,
			Genre:       f.Genre,
			Description: f.Description,
			Popularity:  f.Popularity,
			PosterBytes: len(f.PosterImage),
			BannerBytes: len(f.BannerImage),
		}
		if opts.IncludeImages {
			fv.PosterImage = f.PosterImage
			fv.BannerImage = f.BannerImage
		}
		v.Films = append(v.Films, fv)
	}
	return v
}

// JSON writes the run as indented JSON. Included images are base64.
func JSON(out pipeline.Output, opts Options, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view(out, opts))
}

// YAML writes the run as a YAML document.
func YAML(out pipeline.Output, opts Options, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view(out, opts)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Table writes a human-readable listing of the films.
func Table(out pipeline.Output, w io.Writer) {
	if len(out.Films) == 0 {
		fmt.Fprintln(w, "No films found.")
		writeSkipped(out, w)
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-4s  %-5s  %-30s  %-8s  %s\n",
		"#", "Title", "Year", "Min", "Genre", "Pop.", "Images")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, f := range out.Films {
		fmt.Fprintf(w, "%-4d  %-40s  %-4s  %-5s  %-30s  %-8.2f  %s\n",
			i+1, truncate(f.Title, 40), f.ReleaseDate, f.RunningTime,
			truncate(f.Genre, 30), f.Popularity, sizes(f))
	}

	fmt.Fprintf(w, "\n%d films", len(out.Films))
	if len(out.Skipped) > 0 {
		fmt.Fprintf(w, " (%d without a TMDB match)", len(out.Skipped))
	}
	fmt.Fprintln(w)
	writeSkipped(out, w)
}

func writeSkipped(out pipeline.Output, w io.Writer) {
	for _, s := range out.Skipped {
		fmt.Fprintf(w, "skipped: %s (%s)\n", s.Title, s.ID)
	}
}

func sizes(f types.Film) string {
	return humanBytes(len(f.PosterImage)) + " / " + humanBytes(len(f.BannerImage))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// truncate shortens s to max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

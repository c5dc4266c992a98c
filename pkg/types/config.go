// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for every provider request.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "film-aggregator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RequestsPerSecond caps outbound requests across all providers.
	// Zero means no limit.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds retries on HTTP 429. Zero uses the helper default.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ProviderConfig holds endpoints and credentials for the two providers.
type ProviderConfig struct {
	// GhibliURL is the Studio Ghibli films endpoint.
	GhibliURL string `json:"ghibli_url" yaml:"ghibli_url"`

	// TMDBURL is the TMDB API base (e.g. "https://api.themoviedb.org/3").
	TMDBURL string `json:"tmdb_url" yaml:"tmdb_url"`

	// ImageBaseURL is prefixed to TMDB poster and backdrop paths.
	ImageBaseURL string `json:"image_base_url" yaml:"image_base_url"`

	// TMDBAPIKey is sent as the api_key query parameter.
	TMDBAPIKey string `json:"tmdb_api_key,omitempty" yaml:"tmdb_api_key,omitempty"`

	// Language is sent as the language query parameter (default "pt-BR").
	Language string `json:"language" yaml:"language"`
}

// PipelineConfig groups the settings of one aggregation run.
type PipelineConfig struct {
	HTTPConfig     `yaml:",inline"`
	ProviderConfig `yaml:",inline"`

	// MaxConcurrency bounds the number of films aggregated at once.
	// Zero means unbounded.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`

	// RunTimeout is the deadline for a whole run. Zero disables it.
	RunTimeout time.Duration `json:"run_timeout" yaml:"run_timeout"`

	// GenreCacheTTL keeps a fetched genre table for this long. Zero fetches
	// the table fresh for every film.
	GenreCacheTTL time.Duration `json:"genre_cache_ttl" yaml:"genre_cache_ttl"`
}

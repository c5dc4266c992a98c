// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/film-aggregator/internal/provider"
	"github.com/pdiddy/film-aggregator/internal/secrets"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultRunTimeout     = 2 * time.Minute
	defaultMaxConcurrency = 8
	defaultUserAgent      = "film-aggregator/0.1"
)

func setDefaults() {
	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("requests_per_second", 0)
	viper.SetDefault("max_retries", 0)
	viper.SetDefault("max_concurrency", defaultMaxConcurrency)
	viper.SetDefault("run_timeout", defaultRunTimeout)
	viper.SetDefault("genre_cache_ttl", 0)
	viper.SetDefault("ghibli_url", provider.DefaultGhibliURL)
	viper.SetDefault("tmdb_url", provider.DefaultTMDBURL)
	viper.SetDefault("image_base_url", provider.DefaultImageBaseURL)
	viper.SetDefault("language", provider.DefaultLanguage)
}

// pipelineConfig assembles the run settings from flags, environment,
// config file and defaults, in viper's precedence order. The TMDB key falls
// back to the secrets directory.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:           viper.GetDuration("timeout"),
			UserAgent:         viper.GetString("user_agent"),
			RequestsPerSecond: viper.GetFloat64("requests_per_second"),
			MaxRetries:        viper.GetInt("max_retries"),
		},
		ProviderConfig: types.ProviderConfig{
			GhibliURL:    viper.GetString("ghibli_url"),
			TMDBURL:      viper.GetString("tmdb_url"),
			ImageBaseURL: viper.GetString("image_base_url"),
			TMDBAPIKey:   loadedSecrets.Or(secrets.TMDBAPIKey, viper.GetString("tmdb_api_key")),
			Language:     viper.GetString("language"),
		},
		MaxConcurrency: viper.GetInt("max_concurrency"),
		RunTimeout:     viper.GetDuration("run_timeout"),
		GenreCacheTTL:  viper.GetDuration("genre_cache_ttl"),
	}
}

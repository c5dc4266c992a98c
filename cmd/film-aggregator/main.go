// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the film-aggregator CLI. It is the
// presentation side of the pipeline: it runs it, prints the films, and
// reports failures.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/film-aggregator/internal/logging"
	"github.com/pdiddy/film-aggregator/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from the secrets directory at startup.
	loadedSecrets secrets.Set

	logger = logging.New(os.Stderr, log.InfoLevel)
)

// rootCmd is the base command for the film-aggregator CLI.
var rootCmd = &cobra.Command{
	Use:   "film-aggregator",
	Short: "Join the Studio Ghibli catalog with TMDB metadata and artwork",
	Long: `film-aggregator fetches the Studio Ghibli film catalog, looks every film up
on TMDB by its original title, resolves its genres, downloads its poster and
backdrop, and prints the joined list in catalog order.

Films without a TMDB match are skipped and reported. Any other failure aborts
the run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logging.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./film-aggregator.yaml or ~/.config/film-aggregator/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("secrets-dir", ".secrets/", "directory of secret files (tmdb-api-key)")
	pf.String("language", "", "TMDB response language (default pt-BR)")

	viper.BindPFlag("log_level", pf.Lookup("log-level"))
	viper.BindPFlag("secrets_dir", pf.Lookup("secrets-dir"))
	viper.BindPFlag("language", pf.Lookup("language"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("film-aggregator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "film-aggregator"))
		}
	}

	viper.SetEnvPrefix("FILM_AGGREGATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

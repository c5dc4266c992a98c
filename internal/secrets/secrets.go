// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file is one secret: the filename is the key and the trimmed contents are
// the value.
//
// Supported key files: tmdb-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// TMDBAPIKey is the file holding the TMDB v3 API key.
const TMDBAPIKey = "tmdb-api-key"

// Set is a loaded secrets directory.
type Set map[string]string

// Get returns the secret for key, or "" when absent.
func (s Set) Get(key string) string { return s[key] }

// Or returns fallback when it is non-empty, otherwise the secret for key.
// Explicit configuration wins over files on disk.
func (s Set) Or(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Keys returns the loaded key names, sorted. Values are never listed.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty Set. Unreadable files are logged and skipped.
func Load(dir string, logger *log.Logger) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if logger != nil {
				logger.Warn("could not read secret", "name", name, "err", err)
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}

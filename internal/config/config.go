// Package config holds runtime settings for the MovieHub client and
// loads them from layered sources: built-in defaults, an optional YAML
// file, environment variables, and command-line flags, each overriding
// the previous.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables this package reads,
// e.g. MOVIEHUB_ENDPOINT, MOVIEHUB_TMDB_API_KEY.
const envPrefix = "MOVIEHUB_"

// defaultConfigPaths lists where config files are searched, first hit wins.
var defaultConfigPaths = []string{
	"moviehub.yaml",
	"moviehub.yml",
}

// Config holds everything the client needs to reach its collaborators.
type Config struct {
	// Endpoint is the base URL of the hosted identity/database service.
	Endpoint string `koanf:"endpoint"`
	// ProjectID identifies this application to the hosted service.
	ProjectID string `koanf:"project_id"`
	// DatabaseID is the document database holding app collections.
	DatabaseID string `koanf:"database_id"`
	// FavoritesCollectionID is the per-user favorites collection.
	FavoritesCollectionID string `koanf:"favorites_collection_id"`
	// MetricsCollectionID is the search-count collection behind trending.
	MetricsCollectionID string `koanf:"metrics_collection_id"`
	// TMDBAPIKey is the metadata provider's API read token.
	TMDBAPIKey string `koanf:"tmdb_api_key"`
	// RecoveryURL is where password-recovery emails redirect.
	RecoveryURL string `koanf:"recovery_url"`
	// DataDir is where the local fallback store keeps its files.
	DataDir string `koanf:"data_dir"`
	// PosterBaseURL is prepended to poster paths when recording searches.
	PosterBaseURL string `koanf:"poster_base_url"`
}

func defaultConfig() *Config {
	return &Config{
		Endpoint:      "https://cloud.appwrite.io/v1",
		DataDir:       ".moviehub",
		PosterBaseURL: "https://image.tmdb.org/t/p/w500",
		RecoveryURL:   "http://localhost:5173/reset-password",
	}
}

// Load builds a Config from defaults, then the config file (the -c flag,
// or the first of moviehub.yaml / moviehub.yml that exists), then
// MOVIEHUB_* environment variables, then flags.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// MOVIEHUB_PROJECT_ID -> project_id
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields without which no backend at all is usable.
// Remote-service settings may be absent; the client then simply starts in
// local mode.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

func findConfigFile() string {
	if path := configFileFlag(); path != "" {
		return path
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the recommender tool.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest"`
	Rank      RankConfig      `yaml:"rank"`
	Recommend RecommendConfig `yaml:"recommend"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// IngestConfig holds dataset ingestion configuration.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// RankConfig holds candidate ranking configuration.
type RankConfig struct {
	Candidates int `yaml:"candidates"`  // size of the ranked candidate pool
	MinRatings int `yaml:"min_ratings"` // exclude movies with fewer ratings
}

// RecommendConfig holds slate construction configuration.
type RecommendConfig struct {
	SlateSize    int  `yaml:"slate_size"`
	Diversify    bool `yaml:"diversify"`
	CacheSize    int  `yaml:"cache_size"`
	CacheTTLSecs int  `yaml:"cache_ttl_secs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Includes: []string{"**/movies.dat", "**/movies.csv", "**/ratings.dat", "**/ratings.csv"},
			Excludes: []string{"**/.reco/**"},
		},
		Rank: RankConfig{
			Candidates: 100,
			MinRatings: 50,
		},
		Recommend: RecommendConfig{
			SlateSize:    10,
			Diversify:    true,
			CacheSize:    16,
			CacheTTLSecs: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for reco.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try reco.yaml in the directory
	path := filepath.Join(dir, "reco.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .reco/config.yaml
	path = filepath.Join(dir, ".reco", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CatalogDBPath returns the path to the catalog database.
func CatalogDBPath(dir string) string {
	return filepath.Join(dir, ".reco", "catalog.db")
}

// EnsureRecoDir ensures the .reco directory exists.
func EnsureRecoDir(dir string) error {
	recoDir := filepath.Join(dir, ".reco")
	return os.MkdirAll(recoDir, 0755)
}

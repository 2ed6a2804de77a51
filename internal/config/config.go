package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"trailgen.dev/internal/generation"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string
	DataPath   string
	Tiles      []*generation.TileDefinition
	Rules      []generation.NeighborRule
	Generation *generation.GenerationConfig
}

// Load reads configuration from dataPath, falling back to the compiled-in
// defaults for any file that is absent. A file that exists but fails to
// parse is an error: the generator must not run on a half-read config.
func Load(dataPath string) (*Config, error) {
	cfg := &Config{
		ServerAddr: ":8080",
		DataPath:   dataPath,
		Tiles:      generation.DefaultTiles(),
		Rules:      generation.DefaultRules(),
		Generation: generation.DefaultConfig(),
	}

	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.ServerAddr = addr
	}

	if err := loadJSON(filepath.Join(dataPath, "tiles.json"), &cfg.Tiles); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dataPath, "rules.json"), &cfg.Rules); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dataPath, "generation.json"), cfg.Generation); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Catalog builds the tile catalog from the loaded definitions
func (c *Config) Catalog() *generation.Catalog {
	catalog := generation.NewCatalog()
	catalog.Register(c.Tiles)
	return catalog
}

// RuleSet builds the indexed neighbor rule set
func (c *Config) RuleSet() *generation.RuleSet {
	return generation.NewRuleSet(c.Rules)
}

// loadJSON unmarshals path into v when the file exists; a missing file
// leaves v untouched.
func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Package config loads simulation settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/Alex12062012/Call-of-War-2.0/meta"
	"github.com/Alex12062012/Call-of-War-2.0/persistence"
	"gopkg.in/yaml.v3"
)

type Config struct {
	PlayerName string           `yaml:"player_name"`
	Players    int              `yaml:"players"`
	MaxTurns   int              `yaml:"max_turns"`
	Seed       int64            `yaml:"seed"`
	Terrain    game.TerrainMode `yaml:"terrain"`
	Rules      game.Rules       `yaml:"rules"`
	Store      StoreConfig      `yaml:"store"`
	LogLevel   string           `yaml:"log_level"`
	LogPretty  bool             `yaml:"log_pretty"`
	MetricsDir string           `yaml:"metrics_dir"`
}

type StoreConfig struct {
	Backend  string        `yaml:"backend"`
	Dir      string        `yaml:"dir"`
	Path     string        `yaml:"path"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// Target returns the backend-specific location passed to persistence.Open.
func (s StoreConfig) Target() string {
	switch s.Backend {
	case persistence.SQLiteBackend:
		return s.Path
	case persistence.RedisBackend:
		return s.RedisURL
	default:
		return s.Dir
	}
}

func Default() Config {
	return Config{
		PlayerName: meta.DEFAULT_PLAYER_NAME,
		Players:    meta.DEFAULT_PLAYERS,
		MaxTurns:   meta.MAX_TURNS,
		Terrain:    game.BlobTerrain,
		Rules:      game.NewStandardRules(),
		Store: StoreConfig{
			Backend:  persistence.FileBackend,
			Dir:      meta.DEFAULT_SAVES_DIR,
			Path:     meta.DEFAULT_SAVES_DIR + ".db",
			RedisURL: "redis://localhost:6379/0",
		},
		LogLevel:   "info",
		LogPretty:  true,
		MetricsDir: meta.DEFAULT_METRICS_DIR,
	}
}

// Load reads path over the defaults (an empty path keeps them), then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CONQUEST_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CONQUEST_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("CONQUEST_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("CONQUEST_REDIS_URL"); v != "" {
		c.Store.RedisURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Players < 1 {
		errs = append(errs, fmt.Errorf("players must be positive, got %d", c.Players))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	switch c.Terrain {
	case game.BlobTerrain, game.NoiseTerrain:
	default:
		errs = append(errs, fmt.Errorf("unknown terrain %q", c.Terrain))
	}
	switch c.Store.Backend {
	case persistence.FileBackend, persistence.SQLiteBackend, persistence.RedisBackend:
		if c.Store.Target() == "" {
			errs = append(errs, fmt.Errorf("store %s has no location", c.Store.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

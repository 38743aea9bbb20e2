// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config controls where the game keeps its data and how it talks to the terminal.
type Config struct {
	DataDir      string `env:"CLOVER_DATA_DIR"      envDefault:"LoadData"`
	Storage      string `env:"CLOVER_STORAGE"       envDefault:"json"`
	DBPath       string `env:"CLOVER_DB_PATH"`
	CampaignFile string `env:"CLOVER_CAMPAIGN_FILE"`
	WelcomeFile  string `env:"CLOVER_WELCOME_FILE"  envDefault:"welcome.txt"`
	LogFile      string `env:"CLOVER_LOG_FILE"`
	NoColor      bool   `env:"CLOVER_NO_COLOR"`
}

// Load reads envFiles (missing files are skipped) and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("CLOVER_STORAGE must be %q or %q, got %q", StorageJSON, StorageSQLite, c.Storage)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "players.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "clovermud.log")
	}
	return nil
}

// Package config assembles runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/zambezi-learn/zambezi/internal/connectivity"
	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/store"
)

type Config struct {
	DBPath  string
	LogMode string // "dev" or "prod"

	LLM   llm.Config
	Probe connectivity.Config
}

// Load reads an optional .env file from the working directory and then
// the process environment. Variables already set in the environment win
// over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, err
	}

	probe := connectivity.DefaultConfig()
	probe.Address = getenvDefault("ZAMBEZI_PROBE_ADDR", probe.Address)
	probe.Interval = getDurationDefault("ZAMBEZI_PROBE_INTERVAL", probe.Interval)

	return &Config{
		DBPath:  dbPath,
		LogMode: getenvDefault("ZAMBEZI_LOG_MODE", "dev"),
		LLM:     llm.ConfigFromEnv(),
		Probe:   probe,
	}, nil
}

// LogPath is where the TUI writes its log, next to the database.
func (c *Config) LogPath() string {
	return filepath.Join(filepath.Dir(c.DBPath), "zambezi.log")
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

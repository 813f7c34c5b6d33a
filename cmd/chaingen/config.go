package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/chaingen/pkg/corpus"
	"github.com/natefinch/atomic"
)

// CorpusConfig selects the training corpus.
type CorpusConfig struct {
	Name          string `json:"name"`
	SeedDefaults  bool   `json:"seed_defaults"`
	MinWordLength int    `json:"min_word_length"`
}

// GenerationConfig holds the training and generation parameters.
type GenerationConfig struct {
	MaxOrder  int    `json:"max_order"`
	Orders    []int  `json:"orders"`
	Count     int    `json:"count"`
	MaxLength int    `json:"max_length"`
	Seed      uint64 `json:"seed"` // 0 picks a random seed on every run
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string            `json:"log_level"`
	DatabasePath string            `json:"database_path"`
	Corpus       *CorpusConfig     `json:"corpus_config"`
	Generation   *GenerationConfig `json:"generation_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "./chaingen.db",
		Corpus: &CorpusConfig{
			Name:          corpus.DefaultCorpusName,
			SeedDefaults:  true,
			MinWordLength: 2,
		},
		Generation: &GenerationConfig{
			MaxOrder:  5,
			Orders:    []int{1, 2, 3},
			Count:     20,
			MaxLength: 20,
			Seed:      0,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Defaults are still usable without the file.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks the settings that would otherwise fail halfway through a run.
func (c *Config) Validate() error {
	if c.Corpus == nil || c.Generation == nil {
		return errors.New("corpus_config and generation_config are required")
	}
	if c.Corpus.Name == "" {
		return errors.New("corpus name is required")
	}
	g := c.Generation
	if g.MaxOrder < 1 {
		return fmt.Errorf("max_order must be at least 1, got %d", g.MaxOrder)
	}
	if g.Count < 0 || g.MaxLength < 0 {
		return fmt.Errorf("count and max_length must not be negative, got %d and %d", g.Count, g.MaxLength)
	}
	for _, order := range g.Orders {
		if order < 1 || order > g.MaxOrder {
			return fmt.Errorf("order %d is outside 1..%d", order, g.MaxOrder)
		}
	}
	return nil
}

// parseLogLevel maps a config log level to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

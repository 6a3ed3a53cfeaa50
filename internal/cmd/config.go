package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mcdev12/gridlock/internal/draft/engine"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Draft struct {
		// Store selects the session backend: memory, postgres or redis.
		Store string `yaml:"store"`
		// EventPrefix is the NATS subject prefix for draft events.
		EventPrefix string `yaml:"event_prefix"`
	} `yaml:"draft"`

	// Autopick overrides the scorer tuning when present.
	Autopick *engine.Weights `yaml:"autopick"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// applyDefaults fills unset config fields. DRAFT_STORE wins over the file so
// deployments can flip backends without editing config.
func (c *Config) applyDefaults() {
	if v := os.Getenv("DRAFT_STORE"); v != "" {
		c.Draft.Store = v
	}
	if c.Draft.Store == "" {
		c.Draft.Store = "memory"
	}
	if c.Draft.EventPrefix == "" {
		c.Draft.EventPrefix = "draft.events"
	}
}

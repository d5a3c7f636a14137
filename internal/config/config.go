// Package config loads the bot's full configuration: the reusable core
// settings plus the database and contest-specific sections.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "contestbot/core/config"
	coredatabase "contestbot/core/database"
)

const defaultPageSize = 5

// BotConfig holds contest bot specific settings.
type BotConfig struct {
	// Admins is the static allow-list of user ids permitted to add, finish,
	// stage, and review contests.
	Admins []int64 `yaml:"admins" envconfig:"BOT_ADMINS"`
	// PageSize is the number of contests rendered per listing page.
	PageSize int `yaml:"page_size" envconfig:"BOT_PAGE_SIZE"`
}

// Config aggregates core, database, and bot configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig exposes the embedded core configuration for the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables, then
// validates and applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Normalize applies bot-level defaults. The single core admin id doubles as
// an allow-list entry when no explicit list is configured.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Bot.PageSize <= 0 {
		cfg.Bot.PageSize = defaultPageSize
	}
	if len(cfg.Bot.Admins) == 0 && cfg.Core.Telegram.AdminID != 0 {
		cfg.Bot.Admins = []int64{cfg.Core.Telegram.AdminID}
	}
}

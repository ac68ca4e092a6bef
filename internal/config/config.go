package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the devloop configuration
type Config struct {
	Executor ExecutorConfig `mapstructure:"executor"`
	Hooks    HooksConfig    `mapstructure:"hooks"`
	Plugin   PluginConfig   `mapstructure:"plugin"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ExecutorConfig contains subprocess execution settings
type ExecutorConfig struct {
	DefaultTimeoutSecs int    `mapstructure:"default_timeout_secs"`
	MaxOutputKB        int    `mapstructure:"max_output_kb"`
	Shell              string `mapstructure:"shell"`
}

// HooksConfig contains phase hook settings
type HooksConfig struct {
	Debug            bool `mapstructure:"debug"`
	ShellTimeoutSecs int  `mapstructure:"shell_timeout_secs"`
}

// PluginConfig selects the framework plugin
type PluginConfig struct {
	Framework string `mapstructure:"framework"`
}

// EventsConfig contains event sink settings
type EventsConfig struct {
	LogPath string `mapstructure:"log_path"`
}

// Load reads the config from the workspace
func Load(workspaceDir string) (*Config, error) {
	configPath := filepath.Join(workspaceDir, ".devloop", "config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(workspaceDir), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg, workspaceDir)

	return &cfg, nil
}

// DefaultConfig returns a config with default values
func DefaultConfig(workspaceDir string) *Config {
	return &Config{
		Executor: ExecutorConfig{
			DefaultTimeoutSecs: 60,
			MaxOutputKB:        1024,
			Shell:              "sh",
		},
		Hooks: HooksConfig{
			ShellTimeoutSecs: 60,
		},
		Plugin: PluginConfig{
			Framework: "drupal",
		},
		Events: EventsConfig{
			LogPath: filepath.Join(workspaceDir, ".devloop", "logs", "events.jsonl"),
		},
	}
}

func applyDefaults(cfg *Config, workspaceDir string) {
	defaults := DefaultConfig(workspaceDir)

	if cfg.Executor.DefaultTimeoutSecs <= 0 {
		cfg.Executor.DefaultTimeoutSecs = defaults.Executor.DefaultTimeoutSecs
	}
	if cfg.Executor.MaxOutputKB <= 0 {
		cfg.Executor.MaxOutputKB = defaults.Executor.MaxOutputKB
	}
	if cfg.Executor.Shell == "" {
		cfg.Executor.Shell = defaults.Executor.Shell
	}
	if cfg.Hooks.ShellTimeoutSecs <= 0 {
		cfg.Hooks.ShellTimeoutSecs = defaults.Hooks.ShellTimeoutSecs
	}
	if cfg.Plugin.Framework == "" {
		cfg.Plugin.Framework = defaults.Plugin.Framework
	}
	if cfg.Events.LogPath == "" {
		cfg.Events.LogPath = defaults.Events.LogPath
	}
}

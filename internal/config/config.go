// Package config loads runtime configuration for tarot-hours.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration. Values come from
// ~/.tarot-hours/config.yaml, TAROT_HOURS_* env vars, and CLI flags,
// in increasing precedence.
type Config struct {
	DBPath       string        `mapstructure:"db_path"`
	Language     string        `mapstructure:"language"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load reads configuration, applying built-in defaults for anything
// not set by config file, environment, or flags.
func Load() Config {
	home, _ := os.UserHomeDir()
	viper.SetDefault("db_path", filepath.Join(home, ".tarot-hours", "journal.db"))
	viper.SetDefault("language", "ko")
	viper.SetDefault("poll_interval", 30*time.Second)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(home, ".tarot-hours"))
	viper.SetEnvPrefix("tarot_hours")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

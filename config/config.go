package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WAREFLOW"

// Config is the main configuration struct combining all sub-configs.
type Config struct {
	Economy EconomyConfig `mapstructure:"economy"`
	Logging LoggingConfig `mapstructure:"logging"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// EconomyConfig holds the balancing timings, all in game milliseconds.
type EconomyConfig struct {
	// Delay between a change and the balance it triggers.
	RequestDelay int64 `mapstructure:"request_delay" validate:"gte=1"`

	// Earliest re-balance after a pass that left requests open.
	RetryFloor int64 `mapstructure:"retry_floor" validate:"gte=1"`

	// How long a unit fetched from stock may wait at its destination.
	IdleSlack int64 `mapstructure:"idle_slack" validate:"gte=0"`

	// Warehouses closer than this share a district.
	DistrictThreshold int64 `mapstructure:"district_merge_threshold" validate:"gte=1"`

	// Complete transfers automatically once their route cost has elapsed.
	AutoDeliver bool `mapstructure:"auto_deliver"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// SyncConfig controls the synchronization stream file.
type SyncConfig struct {
	// Path of the zstd stream; empty disables the file.
	Path string `mapstructure:"path" validate:"omitempty,parentdir"`
}

// StoreConfig controls snapshot persistence.
type StoreConfig struct {
	// SQLite database path; empty disables saving.
	Path string `mapstructure:"path" validate:"omitempty,parentdir"`
}

// MetricsConfig controls the Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// Load reads configuration from path (optional), the environment and
// defaults, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wareflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing default file is fine; a missing explicit file is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

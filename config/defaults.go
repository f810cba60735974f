package config

import (
	"github.com/spf13/viper"

	"github.com/katalvlaran/wareflow/economy"
)

// setDefaults registers every key with viper so environment overrides reach
// Unmarshal even when no file mentions the key.
func setDefaults(v *viper.Viper) {
	// Economy defaults
	v.SetDefault("economy.request_delay", int64(economy.DefaultRequestDelay))
	v.SetDefault("economy.retry_floor", int64(economy.DefaultRetryFloor))
	v.SetDefault("economy.idle_slack", int64(economy.DefaultIdleSlack))
	v.SetDefault("economy.district_merge_threshold", economy.DefaultDistrictThreshold)
	v.SetDefault("economy.auto_deliver", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Output defaults
	v.SetDefault("sync.path", "")
	v.SetDefault("store.path", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "wareflow")
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

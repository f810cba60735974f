package config

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/wareflow/economy"
)

// EconomyOptions converts the economy section into session options.
func (c *Config) EconomyOptions() []economy.Option {
	e := c.Economy
	opts := []economy.Option{
		economy.WithRequestDelay(economy.Duration(e.RequestDelay)),
		economy.WithRetryFloor(economy.Duration(e.RetryFloor)),
		economy.WithIdleSlack(economy.Duration(e.IdleSlack)),
		economy.WithDistrictThreshold(e.DistrictThreshold),
	}
	if e.AutoDeliver {
		opts = append(opts, economy.WithAutoDelivery())
	}

	return opts
}

// Logger builds a slog logger writing to w in the configured format and level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}

	return slog.New(slog.NewTextHandler(w, hopts))
}

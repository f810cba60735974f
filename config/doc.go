// Package config loads wareflow settings.
//
// Sources, highest priority first:
//
//  1. WAREFLOW_* environment variables (WAREFLOW_ECONOMY_IDLE_SLACK, ...)
//  2. the YAML file passed to Load, or ./wareflow.yaml when none is given
//  3. built-in defaults
//
// The result is validated with struct tags before it is returned.
// EconomyOptions and Logger turn a Config into what economy.NewSession takes.
package config

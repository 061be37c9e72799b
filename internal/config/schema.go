// Package config provides configuration loading and validation for cronlens.
// It reads TOML files, expands environment variables and applies defaults.
//
// Configuration structure:
//   - [logging]: Logging level, format, and output
//   - [describe]: Default description locale
//   - [estimator]: Upcoming run count, search horizon and timezone
//   - [server]: HTTP API listen address and timeouts
//   - [metrics]: Prometheus metrics exposure
//
// Environment variables:
// String values can reference environment variables using ${VAR} or
// ${VAR:default} syntax. For example: addr = "${CRONLENS_ADDR::8080}"
package config

import "time"

// Config represents the main application configuration.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Describe  DescribeConfig  `toml:"describe"`
	Estimator EstimatorConfig `toml:"estimator"`
	Server    ServerConfig    `toml:"server"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// DescribeConfig представляет настройки описания выражений
type DescribeConfig struct {
	Locale string `toml:"locale"` // en, zh
}

// EstimatorConfig представляет настройки расчёта следующих запусков
type EstimatorConfig struct {
	Count       int    `toml:"count"`
	HorizonDays int    `toml:"horizon_days"`
	Timezone    string `toml:"timezone"` // IANA name or "Local"
}

// Horizon returns the search horizon as a duration
func (c EstimatorConfig) Horizon() time.Duration {
	return time.Duration(c.HorizonDays) * 24 * time.Hour
}

// Location loads the configured timezone
func (c EstimatorConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ServerConfig представляет конфигурацию HTTP API
type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	MaxRunCount         int    `toml:"max_run_count"`
}

// MetricsConfig представляет конфигурацию Prometheus метрик
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	Path      string `toml:"path"`
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aatumaykin/cronlens/internal/locale"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// LoadOptional loads path if it exists and returns Default() otherwise
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return Load(path)
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errors []error

	// Проверка logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	// Проверка локали
	if !isSupportedLocale(c.Describe.Locale) {
		errors = append(errors, fmt.Errorf("invalid describe.locale: %s (expected: en, zh)", c.Describe.Locale))
	}

	// Проверка estimator
	if c.Estimator.Count < 1 || c.Estimator.Count > 100 {
		errors = append(errors, fmt.Errorf("estimator.count must be between 1 and 100 (got %d)", c.Estimator.Count))
	}
	if c.Estimator.HorizonDays < 1 || c.Estimator.HorizonDays > 3660 {
		errors = append(errors, fmt.Errorf("estimator.horizon_days must be between 1 and 3660 (got %d)", c.Estimator.HorizonDays))
	}
	if _, err := c.Estimator.Location(); err != nil {
		errors = append(errors, fmt.Errorf("invalid estimator.timezone: %w", err))
	}

	// Проверка server
	if c.Server.Addr == "" {
		errors = append(errors, fmt.Errorf("server.addr is required"))
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		errors = append(errors, fmt.Errorf("server timeouts cannot be negative"))
	}
	if c.Server.MaxRunCount < 1 {
		errors = append(errors, fmt.Errorf("server.max_run_count must be >= 1 (got %d)", c.Server.MaxRunCount))
	}

	// Проверка metrics
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errors = append(errors, fmt.Errorf("metrics.path must start with '/' (got %q)", c.Metrics.Path))
	}

	return errors
}

func isSupportedLocale(s string) bool {
	for _, l := range locale.Supported {
		if string(l) == s {
			return true
		}
	}
	return false
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	if c.Describe.Locale == "" {
		c.Describe.Locale = string(locale.English)
	}

	if c.Estimator.Count == 0 {
		c.Estimator.Count = 5
	}
	if c.Estimator.HorizonDays == 0 {
		c.Estimator.HorizonDays = 4 * 366
	}
	if c.Estimator.Timezone == "" {
		c.Estimator.Timezone = "Local"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 10
	}
	if c.Server.MaxRunCount == 0 {
		c.Server.MaxRunCount = 50
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "cronlens"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) {
	c.Logging.Level = expandEnv(c.Logging.Level)
	c.Logging.Output = expandHome(expandEnv(c.Logging.Output))
	c.Describe.Locale = expandEnv(c.Describe.Locale)
	c.Estimator.Timezone = expandEnv(c.Estimator.Timezone)
	c.Server.Addr = expandEnv(c.Server.Addr)
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.LastIndex(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val
		}
		return parts[1]
	}

	// Без значения по умолчанию
	return os.Getenv(content)
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

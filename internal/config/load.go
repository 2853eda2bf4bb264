package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TASKBOARD"

// ConfigPathEnv names an explicit configuration file to read.
const ConfigPathEnv = EnvPrefix + "_CONFIG"

var defaults = map[string]interface{}{
	"server.port":                         8080,
	"server.log_level":                    "info",
	"server.shutdown_timeout_seconds":     10,
	"database.driver":                     "postgres",
	"database.max_open_conns":             25,
	"auth.token_lifetime_minutes":         60,
	"auth.refresh_token_lifetime_minutes": 7 * 24 * 60,
	"auth.bcrypt_cost":                    10,
	"llm.provider":                        "template",
	"llm.model_name":                      "gemini-2.0-flash",
	"llm.max_retries":                     3,
	"ratelimit.login_limit":               10,
	"ratelimit.window_seconds":            60,
}

// keys without defaults still need binding so Unmarshal sees their env vars.
var boundKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"llm.gemini_api_key",
	"ratelimit.redis_url",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables (TASKBOARD_SERVER_PORT, TASKBOARD_AUTH_JWT_SECRET, ...)
// take precedence over values from the file. The file is config.yaml in the
// working directory, or the path in TASKBOARD_CONFIG.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv(ConfigPathEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional config
// file. Environment variables use the AIGOV_ prefix with underscores for
// nesting (e.g. AIGOV_SERVER_PORT) and take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file in the working directory. A missing file is fine;
	// any other read error is not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("AIGOV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values so that a bare environment still
// produces a usable development configuration (minus required secrets).
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
	v.SetDefault("notify.timeout_seconds", 10)
	v.SetDefault("review.model_name", "gemini-2.0-flash")
	v.SetDefault("review.max_retries", 2)
	v.SetDefault("review.retry_delay_seconds", 2)
	v.SetDefault("usage.rollup_schedule", "0 6 * * *")

	// Bind nested keys explicitly so AutomaticEnv sees them even when no
	// config file provides the section.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes", "auth.bcrypt_cost",
		"task.worker_count", "task.queue_size", "task.stuck_task_age_minutes",
		"notify.teams_webhook_url", "notify.timeout_seconds",
		"review.gemini_api_key", "review.model_name",
		"review.max_retries", "review.retry_delay_seconds",
		"usage.rollup_schedule",
	} {
		if err := v.BindEnv(key); err != nil {
			// BindEnv only errors on an empty key, which cannot happen here.
			panic(err)
		}
	}
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Review   ReviewConfig   `mapstructure:"review"`
	Usage    UsageConfig    `mapstructure:"usage"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and token settings for the admin API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// TaskConfig controls the background task runner.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}

// NotifyConfig contains settings for outbound chat notifications.
// An empty webhook URL disables delivery; emitters then log and return.
type NotifyConfig struct {
	TeamsWebhookURL string `mapstructure:"teams_webhook_url" validate:"omitempty,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"   validate:"omitempty,gt=0"`
}

// ReviewConfig contains settings for the security review risk summarizer.
// An empty API key disables generation; reviews are stored without a summary.
type ReviewConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"omitempty,gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"omitempty,gt=0"`
}

// UsageConfig controls the scheduled usage rollup. The schedule is a standard
// five-field cron expression; empty disables the rollup job.
type UsageConfig struct {
	RollupSchedule string `mapstructure:"rollup_schedule"`
}

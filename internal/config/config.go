package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string   `mapstructure:"log_level"` // overrides the default level of the environment
	TelegramAPIToken string   `mapstructure:"-"`         // Telegram API token loaded from environment
	Telegram         Telegram `mapstructure:"telegram"`  // Telegram delivery section
	HTTP             HTTP     `mapstructure:"http"`      // HTTP API section
	AI               AI       `mapstructure:"ai"`        // generative model section
	Chat             Chat     `mapstructure:"chat"`      // tutoring chat section
	Session          Session  `mapstructure:"session"`   // in-memory session section
	DB               DB       `mapstructure:"database"`  // database configuration section
}

// Telegram contains Telegram bot parameters.
type Telegram struct {
	Enabled bool `mapstructure:"enabled"` // whether the bot is started
	Debug   bool `mapstructure:"debug"`   // verbose Bot API logging
}

// HTTP contains HTTP API parameters.
type HTTP struct {
	Enabled        bool          `mapstructure:"enabled"`         // whether the API server is started
	Addr           string        `mapstructure:"addr"`            // listen address
	AllowedOrigins []string      `mapstructure:"allowed_origins"` // CORS origins of the browser front-end
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // per-request deadline
}

// AI contains generative model parameters.
type AI struct {
	APIKey  string        `mapstructure:"-"`       // API key loaded from environment
	Model   string        `mapstructure:"model"`   // model name
	Timeout time.Duration `mapstructure:"timeout"` // deadline of a single model call
}

// Chat contains tutoring chat parameters.
type Chat struct {
	MaxHistory      int `mapstructure:"max_history"`      // messages kept per user
	ContextMessages int `mapstructure:"context_messages"` // messages sent with each turn
	MaxCodeBytes    int `mapstructure:"max_code_bytes"`   // largest snippet accepted for review
}

// Session contains in-memory session eviction parameters.
type Session struct {
	IdleTTL     time.Duration `mapstructure:"idle_ttl"`     // idle time after which a session is evicted
	JanitorSpec string        `mapstructure:"janitor_spec"` // cron spec of the eviction job
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Enabled reports whether results should be stored in PostgreSQL.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Load reads configuration from config files and environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return load(viper.New(), "./config")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.request_timeout", "90s")
	v.SetDefault("ai.model", "gemini-exp-1114")
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("chat.max_history", 50)
	v.SetDefault("chat.context_messages", 20)
	v.SetDefault("chat.max_code_bytes", 8192)
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.janitor_spec", "@every 5m")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.AI.APIKey = v.GetString("gemini_api_key")
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingEnvironmentVariables)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.Telegram.Enabled && cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	// The database is optional: without it results are kept in memory.
	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}

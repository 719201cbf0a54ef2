// Package config loads runtime configuration for the ARNOR GYM CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables ARNOR_*, after loading an optional .env file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   SQLite file of the durable storage
//	-s string   SQLite DSN of the session storage (":memory:" by default)
//	-p string   PostgreSQL DSN; replaces -d when set
//	-e string   default export location (path or s3://bucket/key)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "1500ms" or integer nanoseconds:
//
//	{
//	  "storage_dsn": "arnorgym.db",
//	  "session_dsn": ":memory:",
//	  "redirect_delay": "1500ms",
//	  "mode_switch_delay": "2s",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/"
//	}
package config

import "time"

type Config struct {
	StorageDSN      string        `env:"ARNOR_STORAGE_DSN"`
	SessionDSN      string        `env:"ARNOR_SESSION_DSN"`
	PostgresDSN     string        `env:"ARNOR_POSTGRES_DSN"`
	ExportURI       string        `env:"ARNOR_EXPORT_URI"`
	LogLevel        string        `env:"ARNOR_LOG_LEVEL"`
	LogFormat       string        `env:"ARNOR_LOG_FORMAT"`
	RedirectDelay   time.Duration `env:"ARNOR_REDIRECT_DELAY"`
	ModeSwitchDelay time.Duration `env:"ARNOR_MODE_SWITCH_DELAY"`
	HTTPTimeout     time.Duration `env:"ARNOR_HTTP_TIMEOUT"`
	S3Region        string        `env:"ARNOR_S3_REGION"`
	S3BaseEndpoint  string        `env:"ARNOR_S3_BASE_ENDPOINT"`
	S3AccessKey     string        `env:"ARNOR_S3_ACCESS_KEY"`
	S3SecretKey     string        `env:"ARNOR_S3_SECRET_KEY"`
}

// LoadDefaults populates c with defaults suitable for a local demo.
func (c *Config) LoadDefaults() {
	c.StorageDSN = "arnorgym.db"
	c.SessionDSN = ":memory:"
	c.PostgresDSN = ""
	c.ExportURI = "arnor_gym_users.json"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RedirectDelay = 1500 * time.Millisecond
	c.ModeSwitchDelay = 2 * time.Second
	c.HTTPTimeout = 30 * time.Second
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// LoadConfig applies defaults, environment, JSON and flags in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

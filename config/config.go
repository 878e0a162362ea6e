// Package config handles loading and validation of application configuration
// from environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nadit/nadit-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultFeedbackRecipient receives feedback notifications when FEEDBACK_TO is unset.
	DefaultFeedbackRecipient = "info@nadit.com"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// DatabaseConfig holds the document store connection details. The driver is
// chosen from the URL scheme, see db.Open.
type DatabaseConfig struct {
	URL                   string `mapstructure:"URL" yaml:"url"`
	Name                  string `mapstructure:"NAME" yaml:"name"`
	ConnectTimeoutSeconds int    `mapstructure:"CONNECT_TIMEOUT_SECONDS" yaml:"connect_timeout_seconds"`
	AutoMigrate           bool   `mapstructure:"AUTO_MIGRATE" yaml:"auto_migrate"`
}

// MailConfig holds the SMTP settings used for feedback notifications.
// Port is kept as text so a malformed value disables mail instead of
// failing startup.
type MailConfig struct {
	Host       string `mapstructure:"HOST" yaml:"host"`
	Port       string `mapstructure:"PORT" yaml:"port"`
	User       string `mapstructure:"USER" yaml:"user"`
	Password   string `mapstructure:"PASSWORD" yaml:"password"`
	FeedbackTo string `mapstructure:"FEEDBACK_TO" yaml:"feedback_to"`
}

// PortNumber parses Port. Zero or invalid values return an error.
func (m MailConfig) PortNumber() (int, error) {
	if m.Port == "" {
		return 0, fmt.Errorf("mail port is not set")
	}
	port, err := strconv.Atoi(strings.TrimSpace(m.Port))
	if err != nil {
		return 0, fmt.Errorf("invalid mail port %q: %w", m.Port, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("mail port %d out of range", port)
	}
	return port, nil
}

// Complete reports whether every value needed for an SMTP session is present.
func (m MailConfig) Complete() bool {
	if m.Host == "" || m.User == "" || m.Password == "" {
		return false
	}
	_, err := m.PortNumber()
	return err == nil
}

// EmailConfig holds configuration for the Resend fallback provider.
type EmailConfig struct {
	FromAddress  string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName     string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// Enabled reports whether the Resend provider has enough configuration to send.
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != "" && e.FromAddress != ""
}

// LogConfig holds logger settings that are read after the logger bootstraps.
type LogConfig struct {
	Level string `mapstructure:"LEVEL" yaml:"level"`
	File  string `mapstructure:"FILE" yaml:"file"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	Database DatabaseConfig `mapstructure:"DATABASE" yaml:"database"`
	Mail     MailConfig     `mapstructure:"MAIL" yaml:"mail"`
	Email    EmailConfig    `mapstructure:"EMAIL" yaml:"email"`
	Log      LogConfig      `mapstructure:"LOG" yaml:"log"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// DatabaseURLSet reports whether DATABASE_URL was provided.
func (c *Config) DatabaseURLSet() bool {
	return c.Database.URL != ""
}

// DatabaseNameSet reports whether DATABASE_NAME was provided.
func (c *Config) DatabaseNameSet() bool {
	return c.Database.Name != ""
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
// It does not log, so it can run before the logger is initialized.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "1.0")
	v.SetDefault("DATABASE.URL", "")
	v.SetDefault("DATABASE.NAME", "")
	v.SetDefault("DATABASE.CONNECT_TIMEOUT_SECONDS", 10)
	v.SetDefault("DATABASE.AUTO_MIGRATE", true)
	v.SetDefault("MAIL.HOST", "")
	v.SetDefault("MAIL.PORT", "")
	v.SetDefault("MAIL.USER", "")
	v.SetDefault("MAIL.PASSWORD", "")
	v.SetDefault("MAIL.FEEDBACK_TO", DefaultFeedbackRecipient)
	v.SetDefault("EMAIL.FROM_ADDRESS", "")
	v.SetDefault("EMAIL.FROM_NAME", "Nadit")
	v.SetDefault("EMAIL.RESEND_API_KEY", "")
	v.SetDefault("LOG.LEVEL", "info")
	v.SetDefault("LOG.FILE", "")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Database config
		{"DATABASE.URL", "DATABASE_URL"},
		{"DATABASE.NAME", "DATABASE_NAME"},
		{"DATABASE.CONNECT_TIMEOUT_SECONDS", "DATABASE_CONNECT_TIMEOUT_SECONDS"},
		{"DATABASE.AUTO_MIGRATE", "DATABASE_AUTO_MIGRATE"},
		// Mail (SMTP) config
		{"MAIL.HOST", "MAIL_HOST"},
		{"MAIL.PORT", "MAIL_PORT"},
		{"MAIL.USER", "MAIL_USER"},
		{"MAIL.PASSWORD", "MAIL_PASSWORD"},
		{"MAIL.FEEDBACK_TO", "FEEDBACK_TO"},
		// Email (Resend) config
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// Logging
		{"LOG.LEVEL", "LOG_LEVEL"},
		{"LOG.FILE", "LOG_FILE"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if cfg.Mail.FeedbackTo == "" {
		cfg.Mail.FeedbackTo = DefaultFeedbackRecipient
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"database_url", logger.MaskConnectionString(cfg.Database.URL),
		"database_name_set", cfg.DatabaseNameSet(),
		"mail_configured", cfg.Mail.Complete(),
		"resend_configured", cfg.Email.Enabled(),
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
// Missing database or mail settings are not errors: those features degrade.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid environment %q", cfg.Server.Environment)
	}

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", cfg.Server.Port)
	}

	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.ConnectTimeoutSeconds <= 0 {
		return fmt.Errorf("database connect timeout must be positive")
	}

	if cfg.Mail.Port != "" {
		if _, err := cfg.Mail.PortNumber(); err != nil {
			log.Warnw("Mail port is invalid, email notifications disabled", "error", err)
		}
	}

	return nil
}

// containsWildcard checks if the slice contains the wildcard "*".
func containsWildcard(s []string) bool {
	for _, v := range s {
		if v == "*" {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Booking  BookingConfig
	AI       AIConfig
	SMTP     SMTPConfig
	Reminder ReminderConfig
	Logging  LoggingConfig
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type BookingConfig struct {
	// MissingPatientPolicy decides what happens when a booking references a
	// patient that is not in the roster: "ignore" drops the booking silently
	// (the historical behavior), "reject" returns a validation error.
	MissingPatientPolicy string `mapstructure:"missing_patient_policy"`
}

type AIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	BreakerWindow  time.Duration `mapstructure:"breaker_window"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type ReminderConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Secrets are never read from the config file; they come from the
// environment only.
type Secrets struct {
	DatabasePassword string `envconfig:"CLINIC_DB_PASSWORD"`
	SMTPUser         string `envconfig:"CLINIC_SMTP_USER"`
	SMTPPassword     string `envconfig:"CLINIC_SMTP_PASSWORD"`
	GeminiAPIKey     string `envconfig:"CLINIC_GEMINI_API_KEY"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("booking.missing_patient_policy", "ignore")
	viper.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("ai.model", "gemini-1.5-pro")
	viper.SetDefault("ai.timeout_seconds", 30)
	viper.SetDefault("ai.breaker_window", time.Minute)
	viper.SetDefault("reminder.interval", time.Hour)
	viper.SetDefault("logging.level", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var secrets Secrets
	if err := envconfig.Process("", &secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	if secrets.DatabasePassword != "" {
		config.Database.Password = secrets.DatabasePassword
	}

	return &config, nil
}

// LoadSecrets exposes the environment-only secrets to the composition root.
func LoadSecrets() (*Secrets, error) {
	var secrets Secrets
	if err := envconfig.Process("", &secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	return &secrets, nil
}

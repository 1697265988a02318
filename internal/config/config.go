package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DatabaseConfig holds the optional PostgreSQL store of the booking twin.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a database host is configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds the optional event stream of the booking twin.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether brokers are configured.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// ServiceConfig holds all configuration for the suite, the smoke runner and the twin.
type ServiceConfig struct {
	AppEnv      string        `validate:"required"`
	BaseURL     string        `validate:"required,url"`
	Username    string        `validate:"required"`
	Password    string        `validate:"required"`
	HTTPTimeout time.Duration `validate:"gt=0"`
	RateLimit   float64       `validate:"gte=0"`
	LogPath     string
	Port        string `validate:"required"`
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
}

var validate = validator.New()

// Load reads configuration from BOOKER_* environment variables and an
// optional .env file in the working directory. Keys in .env carry no prefix.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("BASE_URL", "https://restful-booker.herokuapp.com")
	v.SetDefault("USERNAME", "admin")
	v.SetDefault("PASSWORD", "password123")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("RATE_LIMIT", 0)
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("SERVICE_PORT", ":3001")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "booking.events")

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}

	cfg := &ServiceConfig{
		AppEnv:      v.GetString("APP_ENV"),
		BaseURL:     strings.TrimRight(v.GetString("BASE_URL"), "/"),
		Username:    v.GetString("USERNAME"),
		Password:    v.GetString("PASSWORD"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
		RateLimit:   v.GetFloat64("RATE_LIMIT"),
		LogPath:     v.GetString("LOG_PATH"),
		Port:        v.GetString("SERVICE_PORT"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

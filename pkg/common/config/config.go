package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	ServerPort       string
	ServerHost       string
	AuditServicePort string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MaxRequestBody   int64

	// Logging
	LogLevel  string
	LogFormat string

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers         []string
	KafkaGroupID         string
	ScreeningEventsTopic string

	// Artifacts
	ScalerPath            string
	ModelPath             string
	ConditionCatalogPath  string
	ModelCardPath         string
	AllowUnscaledFallback bool

	// Error tracking
	SentryDSN  string
	AppEnv     string
	AppVersion string

	// Rate limiting
	RateLimitRPS    int
	RateLimitBurst  int
	RateLimitWindow time.Duration
}

var defaults = map[string]interface{}{
	"server_port":        "8080",
	"server_host":        "0.0.0.0",
	"audit_service_port": "8090",
	"read_timeout":       30 * time.Second,
	"write_timeout":      30 * time.Second,
	"max_request_body":   64 * 1024,

	"log_level":  "info",
	"log_format": "json",

	"postgres_host":     "localhost",
	"postgres_port":     "5432",
	"postgres_user":     "dizzycheck",
	"postgres_password": "dizzycheck",
	"postgres_db":       "dizzycheck",
	"postgres_sslmode":  "disable",

	"redis_host":     "",
	"redis_port":     "6379",
	"redis_password": "",
	"redis_db":       0,

	"kafka_brokers":          "",
	"kafka_group_id":         "dizzycheck-audit",
	"screening_events_topic": "screening.completed",

	"scaler_path":             "artifacts/scaler.json",
	"model_path":              "artifacts/model.json",
	"condition_catalog_path":  "",
	"model_card_path":         "",
	"allow_unscaled_fallback": false,

	"sentry_dsn":  "",
	"app_env":     "development",
	"app_version": "dev",

	"rate_limit_rps":    20,
	"rate_limit_burst":  40,
	"rate_limit_window": time.Minute,
}

// Load reads configuration from the environment, optionally layered over the YAML
// file named by CONFIG_FILE. Environment variables use the upper-cased key names.
// A CONFIG_FILE that cannot be read or parsed is an error.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return FromViper(v), nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}
	return v, nil
}

// FromViper maps an already populated viper instance onto Config.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:       v.GetString("server_port"),
		ServerHost:       v.GetString("server_host"),
		AuditServicePort: v.GetString("audit_service_port"),
		ReadTimeout:      v.GetDuration("read_timeout"),
		WriteTimeout:     v.GetDuration("write_timeout"),
		MaxRequestBody:   v.GetInt64("max_request_body"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		PostgresHost:     v.GetString("postgres_host"),
		PostgresPort:     v.GetString("postgres_port"),
		PostgresUser:     v.GetString("postgres_user"),
		PostgresPassword: v.GetString("postgres_password"),
		PostgresDB:       v.GetString("postgres_db"),
		PostgresSSLMode:  v.GetString("postgres_sslmode"),

		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		KafkaBrokers:         splitList(v.GetString("kafka_brokers")),
		KafkaGroupID:         v.GetString("kafka_group_id"),
		ScreeningEventsTopic: v.GetString("screening_events_topic"),

		ScalerPath:            v.GetString("scaler_path"),
		ModelPath:             v.GetString("model_path"),
		ConditionCatalogPath:  v.GetString("condition_catalog_path"),
		ModelCardPath:         v.GetString("model_card_path"),
		AllowUnscaledFallback: v.GetBool("allow_unscaled_fallback"),

		SentryDSN:  v.GetString("sentry_dsn"),
		AppEnv:     v.GetString("app_env"),
		AppVersion: v.GetString("app_version"),

		RateLimitRPS:    v.GetInt("rate_limit_rps"),
		RateLimitBurst:  v.GetInt("rate_limit_burst"),
		RateLimitWindow: v.GetDuration("rate_limit_window"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// KafkaEnabled reports whether any broker is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

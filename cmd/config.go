package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"kds/internal/core/domain/services"
	"kds/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel    string
	LogEncoding string

	RetentionHours int
	SweepSchedule  string

	UrgencyWarningAfter time.Duration
	UrgencyUrgentAfter  time.Duration

	KafkaEnabled           bool
	KafkaBrokers           []string
	KafkaOrderChangedTopic string

	SimulatorEnabled  bool
	SimulatorSchedule string

	OpenAPIValidation bool
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "kds"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),

		RetentionHours: getEnvAsInt("RETENTION_HOURS", 24),
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "@hourly"),

		UrgencyWarningAfter: getEnvAsDuration("URGENCY_WARNING_AFTER", services.DefaultWarningAfter),
		UrgencyUrgentAfter:  getEnvAsDuration("URGENCY_URGENT_AFTER", services.DefaultUrgentAfter),

		KafkaEnabled:           getEnvAsBool("KAFKA_ENABLED", false),
		KafkaBrokers:           getEnvAsStringSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "kds.order-changed"),

		SimulatorEnabled:  getEnvAsBool("SIMULATOR_ENABLED", false),
		SimulatorSchedule: getEnv("SIMULATOR_SCHEDULE", "@every 30s"),

		OpenAPIValidation: getEnvAsBool("OPENAPI_VALIDATION", true),
	}

	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errList []error

	if c.RetentionHours < 0 {
		errList = append(errList, fmt.Errorf("RETENTION_HOURS must not be negative, got %d", c.RetentionHours))
	}
	if err := jobs.ValidateSchedule(c.SweepSchedule); err != nil {
		errList = append(errList, fmt.Errorf("SWEEP_SCHEDULE: %w", err))
	}
	if _, err := services.NewUrgencyPolicy(c.UrgencyWarningAfter, c.UrgencyUrgentAfter); err != nil {
		errList = append(errList, fmt.Errorf("URGENCY_WARNING_AFTER/URGENCY_URGENT_AFTER: %w", err))
	}
	if c.KafkaEnabled && (len(c.KafkaBrokers) == 0 || c.KafkaOrderChangedTopic == "") {
		errList = append(errList, errors.New("KAFKA_BROKERS and KAFKA_ORDER_CHANGED_TOPIC are required when KAFKA_ENABLED"))
	}
	if c.SimulatorEnabled {
		if err := jobs.ValidateSchedule(c.SimulatorSchedule); err != nil {
			errList = append(errList, fmt.Errorf("SIMULATOR_SCHEDULE: %w", err))
		}
	}

	return errors.Join(errList...)
}

// DSN is the key/value connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return v
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if v, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return v
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaults []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		filtered := make([]string, 0, len(parts))
		for _, part := range parts {
			if p := strings.TrimSpace(part); p != "" {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	return defaults
}

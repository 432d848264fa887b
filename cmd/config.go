package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/rabbitmq"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SqlitePath string

	JWTSecret string

	RabbitMQURL      string
	RabbitMQExchange string

	NotificationRelaySpec string
	RelayBatchSize        int
	BulkPayConcurrency    int
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	relayBatchSize, err := intVariable("NOTIFICATION_RELAY_BATCH_SIZE", commands.DefaultRelayBatchSize)
	if err != nil {
		return Config{}, err
	}
	bulkPayConcurrency, err := intVariable("BULK_PAY_CONCURRENCY", commands.DefaultBulkPayConcurrency)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:              variable("HTTP_PORT", "8080"),
		DBDriver:              variable("DB_DRIVER", postgres.DriverPostgres),
		DBHost:                variable("DB_HOST", "localhost"),
		DBPort:                variable("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                variable("DB_NAME", "workorders"),
		DBSslMode:             variable("DB_SSLMODE", "disable"),
		SqlitePath:            os.Getenv("SQLITE_PATH"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:      variable("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange),
		NotificationRelaySpec: variable("NOTIFICATION_RELAY_SPEC", jobs.DefaultRelaySpec),
		RelayBatchSize:        relayBatchSize,
		BulkPayConcurrency:    bulkPayConcurrency,
	}, nil
}

func (c Config) ConnectionSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SslMode:    c.DBSslMode,
		SqlitePath: c.SqlitePath,
	}
}

// ValidateForServe checks what the HTTP server cannot run without.
func (c Config) ValidateForServe() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}
	return nil
}

func variable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}

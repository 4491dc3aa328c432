package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SequenceSQL   = "sql"
	SequenceMongo = "mongo"
	SequenceRedis = "redis"

	LockLocal = "local"
	LockRedis = "redis"
)

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"dbname"`
}

// app config; file values are overridden by environment variables
type Config struct {
	Port            string         `yaml:"port"`
	DBDriver        string         `yaml:"db_driver"`
	Postgres        PostgresConfig `yaml:"postgres"`
	SQLitePath      string         `yaml:"sqlite_path"`
	Redis           RedisConfig    `yaml:"redis"`
	Mongo           MongoConfig    `yaml:"mongo"`
	SequenceBackend string         `yaml:"sequence_backend"`
	LockBackend     string         `yaml:"lock_backend"`
	AuditEnabled    bool           `yaml:"audit_enabled"`
	AuditSchedule   string         `yaml:"audit_schedule"`
	JWTSecret       string         `yaml:"jwt_secret"`
	CORSOrigins     []string       `yaml:"cors_origins"`
	LogLevel        string         `yaml:"log_level"`
	LogFormat       string         `yaml:"log_format"`
}

func defaults() *Config {
	return &Config{
		Port:     "8080",
		DBDriver: DriverPostgres,
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "postgres",
			SSLMode:  "disable",
		},
		SQLitePath:      "placement.db",
		Mongo:           MongoConfig{DBName: "novusarc"},
		SequenceBackend: SequenceSQL,
		LockBackend:     LockLocal,
		AuditEnabled:    true,
		AuditSchedule:   "*/15 * * * *",
		CORSOrigins:     []string{"http://localhost:5173"},
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// LoadConfig reads CONFIG_FILE if set, then applies environment overrides.
func LoadConfig() (*Config, error) {
	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}
	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Port = getEnvOrDefault("PORT", config.Port)
	config.DBDriver = getEnvOrDefault("DB_DRIVER", config.DBDriver)
	config.Postgres.Host = getEnvOrDefault("POSTGRES_HOST", config.Postgres.Host)
	config.Postgres.Port = getEnvOrDefault("POSTGRES_PORT", config.Postgres.Port)
	config.Postgres.User = getEnvOrDefault("POSTGRES_USER", config.Postgres.User)
	config.Postgres.Password = getEnvOrDefault("POSTGRES_PASSWORD", config.Postgres.Password)
	config.Postgres.DBName = getEnvOrDefault("POSTGRES_DB", config.Postgres.DBName)
	config.Postgres.SSLMode = getEnvOrDefault("POSTGRES_SSLMODE", config.Postgres.SSLMode)
	config.SQLitePath = getEnvOrDefault("SQLITE_PATH", config.SQLitePath)
	config.Redis.Addr = getEnvOrDefault("REDIS_ADDR", config.Redis.Addr)
	config.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", config.Redis.Password)
	config.Redis.DB = getEnvInt("REDIS_DB", config.Redis.DB)
	config.Mongo.URI = getEnvOrDefault("MONGO_URI", config.Mongo.URI)
	config.Mongo.DBName = getEnvOrDefault("MONGO_DB_NAME", config.Mongo.DBName)
	config.SequenceBackend = strings.ToLower(getEnvOrDefault("SEQUENCE_BACKEND", config.SequenceBackend))
	config.LockBackend = strings.ToLower(getEnvOrDefault("LOCK_BACKEND", config.LockBackend))
	config.AuditEnabled = getEnvBool("AUDIT_ENABLED", config.AuditEnabled)
	config.AuditSchedule = getEnvOrDefault("AUDIT_SCHEDULE", config.AuditSchedule)
	config.JWTSecret = getEnvOrDefault("JWT_SECRET", config.JWTSecret)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.CORSOrigins = splitList(origins)
	}
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnvOrDefault("LOG_FORMAT", config.LogFormat)
}

func validateConfig(config *Config) error {
	switch config.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.New("unsupported DB_DRIVER: " + config.DBDriver + ". Supported: postgres, sqlite")
	}

	switch config.SequenceBackend {
	case SequenceSQL:
	case SequenceMongo:
		if config.Mongo.URI == "" {
			return errors.New("MONGO_URI is required when SEQUENCE_BACKEND=mongo")
		}
	case SequenceRedis:
		if config.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required when SEQUENCE_BACKEND=redis")
		}
	default:
		return errors.New("unsupported SEQUENCE_BACKEND: " + config.SequenceBackend + ". Supported: sql, mongo, redis")
	}

	switch config.LockBackend {
	case LockLocal:
	case LockRedis:
		if config.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required when LOCK_BACKEND=redis")
		}
	default:
		return errors.New("unsupported LOCK_BACKEND: " + config.LockBackend + ". Supported: local, redis")
	}

	if config.Port == "" {
		return errors.New("PORT must not be empty")
	}
	return nil
}

// NeedsRedis reports whether any configured backend talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.SequenceBackend == SequenceRedis || c.LockBackend == LockRedis
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
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

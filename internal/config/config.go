package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	PubSub   PubSubConfig
	Alarm    AlarmConfig
	Log      LogConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	SlotKey         string
}

type PubSubConfig struct {
	NatsURL         string
	GCloudProjectID string
}

type AlarmConfig struct {
	// TimeZone is an IANA name or "Local" for the host zone.
	TimeZone       string
	DefaultEnabled bool
	ResyncSchedule string
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	slowThreshold, err := time.ParseDuration(getEnv("DB_SLOW_THRESHOLD", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_SLOW_THRESHOLD: %w", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))

	dsn := os.Getenv("DB_DSN")

	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = "alarms.db"
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN environment variable is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: %q", driver)
	}

	defaultEnabled, err := strconv.ParseBool(getEnv("ALARM_DEFAULT_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALARM_DEFAULT_ENABLED: %w", err)
	}

	timeZone := getEnv("ALARM_TIMEZONE", "Local")
	if timeZone != "Local" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			return nil, fmt.Errorf("invalid ALARM_TIMEZONE: %w", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			Driver:          driver,
			DSN:             dsn,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
			SlowThreshold:   slowThreshold,
			SlotKey:         getEnv("SLOT_KEY", "alarms.v2"),
		},
		PubSub: PubSubConfig{
			NatsURL:         os.Getenv("NATS_URL"),
			GCloudProjectID: os.Getenv("GCLOUD_PROJECT_ID"),
		},
		Alarm: AlarmConfig{
			TimeZone:       timeZone,
			DefaultEnabled: defaultEnabled,
			ResyncSchedule: getEnv("RESYNC_SCHEDULE", "@every 15m"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

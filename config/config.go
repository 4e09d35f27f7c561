package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Booking      BookingConfig      `yaml:"booking"`
	Notification NotificationConfig `yaml:"notification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Kafka        KafkaConfig        `yaml:"kafka"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	Mode    string `yaml:"mode"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type BookingConfig struct {
	// CodeAttempts bounds how many reservation codes are tried before giving up on a collision.
	CodeAttempts   int           `yaml:"code_attempts"`
	FlightCacheTTL time.Duration `yaml:"flight_cache_ttl"`
}

type NotificationConfig struct {
	// Backend is "redis" (stream) or "memory".
	Backend          string        `yaml:"backend"`
	ConsumerID       string        `yaml:"consumer_id"`
	ClaimMinIdleTime time.Duration `yaml:"claim_min_idle_time"`
	MaxRetryCount    int           `yaml:"max_retry_count"`
	BufferSize       int           `yaml:"buffer_size"`
	StreamMaxLen     int64         `yaml:"stream_max_len"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether confirmation emails go out over SMTP.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	ReservationsTopic string   `yaml:"reservations_topic"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.ReservationsTopic != ""
}

var AppConfig *Config

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_PATH, and finally environment variables.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func LoadTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnv("TEST_DB_PORT", "5433"), // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}
	cfg.Redis = RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnv("TEST_REDIS_PORT", "6380"), // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}
	cfg.Notification.Backend = "memory"
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
			Mode:    "release",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "postgres",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Booking: BookingConfig{
			CodeAttempts:   3,
			FlightCacheTTL: 5 * time.Minute,
		},
		Notification: NotificationConfig{
			Backend:          "redis",
			ClaimMinIdleTime: 30 * time.Second,
			MaxRetryCount:    5,
			BufferSize:       256,
			StreamMaxLen:     10000,
		},
		SMTP: SMTPConfig{
			Port: 587,
			From: "reservations@example.com",
		},
		Kafka: KafkaConfig{
			ReservationsTopic: "reservations",
		},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Address = getEnv("SERVER_ADDRESS", cfg.Server.Address)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", cfg.Database.SSLMode)

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnv("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Notification.Backend = getEnv("NOTIFICATION_BACKEND", cfg.Notification.Backend)
	cfg.Notification.ConsumerID = getEnv("NOTIFICATION_CONSUMER_ID", cfg.Notification.ConsumerID)

	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)

	cfg.Kafka.ReservationsTopic = getEnv("KAFKA_RESERVATIONS_TOPIC", cfg.Kafka.ReservationsTopic)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}
	if cfg.SMTP.Port, err = getEnvInt("SMTP_PORT", cfg.SMTP.Port); err != nil {
		return err
	}
	if cfg.Booking.CodeAttempts, err = getEnvInt("BOOKING_CODE_ATTEMPTS", cfg.Booking.CodeAttempts); err != nil {
		return err
	}
	if cfg.Notification.MaxRetryCount, err = getEnvInt("NOTIFICATION_MAX_RETRY", cfg.Notification.MaxRetryCount); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, value)
	}
	return n, nil
}

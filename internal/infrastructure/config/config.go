package config

import (
	"fmt"
	"os"
	"strconv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
	AutoVerify    bool
	Outbox        bool
}

type Config struct {
	GRPCPort     int
	HTTPPort     int
	DB           DatabaseConfig
	Kafka        KafkaConfig
	AuditLogPath string
	ServiceName  string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9093),
		HTTPPort: getEnvInt("HTTP_PORT", 8093),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "terralend"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "terralend_verification"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:         getEnv("KAFKA_TOPIC", "terralend.lending.events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "terralend-verification"),
			AutoVerify:    getEnvBool("KAFKA_AUTO_VERIFY", true),
			Outbox:        getEnvBool("EVENT_OUTBOX", false),
		},
		AuditLogPath: getEnv("AUDIT_LOG_PATH", "data/verification-audit.log"),
		ServiceName:  "terralend-verification",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

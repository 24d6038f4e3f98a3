package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	KafkaBrokers       []string
	KafkaTransferTopic string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	LogLevel   string
	QRCodeSize int
}

func Load() *Config {
	return &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:           getEnv("GRPC_ADDR", ":50051"),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKERS"),
		KafkaTransferTopic: getEnv("KAFKA_TRANSFER_TOPIC", "ledger.transfers"),
		RequestTimeout:     getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		QRCodeSize:         getEnvAsInt("QR_CODE_SIZE", 256),
	}
}

// EventsEnabled reports whether transfer events should go to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

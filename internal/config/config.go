package config

import (
	"os"
	"strings"

	"github.com/periodpain/pain-helper/internal/logger"
)

type Config struct {
	TelegramToken string
	API           APIConfig
	DataDir       string
	Redis         RedisConfig
	Logger        LoggerConfig
}

// APIConfig points the gateway client at the remote pain tracking API.
type APIConfig struct {
	BaseURL string
}

// RedisConfig enables the Redis-backed conversation state manager when
// Host is set; otherwise state is kept in memory.
type RedisConfig struct {
	Host string
	Port string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		API: APIConfig{
			BaseURL: getEnvOrDefault("API_BASE_URL", "http://localhost:8000/api/v1"),
		},
		DataDir: getEnvOrDefault("DATA_DIR", "data"),
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}

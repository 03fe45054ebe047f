package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken     string
	LogChannelID int64

	// Question generation
	PerplexityAPIKey string

	// Database (optional; the bot runs fully in-memory without it)
	DBEnabled  bool
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv   string
	LogLevel string

	// Quiz
	QuizQuestionCount    int
	QuizPostIntervalSec  int
	QuizInitialDelaySec  int
	PollOpenPeriodSec    int
	GeneratorTimeoutSec  int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		PerplexityAPIKey: getEnv("PERPLEXITY_API_KEY", ""),

		DBEnabled:  getEnvBool("DB_ENABLED", false),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "quizbot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "quizbot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		QuizQuestionCount:   getEnvInt("QUIZ_QUESTION_COUNT", 20),
		QuizPostIntervalSec: getEnvInt("QUIZ_POST_INTERVAL_SECONDS", 30),
		QuizInitialDelaySec: getEnvInt("QUIZ_INITIAL_DELAY_SECONDS", 1),
		PollOpenPeriodSec:   getEnvInt("POLL_OPEN_PERIOD_SECONDS", 25),
		GeneratorTimeoutSec: getEnvInt("GENERATOR_TIMEOUT_SECONDS", 30),
	}

	// Parse log channel ID
	channelStr := getEnv("LOG_CHANNEL_ID", "")
	if channelStr != "" {
		id, err := strconv.ParseInt(channelStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_CHANNEL_ID: %w", err)
		}
		cfg.LogChannelID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBEnabled && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required when DB_ENABLED is set")
	}
	if c.QuizQuestionCount <= 0 {
		return fmt.Errorf("QUIZ_QUESTION_COUNT must be positive")
	}
	if c.QuizPostIntervalSec <= 0 {
		return fmt.Errorf("QUIZ_POST_INTERVAL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetPostInterval() time.Duration {
	return time.Duration(c.QuizPostIntervalSec) * time.Second
}

func (c *Config) GetInitialDelay() time.Duration {
	return time.Duration(c.QuizInitialDelaySec) * time.Second
}

func (c *Config) GetGeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSec) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

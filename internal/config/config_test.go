package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("BOT_TOKEN", "test_bot_token")
	os.Setenv("LOG_CHANNEL_ID", "-1001234567890")
	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("LOG_CHANNEL_ID")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BotToken != "test_bot_token" {
		t.Errorf("BotToken = %q, want %q", cfg.BotToken, "test_bot_token")
	}

	if cfg.LogChannelID != -1001234567890 {
		t.Errorf("LogChannelID = %d, want %d", cfg.LogChannelID, int64(-1001234567890))
	}

	// Defaults
	if cfg.QuizQuestionCount != 20 {
		t.Errorf("QuizQuestionCount = %d, want 20", cfg.QuizQuestionCount)
	}
	if cfg.QuizPostIntervalSec != 30 {
		t.Errorf("QuizPostIntervalSec = %d, want 30", cfg.QuizPostIntervalSec)
	}
	if cfg.PollOpenPeriodSec != 25 {
		t.Errorf("PollOpenPeriodSec = %d, want 25", cfg.PollOpenPeriodSec)
	}
	if cfg.DBEnabled {
		t.Error("DBEnabled = true, want false by default")
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing BOT_TOKEN",
			envVars: map[string]string{},
		},
		{
			name: "DB enabled without password",
			envVars: map[string]string{
				"BOT_TOKEN":  "token",
				"DB_ENABLED": "true",
			},
		},
		{
			name: "Invalid LOG_CHANNEL_ID",
			envVars: map[string]string{
				"BOT_TOKEN":      "token",
				"LOG_CHANNEL_ID": "not_a_number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidate_BadQuizSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "Zero question count",
			cfg: &Config{
				BotToken:            "token",
				QuizQuestionCount:   0,
				QuizPostIntervalSec: 30,
			},
		},
		{
			name: "Zero post interval",
			cfg: &Config{
				BotToken:            "token",
				QuizQuestionCount:   20,
				QuizPostIntervalSec: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestDurationGetters(t *testing.T) {
	cfg := &Config{
		QuizPostIntervalSec: 30,
		QuizInitialDelaySec: 1,
		GeneratorTimeoutSec: 45,
	}

	if got := cfg.GetPostInterval(); got != 30*time.Second {
		t.Errorf("GetPostInterval() = %v, want 30s", got)
	}
	if got := cfg.GetInitialDelay(); got != 1*time.Second {
		t.Errorf("GetInitialDelay() = %v, want 1s", got)
	}
	if got := cfg.GetGeneratorTimeout(); got != 45*time.Second {
		t.Errorf("GetGeneratorTimeout() = %v, want 45s", got)
	}
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/komresu/quizonomics/internal/config"
	"github.com/komresu/quizonomics/internal/database"
	"github.com/komresu/quizonomics/pkg/logger"
	"github.com/komresu/quizonomics/telegram"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Quizonomics Bot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Database is optional; without it the bot serves quizzes from the
	// generator and the static fallback banks only.
	var db *gorm.DB
	if cfg.DBEnabled {
		db, err = database.Connect(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", err)
		}

		// Run GORM auto-migration
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}

		// Seed the question bank on first run
		if err := database.SeedBankQuestions(db); err != nil {
			logger.Warn("Failed to seed question bank", "error", err)
		}
	} else {
		logger.Info("Running without database, quiz history disabled")
	}

	// Initialize and start Telegram bot
	bot, err := telegram.InitBot(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	bot.Stop()
	logger.Info("Bot stopped")
}

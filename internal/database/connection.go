package database

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/komresu/quizonomics/internal/config"
	"github.com/komresu/quizonomics/internal/generator"
	"github.com/komresu/quizonomics/internal/models"
	"github.com/komresu/quizonomics/pkg/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Modest pool; the bot is the only client.
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.BankQuestion{},
		&models.QuizRun{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedBankQuestions loads the compiled-in fallback seeds into the question
// bank on first boot, so the bank is never empty.
func SeedBankQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.BankQuestion{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count bank questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding question bank...")
	seeded := 0
	for subject, questions := range generator.SeedQuestions() {
		for _, q := range questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				continue
			}
			row := models.BankQuestion{
				Subject:      subject,
				QuestionText: q.Text,
				Options:      string(optionsJSON),
				CorrectIndex: q.CorrectIndex,
				Explanation:  q.Explanation,
			}
			if err := db.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed question for %s: %w", subject, err)
			}
			seeded++
		}
	}
	logger.Info("Question bank seeded", "count", seeded)
	return nil
}

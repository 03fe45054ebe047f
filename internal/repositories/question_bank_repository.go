package repositories

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/komresu/quizonomics/internal/models"
	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/pkg/errors"
	"github.com/komresu/quizonomics/pkg/logger"
)

type BankQuestionRepository struct {
	db *gorm.DB
}

func NewBankQuestionRepository(db *gorm.DB) *BankQuestionRepository {
	return &BankQuestionRepository{db: db}
}

// QuestionsBySubject retrieves up to limit random bank questions for a
// subject. Rows with unparsable options are skipped.
func (r *BankQuestionRepository) QuestionsBySubject(subject string, limit int) ([]quiz.Question, error) {
	var rows []models.BankQuestion
	result := r.db.Where("subject = ?", subject).
		Order("RANDOM()").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get bank questions")
	}

	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		var options []string
		if err := json.Unmarshal([]byte(row.Options), &options); err != nil || len(options) < 2 {
			logger.Warn("Skipping bank question with bad options", "id", row.ID, "subject", row.Subject)
			continue
		}
		if row.CorrectIndex < 0 || row.CorrectIndex >= len(options) {
			logger.Warn("Skipping bank question with out-of-range answer", "id", row.ID)
			continue
		}
		questions = append(questions, quiz.Question{
			Text:         row.QuestionText,
			Options:      options,
			CorrectIndex: row.CorrectIndex,
			Explanation:  row.Explanation,
		})
	}
	return questions, nil
}

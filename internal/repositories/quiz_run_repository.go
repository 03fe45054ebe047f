package repositories

import (
	"gorm.io/gorm"

	"github.com/komresu/quizonomics/internal/models"
	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/pkg/logger"
)

type QuizRunRepository struct {
	db *gorm.DB
}

func NewQuizRunRepository(db *gorm.DB) *QuizRunRepository {
	return &QuizRunRepository{db: db}
}

// RecordRun persists a run summary. History is best-effort: a failed insert
// is logged, never surfaced to the session teardown.
func (r *QuizRunRepository) RecordRun(run quiz.RunSummary) {
	row := models.QuizRun{
		GroupID:       run.GroupID,
		GroupName:     run.GroupName,
		ExamType:      run.ExamType,
		Subject:       run.Subject,
		StartedBy:     run.StartedBy,
		QuestionCount: run.QuestionCount,
		Participants:  run.Participants,
		TopScore:      run.TopScore,
		EndReason:     run.EndReason,
	}
	if err := r.db.Create(&row).Error; err != nil {
		logger.Error("Failed to record quiz run", "group_id", run.GroupID, "error", err)
	}
}

// RunsForGroup returns the most recent runs for a group, newest first.
func (r *QuizRunRepository) RunsForGroup(groupID int64, limit int) ([]models.QuizRun, error) {
	var rows []models.QuizRun
	result := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

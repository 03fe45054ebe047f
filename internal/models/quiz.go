package models

import (
	"time"
)

// BankQuestion is a pre-authored question stored in the database. The bank
// extends the compiled-in fallback seeds and is filled by seeding or by the
// import script.
type BankQuestion struct {
	ID           uint      `gorm:"primaryKey"`
	Subject      string    `gorm:"type:varchar(100);not null;index"`
	QuestionText string    `gorm:"type:text;not null"`
	Options      string    `gorm:"type:text;not null"` // JSON array of option texts
	CorrectIndex int       `gorm:"not null"`
	Explanation  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (BankQuestion) TableName() string {
	return "bank_questions"
}

// QuizRun records one finished group quiz session.
type QuizRun struct {
	ID            uint      `gorm:"primaryKey"`
	GroupID       int64     `gorm:"not null;index"`
	GroupName     string    `gorm:"type:varchar(255)"`
	ExamType      string    `gorm:"type:varchar(50);not null"`
	Subject       string    `gorm:"type:varchar(100);not null"`
	StartedBy     int64     `gorm:"not null"`
	QuestionCount int       `gorm:"not null"`
	Participants  int       `gorm:"default:0"`
	TopScore      int       `gorm:"default:0"`
	EndReason     string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (QuizRun) TableName() string {
	return "quiz_runs"
}

package handlers

import (
	"github.com/komresu/quizonomics/internal/audit"
	"github.com/komresu/quizonomics/internal/config"
	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/internal/repositories"
)

// BotInterface is the slice of the Telegram bot the handlers need. Keeping it
// an interface makes the handlers testable without a live bot API.
type BotInterface interface {
	SendMessage(chatID int64, text string, keyboard interface{}) int
	EditMessage(chatID int64, messageID int, text string, keyboard interface{})
	AnswerCallbackQuery(queryID string, text string, showAlert bool)
	IsGroupAdmin(chatID, userID int64) bool
	Username() string
	GetExamTypeKeyboard() interface{}
	GetBoardSubjectKeyboard() interface{}
	GetUPSCSubjectKeyboard() interface{}
	GetMainMenuKeyboard() interface{}
	GetBackKeyboard() interface{}
}

type HandlerManager struct {
	Config     *config.Config
	Controller *quiz.Controller
	Audit      *audit.ChannelLog
	RunRepo    *repositories.QuizRunRepository // nil when running without a database
}

func NewHandlerManager(
	cfg *config.Config,
	controller *quiz.Controller,
	auditLog *audit.ChannelLog,
	runRepo *repositories.QuizRunRepository,
) *HandlerManager {
	return &HandlerManager{
		Config:     cfg,
		Controller: controller,
		Audit:      auditLog,
		RunRepo:    runRepo,
	}
}

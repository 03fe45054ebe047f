package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/pkg/logger"
)

// StartQuizCommand handles /quiz in a group: admin gate, then exam selection.
func (h *HandlerManager) StartQuizCommand(chatID, userID int64, groupName string, bot BotInterface) {
	if !bot.IsGroupAdmin(chatID, userID) {
		bot.SendMessage(chatID, "❌ Only group admins can start quizzes!", nil)
		h.Audit.UserActivity(userID, groupName, "Tried to start quiz without admin rights")
		return
	}
	h.Audit.UserActivity(userID, groupName, "Started quiz selection (Admin)")

	if h.Controller.IsActive(chatID) {
		bot.SendMessage(chatID, "⚠️ A quiz is already running in this group! Use /stop to stop it first.", nil)
		return
	}

	bot.SendMessage(chatID,
		"📝 *Select Examination Type:*\n\nChoose the type of quiz you want to start:",
		bot.GetExamTypeKeyboard())
}

// HandleExamSelection shows the subject keyboard for the chosen exam track.
func (h *HandlerManager) HandleExamSelection(chatID int64, messageID int, examType string, bot BotInterface) {
	switch examType {
	case quiz.ExamBoard:
		bot.EditMessage(chatID, messageID,
			"📚 *12th Board Commerce Quiz*\n\nSelect a subject:",
			bot.GetBoardSubjectKeyboard())
	case quiz.ExamUPSC:
		bot.EditMessage(chatID, messageID,
			"📚 *UPSC CSE Quiz*\n\nSelect a subject for UPSC Civil Services Examination preparation:",
			bot.GetUPSCSubjectKeyboard())
	}
}

// HandleExamBack returns to the exam selection keyboard.
func (h *HandlerManager) HandleExamBack(chatID int64, messageID int, bot BotInterface) {
	bot.EditMessage(chatID, messageID,
		"📝 *Select Examination Type:*\n\nChoose the type of quiz you want to start:",
		bot.GetExamTypeKeyboard())
}

// HandleGroupCancel aborts quiz setup.
func (h *HandlerManager) HandleGroupCancel(chatID int64, messageID int, bot BotInterface) {
	bot.EditMessage(chatID, messageID, "❌ Quiz setup cancelled.", nil)
}

// HandleSubjectSelection kicks off the session. Question generation blocks on
// the network, so the progress message goes out first and is edited with the
// outcome.
func (h *HandlerManager) HandleSubjectSelection(chatID int64, messageID int, userID int64, groupName, examType, subject string, bot BotInterface) {
	if !bot.IsGroupAdmin(chatID, userID) {
		bot.EditMessage(chatID, messageID, "❌ Only group admins can start quizzes!", nil)
		return
	}

	bot.EditMessage(chatID, messageID, fmt.Sprintf("🔄 Generating %s quiz for the group...", subject), nil)

	err := h.Controller.StartSession(chatID, groupName, examType, subject, userID)
	switch {
	case err == nil:
		bot.EditMessage(chatID, messageID, fmt.Sprintf(
			"✅ *%s Quiz Started!*\n\n"+
				"• Questions will be posted every %d seconds\n"+
				"• Each poll stays open for %d seconds\n"+
				"• Use /stop to end quiz early\n"+
				"• Leaderboard at the end!",
			subject, h.Config.QuizPostIntervalSec, h.Config.PollOpenPeriodSec), nil)
		h.Audit.AdminAction(userID, fmt.Sprintf("Started %s quiz", subject), groupName)
	case errors.Is(err, quiz.ErrAlreadyActive):
		bot.EditMessage(chatID, messageID, "⚠️ A quiz is already running in this group! Use /stop to stop it first.", nil)
	case errors.Is(err, quiz.ErrNoContent):
		bot.EditMessage(chatID, messageID, "❌ Sorry, I couldn't generate a quiz right now. Please try again later.", nil)
	default:
		logger.Error("Failed to start quiz session", "group_id", chatID, "subject", subject, "error", err)
		bot.EditMessage(chatID, messageID, "❌ Sorry, I couldn't generate a quiz right now. Please try again later.", nil)
	}
}

// StopQuizCommand handles /stop in a group.
func (h *HandlerManager) StopQuizCommand(chatID, userID int64, groupName string, bot BotInterface) {
	if !bot.IsGroupAdmin(chatID, userID) {
		bot.SendMessage(chatID, "❌ Only group admins can stop quizzes!", nil)
		h.Audit.UserActivity(userID, groupName, "Tried to stop quiz without admin rights")
		return
	}

	if err := h.Controller.StopSession(chatID); err != nil {
		bot.SendMessage(chatID, "❌ No active quiz found in this group!", nil)
		return
	}

	h.Audit.AdminAction(userID, "Stopped quiz", groupName)
	bot.SendMessage(chatID, "✅ Quiz stopped successfully! Leaderboard has been posted.", nil)
}

// HandlePollAnswer routes a poll answer event to the controller. Retractions
// arrive with an empty option list and are dropped.
func (h *HandlerManager) HandlePollAnswer(pollID string, userID int64, optionIDs []int) {
	if len(optionIDs) == 0 {
		return
	}
	h.Controller.RecordAnswer(pollID, userID, optionIDs[0])
}

// HistoryCommand shows the group's recent quiz runs.
func (h *HandlerManager) HistoryCommand(chatID int64, bot BotInterface) {
	if h.RunRepo == nil {
		bot.SendMessage(chatID, "📜 Quiz history is not available on this bot.", nil)
		return
	}

	runs, err := h.RunRepo.RunsForGroup(chatID, 5)
	if err != nil {
		logger.Error("Failed to load quiz history", "group_id", chatID, "error", err)
		bot.SendMessage(chatID, "❌ Couldn't load quiz history right now.", nil)
		return
	}
	if len(runs) == 0 {
		bot.SendMessage(chatID, "📜 No quizzes have been run in this group yet.", nil)
		return
	}

	var b strings.Builder
	b.WriteString("📜 *Recent Quizzes:*\n\n")
	for _, run := range runs {
		fmt.Fprintf(&b, "• %s (%s): %d questions, %d participants, top score %d\n",
			run.Subject, run.ExamType, run.QuestionCount, run.Participants, run.TopScore)
	}
	bot.SendMessage(chatID, b.String(), nil)
}

package audit

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/komresu/quizonomics/pkg/logger"
)

// ChannelLog posts lifecycle events to a Telegram log channel. Every method
// is fire-and-forget by contract: delivery failures are logged locally and
// never reach the caller. A zero channel ID disables delivery entirely.
type ChannelLog struct {
	api       *tgbotapi.BotAPI
	channelID int64
}

func NewChannelLog(api *tgbotapi.BotAPI, channelID int64) *ChannelLog {
	return &ChannelLog{api: api, channelID: channelID}
}

func (l *ChannelLog) send(eventType, text string) {
	if l.api == nil || l.channelID == 0 {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := tgbotapi.NewMessage(l.channelID, fmt.Sprintf("📊 *%s* - `%s`\n\n%s", eventType, timestamp, text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := l.api.Send(msg); err != nil {
		logger.Warn("Failed to deliver audit event", "type", eventType, "error", err)
	}
}

func (l *ChannelLog) BotStarted() {
	l.send("BOT STATUS", "🤖 *Bot Started Successfully!*\n\nBot is now active and ready to serve multiple groups.")
}

func (l *ChannelLog) QuizStarted(groupID int64, groupName, examType, subject string, startedBy int64, usedFallback bool) {
	source := "generated"
	if usedFallback {
		source = "fallback bank"
	}
	l.send("QUIZ STARTED", fmt.Sprintf(
		"🎯 *New Group Quiz Started*\n\n*Group:* %s\n*Group ID:* %d\n*Started by:* %d\n*Exam:* %s\n*Subject:* %s\n*Questions:* %s",
		groupName, groupID, startedBy, examType, subject, source))
}

func (l *ChannelLog) QuizStopped(groupID int64, groupName string, participants, topScore int, reason string) {
	l.send("QUIZ STOPPED", fmt.Sprintf(
		"🛑 *Quiz Ended*\n\n*Group:* %s\n*Group ID:* %d\n*Reason:* %s\n*Participants:* %d\n*Top Score:* %d",
		groupName, groupID, reason, participants, topScore))
}

func (l *ChannelLog) AdminAction(userID int64, action, groupName string) {
	l.send("ADMIN ACTION", fmt.Sprintf(
		"⚡ *Admin Action*\n\n*Admin:* %d\n*Action:* %s\n*Group:* %s",
		userID, action, groupName))
}

func (l *ChannelLog) UserActivity(userID int64, groupName, activity string) {
	l.send("USER ACTIVITY", fmt.Sprintf(
		"👤 *User Activity*\n\n*User:* %d\n*Group:* %s\n*Activity:* %s",
		userID, groupName, activity))
}

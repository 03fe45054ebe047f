package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/komresu/quizonomics/internal/audit"
	"github.com/komresu/quizonomics/internal/config"
	"github.com/komresu/quizonomics/internal/generator"
	"github.com/komresu/quizonomics/internal/handlers"
	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/internal/repositories"
	"github.com/komresu/quizonomics/pkg/logger"
)

const workerCount = 10

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	db       *gorm.DB
	handlers *handlers.HandlerManager
	audit    *audit.ChannelLog

	// Worker pool for parallel processing
	workerChans []chan tgbotapi.Update
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	auditLog := audit.NewChannelLog(api, cfg.LogChannelID)

	bot := &Bot{
		api:         api,
		config:      cfg,
		db:          db,
		audit:       auditLog,
		workerChans: make([]chan tgbotapi.Update, workerCount),
	}

	// Database-backed collaborators are optional; without a DB the bot runs
	// on the static fallback banks and keeps no history.
	var seedSource generator.SeedSource
	var runRepo *repositories.QuizRunRepository
	if db != nil {
		seedSource = repositories.NewBankQuestionRepository(db)
		runRepo = repositories.NewQuizRunRepository(db)
	}

	controller := quiz.NewController(quiz.ControllerConfig{
		Store:     quiz.NewStore(),
		Scores:    quiz.NewScoreBoard(),
		Scheduler: quiz.NewScheduler(),
		Source:    generator.NewClient(cfg.PerplexityAPIKey, cfg.GetGeneratorTimeout()),
		Bank:      generator.NewBank(seedSource),
		Messenger: bot,
		Audit:     auditLog,
		History:   runRepoOrNil(runRepo),

		QuestionCount: cfg.QuizQuestionCount,
		PostInterval:  cfg.GetPostInterval(),
		InitialDelay:  cfg.GetInitialDelay(),
		PollOpenSec:   cfg.PollOpenPeriodSec,
	})

	bot.handlers = handlers.NewHandlerManager(cfg, controller, auditLog, runRepo)

	// Start workers
	for i := 0; i < workerCount; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	// Start update listener
	go bot.startUpdateListener()

	auditLog.BotStarted()

	return bot, nil
}

// runRepoOrNil avoids storing a typed nil inside the RunRecorder interface,
// which would defeat the controller's nil check.
func runRepoOrNil(r *repositories.QuizRunRepository) quiz.RunRecorder {
	if r == nil {
		return nil
	}
	return r
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query", "poll_answer"}

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			// Hashed dispatch keyed by chat so each group's updates are
			// processed in order. Poll answers carry no chat, so they hash
			// by the answering user instead.
			var key int64
			if update.Message != nil {
				key = update.Message.Chat.ID
			} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
				key = update.CallbackQuery.Message.Chat.ID
			} else if update.PollAnswer != nil {
				key = update.PollAnswer.User.ID
			}

			if key != 0 {
				workerIdx := key % int64(len(b.workerChans))
				if workerIdx < 0 {
					workerIdx = -workerIdx
				}
				b.workerChans[workerIdx] <- update
			} else {
				go b.handleUpdate(update)
			}
		}

		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startWorker(ch chan tgbotapi.Update) {
	for update := range ch {
		b.handleUpdate(update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	} else if update.PollAnswer != nil {
		b.handlers.HandlePollAnswer(update.PollAnswer.PollID, update.PollAnswer.User.ID, update.PollAnswer.OptionIDs)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	logger.Debug("Received message",
		"chat_id", message.Chat.ID,
		"user_id", message.From.ID,
		"text", message.Text,
	)

	if message.IsCommand() {
		b.handleCommand(message)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	isPrivate := message.Chat.IsPrivate()
	groupName := message.Chat.Title
	if groupName == "" {
		groupName = "Private Chat"
	}

	switch message.Command() {
	case "start":
		b.handlers.HandleStartCommand(chatID, isPrivate, groupName, userID, b)

	case "help":
		b.handlers.HandleHelpCommand(chatID, isPrivate, b)

	case "status":
		b.handlers.HandleStatusCommand(chatID, b)

	case "subjects":
		b.handlers.HandleSubjectsCommand(chatID, b)

	case "quiz":
		if isPrivate {
			b.sendMessage(chatID, "⚠️ Quizzes only work in groups! Add me to a group and use /quiz there.", nil)
			return
		}
		b.handlers.StartQuizCommand(chatID, userID, groupName, b)

	case "stop":
		if isPrivate {
			b.sendMessage(chatID, "⚠️ Quizzes only work in groups! Use /stop inside the group.", nil)
			return
		}
		b.handlers.StopQuizCommand(chatID, userID, groupName, b)

	case "history":
		if isPrivate {
			b.sendMessage(chatID, "⚠️ Quiz history is per group. Use /history inside the group.", nil)
			return
		}
		b.handlers.HistoryCommand(chatID, b)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	b.AnswerCallbackQuery(query.ID, "", false)

	if query.Message == nil {
		return
	}

	data := query.Data
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID
	groupName := query.Message.Chat.Title

	logger.Debug("Callback query", "data", data, "chat_id", chatID, "user_id", userID)

	if strings.HasPrefix(data, CallbackMainPrefix) {
		b.handlers.HandleMainMenu(chatID, messageID, strings.TrimPrefix(data, CallbackMainPrefix), b)
		return
	}

	switch data {
	case CallbackExamBoard:
		b.handlers.HandleExamSelection(chatID, messageID, quiz.ExamBoard, b)
		return
	case CallbackExamUPSC:
		b.handlers.HandleExamSelection(chatID, messageID, quiz.ExamUPSC, b)
		return
	case CallbackExamBack:
		b.handlers.HandleExamBack(chatID, messageID, b)
		return
	case CallbackGroupCancel:
		b.handlers.HandleGroupCancel(chatID, messageID, b)
		return
	}

	if strings.HasPrefix(data, CallbackBoardSubjectPrefix) {
		subject := strings.TrimPrefix(data, CallbackBoardSubjectPrefix)
		b.handlers.HandleSubjectSelection(chatID, messageID, userID, groupName, quiz.ExamBoard, subject, b)
		return
	}
	if strings.HasPrefix(data, CallbackUPSCSubjectPrefix) {
		subject := strings.TrimPrefix(data, CallbackUPSCSubjectPrefix)
		b.handlers.HandleSubjectSelection(chatID, messageID, userID, groupName, quiz.ExamUPSC, subject, b)
		return
	}
}

func (b *Bot) sendMessage(chatID int64, text string, keyboard interface{}) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch kb := keyboard.(type) {
	case tgbotapi.ReplyKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.InlineKeyboardMarkup:
		msg.ReplyMarkup = kb
	case tgbotapi.ReplyKeyboardRemove:
		msg.ReplyMarkup = kb
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		sentMsg, err := b.api.Send(msg)
		if err != nil {
			logger.Error("Failed to send message", "error", err, "chat_id", chatID, "attempt", i+1)

			// If it's a network error, wait and retry
			if strings.Contains(err.Error(), "connection reset") ||
				strings.Contains(err.Error(), "timeout") ||
				strings.Contains(err.Error(), "network is unreachable") {
				time.Sleep(time.Duration(i+1) * time.Second)
				continue
			}
			return 0 // Non-network error, don't retry
		}
		return sentMsg.MessageID // Success
	}
	return 0 // All retries failed
}

func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) int {
	return b.sendMessage(chatID, text, keyboard)
}

func (b *Bot) EditMessage(chatID int64, messageID int, text string, keyboard interface{}) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if keyboard != nil {
		if kb, ok := keyboard.(tgbotapi.InlineKeyboardMarkup); ok {
			msg.ReplyMarkup = &kb
		}
	}

	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to edit message", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}

func (b *Bot) AnswerCallbackQuery(queryID string, text string, showAlert bool) {
	callback := tgbotapi.NewCallback(queryID, text)
	callback.ShowAlert = showAlert
	if _, err := b.api.Request(callback); err != nil {
		logger.Error("Failed to answer callback query", "error", err, "query_id", queryID)
	}
}

func (b *Bot) IsGroupAdmin(chatID, userID int64) bool {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		logger.Warn("Failed to check admin status", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return member.Status == "administrator" || member.Status == "creator"
}

func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// SendQuizPoll posts an anonymous-off quiz poll and returns its poll ID.
func (b *Bot) SendQuizPoll(groupID int64, question string, options []string, correctIndex, openSeconds int, explanation string) (string, error) {
	poll := tgbotapi.NewPoll(groupID, question, options...)
	poll.Type = "quiz"
	poll.IsAnonymous = false
	poll.CorrectOptionID = int64(correctIndex)
	poll.OpenPeriod = openSeconds
	if explanation != "" {
		// Telegram caps poll explanations at 200 characters.
		if len(explanation) > 197 {
			explanation = explanation[:197] + "..."
		}
		poll.Explanation = explanation
	}

	sent, err := b.api.Send(poll)
	if err != nil {
		return "", fmt.Errorf("failed to send poll: %w", err)
	}
	if sent.Poll == nil {
		return "", errors.New("poll message carries no poll payload")
	}
	return sent.Poll.ID, nil
}

func (b *Bot) SendGroupMessage(groupID int64, text string) error {
	if b.sendMessage(groupID, text, nil) == 0 {
		return fmt.Errorf("failed to deliver message to group %d", groupID)
	}
	return nil
}

func (b *Bot) MemberDisplayName(groupID, userID int64) (string, error) {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: groupID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", err
	}
	if member.User == nil {
		return "", errors.New("chat member carries no user payload")
	}

	name := member.User.FirstName
	if member.User.LastName != "" {
		name += " " + member.User.LastName
	}
	if member.User.UserName != "" {
		name += " (@" + member.User.UserName + ")"
	}
	return name, nil
}

func (b *Bot) GetExamTypeKeyboard() interface{} {
	return ExamTypeKeyboard()
}

func (b *Bot) GetBoardSubjectKeyboard() interface{} {
	return BoardSubjectKeyboard()
}

func (b *Bot) GetUPSCSubjectKeyboard() interface{} {
	return UPSCSubjectKeyboard()
}

func (b *Bot) GetMainMenuKeyboard() interface{} {
	return MainMenuKeyboard(b.Username())
}

func (b *Bot) GetBackKeyboard() interface{} {
	return BackKeyboard()
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	logger.Info("Bot stopped receiving updates")
}

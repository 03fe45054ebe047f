package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data prefixes. Subject callbacks carry the subject name verbatim
// after the prefix; Telegram limits callback data to 64 bytes, which every
// subject fits comfortably.
const (
	CallbackMainPrefix         = "main_"
	CallbackExamBoard          = "exam_12th"
	CallbackExamUPSC           = "exam_upsc"
	CallbackExamBack           = "exam_back"
	CallbackGroupCancel        = "group_cancel"
	CallbackBoardSubjectPrefix = "group_subject_"
	CallbackUPSCSubjectPrefix  = "upsc_subject_"
)

var boardSubjects = []string{
	"Accountancy", "Business Studies", "Economics",
	"Mathematics", "English", "Information Practices",
}

var upscSubjects = []string{
	"History", "Geography", "Polity", "Economy",
	"Science_Tech", "Environment", "Current_Affairs",
}

// ExamTypeKeyboard creates the exam track selection keyboard
func ExamTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 12th Board Commerce", CallbackExamBoard),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 UPSC CSE", CallbackExamUPSC),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", CallbackGroupCancel),
		),
	)
}

// BoardSubjectKeyboard creates the 12th Board subject selection keyboard
func BoardSubjectKeyboard() tgbotapi.InlineKeyboardMarkup {
	return subjectKeyboard(boardSubjects, CallbackBoardSubjectPrefix)
}

// UPSCSubjectKeyboard creates the UPSC subject selection keyboard
func UPSCSubjectKeyboard() tgbotapi.InlineKeyboardMarkup {
	return subjectKeyboard(upscSubjects, CallbackUPSCSubjectPrefix)
}

func subjectKeyboard(subjects []string, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton

	for _, s := range subjects {
		currentRow = append(currentRow, tgbotapi.NewInlineKeyboardButtonData(subjectLabel(s), prefix+s))
		if len(currentRow) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
			currentRow = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", CallbackExamBack),
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", CallbackGroupCancel),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func subjectLabel(subject string) string {
	switch subject {
	case "Science_Tech":
		return "Science & Tech"
	case "Current_Affairs":
		return "Current Affairs"
	default:
		return subject
	}
}

// MainMenuKeyboard creates the private chat main menu keyboard
func MainMenuKeyboard(botUsername string) tgbotapi.InlineKeyboardMarkup {
	addURL := fmt.Sprintf("https://t.me/%s?startgroup=true", botUsername)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("➕ Add me in Group", addURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 How to Add", CallbackMainPrefix+"add_group"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", CallbackMainPrefix+"help"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Status", CallbackMainPrefix+"status"),
		),
	)
}

// BackKeyboard creates a single back button returning to the main menu
func BackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", CallbackMainPrefix+"back"),
		),
	)
}

package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func callbackData(kb tgbotapi.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				data = append(data, *btn.CallbackData)
			}
		}
	}
	return data
}

func TestExamTypeKeyboard(t *testing.T) {
	data := callbackData(ExamTypeKeyboard())

	want := []string{CallbackExamBoard, CallbackExamUPSC, CallbackGroupCancel}
	if len(data) != len(want) {
		t.Fatalf("callback data = %v, want %v", data, want)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("button %d data = %q, want %q", i, data[i], want[i])
		}
	}
}

func TestSubjectKeyboards(t *testing.T) {
	boardData := callbackData(BoardSubjectKeyboard())
	// 6 subjects + back + cancel
	if len(boardData) != 8 {
		t.Fatalf("board keyboard has %d buttons, want 8", len(boardData))
	}
	for _, d := range boardData[:6] {
		if !strings.HasPrefix(d, CallbackBoardSubjectPrefix) {
			t.Errorf("board subject data = %q, want prefix %q", d, CallbackBoardSubjectPrefix)
		}
		if len(d) > 64 {
			t.Errorf("callback data %q exceeds Telegram's 64-byte limit", d)
		}
	}

	upscData := callbackData(UPSCSubjectKeyboard())
	// 7 subjects + back + cancel
	if len(upscData) != 9 {
		t.Fatalf("UPSC keyboard has %d buttons, want 9", len(upscData))
	}
	for _, d := range upscData[:7] {
		if !strings.HasPrefix(d, CallbackUPSCSubjectPrefix) {
			t.Errorf("UPSC subject data = %q, want prefix %q", d, CallbackUPSCSubjectPrefix)
		}
	}
}

func TestSubjectLabel(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Science_Tech", "Science & Tech"},
		{"Current_Affairs", "Current Affairs"},
		{"Economics", "Economics"},
	}

	for _, tt := range tests {
		if got := subjectLabel(tt.subject); got != tt.want {
			t.Errorf("subjectLabel(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestMainMenuKeyboard_AddGroupURL(t *testing.T) {
	kb := MainMenuKeyboard("quizonomics_bot")

	var url string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.URL != nil {
				url = *btn.URL
			}
		}
	}
	if url != "https://t.me/quizonomics_bot?startgroup=true" {
		t.Errorf("add-to-group URL = %q", url)
	}
}

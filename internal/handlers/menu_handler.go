package handlers

import (
	"fmt"
)

// HandleStartCommand greets the user. In private chat the inline main menu is
// shown; in groups a short feature summary.
func (h *HandlerManager) HandleStartCommand(chatID int64, isPrivate bool, groupName string, userID int64, bot BotInterface) {
	h.Audit.UserActivity(userID, groupName, "Used /start command")

	if isPrivate {
		bot.SendMessage(chatID,
			"👋 Welcome to the *Quizonomics Bot!*\n\n"+
				"🌟 *Features:*\n"+
				"• 12th Board Commerce & UPSC CSE Exams\n"+
				"• Admin-only quiz control\n"+
				"• Multi-group support\n"+
				"• Real-time logging\n\n"+
				"I'm designed to provide quizzes in groups only with admin privileges. "+
				"Add me to your group and make me admin to start quizzing!\n\n"+
				"Select an option below:",
			bot.GetMainMenuKeyboard())
		return
	}

	bot.SendMessage(chatID,
		"👋 Hello everyone! Welcome to the Quizonomics Bot.\n\n"+
			"*Available Commands:*\n"+
			"/quiz - Start a quiz session (Admins only)\n"+
			"/stop - Stop ongoing quiz (Admins only)\n"+
			"/subjects - See available subjects\n"+
			"/history - Recent quiz results\n"+
			"/help - Help information\n"+
			"/status - Check bot status\n\n"+
			"⚡ *Note:* Only group admins can start and stop quizzes.",
		nil)
}

// HandleHelpCommand sends chat-type aware help text.
func (h *HandlerManager) HandleHelpCommand(chatID int64, isPrivate bool, bot BotInterface) {
	if isPrivate {
		bot.SendMessage(chatID,
			"🤖 *Quiz Bot Help - Private Chat*\n\n"+
				"*Available Commands:*\n"+
				"/start - Show main menu with options\n"+
				"/help - Show this help message\n"+
				"/status - Check bot status\n\n"+
				"*How to use:*\n"+
				"1. Add me to your group\n"+
				"2. Make me admin in your group\n"+
				"3. Use /quiz in the group to start quizzes (Admin only)\n"+
				"4. Answer poll questions in the group",
			nil)
		return
	}

	bot.SendMessage(chatID,
		"📚 *Quizonomics Bot Help*\n\n"+
			"*Available Commands (Group):*\n"+
			"/quiz - Start a new quiz (Admin only)\n"+
			"/stop - Stop ongoing quiz (Admin only)\n"+
			"/subjects - Show available subjects\n"+
			"/history - Recent quiz results\n"+
			"/help - Show this help message\n"+
			"/status - Check bot status\n\n"+
			"*How to use:*\n"+
			"1. Use /quiz to start a new quiz (Admin only)\n"+
			"2. Select examination type and subject\n"+
			"3. Answer multiple-choice questions via polls\n"+
			"4. Leaderboard at the end\n"+
			"5. Use /stop to end quiz early (Admin only)",
		nil)
}

// HandleStatusCommand reports bot health and the active quiz count.
func (h *HandlerManager) HandleStatusCommand(chatID int64, bot BotInterface) {
	bot.SendMessage(chatID, fmt.Sprintf(
		"📊 *Bot Status Report*\n\n"+
			"• Active quizzes: %d\n"+
			"• Multi-group support: ✅ Enabled\n"+
			"• Admin-only mode: ✅ Enabled\n"+
			"• Available Exams: ✅ 12th Board & UPSC CSE\n\n"+
			"🤖 Bot is running smoothly!",
		h.Controller.ActiveQuizCount()), nil)
}

// HandleSubjectsCommand lists available subjects per exam track.
func (h *HandlerManager) HandleSubjectsCommand(chatID int64, bot BotInterface) {
	bot.SendMessage(chatID,
		"📖 *Available Subjects:*\n\n"+
			"*12th Board Commerce:*\n"+
			"• Accountancy\n• Business Studies\n• Economics\n"+
			"• Mathematics\n• English\n• Information Practices\n\n"+
			"*UPSC CSE:*\n"+
			"• History\n• Geography\n• Polity\n• Economy\n"+
			"• Science & Tech\n• Environment\n• Current Affairs",
		nil)
}

// HandleMainMenu responds to main menu button presses in private chat.
func (h *HandlerManager) HandleMainMenu(chatID int64, messageID int, action string, bot BotInterface) {
	switch action {
	case "add_group":
		bot.EditMessage(chatID, messageID, fmt.Sprintf(
			"📋 *How to Add Bot to Group:*\n\n"+
				"1. Go to your group's settings\n"+
				"2. Select 'Add members'\n"+
				"3. Search for @%s\n"+
				"4. Add me to the group\n"+
				"5. *Important:* Make me an *admin* with post permissions\n\n"+
				"⚡ I'll then be available to provide quizzes for all group members with admin-only control!",
			bot.Username()), bot.GetBackKeyboard())
	case "help":
		bot.EditMessage(chatID, messageID,
			"🤖 *Quizonomics Bot Help*\n\n"+
				"*Available Examinations:*\n"+
				"• 12th Board Commerce\n"+
				"• UPSC Civil Services (CSE)\n\n"+
				"*How to use:*\n"+
				"• Add me to your group using the 'Add me in Group' button\n"+
				"• Make me admin in your group\n"+
				"• Use /quiz in the group (Admin only)\n"+
				"• Select examination type and subject\n"+
				"• Answer questions and track scores\n\n"+
				"*Commands:*\n"+
				"/quiz - Start a new quiz in a group (Admin only)\n"+
				"/stop - Stop ongoing quiz (Admin only)\n"+
				"/help - Show this help message\n"+
				"/status - Check bot status",
			bot.GetBackKeyboard())
	case "status":
		bot.EditMessage(chatID, messageID, fmt.Sprintf(
			"📊 *Bot Status Report*\n\n"+
				"• Active quizzes: %d\n"+
				"• Multi-group support: ✅ Enabled\n"+
				"• Admin-only mode: ✅ Enabled\n"+
				"• Available Exams: ✅ 12th Board & UPSC CSE\n\n"+
				"🤖 Bot is running smoothly with all features!",
			h.Controller.ActiveQuizCount()), bot.GetBackKeyboard())
	case "back":
		bot.EditMessage(chatID, messageID,
			"👋 Welcome to the *Quizonomics Bot!*\n\nSelect an option below:",
			bot.GetMainMenuKeyboard())
	}
}

package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/menus"
	"github.com/periodpain/pain-helper/internal/bot/state"
	"github.com/periodpain/pain-helper/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, installationID int64) error {
	logger.Infof("Handling command %s from installation %d", message.Command(), installationID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(installationID, state.None)
		h.stateManager.ClearTempData(installationID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/help - Show this message

What I can do:
• 📝 Log Pain — record pain score, type, productivity impact and notes
• 🌿 Log Lifestyle — record sleep, exercise, stress and hydration
• 📊 Dashboard — your recent entries with summary statistics
• 🔮 Predictions — AI pain forecast for 1, 3, 7 or 14 days
• 💡 Recommendations — personalized relief suggestions you can rate

Your data is stored under an anonymous identity. No account needed.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see what I can do.")
	_, err := h.api.Send(msg)
	return err
}

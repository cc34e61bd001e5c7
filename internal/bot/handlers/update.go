package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/state"
	"github.com/periodpain/pain-helper/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other
// handlers. It resolves the anonymous identity exactly once per update
// and hands it to every downstream handler by value; nothing else ever
// touches the identity store.
type UpdateHandler struct {
	api             *tgbotapi.BotAPI
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var installationID int64
	if update.Message != nil {
		installationID = update.Message.From.ID
	} else {
		installationID = update.CallbackQuery.From.ID
	}

	userID, err := h.deps.IdentitySvc.GetOrCreateIdentity(ctx, installationID)
	if err != nil {
		return fmt.Errorf("failed to resolve identity: %w", err)
	}

	if update.CallbackQuery != nil {
		// Answer first so the button stops spinning even if handling fails.
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := h.api.Request(callback); err != nil {
			logger.Warn("Failed to answer callback query", "error", err)
		}
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, installationID, userID)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, installationID)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, installationID, userID)
	}

	return nil
}

package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/handlers"
	"github.com/periodpain/pain-helper/internal/bot/state"
	apperrors "github.com/periodpain/pain-helper/internal/errors"
	"github.com/periodpain/pain-helper/internal/logger"
)

// Bot runs the telegram update loop and owns the presentation layer.
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
	errHandler    *apperrors.Handler
}

// NewBot creates the bot with all handler dependencies wired in.
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager, errHandler *apperrors.Handler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps, stateManager),
		errHandler:    errHandler,
	}, nil
}

// Start blocks consuming updates until the context is cancelled. Every
// failure is converted to a log entry at this boundary; nothing
// propagates out of the loop.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			return ctx.Err()
		case update := <-updates:
			if err := b.updateHandler.Handle(ctx, update); err != nil {
				b.errHandler.Handle(ctx, err)
			}
		}
	}
}

package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/keyboards"
	"github.com/periodpain/pain-helper/internal/bot/menus"
	"github.com/periodpain/pain-helper/internal/bot/state"
	"github.com/periodpain/pain-helper/internal/logger"
)

// CallbackHandler handles inline button presses
type CallbackHandler struct {
	submitter
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{submitter{api: api, deps: deps, stateManager: stateManager}}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, installationID int64, userID string) error {
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == "main_menu":
		h.stateManager.SetUserState(installationID, state.None)
		return menus.SendMainMenu(h.api, chatID)

	case data == "log_pain":
		h.stateManager.ClearTempData(installationID)
		h.stateManager.SetUserState(installationID, state.WaitingForPainScore)
		return h.prompt(chatID, "How bad is the pain right now? (1-10)")

	case data == "log_lifestyle":
		h.stateManager.ClearTempData(installationID)
		h.stateManager.SetUserState(installationID, state.WaitingForSleepHours)
		return h.prompt(chatID, "How many hours did you sleep? (0-24)")

	case data == "dashboard":
		return h.handleDashboard(ctx, chatID, installationID, userID)

	case data == "predictions":
		return menus.SendPredictionDaysPrompt(h.api, chatID)

	case data == "recommendations":
		return h.handleRecommendations(ctx, chatID, installationID, userID)

	case data == "skip_notes":
		return h.submitPainEntry(ctx, chatID, installationID, userID)

	case strings.HasPrefix(data, "pain_type:"):
		return h.handlePainType(chatID, installationID, strings.TrimPrefix(data, "pain_type:"))

	case strings.HasPrefix(data, "predict_days:"):
		return h.handlePredictionDays(ctx, chatID, installationID, userID, strings.TrimPrefix(data, "predict_days:"))

	case strings.HasPrefix(data, "feedback:"):
		return h.handleFeedback(ctx, chatID, installationID, userID, data)
	}

	logger.Warn("Unknown callback data", "data", data)
	return nil
}

func (h *CallbackHandler) handlePainType(chatID, installationID int64, painType string) error {
	if h.stateManager.GetUserState(installationID) != state.WaitingForPainType {
		return h.prompt(chatID, "That choice expired, please start a new entry from the menu.")
	}

	h.stateManager.SetTempData(installationID, "pain_type", painType)
	h.stateManager.SetUserState(installationID, state.WaitingForProductivity)
	return h.prompt(chatID, "How much does it impact your productivity? (1-10)")
}

func (h *CallbackHandler) handleDashboard(ctx context.Context, chatID, installationID int64, userID string) error {
	view, err := h.deps.HistorySvc.RefreshHistory(ctx, installationID, userID)
	if err != nil {
		return h.sendError(chatID, "Failed to fetch pain history: "+remoteDetail(err))
	}
	return menus.SendDashboard(h.api, chatID, view)
}

func (h *CallbackHandler) handlePredictionDays(ctx context.Context, chatID, installationID int64, userID, raw string) error {
	days, err := strconv.Atoi(raw)
	if err != nil {
		return h.sendError(chatID, "Invalid prediction horizon")
	}

	envelope, err := h.deps.PredictionSvc.GetPredictions(ctx, installationID, userID, days)
	if err != nil {
		return h.sendError(chatID, "Failed to fetch predictions: "+remoteDetail(err))
	}
	return menus.SendPredictions(h.api, chatID, envelope)
}

func (h *CallbackHandler) handleRecommendations(ctx context.Context, chatID, installationID int64, userID string) error {
	envelope, err := h.deps.RecommendationSvc.GetRecommendations(ctx, installationID, userID)
	if err != nil {
		return h.sendError(chatID, "Failed to fetch recommendations: "+remoteDetail(err))
	}
	return menus.SendRecommendations(h.api, chatID, envelope)
}

// handleFeedback rates one recommendation item. Both outcomes produce a
// transient notice; the recommendation list itself is left untouched.
func (h *CallbackHandler) handleFeedback(ctx context.Context, chatID, installationID int64, userID, data string) error {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return nil
	}
	helpful := parts[1] == "yes"
	group, errG := strconv.Atoi(parts[2])
	index, errI := strconv.Atoi(parts[3])
	if errG != nil || errI != nil {
		return nil
	}

	item, ok := h.deps.RecommendationSvc.Item(installationID, group, index)
	if !ok {
		h.sendTransient(chatID, "That recommendation is no longer on screen, fetch a fresh list first.")
		return nil
	}

	if err := h.deps.RecommendationSvc.SubmitFeedback(ctx, userID, item.Name, helpful); err != nil {
		h.sendTransient(chatID, "✗ Could not record your feedback, please try again later.")
		return nil
	}

	h.sendTransient(chatID, "✓ Thanks for your feedback!")
	return nil
}

func (h *CallbackHandler) prompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := h.api.Send(msg)
	return err
}

// sendError posts a failure inline, next to the action that caused it.
// Error messages stay visible until the user navigates on.
func (h *CallbackHandler) sendError(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, "✗ "+text)
	msg.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := h.api.Send(msg)
	return err
}

package handlers

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/keyboards"
	"github.com/periodpain/pain-helper/internal/bot/state"
)

// TextHandler handles text messages: every free-text step of the pain
// and lifestyle forms. Range limits are enforced here, at the input
// affordance; the submission workflow itself trusts the backend to
// reject anything out of range.
type TextHandler struct {
	submitter
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{submitter{api: api, deps: deps, stateManager: stateManager}}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, installationID int64, userID string) error {
	userState := h.stateManager.GetUserState(installationID)

	switch userState {
	case state.WaitingForPainScore:
		return h.handlePainScore(message, installationID)
	case state.WaitingForProductivity:
		return h.handleProductivity(message, installationID)
	case state.WaitingForNotes:
		return h.handleNotes(ctx, message, installationID, userID)
	case state.WaitingForSleepHours:
		return h.handleSleepHours(message, installationID)
	case state.WaitingForExerciseMinutes:
		return h.handleExerciseMinutes(message, installationID)
	case state.WaitingForStressLevel:
		return h.handleStressLevel(message, installationID)
	case state.WaitingForHydration:
		return h.handleHydration(ctx, message, installationID, userID)
	default:
		return h.handleDefaultText(message.Chat.ID)
	}
}

func (h *TextHandler) handlePainScore(message *tgbotapi.Message, installationID int64) error {
	score, err := strconv.Atoi(message.Text)
	if err != nil || score < 1 || score > 10 {
		return h.reply(message.Chat.ID, "Please enter a whole number between 1 and 10.")
	}

	h.stateManager.SetTempData(installationID, "pain_score", score)
	h.stateManager.SetUserState(installationID, state.WaitingForPainType)

	msg := tgbotapi.NewMessage(message.Chat.ID, "What kind of pain is it?")
	msg.ReplyMarkup = keyboards.PainTypeMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleProductivity(message *tgbotapi.Message, installationID int64) error {
	impact, err := strconv.Atoi(message.Text)
	if err != nil || impact < 1 || impact > 10 {
		return h.reply(message.Chat.ID, "Please enter a whole number between 1 and 10.")
	}

	h.stateManager.SetTempData(installationID, "productivity", impact)
	h.stateManager.SetUserState(installationID, state.WaitingForNotes)

	msg := tgbotapi.NewMessage(message.Chat.ID, "Any notes for this entry? Type them now, or skip.")
	msg.ReplyMarkup = keyboards.SkipNotesMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleNotes(ctx context.Context, message *tgbotapi.Message, installationID int64, userID string) error {
	h.stateManager.SetTempData(installationID, "notes", message.Text)
	return h.submitPainEntry(ctx, message.Chat.ID, installationID, userID)
}

func (h *TextHandler) handleSleepHours(message *tgbotapi.Message, installationID int64) error {
	hours, err := strconv.ParseFloat(message.Text, 64)
	if err != nil || hours < 0 || hours > 24 {
		return h.reply(message.Chat.ID, "Please enter sleep hours between 0 and 24 (e.g. 7.5).")
	}

	h.stateManager.SetTempData(installationID, "sleep_hours", hours)
	h.stateManager.SetUserState(installationID, state.WaitingForExerciseMinutes)
	return h.reply(message.Chat.ID, "How many minutes of exercise? (0-600)")
}

func (h *TextHandler) handleExerciseMinutes(message *tgbotapi.Message, installationID int64) error {
	minutes, err := strconv.Atoi(message.Text)
	if err != nil || minutes < 0 || minutes > 600 {
		return h.reply(message.Chat.ID, "Please enter exercise minutes between 0 and 600.")
	}

	h.stateManager.SetTempData(installationID, "exercise_minutes", minutes)
	h.stateManager.SetUserState(installationID, state.WaitingForStressLevel)
	return h.reply(message.Chat.ID, "How stressed are you today? (1-10)")
}

func (h *TextHandler) handleStressLevel(message *tgbotapi.Message, installationID int64) error {
	stress, err := strconv.Atoi(message.Text)
	if err != nil || stress < 1 || stress > 10 {
		return h.reply(message.Chat.ID, "Please enter a whole number between 1 and 10.")
	}

	h.stateManager.SetTempData(installationID, "stress_level", stress)
	h.stateManager.SetUserState(installationID, state.WaitingForHydration)
	return h.reply(message.Chat.ID, "How much water did you drink, in liters? (0-10)")
}

func (h *TextHandler) handleHydration(ctx context.Context, message *tgbotapi.Message, installationID int64, userID string) error {
	liters, err := strconv.ParseFloat(message.Text, 64)
	if err != nil || liters < 0 || liters > 10 {
		return h.reply(message.Chat.ID, "Please enter liters between 0 and 10 (e.g. 2.5).")
	}

	h.stateManager.SetTempData(installationID, "hydration_liters", liters)
	return h.submitLifestyleEntry(ctx, message.Chat.ID, installationID, userID)
}

func (h *TextHandler) handleDefaultText(chatID int64) error {
	return h.reply(chatID, "Please use the menu to choose an action. Send /start to see it.")
}

func (h *TextHandler) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

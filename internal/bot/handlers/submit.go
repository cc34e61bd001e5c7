package handlers

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/apiclient"
	"github.com/periodpain/pain-helper/internal/bot/menus"
	"github.com/periodpain/pain-helper/internal/bot/state"
	"github.com/periodpain/pain-helper/internal/domain"
	"github.com/periodpain/pain-helper/internal/logger"
	"github.com/periodpain/pain-helper/internal/services"
)

// transientTTL matches the workflow's success notice expiry: the chat
// message mirrors the view-state notice and disappears with it.
const transientTTL = 3 * time.Second

// submitter finalizes form drafts. Both the text handler (notes typed)
// and the callback handler (notes skipped) end a flow here.
type submitter struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// submitPainEntry assembles the pain draft and runs it through the
// submission workflow. The draft is cleared only on success so a failed
// attempt keeps the user's input.
func (s *submitter) submitPainEntry(ctx context.Context, chatID, installationID int64, userID string) error {
	score, ok := tempInt(s.stateManager, installationID, "pain_score")
	if !ok {
		return s.restartFlow(chatID, installationID, "Something went wrong with your draft, please start over.")
	}
	impact, ok := tempInt(s.stateManager, installationID, "productivity")
	if !ok {
		return s.restartFlow(chatID, installationID, "Something went wrong with your draft, please start over.")
	}

	painType := domain.PainTypeCramps
	if v, ok := tempString(s.stateManager, installationID, "pain_type"); ok {
		painType = domain.PainType(v)
	}
	notes, _ := tempString(s.stateManager, installationID, "notes")

	entry := domain.PainEntryInput{
		PainScore:          score,
		PainType:           painType,
		ProductivityImpact: impact,
		Notes:              notes,
	}

	s.stateManager.SetUserState(installationID, state.None)
	_, err := s.deps.TrackerSvc.SubmitPainEntry(ctx, installationID, userID, entry)
	return s.settle(chatID, installationID, services.FormPain, err)
}

// submitLifestyleEntry assembles and submits the lifestyle draft.
func (s *submitter) submitLifestyleEntry(ctx context.Context, chatID, installationID int64, userID string) error {
	sleep, okSleep := tempFloat(s.stateManager, installationID, "sleep_hours")
	exercise, okExercise := tempInt(s.stateManager, installationID, "exercise_minutes")
	stress, okStress := tempInt(s.stateManager, installationID, "stress_level")
	hydration, okHydration := tempFloat(s.stateManager, installationID, "hydration_liters")
	if !okSleep || !okExercise || !okStress || !okHydration {
		return s.restartFlow(chatID, installationID, "Something went wrong with your draft, please start over.")
	}

	entry := domain.LifestyleEntryInput{
		SleepHours:      sleep,
		ExerciseMinutes: exercise,
		StressLevel:     stress,
		HydrationLiters: hydration,
	}

	s.stateManager.SetUserState(installationID, state.None)
	_, err := s.deps.TrackerSvc.SubmitLifestyleEntry(ctx, installationID, userID, entry)
	return s.settle(chatID, installationID, services.FormLifestyle, err)
}

// settle surfaces the workflow's notice in chat: success notices are
// transient, error notices stay until the user moves on.
func (s *submitter) settle(chatID, installationID int64, kind services.FormKind, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrSubmissionInFlight) {
			msg := tgbotapi.NewMessage(chatID, "Still saving your previous entry, one moment...")
			_, sendErr := s.api.Send(msg)
			return sendErr
		}
		notice := s.deps.TrackerSvc.Notice(installationID, kind)
		text := "✗ Error: something went wrong, please try again"
		if notice != nil {
			text = notice.Text
		}
		msg := tgbotapi.NewMessage(chatID, text)
		if _, sendErr := s.api.Send(msg); sendErr != nil {
			return sendErr
		}
		return menus.SendMainMenu(s.api, chatID)
	}

	s.stateManager.ClearTempData(installationID)
	if notice := s.deps.TrackerSvc.Notice(installationID, kind); notice != nil {
		s.sendTransient(chatID, notice.Text)
	}
	return menus.SendMainMenu(s.api, chatID)
}

// sendTransient sends a message and removes it when the notice expires.
func (s *submitter) sendTransient(chatID int64, text string) {
	sent, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		logger.Warn("Failed to send transient notice", "error", err)
		return
	}
	time.AfterFunc(transientTTL, func() {
		if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID)); err != nil {
			logger.Debug("Failed to delete transient notice", "error", err)
		}
	})
}

func (s *submitter) restartFlow(chatID, installationID int64, text string) error {
	s.stateManager.SetUserState(installationID, state.None)
	s.stateManager.ClearTempData(installationID)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(s.api, chatID)
}

// remoteDetail converts a fetch failure into the string shown inline:
// the server-reported detail when a response arrived, otherwise a
// generic transport message.
func remoteDetail(err error) string {
	if remote, ok := apiclient.AsRemoteError(err); ok {
		return remote.Message
	}
	return "could not reach the server"
}

// Draft values survive a JSON round trip through Redis, so numbers may
// come back as float64.
func tempInt(m state.StateManager, userID int64, key string) (int, bool) {
	v, ok := m.GetTempData(userID, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func tempFloat(m state.StateManager, userID int64, key string) (float64, bool) {
	v, ok := m.GetTempData(userID, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func tempString(m state.StateManager, userID int64, key string) (string, bool) {
	v, ok := m.GetTempData(userID, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

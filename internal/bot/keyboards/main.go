package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Log Pain", "log_pain"),
			tgbotapi.NewInlineKeyboardButtonData("🌿 Log Lifestyle", "log_lifestyle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "dashboard"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔮 Predictions", "predictions"),
			tgbotapi.NewInlineKeyboardButtonData("💡 Recommendations", "recommendations"),
		),
	)
}

// PainTypeMenu offers the pain type choices during pain entry
func PainTypeMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cramps", "pain_type:cramps"),
			tgbotapi.NewInlineKeyboardButtonData("Headache", "pain_type:headache"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back Pain", "pain_type:backpain"),
			tgbotapi.NewInlineKeyboardButtonData("Joint Pain", "pain_type:joint_pain"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Other", "pain_type:other"),
		),
	)
}

// SkipNotesMenu lets the user finish a pain entry without notes
func SkipNotesMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip notes", "skip_notes"),
		),
	)
}

// PredictionDaysMenu offers the supported prediction horizons
func PredictionDaysMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("1 Day", "predict_days:1"),
			tgbotapi.NewInlineKeyboardButtonData("3 Days", "predict_days:3"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("7 Days", "predict_days:7"),
			tgbotapi.NewInlineKeyboardButtonData("14 Days", "predict_days:14"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main Menu", "main_menu"),
		),
	)
}

// FeedbackMenu attaches helpful/not-helpful buttons to one
// recommendation item, addressed by group and item position
func FeedbackMenu(group, index int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Helpful", fmt.Sprintf("feedback:yes:%d:%d", group, index)),
			tgbotapi.NewInlineKeyboardButtonData("👎 Not helpful", fmt.Sprintf("feedback:no:%d:%d", group, index)),
		),
	)
}

// BackToMainMenu is the lone navigation row used inside flows
func BackToMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main Menu", "main_menu"),
		),
	)
}

// RefreshDashboardMenu adds a refresh action to the dashboard view
func RefreshDashboardMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", "dashboard"),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main Menu", "main_menu"),
		),
	)
}

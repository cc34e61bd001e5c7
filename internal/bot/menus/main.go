package menus

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/periodpain/pain-helper/internal/bot/keyboards"
	"github.com/periodpain/pain-helper/internal/domain"
	"github.com/periodpain/pain-helper/internal/services"
	"github.com/periodpain/pain-helper/internal/utils"
)

// notAvailable marks a metric the model did not produce. A missing
// prediction is informationally distinct from a zero, so it is never
// rendered as a number.
const notAvailable = "n/a"

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🌸 *Period Pain Helper*

Track your pain and lifestyle, see your history, and get AI-powered pain predictions and relief recommendations.

Everything is stored under an anonymous identity — no account, no personal data.

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendDashboard renders the statistics and recent entries for one user
func SendDashboard(api *tgbotapi.BotAPI, chatID int64, view *services.HistoryView) error {
	msg := tgbotapi.NewMessage(chatID, BuildDashboardText(view))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.RefreshDashboardMenu()
	_, err := api.Send(msg)
	return err
}

// BuildDashboardText formats a history snapshot. An empty history is a
// distinct display state; the summary's sentinel minimum is never shown
// as a real measurement.
func BuildDashboardText(view *services.HistoryView) string {
	if view == nil || len(view.Entries) == 0 {
		return "📊 *Your Dashboard*\n\nNo pain entries yet. Start by logging your first one!"
	}

	var b strings.Builder
	b.WriteString("📊 *Your Dashboard*\n\n")
	fmt.Fprintf(&b, "Total entries: %d\n", view.Summary.TotalEntries)
	fmt.Fprintf(&b, "Average pain: %s/10\n", strconv.FormatFloat(view.Summary.AvgPainScore, 'f', 1, 64))
	fmt.Fprintf(&b, "Highest pain: %d/10\n", view.Summary.MaxPainScore)
	fmt.Fprintf(&b, "Lowest pain: %d/10\n", view.Summary.MinPainScore)

	b.WriteString("\n*Recent entries:*\n")
	for _, e := range view.Entries {
		fmt.Fprintf(&b, "• %s — %d/10 %s, impact %d/10", utils.FormatDate(e.Date), e.PainScore, e.PainType, e.ProductivityImpact)
		if e.Notes != "" {
			fmt.Fprintf(&b, " — %s", e.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SendPredictions renders a prediction envelope
func SendPredictions(api *tgbotapi.BotAPI, chatID int64, envelope *domain.PredictionEnvelope) error {
	msg := tgbotapi.NewMessage(chatID, BuildPredictionsText(envelope))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.PredictionDaysMenu()
	_, err := api.Send(msg)
	return err
}

// BuildPredictionsText formats a prediction envelope, one card per day.
// Envelope metadata is rendered verbatim; absent metrics show the
// not-available marker instead of a numeric default.
func BuildPredictionsText(envelope *domain.PredictionEnvelope) string {
	var b strings.Builder
	b.WriteString("🔮 *Pain Predictions*\n\n")
	fmt.Fprintf(&b, "Generated at: %s\n", envelope.GeneratedAt)
	fmt.Fprintf(&b, "Model version: %s\n", envelope.ModelVersion)

	if len(envelope.Predictions) == 0 {
		b.WriteString("\nNo predictions available. Track some data first!")
		return b.String()
	}

	for i, day := range envelope.Predictions {
		fmt.Fprintf(&b, "\n*Day %d* — %s\n", i+1, utils.FormatDate(day.Date))
		fmt.Fprintf(&b, "  Pain: %s", formatMetric(day.PredictedPainScore, 1))
		fmt.Fprintf(&b, " | Stress: %s", formatMetric(day.PredictedStress, 1))
		fmt.Fprintf(&b, " | Confidence: %s\n", formatMetric(day.Confidence, 2))
	}
	return b.String()
}

// SendPredictionDaysPrompt asks the user to pick a horizon
func SendPredictionDaysPrompt(api *tgbotapi.BotAPI, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "How many days ahead should I predict?")
	msg.ReplyMarkup = keyboards.PredictionDaysMenu()
	_, err := api.Send(msg)
	return err
}

// SendRecommendations renders the envelope header plus one message per
// item, each with its own feedback buttons
func SendRecommendations(api *tgbotapi.BotAPI, chatID int64, envelope *domain.RecommendationEnvelope) error {
	header := tgbotapi.NewMessage(chatID, fmt.Sprintf("💡 *Your Personalized Plan*\n\nGenerated at: %s", envelope.GeneratedAt))
	header.ParseMode = "Markdown"
	if _, err := api.Send(header); err != nil {
		return err
	}

	for g, group := range envelope.Recommendations {
		title := tgbotapi.NewMessage(chatID, fmt.Sprintf("*%s*", utils.FormatCategoryName(group.Category)))
		title.ParseMode = "Markdown"
		if _, err := api.Send(title); err != nil {
			return err
		}

		for i, item := range group.Items {
			msg := tgbotapi.NewMessage(chatID, BuildRecommendationItemText(item))
			msg.ParseMode = "Markdown"
			msg.ReplyMarkup = keyboards.FeedbackMenu(g, i)
			if _, err := api.Send(msg); err != nil {
				return err
			}
		}
	}

	nav := tgbotapi.NewMessage(chatID, "Rate the suggestions above, or head back:")
	nav.ReplyMarkup = keyboards.BackToMainMenu()
	_, err := api.Send(nav)
	return err
}

// BuildRecommendationItemText formats one recommendation item
func BuildRecommendationItemText(item domain.RecommendationItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n%s\n", utils.FormatCategoryName(item.Name), item.Description)
	fmt.Fprintf(&b, "Type: %s | Evidence: %s\n", item.Type, item.EvidenceLevel)
	fmt.Fprintf(&b, "Effectiveness: %.2f | Confidence: %.2f\n", item.Effectiveness, item.Confidence)
	if item.Explanation != "" {
		fmt.Fprintf(&b, "_%s_", item.Explanation)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMetric(value *float64, precision int) string {
	if value == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*value, 'f', precision, 64)
}

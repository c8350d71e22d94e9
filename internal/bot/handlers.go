package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hotreminder/backend/internal/apperrors"
	"github.com/hotreminder/backend/internal/bot/state"
	"github.com/hotreminder/backend/internal/domain"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, externalID string, chatID int64) error {
	switch msg.Command() {
	case "start":
		return b.sendWithKeyboard(chatID,
			"Welcome to HOT Reminder! Choose an action:", mainMenuKeyboard())
	case "today":
		return b.sendToday(ctx, externalID, chatID)
	case "meds":
		return b.sendMedicines(ctx, externalID, chatID)
	case "stats":
		return b.sendStats(ctx, externalID, chatID)
	default:
		return b.send(chatID, "Unknown command. Use /start to see the menu.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery, externalID string, chatID, userID int64) error {
	data := query.Data

	switch {
	case data == "today":
		return b.sendToday(ctx, externalID, chatID)
	case data == "meds":
		return b.sendMedicines(ctx, externalID, chatID)
	case data == "stats":
		return b.sendStats(ctx, externalID, chatID)
	case data == "log":
		return b.sendWithKeyboard(chatID, "Did you take the medicine?", logStatusKeyboard())
	case data == "log_taken", data == "log_rejected":
		status := domain.StatusTaken
		if data == "log_rejected" {
			status = domain.StatusRejected
		}
		b.state.SetUserState(userID, state.WaitingForMedicineName)
		b.state.SetTempData(userID, state.KeyPendingStatus, string(status))
		return b.send(chatID, "Which medicine? Send its name.")
	case strings.HasPrefix(data, "dose:"):
		return b.logDoseFromReminder(ctx, externalID, chatID, data)
	default:
		return b.send(chatID, "Unknown action.")
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, externalID string, chatID, userID int64) error {
	if b.state.GetUserState(userID) != state.WaitingForMedicineName {
		return b.sendWithKeyboard(chatID, "Choose an action:", mainMenuKeyboard())
	}

	status := domain.StatusTaken
	if v, ok := b.state.GetTempData(userID, state.KeyPendingStatus); ok {
		if s, ok := v.(string); ok {
			status = domain.Status(s)
		}
	}
	b.state.ClearUserState(userID)
	b.state.ClearTempData(userID)

	name := strings.TrimSpace(msg.Text)
	if _, err := b.history.Add(ctx, externalID, domain.HistoryInput{
		MedicineName: name,
		Status:       status,
	}); err != nil {
		return b.send(chatID, "Could not record the dose: "+userMessage(err))
	}
	return b.send(chatID, fmt.Sprintf("Recorded %q as %s.", name, status))
}

// logDoseFromReminder handles "dose:<reminderID>:<status>" callbacks produced
// by the today view.
func (b *Bot) logDoseFromReminder(ctx context.Context, externalID string, chatID int64, data string) error {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return b.send(chatID, "Unknown action.")
	}
	reminderID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return b.send(chatID, "Unknown action.")
	}
	status := domain.Status(parts[2])

	due, err := b.reminders.ListDueToday(ctx, externalID)
	if err != nil {
		return b.send(chatID, "Could not load today's reminders: "+userMessage(err))
	}
	for _, reminder := range due {
		if reminder.ID != uint(reminderID) {
			continue
		}
		id := reminder.ID
		scheduled := ""
		if len(reminder.Times) > 0 {
			scheduled = reminder.Times[0]
		}
		if _, err := b.history.Add(ctx, externalID, domain.HistoryInput{
			ReminderID:    &id,
			MedicineName:  reminder.MedicineName,
			ScheduledTime: scheduled,
			Status:        status,
		}); err != nil {
			return b.send(chatID, "Could not record the dose: "+userMessage(err))
		}
		return b.send(chatID, fmt.Sprintf("Recorded %s as %s.", reminder.MedicineName, status))
	}
	return b.send(chatID, "That reminder is not due today anymore.")
}

func (b *Bot) sendToday(ctx context.Context, externalID string, chatID int64) error {
	due, err := b.reminders.ListDueToday(ctx, externalID)
	if err != nil {
		return b.send(chatID, "Could not load today's reminders: "+userMessage(err))
	}
	if len(due) == 0 {
		return b.send(chatID, "No reminders due today. 🎉")
	}

	var sb strings.Builder
	sb.WriteString("Due today:\n")
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(due))
	for _, reminder := range due {
		sb.WriteString(fmt.Sprintf("• %s at %s\n", reminder.MedicineName, strings.Join(reminder.Times, ", ")))
		rows = append(rows, doseRow(reminder))
	}
	return b.sendWithKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendMedicines(ctx context.Context, externalID string, chatID int64) error {
	medicines, err := b.medicines.List(ctx, externalID)
	if err != nil {
		return b.send(chatID, "Could not load medicines: "+userMessage(err))
	}
	if len(medicines) == 0 {
		return b.send(chatID, "No medicines registered yet.")
	}

	var sb strings.Builder
	sb.WriteString("Your medicines:\n")
	for _, medicine := range medicines {
		sb.WriteString(fmt.Sprintf("• %s (%s – %s)\n", medicine.Name, medicine.StartDate, medicine.ExpiryDate))
	}
	return b.send(chatID, sb.String())
}

func (b *Bot) sendStats(ctx context.Context, externalID string, chatID int64) error {
	stats, err := b.history.Stats(ctx, externalID, domain.Window{})
	if err != nil {
		return b.send(chatID, "Could not load statistics: "+userMessage(err))
	}
	return b.send(chatID, fmt.Sprintf(
		"Adherence: %.1f%%\nTaken: %d\nRejected: %d\nMissed: %d\nTotal: %d",
		stats.AdherenceRate, stats.Taken, stats.Rejected, stats.Missed, stats.Total))
}

// userMessage strips internal detail from an error before showing it in chat.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeDatabase {
		return appErr.Message
	}
	return "please try again later"
}

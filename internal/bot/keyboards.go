package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hotreminder/backend/internal/domain"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", "today"),
			tgbotapi.NewInlineKeyboardButtonData("💊 Medicines", "meds"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", "stats"),
			tgbotapi.NewInlineKeyboardButtonData("✍️ Log a dose", "log"),
		),
	)
}

func logStatusKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Taken", "log_taken"),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Rejected", "log_rejected"),
		),
	)
}

func doseRow(reminder domain.Reminder) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("✅ %s", reminder.MedicineName),
			fmt.Sprintf("dose:%d:%s", reminder.ID, domain.StatusTaken),
		),
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("🚫 %s", reminder.MedicineName),
			fmt.Sprintf("dose:%d:%s", reminder.ID, domain.StatusRejected),
		),
	)
}

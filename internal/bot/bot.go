package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hotreminder/backend/internal/bot/state"
	"github.com/hotreminder/backend/internal/domain"
	"github.com/hotreminder/backend/internal/logger"
)

// Bot is the Telegram client surface. It answers schedule and adherence
// queries and logs dose events through the same services the HTTP API uses;
// it never pushes reminders on its own.
type Bot struct {
	api       *tgbotapi.BotAPI
	users     domain.UserService
	medicines domain.MedicineService
	reminders domain.ReminderService
	history   domain.HistoryService
	state     state.Store
}

// NewBot creates the bot and authorizes against the Telegram API.
func NewBot(
	token string,
	users domain.UserService,
	medicines domain.MedicineService,
	reminders domain.ReminderService,
	history domain.HistoryService,
	stateStore state.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:       api,
		users:     users,
		medicines: medicines,
		reminders: reminders,
		history:   history,
		state:     stateStore,
	}, nil
}

// Start runs the update loop until the context is canceled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				logger.Error("Failed to handle update", "error", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var from *tgbotapi.User
	var chatID int64
	if update.Message != nil {
		from = update.Message.From
		chatID = update.Message.Chat.ID
	} else {
		from = update.CallbackQuery.From
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	// The Telegram user id is the external id for bot-originated accounts.
	externalID := strconv.FormatInt(from.ID, 10)
	username := from.UserName
	if username == "" {
		username = from.FirstName
	}
	if _, err := b.users.Register(ctx, externalID, username, ""); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	if update.CallbackQuery != nil {
		// Answer the callback query to remove the loading state
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := b.api.Request(callback); err != nil {
			logger.Warn("Failed to answer callback query", "error", err)
		}
		return b.handleCallback(ctx, update.CallbackQuery, externalID, chatID, from.ID)
	}

	if update.Message.IsCommand() {
		return b.handleCommand(ctx, update.Message, externalID, chatID)
	}

	return b.handleText(ctx, update.Message, externalID, chatID, from.ID)
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/checkinbot/internal/i18n"
	"github.com/example/checkinbot/internal/ledger"
	"github.com/example/checkinbot/internal/scheduler"
)

// Bot represents the Telegram check-in bot application. It is a thin adapter:
// raw button text is resolved to a semantic action, exactly one ledger call
// is made per action, and the structured result is formatted into a reply.
type Bot struct {
	api       *tgbotapi.BotAPI
	config    *Config
	ledger    *ledger.Ledger
	clock     ledger.Clock
	scheduler *scheduler.Scheduler
}

// New creates a new bot instance around an existing ledger
func New(cfg *Config, lg *ledger.Ledger, clock ledger.Clock) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("bot token is not set")
	}

	b := &Bot{
		config: cfg,
		ledger: lg,
		clock:  clock,
	}

	if cfg.SchedulerEnabled {
		s, err := scheduler.New(cfg.ResetHour, cfg.ResetMinute, lg)
		if err != nil {
			return nil, err
		}
		b.scheduler = s
	}

	return b, nil
}

// Start connects to Telegram and processes updates until the context is
// canceled
func (b *Bot) Start(ctx context.Context) error {
	api, err := tgbotapi.NewBotAPI(b.config.Token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	log.Printf("Authorized on account %s", api.Self.UserName)

	if b.scheduler != nil {
		if err := b.scheduler.Start(); err != nil {
			return err
		}
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop gracefully stops the bot and the reset scheduler
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// isAdmin checks if a user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	return b.config.AdminUserIDs[userID]
}

// menuKeyboard renders the reply keyboard for a language
func menuKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, row := range i18n.MenuRows(lang) {
		var buttons []tgbotapi.KeyboardButton
		for _, text := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(text))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	message := update.Message

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStartCommand(message)
		case "zh", "en", "km":
			b.handleLanguageCommand(message, message.Command())
		case "report":
			b.requireAdmin(message, b.handleReportCommand)
		case "reset":
			b.requireAdmin(message, b.handleResetCommand)
		default:
			b.reply(message.Chat.ID, "Unknown command. Use /start to show the menu.")
		}
		return
	}

	action, ok := i18n.Lookup(message.Text)
	if !ok {
		// Free text outside the menu is ignored, same as unknown buttons
		return
	}
	b.handleAction(message, action)
}

// requireAdmin runs handler only for configured admin users
func (b *Bot) requireAdmin(message *tgbotapi.Message, handler func(*tgbotapi.Message)) {
	if !b.isAdmin(message.From.ID) {
		b.reply(message.Chat.ID, "This command is only available for administrators.")
		return
	}
	handler(message)
}

// reply sends a plain text message
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

// replyWithMenu sends a text message together with the reply keyboard
func (b *Bot) replyWithMenu(chatID int64, text, lang string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = menuKeyboard(lang)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

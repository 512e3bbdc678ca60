package bot

import (
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/checkinbot/internal/excel"
	"github.com/example/checkinbot/internal/i18n"
	"github.com/example/checkinbot/internal/ledger"
	"github.com/example/checkinbot/pkg/models"
)

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	userID := message.From.ID
	b.ledger.EnsureUser(userID)
	lang := b.ledger.Language(userID)
	b.replyWithMenu(message.Chat.ID, i18n.Greeting(lang), lang)
}

// handleLanguageCommand handles /zh, /en and /km
func (b *Bot) handleLanguageCommand(message *tgbotapi.Message, lang string) {
	userID := message.From.ID
	if err := b.ledger.SetLanguage(userID, lang); err != nil {
		if errors.Is(err, ledger.ErrInvalidLanguage) {
			b.reply(message.Chat.ID, fmt.Sprintf("Language %q is not supported.", lang))
			return
		}
		log.Printf("Error setting language for user %d: %v", userID, err)
		return
	}
	b.replyWithMenu(message.Chat.ID, i18n.LangConfirmation(lang), lang)
}

// handleAction dispatches one semantic menu action to the ledger and formats
// the structured result into the reply
func (b *Bot) handleAction(message *tgbotapi.Message, action i18n.Action) {
	userID := message.From.ID
	name := message.From.FirstName
	chatID := message.Chat.ID
	lang := b.ledger.Language(userID)

	switch action {
	case i18n.ActionStartWork:
		res := b.ledger.StartActivity(userID, models.Work)
		b.reply(chatID, i18n.StartWorkReply(name, userID, res.StartTime))

	case i18n.ActionStartEat, i18n.ActionStartToilet, i18n.ActionStartSmoke:
		kind, _ := action.StartKind()
		res := b.ledger.StartActivity(userID, kind)
		b.reply(chatID, i18n.StartBreakReply(name, userID, res))

	case i18n.ActionStopWork:
		res := b.ledger.StopActivity(userID, models.Work)
		if res == nil {
			// No work slot open, nothing to settle
			return
		}
		sum := b.ledger.DailySummary(userID)
		b.reply(chatID, i18n.OffWorkReply(name, userID, b.clock.Now(), res.TotalForKind, sum.BreakTotal()))

	case i18n.ActionBackToDesk:
		res := b.ledger.StopLatest(userID)
		if res == nil {
			return
		}
		sum := b.ledger.DailySummary(userID)
		b.reply(chatID, i18n.BackReply(lang, name, userID, b.clock.Now(), *res, sum))

	case i18n.ActionSummary:
		sum := b.ledger.DailySummary(userID)
		b.reply(chatID, i18n.SummaryReply(name, userID, sum))
	}
}

// handleReportCommand builds today's xlsx report across all users and sends
// it as a document
func (b *Bot) handleReportCommand(message *tgbotapi.Message) {
	now := b.clock.Now()

	var rows []excel.ReportRow
	for _, userID := range b.ledger.UserIDs() {
		rows = append(rows, excel.ReportRow{
			UserID:  userID,
			Summary: b.ledger.DailySummary(userID),
		})
	}

	data, err := excel.ReportBytes(now, rows)
	if err != nil {
		log.Printf("Error building daily report: %v", err)
		b.reply(message.Chat.ID, "Failed to build the daily report.")
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("checkin-report-%s.xlsx", now.Format("2006-01-02")),
		Bytes: data,
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending report to chat %d: %v", message.Chat.ID, err)
	}
}

// handleResetCommand zeroes every user's counters immediately
func (b *Bot) handleResetCommand(message *tgbotapi.Message) {
	n := b.ledger.ResetAll()
	b.reply(message.Chat.ID, fmt.Sprintf("Counters reset for %d user(s).", n))
}

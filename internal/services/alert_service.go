package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertService pushes security-relevant events to the ops channel.
// Fire-and-forget: failures are logged, never propagated.
type AlertService interface {
	AccountLocked(handle, email string)
	DeletionRequested(handle, email string)
}

type telegramAlerts struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramAlerts wires the ops alert channel. Returns nil when the bot is
// not configured or unreachable; callers treat a nil AlertService as disabled.
func NewTelegramAlerts(botToken string, chatID int64) AlertService {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[alerts][init] telegram bot unavailable: %v", err)
		return nil
	}
	return &telegramAlerts{bot: bot, chatID: chatID}
}

func (a *telegramAlerts) send(text string) {
	if _, err := a.bot.Send(tgbotapi.NewMessage(a.chatID, text)); err != nil {
		log.Printf("[alerts][send] failed: %v", err)
	}
}

func (a *telegramAlerts) AccountLocked(handle, email string) {
	a.send(fmt.Sprintf("account locked after repeated failed logins: handle=%s email=%s", handle, email))
}

func (a *telegramAlerts) DeletionRequested(handle, email string) {
	a.send(fmt.Sprintf("data deletion requested: handle=%s email=%s", handle, email))
}

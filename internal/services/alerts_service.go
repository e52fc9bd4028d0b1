package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertService шлёт дежурным уведомления в Telegram о сбоях доставки писем.
// Необязательный компонент: при пустом токене все вызовы — no-op.
type AlertService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewAlertService(botToken string, chatID int64) *AlertService {
	if botToken == "" || chatID == 0 {
		log.Printf("[alerts] telegram disabled (no token or chat id)")
		return &AlertService{}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[alerts] telegram init failed: %v", err)
		return &AlertService{}
	}
	return &AlertService{bot: bot, chatID: chatID}
}

func (s *AlertService) DeliveryFailure(email string, cause error) {
	if s == nil || s.bot == nil {
		return
	}
	text := fmt.Sprintf("⚠️ login code email to %s failed: %v", email, cause)
	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		log.Printf("[alerts] telegram send failed: %v", err)
	}
}

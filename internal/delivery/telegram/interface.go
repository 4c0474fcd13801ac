package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type CommandExecutor interface {
	Execute(ctx context.Context, command, args, author string) (domain.Reply, bool)
}

// API is the part of *tgbotapi.BotAPI the bot depends on.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sourcegraph/conc/pool"

	"github.com/manjitt2/Movie-bot/configs"
	"github.com/manjitt2/Movie-bot/internal/delivery/command"
	"github.com/manjitt2/Movie-bot/pkg/prometheus"
)

const (
	maxMessageLength = 4000
	pollTimeout      = 60
)

type Bot struct {
	api     API
	handler CommandExecutor
	serial  *command.ChannelSerializer
	workers int
	log     *slog.Logger
}

func NewBot(config *configs.Config, handler CommandExecutor, log *slog.Logger) (*Bot, error) {
	const op = "telegram.NewBot"

	api, err := tgbotapi.NewBotAPIWithClient(config.TG.Token, tgbotapi.APIEndpoint, &http.Client{
		Timeout: config.TG.ConnectionTimeout + pollTimeout*time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("authorized on Telegram", "user", api.Self.UserName)

	return newBot(api, handler, config.TG.Workers, log), nil
}

func newBot(api API, handler CommandExecutor, workers int, log *slog.Logger) *Bot {
	return &Bot{
		api:     api,
		handler: handler,
		serial:  command.NewChannelSerializer(),
		workers: workers,
		log:     log.With("transport", "telegram"),
	}
}

// Run polls for updates until ctx is done. Updates are handled by a bounded
// pool; in-flight handlers finish before Run returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	p := pool.New().WithMaxGoroutines(b.workers)
	defer p.Wait()

	handlerCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("stopped receiving updates")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.Go(func() {
				b.handleUpdate(handlerCtx, update)
			})
		}
	}
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	if len([]rune(text)) > maxMessageLength {
		text = string([]rune(text)[:maxMessageLength]) + "..."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		return err
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

func (b *Bot) SendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	if err != nil {
		return err
	}
	prometheus.MessagesSent.WithLabelValues("embed").Inc()
	return nil
}

package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/manjitt2/Movie-bot/configs"
	"github.com/manjitt2/Movie-bot/internal/delivery/command"
)

type Bot struct {
	session *discordgo.Session
	sender  MessageSender
	handler CommandHandler
	serial  *command.ChannelSerializer
	log     *slog.Logger
	ctx     context.Context
}

func NewBot(ctx context.Context, config *configs.Config, handler CommandHandler, log *slog.Logger) (*Bot, error) {
	const op = "discord.NewBot"

	session, err := discordgo.New("Bot " + config.DS.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	b := newBot(ctx, session, handler, log)
	b.session = session
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

func newBot(ctx context.Context, sender MessageSender, handler CommandHandler, log *slog.Logger) *Bot {
	return &Bot{
		sender:  sender,
		handler: handler,
		serial:  command.NewChannelSerializer(),
		log:     log.With("transport", "discord"),
		ctx:     ctx,
	}
}

// Run opens the gateway connection and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	const op = "discord.Run"
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("%s: open session: %w", op, err)
	}
	<-ctx.Done()
	return b.Stop()
}

func (b *Bot) Stop() error {
	const op = "discord.Stop"
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	b.log.Info("Discord session closed")
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("connected to Discord", "user", r.User.Username, "guilds", len(r.Guilds))
}

// discordgo calls event handlers on their own goroutines.
func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(b.ctx, m)
}

func (b *Bot) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	b.serial.Do(m.ChannelID, func() {
		reply, ok := b.handler.Handle(ctx, m.Content, displayName(m.Author))
		if !ok {
			return
		}
		if err := b.send(m.ChannelID, reply); err != nil {
			b.log.Error("failed to send reply", channelIDKey, m.ChannelID, errorKey, err)
		}
	})
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

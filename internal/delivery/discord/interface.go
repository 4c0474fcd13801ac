package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type CommandHandler interface {
	Handle(ctx context.Context, text, author string) (domain.Reply, bool)
}

// MessageSender is the part of *discordgo.Session used to reply.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

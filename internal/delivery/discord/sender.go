package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/manjitt2/Movie-bot/internal/domain"
	"github.com/manjitt2/Movie-bot/pkg/prometheus"
)

const (
	channelIDKey = "channel_id"
	errorKey     = "error"

	maxMessageLength    = 2000
	maxEmbedTitleLength = 256
	maxFieldNameLength  = 256

	// Discord rejects embed fields with an empty value.
	emptyFieldValue = "\u200b"
)

func (b *Bot) send(channelID string, reply domain.Reply) error {
	if reply.IsEmbed() {
		_, err := b.sender.ChannelMessageSendEmbed(channelID, toMessageEmbed(*reply.Embed))
		if err == nil {
			prometheus.MessagesSent.WithLabelValues("embed").Inc()
		}
		return err
	}

	_, err := b.sender.ChannelMessageSend(channelID, truncate(reply.Text, maxMessageLength))
	if err == nil {
		prometheus.MessagesSent.WithLabelValues("text").Inc()
	}
	return err
}

func toMessageEmbed(e domain.Embed) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(e.Fields))
	for _, f := range e.Fields {
		value := f.Value
		if value == "" {
			value = emptyFieldValue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   truncate(f.Name, maxFieldNameLength),
			Value:  value,
			Inline: f.Inline,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncate(e.Title, maxEmbedTitleLength),
		Description: e.Description,
		Color:       e.Color,
		Fields:      fields,
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return embed
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

package telegram

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

const (
	chatIDKey  = "chat_id"
	commandKey = "command"
	errorKey   = "error"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	switch {
	case msg == nil:
		return
	case msg.From != nil && msg.From.IsBot:
		return
	case !msg.IsCommand():
		return
	}

	chatID := msg.Chat.ID
	b.serial.Do(strconv.FormatInt(chatID, 10), func() {
		reply, ok := b.handler.Execute(ctx, msg.Command(), msg.CommandArguments(), senderName(msg.From))
		if !ok {
			return
		}
		if err := b.sendReply(chatID, reply); err != nil {
			b.log.Error("failed to send reply", chatIDKey, chatID, commandKey, msg.Command(), errorKey, err)
		}
	})
}

func (b *Bot) sendReply(chatID int64, reply domain.Reply) error {
	if reply.IsEmbed() {
		return b.SendHTML(chatID, renderHTML(*reply.Embed))
	}
	return b.SendMessage(chatID, reply.Text)
}

func senderName(u *tgbotapi.User) string {
	if u == nil {
		return "there"
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

// renderHTML lays an embed out as Telegram HTML. Markdown bold in the
// description is kept as <b>.
func renderHTML(e domain.Embed) string {
	var sb strings.Builder

	sb.WriteString("<b>" + html.EscapeString(e.Title) + "</b>\n")
	if e.Description != "" {
		sb.WriteString(boldPattern.ReplaceAllString(html.EscapeString(e.Description), "<b>$1</b>") + "\n")
	}
	sb.WriteString("\n")
	for _, f := range e.Fields {
		sb.WriteString("• <b>" + html.EscapeString(f.Name) + "</b>")
		if f.Value != "" {
			sb.WriteString(" " + html.EscapeString(f.Value))
		}
		sb.WriteString("\n")
	}
	if e.Footer != "" {
		sb.WriteString("\n<i>" + html.EscapeString(e.Footer) + "</i>")
	}
	return sb.String()
}

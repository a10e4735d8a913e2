package sink

import (
	"bytes"
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Telegram posts artifacts as documents to one chat.
type Telegram struct {
	bot  sender
	chat tele.Recipient
}

func NewTelegram(bot sender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chat: tele.ChatID(chatID)}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Save(_ context.Context, artifact *entity.Artifact) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(artifact.Data)),
		FileName: artifact.FileName,
		MIME:     artifact.MIME,
		Caption:  artifact.FileName,
	}
	if _, err := t.bot.Send(t.chat, doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

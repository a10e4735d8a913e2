package sink

import (
	"context"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

type mailer interface {
	SendAttachment(to []string, subject, body string, att smtp.Attachment) error
}

// Mail sends artifacts as attachments to a fixed list of recipients.
type Mail struct {
	client  mailer
	to      []string
	subject string
}

func NewMail(client mailer, to []string, subject string) *Mail {
	if subject == "" {
		subject = "Your QR code"
	}
	return &Mail{client: client, to: to, subject: subject}
}

func (m *Mail) Name() string { return "mail" }

func (m *Mail) Save(_ context.Context, artifact *entity.Artifact) error {
	return m.client.SendAttachment(m.to, m.subject, "The exported code is attached.", smtp.Attachment{
		Name: artifact.FileName,
		MIME: artifact.MIME,
		Data: artifact.Data,
	})
}

package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client is a mail client sending through one SMTP dialer.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// NewClient initializes Client.
func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{dialer: dialer, from: from, domain: domain}
}

// SendAttachment sends a plain text message with one attached file.
func (c *Client) SendAttachment(to []string, subject, body string, att Attachment) error {
	if err := c.dialer.DialAndSend(c.message(to, subject, body, att)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (c *Client) message(to []string, subject, body string, att Attachment) *gomail.Message {
	msg := gomail.NewMessage()

	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(att.Name,
		gomail.SetHeader(map[string][]string{"Content-Type": {att.MIME}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(att.Data))
			return err
		}),
	)
	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}

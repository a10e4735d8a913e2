package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

func artifact(format entity.Format, data string) *entity.Artifact {
	return &entity.Artifact{
		ID:       "a1",
		Format:   format,
		MIME:     format.MIME(),
		FileName: format.FileName(),
		Data:     []byte(data),
	}
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := NewFile(dir)
	assert.Equal(t, "file", f.Name())

	require.NoError(t, f.Save(context.Background(), artifact(entity.FormatPNG, "first")))
	require.NoError(t, f.Save(context.Background(), artifact(entity.FormatPNG, "second")))
	require.NoError(t, f.Save(context.Background(), artifact(entity.FormatSVG, "<svg/>")))

	data, err := os.ReadFile(filepath.Join(dir, "code.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "code.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

type fakeSender struct {
	to   tele.Recipient
	what interface{}
	err  error
}

func (s *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	s.to, s.what = to, what
	return &tele.Message{}, s.err
}

func TestTelegram(t *testing.T) {
	bot := &fakeSender{}
	sink := NewTelegram(bot, 42)
	assert.Equal(t, "telegram", sink.Name())

	require.NoError(t, sink.Save(context.Background(), artifact(entity.FormatSVG, "<svg/>")))
	assert.Equal(t, "42", bot.to.Recipient())
	doc, ok := bot.what.(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "code.svg", doc.FileName)
	assert.Equal(t, "image/svg+xml", doc.MIME)

	bot.err = errors.New("flood")
	assert.Error(t, sink.Save(context.Background(), artifact(entity.FormatPNG, "x")))
}

type fakeMailer struct {
	to      []string
	subject string
	att     smtp.Attachment
}

func (m *fakeMailer) SendAttachment(to []string, subject, _ string, att smtp.Attachment) error {
	m.to, m.subject, m.att = to, subject, att
	return nil
}

func TestMail(t *testing.T) {
	client := &fakeMailer{}
	sink := NewMail(client, []string{"me@example.com"}, "")
	assert.Equal(t, "mail", sink.Name())

	require.NoError(t, sink.Save(context.Background(), artifact(entity.FormatPNG, "png")))
	assert.Equal(t, []string{"me@example.com"}, client.to)
	assert.Equal(t, "Your QR code", client.subject)
	assert.Equal(t, "code.png", client.att.Name)
	assert.Equal(t, "image/png", client.att.MIME)
	assert.Equal(t, []byte("png"), client.att.Data)
}

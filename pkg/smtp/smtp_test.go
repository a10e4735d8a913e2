package smtp

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestMessage(t *testing.T) {
	c := NewClient(gomail.NewDialer("localhost", 25, "", ""), "studio@example.com", "example.com")
	msg := c.message([]string{"a@example.com", "b@example.com"}, "Your code", "attached", Attachment{
		Name: "code.png",
		MIME: "image/png",
		Data: []byte("png-bytes"),
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "From: studio@example.com")
	assert.Contains(t, out, "To: a@example.com, b@example.com")
	assert.Contains(t, out, "Subject: Your code")
	assert.Contains(t, out, `filename="code.png"`)
	assert.Contains(t, out, "Content-Type: image/png")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("png-bytes")))
	assert.True(t, strings.Contains(out, "@example.com>"))
}

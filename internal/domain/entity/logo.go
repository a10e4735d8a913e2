package entity

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Logo is a decoded and normalized logo asset embedded at the centre of the code.
type Logo struct {
	Data []byte
	MIME string
	Name string
}

// DataURI returns the embedded-data representation of the logo.
func (l *Logo) DataURI() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", l.MIME, base64.StdEncoding.EncodeToString(l.Data))
}

// Fingerprint identifies the logo content. A nil logo has an empty fingerprint.
func (l *Logo) Fingerprint() string {
	if l == nil {
		return ""
	}
	sum := sha256.Sum256(l.Data)
	return hex.EncodeToString(sum[:])
}

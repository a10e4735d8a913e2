package validator

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
)

// NormalizePayload trims the input and prefixes https:// when no http(s)
// scheme is present. The result must be a valid URL.
func NormalizePayload(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", errorz.ErrEmptyPayload
	}
	if !strings.HasPrefix(payload, "http://") && !strings.HasPrefix(payload, "https://") {
		payload = "https://" + payload
	}
	if !Payload(payload, nil) {
		return "", errorz.ErrInvalidPayload
	}
	return payload, nil
}

func Payload(payload string, _ map[string]interface{}) bool {
	return govalidator.IsURL(payload)
}

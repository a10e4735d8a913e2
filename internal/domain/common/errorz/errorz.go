package errorz

import "errors"

var (
	ErrEmptyPayload     = errors.New("empty payload")
	ErrInvalidPayload   = errors.New("payload is not a valid url")
	ErrNoRawData        = errors.New("engine returned no raw data")
	ErrNotImage         = errors.New("logo is not an image")
	ErrLogoDecode       = errors.New("failed to decode logo")
	ErrLogoTooLarge     = errors.New("logo is too large")
	ErrLogoURL          = errors.New("logo url is not allowed")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session is closed")
	ErrPresetNotFound   = errors.New("preset not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrRendererClosed   = errors.New("renderer is closed")
	ErrArtifactNotFound = errors.New("artifact not cached")
)

// Package render writes JSON bodies and maps domain errors to HTTP statuses.
package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err with the status it maps to. Server side failures are logged.
func Error(w http.ResponseWriter, logger *types.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("(http) %v", err)
	}
	JSON(w, status, errorBody{Error: err.Error()})
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func Status(err error) int {
	switch {
	case errors.Is(err, errorz.ErrSessionNotFound),
		errors.Is(err, errorz.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, errorz.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, errorz.ErrInvalidConfig),
		errors.Is(err, errorz.ErrInvalidPayload),
		errors.Is(err, errorz.ErrEmptyPayload),
		errors.Is(err, errorz.ErrNotImage),
		errors.Is(err, errorz.ErrLogoDecode),
		errors.Is(err, errorz.ErrLogoTooLarge),
		errors.Is(err, errorz.ErrLogoURL):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

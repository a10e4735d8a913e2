package export

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/render"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

const defaultHistoryLimit = 50

type exportService interface {
	Export(ctx context.Context, session *service.Session, format entity.Format) (*entity.Artifact, error)
	History(ctx context.Context, limit int) ([]entity.Export, error)
	SessionHistory(ctx context.Context, sessionID string) ([]entity.Export, error)
}

type Handler struct {
	exports exportService
	logger  *types.Logger
}

func New(s *studio.Studio) *Handler {
	return &Handler{
		exports: s.Exports,
		logger:  s.Logger,
	}
}

// export renders the session at full resolution and returns the artifact.
// Sink failures don't fail the request; they are listed in X-Sink-Errors.
func (h Handler) export(w http.ResponseWriter, r *http.Request) {
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatPNG)
	}
	format, err := entity.ParseFormat(formatParam)
	if err != nil {
		render.BadRequest(w, err.Error())
		return
	}

	artifact, err := h.exports.Export(r.Context(), middlewares.SessionFrom(r.Context()), format)
	if artifact == nil {
		render.Error(w, h.logger, err)
		return
	}
	if err != nil {
		w.Header().Set("X-Sink-Errors", err.Error())
	}

	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.Header().Set("X-Artifact-Id", artifact.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

func (h Handler) sessionHistory(w http.ResponseWriter, r *http.Request) {
	exports, err := h.exports.SessionHistory(r.Context(), middlewares.SessionFrom(r.Context()).ID)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	if exports == nil {
		exports = []entity.Export{}
	}
	render.JSON(w, http.StatusOK, exports)
}

// History lists recent exports of all sessions, ?limit=N.
func (h Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			render.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	exports, err := h.exports.History(r.Context(), limit)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	if exports == nil {
		exports = []entity.Export{}
	}
	render.JSON(w, http.StatusOK, exports)
}

// SessionSetup registers the routes below /sessions/{id}.
func (h Handler) SessionSetup(r chi.Router) {
	r.Post("/export", h.export)
	r.Get("/exports", h.sessionHistory)
}

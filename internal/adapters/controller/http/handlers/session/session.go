package session

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/render"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// multipart framing on top of the largest accepted logo
const maxLogoBytes = service.MaxLogoBytes + 1<<20

type sessionService interface {
	Create() *service.Session
	CreateWith(cfg entity.Configuration) *service.Session
	Close(id string) error
}

type logoLoader interface {
	FromBytes(name string, data []byte) (*entity.Logo, error)
	FromURL(ctx context.Context, url string) (*entity.Logo, error)
}

type presetStore interface {
	Get(name string) (entity.Configuration, error)
}

type Handler struct {
	sessions sessionService
	logos    logoLoader
	presets  presetStore
	logger   *types.Logger
}

func New(s *studio.Studio) *Handler {
	return &Handler{
		sessions: s.Sessions,
		logos:    s.Logos,
		presets:  s.Presets,
		logger:   s.Logger,
	}
}

type stateResponse struct {
	ID      string               `json:"id"`
	Config  entity.Configuration `json:"config"`
	Payload string               `json:"payload"`
	HasLogo bool                 `json:"hasLogo"`
	Error   string               `json:"error,omitempty"`
}

type changeResponse struct {
	Change string `json:"change"`
}

func stateOf(s *service.Session) stateResponse {
	state := s.State()
	resp := stateResponse{
		ID:      s.ID,
		Config:  state.Config,
		Payload: state.Payload,
		HasLogo: state.Logo != nil,
	}
	if err := s.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func changed(w http.ResponseWriter, change service.Change) {
	render.JSON(w, http.StatusOK, changeResponse{Change: change.String()})
}

// Create opens a session, optionally from a preset: {"preset": "name"}.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preset string `json:"preset"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			render.BadRequest(w, "invalid request body")
			return
		}
	}

	var s *service.Session
	if req.Preset == "" {
		s = h.sessions.Create()
	} else {
		cfg, err := h.presets.Get(req.Preset)
		if err != nil {
			render.Error(w, h.logger, err)
			return
		}
		cfg.PreviewSize = 0
		s = h.sessions.CreateWith(cfg)
	}
	render.JSON(w, http.StatusCreated, stateOf(s))
}

func (h Handler) get(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, stateOf(middlewares.SessionFrom(r.Context())))
}

func (h Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, middlewares.SessionFrom(r.Context()).State().Config)
}

// putConfig decodes the body over the current configuration, so partial
// documents only touch the fields they name.
func (h Handler) putConfig(w http.ResponseWriter, r *http.Request) {
	s := middlewares.SessionFrom(r.Context())
	cfg := s.State().Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		render.BadRequest(w, "invalid configuration body")
		return
	}
	change, err := s.SetConfig(cfg)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	changed(w, change)
}

func (h Handler) putPayload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.BadRequest(w, "invalid payload body")
		return
	}
	change, err := middlewares.SessionFrom(r.Context()).SetPayload(req.Payload)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	changed(w, change)
}

// putLogo accepts a multipart "logo" file, a JSON {"url": "..."} document
// or the raw image bytes.
func (h Handler) putLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		logo *entity.Logo
		err  error
	)
	switch {
	case mediaType == "multipart/form-data":
		file, header, formErr := r.FormFile("logo")
		if formErr != nil {
			render.BadRequest(w, "missing logo file")
			return
		}
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			render.BadRequest(w, "failed to read logo")
			return
		}
		logo, err = h.logos.FromBytes(header.Filename, data)
	case mediaType == "application/json":
		var req struct {
			URL string `json:"url"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil || strings.TrimSpace(req.URL) == "" {
			render.BadRequest(w, "logo url is required")
			return
		}
		logo, err = h.logos.FromURL(r.Context(), req.URL)
	default:
		data, readErr := io.ReadAll(r.Body)
		if readErr != nil || len(data) == 0 {
			render.BadRequest(w, "logo body is required")
			return
		}
		logo, err = h.logos.FromBytes(r.URL.Query().Get("name"), data)
	}
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}

	change, err := middlewares.SessionFrom(r.Context()).SetLogo(logo)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	changed(w, change)
}

func (h Handler) deleteLogo(w http.ResponseWriter, r *http.Request) {
	change, err := middlewares.SessionFrom(r.Context()).ClearLogo()
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	changed(w, change)
}

// preview serves the displayed frame, or 204 while the first render is pending.
func (h Handler) preview(w http.ResponseWriter, r *http.Request) {
	frame, ok := middlewares.SessionFrom(r.Context()).Preview()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, frame); err != nil {
		h.logger.Errorf("(http) failed to encode preview: %v", err)
	}
}

func (h Handler) applyPreset(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.presets.Get(chi.URLParam(r, "name"))
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	s := middlewares.SessionFrom(r.Context())
	cfg.PreviewSize = s.State().Config.PreviewSize

	change, err := s.SetConfig(cfg)
	if err != nil {
		render.Error(w, h.logger, err)
		return
	}
	changed(w, change)
}

func (h Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(middlewares.SessionFrom(r.Context()).ID); err != nil {
		render.Error(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionSetup registers the routes below /sessions/{id}.
func (h Handler) SessionSetup(r chi.Router) {
	r.Get("/", h.get)
	r.Delete("/", h.delete)
	r.Get("/config", h.getConfig)
	r.Put("/config", h.putConfig)
	r.Put("/payload", h.putPayload)
	r.Put("/logo", h.putLogo)
	r.Delete("/logo", h.deleteLogo)
	r.Get("/preview", h.preview)
	r.Put("/preset/{name}", h.applyPreset)
}

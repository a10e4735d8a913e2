package preset

import (
	"net/http"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/render"
	"github.com/Badsnus/qr-studio/internal/adapters/presets"
)

type presetStore interface {
	List() []presets.Preset
}

type Handler struct {
	presets presetStore
}

func New(s *studio.Studio) *Handler {
	return &Handler{presets: s.Presets}
}

func (h Handler) List(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, h.presets.List())
}

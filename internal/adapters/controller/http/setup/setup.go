package setup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/export"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/preset"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/handlers/session"
)

func Setup(s *studio.Studio) http.Handler {
	middle := middlewares.New(s)
	sessionHandler := session.New(s)
	exportHandler := export.New(s)
	presetHandler := preset.New(s)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middle.Logger)

	r.Post("/sessions", sessionHandler.Create)
	r.Get("/presets", presetHandler.List)
	r.Get("/exports", exportHandler.History)

	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(middle.Session)
		sessionHandler.SessionSetup(r)
		exportHandler.SessionSetup(r)
	})

	return r
}

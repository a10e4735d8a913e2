package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Badsnus/qr-studio/cmd/studio"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/http/render"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type ctxKey struct{}

type sessionService interface {
	Get(id string) (*service.Session, error)
}

type Handler struct {
	sessions sessionService
	logger   *types.Logger
}

func New(s *studio.Studio) *Handler {
	return &Handler{
		sessions: s.Sessions,
		logger:   s.Logger,
	}
}

// Logger logs every request with its status and duration.
func (h Handler) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debugf("(request: %s) %s %s -> %d in %s",
			middleware.GetReqID(r.Context()), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// Session resolves the {id} url parameter into a session.
func (h Handler) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			render.Error(w, h.logger, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, session)))
	})
}

// SessionFrom returns the session stored by Session.
func SessionFrom(ctx context.Context) *service.Session {
	session, _ := ctx.Value(ctxKey{}).(*service.Session)
	return session
}

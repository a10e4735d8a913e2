package service

import (
	"image"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/display"
	"github.com/Badsnus/qr-studio/internal/domain/utils/validator"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// State is a copy of what a session currently holds.
type State struct {
	Config  entity.Configuration
	Logo    *entity.Logo
	Payload string
}

// Session is one editing surface: a preview, its renderer and the latest
// configuration, logo and payload.
type Session struct {
	ID        string
	CreatedAt time.Time

	preview  *display.Preview
	renderer *Renderer

	mu      sync.Mutex
	config  entity.Configuration
	logo    *entity.Logo
	payload string
	lastErr error
	closed  bool
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Config: s.config, Logo: s.logo, Payload: s.payload}
}

// SetConfig validates and applies a new configuration. While a logo is
// present the error correction level stays at H.
func (s *Session) SetConfig(cfg entity.Configuration) (Change, error) {
	if err := validator.Configuration(cfg); err != nil {
		return ChangeLight, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ChangeLight, errorz.ErrSessionClosed
	}
	if s.logo != nil {
		cfg.ErrorCorrectionLevel = entity.LevelH
	}
	s.config = cfg
	return s.applyLocked(), nil
}

// SetPayload normalizes and applies a payload. A blank value clears it and
// the preview falls back to the placeholder.
func (s *Session) SetPayload(raw string) (Change, error) {
	var payload string
	if strings.TrimSpace(raw) != "" {
		var err error
		if payload, err = validator.NormalizePayload(raw); err != nil {
			return ChangeLight, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ChangeLight, errorz.ErrSessionClosed
	}
	s.payload = payload
	return s.applyLocked(), nil
}

// SetLogo attaches a logo and raises the error correction level to H.
func (s *Session) SetLogo(logo *entity.Logo) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ChangeLight, errorz.ErrSessionClosed
	}
	s.logo = logo
	s.config.ErrorCorrectionLevel = entity.LevelH
	return s.applyLocked(), nil
}

func (s *Session) ClearLogo() (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ChangeLight, errorz.ErrSessionClosed
	}
	s.logo = nil
	return s.applyLocked(), nil
}

func (s *Session) applyLocked() Change {
	change := s.renderer.Apply(s.config, s.logo, s.payload)
	if change == ChangeHeavy {
		s.lastErr = nil
	}
	return change
}

// Preview returns the displayed frame.
func (s *Session) Preview() (image.Image, bool) {
	return s.preview.Frame()
}

// Err returns the failure of the last debounced render, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Close tears the session down. Pending renders never run afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.renderer.Close()
}

type SessionService struct {
	factory     EngineFactory
	window      time.Duration
	previewSize int
	logger      *types.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(factory EngineFactory, window time.Duration, previewSize int, logger *types.Logger) *SessionService {
	if previewSize < entity.MinPreviewSize || previewSize > entity.MaxPreviewSize {
		previewSize = entity.DefaultPreviewSize
	}
	return &SessionService{
		factory:     factory,
		window:      window,
		previewSize: previewSize,
		logger:      logger,
		sessions:    make(map[string]*Session),
	}
}

// Create opens a session with the default configuration and schedules its
// first preview render.
func (s *SessionService) Create() *Session {
	cfg := entity.DefaultConfiguration()
	cfg.PreviewSize = s.previewSize
	return s.CreateWith(cfg)
}

// CreateWith opens a session starting from cfg, e.g. a preset. A preview
// size outside the allowed bounds falls back to the service default.
func (s *SessionService) CreateWith(cfg entity.Configuration) *Session {
	if cfg.PreviewSize < entity.MinPreviewSize || cfg.PreviewSize > entity.MaxPreviewSize {
		cfg.PreviewSize = s.previewSize
	}

	preview := display.NewPreview(cfg.PreviewSize)
	session := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		preview:   preview,
		renderer:  NewRenderer(preview, s.factory, s.window, s.logger),
		config:    cfg,
	}
	session.renderer.OnError(session.setErr)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	session.mu.Lock()
	session.applyLocked()
	session.mu.Unlock()

	s.logger.Infof("(sessions) opened %s", session.ID)
	return session
}

func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, errorz.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return errorz.ErrSessionNotFound
	}
	session.Close()
	s.logger.Infof("(sessions) closed %s", id)
	return nil
}

// CloseAll tears down every open session.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

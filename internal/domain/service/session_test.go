package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

func newTestSessions(factory *fakeFactory) *SessionService {
	return NewSessionService(factory.New, testWindow, 200, logger.Nop())
}

func TestSessionService_CreateRendersPreview(t *testing.T) {
	factory := &fakeFactory{}
	sessions := newTestSessions(factory)
	defer sessions.CloseAll()

	s := sessions.Create()
	assert.Equal(t, 200, s.State().Config.PreviewSize)

	require.Eventually(t, func() bool {
		_, ok := s.Preview()
		return ok
	}, time.Second, 5*time.Millisecond)

	frame, _ := s.Preview()
	assert.Equal(t, 200, frame.Bounds().Dx())
	assert.Equal(t, entity.PlaceholderPayload, factory.engine(0).options()[0].Data)
}

func TestSessionService_GetAndClose(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{})
	s := sessions.Create()

	got, err := sessions.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, sessions.Count())

	require.NoError(t, sessions.Close(s.ID))
	_, err = sessions.Get(s.ID)
	assert.ErrorIs(t, err, errorz.ErrSessionNotFound)
	assert.ErrorIs(t, sessions.Close(s.ID), errorz.ErrSessionNotFound)

	_, err = s.SetPayload("site.com")
	assert.ErrorIs(t, err, errorz.ErrSessionClosed)
}

func TestSession_SetPayload(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{})
	defer sessions.CloseAll()
	s := sessions.Create()

	_, err := s.SetPayload("  site.com/promo ")
	require.NoError(t, err)
	assert.Equal(t, "https://site.com/promo", s.State().Payload)

	_, err = s.SetPayload("not a url at all")
	assert.ErrorIs(t, err, errorz.ErrInvalidPayload)
	assert.Equal(t, "https://site.com/promo", s.State().Payload)

	_, err = s.SetPayload("")
	require.NoError(t, err)
	assert.Empty(t, s.State().Payload)
}

func TestSession_LogoForcesHighestLevel(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{})
	defer sessions.CloseAll()
	s := sessions.Create()

	cfg := s.State().Config
	cfg.ErrorCorrectionLevel = entity.LevelL
	_, err := s.SetConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, entity.LevelL, s.State().Config.ErrorCorrectionLevel)

	_, err = s.SetLogo(&entity.Logo{Data: []byte{1}, MIME: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, entity.LevelH, s.State().Config.ErrorCorrectionLevel)

	_, err = s.SetConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, entity.LevelH, s.State().Config.ErrorCorrectionLevel)

	_, err = s.ClearLogo()
	require.NoError(t, err)
	assert.Nil(t, s.State().Logo)
}

func TestSession_SetConfigValidates(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{})
	defer sessions.CloseAll()
	s := sessions.Create()

	cfg := s.State().Config
	cfg.DotColor = "blue"
	_, err := s.SetConfig(cfg)
	assert.ErrorIs(t, err, errorz.ErrInvalidConfig)
	assert.Equal(t, "#ffffff", s.State().Config.DotColor)
}

func TestSessionService_CreateWithBoundsPreviewSize(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{})
	defer sessions.CloseAll()

	cfg := entity.DefaultConfiguration()
	cfg.PreviewSize = 1_000_000
	s := sessions.CreateWith(cfg)
	assert.Equal(t, 200, s.State().Config.PreviewSize)

	cfg.PreviewSize = 0
	assert.Equal(t, 200, sessions.CreateWith(cfg).State().Config.PreviewSize)

	cfg = s.State().Config
	cfg.PreviewSize = 1_000_000
	_, err := s.SetConfig(cfg)
	assert.ErrorIs(t, err, errorz.ErrInvalidConfig)
	assert.Equal(t, 200, s.State().Config.PreviewSize)
}

func TestSession_LightAndHeavyEdits(t *testing.T) {
	factory := &fakeFactory{}
	sessions := newTestSessions(factory)
	defer sessions.CloseAll()
	s := sessions.Create()
	require.Eventually(t, func() bool { return factory.count() == 1 }, time.Second, 5*time.Millisecond)

	cfg := s.State().Config
	cfg.BorderRadius = 200
	change, err := s.SetConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, ChangeLight, change)

	cfg.DotStyle = entity.DotDots
	change, err = s.SetConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, ChangeHeavy, change)

	require.Eventually(t, func() bool { return len(factory.engine(0).options()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestSession_RecordsDebouncedError(t *testing.T) {
	sessions := newTestSessions(&fakeFactory{err: errBoom})
	defer sessions.CloseAll()
	s := sessions.Create()

	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.Err(), errBoom)
}

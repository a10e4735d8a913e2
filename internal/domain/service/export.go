package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type ArtifactCache interface {
	Get(ctx context.Context, key string) (*entity.Artifact, error)
	Set(ctx context.Context, key string, artifact *entity.Artifact, ttl time.Duration) error
}

type ExportStorage interface {
	Create(ctx context.Context, export *entity.Export) error
	List(ctx context.Context, limit int) ([]entity.Export, error)
	GetBySession(ctx context.Context, sessionID string) ([]entity.Export, error)
}

// Sink delivers an exported artifact somewhere: disk, a chat, a mailbox.
type Sink interface {
	Name() string
	Save(ctx context.Context, artifact *entity.Artifact) error
}

// ExportService wraps the Exporter with caching, history and delivery.
// Cache and storage are optional.
type ExportService struct {
	exporter *Exporter
	cache    ArtifactCache
	storage  ExportStorage
	sinks    []Sink
	cacheTTL time.Duration
	logger   *types.Logger
}

func NewExportService(exporter *Exporter, cache ArtifactCache, storage ExportStorage, sinks []Sink, cacheTTL time.Duration, logger *types.Logger) *ExportService {
	return &ExportService{
		exporter: exporter,
		cache:    cache,
		storage:  storage,
		sinks:    sinks,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Export produces the artifact for the session's current state, delivers
// it to every sink and records it. Sink failures are reported together
// after all sinks ran; the artifact is still returned.
func (s *ExportService) Export(ctx context.Context, session *Session, format entity.Format) (*entity.Artifact, error) {
	state := session.State()

	key, err := Fingerprint(state, format)
	if err != nil {
		return nil, err
	}

	artifact := s.cached(ctx, key)
	if artifact == nil {
		artifact, err = s.exporter.Export(ctx, state.Config, state.Logo, state.Payload, format)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err = s.cache.Set(ctx, key, artifact, s.cacheTTL); err != nil {
				s.logger.Warnf("(export) failed to cache artifact: %v", err)
			}
		}
	}

	var (
		delivered []string
		sinkErrs  []error
	)
	for _, sink := range s.sinks {
		if err = sink.Save(ctx, artifact); err != nil {
			s.logger.Errorf("(export) sink %s failed: %v", sink.Name(), err)
			sinkErrs = append(sinkErrs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		delivered = append(delivered, sink.Name())
	}

	if s.storage != nil {
		record := &entity.Export{
			ArtifactID: artifact.ID,
			SessionID:  session.ID,
			Format:     artifact.Format,
			FileName:   artifact.FileName,
			Payload:    state.Payload,
			ExportSize: state.Config.ExportSize,
			Bytes:      len(artifact.Data),
			Sinks:      delivered,
		}
		if err = s.storage.Create(ctx, record); err != nil {
			s.logger.Errorf("(export) failed to record export: %v", err)
		}
	}

	s.logger.Infof("(export) session %s exported %s (%d bytes) to %v", session.ID, artifact.FileName, len(artifact.Data), delivered)
	return artifact, errors.Join(sinkErrs...)
}

func (s *ExportService) cached(ctx context.Context, key string) *entity.Artifact {
	if s.cache == nil {
		return nil
	}
	artifact, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, errorz.ErrArtifactNotFound) {
			s.logger.Warnf("(export) cache lookup failed: %v", err)
		}
		return nil
	}
	hit := *artifact
	hit.ID = uuid.New().String()
	s.logger.Debugf("(export) cache hit %s", key)
	return &hit
}

// History lists the most recent exports, newest first.
func (s *ExportService) History(ctx context.Context, limit int) ([]entity.Export, error) {
	if s.storage == nil {
		return nil, nil
	}
	return s.storage.List(ctx, limit)
}

// SessionHistory lists the exports of one session, newest first.
func (s *ExportService) SessionHistory(ctx context.Context, sessionID string) ([]entity.Export, error) {
	if s.storage == nil {
		return nil, nil
	}
	return s.storage.GetBySession(ctx, sessionID)
}

// Fingerprint identifies everything an export depends on.
func Fingerprint(state State, format entity.Format) (string, error) {
	cfg := state.Config.Resolve(state.Logo != nil)
	cfg.PreviewSize = 0

	raw, err := json.Marshal(struct {
		Config  entity.Configuration
		Logo    string
		Payload string
		Format  entity.Format
	}{cfg, state.Logo.Fingerprint(), state.Payload, format})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

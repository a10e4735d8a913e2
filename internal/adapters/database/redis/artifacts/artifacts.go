package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

const keyPrefix = "artifact:"

// Storage caches exported artifacts by export fingerprint.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

type cachedArtifact struct {
	Format   entity.Format `json:"format"`
	MIME     string        `json:"mime"`
	FileName string        `json:"file_name"`
	Data     []byte        `json:"data"`
}

func (s *Storage) Get(ctx context.Context, fingerprint string) (*entity.Artifact, error) {
	raw, err := s.redis.Get(ctx, keyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errorz.ErrArtifactNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (s *Storage) Set(ctx context.Context, fingerprint string, artifact *entity.Artifact, ttl time.Duration) error {
	raw, err := encode(artifact)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, keyPrefix+fingerprint, raw, ttl).Err()
}

func (s *Storage) Clear(ctx context.Context, fingerprint string) error {
	return s.redis.Del(ctx, keyPrefix+fingerprint).Err()
}

func encode(artifact *entity.Artifact) ([]byte, error) {
	return json.Marshal(cachedArtifact{
		Format:   artifact.Format,
		MIME:     artifact.MIME,
		FileName: artifact.FileName,
		Data:     artifact.Data,
	})
}

func decode(raw []byte) (*entity.Artifact, error) {
	var c cachedArtifact
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cached artifact: %w", err)
	}
	if len(c.Data) == 0 {
		return nil, errorz.ErrArtifactNotFound
	}
	return &entity.Artifact{
		Format:   c.Format,
		MIME:     c.MIME,
		FileName: c.FileName,
		Data:     c.Data,
	}, nil
}

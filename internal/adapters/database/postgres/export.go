package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

type ExportStorage struct {
	db *gorm.DB
}

func NewExportStorage(db *gorm.DB) *ExportStorage {
	return &ExportStorage{
		db: db,
	}
}

// Create is a function that records a delivered export.
func (s *ExportStorage) Create(ctx context.Context, export *entity.Export) error {
	return s.db.WithContext(ctx).Create(export).Error
}

// List is a function that gets the most recent exports, newest first.
func (s *ExportStorage) List(ctx context.Context, limit int) ([]entity.Export, error) {
	var exports []entity.Export
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&exports).Error
	return exports, err
}

// GetBySession is a function that gets all exports of one session.
func (s *ExportStorage) GetBySession(ctx context.Context, sessionID string) ([]entity.Export, error) {
	var exports []entity.Export
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at desc").Find(&exports).Error
	return exports, err
}

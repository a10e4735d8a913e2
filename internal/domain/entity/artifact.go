package entity

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" and "svg".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) MIME() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// FileName is the conventional name the artifact is saved under.
func (f Format) FileName() string {
	return "code." + string(f)
}

// Artifact is an exported byte sequence ready for persistence.
type Artifact struct {
	ID       string
	Format   Format
	MIME     string
	FileName string
	Data     []byte
}

// Export is a history record of a delivered artifact.
type Export struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	ArtifactID string         `gorm:"not null;type:uuid"`
	SessionID  string         `gorm:"index"`
	Format     Format         `gorm:"not null"`
	FileName   string         `gorm:"not null"`
	Payload    string         `gorm:"not null"`
	ExportSize int
	Bytes      int
	Sinks      pq.StringArray `gorm:"type:text[]"`
}

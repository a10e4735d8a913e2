package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

func TestClassify_NoSnapshotIsHeavy(t *testing.T) {
	assert.Equal(t, ChangeHeavy, Classify(nil, entity.DefaultConfiguration(), nil, ""))
}

func TestClassify(t *testing.T) {
	base := entity.DefaultConfiguration()
	logo := &entity.Logo{Data: []byte{1, 2, 3}, MIME: "image/png"}
	snap := entity.NewSnapshot(base.Resolve(false), nil, "https://site.com")

	tests := []struct {
		name    string
		mutate  func(*entity.Configuration)
		logo    *entity.Logo
		payload string
		want    Change
	}{
		{"identical", func(*entity.Configuration) {}, nil, "https://site.com", ChangeLight},
		{"border radius", func(c *entity.Configuration) { c.BorderRadius = 120 }, nil, "https://site.com", ChangeLight},
		{"preview size", func(c *entity.Configuration) { c.PreviewSize = 400 }, nil, "https://site.com", ChangeLight},
		{"export size", func(c *entity.Configuration) { c.ExportSize = 1500 }, nil, "https://site.com", ChangeLight},
		{"margin", func(c *entity.Configuration) { c.Margin = 20 }, nil, "https://site.com", ChangeHeavy},
		{"dot color", func(c *entity.Configuration) { c.DotColor = "#000000" }, nil, "https://site.com", ChangeHeavy},
		{"corner color", func(c *entity.Configuration) { c.CornerColor = "#000000" }, nil, "https://site.com", ChangeHeavy},
		{"background", func(c *entity.Configuration) { c.BgColor = "#ffffff" }, nil, "https://site.com", ChangeHeavy},
		{"dot style", func(c *entity.Configuration) { c.DotStyle = entity.DotSquare }, nil, "https://site.com", ChangeHeavy},
		{"corner style", func(c *entity.Configuration) { c.CornerStyle = entity.CornerDot }, nil, "https://site.com", ChangeHeavy},
		{"gradient toggle", func(c *entity.Configuration) { c.UseGradient = true }, nil, "https://site.com", ChangeHeavy},
		{"gradient type", func(c *entity.Configuration) { c.GradientType = entity.GradientRadial }, nil, "https://site.com", ChangeHeavy},
		{"gradient color", func(c *entity.Configuration) { c.GradientColor2 = "#ff0000" }, nil, "https://site.com", ChangeHeavy},
		{"error correction", func(c *entity.Configuration) { c.ErrorCorrectionLevel = entity.LevelM }, nil, "https://site.com", ChangeHeavy},
		{"logo", func(*entity.Configuration) {}, logo, "https://site.com", ChangeHeavy},
		{"payload", func(*entity.Configuration) {}, nil, "https://other.com", ChangeHeavy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)
			assert.Equal(t, tt.want, Classify(snap, next, tt.logo, tt.payload))
		})
	}
}

func TestClassify_EmptyPayloadMatchesPlaceholder(t *testing.T) {
	cfg := entity.DefaultConfiguration()
	snap := entity.NewSnapshot(cfg.Resolve(false), nil, entity.PlaceholderPayload)
	assert.Equal(t, ChangeLight, Classify(snap, cfg, nil, ""))
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "heavy", ChangeHeavy.String())
	assert.Equal(t, "light", ChangeLight.String())
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/google/uuid"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/clip"
	"github.com/Badsnus/qr-studio/internal/domain/utils/svgref"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

// Exporter produces full-resolution artifacts. Every export runs on its
// own engine at ExportSize, so preview edits never interfere with it.
type Exporter struct {
	factory EngineFactory
	logger  *types.Logger
}

func NewExporter(factory EngineFactory, logger *types.Logger) *Exporter {
	if factory == nil {
		factory = NewEngine
	}
	return &Exporter{factory: factory, logger: logger}
}

func (e *Exporter) Export(ctx context.Context, cfg entity.Configuration, logo *entity.Logo, payload string, format entity.Format) (*entity.Artifact, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, errorz.ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg = cfg.Resolve(logo != nil)
	size := cfg.ExportSize

	opts, err := BuildOptions(cfg, logo, payload, size)
	if err != nil {
		return nil, err
	}
	engine, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("construct export engine: %w", err)
	}

	var data []byte
	switch format {
	case entity.FormatSVG:
		data, err = e.vector(engine, logo)
	case entity.FormatPNG:
		data, err = e.raster(engine, size, cfg.BorderRadius)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Debugf("(exporter) %s export of %d bytes at %dpx", format, len(data), size)
	return &entity.Artifact{
		ID:       uuid.New().String(),
		Format:   format,
		MIME:     format.MIME(),
		FileName: format.FileName(),
		Data:     data,
	}, nil
}

// vector embeds the logo into every external image reference so the
// document is self-contained.
func (e *Exporter) vector(engine Engine, logo *entity.Logo) ([]byte, error) {
	raw, err := engine.RawData(qr.SVG)
	if err != nil {
		return nil, fmt.Errorf("svg raw data: %w", err)
	}
	if len(raw) == 0 {
		return nil, errorz.ErrNoRawData
	}
	if logo == nil {
		return raw, nil
	}
	return []byte(svgref.Rewrite(string(raw), logo.DataURI())), nil
}

// raster re-composites the engine output onto a fresh canvas clipped to
// the outer border radius.
func (e *Exporter) raster(engine Engine, size, radius int) ([]byte, error) {
	raw, err := engine.RawData(qr.PNG)
	if err != nil {
		return nil, fmt.Errorf("png raw data: %w", err)
	}
	if len(raw) == 0 {
		return nil, errorz.ErrNoRawData
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode engine png: %w", err)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, clip.Rounded(img, size, float64(radius))); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

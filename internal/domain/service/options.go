package service

import (
	"fmt"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

// BuildOptions maps a resolved configuration onto engine options for a
// surface of the given size. Margin is scaled from export size; dots get
// either a gradient or a flat color, never both.
func BuildOptions(cfg entity.Configuration, logo *entity.Logo, payload string, size int) (qr.Options, error) {
	dotColor, err := qr.ParseHexColor(cfg.DotColor)
	if err != nil {
		return qr.Options{}, fmt.Errorf("%w: dot color: %v", errorz.ErrInvalidConfig, err)
	}
	cornerColor, err := qr.ParseHexColor(cfg.CornerColor)
	if err != nil {
		return qr.Options{}, fmt.Errorf("%w: corner color: %v", errorz.ErrInvalidConfig, err)
	}
	bgColor, err := qr.ParseHexColor(cfg.BgColor)
	if err != nil {
		return qr.Options{}, fmt.Errorf("%w: background color: %v", errorz.ErrInvalidConfig, err)
	}

	var fill qr.Fill = qr.Solid{Color: dotColor}
	if cfg.UseGradient {
		second := dotColor
		if cfg.GradientColor2 != "" {
			if second, err = qr.ParseHexColor(cfg.GradientColor2); err != nil {
				return qr.Options{}, fmt.Errorf("%w: gradient color: %v", errorz.ErrInvalidConfig, err)
			}
		}
		gradientType := qr.GradientLinear
		if cfg.GradientType == entity.GradientRadial {
			gradientType = qr.GradientRadial
		}
		fill = qr.Gradient{
			Type: gradientType,
			Stops: []qr.ColorStop{
				{Offset: 0, Color: dotColor},
				{Offset: 1, Color: second},
			},
		}
	}

	level := qr.Level(cfg.ErrorCorrectionLevel)
	if logo != nil {
		level = qr.LevelH
	}

	return qr.Options{
		Size:   size,
		Data:   payload,
		Margin: cfg.ScaledMargin(size),
		Dots: qr.DotsOptions{
			Type: qr.DotType(cfg.DotStyle),
			Fill: fill,
		},
		CornersSquare: qr.CornersSquareOptions{
			Type:  qr.CornerSquareType(cfg.CornerStyle),
			Color: cornerColor,
		},
		CornersDot: qr.CornersDotOptions{
			Type:  qr.CornerDotDot,
			Color: cornerColor,
		},
		Background:   qr.BackgroundOptions{Color: bgColor},
		ImageOptions: qr.DefaultImageOptions,
		Image:        logo.DataURI(),
		QR:           qr.QROptions{ErrorCorrectionLevel: level},
	}, nil
}

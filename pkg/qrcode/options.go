package qr

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"
)

type DotType string

const (
	DotRounded       DotType = "rounded"
	DotDots          DotType = "dots"
	DotClassy        DotType = "classy"
	DotClassyRounded DotType = "classy-rounded"
	DotSquare        DotType = "square"
	DotExtraRounded  DotType = "extra-rounded"
)

type CornerSquareType string

const (
	CornerSquareExtraRounded CornerSquareType = "extra-rounded"
	CornerSquareDot          CornerSquareType = "dot"
	CornerSquareSquare       CornerSquareType = "square"
)

type CornerDotType string

const (
	CornerDotDot    CornerDotType = "dot"
	CornerDotSquare CornerDotType = "square"
)

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

func (l Level) recovery() (qrcode.RecoveryLevel, error) {
	switch l {
	case LevelL:
		return qrcode.Low, nil
	case LevelM:
		return qrcode.Medium, nil
	case LevelQ:
		return qrcode.High, nil
	case LevelH:
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", l)
	}
}

// Fill is either Solid or Gradient.
type Fill interface {
	isFill()
}

type Solid struct {
	Color color.Color
}

type ColorStop struct {
	Offset float64
	Color  color.Color
}

type Gradient struct {
	Type     GradientType
	Rotation float64 // radians, linear only
	Stops    []ColorStop
}

func (Solid) isFill()    {}
func (Gradient) isFill() {}

type DotsOptions struct {
	Type DotType
	Fill Fill
}

type CornersSquareOptions struct {
	Type  CornerSquareType
	Color color.Color
}

type CornersDotOptions struct {
	Type  CornerDotType
	Color color.Color
}

type BackgroundOptions struct {
	Color color.Color
}

type ImageOptions struct {
	HideBackgroundDots bool
	ImageSize          float64 // fraction of the symbol side
	Margin             int     // pixels kept clear around the image
}

type QROptions struct {
	ErrorCorrectionLevel Level
}

// Options is the structural document the engine renders from.
type Options struct {
	Size          int
	Data          string
	Margin        int
	Dots          DotsOptions
	CornersSquare CornersSquareOptions
	CornersDot    CornersDotOptions
	Background    BackgroundOptions
	ImageOptions  ImageOptions
	Image         string // data URI or file path, empty for none
	QR            QROptions
}

var (
	ErrNoData       = errors.New("qr: no data to encode")
	ErrSizeTooSmall = errors.New("qr: size too small for symbol")
)

func (o Options) validate() error {
	if o.Data == "" {
		return ErrNoData
	}
	if o.Size <= 0 {
		return fmt.Errorf("qr: invalid size %d", o.Size)
	}
	if o.Margin < 0 || 2*o.Margin >= o.Size {
		return fmt.Errorf("qr: invalid margin %d for size %d", o.Margin, o.Size)
	}
	switch o.Dots.Type {
	case DotRounded, DotDots, DotClassy, DotClassyRounded, DotSquare, DotExtraRounded:
	default:
		return fmt.Errorf("qr: unknown dot type %q", o.Dots.Type)
	}
	switch o.CornersSquare.Type {
	case CornerSquareExtraRounded, CornerSquareDot, CornerSquareSquare:
	default:
		return fmt.Errorf("qr: unknown corner square type %q", o.CornersSquare.Type)
	}
	switch o.CornersDot.Type {
	case CornerDotDot, CornerDotSquare:
	default:
		return fmt.Errorf("qr: unknown corner dot type %q", o.CornersDot.Type)
	}
	switch f := o.Dots.Fill.(type) {
	case Solid:
		if f.Color == nil {
			return errors.New("qr: solid fill without color")
		}
	case Gradient:
		if f.Type != GradientLinear && f.Type != GradientRadial {
			return fmt.Errorf("qr: unknown gradient type %q", f.Type)
		}
		if len(f.Stops) < 2 {
			return errors.New("qr: gradient needs at least two stops")
		}
	default:
		return errors.New("qr: dots fill is required")
	}
	if o.CornersSquare.Color == nil || o.CornersDot.Color == nil {
		return errors.New("qr: corner colors are required")
	}
	if o.Image != "" && (o.ImageOptions.ImageSize <= 0 || o.ImageOptions.ImageSize >= 1) {
		return fmt.Errorf("qr: image size %v out of (0, 1)", o.ImageOptions.ImageSize)
	}
	return nil
}

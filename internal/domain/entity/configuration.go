package entity

// DotStyle is the shape used for data modules.
type DotStyle string

const (
	DotRounded       DotStyle = "rounded"
	DotDots          DotStyle = "dots"
	DotClassy        DotStyle = "classy"
	DotClassyRounded DotStyle = "classy-rounded"
	DotSquare        DotStyle = "square"
	DotExtraRounded  DotStyle = "extra-rounded"
)

// CornerStyle is the shape used for the three finder squares.
type CornerStyle string

const (
	CornerExtraRounded CornerStyle = "extra-rounded"
	CornerDot          CornerStyle = "dot"
	CornerSquare       CornerStyle = "square"
)

type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

type ErrorCorrectionLevel string

const (
	LevelL ErrorCorrectionLevel = "L"
	LevelM ErrorCorrectionLevel = "M"
	LevelQ ErrorCorrectionLevel = "Q"
	LevelH ErrorCorrectionLevel = "H"
)

const (
	// PlaceholderPayload is rendered by the preview while no payload was entered.
	PlaceholderPayload = "https://preview.qr"

	DefaultPreviewSize = 280
	MinPreviewSize     = 64
	MaxPreviewSize     = 2000
	DefaultExportSize  = 1000
	MinExportSize      = 200
	MaxExportSize      = 2000
)

// Configuration is the complete styling contract for one rendering.
//
// Margin and BorderRadius are always expressed at ExportSize. Consumers
// rendering at another size derive their value with Scale.
type Configuration struct {
	PreviewSize          int                  `json:"previewSize" yaml:"preview-size" validate:"min=64,max=2000"`
	ExportSize           int                  `json:"exportSize" yaml:"export-size" validate:"min=200,max=2000"`
	Margin               int                  `json:"margin" yaml:"margin" validate:"gte=0"`
	DotColor             string               `json:"dotColor" yaml:"dot-color" validate:"required,color"`
	CornerColor          string               `json:"cornerColor" yaml:"corner-color" validate:"required,color"`
	BgColor              string               `json:"bgColor" yaml:"bg-color" validate:"required,color"`
	UseGradient          bool                 `json:"useGradient" yaml:"use-gradient"`
	GradientType         GradientType         `json:"gradientType,omitempty" yaml:"gradient-type" validate:"omitempty,oneof=linear radial"`
	GradientColor2       string               `json:"gradientColor2,omitempty" yaml:"gradient-color-2" validate:"omitempty,color"`
	DotStyle             DotStyle             `json:"dotStyle" yaml:"dot-style" validate:"oneof=rounded dots classy classy-rounded square extra-rounded"`
	CornerStyle          CornerStyle          `json:"cornerStyle" yaml:"corner-style" validate:"oneof=extra-rounded dot square"`
	ErrorCorrectionLevel ErrorCorrectionLevel `json:"errorCorrectionLevel" yaml:"error-correction-level" validate:"oneof=L M Q H"`
	BorderRadius         int                  `json:"borderRadius" yaml:"border-radius" validate:"gte=0"`
}

// DefaultConfiguration returns the styling a fresh session starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		PreviewSize:          DefaultPreviewSize,
		ExportSize:           DefaultExportSize,
		Margin:               10,
		DotColor:             "#ffffff",
		CornerColor:          "#ffffff",
		BgColor:              "#00000000",
		GradientType:         GradientLinear,
		DotStyle:             DotRounded,
		CornerStyle:          CornerExtraRounded,
		ErrorCorrectionLevel: LevelH,
	}
}

// Resolve returns the configuration the pipeline actually renders:
// border radius clamped to [0, ExportSize/2], preview size kept within
// [MinPreviewSize, MaxPreviewSize], level forced to H when a logo covers
// part of the symbol, gradient fallbacks filled in.
func (c Configuration) Resolve(hasLogo bool) Configuration {
	c.BorderRadius = c.ClampedBorderRadius()
	if hasLogo {
		c.ErrorCorrectionLevel = LevelH
	}
	if c.GradientType == "" {
		c.GradientType = GradientLinear
	}
	if c.GradientColor2 == "" {
		c.GradientColor2 = c.DotColor
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}
	c.PreviewSize = clamp(c.PreviewSize, MinPreviewSize, MaxPreviewSize)
	return c
}

// ClampedBorderRadius returns BorderRadius limited to [0, ExportSize/2].
func (c Configuration) ClampedBorderRadius() int {
	return clamp(c.BorderRadius, 0, c.ExportSize/2)
}

// ScaledMargin returns the margin for a surface of the given size.
func (c Configuration) ScaledMargin(size int) int {
	return Scale(c.Margin, size, c.ExportSize)
}

// ScaledBorderRadius returns the clamped border radius for a surface of the given size.
func (c Configuration) ScaledBorderRadius(size int) int {
	return Scale(c.ClampedBorderRadius(), size, c.ExportSize)
}

// Scale converts a value stored at export scale to displaySize by linear proportion.
func Scale(value, displaySize, exportSize int) int {
	if exportSize <= 0 || displaySize == exportSize {
		return value
	}
	return value * displaySize / exportSize
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

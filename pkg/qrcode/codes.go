package qr

import "image/color"

// DefaultImageOptions matches the logo placement the studio has always used.
var DefaultImageOptions = ImageOptions{
	HideBackgroundDots: true,
	ImageSize:          0.4,
	Margin:             5,
}

// Classic is a plain black on white style.
var Classic = Options{
	Size:   512,
	Margin: 16,
	Dots: DotsOptions{
		Type: DotSquare,
		Fill: Solid{Color: color.Black},
	},
	CornersSquare: CornersSquareOptions{Type: CornerSquareSquare, Color: color.Black},
	CornersDot:    CornersDotOptions{Type: CornerDotSquare, Color: color.Black},
	Background:    BackgroundOptions{Color: color.White},
	ImageOptions:  DefaultImageOptions,
	QR:            QROptions{ErrorCorrectionLevel: LevelM},
}

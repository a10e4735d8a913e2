package qr

import (
	"image"

	"github.com/fogleman/gg"
)

func drawRaster(opts Options, l *layout) image.Image {
	dc := gg.NewContext(opts.Size, opts.Size)

	if !isTransparent(opts.Background.Color) {
		dc.SetColor(opts.Background.Color)
		dc.Clear()
	}

	setFill(dc, opts.Dots.Fill, l)
	l.addDots(dc, opts.Dots.Type)
	dc.Fill()

	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetColor(opts.CornersSquare.Color)
	l.addCornerSquares(dc, opts.CornersSquare.Type)
	dc.Fill()
	dc.SetFillRule(gg.FillRuleWinding)

	dc.SetColor(opts.CornersDot.Color)
	l.addCornerDots(dc, opts.CornersDot.Type)
	dc.Fill()

	if l.logo != nil {
		dc.DrawImage(l.logo, l.logoRect.Min.X, l.logoRect.Min.Y)
	}
	return dc.Image()
}

func setFill(dc *gg.Context, fill Fill, l *layout) {
	switch f := fill.(type) {
	case Solid:
		dc.SetColor(f.Color)
	case Gradient:
		var g gg.Gradient
		if f.Type == GradientRadial {
			cx, cy, r := l.center()
			g = gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
		} else {
			g = gg.NewLinearGradient(l.gradientLine(f.Rotation))
		}
		for _, s := range f.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		dc.SetFillStyle(g)
	}
}

// Package clip re-composites engine output with an outer corner radius the
// engine itself knows nothing about.
package clip

import (
	"image"

	"github.com/fogleman/gg"
)

// Composite draws src onto a fresh size x size canvas without clipping.
func Composite(src image.Image, size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	dc.DrawImage(src, 0, 0)
	return dc.Image().(*image.RGBA)
}

// Rounded draws src onto a fresh size x size canvas clipped to a rounded
// rectangle. The radius is clamped to [0, size/2]; a zero radius yields
// exactly Composite(src, size).
func Rounded(src image.Image, size int, radius float64) *image.RGBA {
	r := Radius(radius, size)
	if r == 0 {
		return Composite(src, size)
	}

	dc := gg.NewContext(size, size)
	RoundedRectPath(dc, float64(size), float64(size), r)
	dc.Clip()
	dc.DrawImage(src, 0, 0)
	return dc.Image().(*image.RGBA)
}

// Radius clamps radius into [0, size/2].
func Radius(radius float64, size int) float64 {
	half := float64(size) / 2
	if radius < 0 {
		return 0
	}
	if radius > half {
		return half
	}
	return radius
}

// RoundedRectPath traces the four-corner rounded rectangle with quadratic corners.
func RoundedRectPath(dc *gg.Context, w, h, r float64) {
	dc.MoveTo(r, 0)
	dc.LineTo(w-r, 0)
	dc.QuadraticTo(w, 0, w, r)
	dc.LineTo(w, h-r)
	dc.QuadraticTo(w, h, w-r, h)
	dc.LineTo(r, h)
	dc.QuadraticTo(0, h, 0, h-r)
	dc.LineTo(0, r)
	dc.QuadraticTo(0, 0, r, 0)
	dc.ClosePath()
}

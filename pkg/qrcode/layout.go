package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

const finderSize = 7

// layout is the geometry shared by the raster and vector writers.
type layout struct {
	modules [][]bool
	count   int
	dot     float64
	x0, y0  float64

	logo     image.Image
	logoRect image.Rectangle
	hidden   image.Rectangle // module coordinates, Max exclusive
}

func newLayout(opts Options, logo func(src string) (image.Image, error)) (*layout, error) {
	level, err := opts.QR.ErrorCorrectionLevel.recovery()
	if err != nil {
		return nil, err
	}
	code, err := qrcode.New(opts.Data, level)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	code.DisableBorder = true
	modules := code.Bitmap()
	count := len(modules)

	drawSize := opts.Size - 2*opts.Margin
	dot := drawSize / count
	if dot < 1 {
		return nil, fmt.Errorf("%w: %d modules in %dpx", ErrSizeTooSmall, count, drawSize)
	}
	offset := float64(opts.Size-count*dot) / 2

	l := &layout{
		modules: modules,
		count:   count,
		dot:     float64(dot),
		x0:      math.Floor(offset),
		y0:      math.Floor(offset),
	}

	if opts.Image != "" {
		src, err := logo(opts.Image)
		if err != nil {
			return nil, err
		}
		l.placeLogo(src, opts.ImageOptions)
	}
	return l, nil
}

// placeLogo scales the logo to fit ImageSize of the symbol and computes
// which modules it hides.
func (l *layout) placeLogo(src image.Image, imgOpts ImageOptions) {
	side := l.dot * float64(l.count)
	maxSide := side*imgOpts.ImageSize - 2*float64(imgOpts.Margin)
	if maxSide < 1 {
		return
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	scale := maxSide / math.Max(w, h)
	lw, lh := uint(math.Max(1, math.Round(w*scale))), uint(math.Max(1, math.Round(h*scale)))
	l.logo = resize.Resize(lw, lh, src, resize.Lanczos3)

	cx, cy := l.x0+side/2, l.y0+side/2
	x := int(math.Round(cx - float64(lw)/2))
	y := int(math.Round(cy - float64(lh)/2))
	l.logoRect = image.Rect(x, y, x+int(lw), y+int(lh))

	if !imgOpts.HideBackgroundDots {
		return
	}
	m := float64(imgOpts.Margin)
	minC := int(math.Floor((float64(x) - m - l.x0) / l.dot))
	minR := int(math.Floor((float64(y) - m - l.y0) / l.dot))
	maxC := int(math.Ceil((float64(x+int(lw)) + m - l.x0) / l.dot))
	maxR := int(math.Ceil((float64(y+int(lh)) + m - l.y0) / l.dot))
	l.hidden = image.Rect(minC, minR, maxC, maxR)
}

func (l *layout) inFinder(r, c int) bool {
	top := r < finderSize
	left := c < finderSize
	right := c >= l.count-finderSize
	bottom := r >= l.count-finderSize
	return (top && left) || (top && right) || (bottom && left)
}

// on reports whether the data module at (r, c) is drawn.
func (l *layout) on(r, c int) bool {
	if r < 0 || c < 0 || r >= l.count || c >= l.count {
		return false
	}
	if !l.modules[r][c] || l.inFinder(r, c) {
		return false
	}
	return !image.Pt(c, r).In(l.hidden)
}

func (l *layout) finders() []image.Point {
	far := l.count - finderSize
	return []image.Point{{0, 0}, {far, 0}, {0, far}}
}

// pather is the path-building subset shared by *gg.Context and svgPath.
type pather interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

func corner(p pather, x0, y0, cx, cy, x2, y2, r float64, arc bool) {
	if r <= 0 {
		return
	}
	if !arc {
		p.QuadraticTo(cx, cy, x2, y2)
		return
	}
	p.CubicTo(x0+kappa*(cx-x0), y0+kappa*(cy-y0), x2+kappa*(cx-x2), y2+kappa*(cy-y2), x2, y2)
}

// roundedRect adds a rectangle with independent corner radii.
func roundedRect(p pather, x, y, w, h, tl, tr, br, bl float64, arc bool) {
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	corner(p, x+w-tr, y, x+w, y, x+w, y+tr, tr, arc)
	p.LineTo(x+w, y+h-br)
	corner(p, x+w, y+h-br, x+w, y+h, x+w-br, y+h, br, arc)
	p.LineTo(x+bl, y+h)
	corner(p, x+bl, y+h, x, y+h, x, y+h-bl, bl, arc)
	p.LineTo(x, y+tl)
	corner(p, x, y+tl, x, y, x+tl, y, tl, arc)
	p.ClosePath()
}

func circle(p pather, cx, cy, r float64) {
	roundedRect(p, cx-r, cy-r, 2*r, 2*r, r, r, r, r, true)
}

// addDots adds every visible data module in the given style.
func (l *layout) addDots(p pather, style DotType) {
	s := l.dot
	half := s / 2
	for r := 0; r < l.count; r++ {
		for c := 0; c < l.count; c++ {
			if !l.on(r, c) {
				continue
			}
			x := l.x0 + float64(c)*s
			y := l.y0 + float64(r)*s
			top, right, bottom, left := l.on(r-1, c), l.on(r, c+1), l.on(r+1, c), l.on(r, c-1)

			switch style {
			case DotSquare:
				roundedRect(p, x, y, s, s, 0, 0, 0, 0, false)
			case DotDots:
				circle(p, x+half, y+half, half)
			case DotRounded, DotExtraRounded:
				roundedRect(p, x, y, s, s,
					exposed(!top && !left, half),
					exposed(!top && !right, half),
					exposed(!bottom && !right, half),
					exposed(!bottom && !left, half),
					style == DotExtraRounded)
			case DotClassy, DotClassyRounded:
				radius := half
				if style == DotClassyRounded {
					radius = s
				}
				isolated := !top && !right && !bottom && !left
				tl := exposed(isolated || (!top && !left), radius)
				br := exposed(isolated || (!bottom && !right), radius)
				roundedRect(p, x, y, s, s, tl, 0, br, 0, style == DotClassyRounded)
			}
		}
	}
}

func exposed(cond bool, r float64) float64 {
	if cond {
		return r
	}
	return 0
}

// addCornerSquares adds the 7x7 finder rings; they must be filled even-odd.
func (l *layout) addCornerSquares(p pather, style CornerSquareType) {
	s := l.dot
	for _, f := range l.finders() {
		x := l.x0 + float64(f.X)*s
		y := l.y0 + float64(f.Y)*s
		outer, inner := 7*s, 5*s
		switch style {
		case CornerSquareSquare:
			roundedRect(p, x, y, outer, outer, 0, 0, 0, 0, false)
			roundedRect(p, x+s, y+s, inner, inner, 0, 0, 0, 0, false)
		case CornerSquareDot:
			circle(p, x+outer/2, y+outer/2, outer/2)
			circle(p, x+outer/2, y+outer/2, inner/2)
		case CornerSquareExtraRounded:
			ro, ri := 2.5*s, 1.5*s
			roundedRect(p, x, y, outer, outer, ro, ro, ro, ro, true)
			roundedRect(p, x+s, y+s, inner, inner, ri, ri, ri, ri, true)
		}
	}
}

// addCornerDots adds the 3x3 finder centres.
func (l *layout) addCornerDots(p pather, style CornerDotType) {
	s := l.dot
	for _, f := range l.finders() {
		x := l.x0 + float64(f.X+2)*s
		y := l.y0 + float64(f.Y+2)*s
		if style == CornerDotDot {
			circle(p, x+1.5*s, y+1.5*s, 1.5*s)
			continue
		}
		roundedRect(p, x, y, 3*s, 3*s, 0, 0, 0, 0, false)
	}
}

// gradientLine returns the endpoints of a linear gradient across the symbol.
func (l *layout) gradientLine(rotation float64) (x0, y0, x1, y1 float64) {
	side := l.dot * float64(l.count)
	cx, cy := l.x0+side/2, l.y0+side/2
	dx, dy := math.Cos(rotation)*side/2, math.Sin(rotation)*side/2
	return cx - dx, cy - dy, cx + dx, cy + dy
}

func (l *layout) center() (cx, cy, r float64) {
	side := l.dot * float64(l.count)
	return l.x0 + side/2, l.y0 + side/2, side / 2
}

// loadImage decodes a data URI or loads a file from disk.
func loadImage(src string) (image.Image, error) {
	if !strings.HasPrefix(src, "data:") {
		img, err := gg.LoadImage(src)
		if err != nil {
			return nil, fmt.Errorf("qr: load image: %w", err)
		}
		return img, nil
	}
	comma := strings.IndexByte(src, ',')
	if comma < 0 || !strings.HasSuffix(src[:comma], ";base64") {
		return nil, fmt.Errorf("qr: unsupported image data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(src[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("qr: decode image data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("qr: decode image: %w", err)
	}
	return img, nil
}

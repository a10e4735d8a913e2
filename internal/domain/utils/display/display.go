// Package display holds the preview surface. Light edits (outer radius,
// preview size) are applied here as display transforms on the last frame
// the engine produced, without touching the engine.
package display

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/Badsnus/qr-studio/internal/domain/utils/clip"
)

type Preview struct {
	mu     sync.RWMutex
	frame  image.Image
	size   int
	radius int
}

func NewPreview(size int) *Preview {
	return &Preview{size: size}
}

// Replace swaps the shown frame in one step.
func (p *Preview) Replace(img image.Image) {
	p.mu.Lock()
	p.frame = img
	p.mu.Unlock()
}

// SetDisplay sets the display size and outer corner radius, both in pixels
// of the display.
func (p *Preview) SetDisplay(size, radius int) {
	p.mu.Lock()
	p.size = size
	p.radius = radius
	p.mu.Unlock()
}

// Clear empties the surface.
func (p *Preview) Clear() {
	p.Replace(nil)
}

// Frame returns the current frame with display transforms applied, or
// false when nothing was rendered yet.
func (p *Preview) Frame() (image.Image, bool) {
	p.mu.RLock()
	frame, size, radius := p.frame, p.size, p.radius
	p.mu.RUnlock()

	if frame == nil {
		return nil, false
	}
	if size <= 0 {
		size = frame.Bounds().Dx()
	}

	src := frame
	if b := frame.Bounds(); b.Dx() != size || b.Dy() != size {
		scaled := image.NewRGBA(image.Rect(0, 0, size, size))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), frame, b, xdraw.Over, nil)
		src = scaled
	}
	return clip.Rounded(src, size, float64(radius)), true
}

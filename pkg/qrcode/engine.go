package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Surface displays the engine output. Replace must swap the shown image in
// one step so viewers never observe an empty surface.
type Surface interface {
	Replace(img image.Image)
}

// Engine renders a styled QR code from Options.
type Engine struct {
	mu       sync.Mutex
	opts     Options
	layout   *layout
	raster   image.Image
	surfaces []Surface
	logos    logoCache
}

// New constructs an engine and lays out the symbol.
func New(opts Options) (*Engine, error) {
	e := &Engine{opts: opts}
	l, err := e.build(opts)
	if err != nil {
		return nil, err
	}
	e.layout = l
	return e, nil
}

func (e *Engine) build(opts Options) (*layout, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return newLayout(opts, e.logos.get)
}

// Update re-renders in place. On error the previous output stays untouched.
func (e *Engine) Update(opts Options) error {
	l, err := e.build(opts)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = opts
	e.layout = l
	e.raster = nil
	if len(e.surfaces) == 0 {
		return nil
	}
	img := e.rasterLocked()
	for _, s := range e.surfaces {
		s.Replace(img)
	}
	return nil
}

// AppendTo attaches a surface and shows the current output on it.
func (e *Engine) AppendTo(s Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surfaces = append(e.surfaces, s)
	s.Replace(e.rasterLocked())
}

// Options returns the options of the last successful render.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// RawData encodes the current output as PNG or SVG.
func (e *Engine) RawData(format Format) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var buf bytes.Buffer
	switch format {
	case PNG:
		if err := png.Encode(&buf, e.rasterLocked()); err != nil {
			return nil, fmt.Errorf("qr: encode png: %w", err)
		}
	case SVG:
		writeSVG(&buf, e.opts, e.layout)
	default:
		return nil, fmt.Errorf("qr: unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

func (e *Engine) rasterLocked() image.Image {
	if e.raster == nil {
		e.raster = drawRaster(e.opts, e.layout)
	}
	return e.raster
}

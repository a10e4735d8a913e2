package service

import (
	"errors"
	"image"
	"sync"

	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

type fakeEngine struct {
	mu        sync.Mutex
	opts      []qr.Options
	surfaces  []qr.Surface
	raw       map[qr.Format][]byte
	updateErr error
}

func (f *fakeEngine) Update(opts qr.Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.opts = append(f.opts, opts)
	for _, s := range f.surfaces {
		s.Replace(image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size)))
	}
	return nil
}

func (f *fakeEngine) AppendTo(s qr.Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.surfaces = append(f.surfaces, s)
	size := f.opts[len(f.opts)-1].Size
	s.Replace(image.NewRGBA(image.Rect(0, 0, size, size)))
}

func (f *fakeEngine) RawData(format qr.Format) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw[format], nil
}

func (f *fakeEngine) options() []qr.Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]qr.Options(nil), f.opts...)
}

type fakeFactory struct {
	mu      sync.Mutex
	engines []*fakeEngine
	raw     map[qr.Format][]byte
	err     error
}

func (f *fakeFactory) New(opts qr.Options) (Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e := &fakeEngine{opts: []qr.Options{opts}, raw: f.raw}
	f.engines = append(f.engines, e)
	return e, nil
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.engines)
}

func (f *fakeFactory) engine(i int) *fakeEngine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.engines[i]
}

type displayCall struct {
	size, radius int
}

type fakeSurface struct {
	mu       sync.Mutex
	replaced int
	last     image.Image
	display  []displayCall
}

func (s *fakeSurface) Replace(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced++
	s.last = img
}

func (s *fakeSurface) SetDisplay(size, radius int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = append(s.display, displayCall{size, radius})
}

func (s *fakeSurface) lastDisplay() displayCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display[len(s.display)-1]
}

var errBoom = errors.New("boom")

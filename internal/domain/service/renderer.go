package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/debounce"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

// Engine is the rendering engine contract.
type Engine interface {
	Update(opts qr.Options) error
	AppendTo(s qr.Surface)
	RawData(format qr.Format) ([]byte, error)
}

// EngineFactory constructs an engine from its first options.
type EngineFactory func(opts qr.Options) (Engine, error)

// NewEngine is the default factory backed by pkg/qrcode.
func NewEngine(opts qr.Options) (Engine, error) {
	e, err := qr.New(opts)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DisplaySurface shows engine output and applies light edits on top of it.
type DisplaySurface interface {
	qr.Surface
	SetDisplay(size, radius int)
}

// Renderer drives one engine bound to one display surface.
type Renderer struct {
	surface   DisplaySurface
	scheduler *debounce.Scheduler
	factory   EngineFactory
	logger    *types.Logger
	onError   func(error)

	mu         sync.Mutex
	engine     Engine
	snapshot   *entity.Snapshot
	generation uint64
	applied    uint64
	closed     bool
}

func NewRenderer(surface DisplaySurface, factory EngineFactory, window time.Duration, logger *types.Logger) *Renderer {
	if factory == nil {
		factory = NewEngine
	}
	return &Renderer{
		surface:   surface,
		scheduler: debounce.New(window),
		factory:   factory,
		logger:    logger,
	}
}

// OnError registers a callback for failures of debounced renders, which
// have no caller to return to.
func (r *Renderer) OnError(fn func(error)) {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
}

// Apply is the entry point for edits. Light changes are applied through
// the display transform and drop any pending heavy job; heavy changes are
// debounced into a render at preview size.
func (r *Renderer) Apply(cfg entity.Configuration, logo *entity.Logo, payload string) Change {
	cfg = cfg.Resolve(logo != nil)
	r.surface.SetDisplay(cfg.PreviewSize, cfg.ScaledBorderRadius(cfg.PreviewSize))

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ChangeLight
	}
	change := Classify(r.snapshot, cfg, logo, payload)
	if change == ChangeLight {
		r.mu.Unlock()
		r.scheduler.Cancel()
		return change
	}
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	r.scheduler.Schedule(func() {
		if _, err := r.render(context.Background(), gen, cfg, logo, payload, cfg.PreviewSize); err != nil {
			r.logger.Errorf("(renderer) debounced render failed: %v", err)
			r.mu.Lock()
			fn := r.onError
			r.mu.Unlock()
			if fn != nil {
				fn(err)
			}
		}
	})
	return change
}

// Render performs a heavy render at targetSize right away. The first call
// constructs the engine and attaches it to the surface; later calls update
// it in place. On error the surface keeps its previous output.
func (r *Renderer) Render(ctx context.Context, cfg entity.Configuration, logo *entity.Logo, payload string, targetSize int) (Engine, error) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.mu.Unlock()
	return r.render(ctx, gen, cfg, logo, payload, targetSize)
}

func (r *Renderer) render(ctx context.Context, gen uint64, cfg entity.Configuration, logo *entity.Logo, payload string, targetSize int) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg = cfg.Resolve(logo != nil)
	payload = previewPayload(payload)

	opts, err := BuildOptions(cfg, logo, payload, targetSize)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, errorz.ErrRendererClosed
	}
	if gen < r.applied {
		r.logger.Debugf("(renderer) generation %d superseded by %d", gen, r.applied)
		return r.engine, nil
	}

	if r.engine == nil {
		r.logger.Debugf("(renderer) constructing rendering engine")
		engine, err := r.factory(opts)
		if err != nil {
			return nil, fmt.Errorf("construct engine: %w", err)
		}
		engine.AppendTo(r.surface)
		r.engine = engine
	} else if err := r.engine.Update(opts); err != nil {
		return nil, fmt.Errorf("update engine: %w", err)
	}

	r.applied = gen
	r.snapshot = entity.NewSnapshot(cfg, logo, payload)
	return r.engine, nil
}

// Snapshot returns the last applied snapshot or nil.
func (r *Renderer) Snapshot() *entity.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Close cancels any pending render, releases the engine and empties the surface.
func (r *Renderer) Close() {
	r.scheduler.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.engine = nil
	r.snapshot = nil
	r.surface.Replace(nil)
}

package driftgrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size in logical pixels.
	// Zero values default to 960x600.
	Width, Height int
	// ShowFPS draws a frame-rate overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs captured by script steps.
	// Defaults to "screenshots".
	ScreenshotDir string
	// Script optionally drives the session with injected input.
	Script *ScriptRunner
}

// Run opens a window and drives the engine and renderer with ebiten's game
// loop, feeding polled mouse, touch, and wheel input to the engine. It
// blocks until the window closes.
func Run(e *Engine, r *Renderer, cfg RunConfig) error {
	if e == nil || r == nil {
		return fmt.Errorf("driftgrid: Run needs an engine and a renderer")
	}
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	h := &host{engine: e, renderer: r, cfg: cfg}
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("driftgrid: run: %w", err)
	}
	return nil
}

// host adapts the engine and renderer to ebiten's Game interface.
type host struct {
	engine   *Engine
	renderer *Renderer
	cfg      RunConfig

	mouseDown bool

	touchIDs    []ebiten.TouchID
	touchID     ebiten.TouchID
	touchActive bool
	lastTouch   Vec2

	fps   fpsOverlay
	shots []string
}

func (h *host) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if h.cfg.Script != nil {
		h.cfg.Script.step(h)
	}
	h.pollTouch()
	h.pollMouse()
	h.pollWheel()
	h.engine.Step(dt)
	h.renderer.Update(dt)
	if h.cfg.ShowFPS {
		h.fps.update(dt)
	}
	return nil
}

// pollMouse translates left-button state transitions into pointer events.
// Hover moves are forwarded too so parallax tracks the cursor.
func (h *host) pollMouse() {
	if h.touchActive {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case down && !h.mouseDown:
		h.engine.PointerDown(x, y)
	case down:
		h.engine.PointerMove(x, y)
	case h.mouseDown:
		h.engine.PointerUp(x, y)
	default:
		h.engine.PointerMove(x, y)
	}
	h.mouseDown = down
}

// pollTouch tracks the first touch as the pointer. TouchPosition reports
// (0, 0) once a touch ends, so the gesture closes at the last seen position.
func (h *host) pollTouch() {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	if !h.touchActive {
		if len(h.touchIDs) == 0 {
			return
		}
		h.touchID = h.touchIDs[0]
		h.touchActive = true
		tx, ty := ebiten.TouchPosition(h.touchID)
		h.lastTouch = Vec2{float64(tx), float64(ty)}
		h.engine.PointerDown(h.lastTouch.X, h.lastTouch.Y)
		return
	}
	for _, id := range h.touchIDs {
		if id == h.touchID {
			tx, ty := ebiten.TouchPosition(h.touchID)
			h.lastTouch = Vec2{float64(tx), float64(ty)}
			h.engine.PointerMove(h.lastTouch.X, h.lastTouch.Y)
			return
		}
	}
	h.engine.PointerUp(h.lastTouch.X, h.lastTouch.Y)
	h.touchActive = false
}

func (h *host) pollWheel() {
	dx, dy := ebiten.Wheel()
	if dx != 0 || dy != 0 {
		h.engine.Wheel(dx, dy)
	}
}

func (h *host) Draw(screen *ebiten.Image) {
	h.renderer.Draw(screen)
	if h.cfg.ShowFPS {
		h.fps.draw(screen)
	}
	h.flushScreenshots(screen)
}

// Layout forwards the outside size to the engine, which debounces the pool
// rebuild itself, and renders 1:1.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.engine.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

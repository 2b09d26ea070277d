package driftgrid

// injectedPointer represents a single queued synthetic pointer event.
// Viewport coordinates are used, matching what a host feeds the real
// pointer handlers.
type injectedPointer struct {
	x, y float64
	kind injectKind
}

type injectKind uint8

const (
	injectPress injectKind = iota
	injectMove
	injectRelease
)

// InjectPress queues a pointer press at the given viewport coordinates.
// The event is consumed on the next Step, identically to real input.
func (e *Engine) InjectPress(x, y float64) {
	e.inject = append(e.inject, injectedPointer{x: x, y: y, kind: injectPress})
}

// InjectMove queues a pointer move at the given viewport coordinates. Use
// this between InjectPress and InjectRelease to simulate a drag; outside a
// press it steers hover parallax.
func (e *Engine) InjectMove(x, y float64) {
	e.inject = append(e.inject, injectedPointer{x: x, y: y, kind: injectMove})
}

// InjectRelease queues a pointer release at the given viewport coordinates.
func (e *Engine) InjectRelease(x, y float64) {
	e.inject = append(e.inject, injectedPointer{x: x, y: y, kind: injectRelease})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same coordinates. Consumes two frames, which stays inside the drag
// dead zone and so triggers selection.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames
// is 2 (press + release).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		e.InjectMove(x, y)
	}
	e.InjectRelease(toX, toY)
}

// InjectFling queues a fast four-frame drag whose release velocity is high
// enough to coast. Release velocity is estimated from per-frame target
// deltas, so the gesture needs move frames between press and release; four
// frames over a few hundred pixels releases well above the fling threshold.
func (e *Engine) InjectFling(fromX, fromY, toX, toY float64) {
	e.InjectDrag(fromX, fromY, toX, toY, 4)
}

// drainInjected pops one event from the queue and feeds it through the
// pointer handlers. One event per frame keeps injected gestures on the same
// cadence as real ones.
func (e *Engine) drainInjected() {
	if len(e.inject) == 0 {
		return
	}
	evt := e.inject[0]
	copy(e.inject, e.inject[1:])
	e.inject = e.inject[:len(e.inject)-1]

	switch evt.kind {
	case injectPress:
		e.PointerDown(evt.x, evt.y)
	case injectMove:
		e.PointerMove(evt.x, evt.y)
	case injectRelease:
		e.PointerUp(evt.x, evt.y)
	}
}

package driftgrid

import (
	"log"
	"math"
)

// Engine is the top-level object that owns the tile pool, interaction state,
// and animation fields, and drives them from a single per-frame Step. Hosts
// feed it pointer input and a viewport size; it pushes tile state out through
// the TileSink it was built with.
type Engine struct {
	cfg     Config
	catalog *Catalog
	sink    TileSink
	video   VideoSink // non-nil when the sink can play video
	store   EventStore
	debug   bool

	// Components
	field  *TileField
	pan    *PanController
	ripple *RippleField
	intro  *IntroSequencer
	videos *VideoScheduler

	// OnSelect, if set, is called when a tap lands on a visible tile. The
	// callback runs inside the frame; a panic from it is logged and absorbed.
	OnSelect func(SelectionEvent)

	viewW, viewH float64
	built        bool

	// Pending viewport change. resizeWait counts down to the pool rebuild;
	// bindPending defers the full sink rebind to the frame after it.
	pendingW, pendingH float64
	resizeWait         float64
	bindPending        bool

	introDone  bool
	detailOpen bool

	// Tap detection
	pointerDown bool
	dragged     bool
	downPos     Vec2
	downSlot    int

	cands  []videoCandidate // reused each frame
	inject []injectedPointer

	clock float64
	stats engineStats
}

// New creates an engine over the given catalog and sink. A nil sink is
// replaced with NopSink and a nil catalog with an empty one, so a headless
// engine still runs. The engine is inert until SetViewport sizes it.
func New(catalog *Catalog, sink TileSink, cfg Config) *Engine {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if sink == nil {
		sink = NopSink{}
	}
	cfg.normalize()
	e := &Engine{
		cfg:      cfg,
		catalog:  catalog,
		sink:     sink,
		downSlot: -1,
	}
	e.video, _ = sink.(VideoSink)
	e.field = newTileField(&e.cfg, catalog)
	e.pan = newPanController(&e.cfg)
	e.ripple = newRippleField(&e.cfg)
	e.intro = newIntroSequencer(&e.cfg)
	e.videos = newVideoScheduler(&e.cfg)
	return e
}

// Config returns the normalized tuning the engine runs with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the media catalog the engine draws from.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// SetEventStore sets the optional event bridge. Pass nil to detach.
func (e *Engine) SetEventStore(store EventStore) {
	e.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, the engine logs
// a periodic frame summary and validates pool invariants every frame.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Engine debug flag so that catalog
// and field helpers without an Engine reference can honor it. With multiple
// engines the flag reflects whichever called SetDebugMode last.
var globalDebug bool

// --- Viewport and rebuild ---

// SetViewport tells the engine the host viewport size. The first call builds
// the pool immediately; later changes are debounced by ResizeDebounce and
// then rebuilt across two frames, so a live window resize does not thrash
// the pool. A call that restores the current size cancels a pending rebuild.
func (e *Engine) SetViewport(w, h float64) {
	if !e.built {
		e.buildPool(w, h)
		return
	}
	if w == e.viewW && h == e.viewH {
		e.resizeWait = 0
		return
	}
	e.pendingW, e.pendingH = w, h
	if e.cfg.ResizeDebounce <= 0 {
		e.buildPool(w, h)
		return
	}
	e.resizeWait = e.cfg.ResizeDebounce
}

// Viewport returns the viewport size the pool is currently built for.
func (e *Engine) Viewport() (w, h float64) {
	return e.viewW, e.viewH
}

// buildPool is the first rebuild phase: size the pool, seed coordinates and
// media, and reset interaction state. Sink binding is deferred to the next
// frame's bind pass.
func (e *Engine) buildPool(w, h float64) {
	if e.video != nil {
		e.videos.StopAll(e.video)
	}
	e.viewW, e.viewH = w, h
	e.resizeWait = 0
	e.cancelPointer()
	e.pan.SetViewport(w, h)
	e.pan.Reset()
	e.field.Build(w, h)
	e.field.Advance(e.pan.View())
	// Seed final positions so hit testing works on the frame between the
	// two rebuild phases; the bind pass overwrites them.
	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		s.X, s.Y = s.BaseX, s.BaseY
		s.Scale, s.Opacity = 1, 1
	}
	n := e.field.Len()
	e.ripple.Resize(n)
	e.videos.Resize(n)
	if !e.introDone {
		e.intro.Prepare(e.field.Slots(), w, h)
	}
	e.bindPending = true
	e.built = true
}

// bindAll is the second rebuild phase: push every slot's media binding and
// visual state to the sink in one pass.
func (e *Engine) bindAll() {
	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		dx, dy, scale, alpha := 0.0, 0.0, 1.0, 1.0
		if !e.introDone {
			dx, dy, scale, alpha = e.intro.ValuesFor(i)
		}
		s.X = s.BaseX + dx
		s.Y = s.BaseY + dy
		s.Scale = scale
		s.Opacity = alpha
		if s.MediaIndex >= 0 {
			e.sink.BindMedia(i, e.catalog.Item(s.MediaIndex))
		}
		e.sink.SetVisible(i, s.Visible)
		e.sink.SetPosition(i, s.X, s.Y)
		e.sink.SetScale(i, scale)
		e.sink.SetOpacity(i, alpha)
	}
	e.stats.rebinds++
	e.emit(FieldEvent{Kind: EventRebuild})
}

// --- Pointer input ---

// acceptInput reports whether pointer and wheel input is currently honored.
// Input is ignored until the pool exists and the entrance has completed, and
// while the detail view is open.
func (e *Engine) acceptInput() bool {
	return e.built && e.introDone && !e.detailOpen
}

func (e *Engine) cancelPointer() {
	e.pointerDown = false
	e.dragged = false
	e.downSlot = -1
}

// PointerDown begins pointer interaction at a viewport position. The slot
// under the pointer is remembered for tap detection and the ripple origin is
// anchored to the grid coordinate under the pointer.
func (e *Engine) PointerDown(x, y float64) {
	if !e.acceptInput() {
		return
	}
	e.pointerDown = true
	e.dragged = false
	e.downPos = Vec2{x, y}
	e.downSlot = e.field.SlotAt(x, y)
	e.pan.PointerDown(x, y)
	view := e.pan.View()
	e.ripple.SetOrigin(e.field.Slots(), e.field.coordAt(x, y, view), view)
}

// PointerMove feeds a pointer position, dragging or hovering. Movement past
// the dead zone commits the gesture to a drag, which suppresses selection on
// release.
func (e *Engine) PointerMove(x, y float64) {
	if !e.acceptInput() {
		return
	}
	e.pan.PointerMove(x, y)
	if e.pointerDown && !e.dragged {
		if (Vec2{x, y}).Sub(e.downPos).Len() >= e.cfg.DragDeadZone {
			e.dragged = true
		}
	}
}

// PointerUp ends the gesture. A release inside the dead zone on the slot the
// gesture started over is a tap and triggers selection; otherwise the pan
// controller decides whether the drag flings.
func (e *Engine) PointerUp(x, y float64) {
	if !e.acceptInput() || !e.pointerDown {
		return
	}
	e.pan.PointerUp(x, y)
	e.ripple.Release(e.field.Slots())
	if !e.dragged {
		e.selectSlot(e.downSlot)
	}
	e.cancelPointer()
}

// PointerGone reports that the pointer left the viewport or was cancelled.
// An active drag ends without fling or selection.
func (e *Engine) PointerGone() {
	if e.pointerDown {
		e.ripple.Release(e.field.Slots())
	}
	e.pan.PointerGone()
	e.cancelPointer()
}

// Wheel scrolls the grid. Since there is no drag gesture to anchor a wave,
// an idle ripple is seeded from the viewport center and released straight
// into its settle phase.
func (e *Engine) Wheel(dx, dy float64) {
	if !e.acceptInput() || (dx == 0 && dy == 0) {
		return
	}
	if e.ripple.Phase() == RippleIdle {
		view := e.pan.View()
		center := e.field.coordAt(e.viewW/2, e.viewH/2, view)
		e.ripple.SetOrigin(e.field.Slots(), center, view)
		e.ripple.Release(e.field.Slots())
	}
	e.pan.Wheel(dx, dy)
}

// selectSlot fires the selection path for a tapped slot: a glide that brings
// the tile's resting center to the configured anchor, the OnSelect callback,
// and a select event.
func (e *Engine) selectSlot(i int) {
	if i < 0 || i >= e.field.Len() {
		return
	}
	s := e.field.Slot(i)
	if !s.Visible || s.MediaIndex < 0 {
		return
	}
	item := e.catalog.Item(s.MediaIndex)
	cell := e.cfg.CellSize
	anchor := Vec2{e.cfg.SelectAnchor.X * e.viewW, e.cfg.SelectAnchor.Y * e.viewH}
	center := Vec2{s.BaseX + cell/2, s.BaseY + cell/2}
	// The goal is stated against the current view rather than the target:
	// base positions bake the view in, so this lands the tile center on the
	// anchor even when the tap arrives mid-motion.
	v := e.pan.View()
	e.pan.GlideTo(v.X+anchor.X-center.X, v.Y+anchor.Y-center.Y)

	e.stats.selects++
	e.fireSelect(SelectionEvent{Slot: i, Coord: s.Coord, Item: item, X: s.X, Y: s.Y})
	e.emit(FieldEvent{Kind: EventSelect, Slot: i, Coord: s.Coord, Media: item})
}

// --- Host signals ---

// SetIntroReady opens the entrance gate. Until this is called the grid holds
// invisible at the entrance's first frame.
func (e *Engine) SetIntroReady() {
	e.intro.SetReady()
}

// IntroComplete reports whether the entrance has finished and the grid is
// interactive.
func (e *Engine) IntroComplete() bool {
	return e.introDone
}

// SkipIntro jumps the entrance to its final state. Tiles snap to rest on the
// next Step.
func (e *Engine) SkipIntro() {
	if e.introDone {
		return
	}
	e.intro.SetReady()
	e.intro.Skip()
	e.introDone = true
	e.bindPending = true
	e.emit(FieldEvent{Kind: EventIntroDone})
}

// SetDetailOpen toggles the detail view flag. While open, pointer and wheel
// input is ignored and video activation pauses; an in-flight glide still
// completes so the selected tile can land at its anchor.
func (e *Engine) SetDetailOpen(open bool) {
	if open == e.detailOpen {
		return
	}
	e.detailOpen = open
	if open && e.pointerDown {
		e.ripple.Release(e.field.Slots())
		e.pan.PointerGone()
		e.cancelPointer()
	}
}

// DetailOpen reports whether the detail view flag is set.
func (e *Engine) DetailOpen() bool {
	return e.detailOpen
}

// NotifyMediaFailed marks a catalog entry unusable after a host-side load
// failure. Every slot currently showing it is hidden; the slots keep moving
// and pick fresh media the next time they wrap.
func (e *Engine) NotifyMediaFailed(id MediaID) {
	idx := e.catalog.IndexOf(id)
	if idx < 0 {
		return
	}
	e.catalog.MarkUnusable(id)
	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		if s.MediaIndex != idx || !s.Visible {
			continue
		}
		s.Visible = false
		e.sink.SetVisible(i, false)
		e.videos.Reset(i, e.video)
	}
}

// Shutdown stops any playing videos. The engine stays usable; a later
// SetViewport rebuilds the pool.
func (e *Engine) Shutdown() {
	if e.video != nil {
		e.videos.StopAll(e.video)
	}
}

// --- Frame loop ---

// Step advances the engine by dt seconds. Hosts call this once per frame.
// A panic out of a sink, callback, or store is logged and absorbed here, so
// one bad frame never takes down the host loop; the frame's remaining work
// is dropped and the next frame proceeds from consistent state.
func (e *Engine) Step(dt float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("driftgrid: frame dropped after panic: %v", r)
		}
	}()
	if dt <= 0 {
		return
	}
	e.clock += dt
	e.stats.frames++
	e.drainInjected()

	if e.resizeWait > 0 {
		e.resizeWait -= dt
		if e.resizeWait <= 0 {
			e.buildPool(e.pendingW, e.pendingH)
			return
		}
	}
	if !e.built || e.field.Len() == 0 {
		return
	}
	if e.bindPending {
		e.bindAll()
		e.bindPending = false
		return
	}

	if !e.introDone {
		e.stepIntro(dt)
	} else {
		e.stepSteady(dt)
	}

	if e.debug {
		debugCheckField(e.field)
		if e.clock-e.stats.lastLog >= debugLogInterval {
			e.debugLog()
			e.stats.lastLog = e.clock
		}
	}
}

// stepIntro advances the entrance springs and pushes the animated state.
// Before the ready gate opens nothing moves and nothing is written; the bind
// pass already placed every tile at the entrance's first frame.
func (e *Engine) stepIntro(dt float64) {
	if !e.intro.Ready() {
		return
	}
	finished := e.intro.Step(dt)
	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		dx, dy, scale, alpha := e.intro.ValuesFor(i)
		s.X = s.BaseX + dx
		s.Y = s.BaseY + dy
		s.Scale = scale
		s.Opacity = alpha
		e.sink.SetPosition(i, s.X, s.Y)
		e.sink.SetScale(i, scale)
		e.sink.SetOpacity(i, alpha)
	}
	if finished {
		e.introDone = true
		e.emit(FieldEvent{Kind: EventIntroDone})
	}
}

// stepSteady runs the interactive frame: pan, advance and recycle the pool,
// ripple, position writes, then video scheduling.
func (e *Engine) stepSteady(dt float64) {
	e.pan.Update(dt)
	view := e.pan.View()

	for _, w := range e.field.Advance(view) {
		s := e.field.Slot(w.Slot)
		e.ripple.ReseedSlot(w.Slot, w.To, view)
		e.videos.Reset(w.Slot, e.video)
		var item MediaItem
		if w.Media >= 0 {
			item = e.catalog.Item(w.Media)
			e.sink.BindMedia(w.Slot, item)
		}
		e.sink.SetVisible(w.Slot, s.Visible)
		e.stats.wraps++
		e.emit(FieldEvent{Kind: EventWrap, Slot: w.Slot, Coord: w.To, Media: item})
	}

	moving := e.pan.Moving()
	if e.ripple.Update(dt, view, moving) {
		e.stats.settles++
		e.emit(FieldEvent{Kind: EventSettle})
	}

	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		off := e.ripple.Offset(i)
		s.X = s.BaseX + off.X
		s.Y = s.BaseY + off.Y
		e.sink.SetPosition(i, s.X, s.Y)
	}

	if e.video != nil && e.cfg.MaxActiveVideos > 0 {
		e.videos.Update(dt, moving, e.detailOpen, e.videoCandidates(), e.video)
	}
}

// videoCandidates collects visible video tiles that intersect the viewport,
// with their distance from the viewport center. The slice is reused.
func (e *Engine) videoCandidates() []videoCandidate {
	e.cands = e.cands[:0]
	cell := e.cfg.CellSize
	cx, cy := e.viewW/2, e.viewH/2
	for i := 0; i < e.field.Len(); i++ {
		s := e.field.Slot(i)
		if !s.Visible || s.MediaIndex < 0 {
			continue
		}
		if e.catalog.Item(s.MediaIndex).Kind != MediaVideo {
			continue
		}
		if s.X+cell <= 0 || s.X >= e.viewW || s.Y+cell <= 0 || s.Y >= e.viewH {
			continue
		}
		dx := s.X + cell/2 - cx
		dy := s.Y + cell/2 - cy
		e.cands = append(e.cands, videoCandidate{slot: i, dist: math.Hypot(dx, dy)})
	}
	return e.cands
}

// --- Event delivery ---

// emit forwards an event to the store, absorbing any panic so event handling
// can never break the frame loop.
func (e *Engine) emit(ev FieldEvent) {
	if e.store == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("driftgrid: event store panic absorbed: %v", r)
		}
	}()
	e.store.EmitEvent(ev)
}

// fireSelect invokes the selection callback with the same panic absorption
// as emit.
func (e *Engine) fireSelect(ev SelectionEvent) {
	if e.OnSelect == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("driftgrid: selection callback panic absorbed: %v", r)
		}
	}()
	e.OnSelect(ev)
}

// --- Read access ---

// View returns the smoothed view offset tiles are positioned with.
func (e *Engine) View() Vec2 {
	return e.pan.View()
}

// Speed returns the current pan speed in pixels per second.
func (e *Engine) Speed() float64 {
	return e.pan.Speed()
}

// Moving reports whether the view is still chasing its target.
func (e *Engine) Moving() bool {
	return e.pan.Moving()
}

// Len returns the pool size.
func (e *Engine) Len() int {
	return e.field.Len()
}

// Slot returns a copy of slot i's current state.
func (e *Engine) Slot(i int) TileSlot {
	return *e.field.Slot(i)
}

// Slots returns the live pool for rendering. Callers must treat it as
// read-only.
func (e *Engine) Slots() []TileSlot {
	return e.field.Slots()
}

// TileAt returns the slot under a viewport position using final rendered
// positions, or ok=false when the point falls between tiles.
func (e *Engine) TileAt(x, y float64) (TileSlot, bool) {
	i := e.field.SlotAt(x, y)
	if i < 0 {
		return TileSlot{}, false
	}
	return *e.field.Slot(i), true
}

// VideoState returns the activation state of slot i.
func (e *Engine) VideoState(i int) VideoState {
	return e.videos.State(i)
}

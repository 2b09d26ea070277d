package driftgrid

// TileSink receives per-slot visual state from the engine. Slots are
// addressed by pool index, which is stable between rebuilds; after a
// rebuild the engine re-binds every slot from scratch. Implementations are
// plain setters and must not call back into the engine.
type TileSink interface {
	// SetPosition places the slot's top-left corner in viewport pixels.
	SetPosition(slot int, x, y float64)
	// SetScale sets the slot's scale factor around its center.
	SetScale(slot int, scale float64)
	// SetOpacity sets the slot's opacity in [0, 1].
	SetOpacity(slot int, opacity float64)
	// SetVisible shows or hides the slot entirely.
	SetVisible(slot int, visible bool)
	// BindMedia points the slot's visual at a new media item. Called on
	// initial population and whenever the slot wraps.
	BindMedia(slot int, item MediaItem)
}

// VideoSink is an optional capability for sinks that can run video
// playback. The engine type-asserts for it; sinks without it simply never
// receive playback commands.
type VideoSink interface {
	StartVideo(slot int)
	StopVideo(slot int)
}

// NopSink discards everything. Useful for benchmarks and headless runs.
type NopSink struct{}

func (NopSink) SetPosition(int, float64, float64) {}
func (NopSink) SetScale(int, float64)             {}
func (NopSink) SetOpacity(int, float64)           {}
func (NopSink) SetVisible(int, bool)              {}
func (NopSink) BindMedia(int, MediaItem)          {}

// SinkCall is one recorded sink invocation.
type SinkCall struct {
	Op    string // "position", "scale", "opacity", "visible", "bind", "start", "stop"
	Slot  int
	X, Y  float64
	Value float64
	On    bool
	Item  MediaItem
}

// RecordingSink implements TileSink and VideoSink, keeping both a full call
// log and the latest state per slot. It backs the engine's tests and is
// exported so hosts can assert against engine output in their own.
type RecordingSink struct {
	Calls []SinkCall

	pos     []Vec2
	scale   []float64
	opacity []float64
	visible []bool
	bound   []MediaItem
	hasItem []bool
	playing []bool
}

// NewRecordingSink returns an empty recorder.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (r *RecordingSink) grow(slot int) {
	for len(r.pos) <= slot {
		r.pos = append(r.pos, Vec2{})
		r.scale = append(r.scale, 1)
		r.opacity = append(r.opacity, 1)
		r.visible = append(r.visible, false)
		r.bound = append(r.bound, MediaItem{})
		r.hasItem = append(r.hasItem, false)
		r.playing = append(r.playing, false)
	}
}

// SetPosition implements TileSink.
func (r *RecordingSink) SetPosition(slot int, x, y float64) {
	r.grow(slot)
	r.pos[slot] = Vec2{x, y}
	r.Calls = append(r.Calls, SinkCall{Op: "position", Slot: slot, X: x, Y: y})
}

// SetScale implements TileSink.
func (r *RecordingSink) SetScale(slot int, scale float64) {
	r.grow(slot)
	r.scale[slot] = scale
	r.Calls = append(r.Calls, SinkCall{Op: "scale", Slot: slot, Value: scale})
}

// SetOpacity implements TileSink.
func (r *RecordingSink) SetOpacity(slot int, opacity float64) {
	r.grow(slot)
	r.opacity[slot] = opacity
	r.Calls = append(r.Calls, SinkCall{Op: "opacity", Slot: slot, Value: opacity})
}

// SetVisible implements TileSink.
func (r *RecordingSink) SetVisible(slot int, visible bool) {
	r.grow(slot)
	r.visible[slot] = visible
	r.Calls = append(r.Calls, SinkCall{Op: "visible", Slot: slot, On: visible})
}

// BindMedia implements TileSink.
func (r *RecordingSink) BindMedia(slot int, item MediaItem) {
	r.grow(slot)
	r.bound[slot] = item
	r.hasItem[slot] = true
	r.Calls = append(r.Calls, SinkCall{Op: "bind", Slot: slot, Item: item})
}

// StartVideo implements VideoSink.
func (r *RecordingSink) StartVideo(slot int) {
	r.grow(slot)
	r.playing[slot] = true
	r.Calls = append(r.Calls, SinkCall{Op: "start", Slot: slot})
}

// StopVideo implements VideoSink.
func (r *RecordingSink) StopVideo(slot int) {
	r.grow(slot)
	r.playing[slot] = false
	r.Calls = append(r.Calls, SinkCall{Op: "stop", Slot: slot})
}

// Position returns the latest position for a slot.
func (r *RecordingSink) Position(slot int) Vec2 {
	r.grow(slot)
	return r.pos[slot]
}

// ScaleOf returns the latest scale for a slot.
func (r *RecordingSink) ScaleOf(slot int) float64 {
	r.grow(slot)
	return r.scale[slot]
}

// OpacityOf returns the latest opacity for a slot.
func (r *RecordingSink) OpacityOf(slot int) float64 {
	r.grow(slot)
	return r.opacity[slot]
}

// VisibleOf returns the latest visibility for a slot.
func (r *RecordingSink) VisibleOf(slot int) bool {
	r.grow(slot)
	return r.visible[slot]
}

// Bound returns the latest bound item for a slot and whether one was set.
func (r *RecordingSink) Bound(slot int) (MediaItem, bool) {
	r.grow(slot)
	return r.bound[slot], r.hasItem[slot]
}

// Playing reports whether the slot has an unmatched StartVideo.
func (r *RecordingSink) Playing(slot int) bool {
	r.grow(slot)
	return r.playing[slot]
}

// PlayingCount returns how many slots are currently playing.
func (r *RecordingSink) PlayingCount() int {
	n := 0
	for _, p := range r.playing {
		if p {
			n++
		}
	}
	return n
}

// CountOp returns how many recorded calls have the given op.
func (r *RecordingSink) CountOp(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log but keeps latest state.
func (r *RecordingSink) ResetCalls() {
	r.Calls = r.Calls[:0]
}

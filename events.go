package driftgrid

// EventKind identifies what a FieldEvent describes.
type EventKind uint8

const (
	// EventWrap fires when a slot crosses the field edge and is recycled
	// with a new coordinate and media assignment.
	EventWrap EventKind = iota
	// EventSelect fires when a tap lands on a visible tile.
	EventSelect
	// EventSettle fires once when the ripple field comes to rest after
	// motion stops.
	EventSettle
	// EventIntroDone fires once when the entrance sequence finishes.
	EventIntroDone
	// EventRebuild fires after the pool has been rebuilt for a new
	// viewport and every slot rebound.
	EventRebuild
)

// String returns a short name for logging.
func (k EventKind) String() string {
	switch k {
	case EventWrap:
		return "wrap"
	case EventSelect:
		return "select"
	case EventSettle:
		return "settle"
	case EventIntroDone:
		return "intro-done"
	case EventRebuild:
		return "rebuild"
	}
	return "unknown"
}

// FieldEvent is the engine's outbound notification. Slot, Coord, and Media
// are populated for wrap and select events; settle, intro-done, and rebuild
// events carry only the kind.
type FieldEvent struct {
	Kind  EventKind
	Slot  int
	Coord Coord
	Media MediaItem
}

// EventStore receives engine events. Implementations must not retain the
// event past the call; the engine may reuse backing storage. An ECS-backed
// store lives in the ecs subpackage.
type EventStore interface {
	EmitEvent(FieldEvent)
}

// SelectionEvent describes a tap on a tile, delivered to Engine.OnSelect.
// X and Y are the tile's rendered top-left corner at selection time.
type SelectionEvent struct {
	Slot  int
	Coord Coord
	Item  MediaItem
	X, Y  float64
}

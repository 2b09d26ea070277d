package driftgrid

import "github.com/tanema/gween/ease"

// DistanceMetric selects how cell-to-cell distances are measured when
// computing ripple delays and intro ordering.
type DistanceMetric uint8

const (
	MetricEuclidean DistanceMetric = iota // straight-line distance (default)
	MetricManhattan                       // |dx| + |dy| taxicab distance
)

// TauRamp describes a per-tile smoothing time constant that grows with
// distance from the interaction origin: tau(d) = min(Base + d*Step, Max).
// Larger values lag further behind, producing the trailing-wave look.
type TauRamp struct {
	Base float64 // time constant at the origin tile, in seconds
	Step float64 // added per cell of distance, in seconds
	Max  float64 // upper bound, in seconds
}

// At returns the time constant for a tile at distance d cells.
func (t TauRamp) At(d float64) float64 {
	tau := t.Base + d*t.Step
	if tau > t.Max {
		tau = t.Max
	}
	return tau
}

// Config holds every tuning knob of the engine. Zero or out-of-range fields
// are normalized to their defaults when the Engine is created, so callers can
// start from DefaultConfig and override only what they need.
type Config struct {
	// CellSize is the edge length of one grid cell in pixels.
	CellSize float64
	// OverscanMargin is the number of extra tile rings allocated beyond the
	// viewport so wrapping happens fully off-screen.
	OverscanMargin int
	// WrapSlack is extra travel in pixels a tile is allowed beyond the
	// minimal recycling boundary before it wraps. Clamped at build time so a
	// wrapped tile always lands back inside the band.
	WrapSlack float64
	// MaxWrapSteps bounds the per-axis wrap loop, so a degenerate offset
	// (teleport, huge dt) cannot spin forever.
	MaxWrapSteps int

	// ProbeAttempts is the media picker's retry budget when avoiding
	// duplicates among the four orthogonal neighbors.
	ProbeAttempts int

	// DragDeadZone is the distance in pixels a pointer must travel before a
	// press turns into a drag instead of a tap.
	DragDeadZone float64
	// Friction is the fraction of fling velocity retained after one second.
	Friction float64
	// MinFlingSpeed is the release speed in px/s below which no inertia is
	// applied.
	MinFlingSpeed float64
	// StopSpeed is the speed in px/s below which inertia is cut to zero.
	StopSpeed float64
	// MaxSpeed caps fling velocity in px/s.
	MaxSpeed float64
	// VelocityTau smooths the per-frame velocity estimate during a drag.
	VelocityTau float64
	// WheelScale converts wheel delta units into pan pixels.
	WheelScale float64

	// ParallaxStrength is the maximum pan shift in pixels applied when the
	// idle pointer rests at a viewport edge.
	ParallaxStrength float64
	// ParallaxTau smooths the parallax offset.
	ParallaxTau float64
	// ViewTauDrag smooths the view offset toward its target while dragging.
	ViewTauDrag float64
	// ViewTauIdle smooths the view offset when no drag is active.
	ViewTauIdle float64

	// Metric selects the distance measure for ripple delays and intro order.
	Metric DistanceMetric
	// RippleDrag is the per-tile lag ramp used while a drag is active.
	RippleDrag TauRamp
	// RippleSettle is the tighter ramp used after release so tiles catch up.
	RippleSettle TauRamp
	// RippleMaxOffset caps how far in pixels a tile may trail its resting
	// position.
	RippleMaxOffset float64
	// SettleEpsilon is the trailing offset in pixels below which a tile
	// counts as caught up.
	SettleEpsilon float64
	// SettleFrames is the number of consecutive calm frames required before
	// the ripple field declares itself settled.
	SettleFrames int

	// IntroFrequency is the angular frequency of the entrance springs.
	IntroFrequency float64
	// IntroDamping is the entrance springs' damping ratio. 1 is critical.
	IntroDamping float64
	// IntroRadius is how far in pixels tiles start displaced from their
	// resting positions, radially away from the hero tile.
	IntroRadius float64
	// IntroStartScale is the tile scale at the start of the entrance.
	IntroStartScale float64
	// IntroStagger is the delay in seconds added per rank in the
	// center-outward ordering.
	IntroStagger float64
	// IntroPosEpsilon and IntroVelEpsilon are the displacement and velocity
	// thresholds below which an entrance spring counts as finished.
	IntroPosEpsilon float64
	IntroVelEpsilon float64

	// MaxActiveVideos caps how many tiles may play video at once.
	MaxActiveVideos int
	// VideoMinWatch is the minimum seconds a video plays before the budget
	// may reclaim it.
	VideoMinWatch float64
	// VideoIdleDelay is the seconds the field must be still before videos
	// activate, so continuous panning does not thrash decoders.
	VideoIdleDelay float64
	// VideoStopGrace is the pause in seconds between losing eligibility and
	// actually stopping, letting a briefly displaced tile resume.
	VideoStopGrace float64

	// SelectAnchor is the viewport-fractional point a selected tile glides
	// toward, e.g. {0.5, 0.42}.
	SelectAnchor Vec2
	// SelectDuration is the glide duration in seconds.
	SelectDuration float64
	// SelectEase shapes the selection glide.
	SelectEase ease.TweenFunc

	// ResizeDebounce is the quiet period in seconds after the last viewport
	// change before the pool is rebuilt.
	ResizeDebounce float64
}

// DefaultConfig returns the tuning used by the stock media wall.
func DefaultConfig() Config {
	return Config{
		CellSize:       260,
		OverscanMargin: 1,
		WrapSlack:      0,
		MaxWrapSteps:   8,

		ProbeAttempts: 18,

		DragDeadZone:  4,
		Friction:      0.045,
		MinFlingSpeed: 80,
		StopSpeed:     4,
		MaxSpeed:      3800,
		VelocityTau:   0.05,
		WheelScale:    1.4,

		ParallaxStrength: 26,
		ParallaxTau:      0.55,
		ViewTauDrag:      0.085,
		ViewTauIdle:      0.26,

		Metric:          MetricEuclidean,
		RippleDrag:      TauRamp{Base: 0.06, Step: 0.021, Max: 0.34},
		RippleSettle:    TauRamp{Base: 0.045, Step: 0.012, Max: 0.2},
		RippleMaxOffset: 110,
		SettleEpsilon:   0.05,
		SettleFrames:    10,

		IntroFrequency:  5.2,
		IntroDamping:    1.0,
		IntroRadius:     420,
		IntroStartScale: 0.62,
		IntroStagger:    0.014,
		IntroPosEpsilon: 0.5,
		IntroVelEpsilon: 0.5,

		MaxActiveVideos: 2,
		VideoMinWatch:   2.0,
		VideoIdleDelay:  0.45,
		VideoStopGrace:  0.6,

		SelectAnchor:   Vec2{0.5, 0.42},
		SelectDuration: 0.9,
		SelectEase:     ease.OutQuint,

		ResizeDebounce: 0.18,
	}
}

// normalize fills zero-valued fields with defaults and clamps the rest into
// workable ranges. Called once when the Engine takes ownership of the config.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.CellSize <= 0 {
		c.CellSize = def.CellSize
	}
	if c.OverscanMargin < 1 {
		c.OverscanMargin = def.OverscanMargin
	}
	if c.WrapSlack < 0 {
		c.WrapSlack = 0
	}
	if c.MaxWrapSteps <= 0 {
		c.MaxWrapSteps = def.MaxWrapSteps
	}
	if c.ProbeAttempts <= 0 {
		c.ProbeAttempts = def.ProbeAttempts
	}
	if c.DragDeadZone < 0 {
		c.DragDeadZone = def.DragDeadZone
	}
	if c.Friction <= 0 || c.Friction >= 1 {
		c.Friction = def.Friction
	}
	if c.MinFlingSpeed <= 0 {
		c.MinFlingSpeed = def.MinFlingSpeed
	}
	if c.StopSpeed <= 0 {
		c.StopSpeed = def.StopSpeed
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = def.MaxSpeed
	}
	if c.VelocityTau <= 0 {
		c.VelocityTau = def.VelocityTau
	}
	if c.WheelScale == 0 {
		c.WheelScale = def.WheelScale
	}
	if c.ParallaxStrength < 0 {
		c.ParallaxStrength = 0
	}
	if c.ParallaxTau <= 0 {
		c.ParallaxTau = def.ParallaxTau
	}
	if c.ViewTauDrag <= 0 {
		c.ViewTauDrag = def.ViewTauDrag
	}
	if c.ViewTauIdle <= 0 {
		c.ViewTauIdle = def.ViewTauIdle
	}
	if c.RippleDrag == (TauRamp{}) {
		c.RippleDrag = def.RippleDrag
	}
	if c.RippleSettle == (TauRamp{}) {
		c.RippleSettle = def.RippleSettle
	}
	if c.RippleMaxOffset <= 0 {
		c.RippleMaxOffset = def.RippleMaxOffset
	}
	if c.SettleEpsilon <= 0 {
		c.SettleEpsilon = def.SettleEpsilon
	}
	if c.SettleFrames <= 0 {
		c.SettleFrames = def.SettleFrames
	}
	if c.IntroFrequency <= 0 {
		c.IntroFrequency = def.IntroFrequency
	}
	if c.IntroDamping <= 0 {
		c.IntroDamping = def.IntroDamping
	}
	if c.IntroRadius < 0 {
		c.IntroRadius = def.IntroRadius
	}
	if c.IntroStartScale <= 0 {
		c.IntroStartScale = def.IntroStartScale
	}
	if c.IntroStagger < 0 {
		c.IntroStagger = def.IntroStagger
	}
	if c.IntroPosEpsilon <= 0 {
		c.IntroPosEpsilon = def.IntroPosEpsilon
	}
	if c.IntroVelEpsilon <= 0 {
		c.IntroVelEpsilon = def.IntroVelEpsilon
	}
	if c.MaxActiveVideos < 0 {
		c.MaxActiveVideos = 0
	}
	if c.VideoMinWatch <= 0 {
		c.VideoMinWatch = def.VideoMinWatch
	}
	if c.VideoIdleDelay < 0 {
		c.VideoIdleDelay = def.VideoIdleDelay
	}
	if c.VideoStopGrace < 0 {
		c.VideoStopGrace = def.VideoStopGrace
	}
	if c.SelectAnchor == (Vec2{}) {
		c.SelectAnchor = def.SelectAnchor
	}
	if c.SelectDuration <= 0 {
		c.SelectDuration = def.SelectDuration
	}
	if c.SelectEase == nil {
		c.SelectEase = def.SelectEase
	}
	if c.ResizeDebounce < 0 {
		c.ResizeDebounce = def.ResizeDebounce
	}
}

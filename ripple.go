package driftgrid

// RipplePhase describes what the per-tile follow field is doing.
type RipplePhase uint8

const (
	RippleIdle   RipplePhase = iota // no per-tile lag; tiles sit at base positions
	RippleDrag                      // wide lag ramp active while the pointer holds the grid
	RippleSettle                    // tightened ramp after release, counting down to rest
)

// RippleField gives each tile a lagging copy of the view offset, with a lag
// time constant that grows with the tile's distance from the interaction
// origin. Tiles near the grab point track the view almost exactly while far
// corners trail behind, which reads as a wave radiating out of the pointer.
// Once the wave has died down the field snaps to Idle so a resting grid
// costs nothing per frame.
type RippleField struct {
	cfg *Config

	phase  RipplePhase
	origin Coord

	lag []Vec2    // per-slot lagging view copy
	tau []float64 // per-slot lag time constant, from the active ramp
	off []Vec2    // per-slot rendered offset, clamped

	calm   int // consecutive quiet frames while settling
	maxMag float64
}

func newRippleField(cfg *Config) *RippleField {
	return &RippleField{cfg: cfg}
}

// Resize reallocates per-slot state for a rebuilt pool. Everything starts
// at rest.
func (r *RippleField) Resize(n int) {
	r.lag = make([]Vec2, n)
	r.tau = make([]float64, n)
	r.off = make([]Vec2, n)
	r.phase = RippleIdle
	r.calm = 0
	r.maxMag = 0
}

// Phase returns the current phase.
func (r *RippleField) Phase() RipplePhase {
	return r.phase
}

// Origin returns the coordinate the lag ramp is centered on.
func (r *RippleField) Origin() Coord {
	return r.origin
}

// MaxMagnitude returns the largest per-tile offset length from the last
// Update, for diagnostics.
func (r *RippleField) MaxMagnitude() float64 {
	return r.maxMag
}

// Offset returns the rendered offset for slot i.
func (r *RippleField) Offset(i int) Vec2 {
	return r.off[i]
}

// SetOrigin activates the drag ramp centered on the given coordinate. From
// Idle every tile starts in lockstep with the view; when a new drag starts
// while the previous wave is still live, current lags are preserved so the
// motion stays continuous and only the delays are recomputed.
func (r *RippleField) SetOrigin(slots []TileSlot, origin Coord, view Vec2) {
	if r.phase == RippleIdle {
		for i := range r.lag {
			r.lag[i] = view
			r.off[i] = Vec2{}
		}
	}
	r.origin = origin
	r.phase = RippleDrag
	r.calm = 0
	r.applyRamp(slots, r.cfg.RippleDrag)
}

// Release switches to the settle ramp, keeping the origin and all current
// lags. Call when the pointer lifts.
func (r *RippleField) Release(slots []TileSlot) {
	if r.phase != RippleDrag {
		return
	}
	r.phase = RippleSettle
	r.calm = 0
	r.applyRamp(slots, r.cfg.RippleSettle)
}

// ReseedSlot zeroes the lag for a slot that wrapped. The recycled tile
// appears at its new position with no trailing offset, and its delay is
// recomputed for the new coordinate.
func (r *RippleField) ReseedSlot(i int, coord Coord, view Vec2) {
	if i < 0 || i >= len(r.lag) {
		return
	}
	r.lag[i] = view
	r.off[i] = Vec2{}
	if r.phase != RippleIdle {
		ramp := r.cfg.RippleDrag
		if r.phase == RippleSettle {
			ramp = r.cfg.RippleSettle
		}
		r.tau[i] = ramp.At(coord.Dist(r.origin, r.cfg.Metric))
	}
}

func (r *RippleField) applyRamp(slots []TileSlot, ramp TauRamp) {
	for i := range slots {
		if i >= len(r.tau) {
			break
		}
		r.tau[i] = ramp.At(slots[i].Coord.Dist(r.origin, r.cfg.Metric))
	}
}

// Update advances every tile's lag toward the view and reports whether the
// field settled to Idle this frame. moving should be true while the pan
// layer still has active motion; settling only completes on a still view.
func (r *RippleField) Update(dt float64, view Vec2, moving bool) bool {
	if r.phase == RippleIdle || dt <= 0 {
		r.maxMag = 0
		return false
	}

	maxMag := 0.0
	for i := range r.lag {
		a := smoothAlpha(dt, r.tau[i])
		r.lag[i].X += (view.X - r.lag[i].X) * a
		r.lag[i].Y += (view.Y - r.lag[i].Y) * a
		off := clampVec(r.lag[i].Sub(view), r.cfg.RippleMaxOffset)
		r.off[i] = off
		if m := off.Len(); m > maxMag {
			maxMag = m
		}
	}
	r.maxMag = maxMag

	if r.phase != RippleSettle {
		return false
	}
	if moving || maxMag >= r.cfg.SettleEpsilon {
		r.calm = 0
		return false
	}
	r.calm++
	if r.calm < r.cfg.SettleFrames {
		return false
	}

	// Fully at rest: pin every lag and go idle until the next interaction.
	for i := range r.lag {
		r.lag[i] = view
		r.off[i] = Vec2{}
	}
	r.phase = RippleIdle
	r.calm = 0
	r.maxMag = 0
	return true
}

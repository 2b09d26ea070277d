package driftgrid

import (
	"math"

	"github.com/tanema/gween"
)

// PanController turns raw pointer input into the smoothed view offset the
// field renders with. It layers three signals: the accumulated drag target,
// a decaying fling velocity after release, and a gentle parallax drift from
// the idle pointer position. The view chases the combined target with
// exponential smoothing, so downstream motion is always continuous even
// when input is jumpy.
type PanController struct {
	cfg *Config

	viewW, viewH float64

	dragging     bool
	lastDrag     Vec2 // pointer position at the previous drag sample
	pointer      Vec2 // most recent pointer position, drag or hover
	pointerValid bool

	target     Vec2 // accumulated pan target in pixels
	prevTarget Vec2 // target at the previous Update, for velocity estimation
	view       Vec2 // smoothed authoritative offset

	velocity Vec2
	inertial bool

	parallax Vec2 // smoothed parallax contribution

	glideX, glideY *gween.Tween
}

func newPanController(cfg *Config) *PanController {
	return &PanController{cfg: cfg}
}

// SetViewport updates the viewport dimensions used for parallax scaling.
func (p *PanController) SetViewport(w, h float64) {
	p.viewW = w
	p.viewH = h
}

// Reset clears all motion state. The view offset snaps to zero.
func (p *PanController) Reset() {
	p.dragging = false
	p.pointerValid = false
	p.target = Vec2{}
	p.prevTarget = Vec2{}
	p.view = Vec2{}
	p.velocity = Vec2{}
	p.inertial = false
	p.parallax = Vec2{}
	p.glideX = nil
	p.glideY = nil
}

// PointerDown begins a drag at the given viewport position. Any running
// fling or glide is cancelled so the grid answers to the finger again.
func (p *PanController) PointerDown(x, y float64) {
	p.dragging = true
	p.lastDrag = Vec2{x, y}
	p.pointer = Vec2{x, y}
	p.pointerValid = true
	p.velocity = Vec2{}
	p.inertial = false
	p.prevTarget = p.target
	p.CancelGlide()
}

// PointerMove feeds a pointer position. While a drag is active the delta
// accumulates into the pan target; otherwise the position only steers
// parallax.
func (p *PanController) PointerMove(x, y float64) {
	p.pointer = Vec2{x, y}
	p.pointerValid = true
	if !p.dragging {
		return
	}
	p.target.X += x - p.lastDrag.X
	p.target.Y += y - p.lastDrag.Y
	p.lastDrag = Vec2{x, y}
}

// PointerUp ends the drag. If the estimated velocity is above the fling
// threshold the grid keeps coasting; otherwise it stops where it is.
func (p *PanController) PointerUp(x, y float64) {
	if p.dragging {
		p.PointerMove(x, y)
	}
	p.dragging = false
	if p.velocity.Len() >= p.cfg.MinFlingSpeed {
		p.inertial = true
	} else {
		p.velocity = Vec2{}
	}
}

// PointerGone invalidates the hover position, relaxing parallax back to
// center, and abandons any active drag without a fling. A coast already
// underway is left running. Call when the pointer leaves the viewport or
// the gesture is cancelled.
func (p *PanController) PointerGone() {
	p.pointerValid = false
	if !p.dragging {
		return
	}
	p.dragging = false
	p.velocity = Vec2{}
	p.inertial = false
}

// Wheel nudges the pan target directly, scaled into pixels.
func (p *PanController) Wheel(dx, dy float64) {
	p.CancelGlide()
	p.inertial = false
	p.velocity = Vec2{}
	p.target.X -= dx * p.cfg.WheelScale
	p.target.Y -= dy * p.cfg.WheelScale
}

// GlideTo tweens the pan target to an absolute value, used to bring a
// selected tile to its anchor. Dragging or wheeling cancels the glide.
func (p *PanController) GlideTo(x, y float64) {
	d := float32(p.cfg.SelectDuration)
	p.glideX = gween.New(float32(p.target.X), float32(x), d, p.cfg.SelectEase)
	p.glideY = gween.New(float32(p.target.Y), float32(y), d, p.cfg.SelectEase)
	p.inertial = false
	p.velocity = Vec2{}
}

// CancelGlide abandons a running glide, leaving the target where it is.
func (p *PanController) CancelGlide() {
	p.glideX = nil
	p.glideY = nil
}

// Gliding reports whether a selection glide is running.
func (p *PanController) Gliding() bool {
	return p.glideX != nil || p.glideY != nil
}

// Dragging reports whether a pointer drag is active.
func (p *PanController) Dragging() bool {
	return p.dragging
}

// Inertial reports whether a fling is still coasting.
func (p *PanController) Inertial() bool {
	return p.inertial
}

// Speed returns the current fling speed estimate in px/s.
func (p *PanController) Speed() float64 {
	return p.velocity.Len()
}

// View returns the smoothed view offset.
func (p *PanController) View() Vec2 {
	return p.view
}

// Target returns the raw pan target the view is chasing.
func (p *PanController) Target() Vec2 {
	return p.target
}

// Moving reports whether the field should be treated as in motion: a drag
// or glide is active, inertia is coasting, or the view is still visibly
// chasing its target.
func (p *PanController) Moving() bool {
	if p.dragging || p.inertial || p.Gliding() {
		return true
	}
	goal := p.target.Add(p.parallax)
	return goal.Sub(p.view).Len() > 0.5
}

// Update advances all pan state by dt seconds.
func (p *PanController) Update(dt float64) {
	if dt <= 0 {
		return
	}

	// Selection glide drives the target directly.
	if p.glideX != nil {
		v, done := p.glideX.Update(float32(dt))
		p.target.X = float64(v)
		if done {
			p.glideX = nil
		}
	}
	if p.glideY != nil {
		v, done := p.glideY.Update(float32(dt))
		p.target.Y = float64(v)
		if done {
			p.glideY = nil
		}
	}

	// Coast and decay the fling. The exponent keeps decay frame-rate
	// independent: after t seconds the speed is v * Friction^t.
	if p.inertial {
		p.target.X += p.velocity.X * dt
		p.target.Y += p.velocity.Y * dt
		f := math.Pow(p.cfg.Friction, dt)
		p.velocity = p.velocity.Scale(f)
		if p.velocity.Len() < p.cfg.StopSpeed {
			p.velocity = Vec2{}
			p.inertial = false
		}
	}

	// Estimate drag velocity from target deltas. Pointer events carry no
	// timestamps here, so the per-frame difference smoothed over a short
	// window is the release velocity.
	if p.dragging {
		inst := p.target.Sub(p.prevTarget).Scale(1 / dt)
		a := smoothAlpha(dt, p.cfg.VelocityTau)
		p.velocity.X += (inst.X - p.velocity.X) * a
		p.velocity.Y += (inst.Y - p.velocity.Y) * a
		p.velocity = clampVec(p.velocity, p.cfg.MaxSpeed)
	}
	p.prevTarget = p.target

	// Parallax eases toward an offset opposite the hover position, and
	// back to zero while dragging or gliding.
	var pTarget Vec2
	if !p.dragging && !p.Gliding() && p.pointerValid && p.viewW > 0 && p.viewH > 0 {
		pTarget = Vec2{
			X: -(p.pointer.X - p.viewW/2) / (p.viewW / 2) * p.cfg.ParallaxStrength,
			Y: -(p.pointer.Y - p.viewH/2) / (p.viewH / 2) * p.cfg.ParallaxStrength,
		}
	}
	pa := smoothAlpha(dt, p.cfg.ParallaxTau)
	p.parallax.X += (pTarget.X - p.parallax.X) * pa
	p.parallax.Y += (pTarget.Y - p.parallax.Y) * pa

	// The view chases target plus parallax. A tighter time constant while
	// dragging keeps the grid glued to the finger; a looser one afterwards
	// lets releases breathe.
	tau := p.cfg.ViewTauIdle
	if p.dragging {
		tau = p.cfg.ViewTauDrag
	}
	a := smoothAlpha(dt, tau)
	goal := p.target.Add(p.parallax)
	p.view.X += (goal.X - p.view.X) * a
	p.view.Y += (goal.Y - p.view.Y) * a
}

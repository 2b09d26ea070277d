package driftgrid

import (
	"math"
	"testing"
)

const frameDT = 1.0 / 60.0

func newTestPan() *PanController {
	cfg := DefaultConfig()
	cfg.normalize()
	p := newPanController(&cfg)
	p.SetViewport(800, 600)
	return p
}

// dragSteps simulates a drag moving (dx, dy) per frame for n frames,
// updating the controller each frame like the engine does.
func dragSteps(p *PanController, fromX, fromY, dx, dy float64, n int) (x, y float64) {
	x, y = fromX, fromY
	p.PointerDown(x, y)
	p.Update(frameDT)
	for i := 0; i < n; i++ {
		x += dx
		y += dy
		p.PointerMove(x, y)
		p.Update(frameDT)
	}
	return x, y
}

func TestPanDragAccumulatesTarget(t *testing.T) {
	p := newTestPan()
	p.PointerDown(100, 100)
	p.PointerMove(150, 130)
	p.PointerMove(160, 120)
	got := p.Target()
	if !approxEqual(got.X, 60, epsilon) || !approxEqual(got.Y, 20, epsilon) {
		t.Errorf("target = %v, want (60, 20)", got)
	}
	if !p.Dragging() {
		t.Error("Dragging = false during drag")
	}
}

func TestPanMoveWithoutDragLeavesTarget(t *testing.T) {
	p := newTestPan()
	p.PointerMove(400, 300)
	p.PointerMove(500, 350)
	if got := p.Target(); got != (Vec2{}) {
		t.Errorf("hover moved target to %v", got)
	}
}

func TestPanFlingAfterFastDrag(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 60, 0, 8)
	p.PointerUp(x, y)
	if !p.Inertial() {
		t.Fatal("fast release did not fling")
	}
	// 60 px/frame at 60fps is 3600 px/s; smoothing keeps the estimate a
	// little under the instantaneous rate.
	if s := p.Speed(); s < 2000 || s > 3800 {
		t.Errorf("release speed = %f, want roughly 3600", s)
	}
}

func TestPanNoFlingBelowThreshold(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 1, 0, 10) // 60 px/s, under the threshold
	p.PointerUp(x, y)
	if p.Inertial() {
		t.Errorf("slow release flung at %f px/s", p.Speed())
	}
	if p.Speed() != 0 {
		t.Errorf("velocity = %f after slow release, want 0", p.Speed())
	}
}

func TestPanVelocityCapped(t *testing.T) {
	p := newTestPan()
	dragSteps(p, 400, 300, 400, 0, 6) // 24000 px/s instantaneous
	if s := p.Speed(); s > p.cfg.MaxSpeed+epsilon {
		t.Errorf("speed = %f exceeds cap %f", s, p.cfg.MaxSpeed)
	}
}

func TestPanInertiaDecayCurve(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 40, 0, 10)
	p.PointerUp(x, y)
	if !p.Inertial() {
		t.Fatal("setup: no fling")
	}
	v0 := p.Speed()
	elapsed := 0.0
	for frame := 0; frame < 30; frame++ {
		p.Update(frameDT)
		elapsed += frameDT
		want := v0 * math.Pow(p.cfg.Friction, elapsed)
		if want < p.cfg.StopSpeed {
			break
		}
		if got := p.Speed(); !approxEqual(got, want, want*1e-9+1e-9) {
			t.Fatalf("frame %d: speed = %f, want %f", frame, got, want)
		}
	}
}

func TestPanInertiaTerminates(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 40, 20, 10)
	p.PointerUp(x, y)
	for frame := 0; frame < 600 && p.Inertial(); frame++ {
		p.Update(frameDT)
	}
	if p.Inertial() {
		t.Error("inertia still active after 10 seconds")
	}
	if p.Speed() != 0 {
		t.Errorf("residual speed %f after inertia ended", p.Speed())
	}
}

func TestPanViewChasesTarget(t *testing.T) {
	p := newTestPan()
	p.Wheel(-100/1.4, 0) // target.X = +100 at the default wheel scale
	if !approxEqual(p.Target().X, 100, 1e-9) {
		t.Fatalf("wheel target = %v, want 100", p.Target().X)
	}
	for i := 0; i < 120; i++ {
		p.Update(frameDT)
	}
	if got := p.View().X; !approxEqual(got, 100, 0.5) {
		t.Errorf("view.X = %f after 2s, want ~100", got)
	}
}

func TestPanViewFrameRateIndependent(t *testing.T) {
	a := newTestPan()
	b := newTestPan()
	a.Wheel(-100/1.4, 0)
	b.Wheel(-100/1.4, 0)
	for i := 0; i < 50; i++ {
		a.Update(0.02)
	}
	for i := 0; i < 100; i++ {
		b.Update(0.01)
	}
	if !approxEqual(a.View().X, b.View().X, 1e-6) {
		t.Errorf("1s at 50Hz = %f, 1s at 100Hz = %f", a.View().X, b.View().X)
	}
}

func TestPanParallaxIdle(t *testing.T) {
	p := newTestPan()
	p.PointerMove(800, 300) // right edge, vertical center
	for i := 0; i < 300; i++ {
		p.Update(frameDT)
	}
	// Pointer right of center pushes the grid left.
	wantX := -p.cfg.ParallaxStrength
	if got := p.parallax; !approxEqual(got.X, wantX, 0.5) || !approxEqual(got.Y, 0, 0.5) {
		t.Errorf("parallax = %v, want (%f, 0)", got, wantX)
	}
	// The view carries the parallax offset.
	if got := p.View().X; !approxEqual(got, wantX, 0.6) {
		t.Errorf("view.X = %f, want ~%f", got, wantX)
	}
}

func TestPanParallaxSuppressedWhileDragging(t *testing.T) {
	p := newTestPan()
	p.PointerMove(800, 600)
	for i := 0; i < 120; i++ {
		p.Update(frameDT)
	}
	if p.parallax.Len() < 1 {
		t.Fatal("setup: no parallax built up")
	}
	p.PointerDown(800, 600)
	for i := 0; i < 300; i++ {
		p.Update(frameDT)
	}
	if got := p.parallax.Len(); got > 0.1 {
		t.Errorf("parallax length %f during drag, want ~0", got)
	}
}

func TestPanWheelCancelsInertia(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 50, 0, 8)
	p.PointerUp(x, y)
	if !p.Inertial() {
		t.Fatal("setup: no fling")
	}
	p.Wheel(0, 10)
	if p.Inertial() || p.Speed() != 0 {
		t.Error("wheel did not cancel inertia")
	}
}

func TestPanGlideReachesTarget(t *testing.T) {
	p := newTestPan()
	p.GlideTo(210, -90)
	if !p.Gliding() {
		t.Fatal("Gliding = false after GlideTo")
	}
	for i := 0; i < 90; i++ { // 1.5s at 60fps, past the 0.9s duration
		p.Update(frameDT)
	}
	if p.Gliding() {
		t.Error("glide never completed")
	}
	got := p.Target()
	if !approxEqual(got.X, 210, 0.01) || !approxEqual(got.Y, -90, 0.01) {
		t.Errorf("target after glide = %v, want (210, -90)", got)
	}
}

func TestPanPointerDownCancelsGlide(t *testing.T) {
	p := newTestPan()
	p.GlideTo(500, 0)
	p.Update(frameDT)
	p.PointerDown(400, 300)
	if p.Gliding() {
		t.Error("glide survived a pointer down")
	}
}

func TestPanPointerGoneReleasesDrag(t *testing.T) {
	p := newTestPan()
	dragSteps(p, 400, 300, 2, 0, 5)
	p.PointerGone()
	if p.Dragging() {
		t.Error("still dragging after PointerGone")
	}
}

func TestPanReset(t *testing.T) {
	p := newTestPan()
	x, y := dragSteps(p, 400, 300, 50, 10, 6)
	p.PointerUp(x, y)
	p.Reset()
	if p.View() != (Vec2{}) || p.Target() != (Vec2{}) || p.Speed() != 0 ||
		p.Dragging() || p.Inertial() || p.Gliding() {
		t.Error("Reset left residual state")
	}
}

func TestPanMoving(t *testing.T) {
	p := newTestPan()
	if p.Moving() {
		t.Error("fresh controller reports moving")
	}
	p.PointerDown(400, 300)
	if !p.Moving() {
		t.Error("drag not reported as moving")
	}
	p.PointerUp(400, 300)
	for i := 0; i < 600; i++ {
		p.Update(frameDT)
	}
	if p.Moving() {
		t.Error("settled controller reports moving")
	}
}

func BenchmarkPanUpdate(b *testing.B) {
	p := newTestPan()
	p.PointerDown(400, 300)
	p.PointerMove(460, 310)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Update(frameDT)
	}
}

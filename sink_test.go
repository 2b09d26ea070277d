package driftgrid

import "testing"

func TestRecordingSinkState(t *testing.T) {
	r := NewRecordingSink()
	r.SetPosition(3, 10, 20)
	r.SetScale(3, 0.5)
	r.SetOpacity(3, 0.25)
	r.SetVisible(3, true)
	r.BindMedia(3, MediaItem{ID: "m"})
	r.StartVideo(3)

	if got := r.Position(3); got != (Vec2{10, 20}) {
		t.Errorf("Position = %v", got)
	}
	if r.ScaleOf(3) != 0.5 || r.OpacityOf(3) != 0.25 || !r.VisibleOf(3) {
		t.Error("latest state not retained")
	}
	item, ok := r.Bound(3)
	if !ok || item.ID != "m" {
		t.Errorf("Bound = %v, %v", item, ok)
	}
	if !r.Playing(3) || r.PlayingCount() != 1 {
		t.Error("playing state not tracked")
	}
	r.StopVideo(3)
	if r.Playing(3) {
		t.Error("still playing after stop")
	}
	if len(r.Calls) != 7 {
		t.Errorf("%d calls recorded, want 7", len(r.Calls))
	}
	if r.CountOp("bind") != 1 || r.CountOp("position") != 1 {
		t.Error("CountOp miscounts")
	}
	r.ResetCalls()
	if len(r.Calls) != 0 {
		t.Error("ResetCalls left entries")
	}
	// State survives a call-log reset; untouched slots report defaults.
	if r.ScaleOf(3) != 0.5 {
		t.Error("state lost on ResetCalls")
	}
	if r.ScaleOf(9) != 1 || r.VisibleOf(9) {
		t.Error("untouched slot has non-default state")
	}
}

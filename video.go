package driftgrid

import "sort"

// VideoState tracks one slot's position in the playback lifecycle.
type VideoState uint8

const (
	VideoIdle          VideoState = iota // not playing, not requested
	VideoRequested                       // start issued to the sink, promotes next frame
	VideoPlaying                         // actively playing
	VideoStoppingGrace                   // lost eligibility, waiting out the grace period
)

// videoSlot is the per-slot scheduler state.
type videoSlot struct {
	state VideoState
	watch float64 // seconds spent in VideoPlaying
	grace float64 // seconds spent in VideoStoppingGrace
}

// videoCandidate is a slot eligible for playback this frame, with its tile
// center's distance from the viewport center.
type videoCandidate struct {
	slot int
	dist float64
}

// VideoScheduler rations video playback across the pool. At most
// MaxActiveVideos slots play at once, chosen nearest the viewport center,
// and three timers keep the budget from thrashing decoders: videos only
// start after the field has been still for a moment, play for a minimum
// watch time before the budget may take them back, and get a grace period
// after losing eligibility in case a small shift restores it.
type VideoScheduler struct {
	cfg   *Config
	slots []videoSlot
	idle  float64 // seconds since the field stopped moving
}

func newVideoScheduler(cfg *Config) *VideoScheduler {
	return &VideoScheduler{cfg: cfg}
}

// Resize clears scheduler state for a rebuilt pool. The caller stops any
// running playback first.
func (v *VideoScheduler) Resize(n int) {
	v.slots = make([]videoSlot, n)
	v.idle = 0
}

// State returns the playback state for slot i.
func (v *VideoScheduler) State(i int) VideoState {
	if i < 0 || i >= len(v.slots) {
		return VideoIdle
	}
	return v.slots[i].state
}

// ActiveCount returns how many slots are anywhere in the playback
// lifecycle, which is what the budget counts.
func (v *VideoScheduler) ActiveCount() int {
	n := 0
	for i := range v.slots {
		if v.slots[i].state != VideoIdle {
			n++
		}
	}
	return n
}

// Reset force-stops a slot, used when it wraps to a new coordinate or its
// media becomes unusable. The grace period does not apply; the tile's
// content is gone.
func (v *VideoScheduler) Reset(i int, sink VideoSink) {
	if i < 0 || i >= len(v.slots) || v.slots[i].state == VideoIdle {
		return
	}
	if sink != nil {
		sink.StopVideo(i)
	}
	v.slots[i] = videoSlot{}
}

// StopAll force-stops every active slot, used on rebuild and shutdown.
func (v *VideoScheduler) StopAll(sink VideoSink) {
	for i := range v.slots {
		if v.slots[i].state != VideoIdle {
			if sink != nil {
				sink.StopVideo(i)
			}
			v.slots[i] = videoSlot{}
		}
	}
}

// Update advances the scheduler one frame. moving freezes the stillness
// clock; suspended (detail view open) additionally empties the desired set
// so everything winds down. cands need not be sorted.
func (v *VideoScheduler) Update(dt float64, moving, suspended bool, cands []videoCandidate, sink VideoSink) {
	if len(v.slots) == 0 {
		return
	}
	if moving {
		v.idle = 0
	} else {
		v.idle += dt
	}

	// Requested slots issued last frame are considered playing from now on.
	for i := range v.slots {
		if v.slots[i].state == VideoRequested {
			v.slots[i].state = VideoPlaying
		}
	}

	// The desired set: nearest candidates, up to the budget, only while
	// playback is wanted at all.
	desired := make(map[int]bool, v.cfg.MaxActiveVideos)
	if !suspended {
		sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
		for i := 0; i < len(cands) && i < v.cfg.MaxActiveVideos; i++ {
			desired[cands[i].slot] = true
		}
	}

	for i := range v.slots {
		s := &v.slots[i]
		switch s.state {
		case VideoPlaying:
			s.watch += dt
			if !desired[i] && s.watch >= v.cfg.VideoMinWatch {
				s.state = VideoStoppingGrace
				s.grace = 0
			}
		case VideoStoppingGrace:
			if desired[i] {
				// Eligibility came back before the stop landed.
				s.state = VideoPlaying
				s.grace = 0
				continue
			}
			s.grace += dt
			if s.grace >= v.cfg.VideoStopGrace {
				if sink != nil {
					sink.StopVideo(i)
				}
				*s = videoSlot{}
			}
		}
	}

	// Activation: only once the field has been still long enough, and only
	// up to the budget counting everything not fully idle.
	if suspended || v.idle < v.cfg.VideoIdleDelay {
		return
	}
	active := v.ActiveCount()
	for i := 0; i < len(cands) && active < v.cfg.MaxActiveVideos; i++ {
		slot := cands[i].slot
		if slot < 0 || slot >= len(v.slots) || v.slots[slot].state != VideoIdle {
			continue
		}
		if !desired[slot] {
			continue
		}
		if sink != nil {
			sink.StartVideo(slot)
		}
		v.slots[slot] = videoSlot{state: VideoRequested}
		active++
	}
}

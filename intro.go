package driftgrid

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
)

// Completion thresholds for the scale and opacity springs. Position uses the
// configurable epsilons; these channels live on fixed 0..1 ranges.
const (
	introScaleEps = 0.005
	introAlphaEps = 0.01
)

// introTile is the animated state of one slot during the entrance.
type introTile struct {
	delay float64 // seconds after the gate before this tile's springs engage

	x, y   float64 // offset from the slot's base position
	vx, vy float64
	scale  float64
	vscale float64
	alpha  float64
	valpha float64

	done bool
}

// IntroSequencer plays the one-shot entrance: every tile starts displaced
// radially from the hero tile, scaled down and transparent, then springs to
// rest in a center-outward stagger. The sequence is prepared at build time
// but holds at its first frame until the host signals readiness, so the grid
// never animates behind a loading screen.
type IntroSequencer struct {
	cfg    *Config
	spring harmonica.Spring

	tiles   []introTile
	hero    int
	elapsed float64

	ready    bool
	complete bool
}

// introFPS is the fixed timestep the entrance springs integrate at. The
// spring solver is parameterized by step size up front; the frame driver
// runs at the same nominal rate.
const introFPS = 60

func newIntroSequencer(cfg *Config) *IntroSequencer {
	return &IntroSequencer{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(introFPS), cfg.IntroFrequency, cfg.IntroDamping),
		hero:   -1,
	}
}

// Prepare lays out the entrance for the given pool. The hero is the slot
// nearest the viewport center; every other tile is ranked by distance then
// angle around the hero, and displaced radially outward. Base positions must
// be current.
func (s *IntroSequencer) Prepare(slots []TileSlot, viewW, viewH float64) {
	s.tiles = make([]introTile, len(slots))
	s.elapsed = 0
	s.complete = len(slots) == 0
	s.hero = -1
	if len(slots) == 0 {
		return
	}

	cell := s.cfg.CellSize
	cx, cy := viewW/2, viewH/2
	best := math.Inf(1)
	for i := range slots {
		dx := slots[i].BaseX + cell/2 - cx
		dy := slots[i].BaseY + cell/2 - cy
		if d := math.Hypot(dx, dy); d < best {
			best = d
			s.hero = i
		}
	}
	heroCoord := slots[s.hero].Coord

	// Rank center-outward, ties broken by angle so the stagger sweeps
	// around each ring instead of firing it all at once.
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := slots[order[a]].Coord, slots[order[b]].Coord
		da := ca.Dist(heroCoord, s.cfg.Metric)
		db := cb.Dist(heroCoord, s.cfg.Metric)
		if da != db {
			return da < db
		}
		aa := math.Atan2(float64(ca.Row-heroCoord.Row), float64(ca.Col-heroCoord.Col))
		ab := math.Atan2(float64(cb.Row-heroCoord.Row), float64(cb.Col-heroCoord.Col))
		if aa != ab {
			return aa < ab
		}
		return order[a] < order[b]
	})

	for rank, i := range order {
		coord := slots[i].Coord
		tile := &s.tiles[i]
		tile.delay = float64(rank) * s.cfg.IntroStagger
		// A touch of coordinate-seeded jitter keeps rings from reading as
		// mechanical sweeps.
		tile.delay += seed01(coord.Col, coord.Row, 2) * s.cfg.IntroStagger * 0.5

		dc := float64(coord.Col - heroCoord.Col)
		dr := float64(coord.Row - heroCoord.Row)
		if l := math.Hypot(dc, dr); l > 0 {
			radius := s.cfg.IntroRadius * (0.8 + 0.4*seed01(coord.Col, coord.Row, 3))
			tile.x = dc / l * radius
			tile.y = dr / l * radius
		}
		tile.scale = s.cfg.IntroStartScale
		tile.alpha = 0
	}
}

// SetReady opens the gate. Until this is called the sequence holds at its
// first frame with every tile displaced and invisible.
func (s *IntroSequencer) SetReady() {
	s.ready = true
}

// Ready reports whether the gate has been opened.
func (s *IntroSequencer) Ready() bool {
	return s.ready
}

// Complete reports whether every tile has sprung to rest.
func (s *IntroSequencer) Complete() bool {
	return s.complete
}

// Hero returns the slot index the entrance radiates from, or -1.
func (s *IntroSequencer) Hero() int {
	return s.hero
}

// Skip jumps the whole sequence to its final state.
func (s *IntroSequencer) Skip() {
	for i := range s.tiles {
		t := &s.tiles[i]
		t.x, t.y, t.vx, t.vy = 0, 0, 0, 0
		t.scale, t.vscale = 1, 0
		t.alpha, t.valpha = 1, 0
		t.done = true
	}
	s.complete = true
}

// Step advances the entrance by dt seconds and reports whether it completed
// on this call. Before the gate opens it does nothing and returns false.
func (s *IntroSequencer) Step(dt float64) bool {
	if s.complete || !s.ready {
		return false
	}
	s.elapsed += dt

	allDone := true
	for i := range s.tiles {
		t := &s.tiles[i]
		if t.done {
			continue
		}
		if s.elapsed < t.delay {
			allDone = false
			continue
		}

		t.x, t.vx = s.spring.Update(t.x, t.vx, 0)
		t.y, t.vy = s.spring.Update(t.y, t.vy, 0)
		t.scale, t.vscale = s.spring.Update(t.scale, t.vscale, 1)
		t.alpha, t.valpha = s.spring.Update(t.alpha, t.valpha, 1)

		if math.Abs(t.x) < s.cfg.IntroPosEpsilon && math.Abs(t.vx) < s.cfg.IntroVelEpsilon &&
			math.Abs(t.y) < s.cfg.IntroPosEpsilon && math.Abs(t.vy) < s.cfg.IntroVelEpsilon &&
			math.Abs(t.scale-1) < introScaleEps && math.Abs(t.vscale) < introScaleEps*introFPS &&
			math.Abs(t.alpha-1) < introAlphaEps && math.Abs(t.valpha) < introAlphaEps*introFPS {
			t.x, t.y, t.vx, t.vy = 0, 0, 0, 0
			t.scale, t.vscale = 1, 0
			t.alpha, t.valpha = 1, 0
			t.done = true
			continue
		}
		allDone = false
	}

	if allDone {
		s.complete = true
		return true
	}
	return false
}

// ValuesFor returns the current offset, scale, and opacity for slot i.
func (s *IntroSequencer) ValuesFor(i int) (dx, dy, scale, alpha float64) {
	if i < 0 || i >= len(s.tiles) {
		return 0, 0, 1, 1
	}
	t := &s.tiles[i]
	return t.x, t.y, t.scale, clamp(t.alpha, 0, 1)
}

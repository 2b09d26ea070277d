package driftgrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay caches an FPS/TPS readout, refreshed every ~0.5 seconds, and
// prints it in the top-left corner of the screen.
type fpsOverlay struct {
	since float64
	text  string
}

func (f *fpsOverlay) update(dt float64) {
	f.since += dt
	if f.text != "" && f.since < 0.5 {
		return
	}
	f.since = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, f.text)
}

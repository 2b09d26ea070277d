// Gallery: a browsable media wall with a detail view.
//
// Eighty procedural artworks, one in five a looping clip, spread across an
// endless draggable field. Tap a tile to glide it to the anchor and open a
// detail card; click anywhere or press Escape to close it. The wall holds
// its entrance until a simulated asset warmup finishes.
//
// Demonstrates: manual ebiten.Game wiring, VideoSource playback frames,
// detail view suspension, EventStore statistics, and the ready-gated
// entrance.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/driftgrid"
)

// ---- configuration --------------------------------------------------------

const (
	screenW = 1280
	screenH = 720

	cellSize   = 240
	catalogLen = 80 // one in five entries is a clip
	artSize    = 256

	clipFrames = 24 // pre-rendered frames per clip loop
	clipFPS    = 12.0
	scanHeight = 10 // clip scanline thickness in pixels

	warmupFrames = 90 // simulated asset load before the entrance may start

	cardSize = 460 // detail card edge length in pixels
)

// ---- media source ---------------------------------------------------------

// studioSource serves pre-rendered posters and clip frame loops. Posters are
// banded gradients stamped with the item's ID; clips reuse their poster with
// a bright scanline that sweeps down the tile over the loop.
type studioSource struct {
	posters map[driftgrid.MediaID]*ebiten.Image
	clips   map[driftgrid.MediaID][]*ebiten.Image
}

func (s *studioSource) ImageFor(item driftgrid.MediaItem) *ebiten.Image {
	return s.posters[item.ID]
}

func (s *studioSource) FrameFor(item driftgrid.MediaItem, playhead float64) *ebiten.Image {
	frames := s.clips[item.ID]
	if len(frames) == 0 {
		return nil
	}
	return frames[int(playhead*clipFPS)%len(frames)]
}

// ---- game -----------------------------------------------------------------

// gallery wires the engine and renderer into ebiten's game loop and layers
// a loading gate, a HUD, and the detail card on top.
type gallery struct {
	engine   *driftgrid.Engine
	renderer *driftgrid.Renderer
	source   *studioSource

	warmup int
	ready  bool

	mouseDown bool
	escDown   bool

	detail     bool
	detailItem driftgrid.MediaItem

	wraps   int
	settles int

	dim *ebiten.Image // 1x1 black, scaled over the screen for overlays
}

// EmitEvent implements driftgrid.EventStore. The gallery keeps running
// counts for the HUD instead of forwarding into an ECS world.
func (g *gallery) EmitEvent(ev driftgrid.FieldEvent) {
	switch ev.Kind {
	case driftgrid.EventWrap:
		g.wraps++
	case driftgrid.EventSettle:
		g.settles++
	}
}

func main() {
	source := &studioSource{
		posters: make(map[driftgrid.MediaID]*ebiten.Image, catalogLen),
		clips:   make(map[driftgrid.MediaID][]*ebiten.Image),
	}

	items := make([]driftgrid.MediaItem, catalogLen)
	for i := range items {
		items[i] = makeItem(i, source)
	}

	cfg := driftgrid.DefaultConfig()
	cfg.CellSize = cellSize
	cfg.MaxActiveVideos = 3

	renderer := driftgrid.NewRenderer(cellSize, source)
	engine := driftgrid.New(driftgrid.NewCatalog(items), renderer, cfg)

	g := &gallery{
		engine:   engine,
		renderer: renderer,
		source:   source,
		warmup:   warmupFrames,
	}
	engine.SetEventStore(g)
	engine.OnSelect = func(ev driftgrid.SelectionEvent) {
		g.detail = true
		g.detailItem = ev.Item
		engine.SetDetailOpen(true)
	}

	ebiten.SetWindowTitle("Driftgrid — Gallery")
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// ---- update ---------------------------------------------------------------

func (g *gallery) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if !g.ready {
		g.warmup--
		if g.warmup <= 0 {
			g.ready = true
			g.engine.SetIntroReady()
		}
	}

	esc := ebiten.IsKeyPressed(ebiten.KeyEscape)
	if esc && !g.escDown && g.detail {
		g.closeDetail()
	}
	g.escDown = esc

	g.pollMouse()
	if dx, dy := ebiten.Wheel(); (dx != 0 || dy != 0) && !g.detail {
		g.engine.Wheel(dx, dy)
	}

	g.engine.Step(dt)
	g.renderer.Update(dt)
	return nil
}

// pollMouse forwards left-button transitions to the engine. While the detail
// card is up, a press closes it instead; the engine ignores the stray
// release that follows.
func (g *gallery) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case down && !g.mouseDown:
		if g.detail {
			g.closeDetail()
		} else {
			g.engine.PointerDown(x, y)
		}
	case down:
		g.engine.PointerMove(x, y)
	case g.mouseDown:
		g.engine.PointerUp(x, y)
	default:
		g.engine.PointerMove(x, y)
	}
	g.mouseDown = down
}

func (g *gallery) closeDetail() {
	g.detail = false
	g.engine.SetDetailOpen(false)
}

// ---- draw -----------------------------------------------------------------

func (g *gallery) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)

	playing := 0
	for i := range g.engine.Len() {
		if g.engine.VideoState(i) == driftgrid.VideoPlaying {
			playing++
		}
	}
	msg := fmt.Sprintf("tiles %d  wraps %d  settles %d  playing %d  speed %.0f",
		g.engine.Len(), g.wraps, g.settles, playing, g.engine.Speed())
	ebitenutil.DebugPrintAt(screen, msg, 4, screen.Bounds().Dy()-16)

	if !g.ready {
		g.drawLoading(screen)
		return
	}
	if g.detail {
		g.drawDetail(screen)
	}
}

func (g *gallery) drawLoading(screen *ebiten.Image) {
	g.fillDim(screen, 0.55)
	b := screen.Bounds()
	dots := (warmupFrames - g.warmup) / 20 % 4
	msg := "LOADING ARTWORK" + "...."[:dots+1]
	ebitenutil.DebugPrintAt(screen, msg, b.Dx()/2-56, b.Dy()/2)
}

// drawDetail dims the wall and draws the selected artwork as a centered
// card with a caption, cover-scaled the same way the renderer draws tiles.
func (g *gallery) drawDetail(screen *ebiten.Image) {
	g.fillDim(screen, 0.65)
	b := screen.Bounds()
	x0 := float64(b.Dx()-cardSize) / 2
	y0 := float64(b.Dy()-cardSize)/2 - 20

	art := g.source.ImageFor(g.detailItem)
	if art != nil {
		rect := image.Rect(int(x0), int(y0), int(x0)+cardSize, int(y0)+cardSize).Intersect(b)
		if !rect.Empty() {
			clip := screen.SubImage(rect).(*ebiten.Image)
			iw, ih := art.Bounds().Dx(), art.Bounds().Dy()
			s := math.Max(cardSize/float64(iw), cardSize/float64(ih))
			op := &ebiten.DrawImageOptions{}
			op.Filter = ebiten.FilterLinear
			op.GeoM.Scale(s, s)
			op.GeoM.Translate(x0+(cardSize-float64(iw)*s)/2, y0+(cardSize-float64(ih)*s)/2)
			clip.DrawImage(art, op)
		}
	}

	caption := fmt.Sprintf("%s (%d)", g.detailItem.Title, g.detailItem.Year)
	if g.detailItem.Kind == driftgrid.MediaVideo {
		caption += "  [clip]"
	}
	ebitenutil.DebugPrintAt(screen, caption, int(x0), int(y0)+cardSize+10)
	ebitenutil.DebugPrintAt(screen, "click or press Escape to close", int(x0), int(y0)+cardSize+26)
}

func (g *gallery) fillDim(screen *ebiten.Image, alpha float64) {
	if g.dim == nil {
		g.dim = ebiten.NewImage(1, 1)
		g.dim.Fill(color.Black)
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(g.dim, op)
}

// Layout hands the window size to the engine, which debounces its own pool
// rebuild, and renders 1:1.
func (g *gallery) Layout(w, h int) (int, int) {
	g.engine.SetViewport(float64(w), float64(h))
	return w, h
}

// ---- procedural media -----------------------------------------------------

// makeItem builds catalog entry i and registers its artwork with the source.
// Every fifth entry is a clip with a pre-rendered frame loop.
func makeItem(i int, source *studioSource) driftgrid.MediaItem {
	isClip := i%5 == 4
	var id driftgrid.MediaID
	kind := driftgrid.MediaImage
	if isClip {
		id = driftgrid.MediaID(fmt.Sprintf("clip-%02d", i))
		kind = driftgrid.MediaVideo
	} else {
		id = driftgrid.MediaID(fmt.Sprintf("still-%02d", i))
	}

	item := driftgrid.MediaItem{
		ID:      id,
		Kind:    kind,
		Sources: []string{fmt.Sprintf("mem://gallery/%s", id)},
		Title:   fmt.Sprintf("Study #%02d", i+1),
		Year:    1998 + i%27,
	}

	poster := makePoster(i, string(id))
	source.posters[id] = poster
	if isClip {
		source.clips[id] = makeClipLoop(poster)
	}
	return item
}

// makePoster renders a banded color field stamped with the media ID.
func makePoster(i int, label string) *ebiten.Image {
	img := ebiten.NewImage(artSize, artSize)
	base := hueColor(float64(i) * 360.0 / catalogLen)
	img.Fill(base)

	// The lower half darkens in three steps so tiles read as distinct art.
	for band := range 3 {
		y0 := artSize/2 + band*artSize/6
		sub := img.SubImage(image.Rect(0, y0, artSize, y0+artSize/6)).(*ebiten.Image)
		sub.Fill(scaleColor(base, 1-0.18*float64(band+1)))
	}

	ebitenutil.DebugPrintAt(img, label, 8, 8)
	return img
}

// makeClipLoop pre-renders the clip's frames: the poster with a bright
// scanline sweeping top to bottom over the loop.
func makeClipLoop(poster *ebiten.Image) []*ebiten.Image {
	frames := make([]*ebiten.Image, clipFrames)
	for f := range clipFrames {
		frame := ebiten.NewImage(artSize, artSize)
		frame.DrawImage(poster, nil)
		y := f * (artSize - scanHeight) / (clipFrames - 1)
		sub := frame.SubImage(image.Rect(0, y, artSize, y+scanHeight)).(*ebiten.Image)
		sub.Fill(color.RGBA{245, 245, 250, 255})
		frames[f] = frame
	}
	return frames
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), 255}
}

// hueColor converts a hue in degrees to a saturated RGB color.
func hueColor(h float64) color.RGBA {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 60
	f := h - math.Floor(h)
	q := uint8(255 * (1 - f))
	t := uint8(255 * f)
	switch int(h) {
	case 0:
		return color.RGBA{235, t, 70, 255}
	case 1:
		return color.RGBA{q, 235, 70, 255}
	case 2:
		return color.RGBA{70, 235, t, 255}
	case 3:
		return color.RGBA{70, q, 235, 255}
	case 4:
		return color.RGBA{t, 70, 235, 255}
	default:
		return color.RGBA{235, 70, q, 255}
	}
}

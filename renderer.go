package driftgrid

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSource resolves media items to drawable images. Hosts implement this
// over whatever loading pipeline they have; the renderer asks once per bind.
type ImageSource interface {
	// ImageFor returns the artwork for an item, or nil when it is not
	// available. A nil image draws as a flat placeholder tile.
	ImageFor(item MediaItem) *ebiten.Image
}

// VideoSource extends ImageSource with per-frame video imagery.
type VideoSource interface {
	ImageSource
	// FrameFor returns the frame at the given playhead in seconds, or nil
	// to fall back to the item's still image.
	FrameFor(item MediaItem, playhead float64) *ebiten.Image
}

// Renderer draws the tile pool onto an ebiten screen. It implements
// TileSink and VideoSink, so it receives position, scale, opacity, binding,
// and playback pushes straight from the engine and keeps its own retained
// state per slot.
type Renderer struct {
	cell   float64
	source ImageSource
	video  VideoSource // non-nil when source supplies frames

	// ClearColor fills the screen before tiles draw.
	ClearColor color.RGBA
	// Placeholder is the flat color for tiles whose artwork is missing.
	Placeholder color.RGBA

	tiles []tileVisual
	white *ebiten.Image // 1x1, lazily created
}

// tileVisual is the retained draw state for one slot.
type tileVisual struct {
	item     MediaItem
	bound    bool
	img      *ebiten.Image
	x, y     float64
	scale    float64
	opacity  float64
	visible  bool
	playing  bool
	playhead float64
}

// NewRenderer creates a renderer for square tiles of the given size. source
// may be nil, in which case every tile draws as a placeholder.
func NewRenderer(cell float64, source ImageSource) *Renderer {
	r := &Renderer{
		cell:        cell,
		source:      source,
		ClearColor:  color.RGBA{R: 35, G: 30, B: 45, A: 255},
		Placeholder: color.RGBA{R: 58, G: 54, B: 70, A: 255},
	}
	r.video, _ = source.(VideoSource)
	return r
}

func (r *Renderer) grow(slot int) {
	for len(r.tiles) <= slot {
		r.tiles = append(r.tiles, tileVisual{scale: 1, opacity: 1})
	}
}

// SetPosition implements TileSink.
func (r *Renderer) SetPosition(slot int, x, y float64) {
	r.grow(slot)
	r.tiles[slot].x = x
	r.tiles[slot].y = y
}

// SetScale implements TileSink.
func (r *Renderer) SetScale(slot int, scale float64) {
	r.grow(slot)
	r.tiles[slot].scale = scale
}

// SetOpacity implements TileSink.
func (r *Renderer) SetOpacity(slot int, opacity float64) {
	r.grow(slot)
	r.tiles[slot].opacity = opacity
}

// SetVisible implements TileSink.
func (r *Renderer) SetVisible(slot int, visible bool) {
	r.grow(slot)
	r.tiles[slot].visible = visible
}

// BindMedia implements TileSink. The slot's artwork is resolved immediately;
// any running playback state is discarded with the old media.
func (r *Renderer) BindMedia(slot int, item MediaItem) {
	r.grow(slot)
	v := &r.tiles[slot]
	v.item = item
	v.bound = true
	v.playing = false
	v.playhead = 0
	v.img = nil
	if r.source != nil {
		v.img = r.source.ImageFor(item)
	}
}

// StartVideo implements VideoSink.
func (r *Renderer) StartVideo(slot int) {
	r.grow(slot)
	r.tiles[slot].playing = true
	r.tiles[slot].playhead = 0
}

// StopVideo implements VideoSink.
func (r *Renderer) StopVideo(slot int) {
	r.grow(slot)
	r.tiles[slot].playing = false
}

// Update advances playback clocks. Call once per frame before Draw.
func (r *Renderer) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range r.tiles {
		if r.tiles[i].playing {
			r.tiles[i].playhead += dt
		}
	}
}

// Draw clears the screen and renders every visible tile. Tiles scale about
// their center and artwork covers the tile, cropped by a screen subimage.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.ClearColor)
	bounds := screen.Bounds()

	for i := range r.tiles {
		v := &r.tiles[i]
		if !v.visible || v.opacity <= 0 || v.scale <= 0 {
			continue
		}
		side := r.cell * v.scale
		x0 := v.x + (r.cell-side)/2
		y0 := v.y + (r.cell-side)/2

		rect := image.Rect(
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x0+side)), int(math.Round(y0+side)),
		).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		clip := screen.SubImage(rect).(*ebiten.Image)

		img := v.img
		if v.playing && r.video != nil {
			if f := r.video.FrameFor(v.item, v.playhead); f != nil {
				img = f
			}
		}
		if img == nil {
			r.fillRect(clip, rect, r.Placeholder, v.opacity)
			continue
		}
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		if iw == 0 || ih == 0 {
			continue
		}

		// Cover the tile: uniform scale to the larger required factor,
		// centered. The subimage clips the overflow.
		s := math.Max(side/float64(iw), side/float64(ih))
		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterLinear
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(x0+(side-float64(iw)*s)/2, y0+(side-float64(ih)*s)/2)
		op.ColorScale.ScaleAlpha(float32(v.opacity))
		clip.DrawImage(img, op)
	}
}

// fillRect draws a flat colored rectangle through the shared 1x1 image.
func (r *Renderer) fillRect(clip *ebiten.Image, rect image.Rectangle, c color.RGBA, opacity float64) {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(opacity))
	clip.DrawImage(r.white, op)
}

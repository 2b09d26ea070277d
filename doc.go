// Package driftgrid is an endless draggable media-tile field for [Ebitengine].
//
// Driftgrid animates a virtual grid of media tiles that the user pans by
// dragging and flinging. The grid wraps toroidally over a fixed pool of
// tile slots, so any distance of travel reuses the same slots while media
// assignments change only at the moment a tile wraps across the field.
// On top of the pan it layers a distance-delayed ripple that makes the
// field trail the pointer like fabric, a staggered spring intro, and a
// playback budget for video tiles.
//
// Full documentation, tutorials, and examples are available at:
//
// https://phanxgames.github.io/driftgrid/
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	catalog := driftgrid.NewCatalog(items)
//	renderer := driftgrid.NewRenderer(260, source)
//	engine := driftgrid.New(catalog, renderer, driftgrid.DefaultConfig())
//	engine.SetIntroReady()
//	driftgrid.Run(engine, renderer, driftgrid.RunConfig{
//		Title: "Media Wall", Width: 960, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself, feed pointer input to
// the [Engine], and call [Engine.Step] and [Renderer.Draw] directly:
//
//	type Game struct {
//		engine   *driftgrid.Engine
//		renderer *driftgrid.Renderer
//	}
//
//	func (g *Game) Update() error {
//		x, y := ebiten.CursorPosition()
//		// ... translate cursor and touch state into PointerDown/Move/Up ...
//		g.engine.Step(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image) { g.renderer.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.engine.SetViewport(float64(w), float64(h))
//		return w, h
//	}
//
// # The tile field
//
// The engine owns a pool of [TileSlot] values sized to cover the viewport
// plus a guard band. Each slot carries a virtual grid coordinate and an
// index into the [Catalog]; as the view pans, slots that fall behind the
// band wrap to the far side and are rebound to fresh media. The engine
// never draws. It pushes every visual change through a [TileSink], so the
// same core drives the bundled [Renderer], a headless [RecordingSink] in
// tests, or any sink you implement.
//
//	engine.OnSelect = func(ev driftgrid.SelectionEvent) {
//		fmt.Println("tapped", ev.Item.ID)
//	}
//
// Sinks that also implement [VideoSink] receive play and stop calls from
// the video scheduler, which keeps at most a configured number of the
// most central video tiles playing.
//
// # Key features
//
// Driftgrid includes inertial fling with exponential smoothing, a pointer
// ripple with settle detection, tap selection with a glide that centers
// the chosen tile, a ready-gated spring intro (via [harmonica]), detail
// view suspension, debounced viewport rebuilds, media failure handling,
// scripted input playback for demos and tests, and typed field events
// (via [Donburi] adapter in driftgrid/ecs).
//
// See the full docs for guides on each feature:
// https://phanxgames.github.io/driftgrid/
//
// [Ebitengine]: https://ebitengine.org
// [harmonica]: https://github.com/charmbracelet/harmonica
// [Donburi]: https://github.com/yohamta/donburi
package driftgrid

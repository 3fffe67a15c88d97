package ebitenview

import (
	"image"
	"image/color"

	canvas "github.com/JusticeDevHub/canvas-engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Options configures a Game.
type Options struct {
	// Title is the window title.
	Title string
	// TPS is the tick rate. Each tick advances the scene by 1/TPS seconds.
	// Defaults to 60.
	TPS int
	// Background fills the screen before nodes are drawn. Defaults to black.
	Background color.Color
	// Foreground is the default node colour. Defaults to white.
	Foreground color.Color
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives Screenshot captures. Defaults to "screenshots".
	ScreenshotDir string
	// Logger reports screenshot failures. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.TPS <= 0 {
		o.TPS = 60
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	if o.Foreground == nil {
		o.Foreground = color.White
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Game implements ebiten.Game for a canvas scene. Update is the input layer
// and frame scheduler; Draw is the render layer.
type Game struct {
	scene *canvas.Scene
	view  *View
	opts  Options
	dt    float64

	cursor     image.Point
	cursorSeen bool
	keys       []ebiten.Key

	fps   *fpsOverlay
	shots []string
}

// New creates a Game driving scene, which must have been created over view.
func New(scene *canvas.Scene, view *View, opts Options) *Game {
	opts.applyDefaults()
	g := &Game{
		scene: scene,
		view:  view,
		opts:  opts,
		dt:    1.0 / float64(opts.TPS),
	}
	if opts.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Scene returns the driven scene.
func (g *Game) Scene() *canvas.Scene { return g.scene }

// Update observes input then advances the scene by one tick. It returns
// ebiten.Termination once the scene has been shut down.
func (g *Game) Update() error {
	if g.scene.Closed() {
		return ebiten.Termination
	}
	g.processInput()
	g.scene.AdvanceFrame(g.dt)
	if g.fps != nil {
		g.fps.update(g.dt)
	}
	return nil
}

// processInput forwards the cursor, left clicks and key transitions.
func (g *Game) processInput() {
	mx, my := ebiten.CursorPosition()
	g.observeCursor(image.Pt(mx, my))

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.scene.Click(float64(mx), float64(my))
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.scene.KeyDown(k.String())
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.scene.KeyUp(k.String())
	}
}

// observeCursor reports the cursor to the scene when it has moved.
func (g *Game) observeCursor(p image.Point) {
	if g.cursorSeen && p == g.cursor {
		return
	}
	g.cursor = p
	g.cursorSeen = true
	g.scene.ObservePointer(float64(p.X), float64(p.Y))
}

// Draw renders the scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)
	g.view.Draw(screen, g.opts.Foreground)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout returns the fixed viewport size.
func (g *Game) Layout(_, _ int) (int, int) {
	size := g.scene.Size()
	return int(size.Width), int(size.Height)
}

// Run opens the window and blocks until it is closed or the scene is shut
// down.
func (g *Game) Run() error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	if g.opts.Title != "" {
		ebiten.SetWindowTitle(g.opts.Title)
	}
	ebiten.SetTPS(g.opts.TPS)
	return ebiten.RunGame(g)
}

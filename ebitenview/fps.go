package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is refreshed.
const fpsRefresh = 0.5

// fpsOverlay displays the current FPS and TPS. The text is rebuilt every
// fpsRefresh seconds of scene time.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
	dirty   bool
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{text: "FPS: -\nTPS: -", dirty: true}
}

func (f *fpsOverlay) update(dt float64) {
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	f.dirty = true
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	if f.dirty {
		f.img.Clear()
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, f.text)
		f.dirty = false
	}
	screen.DrawImage(f.img, nil)
}

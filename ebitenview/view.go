// Package ebitenview renders a canvas scene with Ebitengine and feeds it
// pointer, key and frame ticks.
//
// Construction order is view, scene, game:
//
//	view := ebitenview.NewView(800, 600)
//	scene, err := canvas.NewScene(view, canvas.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	game := ebitenview.New(scene, view, ebitenview.Options{Title: "demo"})
//	return game.Run()
package ebitenview

import (
	"image/color"

	canvas "github.com/JusticeDevHub/canvas-engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// View is a canvas.View that draws each placed node as a filled rectangle.
// Placement bookkeeping is delegated to the embedded MemoryView.
type View struct {
	*canvas.MemoryView
	colors map[string]color.Color
}

var _ canvas.View = (*View)(nil)

// NewView creates a view for a window of width x height pixels.
func NewView(width, height int) *View {
	return &View{
		MemoryView: canvas.NewMemoryView(float64(width), float64(height)),
		colors:     make(map[string]color.Color),
	}
}

// SetColor sets the fill colour for the node id. A nil colour restores the
// default.
func (v *View) SetColor(id string, c color.Color) {
	if c == nil {
		delete(v.colors, id)
		return
	}
	v.colors[id] = c
}

// Remove implements canvas.View.
func (v *View) Remove(id string) {
	v.MemoryView.Remove(id)
	delete(v.colors, id)
}

// ScreenRect returns the on-screen rectangle of node id (top-left corner and
// size) after the container pan.
func (v *View) ScreenRect(id string) (x, y, w, h float64, ok bool) {
	p, ok := v.Placement(id)
	if !ok {
		return 0, 0, 0, 0, false
	}
	off := v.Offset()
	return p.Center.X - p.Size.Width/2 + off.X,
		p.Center.Y - p.Size.Height/2 + off.Y,
		p.Size.Width, p.Size.Height, true
}

// Draw fills every node's rectangle on screen in placement order. Nodes
// without their own colour use fill.
func (v *View) Draw(screen *ebiten.Image, fill color.Color) {
	for _, id := range v.IDs() {
		x, y, w, h, ok := v.ScreenRect(id)
		if !ok || w <= 0 || h <= 0 {
			continue
		}
		clr := fill
		if c, ok := v.colors[id]; ok {
			clr = c
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
	}
}

// Package layout loads declarative scene descriptions from YAML and applies
// them to a canvas scene.
//
// A layout lists top-level objects with their position, size, tags,
// variables, an optional initial movement, children and script bindings:
//
//	camera: {x: 0, y: 0}
//	objects:
//	  - id: hero
//	    x: -100
//	    width: 32
//	    height: 32
//	    tags: [player]
//	    move: {x: 100, y: 0, speed: 50}
//	    functions: {greet: hero_greet}
//	    collisions: {coin: hero_pickup}
//	    children:
//	      - id: shadow
//	        y: -20
package layout

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	canvas "github.com/JusticeDevHub/canvas-engine"

	"gopkg.in/yaml.v3"
)

// ErrNoBinder is returned by Apply when the layout names script bindings but
// no Binder was given.
var ErrNoBinder = errors.New("layout: script bindings require a binder")

// Layout is a decoded scene description.
type Layout struct {
	Camera  *Point   `yaml:"camera,omitempty"`
	Objects []Object `yaml:"objects"`
}

// Point is a logical position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Move is an initial linear movement.
type Move struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"`
}

// Object describes one object and its subtree. Width and Height default to
// the scene's default size when omitted.
type Object struct {
	ID        string         `yaml:"id"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Width     *float64       `yaml:"width,omitempty"`
	Height    *float64       `yaml:"height,omitempty"`
	Tags      []string       `yaml:"tags,omitempty"`
	Variables map[string]any `yaml:"variables,omitempty"`
	Move      *Move          `yaml:"move,omitempty"`
	Children  []Object       `yaml:"children,omitempty"`
	// Functions maps an object function name to a script function name.
	Functions map[string]string `yaml:"functions,omitempty"`
	// Collisions maps a collision tag to a script function name.
	Collisions map[string]string `yaml:"collisions,omitempty"`
}

// Binder attaches script functions to objects. script.Engine implements it.
type Binder interface {
	BindFunction(o *canvas.Object, name, fn string) error
	BindCollision(o *canvas.Object, tag, fn string) error
}

// Load decodes a layout from r.
func Load(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return &l, nil
		}
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &l, nil
}

// LoadFile decodes the layout file at path.
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout %s: %w", path, err)
	}
	defer f.Close()
	l, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Apply creates the layout's objects in scene, in document order, and binds
// their script functions through binder. binder may be nil when the layout
// has no bindings. Apply stops at the first binding error; objects created
// before it stay in the scene.
func (l *Layout) Apply(scene *canvas.Scene, binder Binder) error {
	if binder == nil && l.hasBindings() {
		return ErrNoBinder
	}
	if l.Camera != nil {
		scene.Camera().SetPosition(l.Camera.X, l.Camera.Y)
	}
	for i := range l.Objects {
		entry := &l.Objects[i]
		if err := entry.apply(scene.CreateObject(entry.ID), binder); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layout) hasBindings() bool {
	for i := range l.Objects {
		if l.Objects[i].hasBindings() {
			return true
		}
	}
	return false
}

func (e *Object) hasBindings() bool {
	if len(e.Functions) > 0 || len(e.Collisions) > 0 {
		return true
	}
	for i := range e.Children {
		if e.Children[i].hasBindings() {
			return true
		}
	}
	return false
}

func (e *Object) apply(o *canvas.Object, binder Binder) error {
	size := o.Size()
	if e.Width != nil {
		size.Width = *e.Width
	}
	if e.Height != nil {
		size.Height = *e.Height
	}
	o.SetSize(size.Width, size.Height).SetPosition(e.X, e.Y)

	for _, tag := range e.Tags {
		o.AddTag(tag)
	}
	for _, key := range slices.Sorted(maps.Keys(e.Variables)) {
		o.SetVariable(key, e.Variables[key])
	}
	for _, name := range slices.Sorted(maps.Keys(e.Functions)) {
		if err := binder.BindFunction(o, name, e.Functions[name]); err != nil {
			return fmt.Errorf("object %q function %q: %w", o.ID(), name, err)
		}
	}
	for _, tag := range slices.Sorted(maps.Keys(e.Collisions)) {
		if err := binder.BindCollision(o, tag, e.Collisions[tag]); err != nil {
			return fmt.Errorf("object %q collision %q: %w", o.ID(), tag, err)
		}
	}
	for i := range e.Children {
		child := &e.Children[i]
		if err := child.apply(o.CreateChild(child.ID), binder); err != nil {
			return err
		}
	}
	if e.Move != nil {
		o.MoveTo(e.Move.X, e.Move.Y, e.Move.Speed)
	}
	return nil
}

// Package script exposes a canvas scene to Lua.
//
// Scripts see a global scene table:
//
//	local hero = scene.create("hero")
//	hero:set_position(-100, 0):move_to(100, 0, 50)
//	hero:on_collision("coin", function(self, other) other:destroy() end)
//	local x, y = scene.pointer()
//	scene.camera():follow(hero, 0.1)
//
// Lua functions can also be bound from Go, which is how layout files attach
// behaviour to objects.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	canvas "github.com/JusticeDevHub/canvas-engine"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const (
	objectTypeName = "canvas.object"
	cameraTypeName = "canvas.camera"
)

// Engine wraps a single gopher-lua VM bound to one scene.
// Single-goroutine access only, like the scene itself.
type Engine struct {
	vm    *lua.LState
	scene *canvas.Scene
	log   *zap.Logger

	// objects holds one userdata per object so Lua sees stable identities.
	objects map[*canvas.Object]*lua.LUserData
	pruneAt int
}

// NewEngine creates a Lua VM with the scene API installed.
func NewEngine(scene *canvas.Scene, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		vm:      lua.NewState(),
		scene:   scene,
		log:     log,
		objects: make(map[*canvas.Object]*lua.LUserData),
		pruneAt: minPrune,
	}
	e.vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e.registerTypes()
	e.vm.SetGlobal("scene", e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"object":  e.sceneObject,
		"create":  e.sceneCreate,
		"camera":  e.sceneCamera,
		"pointer": e.scenePointer,
	}))
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

// LoadDir runs every .lua file in dir in name order. A missing directory is
// not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Call invokes the global Lua function fn with args and returns its first
// result.
func (e *Engine) Call(fn string, args ...any) (any, error) {
	f, err := e.function(fn)
	if err != nil {
		return nil, err
	}
	return e.call(f, e.values(args...)...)
}

// BindFunction stores a function named name on o that calls the global Lua
// function fn with the object followed by the call arguments.
func (e *Engine) BindFunction(o *canvas.Object, name, fn string) error {
	f, err := e.function(fn)
	if err != nil {
		return err
	}
	o.CreateFunction(name, e.wrapFunction(f, fn))
	return nil
}

// BindCollision registers the global Lua function fn as o's collision
// handler for tag. It is called with (self, other).
func (e *Engine) BindCollision(o *canvas.Object, tag, fn string) error {
	f, err := e.function(fn)
	if err != nil {
		return err
	}
	o.OnCollision(tag, e.wrapCollision(f, fn))
	return nil
}

func (e *Engine) function(name string) (*lua.LFunction, error) {
	f, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua function %s not found", name)
	}
	return f, nil
}

func (e *Engine) wrapFunction(f *lua.LFunction, name string) canvas.Function {
	return func(o *canvas.Object, args ...any) any {
		ret, err := e.call(f, append([]lua.LValue{e.objectValue(o)}, e.values(args...)...)...)
		if err != nil {
			e.log.Error("lua function error", zap.String("function", name),
				zap.String("object", o.ID()), zap.Error(err))
			return nil
		}
		return ret
	}
}

func (e *Engine) wrapCollision(f *lua.LFunction, name string) canvas.CollisionHandler {
	return func(self, other *canvas.Object) {
		if _, err := e.call(f, e.objectValue(self), e.objectValue(other)); err != nil {
			e.log.Error("lua collision handler error", zap.String("function", name),
				zap.String("object", self.ID()), zap.String("other", other.ID()), zap.Error(err))
		}
	}
}

func (e *Engine) call(f *lua.LFunction, args ...lua.LValue) (any, error) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return nil, err
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return fromLua(ret), nil
}

// --- Value conversion ---

func (e *Engine) values(args ...any) []lua.LValue {
	out := make([]lua.LValue, len(args))
	for i, a := range args {
		out[i] = e.toLua(a)
	}
	return out
}

func (e *Engine) toLua(v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case *canvas.Object:
		return e.objectValue(v)
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		if o, ok := v.Value.(*canvas.Object); ok {
			return o
		}
		return v
	default:
		return v
	}
}

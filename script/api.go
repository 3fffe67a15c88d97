package script

import (
	"maps"

	canvas "github.com/JusticeDevHub/canvas-engine"

	lua "github.com/yuin/gopher-lua"
)

func (e *Engine) registerTypes() {
	L := e.vm

	mt := L.NewTypeMetatable(objectTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id":           e.objID,
		"position":     e.objPosition,
		"set_position": e.objSetPosition,
		"set_size":     e.objSetSize,
		"move_to":      e.objMoveTo,
		"move_dir":     e.objMoveDir,
		"stop":         e.objStop,
		"moving":       e.objMoving,
		"set_var":      e.objSetVar,
		"get_var":      e.objGetVar,
		"add_tag":      e.objAddTag,
		"has_tag":      e.objHasTag,
		"on_collision": e.objOnCollision,
		"set_function": e.objSetFunction,
		"call":         e.objCall,
		"child":        e.objChild,
		"destroy":      e.objDestroy,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("object(" + checkObject(L, 1).ID() + ")"))
		return 1
	}))

	cmt := L.NewTypeMetatable(cameraTypeName)
	L.SetField(cmt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"position":     e.camPosition,
		"set_position": e.camSetPosition,
		"move_to":      e.camMoveTo,
		"follow":       e.camFollow,
		"unfollow":     e.camUnfollow,
		"stop":         e.camStop,
	}))
}

const minPrune = 64

func (e *Engine) objectValue(o *canvas.Object) lua.LValue {
	if o == nil {
		return lua.LNil
	}
	if ud, ok := e.objects[o]; ok {
		return ud
	}
	if len(e.objects) >= e.pruneAt {
		e.pruneObjects()
	}
	ud := e.vm.NewUserData()
	ud.Value = o
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(objectTypeName))
	e.objects[o] = ud
	return ud
}

// pruneObjects forgets the userdata of destroyed objects.
func (e *Engine) pruneObjects() {
	maps.DeleteFunc(e.objects, func(o *canvas.Object, _ *lua.LUserData) bool {
		return o.Destroyed()
	})
	e.pruneAt = max(minPrune, 2*len(e.objects))
}

func checkObject(L *lua.LState, n int) *canvas.Object {
	ud := L.CheckUserData(n)
	if o, ok := ud.Value.(*canvas.Object); ok {
		return o
	}
	L.ArgError(n, "object expected")
	return nil
}

func checkCamera(L *lua.LState, n int) *canvas.Camera {
	ud := L.CheckUserData(n)
	if c, ok := ud.Value.(*canvas.Camera); ok {
		return c
	}
	L.ArgError(n, "camera expected")
	return nil
}

func number(L *lua.LState, n int) float64 {
	return float64(L.CheckNumber(n))
}

// --- scene table ---

func (e *Engine) sceneObject(L *lua.LState) int {
	o, ok := e.scene.GetObject(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) sceneCreate(L *lua.LState) int {
	L.Push(e.objectValue(e.scene.CreateObject(L.OptString(1, ""))))
	return 1
}

func (e *Engine) sceneCamera(L *lua.LState) int {
	ud := L.NewUserData()
	ud.Value = e.scene.Camera()
	L.SetMetatable(ud, L.GetTypeMetatable(cameraTypeName))
	L.Push(ud)
	return 1
}

func (e *Engine) scenePointer(L *lua.LState) int {
	p := e.scene.PointerPosition()
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

// --- object methods ---

func (e *Engine) objID(L *lua.LState) int {
	L.Push(lua.LString(checkObject(L, 1).ID()))
	return 1
}

func (e *Engine) objPosition(L *lua.LState) int {
	p := checkObject(L, 1).Position()
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

func (e *Engine) objSetPosition(L *lua.LState) int {
	o := checkObject(L, 1).SetPosition(number(L, 2), number(L, 3))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objSetSize(L *lua.LState) int {
	o := checkObject(L, 1).SetSize(number(L, 2), number(L, 3))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objMoveTo(L *lua.LState) int {
	o := checkObject(L, 1).MoveTo(number(L, 2), number(L, 3), number(L, 4))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objMoveDir(L *lua.LState) int {
	o := checkObject(L, 1).MoveInDirection(number(L, 2), number(L, 3), number(L, 4))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objStop(L *lua.LState) int {
	L.Push(e.objectValue(checkObject(L, 1).StopMovement()))
	return 1
}

func (e *Engine) objMoving(L *lua.LState) int {
	L.Push(lua.LBool(checkObject(L, 1).Moving()))
	return 1
}

func (e *Engine) objSetVar(L *lua.LState) int {
	o := checkObject(L, 1).SetVariable(L.CheckString(2), fromLua(L.Get(3)))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objGetVar(L *lua.LState) int {
	v, _ := checkObject(L, 1).GetVariable(L.CheckString(2))
	L.Push(e.toLua(v))
	return 1
}

func (e *Engine) objAddTag(L *lua.LState) int {
	L.Push(e.objectValue(checkObject(L, 1).AddTag(L.CheckString(2))))
	return 1
}

func (e *Engine) objHasTag(L *lua.LState) int {
	L.Push(lua.LBool(checkObject(L, 1).HasTag(L.CheckString(2))))
	return 1
}

func (e *Engine) objOnCollision(L *lua.LState) int {
	o := checkObject(L, 1)
	tag := L.CheckString(2)
	o.OnCollision(tag, e.wrapCollision(L.CheckFunction(3), tag))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objSetFunction(L *lua.LState) int {
	o := checkObject(L, 1)
	name := L.CheckString(2)
	o.CreateFunction(name, e.wrapFunction(L.CheckFunction(3), name))
	L.Push(e.objectValue(o))
	return 1
}

func (e *Engine) objCall(L *lua.LState) int {
	o := checkObject(L, 1)
	name := L.CheckString(2)
	args := make([]any, 0, L.GetTop()-2)
	for i := 3; i <= L.GetTop(); i++ {
		args = append(args, fromLua(L.Get(i)))
	}
	ret, _ := o.CallFunction(name, args...)
	L.Push(e.toLua(ret))
	return 1
}

func (e *Engine) objChild(L *lua.LState) int {
	L.Push(e.objectValue(checkObject(L, 1).CreateChild(L.OptString(2, ""))))
	return 1
}

func (e *Engine) objDestroy(L *lua.LState) int {
	o := checkObject(L, 1)
	o.Destroy()
	delete(e.objects, o)
	return 0
}

// --- camera methods ---

func (e *Engine) camPosition(L *lua.LState) int {
	p := checkCamera(L, 1).Position()
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 2
}

func (e *Engine) camSetPosition(L *lua.LState) int {
	checkCamera(L, 1).SetPosition(number(L, 2), number(L, 3))
	L.Push(L.Get(1))
	return 1
}

func (e *Engine) camMoveTo(L *lua.LState) int {
	checkCamera(L, 1).MoveTo(number(L, 2), number(L, 3), number(L, 4))
	L.Push(L.Get(1))
	return 1
}

func (e *Engine) camFollow(L *lua.LState) int {
	checkCamera(L, 1).Follow(checkObject(L, 2), float64(L.OptNumber(3, 1)))
	L.Push(L.Get(1))
	return 1
}

func (e *Engine) camUnfollow(L *lua.LState) int {
	checkCamera(L, 1).Unfollow()
	L.Push(L.Get(1))
	return 1
}

func (e *Engine) camStop(L *lua.LState) int {
	checkCamera(L, 1).StopMovement()
	L.Push(L.Get(1))
	return 1
}

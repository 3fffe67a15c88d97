package canvas

// View is the presentation surface a Scene is bound to. The scene hands it
// node placements in presentation coordinates (origin top-left, +Y down)
// without the camera pan; the pan is delivered separately through Pan and
// applied once to the whole scene container.
type View interface {
	// Size returns the viewport dimensions in presentation units.
	Size() Size
	// Place positions the visual for id, centered at center.
	Place(id string, center Vec2, size Size)
	// Remove drops the visual for id. Unknown ids are ignored.
	Remove(id string)
	// Pan sets the presentation offset of the scene container.
	Pan(offset Vec2)
	// Detach releases the viewport binding.
	Detach()
}

// Placement is the last position and size a MemoryView received for a node.
type Placement struct {
	Center Vec2
	Size   Size
}

// MemoryView is a View that only records what it is told. It backs headless
// hosts and tests, and is what platform views embed to keep their bookkeeping.
type MemoryView struct {
	size     Size
	nodes    map[string]Placement
	order    []string
	pan      Vec2
	detached bool
}

// NewMemoryView creates a MemoryView with the given viewport dimensions.
func NewMemoryView(width, height float64) *MemoryView {
	return &MemoryView{
		size:  Size{width, height},
		nodes: make(map[string]Placement),
	}
}

// Size implements View.
func (v *MemoryView) Size() Size { return v.size }

// Place implements View.
func (v *MemoryView) Place(id string, center Vec2, size Size) {
	if _, ok := v.nodes[id]; !ok {
		v.order = append(v.order, id)
	}
	v.nodes[id] = Placement{Center: center, Size: size}
}

// Remove implements View.
func (v *MemoryView) Remove(id string) {
	if _, ok := v.nodes[id]; !ok {
		return
	}
	delete(v.nodes, id)
	for i, o := range v.order {
		if o == id {
			copy(v.order[i:], v.order[i+1:])
			v.order = v.order[:len(v.order)-1]
			break
		}
	}
}

// Pan implements View.
func (v *MemoryView) Pan(offset Vec2) { v.pan = offset }

// Detach implements View.
func (v *MemoryView) Detach() {
	v.detached = true
	v.nodes = make(map[string]Placement)
	v.order = v.order[:0]
}

// Placement returns the recorded placement for id.
func (v *MemoryView) Placement(id string) (Placement, bool) {
	p, ok := v.nodes[id]
	return p, ok
}

// IDs returns placed ids in first-placement order. The returned slice MUST
// NOT be mutated.
func (v *MemoryView) IDs() []string { return v.order }

// Offset returns the current container pan.
func (v *MemoryView) Offset() Vec2 { return v.pan }

// Detached reports whether Detach has been called.
func (v *MemoryView) Detached() bool { return v.detached }

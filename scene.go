package cursor

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, cursor events are forwarded to the ECS as
// native-compatible interaction events.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries cursor interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	CursorID string
	TargetID string
	EntityID uint32
	Point    Vec3
	Mode     Mode
}

// Scene owns the object tree the cursor intersects and selects from.
type Scene struct {
	root  *Object
	store EntityStore
	byID  map[string]*Object

	hitBuf []*Object
}

// NewScene creates a new scene with a pre-created root object.
func NewScene() *Scene {
	s := &Scene{root: NewObject("root"), byID: make(map[string]*Object)}
	s.index(s.root)
	return s
}

// Root returns the scene's root object.
func (s *Scene) Root() *Object {
	return s.root
}

// Add attaches objects directly under the root.
func (s *Scene) Add(objs ...*Object) {
	for _, o := range objs {
		s.root.AddChild(o)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// Lookup resolves an id to an attached, non-disposed object.
func (s *Scene) Lookup(id string) *Object {
	if id == "" {
		return nil
	}
	if o, ok := s.byID[id]; ok && o.ID == id && o.scene == s && !o.disposed {
		return o
	}
	// IDs are plain fields and may change after attach.
	o := findObject(s.root, id)
	if o != nil {
		s.byID[id] = o
	}
	return o
}

// Attached reports whether o is still part of this scene's tree.
func (s *Scene) Attached(o *Object) bool {
	if o == nil || o.disposed {
		return false
	}
	return isAncestor(s.root, o)
}

// index records o and its subtree as attached to s. The first attached
// object keeps a duplicated id.
func (s *Scene) index(o *Object) {
	o.scene = s
	if _, taken := s.byID[o.ID]; !taken {
		s.byID[o.ID] = o
	}
	for _, child := range o.children {
		s.index(child)
	}
}

// unindex forgets o and its subtree.
func (s *Scene) unindex(o *Object) {
	o.scene = nil
	if s.byID[o.ID] == o {
		delete(s.byID, o.ID)
		if dup := findObject(s.root, o.ID); dup != nil {
			s.byID[o.ID] = dup
		}
	}
	for _, child := range o.children {
		s.unindex(child)
	}
}

func findObject(n *Object, id string) *Object {
	if n.disposed {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, child := range n.children {
		if found := findObject(child, id); found != nil {
			return found
		}
	}
	return nil
}

func (s *Scene) emit(ev InteractionEvent) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(ev)
}

package cursor

import "strconv"

// HitShape is a ray-testable region in an object's local space (relative to
// the object's world position).
type HitShape interface {
	// IntersectRay returns the distance along the ray to the first crossing
	// of the shape. ok is false when the ray misses.
	IntersectRay(origin, dir Vec3) (t float64, ok bool)
}

// Seekable is the capability of scrub-bar-like controls: they accept a seek
// request derived from the selection point. Objects declare it by setting
// Object.Seeker.
type Seekable interface {
	Seek(req SeekRequest)
}

// SeekRequest carries the selection that triggered a seek.
type SeekRequest struct {
	CursorID string
	TargetID string
	Point    Vec3
}

// SeekFunc adapts a plain function to Seekable.
type SeekFunc func(SeekRequest)

// Seek calls f(req).
func (f SeekFunc) Seek(req SeekRequest) { f(req) }

// objectIDCounter backs generated ids. No atomic: objects are built on the host thread.
var objectIDCounter uint64

func nextObjectID() string {
	objectIDCounter++
	return "obj-" + strconv.FormatUint(objectIDCounter, 10)
}

// Object is a scene element the cursor can intersect and select. Objects form
// a tree rooted at Scene.Root; an object's world position is the sum of its
// own and its ancestors' positions.
type Object struct {
	// Identity
	ID   string
	Name string

	// Hierarchy
	Parent   *Object
	children []*Object

	Position Vec3
	Visible  bool

	// HitShape makes the object intersectable. Objects without one are
	// traversed but never hit.
	HitShape HitShape

	// Seeker registers the seek capability for this object and its
	// descendants that have none of their own.
	Seeker Seekable

	// Metadata
	UserData any
	EntityID uint32

	tags map[string]struct{}

	// scene is set while the object is attached under a scene root.
	scene *Scene

	// Per-object callbacks (nil by default)
	OnHoverEnter func(HoverEvent)
	OnHoverLeave func(HoverEvent)
	OnSelect     func(SelectEvent)

	disposed bool
}

// NewObject creates a visible object with the given id. An empty id is
// replaced by a generated one.
func NewObject(id string, tags ...string) *Object {
	if id == "" {
		id = nextObjectID()
	}
	o := &Object{ID: id, Name: id, Visible: true}
	for _, t := range tags {
		o.AddTag(t)
	}
	return o
}

// --- Tags ---

// AddTag marks the object with tag.
func (o *Object) AddTag(tag string) {
	if tag == "" {
		return
	}
	if o.tags == nil {
		o.tags = make(map[string]struct{}, 1)
	}
	o.tags[tag] = struct{}{}
}

// RemoveTag clears tag from the object.
func (o *Object) RemoveTag(tag string) {
	delete(o.tags, tag)
}

// HasTag reports whether the object carries tag.
func (o *Object) HasTag(tag string) bool {
	_, ok := o.tags[tag]
	return ok
}

// --- Tree manipulation ---

// AddChild appends child to this object's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this object (cycle).
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("cursor: cannot add nil child")
	}
	if isAncestor(child, o) {
		panic("cursor: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = o
	o.children = append(o.children, child)
	if o.scene != nil {
		o.scene.index(child)
	}
}

// RemoveChild detaches child from this object.
// Panics if child.Parent != o.
func (o *Object) RemoveChild(child *Object) {
	if child.Parent != o {
		panic("cursor: child's parent is not this object")
	}
	o.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this object from its parent.
// No-op if this object has no parent.
func (o *Object) RemoveFromParent() {
	if o.Parent == nil {
		return
	}
	o.Parent.RemoveChild(o)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object) Children() []*Object {
	return o.children
}

// Dispose removes this object from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.RemoveFromParent()
	o.dispose()
}

func (o *Object) dispose() {
	o.disposed = true
	for _, child := range o.children {
		child.Parent = nil
		child.dispose()
	}
	o.children = nil
	o.Parent = nil
	o.HitShape = nil
	o.Seeker = nil
	o.UserData = nil
	o.OnHoverEnter = nil
	o.OnHoverLeave = nil
	o.OnSelect = nil
}

// IsDisposed returns true if this object has been disposed.
func (o *Object) IsDisposed() bool {
	return o.disposed
}

// WorldPosition returns the object's position in scene space.
func (o *Object) WorldPosition() Vec3 {
	var p Vec3
	for n := o; n != nil; n = n.Parent {
		p = p.Add(n.Position)
	}
	return p
}

// SeekTarget returns the seek capability registered on this object or its
// nearest ancestor, or nil.
func (o *Object) SeekTarget() Seekable {
	for n := o; n != nil; n = n.Parent {
		if n.Seeker != nil {
			return n.Seeker
		}
	}
	return nil
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) obj.
func isAncestor(candidate, obj *Object) bool {
	for p := obj; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.Parent.
func (o *Object) removeChildByPtr(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			if child.scene != nil {
				child.scene.unindex(child)
			}
			return
		}
	}
}

package cursor

// HoverEvent is delivered on hover-enter and hover-leave. It is meant for
// appearance feedback only.
type HoverEvent struct {
	CursorID string
	TargetID string
	Target   *Object
	Point    Vec3
}

// SelectEvent is delivered to the selected object and mirrored to the cursor.
type SelectEvent struct {
	CursorID string
	TargetID string
	Target   *Object
	Point    Vec3
	Mode     Mode
}

// --- Handler registry ---

type hoverHandler struct {
	id uint32
	fn func(HoverEvent)
}

type selectHandler struct {
	id uint32
	fn func(SelectEvent)
}

type handlerRegistry struct {
	hoverEnter []hoverHandler
	hoverLeave []hoverHandler
	selects    []selectHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered cursor-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventHoverEnter:
		h.reg.hoverEnter = removeHoverHandler(h.reg.hoverEnter, h.id)
	case EventHoverLeave:
		h.reg.hoverLeave = removeHoverHandler(h.reg.hoverLeave, h.id)
	case EventSelect:
		h.reg.selects = removeSelectHandler(h.reg.selects, h.id)
	}
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSelectHandler(s []selectHandler, id uint32) []selectHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnHoverEnter registers a cursor-level callback for hover-enter events.
func (c *Cursor) OnHoverEnter(fn func(HoverEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.hoverEnter = append(c.handlers.hoverEnter, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventHoverEnter}
}

// OnHoverLeave registers a cursor-level callback for hover-leave events.
func (c *Cursor) OnHoverLeave(fn func(HoverEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.hoverLeave = append(c.handlers.hoverLeave, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventHoverLeave}
}

// OnSelect registers a cursor-level callback for the mirrored select event.
func (c *Cursor) OnSelect(fn func(SelectEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.selects = append(c.handlers.selects, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventSelect}
}

// --- Event dispatch ---

func (c *Cursor) fireHoverEnter(obj *Object, id string, point Vec3) {
	ev := HoverEvent{CursorID: c.id, TargetID: id, Target: obj, Point: point}
	// Cursor-level handlers first.
	for _, h := range c.handlers.hoverEnter {
		h.fn(ev)
	}
	// Per-object callback.
	if obj != nil && obj.OnHoverEnter != nil {
		obj.OnHoverEnter(ev)
	}
	c.emitInteraction(EventHoverEnter, obj, id, point)
}

func (c *Cursor) fireHoverLeave(obj *Object, id string, point Vec3) {
	ev := HoverEvent{CursorID: c.id, TargetID: id, Target: obj, Point: point}
	for _, h := range c.handlers.hoverLeave {
		h.fn(ev)
	}
	if obj != nil && obj.OnHoverLeave != nil {
		obj.OnHoverLeave(ev)
	}
	c.emitInteraction(EventHoverLeave, obj, id, point)
}

// --- ECS bridge ---

func (c *Cursor) emitInteraction(eventType EventType, obj *Object, id string, point Vec3) {
	if !c.cfg.NativeEvents || c.scene == nil {
		return
	}
	var entityID uint32
	if obj != nil {
		entityID = obj.EntityID
	}
	c.scene.emit(InteractionEvent{
		Type:     eventType,
		CursorID: c.id,
		TargetID: id,
		EntityID: entityID,
		Point:    point,
		Mode:     c.state.Mode,
	})
}

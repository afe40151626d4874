package cursor

import (
	"strings"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().ID != "root" {
		t.Errorf("root.ID = %q, want %q", s.Root().ID, "root")
	}
	if !s.Attached(s.Root()) {
		t.Error("root should be attached")
	}
}

func TestNewObjectGeneratesID(t *testing.T) {
	a := NewObject("")
	b := NewObject("")
	if !strings.HasPrefix(a.ID, "obj-") || a.ID == b.ID {
		t.Errorf("generated ids = %q, %q", a.ID, b.ID)
	}
	if !a.Visible {
		t.Error("new objects should be visible")
	}
}

func TestObjectTags(t *testing.T) {
	o := NewObject("o", "selectable", "")
	if !o.HasTag("selectable") {
		t.Error("HasTag(selectable) = false")
	}
	if o.HasTag("") {
		t.Error("empty tags should not be added")
	}
	o.RemoveTag("selectable")
	if o.HasTag("selectable") {
		t.Error("HasTag after RemoveTag = true")
	}
	var bare Object
	if bare.HasTag("x") {
		t.Error("zero Object should carry no tags")
	}
}

func TestSceneLookup(t *testing.T) {
	s := NewScene()
	panel := NewObject("panel")
	button := NewObject("button")
	panel.AddChild(button)
	s.Add(panel)

	if got := s.Lookup("button"); got != button {
		t.Errorf("Lookup(button) = %v", got)
	}
	if got := s.Lookup(""); got != nil {
		t.Errorf("Lookup(\"\") = %v, want nil", got)
	}
	if got := s.Lookup("missing"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}

	button.RemoveFromParent()
	if got := s.Lookup("button"); got != nil {
		t.Error("Lookup should not find detached objects")
	}
	if s.Attached(button) {
		t.Error("Attached(detached) = true")
	}
}

func TestSceneLookupIndex(t *testing.T) {
	s := NewScene()
	panel := NewObject("panel")
	s.Add(panel)
	button := NewObject("button")
	panel.AddChild(button)

	if s.byID["button"] != button {
		t.Fatal("child added under an attached parent was not indexed")
	}

	// A duplicate id resolves to the first attached object, then to the
	// other once the first leaves.
	dup := NewObject("button")
	s.Add(dup)
	if got := s.Lookup("button"); got != button {
		t.Errorf("Lookup(button) = %p, want first attached %p", got, button)
	}
	panel.RemoveFromParent()
	if got := s.Lookup("button"); got != dup {
		t.Errorf("Lookup(button) = %p, want duplicate %p", got, dup)
	}
	if _, ok := s.byID["panel"]; ok {
		t.Error("detached subtree still indexed")
	}

	// Moving a subtree between scenes re-indexes it.
	other := NewScene()
	other.Add(panel)
	if other.Lookup("button") != button || s.Lookup("panel") != nil {
		t.Error("subtree did not move between scene indexes")
	}

	dup.ID = "renamed"
	if got := s.Lookup("renamed"); got != dup {
		t.Errorf("Lookup(renamed) = %v, want the renamed object", got)
	}
	if got := s.Lookup("button"); got != nil {
		t.Errorf("Lookup(button) = %v after rename, want nil", got)
	}
}

func TestSceneAttachedAfterDispose(t *testing.T) {
	s := NewScene()
	panel := NewObject("panel")
	button := NewObject("button")
	panel.AddChild(button)
	s.Add(panel)

	panel.Dispose()
	if !button.IsDisposed() || !panel.IsDisposed() {
		t.Error("Dispose should mark the whole subtree")
	}
	if s.Attached(button) || s.Lookup("button") != nil {
		t.Error("disposed objects should not resolve")
	}
	if len(s.Root().Children()) != 0 {
		t.Errorf("root children = %d, want 0", len(s.Root().Children()))
	}
	panel.Dispose()
}

func TestAddChildReparents(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	c := NewObject("c")
	a.AddChild(c)
	b.AddChild(c)
	if c.Parent != b {
		t.Errorf("Parent = %v, want b", c.Parent)
	}
	if len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Errorf("children = %d, %d, want 0, 1", len(a.Children()), len(b.Children()))
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewObject("a").AddChild(nil) }},
		{"cycle", func() {
			a := NewObject("a")
			b := NewObject("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"self", func() {
			a := NewObject("a")
			a.AddChild(a)
		}},
		{"wrong parent", func() { NewObject("a").RemoveChild(NewObject("b")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestWorldPosition(t *testing.T) {
	a := NewObject("a")
	a.Position = Vec3{1, 0, 0}
	b := NewObject("b")
	b.Position = Vec3{0, 2, 0}
	c := NewObject("c")
	c.Position = Vec3{0, 0, -3}
	a.AddChild(b)
	b.AddChild(c)
	if got := c.WorldPosition(); got != (Vec3{1, 2, -3}) {
		t.Errorf("WorldPosition = %v, want (1,2,-3)", got)
	}
}

func TestSeekTargetNearestAncestor(t *testing.T) {
	var hits []string
	outer := NewObject("outer")
	outer.Seeker = SeekFunc(func(SeekRequest) { hits = append(hits, "outer") })
	inner := NewObject("inner")
	inner.Seeker = SeekFunc(func(SeekRequest) { hits = append(hits, "inner") })
	thumb := NewObject("thumb")
	outer.AddChild(inner)
	inner.AddChild(thumb)

	thumb.SeekTarget().Seek(SeekRequest{})
	outer.SeekTarget().Seek(SeekRequest{})
	if got := strings.Join(hits, ","); got != "inner,outer" {
		t.Errorf("seeks = %s, want inner,outer", got)
	}
	if NewObject("plain").SeekTarget() != nil {
		t.Error("SeekTarget without capability should be nil")
	}
}

func TestSceneEmitWithoutStore(t *testing.T) {
	s := NewScene()
	s.emit(InteractionEvent{Type: EventSelect})
	store := &eventStore{}
	s.SetEntityStore(store)
	s.emit(InteractionEvent{Type: EventSelect, TargetID: "x"})
	if len(store.events) != 1 || store.events[0].TargetID != "x" {
		t.Errorf("events = %+v", store.events)
	}
}

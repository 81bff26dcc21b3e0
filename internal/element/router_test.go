package element

import (
	"testing"

	"letterhead/pkg/geometry"
)

func TestRouterSelectAndDeselect(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	el := c.AddImage("", white(100, 100)) // box (50,200)-(150,300)

	hit, kind := r.PointerDown(geometry.NewPoint2D(100, 250), geometry.NewPoint2D(100, 250))
	if kind != HitBody || hit == nil {
		t.Fatalf("hit = %v/%v, want body", hit, kind)
	}
	if el.State() != StateSelected {
		t.Errorf("state = %v, want selected", el.State())
	}

	// Click outside the box and outside every control surface deselects
	// and closes panels.
	el.TogglePanel(PanelCrop)
	hit, kind = r.PointerDown(geometry.NewPoint2D(700, 900), geometry.NewPoint2D(700, 900))
	if hit != nil || kind != HitNone {
		t.Fatalf("expected miss, got %v/%v", hit, kind)
	}
	if el.State() != StateIdle {
		t.Errorf("state = %v, want idle after outside click", el.State())
	}
	if el.OpenPanel() != PanelNone {
		t.Error("outside click must close the open panel")
	}
}

func TestRouterClickOnPanelIsNotOutside(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	el := c.AddImage("", white(100, 100))
	el.Select()
	el.TogglePanel(PanelBackground)

	// Just below the element, inside the panel surface.
	box := el.BoundingBox()
	_, kind := r.PointerDown(geometry.NewPoint2D(box.X+10, box.Y+box.Height+10), geometry.Point2D{})
	if kind != HitPanel {
		t.Fatalf("kind = %v, want panel", kind)
	}
	if el.State() != StateSelected || el.OpenPanel() != PanelBackground {
		t.Error("panel click must not deselect or close the panel")
	}
}

func TestRouterDragViaMoveHandle(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	el := c.AddImage("", white(100, 100))
	el.Select()

	handle := MoveHandleRect(el.BoundingBox()).Center()
	screen := geometry.NewPoint2D(0, 0)
	_, kind := r.PointerDown(handle, screen)
	if kind != HitMoveHandle {
		t.Fatalf("kind = %v, want move handle", kind)
	}
	if el.State() != StateDragging {
		t.Fatalf("state = %v, want dragging", el.State())
	}

	start := el.Position()
	r.PointerMove(geometry.NewPoint2D(100, 50), 0.5)
	r.PointerUp()

	want := geometry.NewPoint2D(start.X+200, start.Y+100)
	if el.Position() != want {
		t.Errorf("position = %+v, want %+v", el.Position(), want)
	}
	if el.State() != StateSelected {
		t.Errorf("state = %v, want selected after pointer up", el.State())
	}
}

func TestRouterResizeViaCornerHandle(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	el := c.AddImage("", white(100, 100))
	el.Select()

	corner := el.ResizeHandleRect().Center()
	_, kind := r.PointerDown(corner, geometry.NewPoint2D(0, 0))
	if kind != HitResizeHandle {
		t.Fatalf("kind = %v, want resize handle", kind)
	}
	if el.State() != StateResizing {
		t.Fatalf("state = %v, want resizing", el.State())
	}

	r.PointerMove(geometry.NewPoint2D(60, 30), 1.0)
	r.PointerUp()

	if got := el.Size(); got != (geometry.Size{Width: 160, Height: 130}) {
		t.Errorf("size = %+v, want {160 130}", got)
	}
}

func TestRouterGestureOwnership(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	el := c.AddImage("", white(100, 100))
	el.Select()

	handle := MoveHandleRect(el.BoundingBox()).Center()
	r.PointerDown(handle, geometry.Point2D{})

	if r.Owner() != OwnerElement {
		t.Fatalf("owner = %v, want element", r.Owner())
	}
	if r.AcquireDocument() {
		t.Error("document zoom must not acquire the gesture during an element drag")
	}

	r.PointerUp()
	if r.Owner() != OwnerNone {
		t.Errorf("owner = %v, want none after pointer up", r.Owner())
	}
	if !r.AcquireDocument() {
		t.Error("document zoom should acquire the gesture when free")
	}
	r.Release()
}

func TestRouterHoverTracksPointer(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	txt := c.AddText("hello")

	inside := txt.BoundingBox().Center()
	if !r.PointerHover(inside) {
		t.Fatal("pointer over a text element should report a change")
	}
	if txt.State() != StateHovered {
		t.Fatalf("state = %v, want hovered", txt.State())
	}
	if r.PointerHover(inside) {
		t.Error("hover over the same element must not re-report a change")
	}

	if !r.PointerHover(geometry.NewPoint2D(-1, -1)) {
		t.Fatal("pointer leaving the element should report a change")
	}
	if txt.State() != StateIdle {
		t.Errorf("state = %v, want idle after pointer left", txt.State())
	}

	// A newer image now covers the same spot. Images never hover, so the
	// pointer over it highlights nothing.
	c.AddImage("", white(100, 100))
	if r.PointerHover(inside) {
		t.Error("pointer over an image must not report a hover change")
	}
	if txt.State() != StateIdle {
		t.Errorf("state = %v, want idle under a covering image", txt.State())
	}
}

func TestRouterHoverIgnoredDuringGesture(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	txt := c.AddText("hello")
	txt.Select()

	r.PointerDown(MoveHandleRect(txt.BoundingBox()).Center(), geometry.Point2D{})
	if r.Owner() != OwnerElement {
		t.Fatalf("owner = %v, want element", r.Owner())
	}
	if r.PointerHover(txt.BoundingBox().Center()) {
		t.Error("hover must not change states while a gesture is active")
	}
	if txt.State() != StateDragging {
		t.Errorf("state = %v, want dragging untouched by hover", txt.State())
	}
	r.PointerUp()
}

func TestRouterTopmostWins(t *testing.T) {
	c := NewCollection()
	r := NewRouter(c)
	bottom := c.AddImage("", white(100, 100))
	top := c.AddImage("", white(100, 100)) // same default position, newer

	el, kind := r.HitAt(geometry.NewPoint2D(100, 250))
	if kind != HitBody || el.ID() != top.ID() {
		t.Errorf("hit element %v, want the newer element %v", el.ID(), top.ID())
	}

	// A foreground-tier element wins even when older.
	bottom.TogglePanel(PanelCrop)
	el, _ = r.HitAt(geometry.NewPoint2D(100, 250))
	if el.ID() != bottom.ID() {
		t.Error("foreground-tier element must be hit-tested first")
	}
}

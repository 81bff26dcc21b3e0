package element

import (
	"letterhead/pkg/geometry"
)

const (
	// MinImageSize is the floor for image element dimensions, in document
	// pixels.
	MinImageSize = 50

	// Default insertion offset for new elements, in document pixels.
	DefaultOffsetX = 50
	DefaultOffsetY = 200

	// MoveHandleHeight is the height of the move affordance bar drawn above
	// a selected element, in document pixels.
	MoveHandleHeight = 16

	// ResizeHandleSize is the edge length of the corner resize affordance,
	// in document pixels.
	ResizeHandleSize = 12
)

// Element is an overlay object floating above the letterhead layout.
// Position and size are only ever mutated through the drag and resize
// protocols.
type Element interface {
	// ID is unique and ordered by creation, for rendering stability.
	ID() int64

	// Position is the top-left corner in document space.
	Position() geometry.Point2D

	// BoundingBox is the element's full box in document space.
	BoundingBox() geometry.Rect

	State() SelectionState

	// Foreground reports whether the element renders in the foreground
	// stacking tier: while dragging, resizing, or showing any control
	// affordance.
	Foreground() bool

	Select()
	Deselect()

	// Drag protocol. DragTo re-baselines against the last recorded pointer
	// position on every move, so the grabbed point stays under the pointer
	// at any zoom.
	BeginDrag(screen geometry.Point2D)
	DragTo(screen geometry.Point2D, zoom float64)
	EndDrag()
}

// base carries the state shared by text and image elements.
type base struct {
	id          int64
	pos         geometry.Point2D
	state       SelectionState
	lastPointer geometry.Point2D
	changed     func()
}

func (b *base) ID() int64 {
	return b.id
}

func (b *base) Position() geometry.Point2D {
	return b.pos
}

func (b *base) State() SelectionState {
	return b.state
}

// Select moves the element to the selected state. Pointer-down on the body
// during an active drag or resize cannot happen (the pointer is captured),
// so those states are left alone.
func (b *base) Select() {
	if b.state == StateDragging || b.state == StateResizing {
		return
	}
	b.state = StateSelected
}

func (b *base) Deselect() {
	b.state = StateIdle
}

func (b *base) BeginDrag(screen geometry.Point2D) {
	b.state = StateDragging
	b.lastPointer = screen
}

func (b *base) DragTo(screen geometry.Point2D, zoom float64) {
	if b.state != StateDragging {
		return
	}
	dx, dy := geometry.ToDocumentDelta(screen.X-b.lastPointer.X, screen.Y-b.lastPointer.Y, zoom)
	b.pos.X += dx
	b.pos.Y += dy
	b.lastPointer = screen
	b.markChanged()
}

func (b *base) EndDrag() {
	if b.state == StateDragging {
		b.state = StateSelected
	}
}

func (b *base) markChanged() {
	if b.changed != nil {
		b.changed()
	}
}

// MoveHandleRect returns the move affordance bar above the given bounding
// box, in document space.
func MoveHandleRect(box geometry.Rect) geometry.Rect {
	return geometry.NewRect(box.X, box.Y-MoveHandleHeight, box.Width, MoveHandleHeight)
}

// TextElement is an overlay element with externally-managed rich content.
// The content is opaque to the editor core; only its identity and position
// are tracked here. The rendering collaborator reports the measured box so
// hit-testing works.
type TextElement struct {
	base
	content  string
	measured geometry.Size
}

// Content returns the opaque rich-text payload.
func (t *TextElement) Content() string {
	return t.content
}

// SetContent replaces the opaque rich-text payload.
func (t *TextElement) SetContent(content string) {
	t.content = content
	t.markChanged()
}

// SetMeasuredSize records the rendered size reported by the text
// collaborator. It does not mark the document changed: measurement is
// derived state.
func (t *TextElement) SetMeasuredSize(s geometry.Size) {
	t.measured = s
}

// BoundingBox implements Element. A never-measured text element gets a
// small nominal box so it stays clickable.
func (t *TextElement) BoundingBox() geometry.Rect {
	w, h := t.measured.Width, t.measured.Height
	if w <= 0 {
		w = 120
	}
	if h <= 0 {
		h = 24
	}
	return geometry.NewRect(t.pos.X, t.pos.Y, w, h)
}

// Hover transitions Idle to Hovered. Only text elements hover; image
// elements show affordances from selection alone.
func (t *TextElement) Hover() {
	if t.state == StateIdle {
		t.state = StateHovered
	}
}

// Unhover transitions Hovered back to Idle.
func (t *TextElement) Unhover() {
	if t.state == StateHovered {
		t.state = StateIdle
	}
}

// Foreground implements Element.
func (t *TextElement) Foreground() bool {
	return t.state != StateIdle
}

// ControlSurfaces returns the document-space rectangles of the element's
// visible control affordances. Pointer-downs inside these must not count as
// "outside" clicks.
func (t *TextElement) ControlSurfaces() []geometry.Rect {
	if t.state == StateIdle {
		return nil
	}
	return []geometry.Rect{MoveHandleRect(t.BoundingBox())}
}

package element

import (
	"letterhead/pkg/geometry"
)

// HitKind classifies what part of an element a document-space point landed
// on.
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitMoveHandle
	HitResizeHandle
	HitPanel
)

// String returns a string representation of the hit kind.
func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitBody:
		return "body"
	case HitMoveHandle:
		return "move-handle"
	case HitResizeHandle:
		return "resize-handle"
	case HitPanel:
		return "panel"
	default:
		return "unknown"
	}
}

// GestureOwner arbitrates ambiguous multi-pointer input: while an element
// owns the gesture, document-level pinch/scroll zoom is ignored, and vice
// versa.
type GestureOwner int

const (
	OwnerNone GestureOwner = iota
	OwnerElement
	OwnerDocument
)

// Router is the single document-level input routing component. It replaces
// per-element global listeners: every pointer-down is hit-tested against
// the active element set exactly once.
type Router struct {
	elements *Collection
	owner    GestureOwner
}

// NewRouter creates a router over the given collection.
func NewRouter(c *Collection) *Router {
	return &Router{elements: c}
}

// Owner returns the current gesture owner.
func (r *Router) Owner() GestureOwner {
	return r.owner
}

// AcquireDocument claims the gesture for document-level zoom. It fails
// while an element drag or resize is in progress.
func (r *Router) AcquireDocument() bool {
	if r.owner == OwnerElement {
		return false
	}
	r.owner = OwnerDocument
	return true
}

// Release returns the gesture to nobody.
func (r *Router) Release() {
	r.owner = OwnerNone
}

// HitAt returns the topmost element under the document-space point and
// which of its surfaces was hit. Foreground-tier elements are tested before
// background ones; within a tier, newer elements win.
func (r *Router) HitAt(pt geometry.Point2D) (Element, HitKind) {
	all := r.elements.All()

	for _, foreground := range []bool{true, false} {
		for i := len(all) - 1; i >= 0; i-- {
			el := all[i]
			if el.Foreground() != foreground {
				continue
			}
			if kind := hitElement(el, pt); kind != HitNone {
				return el, kind
			}
		}
	}
	return nil, HitNone
}

func hitElement(el Element, pt geometry.Point2D) HitKind {
	if img, ok := el.(*ImageElement); ok {
		if img.State() != StateIdle || img.OpenPanel() != PanelNone {
			if img.ResizeHandleRect().Contains(pt) {
				return HitResizeHandle
			}
			if MoveHandleRect(img.BoundingBox()).Contains(pt) {
				return HitMoveHandle
			}
			for _, s := range img.ControlSurfaces() {
				if s.Contains(pt) {
					return HitPanel
				}
			}
		}
		if img.BoundingBox().Contains(pt) {
			return HitBody
		}
		return HitNone
	}

	if el.State() != StateIdle {
		if MoveHandleRect(el.BoundingBox()).Contains(pt) {
			return HitMoveHandle
		}
	}
	if el.BoundingBox().Contains(pt) {
		return HitBody
	}
	return HitNone
}

// PointerDown routes a pointer-down event. doc is the position in document
// space, screen in screen space (for the drag/resize baselines). The
// returned element, if any, consumed the event; a miss deselects everything
// and closes open panels.
func (r *Router) PointerDown(doc, screen geometry.Point2D) (Element, HitKind) {
	el, kind := r.HitAt(doc)
	switch kind {
	case HitNone:
		r.elements.DeselectAll()
		return nil, HitNone
	case HitBody:
		r.elements.DeselectOthers(el.ID())
		el.Select()
	case HitMoveHandle:
		r.elements.DeselectOthers(el.ID())
		el.BeginDrag(screen)
		r.owner = OwnerElement
	case HitResizeHandle:
		r.elements.DeselectOthers(el.ID())
		el.(*ImageElement).BeginResize(screen)
		r.owner = OwnerElement
	case HitPanel:
		// Consumed by the panel widget; nothing to route.
	}
	return el, kind
}

// PointerMove routes a pointer-move while a drag or resize is active.
func (r *Router) PointerMove(screen geometry.Point2D, zoom float64) {
	if r.owner != OwnerElement {
		return
	}
	for _, el := range r.elements.All() {
		switch el.State() {
		case StateDragging:
			el.DragTo(screen, zoom)
		case StateResizing:
			el.(*ImageElement).ResizeTo(screen, zoom)
		}
	}
}

// PointerHover updates hover highlighting for a pointer resting at the
// given document-space position. Only text elements hover. It is ignored
// while a gesture is active and reports whether any element changed state.
func (r *Router) PointerHover(doc geometry.Point2D) bool {
	if r.owner != OwnerNone {
		return false
	}
	target, _ := r.HitAt(doc)
	changed := false
	for _, t := range r.elements.Texts() {
		before := t.State()
		if target != nil && target.ID() == t.ID() {
			t.Hover()
		} else {
			t.Unhover()
		}
		if t.State() != before {
			changed = true
		}
	}
	return changed
}

// PointerUp ends any active drag or resize and releases the gesture.
func (r *Router) PointerUp() {
	for _, el := range r.elements.All() {
		switch el.State() {
		case StateDragging:
			el.EndDrag()
		case StateResizing:
			el.(*ImageElement).EndResize()
		}
	}
	if r.owner == OwnerElement {
		r.owner = OwnerNone
	}
}

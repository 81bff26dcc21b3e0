// Package element implements the overlay elements floating above the fixed
// letterhead layout: their selection state machine, the drag and resize
// protocols, and the crop mask model.
package element

import "errors"

// ErrOutOfRange indicates a rejected input value; the prior value is kept.
var ErrOutOfRange = errors.New("element: value out of range")

// SelectionState represents the interaction state of an overlay element.
type SelectionState int

const (
	// StateIdle is the resting state; the element shows no affordances.
	StateIdle SelectionState = iota
	// StateHovered applies to text elements under a pointer device.
	StateHovered
	// StateSelected shows the element's control affordances.
	StateSelected
	// StateDragging is active while the move affordance is held.
	StateDragging
	// StateResizing is active while a corner affordance is held.
	StateResizing
)

// String returns a string representation of the selection state.
func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovered:
		return "hovered"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// ToolPanel identifies which tool panel an image element has open. The
// panels are mutually exclusive by construction: a single field holds the
// open one.
type ToolPanel int

const (
	PanelNone ToolPanel = iota
	PanelBackground
	PanelCrop
)

// String returns a string representation of the tool panel.
func (p ToolPanel) String() string {
	switch p {
	case PanelNone:
		return "none"
	case PanelBackground:
		return "background"
	case PanelCrop:
		return "crop"
	default:
		return "unknown"
	}
}

package element

import (
	"image"
	"sort"
	"time"

	"letterhead/pkg/geometry"
)

// Collection is the single element set of a document. Elements are ordered
// by ID, which reflects creation order.
type Collection struct {
	texts    []*TextElement
	images   []*ImageElement
	nextID   int64
	onChange func()
}

// NewCollection creates an empty collection. IDs are seeded from the wall
// clock so they also work as creation timestamps, but only uniqueness and
// ordering are relied upon.
func NewCollection() *Collection {
	return &Collection{nextID: time.Now().UnixMilli()}
}

// OnChange registers the callback invoked after every mutation of the
// collection or of any element in it. The persistence layer hangs off this.
func (c *Collection) OnChange(fn func()) {
	c.onChange = fn
}

func (c *Collection) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Collection) allocID() int64 {
	id := c.nextID
	c.nextID++
	return id
}

// AddText creates a text element at the default insertion offset.
func (c *Collection) AddText(content string) *TextElement {
	t := &TextElement{content: content}
	t.id = c.allocID()
	t.pos = geometry.NewPoint2D(DefaultOffsetX, DefaultOffsetY)
	t.changed = c.notify
	c.texts = append(c.texts, t)
	c.notify()
	return t
}

// AddImage creates an image element at the default insertion offset. The
// source raster is immutable from here on; src is its persisted origin.
// The initial size is the natural raster size, scaled down to fit the page
// width and floored at the minimum.
func (c *Collection) AddImage(src string, img image.Image) *ImageElement {
	e := &ImageElement{source: img, src: src}
	e.id = c.allocID()
	e.pos = geometry.NewPoint2D(DefaultOffsetX, DefaultOffsetY)
	e.changed = c.notify
	e.size = initialImageSize(img)
	e.processed = e.proc.Process(img, 0)
	c.images = append(c.images, e)
	c.notify()
	return e
}

func initialImageSize(img image.Image) geometry.Size {
	const maxInitial = 400
	w, h := float64(MinImageSize), float64(MinImageSize)
	if img != nil && !img.Bounds().Empty() {
		w = float64(img.Bounds().Dx())
		h = float64(img.Bounds().Dy())
	}
	if w > maxInitial {
		h *= maxInitial / w
		w = maxInitial
	}
	if w < MinImageSize {
		w = MinImageSize
	}
	if h < MinImageSize {
		h = MinImageSize
	}
	return geometry.Size{Width: w, Height: h}
}

// Remove deletes the element with the given ID. It reports whether an
// element was removed.
func (c *Collection) Remove(id int64) bool {
	for i, t := range c.texts {
		if t.id == id {
			c.texts = append(c.texts[:i], c.texts[i+1:]...)
			c.notify()
			return true
		}
	}
	for i, e := range c.images {
		if e.id == id {
			c.images = append(c.images[:i], c.images[i+1:]...)
			c.notify()
			return true
		}
	}
	return false
}

// Texts returns the text elements in creation order.
func (c *Collection) Texts() []*TextElement {
	return c.texts
}

// Images returns the image elements in creation order.
func (c *Collection) Images() []*ImageElement {
	return c.images
}

// All returns every element sorted by ID ascending, the rendering order of
// the background tier.
func (c *Collection) All() []Element {
	out := make([]Element, 0, len(c.texts)+len(c.images))
	for _, t := range c.texts {
		out = append(out, t)
	}
	for _, e := range c.images {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of elements.
func (c *Collection) Len() int {
	return len(c.texts) + len(c.images)
}

// Selected returns the currently selected (or dragging/resizing) element,
// or nil.
func (c *Collection) Selected() Element {
	for _, el := range c.All() {
		switch el.State() {
		case StateSelected, StateDragging, StateResizing:
			return el
		}
	}
	return nil
}

// DeselectAll moves every element to the idle state and closes any open
// tool panels.
func (c *Collection) DeselectAll() {
	for _, t := range c.texts {
		t.Deselect()
	}
	for _, e := range c.images {
		e.Deselect()
	}
}

// DeselectOthers deselects every element except the given one.
func (c *Collection) DeselectOthers(id int64) {
	for _, t := range c.texts {
		if t.id != id {
			t.Deselect()
		}
	}
	for _, e := range c.images {
		if e.id != id {
			e.Deselect()
		}
	}
}

package element

import (
	"image"
	"log"

	"letterhead/pkg/geometry"
)

// TextRecord is the persisted form of a text element.
type TextRecord struct {
	ID       int64            `json:"id"`
	Position geometry.Point2D `json:"position"`
	Content  string           `json:"content,omitempty"`
}

// ImageRecord is the persisted form of an image element.
type ImageRecord struct {
	ID        int64            `json:"id"`
	Position  geometry.Point2D `json:"position"`
	Size      *geometry.Size   `json:"size,omitempty"`
	Crop      *CropRect        `json:"crop,omitempty"`
	Threshold int              `json:"threshold,omitempty"`
	Src       string           `json:"src,omitempty"`
}

// Snapshot returns the persisted forms of every element.
func (c *Collection) Snapshot() ([]TextRecord, []ImageRecord) {
	texts := make([]TextRecord, 0, len(c.texts))
	for _, t := range c.texts {
		texts = append(texts, TextRecord{
			ID:       t.id,
			Position: t.pos,
			Content:  t.content,
		})
	}

	images := make([]ImageRecord, 0, len(c.images))
	for _, e := range c.images {
		rec := ImageRecord{
			ID:        e.id,
			Position:  e.pos,
			Threshold: e.threshold,
			Src:       e.src,
		}
		size := e.size
		rec.Size = &size
		if !e.crop.Zero() {
			crop := e.crop
			rec.Crop = &crop
		}
		images = append(images, rec)
	}
	return texts, images
}

// Restore replaces the collection contents from persisted records. decode
// turns a persisted src back into a raster; entries whose src cannot be
// decoded, or whose values are out of range, are skipped or normalized
// rather than failing the load.
func (c *Collection) Restore(texts []TextRecord, images []ImageRecord, decode func(src string) (image.Image, error)) {
	c.texts = nil
	c.images = nil

	for _, rec := range texts {
		t := &TextElement{content: rec.Content}
		t.id = rec.ID
		t.pos = rec.Position
		t.changed = c.notify
		c.texts = append(c.texts, t)
		if rec.ID >= c.nextID {
			c.nextID = rec.ID + 1
		}
	}

	for _, rec := range images {
		var img image.Image
		if decode != nil && rec.Src != "" {
			var err error
			img, err = decode(rec.Src)
			if err != nil {
				log.Printf("skipping stored image %d: %v", rec.ID, err)
				continue
			}
		}

		e := &ImageElement{source: img, src: rec.Src}
		e.id = rec.ID
		e.pos = rec.Position
		e.changed = c.notify
		if rec.Size != nil && rec.Size.Width >= MinImageSize && rec.Size.Height >= MinImageSize {
			e.size = *rec.Size
		} else {
			e.size = initialImageSize(img)
		}
		if rec.Crop != nil && validCrop(*rec.Crop) {
			e.crop = *rec.Crop
		}
		if rec.Threshold >= 0 && rec.Threshold <= 100 {
			e.threshold = rec.Threshold
		}
		e.processed = e.proc.Process(img, e.threshold)
		c.images = append(c.images, e)
		if rec.ID >= c.nextID {
			c.nextID = rec.ID + 1
		}
	}

	c.notify()
}

func validCrop(cr CropRect) bool {
	for _, v := range [4]int{cr.Top, cr.Right, cr.Bottom, cr.Left} {
		if v < 0 || v > 50 {
			return false
		}
	}
	return true
}

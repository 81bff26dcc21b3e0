package storage

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"letterhead/internal/element"
	"letterhead/internal/imaging"
)

// Storage keys, one record per element collection.
const (
	KeyTextElements  = "letterhead.textElements"
	KeyImageElements = "letterhead.imageElements"
)

// SaveElements persists the collection as one JSON record per element list.
func SaveElements(s Store, c *element.Collection) error {
	texts, images := c.Snapshot()

	textData, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("marshal text elements: %w", err)
	}
	imageData, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("marshal image elements: %w", err)
	}

	if err := s.Save(KeyTextElements, string(textData)); err != nil {
		return fmt.Errorf("save text elements: %w", err)
	}
	if err := s.Save(KeyImageElements, string(imageData)); err != nil {
		return fmt.Errorf("save image elements: %w", err)
	}
	return nil
}

// LoadElements restores the collection from storage. Missing or malformed
// records degrade to an empty list with a logged warning; loading never
// fails the caller.
func LoadElements(s Store, c *element.Collection) {
	var texts []element.TextRecord
	if raw, ok := s.Load(KeyTextElements); ok {
		if err := json.Unmarshal([]byte(raw), &texts); err != nil {
			log.Printf("ignoring malformed text element record: %v", err)
			texts = nil
		}
	}

	var images []element.ImageRecord
	if raw, ok := s.Load(KeyImageElements); ok {
		if err := json.Unmarshal([]byte(raw), &images); err != nil {
			log.Printf("ignoring malformed image element record: %v", err)
			images = nil
		}
	}

	c.Restore(texts, images, func(src string) (image.Image, error) {
		return imaging.DecodeDataURL(src)
	})
}

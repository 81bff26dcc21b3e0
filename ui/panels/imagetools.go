// Package panels provides the editing side panels.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"letterhead/internal/element"
	"letterhead/internal/imaging"
)

// ImageToolsPanel edits the selected image element: background removal
// threshold and per-side crop insets.
type ImageToolsPanel struct {
	target *element.ImageElement

	threshold  *widget.Slider
	thresholdL *widget.Label
	suggest    *widget.Button

	cropEntries map[element.CropSide]*widget.Entry
	resetCrop   *widget.Button

	onEdited func()

	content fyne.CanvasObject
}

// NewImageToolsPanel builds the panel. onEdited is called after any
// successful edit so the canvas can redraw.
func NewImageToolsPanel(onEdited func()) *ImageToolsPanel {
	p := &ImageToolsPanel{
		onEdited:    onEdited,
		cropEntries: make(map[element.CropSide]*widget.Entry),
	}

	p.threshold = widget.NewSlider(0, 100)
	p.threshold.Step = 1
	p.thresholdL = widget.NewLabel("0")
	p.threshold.OnChanged = func(v float64) {
		if p.target == nil {
			return
		}
		if err := p.target.SetThreshold(int(v)); err != nil {
			return
		}
		p.thresholdL.SetText(fmt.Sprintf("%d", int(v)))
		p.notify()
	}

	p.suggest = widget.NewButton("Suggest", func() {
		if p.target == nil {
			return
		}
		t := imaging.SuggestThreshold(p.target.Source())
		p.threshold.SetValue(float64(t))
	})

	cropForm := widget.NewForm()
	for _, side := range []struct {
		name string
		side element.CropSide
	}{
		{"Top", element.CropTop},
		{"Right", element.CropRight},
		{"Bottom", element.CropBottom},
		{"Left", element.CropLeft},
	} {
		side := side
		entry := widget.NewEntry()
		entry.SetText("0")
		entry.OnSubmitted = func(text string) {
			p.applyCrop(side.side, entry, text)
		}
		p.cropEntries[side.side] = entry
		cropForm.Append(side.name+" %", entry)
	}

	p.resetCrop = widget.NewButton("Reset crop", func() {
		if p.target == nil {
			return
		}
		p.target.ResetCrop()
		p.refreshCropEntries()
		p.notify()
	})

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Background", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, p.thresholdL, p.threshold),
		p.suggest,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Crop", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		cropForm,
		p.resetCrop,
	)

	p.SetTarget(nil)
	return p
}

// Container returns the panel content for embedding in layouts.
func (p *ImageToolsPanel) Container() fyne.CanvasObject {
	return p.content
}

// SetTarget binds the panel to an image element, or disables it for nil.
func (p *ImageToolsPanel) SetTarget(el *element.ImageElement) {
	p.target = el
	if el == nil {
		p.threshold.SetValue(0)
		p.thresholdL.SetText("0")
		p.threshold.Disable()
		p.suggest.Disable()
		p.resetCrop.Disable()
		for _, e := range p.cropEntries {
			e.SetText("0")
			e.Disable()
		}
		return
	}

	p.threshold.Enable()
	p.suggest.Enable()
	p.resetCrop.Enable()
	p.threshold.SetValue(float64(el.Threshold()))
	p.thresholdL.SetText(fmt.Sprintf("%d", el.Threshold()))
	for _, e := range p.cropEntries {
		e.Enable()
	}
	p.refreshCropEntries()
}

// applyCrop parses and applies a crop entry. Invalid or out-of-range
// input reverts the entry to the element's current value.
func (p *ImageToolsPanel) applyCrop(side element.CropSide, entry *widget.Entry, text string) {
	if p.target == nil {
		return
	}
	v, err := strconv.Atoi(text)
	if err == nil {
		err = p.target.SetCropSide(side, v)
	}
	if err != nil {
		entry.SetText(strconv.Itoa(cropValue(p.target.Crop(), side)))
		return
	}
	p.notify()
}

func (p *ImageToolsPanel) refreshCropEntries() {
	crop := p.target.Crop()
	for side, entry := range p.cropEntries {
		entry.SetText(strconv.Itoa(cropValue(crop, side)))
	}
}

func cropValue(c element.CropRect, side element.CropSide) int {
	switch side {
	case element.CropTop:
		return c.Top
	case element.CropRight:
		return c.Right
	case element.CropBottom:
		return c.Bottom
	case element.CropLeft:
		return c.Left
	}
	return 0
}

func (p *ImageToolsPanel) notify() {
	if p.onEdited != nil {
		p.onEdited()
	}
}

// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"letterhead/internal/app"
	"letterhead/internal/element"
	"letterhead/internal/export"
	"letterhead/internal/version"
	"letterhead/ui/canvas"
	"letterhead/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	canvas    *canvas.DocumentCanvas
	tools     *panels.ImageToolsPanel
	statusBar *widget.Label

	fitEnabled      bool
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Letterhead")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDocumentCanvas(mw.state)
	mw.tools = panels.NewImageToolsPanel(func() {
		mw.canvas.Refresh()
	})

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.tools.Container(),
		canvasArea,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with element and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	addTextBtn := widget.NewButton("Add Text", mw.onAddText)
	addImageBtn := widget.NewButton("Add Image...", mw.onAddImage)
	removeBtn := widget.NewButton("Remove", mw.onRemoveSelected)

	bgBtn := widget.NewButton("Background", func() {
		mw.togglePanel(element.PanelBackground)
	})
	cropBtn := widget.NewButton("Crop", func() {
		mw.togglePanel(element.PanelCrop)
	})

	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onToggleFitToWindow)
	actualBtn := widget.NewButton("1:1", mw.onActualSize)

	exportBtn := widget.NewButton("Export PDF...", mw.onExportPDF)
	copyBtn := widget.NewButton("Copy", mw.onCopyImage)

	return container.NewHBox(
		addTextBtn,
		addImageBtn,
		removeBtn,
		widget.NewSeparator(),
		bgBtn,
		cropBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		widget.NewSeparator(),
		exportBtn,
		copyBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Add Image...", mw.onAddImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", mw.onExportPDF),
		fyne.NewMenuItem("Copy as Image", mw.onCopyImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Text", mw.onAddText),
		fyne.NewMenuItem("Remove Selected", mw.onRemoveSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Page Margins...", mw.onPageMargins),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if img, ok := data.(*element.ImageElement); ok {
			mw.tools.SetTarget(img)
			return
		}
		mw.tools.SetTarget(nil)
	})

	mw.state.On(app.EventZoomChanged, func(data interface{}) {
		if z, ok := data.(float64); ok {
			mw.updateStatus(fmt.Sprintf("Zoom %d%%", int(z*100+0.5)))
		}
	})

	mw.state.On(app.EventExportStarted, func(data interface{}) {
		mw.updateStatus("Capturing...")
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// togglePanel toggles a tool panel on the selected image element.
func (mw *MainWindow) togglePanel(p element.ToolPanel) {
	sel := mw.state.Elements.Selected()
	img, ok := sel.(*element.ImageElement)
	if !ok {
		mw.updateStatus("Select an image first")
		return
	}
	img.TogglePanel(p)
	mw.canvas.Refresh()
}

// Menu and toolbar action handlers

func (mw *MainWindow) onAddText() {
	mw.state.AddText("New text")
	mw.canvas.Refresh()
	mw.updateStatus("Text element added")
}

func (mw *MainWindow) onAddImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if _, err := mw.state.AddImageFile(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.canvas.Refresh()
		mw.updateStatus("Image added: " + filepath.Base(path))
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onRemoveSelected() {
	if mw.state.RemoveSelected() {
		mw.tools.SetTarget(nil)
		mw.canvas.Refresh()
		mw.updateStatus("Element removed")
	}
}

func (mw *MainWindow) onPageMargins() {
	m := mw.state.Margins()
	top := widget.NewEntry()
	top.SetText(strconv.Itoa(m.Top))
	right := widget.NewEntry()
	right.SetText(strconv.Itoa(m.Right))
	bottom := widget.NewEntry()
	bottom.SetText(strconv.Itoa(m.Bottom))
	left := widget.NewEntry()
	left.SetText(strconv.Itoa(m.Left))

	items := []*widget.FormItem{
		widget.NewFormItem("Top", top),
		widget.NewFormItem("Right", right),
		widget.NewFormItem("Bottom", bottom),
		widget.NewFormItem("Left", left),
	}
	dialog.ShowForm("Page Margins", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		parsed, err := parseMargins(top.Text, right.Text, bottom.Text, left.Text)
		if err == nil {
			err = mw.state.SetMargins(parsed)
		}
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.canvas.Refresh()
	}, mw.Window)
}

func parseMargins(top, right, bottom, left string) (app.Margins, error) {
	var m app.Margins
	var err error
	if m.Top, err = strconv.Atoi(top); err != nil {
		return m, fmt.Errorf("top margin: %w", err)
	}
	if m.Right, err = strconv.Atoi(right); err != nil {
		return m, fmt.Errorf("right margin: %w", err)
	}
	if m.Bottom, err = strconv.Atoi(bottom); err != nil {
		return m, fmt.Errorf("bottom margin: %w", err)
	}
	if m.Left, err = strconv.Atoi(left); err != nil {
		return m, fmt.Errorf("left margin: %w", err)
	}
	return m, nil
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.fitEnabled
	mw.fitEnabled = enabled
	mw.canvas.SetFitOnResize(enabled)
	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.state.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	mw.fitEnabled = false
	mw.canvas.SetFitOnResize(false)
	mw.fitToWindowItem.Label = "  Fit to Window"
}

func (mw *MainWindow) onExportPDF() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".pdf" {
			path += ".pdf"
		}
		mw.saveLastDir(path)

		// The capture waits for the view to settle, keep the UI responsive.
		go func() {
			err := mw.state.ExportPDF(path)
			if errors.Is(err, export.ErrBusy) {
				return
			}
			if err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.updateStatus("Exported " + filepath.Base(path))
		}()
	}, mw.Window)
	fd.SetFileName("letterhead.pdf")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onCopyImage() {
	go func() {
		err := mw.state.CopyImage()
		if errors.Is(err, export.ErrBusy) {
			return
		}
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Page copied to clipboard")
	}()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Letterhead",
		fmt.Sprintf("Letterhead v%s\n\n"+
			"A letterhead designer with floating text and image elements.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

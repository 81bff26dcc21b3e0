// Package main provides the entry point for the Letterhead application.
package main

import (
	"log"
	"time"

	"letterhead/internal/app"
	"letterhead/internal/storage"
	"letterhead/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appTitle   = "Letterhead"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("letterhead")
	fyneApp.Settings().SetTheme(&app.LetterheadTheme{})

	store := storage.Open()
	state := app.NewState(store)
	state.Restore()

	win := mainwindow.New(fyneApp, state)
	win.SetTitle(appTitle)
	win.Resize(fyne.NewSize(1200, 900))

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	watcher := app.NewBinaryWatcher(2 * time.Second)
	if watcher == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	watcher.OnUpdate(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := watcher.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				watcher.ResetBaseline()
				watcher.Start()
			}, win)
	})

	watcher.Start()
}

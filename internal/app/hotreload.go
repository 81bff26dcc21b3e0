package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// BinaryWatcher polls the running executable and reports when a newer
// build appears on disk, so a development session can offer a restart.
type BinaryWatcher struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}
	onUpdate func()
}

// NewBinaryWatcher watches the current executable. Returns nil when the
// executable path cannot be resolved.
func NewBinaryWatcher(interval time.Duration) *BinaryWatcher {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build writes a new file; follow the symlink to the real path
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}
	return &BinaryWatcher{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnUpdate sets the callback invoked from the watcher goroutine when a
// newer binary is detected.
func (w *BinaryWatcher) OnUpdate(fn func()) {
	w.onUpdate = fn
}

// Start begins polling in a background goroutine.
func (w *BinaryWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.loop()
}

// Stop ends the polling goroutine.
func (w *BinaryWatcher) Stop() {
	close(w.stopCh)
}

func (w *BinaryWatcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.updated() {
				if w.onUpdate != nil {
					w.onUpdate()
				}
				return
			}
		}
	}
}

func (w *BinaryWatcher) updated() bool {
	info, err := os.Stat(w.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// ResetBaseline adopts the current mod time, silencing further
// notifications until the next rebuild.
func (w *BinaryWatcher) ResetBaseline() {
	if info, err := os.Stat(w.execPath); err == nil {
		w.baseline = info.ModTime()
	}
}

// Restart replaces the current process with the watched binary,
// preserving arguments and environment. Does not return on success.
func (w *BinaryWatcher) Restart() error {
	return syscall.Exec(w.execPath, os.Args, os.Environ())
}

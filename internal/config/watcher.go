package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives the freshly loaded options after the config file
// changes. Load errors keep the previous options and are not delivered.
type Handler func(Options)

// Watcher reloads the config file on change, debouncing editor-style
// rapid write bursts.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	doneWg  sync.WaitGroup
}

// Watch starts watching path and invokes handler with the reloaded
// options after each change.
func Watch(path string, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files by rename, which drops
	// a watch on the file itself.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	w.doneWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops the watcher and waits for the processing loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.doneWg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.doneWg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if opts, err := Load(w.path); err == nil {
				w.handler(opts)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

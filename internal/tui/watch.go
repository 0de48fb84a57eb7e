package tui

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceSettle is how long a changed file must stay quiet before the
// watcher reports it. The producing agent and most editors write in bursts.
const debounceSettle = 500 * time.Millisecond

// Watcher reports when one of the artifact files settles after a change.
// It watches the parent directories because many writers replace files by
// rename, which drops a watch held on the file itself.
type Watcher struct {
	fsw     *fsnotify.Watcher
	targets map[string]bool
	events  chan string
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the given files. The files do not have to
// exist yet; creating one later counts as a change.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		targets: make(map[string]bool, len(paths)),
		events:  make(chan string, 8),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	go w.run()
	return w, nil
}

// Events delivers the path of each settled change. The channel closes when
// the watcher stops.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.stopCh)
		<-w.doneCh
	})
	return w.fsw.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.events)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.targets[abs] {
				continue
			}
			pending[abs] = time.Now()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

		case now := <-ticker.C:
			for path, at := range pending {
				if now.Sub(at) < debounceSettle {
					continue
				}
				delete(pending, path)
				select {
				case w.events <- path:
				default:
					// Drop rather than block: a reload is already queued.
				}
			}
		}
	}
}

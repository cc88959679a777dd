// Package watch notices the active store file disappearing while a session is being
// timed, so the user learns about it before clocking out instead of after
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Event is a change to the watched store file
type Event int

const (
	// EventRemoved means the file was deleted
	EventRemoved Event = iota
	// EventMoved means the file was renamed or moved away
	EventMoved
	// EventCreated means the file (re)appeared
	EventCreated
)

func (e Event) String() string {
	switch e {
	case EventRemoved:
		return "removed"
	case EventMoved:
		return "moved"
	case EventCreated:
		return "created"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// StoreWatcher watches a single store file through its parent directory, which keeps
// working after the file itself is gone
type StoreWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts watching the store at path
func New(path string) (*StoreWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &StoreWatcher{
		path:    filepath.Clean(abs),
		watcher: watcher,
		events:  make(chan Event, 8),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.eventLoop()

	return w, nil
}

// Events delivers changes to the store file. It is closed by Close
func (w *StoreWatcher) Events() <-chan Event {
	return w.events
}

// Errors delivers watcher failures. It is closed by Close
func (w *StoreWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Safe to call more than once
func (w *StoreWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *StoreWatcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				w.emit(EventRemoved)
			case ev.Has(fsnotify.Rename):
				w.emit(EventMoved)
			case ev.Has(fsnotify.Create):
				w.emit(EventCreated)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default: // the previous error has not been read yet
			}
		}
	}
}

func (w *StoreWatcher) emit(e Event) {
	select {
	case w.events <- e:
	case <-w.done:
	}
}

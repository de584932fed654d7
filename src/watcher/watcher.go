package watcher

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"iconforge/src/icons"
)

// Regenerator rebuilds the icon set from a base image
type Regenerator interface {
	FromPath(path string) (icons.Result, error)
}

// Watcher monitors the base image and regenerates icons when it changes
type Watcher struct {
	gen      Regenerator
	basePath string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	events   chan Event
	done     chan struct{}

	mu      sync.Mutex // guards timer, started, stopped and sends on events
	timer   *time.Timer
	started bool
	stopped bool

	runMu    sync.Mutex // one regeneration at a time, guards lastSeen
	lastSeen fileStamp
}

// fileStamp identifies one version of the base image on disk
type fileStamp struct {
	modTime int64
	size    int64
}

func stampOf(path string) (fileStamp, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{modTime: info.ModTime().UnixNano(), size: info.Size()}, true
}

// Event represents a change to the base image and, for create and
// modify, the regeneration it triggered
type Event struct {
	Type     EventType
	FilePath string
	Result   icons.Result
	Err      error
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// NewWatcher creates a new watcher for basePath
func NewWatcher(gen Regenerator, basePath string, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", basePath, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		gen:      gen,
		basePath: absPath,
		debounce: debounce,
		watcher:  fsWatcher,
		events:   make(chan Event, 100),
		done:     make(chan struct{}),
	}, nil
}

// Start begins monitoring. The parent directory is watched because
// editors usually replace files by rename.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.basePath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	log.Printf("Watching %s for changes", w.basePath)

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.processEvents()

	return nil
}

// processEvents filters fsnotify events down to the base image
func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.basePath {
				continue
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType EventType

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventModified
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		log.Printf("Base image removed: %s", event.Name)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.send(Event{Type: EventDeleted, FilePath: w.basePath})
		w.mu.Unlock()
		return
	default:
		return
	}

	// Debounce: rapid successive writes regenerate once
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.regenerate(eventType)
	})
}

func (w *Watcher) regenerate(eventType EventType) {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.runMu.Lock()
	// The base image may be one of the outputs. Its own rewrite must not
	// schedule another run.
	if stamp, ok := stampOf(w.basePath); ok && stamp == w.lastSeen {
		w.runMu.Unlock()
		log.Printf("Base image unchanged since last run: %s", w.basePath)
		return
	}
	log.Printf("📄 Base image %s: %s", eventType, w.basePath)
	result, err := w.gen.FromPath(w.basePath)
	if err != nil {
		log.Printf("Failed to regenerate icons: %v", err)
	}
	w.lastSeen, _ = stampOf(w.basePath)
	w.runMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.send(Event{Type: eventType, FilePath: w.basePath, Result: result, Err: err})
}

// send must be called with mu held
func (w *Watcher) send(ev Event) {
	if w.stopped {
		return
	}
	select {
	case w.events <- ev:
	default:
		log.Printf("Dropping %s event for %s: nobody is listening", ev.Type, ev.FilePath)
	}
}

// Events returns the event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher and closes the event channel
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}

	w.mu.Lock()
	close(w.events)
	w.mu.Unlock()

	return err
}

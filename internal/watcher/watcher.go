// Package watcher subscribes to native filesystem change notifications for a
// subtree and republishes them as a normalized stream of Created, Changed,
// and Deleted events.
package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dirscope/dirscope/internal/pathutil"
	"github.com/dirscope/dirscope/internal/util"
)

// EventKind classifies a normalized change event.
type EventKind int

// Event kinds.
const (
	Created EventKind = iota
	Changed
	Deleted
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Changed:
		return "changed"
	default:
		return "deleted"
	}
}

// Event is a normalized filesystem change.
type Event struct {
	Kind EventKind `json:"kind"`
	Path string    `json:"path"`
}

// Subscription is a live watch over a subtree. It transitions one-way from
// active to disposed; Dispose releases the underlying OS watch handle.
type Subscription struct {
	fw     *fsnotify.Watcher
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Watch starts watching the subtree rooted at root. Directories are added
// recursively; directories created later inside the subtree are picked up as
// their create events arrive. A directory that cannot be watched is logged
// and skipped rather than failing the whole subscription.
func Watch(root string) (*Subscription, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	log := util.Logger("watcher")
	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if err := fw.Add(path); err != nil {
				log.Warn().Str("path", path).Err(err).Msg("cannot watch directory")
			}
		}
		return nil
	})
	if walkErr != nil {
		_ = fw.Close()
		return nil, walkErr
	}

	s := &Subscription{
		fw:     fw,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

// Events returns the normalized event stream. The channel is closed when the
// subscription is disposed.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Dispose stops the subscription and releases the OS watch handle. Calling it
// more than once is safe; the handle is closed exactly once.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		close(s.done)
		_ = s.fw.Close()
	})
}

func (s *Subscription) loop() {
	defer close(s.events)
	log := util.Logger("watcher")
	for {
		select {
		case <-s.done:
			return
		case raw, ok := <-s.fw.Events:
			if !ok {
				return
			}
			s.handle(raw)
		case err, ok := <-s.fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// handle classifies one raw notification. Write maps directly to Changed.
// Create, Remove, and Rename conflate create/rename-in/rename-out/delete at
// the directory level, so the path's existence is re-checked at the moment
// the event is processed: present means Created, absent means Deleted. The
// window between the real event and the re-check is an accepted race.
func (s *Subscription) handle(raw fsnotify.Event) {
	path := pathutil.Join(filepath.Dir(raw.Name), pathutil.Normalize(filepath.Base(raw.Name)))

	switch {
	case raw.Op&fsnotify.Write != 0:
		s.emit(Event{Kind: Changed, Path: path})
	case raw.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0:
		info, err := os.Lstat(path)
		if err != nil {
			s.emit(Event{Kind: Deleted, Path: path})
			return
		}
		if info.IsDir() {
			_ = s.fw.Add(path)
		}
		s.emit(Event{Kind: Created, Path: path})
	}
}

func (s *Subscription) emit(e Event) {
	select {
	case s.events <- e:
	case <-s.done:
	}
}

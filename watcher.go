package main

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirectoryWatcher reports changes to one watched directory as coalesced
// notifications. Bursts of filesystem events inside the debounce window
// collapse into a single notification.
type DirectoryWatcher struct {
	watcher  *fsnotify.Watcher
	events   chan struct{}
	debounce time.Duration
}

// NewDirectoryWatcher creates a watcher with the given debounce window
func NewDirectoryWatcher(debounce time.Duration) (*DirectoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	d := &DirectoryWatcher{
		watcher:  w,
		events:   make(chan struct{}, 1),
		debounce: debounce,
	}
	go d.run()
	return d, nil
}

// Watch replaces the watched directory with dir. An empty dir stops
// watching entirely.
func (d *DirectoryWatcher) Watch(dir string) error {
	for _, watched := range d.watcher.WatchList() {
		if err := d.watcher.Remove(watched); err != nil {
			debugLog("Watcher remove %s: %v", watched, err)
		}
	}
	if dir == "" {
		return nil
	}
	return d.watcher.Add(dir)
}

// Events returns the notification channel
func (d *DirectoryWatcher) Events() <-chan struct{} {
	return d.events
}

func (d *DirectoryWatcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			// Chmod-only events do not change the listing
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(d.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case d.events <- struct{}{}:
			default:
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			debugLog("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher and its goroutine
func (d *DirectoryWatcher) Close() error {
	return d.watcher.Close()
}

// Package fswatcher watches script files for changes.
package fswatcher

import (
	"path/filepath"
	"sync"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watches files through their parent directories, so files replaced by a rename (common on editor saves) keep being watched.
type FsnWatcher struct {
	w      *fsnotify.Watcher
	events chan any // *Event or error
	done   chan struct{}

	mu     sync.Mutex
	opMask Op
	files  map[string]bool
	dirs   map[string]int // number of watched files per dir
}

func NewFsnWatcher() (*FsnWatcher, error) {
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FsnWatcher{
		w:      w0,
		events: make(chan any),
		done:   make(chan struct{}),
		opMask: AllOps,
		files:  map[string]bool{},
		dirs:   map[string]int{},
	}
	go w.eventLoop()
	return w, nil
}

//----------

func (w *FsnWatcher) Close() error {
	close(w.done)
	return w.w.Close()
}

func (w *FsnWatcher) SetOpMask(m Op) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opMask = m
}

//----------

func (w *FsnWatcher) Add(filename string) error {
	name, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[name] {
		return nil
	}
	dir := filepath.Dir(name)
	if w.dirs[dir] == 0 {
		if err := w.w.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

func (w *FsnWatcher) Remove(filename string) error {
	name, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[name] {
		return nil
	}
	delete(w.files, name)
	dir := filepath.Dir(name)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.w.Remove(dir)
	}
	return nil
}

//----------

func (w *FsnWatcher) Events() <-chan any {
	return w.events
}

func (w *FsnWatcher) send(ev any) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.done:
		return false
	}
}

//----------

func (w *FsnWatcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if !w.send(err) {
				return
			}
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}

			var op Op
			if ev.Op&fsnotify.Create > 0 {
				op.Add(Create)
			}
			if ev.Op&fsnotify.Write > 0 {
				op.Add(Modify)
			}
			if ev.Op&fsnotify.Remove > 0 {
				op.Add(Remove)
			}
			if ev.Op&fsnotify.Rename > 0 {
				op.Add(Rename)
			}
			if ev.Op&fsnotify.Chmod > 0 {
				op.Add(Attrib)
			}

			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			watched := w.files[name]
			op2 := op & w.opMask
			w.mu.Unlock()

			if watched && op2 > 0 {
				if !w.send(&Event{Op: op2, Name: name}) {
					return
				}
			}
		}
	}
}

// Package reload watches a patch file and hands every successfully compiled
// revision to a player.
package reload

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/harmonicon/harmonicon/compiler"
	"github.com/harmonicon/harmonicon/graph"
)

// Target receives recompiled graphs. graph.Driver is a Target.
type Target interface {
	Offer(r *graph.Registry)
}

// WatchError wraps errors reported by the file system watcher.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watching %s: %v", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error {
	return e.Err
}

// DefaultDebounce is how long the file has to stay unchanged before it is
// recompiled.
const DefaultDebounce = 50 * time.Millisecond

// Watcher recompiles a patch file whenever it changes. A revision that does
// not compile is logged and otherwise ignored, so the graph playing keeps
// playing.
type Watcher struct {
	path     string
	target   Target
	debounce time.Duration
	fsw      *fsnotify.Watcher
	done     chan struct{}
	once     sync.Once
}

// New starts watching path. The parent directory is watched rather than the
// file itself, as editors often save by replacing the file.
func New(path string, target Target, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &WatchError{Path: path, Err: err}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &WatchError{Path: path, Err: err}
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, &WatchError{Path: path, Err: err}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		target:   target,
		debounce: debounce,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Run processes file events until Close is called.
func (w *Watcher) Run() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("warning: %v", &WatchError{Path: w.path, Err: err})
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	r, err := compiler.CompileFile(w.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return // mid-save; a Create event follows
		}
		log.Printf("warning: reload of %s failed: %v", filepath.Base(w.path), err)
		return
	}
	w.target.Offer(r)
	log.Printf("reloaded %s", filepath.Base(w.path))
}

// Close stops the watcher; Run returns shortly after.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/quadrant/engine/core"
)

// Watcher reports changes to the scene files and media of a data
// directory so they can be reloaded while running.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	reloads  chan string
	done     chan struct{}

	mutex    sync.Mutex
	isClosed bool
	wg       sync.WaitGroup
}

const reloadBacklog = 16

// NewWatcher starts watching dir and all of its sub-directories.
func NewWatcher(dir string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watchRecursive(fsWatch, dir); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		reloads:  make(chan string, reloadBacklog),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Reloads delivers the path of a changed scene or media file. When the
// reader falls behind, further changes are dropped until it catches up.
func (w *Watcher) Reloads() <-chan string {
	return w.reloads
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return errors.New("scene watcher already closed")
	}
	w.isClosed = true
	w.mutex.Unlock()

	close(w.done)
	w.wg.Wait()
	return nil
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := watchRecursive(w.fsnotify, e.Name); err != nil {
						core.LogError("scene watcher: %s", err)
					}
					continue
				}
			}
			if !isWatchedFile(e.Name) {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			core.LogDebug("scene file changed: %s (%s)", e.Name, e.Op)
			select {
			case w.reloads <- e.Name:
			default:
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("scene watcher: %s", err)

		case <-w.done:
			w.fsnotify.Close()
			close(w.reloads)
			return
		}
	}
}

// watchRecursive adds dir and every directory under it to the watch list.
func watchRecursive(fsWatch *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsWatch.Add(path)
		}
		return nil
	})
}

// IsSceneFile reports whether path is one of the YAML scene files.
func IsSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isWatchedFile(path string) bool {
	if IsSceneFile(path) {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tga", ".fnt":
		return true
	default:
		return false
	}
}

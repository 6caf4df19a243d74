package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/meshproxy/engine/core"
)

// Watcher reloads a settings file whenever it changes on disk.
type Watcher struct {
	path  string
	store *Store

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	reloaded chan *Settings
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWatcher watches the directory holding path, so editors that replace the
// file instead of writing it in place are picked up too.
func NewWatcher(path string, store *Store) (*Watcher, error) {
	if store == nil {
		return nil, errors.New("settings watcher needs a store")
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatch.Close()
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		reloaded: make(chan *Settings, 1),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Reloaded delivers settings after every successful reload. Slow readers
// only see the most recent value.
func (w *Watcher) Reloaded() <-chan *Settings {
	return w.reloaded
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("settings watcher: %s", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	settings, err := Load(w.path)
	if err != nil {
		core.LogError("keeping previous settings: %s", err)
		return
	}
	if err := w.store.Set(settings); err != nil {
		core.LogError("keeping previous settings: %s", err)
		return
	}
	if err := core.SetLogLevel(settings.LogLevel); err != nil {
		core.LogWarn("settings: %s", err)
	}
	core.LogInfo("settings reloaded from %s", w.path)

	select {
	case <-w.reloaded:
	default:
	}
	w.reloaded <- settings

	core.EventFire(core.EVENT_CODE_RENDER_SETTINGS_CHANGED, w, core.EventContext{Data: settings})
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	return err
}

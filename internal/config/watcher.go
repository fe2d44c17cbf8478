package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gruenerator/shell/internal/logging"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reloads a ShellConfig file when it changes on disk.
type Watcher struct {
	path     string
	onChange func(ShellConfig)
	fs       *fsnotify.Watcher
	done     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches path. onChange receives every successfully validated
// reload; invalid files are logged and ignored so the running config stays.
func NewWatcher(path string, onChange func(ShellConfig)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors replace files by rename, so watch the directory rather than
	// the file itself.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		fs:       fs,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	log := logging.WithComponent("config")
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg := DefaultShellConfig()
	if err := LoadAndValidate(w.path, &cfg); err != nil {
		logging.WithComponent("config").Warn("ignoring invalid config change", "path", w.path, "error", err)
		return
	}
	logging.WithComponent("config").Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

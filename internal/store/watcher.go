package store

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to the tasks file so a running session can pick
// up edits made by another process (a second terminal, a sync client).
// Reloading after our own save is harmless — the file content matches the
// in-memory state — so no self-event suppression is attempted.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *zap.Logger
	changes chan struct{}
	done    chan struct{}
}

// Watch starts watching the store's data directory for writes to the tasks
// file. Changes are delivered on a 1-buffered channel; coalescing multiple
// filesystem events into one pending notification.
func (s *Store) Watch() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, not the file: rename-based atomic saves replace
	// the inode and would silently detach a file watch.
	if err := fs.Add(s.dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	w := &Watcher{
		fs:      fs,
		log:     s.log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run(filepath.Base(TasksPath(s.dir)))
	return w, nil
}

func (w *Watcher) run(tasksFile string) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != tasksFile {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default: // a notification is already pending
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Changed reports, without blocking, whether the tasks file changed since
// the last call. The session polls this once per tick.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changes:
		return true
	default:
		return false
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

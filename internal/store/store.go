// Package store owns the on-disk task collection: a single JSON file with
// atomic tmp+rename saves, an append-only JSONL audit log, and the persisted
// chat transcript. All mutation entry points resolve by task identifier and
// append one audit event when they match; unmatched identifiers are no-ops
// that append nothing.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eq/internal/task"
)

// Store holds the in-memory ordered task collection backing one data
// directory. Insertion order is list order. Not safe for concurrent use;
// the session mutates it from a single goroutine only.
type Store struct {
	dir   string
	log   *zap.Logger
	Tasks []task.Task
}

type storeFile struct {
	Tasks []task.Task `json:"tasks"`
}

// Open loads the task store from dir, creating an empty store when the
// tasks file does not exist yet.
func Open(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{dir: dir, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

// Reload re-reads the tasks file, replacing the in-memory collection. Used
// both at startup and when the watcher reports an external change.
func (s *Store) Reload() error {
	data, err := os.ReadFile(TasksPath(s.dir))
	if errors.Is(err, os.ErrNotExist) {
		s.Tasks = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse tasks file: %w", err)
	}
	s.Tasks = f.Tasks
	return nil
}

// Save writes the collection atomically: marshal to tasks.json.tmp, fsync,
// then rename over tasks.json. A crash mid-save leaves the old file intact.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(storeFile{Tasks: s.Tasks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return atomicWrite(TasksPath(s.dir), data)
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Find returns a pointer into the collection for id, or nil. The pointer is
// only valid until the next mutation; callers must not retain it.
func (s *Store) Find(id uuid.UUID) *task.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// Add inserts a task at the end of the collection and records the creation.
func (s *Store) Add(t task.Task) {
	s.appendEvent(ActionCreated, t.ID, fmt.Sprintf("Created task: %s", t.Title))
	s.Tasks = append(s.Tasks, t)
}

// Complete marks a pending task done. It refuses already-completed tasks
// so the audit log never records a double completion, and dropped tasks
// because dropped is terminal.
func (s *Store) Complete(id uuid.UUID) bool {
	t := s.Find(id)
	if t == nil || t.Status != task.StatusPending {
		return false
	}
	t.Complete()
	s.appendEvent(ActionCompleted, id, fmt.Sprintf("Completed task: %s", t.Title))
	return true
}

// UndoComplete returns a completed task to pending.
func (s *Store) UndoComplete(id uuid.UUID) bool {
	t := s.Find(id)
	if t == nil || t.Status != task.StatusCompleted {
		return false
	}
	t.UndoComplete()
	s.appendEvent(ActionUpdated, id, fmt.Sprintf("Undone task: %s", t.Title))
	return true
}

// Toggle flips a task between completed and pending.
func (s *Store) Toggle(id uuid.UUID) bool {
	t := s.Find(id)
	if t == nil {
		return false
	}
	if t.Status == task.StatusCompleted {
		return s.UndoComplete(id)
	}
	return s.Complete(id)
}

// Drop moves a pending task to its terminal dropped state. Dropped is not
// reachable from completed.
func (s *Store) Drop(id uuid.UUID) bool {
	t := s.Find(id)
	if t == nil || t.Status != task.StatusPending {
		return false
	}
	t.MarkDropped()
	s.appendEvent(ActionDropped, id, fmt.Sprintf("Dropped task: %s", t.Title))
	return true
}

// Update rewrites a task's title and priority. Priorities are clamped.
func (s *Store) Update(id uuid.UUID, title string, urgency, importance int) bool {
	t := s.Find(id)
	if t == nil {
		return false
	}
	old := fmt.Sprintf("%s (u%di%d)", t.Title, t.Urgency, t.Importance)
	t.Title = title
	t.Urgency = task.Clamp(urgency)
	t.Importance = task.Clamp(importance)
	s.appendEvent(ActionUpdated, id, fmt.Sprintf("Updated: %s -> %s (u%di%d)", old, t.Title, t.Urgency, t.Importance))
	return true
}

// MoveToDate reschedules a task to another calendar day.
func (s *Store) MoveToDate(id uuid.UUID, date task.Date) bool {
	t := s.Find(id)
	if t == nil {
		return false
	}
	old := t.Date
	t.Date = date
	s.appendEvent(ActionMoved, id, fmt.Sprintf("Moved: %s -> %s", old, date))
	return true
}

// Pending returns the pending tasks on date, sorted by descending score.
// The slice is freshly built on every call; orderings are never cached.
func (s *Store) Pending(date task.Date) []task.Task {
	return s.view(func(t task.Task) bool {
		return t.Status == task.StatusPending && t.Date == date
	})
}

// Completed returns the completed tasks on date, sorted by descending score.
func (s *Store) Completed(date task.Date) []task.Task {
	return s.view(func(t task.Task) bool {
		return t.Status == task.StatusCompleted && t.Date == date
	})
}

// QuadrantView returns the selectable tasks of one quadrant on date:
// not dropped, matching the date, sorted by descending score.
func (s *Store) QuadrantView(date task.Date, q task.Quadrant) []task.Task {
	return s.view(func(t task.Task) bool {
		return t.Status != task.StatusDropped && t.Date == date && t.Quadrant() == q
	})
}

// PendingQuadrant returns the pending tasks of one quadrant on date, the
// view positional directive targets resolve against.
func (s *Store) PendingQuadrant(date task.Date, q task.Quadrant) []task.Task {
	return s.view(func(t task.Task) bool {
		return t.Status == task.StatusPending && t.Date == date && t.Quadrant() == q
	})
}

func (s *Store) view(keep func(task.Task) bool) []task.Task {
	var out []task.Task
	for _, t := range s.Tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	// Stable: equal scores keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// Resolve implements the identifier resolution contract shared by the CLI
// and chat target resolution: id is either a 1-based position in the
// date-filtered pending score-sorted view, or an identifier prefix /
// case-insensitive title substring. Ambiguous substrings resolve to the
// first match in list order.
func (s *Store) Resolve(id string, date *task.Date) (uuid.UUID, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.Nil, false
	}

	if idx, ok := parseIndex(id); ok {
		var view []task.Task
		if date != nil {
			view = s.Pending(*date)
		} else {
			view = s.view(func(t task.Task) bool { return t.Status == task.StatusPending })
		}
		if idx >= 1 && idx <= len(view) {
			return view[idx-1].ID, true
		}
		// an out-of-range position may still be an all-digit ID prefix
	}

	for _, t := range s.Tasks {
		if strings.HasPrefix(t.ID.String(), id) {
			return t.ID, true
		}
	}
	lower := strings.ToLower(id)
	for _, t := range s.Tasks {
		if t.Status == task.StatusPending && strings.Contains(strings.ToLower(t.Title), lower) {
			return t.ID, true
		}
	}
	return uuid.Nil, false
}

func parseIndex(id string) (int, bool) {
	n := 0
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, n > 0
}

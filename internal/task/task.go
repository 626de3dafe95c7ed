// Package task defines the core task entity, its scoring and its
// Eisenhower quadrant classification. Everything in here is pure: no I/O,
// no globals, no clock beyond the creation/completion stamps.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Quadrant is one of the four Eisenhower priority classes.
type Quadrant int

const (
	DoFirst Quadrant = iota
	Schedule
	Delegate
	Drop
)

// Quadrants lists all four quadrants in display order.
var Quadrants = [4]Quadrant{DoFirst, Schedule, Delegate, Drop}

func (q Quadrant) String() string {
	switch q {
	case DoFirst:
		return "DO FIRST"
	case Schedule:
		return "SCHEDULE"
	case Delegate:
		return "DELEGATE"
	default:
		return "DROP"
	}
}

// Status is the lifecycle state of a task. Dropped is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// Task is a single scheduled item. Urgency and importance are always in
// [1,3]; Clamp enforces that on every write path.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Urgency     int        `json:"urgency"`
	Importance  int        `json:"importance"`
	Status      Status     `json:"status"`
	Date        Date       `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Clamp forces a priority value into the valid [1,3] range.
func Clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 3 {
		return 3
	}
	return v
}

// New constructs a pending task scheduled on date with clamped priorities.
func New(title string, urgency, importance int, date Date) Task {
	return Task{
		ID:         uuid.New(),
		Title:      title,
		Urgency:    Clamp(urgency),
		Importance: Clamp(importance),
		Status:     StatusPending,
		Date:       date,
		CreatedAt:  time.Now().UTC(),
	}
}

// Score is the derived ranking value used to order tasks within a view.
func (t Task) Score() int {
	return t.Importance*3 + t.Urgency*2
}

// Quadrant classifies the task. Total over all states; a dropped task
// still has a nominal quadrant for display.
func (t Task) Quadrant() Quadrant {
	return Classify(t.Urgency, t.Importance)
}

// Classify maps an (urgency, importance) pair to its quadrant.
func Classify(urgency, importance int) Quadrant {
	switch {
	case importance >= 2 && urgency >= 2:
		return DoFirst
	case importance >= 2:
		return Schedule
	case urgency >= 2:
		return Delegate
	default:
		return Drop
	}
}

// Complete marks the task done and stamps the completion time. Callers
// decide whether the transition is meaningful; no precondition is checked.
func (t *Task) Complete() {
	t.Status = StatusCompleted
	now := time.Now().UTC()
	t.CompletedAt = &now
}

// UndoComplete returns a completed task to pending and clears the stamp.
func (t *Task) UndoComplete() {
	t.Status = StatusPending
	t.CompletedAt = nil
}

// MarkDropped moves the task to its terminal state.
func (t *Task) MarkDropped() {
	t.Status = StatusDropped
}

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Action is the kind of audit event.
type Action string

const (
	ActionCreated   Action = "created"
	ActionCompleted Action = "completed"
	ActionDropped   Action = "dropped"
	ActionUpdated   Action = "updated"
	ActionMoved     Action = "moved"
)

// Event is one immutable audit record. Events are append-only; nothing in
// the system rewrites history.jsonl.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	TaskID    uuid.UUID `json:"task_id"`
	Details   string    `json:"details"`
}

// appendEvent writes one event line. Audit failures never fail the
// mutation that produced them; they are logged and the mutation stands.
func (s *Store) appendEvent(action Action, taskID uuid.UUID, details string) {
	ev := Event{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		TaskID:    taskID,
		Details:   details,
	}
	if err := appendAuditLine(AuditLogPath(s.dir), ev); err != nil {
		s.log.Warn("audit append failed", zap.Error(err), zap.String("action", string(action)))
	}
}

func appendAuditLine(path string, ev Event) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

// ReadAuditLog returns all recorded events in append order. Unparseable
// lines are skipped.
func ReadAuditLog(dir string) ([]Event, error) {
	data, err := os.ReadFile(AuditLogPath(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	var out []Event
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var ev Event
		if json.Unmarshal(line, &ev) == nil {
			out = append(out, ev)
		}
	}
	return out, nil
}

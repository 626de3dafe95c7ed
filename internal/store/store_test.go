package store

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eq/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestOpen_EmptyDir(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	assert.Empty(t, s.Tasks)
}

func TestSaveReloadRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	s.Add(task.New("persist me", 2, 3, task.Today()))
	require.NoError(t, s.Save())

	// No stray tmp file after an atomic save.
	_, err := os.Stat(TasksPath(s.Dir()) + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reopened, err := Open(s.Dir(), nil)
	require.NoError(t, err)
	require.Len(t, reopened.Tasks, 1)
	assert.Equal(t, "persist me", reopened.Tasks[0].Title)
	assert.Equal(t, 2, reopened.Tasks[0].Urgency)
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	tk := task.New("lifecycle", 2, 2, task.Today())
	s.Add(tk)

	assert.True(t, s.Complete(tk.ID))
	assert.False(t, s.Complete(tk.ID), "completing twice must refuse")
	assert.False(t, s.Drop(tk.ID), "dropped is not reachable from completed")

	assert.True(t, s.UndoComplete(tk.ID))
	assert.Nil(t, s.Find(tk.ID).CompletedAt)

	assert.True(t, s.Drop(tk.ID))
	assert.False(t, s.Drop(tk.ID))
	assert.False(t, s.Complete(tk.ID), "dropped is terminal")
}

func TestToggleIsIdempotentSafe(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	tk := task.New("toggle", 1, 1, task.Today())
	s.Add(tk)

	assert.True(t, s.Toggle(tk.ID))
	assert.Equal(t, task.StatusCompleted, s.Find(tk.ID).Status)
	assert.True(t, s.Toggle(tk.ID))
	assert.Equal(t, task.StatusPending, s.Find(tk.ID).Status)
}

func TestMutationsOnUnknownIDAreNoOps(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ghost := uuid.New()
	assert.False(t, s.Complete(ghost))
	assert.False(t, s.Drop(ghost))
	assert.False(t, s.Update(ghost, "x", 1, 1))
	assert.False(t, s.MoveToDate(ghost, task.Today()))

	events, err := ReadAuditLog(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, events, "unmatched mutations must append nothing")
}

func TestUpdateClampsPriorities(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	tk := task.New("clamp", 1, 1, task.Today())
	s.Add(tk)

	require.True(t, s.Update(tk.ID, "clamped", 7, -2))
	got := s.Find(tk.ID)
	assert.Equal(t, 3, got.Urgency)
	assert.Equal(t, 1, got.Importance)
}

func TestAuditLogRecordsMutations(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	tk := task.New("audited", 2, 2, task.Today())
	s.Add(tk)
	s.Complete(tk.ID)
	s.UndoComplete(tk.ID)
	s.MoveToDate(tk.ID, task.Today().AddDays(1))

	events, err := ReadAuditLog(s.Dir())
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, ActionCreated, events[0].Action)
	assert.Equal(t, ActionCompleted, events[1].Action)
	assert.Equal(t, ActionUpdated, events[2].Action)
	assert.Equal(t, ActionMoved, events[3].Action)
	for _, ev := range events {
		assert.Equal(t, tk.ID, ev.TaskID)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestViewsSortByDescendingScore(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	today := task.Today()
	milk := task.New("Buy milk", 1, 1, today)
	ship := task.New("Ship release", 3, 3, today)
	s.Add(milk)
	s.Add(ship)

	pending := s.Pending(today)
	require.Len(t, pending, 2)
	assert.Equal(t, "Ship release", pending[0].Title)
	assert.Equal(t, 15, pending[0].Score())
	assert.Equal(t, "Buy milk", pending[1].Title)
	assert.Equal(t, 5, pending[1].Score())

	// Dropped tasks leave the quadrant view; completed ones stay visible.
	s.Complete(ship.ID)
	s.Drop(milk.ID)
	assert.Empty(t, s.QuadrantView(today, task.Drop))
	assert.Len(t, s.QuadrantView(today, task.DoFirst), 1)
	assert.Empty(t, s.PendingQuadrant(today, task.DoFirst))
}

func TestResolve(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	today := task.Today()
	a := task.New("Fix server crash", 3, 3, today)
	a.ID = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
	b := task.New("Write weekly report", 1, 2, today)
	b.ID = uuid.MustParse("bbbbbbbb-0000-4000-8000-000000000002")
	s.Add(a)
	s.Add(b)

	// 1-based position in the score-sorted pending view.
	id, ok := s.Resolve("1", &today)
	require.True(t, ok)
	assert.Equal(t, a.ID, id)

	id, ok = s.Resolve("2", &today)
	require.True(t, ok)
	assert.Equal(t, b.ID, id)

	_, ok = s.Resolve("3", &today)
	assert.False(t, ok)

	// UUID prefix.
	id, ok = s.Resolve(a.ID.String()[:8], nil)
	require.True(t, ok)
	assert.Equal(t, a.ID, id)

	// An all-digit prefix falls through the out-of-range position lookup.
	c := task.New("Pay invoice", 1, 1, today)
	c.ID = uuid.MustParse("12345678-0000-4000-8000-000000000003")
	s.Add(c)
	id, ok = s.Resolve("12345678", nil)
	require.True(t, ok)
	assert.Equal(t, c.ID, id)

	// Case-insensitive title substring, first match in list order.
	id, ok = s.Resolve("weekly", nil)
	require.True(t, ok)
	assert.Equal(t, b.ID, id)

	_, ok = s.Resolve("no such task", nil)
	assert.False(t, ok)
}

func TestChatHistoryRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	assert.Empty(t, LoadChatHistory(dir))

	history := []ChatMessage{
		{Role: RoleUser, Content: "plan my day"},
		{Role: RoleAssistant, Content: "[ADD] Review notes u2i3"},
	}
	require.NoError(t, SaveChatHistory(dir, history))
	assert.Equal(t, history, LoadChatHistory(dir))
}

func TestWatcherSeesExternalSave(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	w, err := s.Watch()
	require.NoError(t, err)
	defer w.Close()

	// Simulate another process replacing the tasks file.
	other, err := Open(s.Dir(), nil)
	require.NoError(t, err)
	other.Add(task.New("from elsewhere", 1, 1, task.Today()))
	require.NoError(t, other.Save())

	assert.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Reload())
	assert.Len(t, s.Tasks, 1)
}

func TestReloadDropsStaleState(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	s.Add(task.New("ephemeral", 1, 1, task.Today()))
	// Never saved: a reload reflects the file, which is absent.
	require.NoError(t, s.Reload())
	assert.Empty(t, s.Tasks)
}

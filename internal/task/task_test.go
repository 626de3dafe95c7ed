package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_AllPairs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		urgency, importance int
		want                Quadrant
	}{
		{1, 1, Drop},
		{2, 1, Delegate},
		{3, 1, Delegate},
		{1, 2, Schedule},
		{1, 3, Schedule},
		{2, 2, DoFirst},
		{2, 3, DoFirst},
		{3, 2, DoFirst},
		{3, 3, DoFirst},
	}
	for _, tt := range tests {
		got := Classify(tt.urgency, tt.importance)
		assert.Equal(t, tt.want, got, "u=%d i=%d", tt.urgency, tt.importance)
	}
}

func TestNew_ClampsPriorities(t *testing.T) {
	t.Parallel()
	tk := New("over the top", 9, 0, Today())
	assert.Equal(t, 3, tk.Urgency)
	assert.Equal(t, 1, tk.Importance)
	assert.Equal(t, StatusPending, tk.Status)
	assert.Nil(t, tk.CompletedAt)
	assert.False(t, tk.CreatedAt.IsZero())
}

func TestScore(t *testing.T) {
	t.Parallel()
	low := New("Buy milk", 1, 1, Today())
	high := New("Ship release", 3, 3, Today())
	assert.Equal(t, 5, low.Score())
	assert.Equal(t, 15, high.Score())
	assert.Equal(t, Drop, low.Quadrant())
	assert.Equal(t, DoFirst, high.Quadrant())
}

func TestLifecycleTransitions(t *testing.T) {
	t.Parallel()
	tk := New("toggle me", 2, 2, Today())

	tk.Complete()
	assert.Equal(t, StatusCompleted, tk.Status)
	require.NotNil(t, tk.CompletedAt)

	tk.UndoComplete()
	assert.Equal(t, StatusPending, tk.Status)
	assert.Nil(t, tk.CompletedAt)

	tk.MarkDropped()
	assert.Equal(t, StatusDropped, tk.Status)
	// A dropped task still classifies for display.
	assert.Equal(t, DoFirst, tk.Quadrant())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	t.Parallel()
	d := Date{Year: 2025, Month: time.March, Day: 9}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestDate_AddDaysCrossesMonth(t *testing.T) {
	t.Parallel()
	d := Date{Year: 2025, Month: time.January, Day: 31}
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-30", d.AddDays(-1).String())
}

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eq/internal/task"
)

func TestZenCountdown(t *testing.T) {
	z := newZenState(2 * time.Second)

	z.advance(time.Second)
	assert.Equal(t, time.Second, z.remaining)

	z.advance(10 * time.Second)
	assert.Equal(t, time.Duration(0), z.remaining, "remaining never goes negative")
	assert.True(t, z.done())

	z.reset(2 * time.Second)
	assert.Equal(t, 2*time.Second, z.remaining)
	assert.False(t, z.done())
}

func TestZenRenderBounds(t *testing.T) {
	z := newZenState(25 * time.Minute)
	for i := 0; i < 50; i++ {
		z.advance(100 * time.Millisecond)
	}

	frame := z.render("deep work", 60, 20, newTestModel(t).styles)
	lines := strings.Split(frame, "\n")
	assert.LessOrEqual(t, len(lines), 21)
	assert.Contains(t, frame, "deep work")
	assert.Contains(t, frame, "24:") // a minute fragment of the countdown
}

func TestZenRenderAfterCompletion(t *testing.T) {
	z := newZenState(time.Second)
	z.advance(2 * time.Second)
	frame := z.render("deep work", 60, 20, newTestModel(t).styles)
	assert.Contains(t, frame, "session complete")
}

func TestZenCompleteLastTaskFallsBackToFocus(t *testing.T) {
	m := newTestModel(t)
	m.store.Add(task.New("only one", 3, 3, task.Today()))

	m = press(t, m, "f")
	m = press(t, m, "z")
	require.Equal(t, ScreenZen, m.screen)

	// completing leaves the task visible (struck through), so zen stays
	m = press(t, m, "d")
	assert.Equal(t, ScreenZen, m.screen)

	// toggling back and dropping empties the quadrant
	m = press(t, m, "d", "x")
	assert.Equal(t, ScreenFocus, m.screen)
	assert.Nil(t, m.zen)
}

func TestZenSkipCyclesSelection(t *testing.T) {
	m := newTestModel(t)
	m.store.Add(task.New("first", 3, 3, task.Today()))
	m.store.Add(task.New("second", 2, 2, task.Today()))

	m = press(t, m, "f")
	m = press(t, m, "z")
	require.Equal(t, 0, m.selected)
	m = press(t, m, "s")
	assert.Equal(t, 1, m.selected)
	m = press(t, m, "s")
	assert.Equal(t, 0, m.selected)
}

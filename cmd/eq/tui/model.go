// Package tui implements the interactive matrix screen on top of Bubble Tea.
//
// The model is a closed state machine over Screen values. Every keypress is
// routed to the handler for the current screen, and every screen transition
// happens by assigning a new Screen value in exactly one place per edge.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"eq/cmd/eq/ui"
	"eq/internal/assistant"
	"eq/internal/parser"
	"eq/internal/store"
	"eq/internal/task"
)

// Screen identifies which input handler and renderer are active.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenEditing
	ScreenChat
	ScreenFocus
	ScreenZen
	ScreenExiting
)

func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "main"
	case ScreenEditing:
		return "editing"
	case ScreenChat:
		return "chat"
	case ScreenFocus:
		return "focus"
	case ScreenZen:
		return "zen"
	case ScreenExiting:
		return "exiting"
	}
	return "unknown"
}

// editMode distinguishes the two uses of the single-line input screen.
type editMode int

const (
	editModeAdd editMode = iota
	editModeEdit
)

// tickMsg drives the poll loop: assistant replies, external file changes
// and zen animation all advance on this cadence.
type tickMsg time.Time

// Options carries everything the session engine needs at startup.
type Options struct {
	Store           *store.Store
	Gateway         *assistant.Gateway
	Log             *zap.Logger
	PollInterval    time.Duration
	PomodoroMinutes int
	InitialHistory  []store.ChatMessage
}

// Model is the complete session state. It is a value type, as Bubble Tea
// expects, with pointers only to the long-lived collaborators.
type Model struct {
	store   *store.Store
	watcher *store.Watcher
	gateway *assistant.Gateway
	log     *zap.Logger
	styles  ui.Styles

	screen   Screen
	quadrant task.Quadrant
	selected int
	viewDate task.Date

	// editing screen
	input      textinput.Model
	inputMode  editMode
	editTaskID uuid.UUID

	// chat screen
	chatInput    textinput.Model
	chatView     viewport.Model
	history      []store.ChatMessage
	renderer     *glamour.TermRenderer
	pendingReply <-chan assistant.Reply
	isLoading    bool
	showChatHelp bool

	// proposed directive batch awaiting confirmation; nil means idle
	batch []parser.Directive

	zen *zenState

	spinner  spinner.Model
	showHelp bool
	status   string

	pollEvery time.Duration
	pomodoro  time.Duration

	width  int
	height int
	ready  bool
}

// New builds the initial model on the main screen with today's view date.
func New(opts Options) Model {
	in := textinput.New()
	in.CharLimit = 256
	in.Prompt = "> "

	chatIn := textinput.New()
	chatIn.CharLimit = 1024
	chatIn.Prompt = "you> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pomodoro := time.Duration(opts.PomodoroMinutes) * time.Minute
	if pomodoro <= 0 {
		pomodoro = 25 * time.Minute
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return Model{
		store:     opts.Store,
		gateway:   opts.Gateway,
		log:       log,
		styles:    ui.NewStyles(),
		screen:    ScreenMain,
		quadrant:  task.DoFirst,
		viewDate:  task.Today(),
		input:     in,
		chatInput: chatIn,
		history:   opts.InitialHistory,
		spinner:   sp,
		pollEvery: poll,
		pomodoro:  pomodoro,
	}
}

// StartWatcher begins mirroring external edits to the task file. Safe to
// skip in tests; the tick handler tolerates a nil watcher.
func (m *Model) StartWatcher() error {
	w, err := m.store.Watch()
	if err != nil {
		return err
	}
	m.watcher = w
	return nil
}

// History returns the chat transcript for persistence at shutdown.
func (m Model) History() []store.ChatMessage { return m.history }

// Close releases the file watcher, if one was started.
func (m Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.pollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// visible returns the selectable task list for the active quadrant:
// everything on the view date that has not been dropped, best score first.
// Completed tasks stay listed so they can be toggled back.
func (m Model) visible() []task.Task {
	return m.store.QuadrantView(m.viewDate, m.quadrant)
}

// selectedTask returns the task under the cursor, or nil when the
// quadrant is empty.
func (m Model) selectedTask() *task.Task {
	tasks := m.visible()
	if len(tasks) == 0 || m.selected >= len(tasks) {
		return nil
	}
	return &tasks[m.selected]
}

// clampSelection keeps the cursor inside the visible list after any
// mutation that can shrink it.
func (m *Model) clampSelection() {
	n := len(m.visible())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"eq/internal/assistant"
	"eq/internal/parser"
	"eq/internal/store"
	"eq/internal/task"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := msg.Height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.chatView = newViewport(msg.Width-2, vpHeight)
		m.ready = true
	} else {
		m.chatView.Width = msg.Width - 2
		m.chatView.Height = vpHeight
	}
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(msg.Width-6),
	)
	m.chatView.SetContent(m.renderHistory())
	m.chatView.GotoBottom()
	return m, nil
}

// handleTick runs the per-interval poll: external file changes, a pending
// assistant reply, and zen animation. It always schedules the next tick
// unless the session is exiting.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.screen == ScreenExiting {
		return m, tea.Quit
	}

	if m.watcher != nil && m.watcher.Changed() {
		if err := m.store.Reload(); err != nil {
			m.status = fmt.Sprintf("reload failed: %v", err)
			m.log.Warn("external reload failed", zap.Error(err))
		} else {
			m.clampSelection()
		}
	}

	if m.pendingReply != nil {
		select {
		case reply := <-m.pendingReply:
			m = m.receiveReply(reply)
		default:
		}
	}

	if m.screen == ScreenZen && m.zen != nil {
		m.zen.advance(m.pollEvery)
	}

	return m, m.tick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.beginExit()
	}

	switch m.screen {
	case ScreenMain:
		return m.handleMainKey(msg)
	case ScreenEditing:
		return m.handleEditingKey(msg)
	case ScreenChat:
		return m.handleChatKey(msg)
	case ScreenFocus:
		return m.handleFocusKey(msg)
	case ScreenZen:
		return m.handleZenKey(msg)
	case ScreenExiting:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) beginExit() (tea.Model, tea.Cmd) {
	m.screen = ScreenExiting
	return m, tea.Quit
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m.beginExit()
	case "?":
		m.showHelp = !m.showHelp
	case "a":
		m.inputMode = editModeAdd
		m.input.SetValue("")
		m.input.Focus()
		m.screen = ScreenEditing
	case "e":
		if t := m.selectedTask(); t != nil {
			m.inputMode = editModeEdit
			m.editTaskID = t.ID
			m.input.SetValue(fmt.Sprintf("%s u%di%d", t.Title, t.Urgency, t.Importance))
			m.input.CursorEnd()
			m.input.Focus()
			m.screen = ScreenEditing
		}
	case "d", "enter":
		m.toggleSelected()
	case "x":
		m.dropSelected()
	case "t":
		today := task.Today()
		if m.viewDate == today {
			m.viewDate = today.AddDays(1)
		} else {
			m.viewDate = today
		}
		m.selected = 0
	case ">":
		if t := m.selectedTask(); t != nil {
			if m.store.MoveToDate(t.ID, t.Date.AddDays(1)) {
				m.saveStore()
				m.clampSelection()
			}
		}
	case "tab", "l", "right":
		m.quadrant = (m.quadrant + 1) % 4
		m.selected = 0
	case "shift+tab", "h", "left":
		m.quadrant = (m.quadrant + 3) % 4
		m.selected = 0
	case "j", "down":
		m.selectNext()
	case "k", "up":
		m.selectPrev()
	case "pgdown":
		m.selectJump(5)
	case "pgup":
		m.selectJump(-5)
	case "c":
		m.showChatHelp = false
		m.chatInput.Focus()
		m.screen = ScreenChat
	case "f", "z":
		m.screen = ScreenFocus
	}
	return m, nil
}

// selection moves wrap around, matching the matrix navigation feel;
// page jumps clamp at the ends instead.
func (m *Model) selectNext() {
	if n := len(m.visible()); n > 0 {
		m.selected = (m.selected + 1) % n
	}
}

func (m *Model) selectPrev() {
	n := len(m.visible())
	if n == 0 {
		return
	}
	if m.selected == 0 {
		m.selected = n - 1
	} else {
		m.selected--
	}
}

func (m *Model) selectJump(delta int) {
	n := len(m.visible())
	if n == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected > n-1 {
		m.selected = n - 1
	}
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = ScreenMain
		return m, nil
	case tea.KeyEnter:
		m = m.commitInput()
		m.input.Blur()
		m.screen = ScreenMain
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitInput parses the edit line and applies it. A trailing priority
// token sets urgency and importance; without one a new task gets 1/1 and
// an edited task keeps its current values.
func (m Model) commitInput() Model {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m
	}
	title, p, found := parser.SplitTitle(raw)
	if title == "" {
		return m
	}

	switch m.inputMode {
	case editModeAdd:
		m.store.Add(task.New(title, p.Urgency, p.Importance, m.viewDate))
	case editModeEdit:
		t := m.store.Find(m.editTaskID)
		if t == nil {
			m.status = "task no longer exists"
			return m
		}
		u, i := t.Urgency, t.Importance
		if found {
			u, i = p.Urgency, p.Importance
		}
		if !m.store.Update(m.editTaskID, title, u, i) {
			m.status = "task no longer exists"
			return m
		}
	}
	m.saveStore()
	m.clampSelection()
	return m
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chatInput.Blur()
		m.showChatHelp = false
		m.screen = ScreenMain
		return m, nil
	case tea.KeyCtrlL:
		m.history = nil
		m.chatView.SetContent(m.renderHistory())
		return m, nil
	case tea.KeyPgUp:
		m.chatView.HalfViewUp()
		return m, nil
	case tea.KeyPgDown:
		m.chatView.HalfViewDown()
		return m, nil
	case tea.KeyHome:
		m.chatView.GotoTop()
		return m, nil
	case tea.KeyEnd:
		m.chatView.GotoBottom()
		return m, nil
	case tea.KeyEnter:
		return m.submitChat()
	}

	// A proposed batch is confirmed or rejected with a single key, but
	// only while the input line is empty so typing is never hijacked.
	if m.batch != nil && m.chatInput.Value() == "" {
		switch msg.String() {
		case "y":
			m = m.executeBatch()
			return m, nil
		case "n":
			m = m.cancelBatch()
			return m, nil
		}
	}

	if msg.String() == "?" && m.chatInput.Value() == "" {
		m.showChatHelp = !m.showChatHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// submitChat sends the typed line to the assistant. Submits are ignored
// while a previous request is in flight; the pending reply channel is the
// only in-flight request the session tracks.
func (m Model) submitChat() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.chatInput.Value())
	if text == "" || m.isLoading {
		return m, nil
	}
	if m.gateway == nil {
		m.appendMessage(store.RoleSystem, "assistant is not configured; set an API key to enable chat")
		m.chatInput.SetValue("")
		return m, nil
	}

	m.appendMessage(store.RoleUser, text)
	m.chatInput.SetValue("")

	turns := make([]assistant.Turn, 0, len(m.history))
	for _, msg := range m.history {
		if msg.Role == store.RoleSystem {
			continue
		}
		turns = append(turns, assistant.Turn{Role: msg.Role, Content: msg.Content})
	}

	m.pendingReply = m.gateway.Send(turns, m.store.TaskContext())
	m.isLoading = true
	return m, m.spinner.Tick
}

// receiveReply folds a completed assistant call back into the session.
// Replies that contain directives become a proposed batch; the batch is
// not applied until the user confirms it.
func (m Model) receiveReply(reply assistant.Reply) Model {
	m.pendingReply = nil
	m.isLoading = false

	if reply.Err != "" {
		m.appendMessage(store.RoleSystem, "assistant error: "+reply.Err)
		return m
	}

	m.appendMessage(store.RoleAssistant, reply.Content)

	directives := parser.ParseDirectives(reply.Content)
	if len(directives) > 0 {
		m.batch = directives
		m.appendMessage(store.RoleSystem, m.formatProposal(directives))
	}
	return m
}

// appendMessage records a transcript entry and persists the history so a
// crash mid-session loses at most the in-flight exchange.
func (m *Model) appendMessage(role, content string) {
	m.history = append(m.history, store.ChatMessage{Role: role, Content: content})
	m.chatView.SetContent(m.renderHistory())
	m.chatView.GotoBottom()
	if err := store.SaveChatHistory(m.store.Dir(), m.history); err != nil {
		m.log.Warn("chat history save failed", zap.Error(err))
	}
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		m.screen = ScreenMain
	case "j", "down":
		m.selectNext()
	case "k", "up":
		m.selectPrev()
	case "pgdown":
		m.selectJump(5)
	case "pgup":
		m.selectJump(-5)
	case "z":
		if m.selectedTask() != nil {
			m.zen = newZenState(m.pomodoro)
			m.screen = ScreenZen
		}
	case "d", "enter":
		m.toggleSelected()
	case "x":
		m.dropSelected()
	case "tab", "l", "right":
		m.quadrant = (m.quadrant + 1) % 4
		m.selected = 0
	case "shift+tab", "h", "left":
		m.quadrant = (m.quadrant + 3) % 4
		m.selected = 0
	}
	return m, nil
}

// handleZenKey works on the selected task of the active quadrant so the
// timer can carry across tasks. Completing or dropping the last task in
// the quadrant falls back to the focus screen.
func (m Model) handleZenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.zen == nil {
		m.screen = ScreenFocus
		return m, nil
	}
	switch msg.String() {
	case "esc", "z":
		m.zen = nil
		m.screen = ScreenFocus
	case "s":
		m.selectNext()
	case "r":
		m.zen.reset(m.pomodoro)
	case "d", "enter", " ":
		t := m.selectedTask()
		if t == nil {
			break
		}
		if m.store.Toggle(t.ID) {
			m.saveStore()
			m.clampSelection()
		}
		if len(m.visible()) == 0 {
			m.zen = nil
			m.screen = ScreenFocus
		}
	case "x":
		t := m.selectedTask()
		if t == nil {
			break
		}
		if m.store.Drop(t.ID) {
			m.saveStore()
			m.clampSelection()
		}
		if len(m.visible()) == 0 {
			m.zen = nil
			m.screen = ScreenFocus
		}
	}
	return m, nil
}

func (m *Model) toggleSelected() {
	t := m.selectedTask()
	if t == nil {
		return
	}
	if m.store.Toggle(t.ID) {
		m.saveStore()
		m.clampSelection()
	}
}

func (m *Model) dropSelected() {
	t := m.selectedTask()
	if t == nil {
		return
	}
	if m.store.Drop(t.ID) {
		m.saveStore()
		m.clampSelection()
	}
}

// saveStore persists the task file and surfaces a failure on the status
// line instead of swallowing it.
func (m *Model) saveStore() {
	if err := m.store.Save(); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		m.log.Error("save failed", zap.Error(err))
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"eq/cmd/eq/ui"
	"eq/internal/store"
	"eq/internal/task"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	switch m.screen {
	case ScreenMain, ScreenEditing:
		return m.viewMain()
	case ScreenChat:
		return m.viewChat()
	case ScreenFocus:
		return m.viewFocus()
	case ScreenZen:
		return m.viewZen()
	case ScreenExiting:
		return ""
	}
	return ""
}

// viewMain draws the 2x2 matrix with the active quadrant highlighted.
// The editing screen reuses the matrix and swaps the footer for the
// input line.
func (m Model) viewMain() string {
	var b strings.Builder

	title := fmt.Sprintf("eq · %s", m.viewDate.String())
	if m.viewDate == task.Today() {
		title += " (today)"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	paneWidth := m.width/2 - 4
	if paneWidth < 16 {
		paneWidth = 16
	}
	paneHeight := (m.height - 7) / 2
	if paneHeight < 3 {
		paneHeight = 3
	}

	panes := make([]string, 4)
	for i, q := range task.Quadrants {
		panes[i] = m.renderQuadrant(q, paneWidth, paneHeight)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, panes[0], panes[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, panes[2], panes[3])
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	b.WriteString("\n")

	if m.screen == ScreenEditing {
		label := "add"
		if m.inputMode == editModeEdit {
			label = "edit"
		}
		b.WriteString(m.styles.Header.Render(label+": ") + m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter save · esc cancel · trailing u2i3 or !!$ sets priority"))
	} else if m.showHelp {
		b.WriteString(m.styles.Help.Render(mainHelp))
	} else {
		b.WriteString(m.styles.Help.Render("a add · e edit · d done · x drop · tab quadrant · c chat · f focus · t tomorrow · ? help · q quit"))
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.status))
	}
	return b.String()
}

const mainHelp = `keys:
  j/k        move selection          a    add a task
  tab/h/l    switch quadrant         e    edit selected
  d/enter    toggle done             x    drop selected
  >          push to next day        t    flip today/tomorrow
  c          chat with assistant     f/z  single-quadrant view
  q          quit (z in focus starts the zen timer)`

// renderQuadrant draws one pane with a bounded number of visible rows,
// windowed so the selection stays on screen.
func (m Model) renderQuadrant(q task.Quadrant, width, height int) string {
	tasks := m.store.QuadrantView(m.viewDate, q)
	active := q == m.quadrant

	header := ui.QuadrantStyle(q).Render(fmt.Sprintf("%s (%d)", q, len(tasks)))

	capacity := height - 1
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if active && m.selected >= capacity {
		start = m.selected - capacity + 1
	}
	end := start + capacity
	if end > len(tasks) {
		end = len(tasks)
	}

	lines := []string{header}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTaskLine(tasks[i], active && i == m.selected, width-2))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	pane := m.styles.Pane
	if active {
		pane = m.styles.ActivePane
	}
	return pane.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTaskLine(t task.Task, selected bool, width int) string {
	line := fmt.Sprintf("%s u%d i%d", t.Title, t.Urgency, t.Importance)
	if width > 3 {
		line = ansi.Truncate(line, width, "…")
	}
	switch {
	case t.Status == task.StatusCompleted:
		line = m.styles.Completed.Render(line)
	case selected:
		line = m.styles.Selected.Render(line)
	}
	return line
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("eq · assistant"))
	b.WriteString("\n")
	b.WriteString(m.chatView.View())
	b.WriteString("\n")

	if m.isLoading {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" thinking..."))
	} else if m.batch != nil {
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("%d change(s) proposed · y apply · n cancel", len(m.batch))))
	} else {
		b.WriteString(m.chatInput.View())
	}
	b.WriteString("\n")

	if m.showChatHelp {
		b.WriteString(m.styles.Help.Render("enter send · pgup/pgdn scroll · ctrl+l clear · esc back · ask for a \"quote\" for motivation"))
	} else {
		b.WriteString(m.styles.Help.Render("esc back · ? help"))
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.status))
	}
	return b.String()
}

// renderHistory formats the transcript for the chat viewport. Assistant
// turns go through glamour; user and system turns are plain styled text.
func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return m.styles.Muted.Render("No messages yet. Describe your day and let the assistant sort it out.")
	}
	var b strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case store.RoleUser:
			b.WriteString(m.styles.UserMsg.Render("you") + "\n")
			b.WriteString(msg.Content + "\n\n")
		case store.RoleAssistant:
			b.WriteString(m.styles.Assistant.Render("assistant") + "\n")
			b.WriteString(m.renderMarkdown(msg.Content) + "\n")
		default:
			b.WriteString(m.styles.Muted.Render(msg.Content) + "\n\n")
		}
	}
	return b.String()
}

// renderMarkdown renders assistant output, falling back to the raw text
// when the renderer is unavailable or panics on malformed input.
func (m Model) renderMarkdown(content string) (out string) {
	if m.renderer == nil {
		return content
	}
	defer func() {
		if r := recover(); r != nil {
			out = content
		}
	}()
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}

// viewFocus shows only the active quadrant, full width.
func (m Model) viewFocus() string {
	tasks := m.visible()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("eq · focus"))
	b.WriteString("  ")
	b.WriteString(ui.QuadrantStyle(m.quadrant).Render(m.quadrant.String()))
	b.WriteString("\n\n")

	capacity := m.height - 6
	if capacity < 1 {
		capacity = 1
	}
	start := 0
	if m.selected >= capacity {
		start = m.selected - capacity + 1
	}
	end := start + capacity
	if end > len(tasks) {
		end = len(tasks)
	}

	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("nothing here"))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderTaskLine(tasks[i], i == m.selected, m.width-2))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("j/k move · d done · x drop · tab quadrant · esc back"))
	if m.status != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.status))
	}
	return b.String()
}

func (m Model) viewZen() string {
	if m.zen == nil {
		return ""
	}
	title := "(nothing selected)"
	if t := m.selectedTask(); t != nil {
		title = t.Title
	}
	return m.zen.render(title, m.width, m.height, m.styles)
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes keyboard input and returns the updated model and command.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filter.Focused() {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit

	case "/":
		m.status = ""
		cmd := m.filter.Focus()
		return m, cmd

	case "right", "n", "tab":
		return m.handleMove(1)

	case "left", "p", "shift+tab":
		return m.handleMove(-1)

	case "ctrl+y":
		return m.handleCopyPage()

	case "up", "down", "pgup", "pgdown", "home", "end", "k", "j":
		return m.handleViewportScroll(msg)

	default:
		return m, nil
	}
}

// handleFilterKey edits the filter while it has focus. The page list follows
// every keystroke.
func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.applyFilter()
		m.updateViewportContent()
		return m, nil

	case "enter":
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	m.updateViewportContent()
	return m, cmd
}

// handleMove selects the next (delta 1) or previous (delta -1) page, wrapping around.
func (m Model) handleMove(delta int) (Model, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	m.current = (m.current + delta + len(m.visible)) % len(m.visible)
	m.status = ""
	m.updateViewportContent()
	m.viewport.GotoTop()
	return m, nil
}

// handleCopyPage copies the Markdown source of the current page to the clipboard.
func (m Model) handleCopyPage() (Model, tea.Cmd) {
	page, ok := m.Current()
	if !ok {
		return m, nil
	}
	if err := m.copyText(page.Content); err != nil {
		m.status = "copy failed: " + err.Error()
		return m, nil
	}
	m.status = "copied " + page.Name
	return m, nil
}

// handleViewportScroll passes scroll events to the viewport.
func (m Model) handleViewportScroll(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

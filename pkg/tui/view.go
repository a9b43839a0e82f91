package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/postman2md/pkg/render"
)

// View renders the entire TUI to a string.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// updateViewportContent renders the current page into the viewport.
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	page, ok := m.Current()
	if !ok {
		m.viewport.SetContent(render.DimStyle.Render("No pages match the filter"))
		return
	}

	out, err := render.Terminal(page.Content, m.width-2)
	if err != nil {
		out = page.Content
	}
	m.viewport.SetContent(out)
}

func (m Model) renderHeader() string {
	page, ok := m.Current()
	if !ok {
		return render.TitleStyle.Render("postman2md")
	}
	position := fmt.Sprintf(" %d/%d", m.current+1, len(m.visible))
	return render.TitleStyle.Render(page.Name) + render.DimStyle.Render(position)
}

// renderFooter shows the filter input while it is focused, else status on the
// left and shortcuts on the right.
func (m Model) renderFooter() string {
	if m.filter.Focused() {
		return m.filter.View()
	}

	left := render.DimStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	if m.status != "" {
		left = render.OKStyle.Render(m.status)
	}

	hints := []string{
		shortcut("←→", "page"),
		shortcut("/", "filter"),
		shortcut("ctrl+y", "copy"),
		shortcut("q", "quit"),
	}
	right := strings.Join(hints, "    ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func shortcut(key, desc string) string {
	return render.PageStyle.Render(key) + render.DimStyle.Render(" "+desc)
}

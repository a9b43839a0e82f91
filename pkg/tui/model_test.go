package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePages() []Page {
	return PagesFromMap(map[string]string{
		"Users-POST.md": "## **POST** Users\n",
		"Orders-GET.md": "## **GET** Orders\n",
		"Users-GET.md":  "## **GET** Users\n",
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds messages through Update in order.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func current(t *testing.T, m Model) string {
	t.Helper()
	page, ok := m.Current()
	require.True(t, ok)
	return page.Name
}

func TestPagesFromMap(t *testing.T) {
	var names []string
	for _, p := range samplePages() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Orders-GET.md", "Users-GET.md", "Users-POST.md"}, names)
}

func TestView(t *testing.T) {
	m := NewModel(samplePages())
	assert.Equal(t, "Initializing...", m.View())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.Contains(t, view, "Orders-GET.md")
	assert.Contains(t, view, "1/3")
	assert.Contains(t, view, "Orders")
}

func TestNavigation(t *testing.T) {
	m, _ := send(t, NewModel(samplePages()), tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Users-GET.md", current(t, m))

	m, _ = send(t, m, runes("n"), runes("n"))
	assert.Equal(t, "Orders-GET.md", current(t, m), "wraps past the last page")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Users-POST.md", current(t, m), "wraps before the first page")
}

func TestFilter(t *testing.T) {
	m, _ := send(t, NewModel(samplePages()), tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = send(t, m, runes("/"))
	require.True(t, m.filter.Focused())

	m, _ = send(t, m, runes("u"), runes("s"), runes("e"), runes("r"))
	assert.Equal(t, "Users-GET.md", current(t, m))
	assert.Len(t, m.visible, 2)

	m, _ = send(t, m, runes("s-post"))
	assert.Equal(t, "Users-POST.md", current(t, m))
	assert.Len(t, m.visible, 1)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.filter.Focused())
	assert.Len(t, m.visible, 1, "filter stays applied")

	m, _ = send(t, m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.filter.Focused())
	assert.Len(t, m.visible, 3)
	assert.Equal(t, "Users-POST.md", current(t, m), "selection survives clearing")
}

func TestFilter_NoMatch(t *testing.T) {
	m, _ := send(t, NewModel(samplePages()), tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = send(t, m, runes("/"), runes("zzz"))
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No pages match")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("n"))
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestCopyPage(t *testing.T) {
	m, _ := send(t, NewModel(samplePages()), tea.WindowSizeMsg{Width: 80, Height: 24})
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "## **GET** Orders\n", copied)
	assert.Equal(t, "copied Orders-GET.md", m.status)

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "copy failed: no clipboard", m.status)
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := send(t, NewModel(samplePages()), key)
		require.NotNil(t, cmd, key.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

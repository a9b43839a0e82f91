package tui

import (
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is one generated Markdown document.
type Page struct {
	Name    string
	Content string
}

// PagesFromMap returns the pages sorted by name.
func PagesFromMap(m map[string]string) []Page {
	pages := make([]Page, 0, len(m))
	for name, content := range m {
		pages = append(pages, Page{Name: name, Content: content})
	}
	slices.SortFunc(pages, func(a, b Page) int { return strings.Compare(a.Name, b.Name) })
	return pages
}

// Model is the Bubble Tea model for the page browser.
type Model struct {
	viewport viewport.Model
	filter   textinput.Model
	pages    []Page
	visible  []int // indexes into pages matching the filter
	current  int   // position in visible
	width    int
	height   int
	ready    bool
	status   string // transient message shown in the footer

	copyText func(string) error
}

// NewModel creates a browser over pages, showing the first one.
func NewModel(pages []Page) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter pages"
	ti.CharLimit = 200

	m := Model{
		filter:   ti,
		pages:    pages,
		copyText: clipboard.WriteAll,
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Current returns the page on screen.
func (m Model) Current() (Page, bool) {
	if len(m.visible) == 0 {
		return Page{}, false
	}
	return m.pages[m.visible[m.current]], true
}

// applyFilter recomputes the visible pages from the filter text. The current
// page stays selected when it still matches.
func (m *Model) applyFilter() {
	prev, hadPrev := m.Current()
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	m.visible = m.visible[:0]
	m.current = 0
	for i, p := range m.pages {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if hadPrev && p.Name == prev.Name {
			m.current = len(m.visible)
		}
		m.visible = append(m.visible, i)
	}
}

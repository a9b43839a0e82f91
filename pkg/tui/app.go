// Package tui is an interactive browser for generated documentation pages.
//
// File organization:
// - app.go: Entry point (Run function)
// - model.go: Model struct and page list
// - update.go: Event handling and state updates
// - view.go: Rendering and display logic
// - keys.go: Keyboard input handling
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the page browser and blocks until the user quits.
func Run(pages []Page) error {
	prog := tea.NewProgram(NewModel(pages), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run executes a bubbletea model in the alternate screen and returns the
// final model state.
func Run(model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithAltScreen())
	return p.Run()
}

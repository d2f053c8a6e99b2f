package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the editor on the alternate screen and blocks until it quits
func Run(e Editor) error {
	p := tea.NewProgram(e, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

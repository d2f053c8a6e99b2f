package tui

import (
	"time"

	"github.com/Zaphoood/rewind/pkg/tally"
	"github.com/Zaphoood/rewind/pkg/undo"
	tea "github.com/charmbracelet/bubbletea"
)

// saveToPathCmd saves the sheet to path. The sheet is copied before the
// command returns, since Update keeps editing it while the file is written.
// fingerprint is the state being saved, so the editor can tell whether it
// changed in the meantime.
func saveToPathCmd(s *tally.Sheet, path string, andThen tea.Cmd) tea.Cmd {
	snapshot := s.Clone()
	fingerprint := snapshot.Fingerprint()
	return func() tea.Msg {
		if err := snapshot.Save(path); err != nil {
			return saveFailedMsg{err}
		}
		return saveDoneMsg{path, fingerprint, andThen}
	}
}

type saveDoneMsg struct {
	path        string
	fingerprint [32]byte
	// Should be executed after saving
	andThen tea.Cmd
}

type saveFailedMsg struct {
	err error
}

func scheduleClearClipboard(delay int, notify <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-notify:
			return nil
		case <-time.After(time.Duration(delay) * time.Second):
			return clearClipboardMsg{}
		}
	}
}

type clearClipboardMsg struct{}

type clearClipboardAndQuitMsg struct{}

func quitCmd() tea.Msg {
	return clearClipboardAndQuitMsg{}
}

// animationTickCmd schedules the next frame of the undo/redo flash
func animationTickCmd(interval time.Duration, id int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return animationTickMsg{id}
	})
}

type animationTickMsg struct {
	// Ticks from an earlier animation are dropped
	id int
}

func undoableActionCmd(action undo.Action) tea.Cmd {
	return func() tea.Msg {
		return undoableActionMsg{action}
	}
}

type undoableActionMsg struct {
	action undo.Action
}

type setCommandLineMessageMsg struct {
	msg string
}

type commandInputMsg struct {
	cmd []string
}

type searchInputMsg struct {
	query   string
	reverse bool
}

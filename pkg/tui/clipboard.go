package tui

import (
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce  sync.Once
	clipboardErr   error
	clipboardReady bool
)

// initClipboard initializes the system clipboard once. Headless sessions
// have no clipboard, which only disables yanking.
func initClipboard(logger *slog.Logger) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
		if clipboardErr != nil {
			logger.Warn("clipboard unavailable", "err", clipboardErr)
			return
		}
		clipboardReady = true
	})
	return clipboardErr
}

func copyToClipboard(value string, clearClipboardDelay int) tea.Cmd {
	notifyChangeChan := clipboard.Write(clipboard.FmtText, []byte(value))

	commandLineMsg := "Copied to clipboard."
	var clearClipboardCmd tea.Cmd = nil
	if clearClipboardDelay > 0 {
		commandLineMsg += fmt.Sprintf(" (Clearing in %d seconds)", clearClipboardDelay)
		clearClipboardCmd = scheduleClearClipboard(clearClipboardDelay, notifyChangeChan)
	}
	setMsgCmd := func() tea.Msg {
		return setCommandLineMessageMsg{commandLineMsg}
	}
	return tea.Batch(setMsgCmd, clearClipboardCmd)
}

func clearClipboard() {
	if !clipboardReady {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(""))
}

package tui

import (
	"strconv"

	"github.com/Zaphoood/rewind/pkg/tally"
	"github.com/Zaphoood/rewind/pkg/util"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	VALUE_COL_WIDTH = 12
	MARKER_WIDTH    = 2
	FLASH_MARKER    = "» "
	EMPTY_PLACEH    = "(No counters. Add one with :add NAME)"
)

var tableStyles = table.Styles{
	Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Cell:   lipgloss.NewStyle().Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Reverse(true).
		Bold(true).
		Foreground(lipgloss.Color("#9dcbf4")),
}

// counterTable shows the counters of a sheet. One row can be marked to
// flash while an undo or redo animation is running.
type counterTable struct {
	table.Model
	names []string
}

// Rows are rendered as soon as they are set, so the columns must exist
// before the first window size is known.
func newCounterTable() counterTable {
	return counterTable{
		Model: table.New(
			table.WithColumns([]table.Column{
				{Title: "Name", Width: VALUE_COL_WIDTH},
				{Title: "Value", Width: VALUE_COL_WIDTH},
			}),
			table.WithFocused(true),
			table.WithStyles(tableStyles),
		),
	}
}

func (t *counterTable) Resize(width, height int) {
	t.SetWidth(width)
	t.SetHeight(util.Max(height, 1))
	frameWidth, _ := tableStyles.Header.GetFrameSize()
	nameWidth := util.Max(width-2*frameWidth-VALUE_COL_WIDTH, MARKER_WIDTH+1)
	t.SetColumns([]table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Value", Width: VALUE_COL_WIDTH},
	})
}

// Load fills the table from the sheet. flash is the name of the counter to
// mark, and shown toggles the marker for blinking.
func (t *counterTable) Load(s *tally.Sheet, flash string, shown bool) {
	counters := s.Counters()
	rows := make([]table.Row, 0, len(counters))
	t.names = t.names[:0]
	for _, c := range counters {
		marker := "  "
		if shown && c.Name == flash {
			marker = FLASH_MARKER
		}
		rows = append(rows, table.Row{marker + c.Name, strconv.FormatInt(c.Value, 10)})
		t.names = append(t.names, c.Name)
	}
	t.SetRows(rows)
	if len(rows) > 0 && t.Cursor() >= len(rows) {
		t.SetCursor(len(rows) - 1)
	}
}

// FocusedName returns the name of the counter under the cursor, or "" if the table is empty
func (t counterTable) FocusedName() string {
	if len(t.names) == 0 {
		return ""
	}
	return t.names[util.Clamp(t.Cursor(), 0, len(t.names)-1)]
}

// SetCursorToName moves the cursor to the named counter and reports whether it exists
func (t *counterTable) SetCursorToName(name string) bool {
	for i, n := range t.names {
		if n == name {
			t.SetCursor(i)
			// Keep the cursor on screen
			t.MoveUp(0)
			t.MoveDown(0)
			return true
		}
	}
	return false
}

func (t counterTable) View() string {
	if len(t.names) == 0 {
		return EMPTY_PLACEH
	}
	return t.Model.View()
}

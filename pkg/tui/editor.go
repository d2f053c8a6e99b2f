package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Zaphoood/rewind/internal/config"
	"github.com/Zaphoood/rewind/pkg/tally"
	"github.com/Zaphoood/rewind/pkg/undo"
	"github.com/Zaphoood/rewind/pkg/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

/* Model for viewing and editing a tally sheet with undo/redo */

const HISTORY_WIDTH_RATIO = 0.4

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9dcbf4"))
	modifiedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f4b69d"))
	historyStyle  = lipgloss.NewStyle().PaddingLeft(2).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true)
	redoableStyle = lipgloss.NewStyle().Faint(true)
)

type Options struct {
	// Where :w saves to when no path is given
	Path   string
	Config config.Config
	Logger *slog.Logger
}

type Editor struct {
	sheet   *tally.Sheet
	history *undo.Manager
	// Set while an undo/redo flash is running; undo and redo are ignored meanwhile
	busy  *undo.Flag
	path  string
	saved [32]byte

	table       counterTable
	cmdLine     CommandLine
	showHistory bool

	flash       string
	framesLeft  int
	animationID int

	search        []string
	searchIndex   int
	searchForward bool

	config       config.Config
	logger       *slog.Logger
	windowWidth  int
	windowHeight int
}

func NewEditor(sheet *tally.Sheet, opts Options) Editor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	busy := &undo.Flag{}
	e := Editor{
		sheet: sheet,
		history: undo.NewManager(
			undo.WithBusy(busy.IsSet),
			undo.WithLimit(opts.Config.HistoryLimit),
			undo.WithLogger(logger),
		),
		busy:    busy,
		path:    opts.Path,
		saved:   sheet.Fingerprint(),
		table:   newCounterTable(),
		cmdLine: NewCommandLine(),
		config:  opts.Config,
		logger:  logger,
	}
	e.refresh()
	return e
}

func (e Editor) Init() tea.Cmd {
	return nil
}

func (e Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.windowWidth = msg.Width
		e.windowHeight = msg.Height
		e.resize()
		return e, nil
	case clearClipboardMsg:
		clearClipboard()
		return e, nil
	case clearClipboardAndQuitMsg:
		clearClipboard()
		return e, tea.Quit
	case setCommandLineMessageMsg:
		e.cmdLine.SetMessage(msg.msg)
		return e, nil
	case undoableActionMsg:
		return e, e.execute(msg.action)
	case animationTickMsg:
		return e, e.animate(msg)
	case commandInputMsg:
		return e, e.handleCommand(msg.cmd)
	case searchInputMsg:
		return e, e.handleSearch(msg.query, msg.reverse)
	case saveDoneMsg:
		e.path = msg.path
		e.saved = msg.fingerprint
		e.cmdLine.SetMessage(fmt.Sprintf("Saved to %s", msg.path))
		return e, msg.andThen
	case saveFailedMsg:
		e.logger.Error("save failed", "err", msg.err)
		e.cmdLine.SetMessage(fmt.Sprintf("Error while saving: %s", msg.err))
		return e, nil
	case tea.KeyMsg:
		if e.cmdLine.Focused() {
			// Key events should not be handled by the editor in case the command line is active
			break
		}
		if handled, cmd := e.handleCtrlC(msg); handled {
			return e, cmd
		}
		if handled, cmd := e.handleKeyCmdLineTrigger(msg); handled {
			return e, cmd
		}
		if handled, cmd := e.handleKeyDefault(msg); handled {
			return e, cmd
		}
	}

	if e.cmdLine.Focused() {
		e.cmdLine, cmd = e.cmdLine.Update(msg)
		return e, cmd
	}
	e.table.Model, cmd = e.table.Model.Update(msg)
	return e, cmd
}

func (e *Editor) handleCtrlC(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		e.cmdLine.SetMessage("Type  :q  and press <Enter> to exit rewind")
		return true, nil
	}
	return false, nil
}

func (e *Editor) handleKeyCmdLineTrigger(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case PROMPT_COMMAND:
		return true, e.cmdLine.StartInput(InputCommand, PROMPT_COMMAND)
	case PROMPT_SEARCH:
		return true, e.cmdLine.StartInput(InputSearch, PROMPT_SEARCH)
	case PROMPT_REV_SEARCH:
		return true, e.cmdLine.StartInput(InputSearch, PROMPT_REV_SEARCH)
	}
	return false, nil
}

// handleKeyDefault handles key events when the command line is not focused
func (e *Editor) handleKeyDefault(msg tea.KeyMsg) (bool, tea.Cmd) {
	focused := e.table.FocusedName()
	switch msg.String() {
	case "u":
		return true, e.backwards()
	case "ctrl+r":
		return true, e.forwards()
	case "H":
		e.showHistory = !e.showHistory
		e.resize()
		return true, nil
	case "n":
		return true, e.nextSearchResult()
	case "N":
		return true, e.previousSearchResult()
	case "y":
		return true, e.yank()
	}

	if len(focused) == 0 {
		return false, nil
	}
	switch msg.String() {
	case "+", "=":
		return true, undoableActionCmd(tally.NewIncrement(e.sheet, focused, 1))
	case "-":
		return true, undoableActionCmd(tally.NewIncrement(e.sheet, focused, -1))
	case "*":
		return true, undoableActionCmd(tally.NewMultiply(e.sheet, focused, 2))
	case "0":
		return true, undoableActionCmd(tally.NewSetValue(e.sheet, focused, 0))
	case "x":
		return true, undoableActionCmd(tally.NewRemoveCounter(e.sheet, focused))
	}
	return false, nil
}

// execute performs a new action and records it into history
func (e *Editor) execute(action undo.Action) tea.Cmd {
	before := e.sheet.Counters()
	if err := e.history.Execute(action); err != nil {
		e.logger.Warn("action failed", "action", undo.Describe(action), "err", err)
		e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", err))
		return nil
	}
	e.cmdLine.SetMessage(undo.Describe(action))
	e.refresh()
	if name := changedCounter(before, e.sheet.Counters()); len(name) > 0 {
		e.table.SetCursorToName(name)
	}
	return nil
}

// backwards leaves the decision whether to act to the history, which ignores
// undo while the busy flag is set.
func (e *Editor) backwards() tea.Cmd {
	entry, ok := e.history.PeekUndo()
	if !ok {
		e.cmdLine.SetMessage("Already at oldest change")
		return nil
	}
	before := e.sheet.Counters()
	acted, err := e.history.Backwards()
	if err != nil {
		return e.navigationFailed("undo", err)
	}
	if !acted {
		return nil
	}
	e.cmdLine.SetMessage(fmt.Sprintf("Undo: %s", entry.Description))
	return e.startAnimation(changedCounter(before, e.sheet.Counters()))
}

func (e *Editor) forwards() tea.Cmd {
	entry, ok := e.history.PeekRedo()
	if !ok {
		e.cmdLine.SetMessage("Already at newest change")
		return nil
	}
	before := e.sheet.Counters()
	acted, err := e.history.Forwards()
	if err != nil {
		return e.navigationFailed("redo", err)
	}
	if !acted {
		return nil
	}
	e.cmdLine.SetMessage(fmt.Sprintf("Redo: %s", entry.Description))
	return e.startAnimation(changedCounter(before, e.sheet.Counters()))
}

func (e *Editor) navigationFailed(what string, err error) tea.Cmd {
	e.logger.Error(what+" failed", "err", err, "cursor", e.history.Cursor())
	e.cmdLine.SetMessage(fmt.Sprintf("Error during %s: %s", what, err))
	e.refresh()
	return nil
}

// startAnimation flashes the named row. Undo and redo stay blocked until the
// last frame has been shown.
func (e *Editor) startAnimation(name string) tea.Cmd {
	if e.config.AnimationFrames == 0 || len(name) == 0 {
		e.refresh()
		if len(name) > 0 {
			e.table.SetCursorToName(name)
		}
		return nil
	}
	e.busy.Set()
	e.animationID++
	e.flash = name
	e.framesLeft = e.config.AnimationFrames
	e.refresh()
	e.table.SetCursorToName(name)
	return animationTickCmd(e.config.AnimationInterval, e.animationID)
}

func (e *Editor) animate(msg animationTickMsg) tea.Cmd {
	if msg.id != e.animationID || e.framesLeft == 0 {
		return nil
	}
	e.framesLeft--
	if e.framesLeft == 0 {
		e.flash = ""
		e.busy.Clear()
		e.refresh()
		return nil
	}
	e.refresh()
	return animationTickCmd(e.config.AnimationInterval, e.animationID)
}

func (e *Editor) refresh() {
	shown := (e.config.AnimationFrames-e.framesLeft)%2 == 0
	e.table.Load(e.sheet, e.flash, shown)
}

func (e *Editor) resize() {
	height := e.windowHeight - e.cmdLine.GetHeight() - 1
	width := e.windowWidth
	if e.showHistory {
		width = int(float64(e.windowWidth) * (1 - HISTORY_WIDTH_RATIO))
	}
	e.table.Resize(width, height)
}

func (e *Editor) yank() tea.Cmd {
	name := e.table.FocusedName()
	if len(name) == 0 {
		return nil
	}
	if err := initClipboard(e.logger); err != nil {
		e.cmdLine.SetMessage("Clipboard is not available")
		return nil
	}
	value, err := e.sheet.Get(name)
	if err != nil {
		e.logger.Error("yank failed", "err", err)
		return nil
	}
	return copyToClipboard(strconv.FormatInt(value, 10), e.config.ClipboardClearDelay)
}

func (e *Editor) handleCommand(cmd []string) tea.Cmd {
	if len(cmd) == 0 {
		return nil
	}
	switch cmd[0] {
	case "q", "q!":
		return e.handleQuitCmd(cmd)
	case "w":
		return e.handleSaveCmd(cmd, false)
	case "wq", "x":
		return e.handleSaveCmd(cmd, true)
	case "add":
		return e.handleAddCmd(cmd)
	case "rm":
		return e.handleRemoveCmd(cmd)
	case "mv":
		return e.handleRenameCmd(cmd)
	case "set", "inc", "mul":
		return e.handleValueCmd(cmd)
	case "zero":
		return e.handleZeroCmd()
	case "reset":
		e.history.Reset()
		e.cmdLine.SetMessage("History rewound to the start. Changes were not rolled back")
		return nil
	case "clear":
		e.history.Clear()
		e.cmdLine.SetMessage("History cleared")
		return nil
	case "history":
		e.showHistory = !e.showHistory
		e.resize()
		return nil
	default:
		e.cmdLine.SetMessage(fmt.Sprintf("Not a command: %s", cmd[0]))
		return nil
	}
}

func (e *Editor) handleQuitCmd(cmd []string) tea.Cmd {
	if len(cmd) > 1 {
		e.cmdLine.SetMessage("Error: Too many arguments")
		return nil
	}
	if cmd[0] == "q" && e.Modified() {
		e.cmdLine.SetMessage("No write since last change (add ! to override)")
		return nil
	}
	return quitCmd
}

func (e *Editor) handleSaveCmd(cmd []string, quit bool) tea.Cmd {
	if len(cmd) > 2 {
		e.cmdLine.SetMessage("Error: Too many arguments")
		return nil
	}

	var andThen tea.Cmd
	if quit {
		andThen = quitCmd
	}
	path := e.path
	if len(cmd) == 2 {
		path = cmd[1]
	}
	if len(path) == 0 {
		e.cmdLine.SetMessage("Error: No file name")
		return nil
	}
	path, err := util.Expand(path)
	if err != nil {
		e.cmdLine.SetMessage(fmt.Sprintf("Error: %s", err))
		return nil
	}
	e.cmdLine.SetMessage("Saving...")
	return saveToPathCmd(e.sheet, path, andThen)
}

func (e *Editor) handleAddCmd(cmd []string) tea.Cmd {
	if len(cmd) < 2 || len(cmd) > 3 {
		e.cmdLine.SetMessage("Usage: :add NAME [VALUE]")
		return nil
	}
	var value int64
	if len(cmd) == 3 {
		v, ok := e.parseInt(cmd[2])
		if !ok {
			return nil
		}
		value = v
	}
	index := -1
	if focused := e.table.FocusedName(); len(focused) > 0 {
		index = e.sheet.Index(focused) + 1
	}
	return undoableActionCmd(tally.NewAddCounter(e.sheet, tally.Counter{Name: cmd[1], Value: value}, index))
}

func (e *Editor) handleRemoveCmd(cmd []string) tea.Cmd {
	if len(cmd) > 2 {
		e.cmdLine.SetMessage("Usage: :rm [NAME]")
		return nil
	}
	name := e.table.FocusedName()
	if len(cmd) == 2 {
		name = cmd[1]
	}
	if len(name) == 0 {
		e.cmdLine.SetMessage("Error: No counter selected")
		return nil
	}
	return undoableActionCmd(tally.NewRemoveCounter(e.sheet, name))
}

func (e *Editor) handleRenameCmd(cmd []string) tea.Cmd {
	var oldName, newName string
	switch len(cmd) {
	case 2:
		oldName, newName = e.table.FocusedName(), cmd[1]
	case 3:
		oldName, newName = cmd[1], cmd[2]
	default:
		e.cmdLine.SetMessage("Usage: :mv [OLD] NEW")
		return nil
	}
	if len(oldName) == 0 {
		e.cmdLine.SetMessage("Error: No counter selected")
		return nil
	}
	return undoableActionCmd(tally.NewRenameCounter(e.sheet, oldName, newName))
}

func (e *Editor) handleValueCmd(cmd []string) tea.Cmd {
	if len(cmd) != 2 {
		e.cmdLine.SetMessage(fmt.Sprintf("Usage: :%s N", cmd[0]))
		return nil
	}
	name := e.table.FocusedName()
	if len(name) == 0 {
		e.cmdLine.SetMessage("Error: No counter selected")
		return nil
	}
	n, ok := e.parseInt(cmd[1])
	if !ok {
		return nil
	}
	switch cmd[0] {
	case "set":
		return undoableActionCmd(tally.NewSetValue(e.sheet, name, n))
	case "inc":
		return undoableActionCmd(tally.NewIncrement(e.sheet, name, n))
	default:
		return undoableActionCmd(tally.NewMultiply(e.sheet, name, n))
	}
}

func (e *Editor) handleZeroCmd() tea.Cmd {
	action := tally.ResetAll(e.sheet)
	if action.Size() == 0 {
		e.cmdLine.SetMessage("All counters are zero already")
		return nil
	}
	return undoableActionCmd(action)
}

func (e *Editor) parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		e.cmdLine.SetMessage(fmt.Sprintf("Error: Not a number: %s", s))
		return 0, false
	}
	return n, true
}

func (e *Editor) handleSearch(query string, reverse bool) tea.Cmd {
	e.search = e.search[:0]
	for _, c := range e.sheet.Counters() {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			e.search = append(e.search, c.Name)
		}
	}
	if len(e.search) == 0 {
		e.cmdLine.SetMessage(fmt.Sprintf("Not found: %s", query))
		return nil
	}
	e.searchForward = !reverse
	if reverse {
		e.searchIndex = len(e.search) - 1
	} else {
		e.searchIndex = 0
	}
	e.table.SetCursorToName(e.search[e.searchIndex])
	return nil
}

func (e *Editor) nextSearchResult() tea.Cmd {
	if e.searchForward {
		return e.moveSearchIndex(1)
	}
	return e.moveSearchIndex(-1)
}

func (e *Editor) previousSearchResult() tea.Cmd {
	if e.searchForward {
		return e.moveSearchIndex(-1)
	}
	return e.moveSearchIndex(1)
}

func (e *Editor) moveSearchIndex(delta int) tea.Cmd {
	if len(e.search) == 0 {
		return nil
	}
	e.searchIndex = util.Mod(e.searchIndex+delta, len(e.search))
	if !e.table.SetCursorToName(e.search[e.searchIndex]) {
		e.cmdLine.SetMessage(fmt.Sprintf("Counter '%s' no longer exists", e.search[e.searchIndex]))
	}
	return nil
}

// Modified reports whether the sheet differs from what was last loaded or saved
func (e Editor) Modified() bool {
	return e.sheet.Fingerprint() != e.saved
}

func (e Editor) View() string {
	main := e.table.View()
	if e.showHistory {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, e.historyView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, main, e.statusView(), e.cmdLine.View())
}

func (e Editor) statusView() string {
	name := e.sheet.Name
	if len(e.path) > 0 {
		name = e.path
	}
	if len(name) == 0 {
		name = "[No Name]"
	}
	status := statusStyle.Render(fmt.Sprintf("%s  %d/%d", name, e.history.Cursor(), e.history.Len()))
	if e.Modified() {
		status += " " + modifiedStyle.Render("[+]")
	}
	return status
}

func (e Editor) historyView() string {
	entries := e.history.Entries()
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("History"))
	for _, entry := range entries {
		line := fmt.Sprintf("%3d %s", entry.Index+1, entry.Description)
		if !entry.Applied {
			line = redoableStyle.Render(line)
		}
		if entry.Index == e.history.Cursor()-1 {
			line = "› " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	// Newest entries are the interesting ones
	height := util.Max(e.windowHeight-e.cmdLine.GetHeight()-1, 2)
	if len(lines) > height {
		lines = append(lines[:1], lines[len(lines)-height+1:]...)
	}
	return historyStyle.Render(strings.Join(lines, "\n"))
}

// changedCounter returns the name of the counter that differs between two
// snapshots, or "" if a counter was removed or nothing changed.
func changedCounter(before, after []tally.Counter) string {
	if len(after) > len(before) {
		for i, c := range after {
			if i >= len(before) || before[i].Name != c.Name {
				return c.Name
			}
		}
		return ""
	}
	if len(after) < len(before) {
		return ""
	}
	for i := range after {
		if after[i] != before[i] {
			return after[i].Name
		}
	}
	return ""
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DEFAULT_MESSAGE   = "Ready."
	PROMPT_COMMAND    = ":"
	PROMPT_SEARCH     = "/"
	PROMPT_REV_SEARCH = "?"
)

type inputMode int

const (
	InputNone inputMode = iota
	InputCommand
	InputSearch
)

type CommandLine struct {
	input     textinput.Model
	inputMode inputMode
	prompt    string
	message   string
}

func NewCommandLine() CommandLine {
	input := textinput.New()
	input.Prompt = ""
	return CommandLine{
		input:     input,
		inputMode: InputNone,
		message:   DEFAULT_MESSAGE,
	}
}

func (c CommandLine) Init() tea.Cmd {
	return nil
}

func (c CommandLine) Update(msg tea.Msg) (CommandLine, tea.Cmd) {
	var cmd tea.Cmd
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok || c.inputMode == InputNone {
		return c, nil
	}

	switch msgKey.String() {
	case "esc", "ctrl+c":
		c.endInput()
		return c, nil
	case "enter":
		return c, c.onEnter()
	}

	c.input, cmd = c.input.Update(msgKey)

	switch msgKey.String() {
	case "backspace":
		if len(c.input.Value()) == 0 {
			c.endInput()
			return c, nil
		}
	case "ctrl+w":
		if len(c.input.Value()) == 0 {
			c.resetPrompt()
			return c, nil
		}
	}

	return c, cmd
}

// StartInput focuses the command line. The prompt is part of the input value,
// so deleting it leaves input mode.
func (c *CommandLine) StartInput(mode inputMode, prompt string) tea.Cmd {
	c.inputMode = mode
	c.prompt = prompt
	c.resetPrompt()
	return c.input.Focus()
}

func (c *CommandLine) resetPrompt() {
	c.input.SetValue(c.prompt)
	c.input.SetCursor(len(c.prompt))
}

func (c *CommandLine) onEnter() tea.Cmd {
	value := c.input.Value()
	mode := c.inputMode
	prompt := c.prompt
	c.endInput()
	c.message = value

	switch mode {
	case InputCommand:
		cmd, err := parseInputAsCommand(value)
		if err != nil || len(cmd) == 0 {
			return nil
		}
		return func() tea.Msg { return commandInputMsg{cmd} }
	case InputSearch:
		query, err := parseInputAsSearch(value, prompt)
		if err != nil || len(query) == 0 {
			return nil
		}
		return func() tea.Msg { return searchInputMsg{query, prompt == PROMPT_REV_SEARCH} }
	}
	return nil
}

func parseInputAsCommand(input string) ([]string, error) {
	if !strings.HasPrefix(input, PROMPT_COMMAND) {
		return nil, fmt.Errorf("commands must start with '%s', got '%s'", PROMPT_COMMAND, input)
	}
	return strings.Fields(input[len(PROMPT_COMMAND):]), nil
}

func parseInputAsSearch(input, prompt string) (string, error) {
	if !strings.HasPrefix(input, prompt) {
		return "", fmt.Errorf("search must start with '%s', got '%s'", prompt, input)
	}
	return input[len(prompt):], nil
}

func (c *CommandLine) endInput() {
	c.inputMode = InputNone
	c.input.Blur()
	c.message = DEFAULT_MESSAGE
}

func (c CommandLine) View() string {
	switch c.inputMode {
	case InputNone:
		return c.message
	case InputCommand, InputSearch:
		return c.input.View()
	default:
		panic(fmt.Sprintf("ERROR: Invalid input mode %d", c.inputMode))
	}
}

func (c *CommandLine) SetMessage(msg string) {
	c.message = msg
}

func (c CommandLine) Message() string {
	return c.message
}

func (c CommandLine) Focused() bool {
	return c.inputMode != InputNone
}

func (c CommandLine) GetHeight() int {
	return 1
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestParseInputAsCommand(t *testing.T) {
	assert := assert.New(t)

	cmd, err := parseInputAsCommand(":add  figs 3 ")
	if assert.Nil(err) {
		assert.Equal([]string{"add", "figs", "3"}, cmd)
	}

	cmd, err = parseInputAsCommand(":")
	if assert.Nil(err) {
		assert.Empty(cmd)
	}

	_, err = parseInputAsCommand("add figs")
	assert.NotNil(err)
}

func TestParseInputAsSearch(t *testing.T) {
	assert := assert.New(t)

	query, err := parseInputAsSearch("/app", PROMPT_SEARCH)
	if assert.Nil(err) {
		assert.Equal("app", query)
	}
	query, err = parseInputAsSearch("?app", PROMPT_REV_SEARCH)
	if assert.Nil(err) {
		assert.Equal("app", query)
	}
	_, err = parseInputAsSearch("app", PROMPT_SEARCH)
	assert.NotNil(err)
}

func TestCommandLineInputMode(t *testing.T) {
	assert := assert.New(t)

	c := NewCommandLine()
	assert.False(c.Focused())
	assert.Equal(DEFAULT_MESSAGE, c.View())

	c.StartInput(InputCommand, PROMPT_COMMAND)
	assert.True(c.Focused())
	assert.Equal(PROMPT_COMMAND, c.input.Value())

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(c.Focused())
	assert.Equal(DEFAULT_MESSAGE, c.Message())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMissingFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Load(path, false)
	assert.Nil(err)
	assert.Equal(Default(), cfg)

	_, err = Load(path, true)
	assert.NotNil(err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	assert := assert.New(t)
	path := writeConfig(t, "history_limit: 20\nanimation_interval: 100ms\nlog_level: debug\n")

	cfg, err := Load(path, true)
	require.Nil(t, err)
	assert.Equal(20, cfg.HistoryLimit)
	assert.Equal(100*time.Millisecond, cfg.AnimationInterval)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal(Default().AnimationFrames, cfg.AnimationFrames)
	assert.Equal(Default().ClipboardClearDelay, cfg.ClipboardClearDelay)
}

func TestLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeConfig(t, "history_limit: [1, 2"), true)
	assert.NotNil(err)

	_, err = Load(writeConfig(t, "history_limit: -1\n"), true)
	assert.NotNil(err)

	_, err = Load(writeConfig(t, "animation_frames: 3\nanimation_interval: 0s\n"), true)
	assert.NotNil(err)
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/retui/terminal"
	"github.com/lixenwraith/retui/terminal/tui"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "retui", cfg.Title)
	assert.Equal(t, time.Second, cfg.ReadTimeout.Duration)
	assert.Equal(t, terminal.DefaultEscapeTimeout, cfg.EscapeTimeout.Duration)
	assert.Zero(t, cfg.Demo.Duration)
	assert.True(t, cfg.HandleSIGINT)
	assert.Equal(t, tui.DefaultTheme, cfg.Theme.TUI())

	keys, err := cfg.QuitVirtualKeys()
	require.NoError(t, err)
	assert.Equal(t, []terminal.VirtualKey{terminal.VKEscape}, keys)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(`
title = "panes"
log_level = "debug"
demo = "2.5s"
read_timeout = "250ms"
escape_timeout = "500ms"
handle_sigint = false
color_mode = "256"
mouse = "click"
quit_keys = ["q", "F10"]

[theme]
accent = "#ff8800"
status = "#123"
`)
	require.NoError(t, err)

	assert.Equal(t, "panes", cfg.Title)
	assert.Equal(t, 2500*time.Millisecond, cfg.Demo.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.ReadTimeout.Duration)
	assert.Equal(t, 500*time.Millisecond, cfg.EscapeTimeout.Duration)
	assert.False(t, cfg.HandleSIGINT)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	mode, err := cfg.Color()
	require.NoError(t, err)
	assert.Equal(t, terminal.ColorMode256, mode)

	mouse, err := cfg.MouseMode()
	require.NoError(t, err)
	assert.Equal(t, terminal.MouseModeClick, mouse)

	keys, err := cfg.QuitVirtualKeys()
	require.NoError(t, err)
	assert.Equal(t, []terminal.VirtualKey{terminal.VKA + 16, terminal.VKF10}, keys)

	theme := cfg.Theme.TUI()
	assert.Equal(t, terminal.RGB{R: 255, G: 136, B: 0}, theme.Accent)
	assert.Equal(t, terminal.RGB{R: 0x11, G: 0x22, B: 0x33}, theme.Status)
	assert.Equal(t, tui.DefaultTheme.Border, theme.Border)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"Unknown keys", "titel = \"x\"\n[theme]\nshade = \"#000\"", "unknown keys: theme.shade, titel"},
		{"Bad duration", `demo = "soon"`, `duration "soon"`},
		{"Negative duration", `read_timeout = "-1s"`, "negative"},
		{"Bad color", "[theme]\ntext = \"green\"", `parse color "green"`},
		{"Bad log level", `log_level = "loud"`, `unknown log level "loud"`},
		{"Bad color mode", `color_mode = "16"`, `unknown color mode "16"`},
		{"Bad mouse mode", `mouse = "scroll"`, `unknown mouse mode "scroll"`},
		{"Bad quit key", `quit_keys = ["Hyper"]`, `unknown quit key "Hyper"`},
		{"Syntax", `title = `, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retui.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "from file"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Title)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`mouse = "scroll"`), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestDurationText(t *testing.T) {
	d := Duration{90 * time.Second}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	c := Color{R: 255}
	text, err = c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", string(text))
}

// Package config loads the demo settings from a TOML file over built-in defaults
package config

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/retui/terminal"
	"github.com/lixenwraith/retui/terminal/tui"
)

// Duration is a time.Duration written as "1.5s" in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "duration %q", text)
	}
	if v < 0 {
		return errors.Errorf("duration %q is negative", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Color is an RGB color written as "#rrggbb" or "#rgb"
type Color terminal.RGB

func (c *Color) UnmarshalText(text []byte) error {
	rgb, err := terminal.ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = Color(rgb)
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(terminal.RGB(c).Hex()), nil
}

// Theme holds the [theme] table
type Theme struct {
	Border     Color `toml:"border"`
	Text       Color `toml:"text"`
	Background Color `toml:"background"`
	Accent     Color `toml:"accent"`
	Status     Color `toml:"status"`
}

// TUI converts the table into a widget theme
func (t Theme) TUI() tui.Theme {
	return tui.Theme{
		Border:     terminal.RGB(t.Border),
		Text:       terminal.RGB(t.Text),
		Background: terminal.RGB(t.Background),
		Accent:     terminal.RGB(t.Accent),
		Status:     terminal.RGB(t.Status),
	}
}

// Config is the demo configuration
type Config struct {
	Title         string   `toml:"title"`
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	Demo          Duration `toml:"demo"`
	ReadTimeout   Duration `toml:"read_timeout"`
	EscapeTimeout Duration `toml:"escape_timeout"`
	HandleSIGINT  bool     `toml:"handle_sigint"`
	ColorMode     string   `toml:"color_mode"`
	Mouse         string   `toml:"mouse"`
	QuitKeys      []string `toml:"quit_keys"`
	Theme         Theme    `toml:"theme"`
}

// DefaultLogFile is where logs go unless configured otherwise
const DefaultLogFile = "logs/retui.log"

// Default returns the built-in configuration
func Default() *Config {
	t := tui.DefaultTheme
	return &Config{
		Title:         "retui",
		LogLevel:      "info",
		LogFile:       DefaultLogFile,
		ReadTimeout:   Duration{time.Second},
		EscapeTimeout: Duration{terminal.DefaultEscapeTimeout},
		HandleSIGINT:  true,
		ColorMode:     "auto",
		Mouse:         "motion",
		QuitKeys:      []string{"Escape"},
		Theme: Theme{
			Border:     Color(t.Border),
			Text:       Color(t.Text),
			Background: Color(t.Background),
			Accent:     Color(t.Accent),
			Status:     Color(t.Status),
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults and validates the result
// Keys that do not map to a field are rejected
func Decode(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated string settings
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.Color(); err != nil {
		return err
	}
	if _, err := c.MouseMode(); err != nil {
		return err
	}
	if _, err := c.QuitVirtualKeys(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps log_level to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Color resolves color_mode, "auto" detects from the environment
func (c *Config) Color() (terminal.ColorMode, error) {
	return terminal.ParseColorMode(c.ColorMode)
}

// MouseMode resolves the mouse reporting level
func (c *Config) MouseMode() (terminal.MouseMode, error) {
	mode, ok := terminal.ParseMouseMode(c.Mouse)
	if !ok {
		return terminal.MouseModeNone, errors.Errorf("unknown mouse mode %q", c.Mouse)
	}
	return mode, nil
}

// QuitVirtualKeys resolves quit_keys names such as "Escape" or "q"
func (c *Config) QuitVirtualKeys() ([]terminal.VirtualKey, error) {
	keys := make([]terminal.VirtualKey, 0, len(c.QuitKeys))
	for _, name := range c.QuitKeys {
		vk, ok := terminal.ParseVirtualKey(name)
		if !ok {
			return nil, errors.Errorf("unknown quit key %q", name)
		}
		keys = append(keys, vk)
	}
	return keys, nil
}

package terminal

import (
	"os"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette, SGR 38;5;n
	ColorModeTrueColor                  // 24-bit RGB, SGR 38;2;r;g;b
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// ParseHex parses "#rrggbb" or "#rgb"
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "parse color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseColorMode maps a config name to a mode, "auto" detects from the environment
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256", "8bit":
		return ColorMode256, nil
	case "truecolor", "24bit", "rgb":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, errors.Errorf("unknown color mode %q", name)
}

// String returns the config name of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// palette256 holds the RGB value of xterm indices 16-255 (cube and gray ramp)
// 0-15 are left out, their RGB depends on the terminal theme
var (
	palette256   [240]colorful.Color
	paletteOnce  sync.Once
	nearestMu    sync.Mutex
	nearestCache = make(map[RGB]uint8)
	cubeLevels   = [6]uint8{0, 95, 135, 175, 215, 255}
)

func buildPalette() {
	for i := 0; i < 216; i++ {
		r, g, b := cubeLevels[i/36], cubeLevels[i/6%6], cubeLevels[i%6]
		palette256[i] = RGB{r, g, b}.colorful()
	}
	for i := 0; i < 24; i++ {
		level := uint8(8 + 10*i)
		palette256[216+i] = RGB{level, level, level}.colorful()
	}
}

// RGBTo256 returns the palette index perceptually nearest to c (CIE Lab distance)
// Results are memoized; a frame uses few distinct colors
func RGBTo256(c RGB) uint8 {
	paletteOnce.Do(buildPalette)

	nearestMu.Lock()
	defer nearestMu.Unlock()
	if idx, ok := nearestCache[c]; ok {
		return idx
	}

	target := c.colorful()
	best, bestDist := 0, target.DistanceLab(palette256[0])
	for i := 1; i < len(palette256); i++ {
		if d := target.DistanceLab(palette256[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	idx := uint8(16 + best)
	nearestCache[c] = idx
	return idx
}

// trueColorEnv lists variables set by terminals known to support 24-bit color
var trueColorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
	"WT_SESSION", // Windows Terminal
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, name := range trueColorEnv {
		if os.Getenv(name) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

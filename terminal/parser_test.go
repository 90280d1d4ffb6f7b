package terminal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserCursorKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		vk    VirtualKey
	}{
		{"Up", "\x1b[A", VKUp},
		{"Down", "\x1b[B", VKDown},
		{"Right", "\x1b[C", VKRight},
		{"Left", "\x1b[D", VKLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := NewParser().Feed([]byte(tt.input))
			require.Len(t, events, 1)
			require.Equal(t, EventKey, events[0].Type)

			k := events[0].Key
			assert.Equal(t, tt.vk, k.VirtualKeyCode)
			assert.Equal(t, uint16(tt.vk), k.VirtualScanCode)
			assert.True(t, k.KeyDown)
			assert.Equal(t, 1, k.RepeatCount)
			assert.Equal(t, ControlNone, k.ControlKeyState)
		})
	}
}

func TestParserNavigationAndFunctionKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		vk    VirtualKey
		mods  ControlKeys
	}{
		{"Home", "\x1b[1~", VKHome, ControlNone},
		{"Insert", "\x1b[2~", VKInsert, ControlNone},
		{"Delete", "\x1b[3~", VKDelete, ControlNone},
		{"End", "\x1b[4~", VKEnd, ControlNone},
		{"PageUp", "\x1b[5~", VKPrior, ControlNone},
		{"PageDown", "\x1b[6~", VKNext, ControlNone},
		{"F1", "\x1b[11~", VKF1, ControlNone},
		{"F5", "\x1b[15~", VKF5, ControlNone},
		{"F6", "\x1b[17~", VKF6, ControlNone},
		{"F10", "\x1b[21~", VKF10, ControlNone},
		{"F11", "\x1b[23~", VKF11, ControlNone},
		{"F12", "\x1b[24~", VKF12, ControlNone},
		{"HomeFinal", "\x1b[H", VKHome, ControlNone},
		{"EndFinal", "\x1b[F", VKEnd, ControlNone},
		{"SS3 F1", "\x1bOP", VKF1, ControlNone},
		{"SS3 Up", "\x1bOA", VKUp, ControlNone},
		{"Ctrl Up", "\x1b[1;5A", VKUp, ControlLeftCtrl},
		{"Shift Right", "\x1b[1;2C", VKRight, ControlShift},
		{"Alt Delete", "\x1b[3;3~", VKDelete, ControlAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := NewParser().Feed([]byte(tt.input))
			require.Len(t, events, 1)
			require.Equal(t, EventKey, events[0].Type, "got %s", events[0])
			assert.Equal(t, tt.vk, events[0].Key.VirtualKeyCode)
			assert.Equal(t, tt.mods, events[0].Key.ControlKeyState)
		})
	}
}

func TestParserUnknownSequenceIsRaw(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Unknown final", "\x1b[Z"},
		{"Unknown tilde", "\x1b[99~"},
		{"Private marker", "\x1b[?1;2c"},
		{"SGR bad final", "\x1b[<0;1;2X"},
		{"SGR missing param", "\x1b[<0;5M"},
		{"SGR extra button", "\x1b[<128;5;5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := NewParser().Feed([]byte(tt.input))
			require.Len(t, events, 1)
			assert.Equal(t, EventRaw, events[0].Type)
			assert.Equal(t, []byte(tt.input), events[0].Raw)
		})
	}
}

// SGR reports decode to 0-based coordinates with the status row removed
func TestParserSGRMouseRoundTrip(t *testing.T) {
	buttons := []struct {
		pb     int
		button Button
	}{
		{0, ButtonLeft},
		{1, ButtonMiddle},
		{2, ButtonRight},
		{64, ButtonWheelUp},
		{65, ButtonWheelDown},
	}
	positions := [][2]int{{1, 2}, {10, 5}, {80, 24}, {300, 120}}

	for _, b := range buttons {
		for _, pos := range positions {
			for _, term := range []byte{'M', 'm'} {
				input := fmt.Sprintf("\x1b[<%d;%d;%d%c", b.pb, pos[0], pos[1], term)
				events := NewParser().Feed([]byte(input))
				require.Len(t, events, 1, input)
				require.Equal(t, EventMouse, events[0].Type, input)

				m := events[0].Mouse
				assert.Equal(t, b.button, m.Button, input)
				assert.Equal(t, term == 'M', m.Pressed, input)
				assert.Equal(t, pos[0]-1, m.X, input)
				assert.Equal(t, pos[1]-2, m.Y, input)
				assert.False(t, m.Hover, input)
			}
		}
	}
}

func TestParserSGRMouseRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		button  Button
		x, y    int
		pressed bool
		control ControlKeys
	}{
		{"Motion with left held is a click", "\x1b[<32;10;5M", 1, ButtonLeft, 9, 3, true, ControlNone},
		{"Motion without button discarded", "\x1b[<35;10;5M", 0, 0, 0, 0, false, ControlNone},
		{"Ctrl click", "\x1b[<16;3;4M", 1, ButtonLeft, 2, 2, true, ControlLeftCtrl},
		{"Ctrl right release", "\x1b[<18;3;4m", 1, ButtonRight, 2, 2, false, ControlLeftCtrl},
		{"Shift wheel", "\x1b[<68;7;9M", 1, ButtonWheelUp, 6, 7, true, ControlShift},
		{"Status row discarded", "\x1b[<0;5;1M", 0, 0, 0, 0, false, ControlNone},
		{"Row zero discarded", "\x1b[<0;5;0M", 0, 0, 0, 0, false, ControlNone},
		{"Horizontal wheel discarded", "\x1b[<66;5;5M", 0, 0, 0, 0, false, ControlNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := NewParser().Feed([]byte(tt.input))
			require.Len(t, events, tt.want)
			if tt.want == 0 {
				return
			}
			m := events[0].Mouse
			assert.Equal(t, tt.button, m.Button)
			assert.Equal(t, tt.x, m.X)
			assert.Equal(t, tt.y, m.Y)
			assert.Equal(t, tt.pressed, m.Pressed)
			assert.Equal(t, tt.control, m.Control)
		})
	}
}

func TestParserResumesAcrossReads(t *testing.T) {
	whole := NewParser().Feed([]byte("\x1b[<0;5;3M"))
	require.Len(t, whole, 1)

	splits := [][]string{
		{"\x1b", "[<0;5;3M"},
		{"\x1b[", "<0;5;3M"},
		{"\x1b[<0;", "5;3M"},
		{"\x1b[<0;5;3", "M"},
		{"\x1b", "[", "<", "0", ";", "5", ";", "3", "M"},
	}
	for _, parts := range splits {
		p := NewParser()
		var got []Event
		for _, part := range parts {
			got = append(got, p.Feed([]byte(part))...)
		}
		assert.Equal(t, whole, got, "%q", parts)
		assert.False(t, p.Pending())
	}
}

func TestParserPlainKeys(t *testing.T) {
	events := NewParser().Feed([]byte("a"))
	require.Len(t, events, 1)
	k := events[0].Key
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, VKA, k.VirtualKeyCode)
	assert.Equal(t, byte('a'), k.Char)
	assert.Equal(t, 'a', k.Rune)
	assert.Equal(t, uint16('a'), k.VirtualScanCode)
	assert.True(t, k.KeyDown)
	assert.Equal(t, 1, k.RepeatCount)

	events = NewParser().Feed([]byte(" "))
	require.Len(t, events, 1)
	assert.Equal(t, VKSpace, events[0].Key.VirtualKeyCode)
}

func TestParserPlainRawFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Several bytes in one read", "hello"},
		{"Carriage return", "\r"},
		{"Control byte", "\x01"},
		{"Delete", "\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := NewParser().Feed([]byte(tt.input))
			require.Len(t, events, 1)
			assert.Equal(t, EventRaw, events[0].Type)
			assert.Equal(t, []byte(tt.input), events[0].Raw)
		})
	}
}

func TestParserUnicodeRune(t *testing.T) {
	p := NewParser()
	// é split across two reads
	assert.Empty(t, p.Feed([]byte{0xc3}))
	events := p.Feed([]byte{0xa9})
	require.Len(t, events, 1)
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, 'é', events[0].Key.Rune)
	assert.Equal(t, byte(0), events[0].Key.Char)
}

func TestParserMixedBatchKeepsOrder(t *testing.T) {
	events := NewParser().Feed([]byte("ab\x1b[Ac\x1b[<0;2;3M"))
	require.Len(t, events, 4)
	assert.Equal(t, EventRaw, events[0].Type)
	assert.Equal(t, []byte("ab"), events[0].Raw)
	assert.Equal(t, VKUp, events[1].Key.VirtualKeyCode)
	assert.Equal(t, EventKey, events[2].Type)
	assert.Equal(t, 'c', events[2].Key.Rune)
	assert.Equal(t, EventMouse, events[3].Type)
}

func TestParserAbort(t *testing.T) {
	t.Run("Escape followed by plain byte", func(t *testing.T) {
		events := NewParser().Feed([]byte("\x1bx"))
		require.Len(t, events, 2)
		assert.Equal(t, EventRaw, events[0].Type)
		assert.Equal(t, []byte{0x1b}, events[0].Raw)
		assert.Equal(t, EventKey, events[1].Type)
		assert.Equal(t, 'x', events[1].Key.Rune)
	})

	t.Run("Control byte inside CSI", func(t *testing.T) {
		events := NewParser().Feed([]byte("\x1b[1\x01"))
		require.Len(t, events, 2)
		assert.Equal(t, []byte("\x1b[1"), events[0].Raw)
		assert.Equal(t, []byte{0x01}, events[1].Raw)
	})

	t.Run("ESC inside CSI restarts", func(t *testing.T) {
		events := NewParser().Feed([]byte("\x1b[1\x1b[B"))
		require.Len(t, events, 2)
		assert.Equal(t, EventRaw, events[0].Type)
		assert.Equal(t, VKDown, events[1].Key.VirtualKeyCode)
	})

	t.Run("Overlong sequence", func(t *testing.T) {
		p := NewParser()
		input := []byte("\x1b[")
		for len(input) <= maxSequenceLen {
			input = append(input, '1')
		}
		events := p.Feed(input)
		require.Len(t, events, 1)
		assert.Equal(t, EventRaw, events[0].Type)
		assert.False(t, p.Pending())
	})
}

func TestParserFocus(t *testing.T) {
	events := NewParser().Feed([]byte("\x1b[I\x1b[O"))
	require.Len(t, events, 2)
	assert.Equal(t, EventFocus, events[0].Type)
	assert.True(t, events[0].Focused)
	assert.Equal(t, EventFocus, events[1].Type)
	assert.False(t, events[1].Focused)
}

func TestParserFlushLoneEscape(t *testing.T) {
	p := NewParser()
	assert.Empty(t, p.Feed([]byte{0x1b}))
	assert.True(t, p.Pending())

	events := p.Flush()
	require.Len(t, events, 1)
	assert.Equal(t, VKEscape, events[0].Key.VirtualKeyCode)
	assert.False(t, p.Pending())

	// Partial CSI survives a flush
	assert.Empty(t, p.Feed([]byte("\x1b[<0;")))
	assert.Empty(t, p.Flush())
	events = p.Feed([]byte("4;4M"))
	require.Len(t, events, 1)
	assert.Equal(t, EventMouse, events[0].Type)
}

package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualKeyFromASCII(t *testing.T) {
	tests := []struct {
		in   byte
		want VirtualKey
	}{
		{'a', VKA},
		{'Z', VKZ},
		{'0', VK0},
		{'9', VK9},
		{' ', VKSpace},
		{'\r', VKReturn},
		{'\t', VKTab},
		{0x7f, VKBack},
		{'!', VK0 + 1},
		{';', VKOem1},
		{'~', VKOem3},
		{0x01, VKNone},
	}

	for _, tt := range tests {
		t.Run(string(rune(tt.in)), func(t *testing.T) {
			assert.Equal(t, tt.want, VirtualKeyFromASCII(tt.in))
		})
	}
}

func TestVirtualKeyString(t *testing.T) {
	assert.Equal(t, "Up", VKUp.String())
	assert.Equal(t, "F5", VKF5.String())
	assert.Equal(t, "F12", VKF12.String())
	assert.Equal(t, "Q", (VKA + 16).String())
	assert.Equal(t, "7", (VK0 + 7).String())
	assert.Equal(t, "VK(0xFF)", VirtualKey(0xff).String())
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewResizeEvent(80, 24), "resize 80x24"},
		{NewRawEvent([]byte("\x1b[Z")), `raw "\x1b[Z"`},
		{Event{Type: EventFocus, Focused: true}, "focus true"},
		{NewMouseEvent(MouseEvent{X: 1, Y: 2, Button: ButtonRight, Pressed: true, Control: ControlLeftCtrl}),
			"mouse RMB x=1 y=2 pressed=true hover=false mod=ctrl"},
		{NewKeyEvent(KeyEvent{KeyDown: true, RepeatCount: 1, VirtualKeyCode: VKA, Rune: 'a'}),
			"key A down=true rep=1 char='a' mod=none"},
	}

	for _, tt := range tests {
		t.Run(tt.ev.Type.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
		})
	}
}

func TestModifierAndModeNames(t *testing.T) {
	assert.Equal(t, "ctrl+alt+shift", (ControlLeftCtrl | ControlAlt | ControlShift).String())
	assert.True(t, (ControlLeftCtrl | ControlShift).Has(ControlShift))
	assert.False(t, ControlAlt.Has(ControlShift))

	mode, ok := ParseMouseMode("drag")
	assert.True(t, ok)
	assert.Equal(t, MouseModeClick|MouseModeDrag, mode)

	_, ok = ParseMouseMode("bogus")
	assert.False(t, ok)
}

func TestNewRawEventCopies(t *testing.T) {
	buf := []byte("abc")
	ev := NewRawEvent(buf)
	buf[0] = 'x'
	assert.Equal(t, []byte("abc"), ev.Raw)
}

func TestParseVirtualKey(t *testing.T) {
	tests := []struct {
		name string
		want VirtualKey
		ok   bool
	}{
		{"q", VKA + 16, true},
		{"Q", VKA + 16, true},
		{"7", VK0 + 7, true},
		{"escape", VKEscape, true},
		{"PageDown", VKNext, true},
		{"f10", VKF10, true},
		{"F1", VKF1, true},
		{"none", VKNone, false},
		{"hyper", VKNone, false},
		{"", VKNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVirtualKey(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseTranslatorEdges(t *testing.T) {
	tr := NewMouseTranslator()

	// Press then release of the left button
	down := tr.Translate(MouseRecord{X: 4, Y: 3, ButtonState: 0x1})
	require.Len(t, down, 1)
	assert.Equal(t, MouseEvent{X: 4, Y: 2, Button: ButtonLeft, Pressed: true}, down[0])

	// Same mask again changes nothing
	assert.Empty(t, tr.Translate(MouseRecord{X: 4, Y: 3, ButtonState: 0x1}))

	up := tr.Translate(MouseRecord{X: 5, Y: 3, ButtonState: 0})
	require.Len(t, up, 1)
	assert.Equal(t, MouseEvent{X: 5, Y: 2, Button: ButtonLeft, Pressed: false}, up[0])
}

func TestMouseTranslatorFirstRecordWithNoButtons(t *testing.T) {
	assert.Empty(t, NewMouseTranslator().Translate(MouseRecord{X: 1, Y: 1}))
}

func TestMouseTranslatorMultipleButtons(t *testing.T) {
	tr := NewMouseTranslator()
	events := tr.Translate(MouseRecord{X: 0, Y: 1, ButtonState: 0x7})
	require.Len(t, events, 3)

	order := []Button{ButtonLeft, ButtonMiddle, ButtonRight}
	for i, ev := range events {
		assert.Equal(t, order[i], ev.Button)
		assert.True(t, ev.Pressed)
		assert.Equal(t, 0, ev.Y)
	}

	// Release only the right button
	events = tr.Translate(MouseRecord{X: 0, Y: 1, ButtonState: 0x5})
	require.Len(t, events, 1)
	assert.Equal(t, ButtonRight, events[0].Button)
	assert.False(t, events[0].Pressed)
}

func TestMouseTranslatorHover(t *testing.T) {
	tr := NewMouseTranslator()

	t.Run("Move without buttons", func(t *testing.T) {
		assert.Empty(t, tr.Translate(MouseRecord{X: 2, Y: 2, EventFlags: mouseMoved}))
	})

	t.Run("Drag reports held buttons", func(t *testing.T) {
		tr.Translate(MouseRecord{X: 2, Y: 2, ButtonState: 0x1})
		events := tr.Translate(MouseRecord{X: 3, Y: 2, ButtonState: 0x1, EventFlags: mouseMoved})
		require.Len(t, events, 1)
		assert.Equal(t, ButtonLeft, events[0].Button)
		assert.True(t, events[0].Pressed)
		assert.True(t, events[0].Hover)
		assert.Equal(t, 3, events[0].X)
	})
}

func TestMouseTranslatorWheel(t *testing.T) {
	tests := []struct {
		name   string
		state  uint32
		button Button
	}{
		{"Positive delta", 0x00780000, ButtonWheelUp},
		{"Negative delta", 0xff880000, ButtonWheelDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewMouseTranslator()
			events := tr.Translate(MouseRecord{X: 7, Y: 4, ButtonState: tt.state, EventFlags: mouseWheeled})
			require.Len(t, events, 1)
			assert.Equal(t, tt.button, events[0].Button)
			assert.True(t, events[0].Pressed)
			assert.Equal(t, 7, events[0].X)
			assert.Equal(t, 3, events[0].Y)

			// Wheel records do not disturb edge tracking
			assert.Empty(t, tr.Translate(MouseRecord{X: 7, Y: 4}))
		})
	}
}

func TestMouseTranslatorDiscards(t *testing.T) {
	tests := []struct {
		name string
		rec  MouseRecord
	}{
		{"Row zero", MouseRecord{X: 3, Y: 0, ButtonState: 0x1}},
		{"Double click", MouseRecord{X: 3, Y: 3, ButtonState: 0x1, EventFlags: mouseDoubleClick}},
		{"Horizontal wheel", MouseRecord{X: 3, Y: 3, ButtonState: 0x00780000, EventFlags: mouseHWheeled}},
		{"Moved and wheeled", MouseRecord{X: 3, Y: 3, ButtonState: 0x1, EventFlags: mouseMoved | mouseWheeled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewMouseTranslator()
			assert.Empty(t, tr.Translate(tt.rec))
			// A discarded record leaves the previous mask untouched
			events := tr.Translate(MouseRecord{X: 3, Y: 3, ButtonState: 0x1})
			assert.Len(t, events, 1)
		})
	}
}

func TestMouseTranslatorModifiers(t *testing.T) {
	events := NewMouseTranslator().Translate(MouseRecord{
		X: 1, Y: 1, ButtonState: 0x2,
		ControlKeyState: rightCtrlPressed | rightAltPressed | shiftPressed,
	})
	require.Len(t, events, 1)
	assert.Equal(t, ControlLeftCtrl|ControlAlt|ControlShift, events[0].Control)
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		rec  KeyRecord
		want KeyEvent
	}{
		{
			name: "Letter",
			rec:  KeyRecord{KeyDown: true, RepeatCount: 1, VirtualKeyCode: uint16(VKA), VirtualScanCode: 0x1e, Char: 'a'},
			want: KeyEvent{KeyDown: true, RepeatCount: 1, VirtualKeyCode: VKA, VirtualScanCode: 0x1e, Char: 'a', Rune: 'a'},
		},
		{
			name: "Zero repeat clamps",
			rec:  KeyRecord{KeyDown: false, VirtualKeyCode: uint16(VKReturn), Char: '\r'},
			want: KeyEvent{RepeatCount: 1, VirtualKeyCode: VKReturn, Char: '\r', Rune: '\r'},
		},
		{
			name: "Non ASCII",
			rec:  KeyRecord{KeyDown: true, RepeatCount: 2, Char: 0x00e9},
			want: KeyEvent{KeyDown: true, RepeatCount: 2, Rune: 'é'},
		},
		{
			name: "Right ctrl folds to left",
			rec:  KeyRecord{KeyDown: true, RepeatCount: 1, VirtualKeyCode: uint16(VKUp), ControlKeyState: rightCtrlPressed},
			want: KeyEvent{KeyDown: true, RepeatCount: 1, VirtualKeyCode: VKUp, ControlKeyState: ControlLeftCtrl},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateKey(tt.rec))
		})
	}
}

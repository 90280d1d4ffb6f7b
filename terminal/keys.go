package terminal

import (
	"fmt"
	"strings"
)

// VirtualKey is a Windows virtual-key code, used on every platform
type VirtualKey uint16

const (
	VKNone   VirtualKey = 0x00
	VKBack   VirtualKey = 0x08
	VKTab    VirtualKey = 0x09
	VKReturn VirtualKey = 0x0D
	VKEscape VirtualKey = 0x1B
	VKSpace  VirtualKey = 0x20
	VKPrior  VirtualKey = 0x21 // PageUp
	VKNext   VirtualKey = 0x22 // PageDown
	VKEnd    VirtualKey = 0x23
	VKHome   VirtualKey = 0x24
	VKLeft   VirtualKey = 0x25
	VKUp     VirtualKey = 0x26
	VKRight  VirtualKey = 0x27
	VKDown   VirtualKey = 0x28
	VKInsert VirtualKey = 0x2D
	VKDelete VirtualKey = 0x2E

	VK0 VirtualKey = 0x30 // VK0..VK9 are contiguous
	VK9 VirtualKey = 0x39
	VKA VirtualKey = 0x41 // VKA..VKZ are contiguous
	VKZ VirtualKey = 0x5A

	VKF1  VirtualKey = 0x70
	VKF2  VirtualKey = 0x71
	VKF3  VirtualKey = 0x72
	VKF4  VirtualKey = 0x73
	VKF5  VirtualKey = 0x74
	VKF6  VirtualKey = 0x75
	VKF7  VirtualKey = 0x76
	VKF8  VirtualKey = 0x77
	VKF9  VirtualKey = 0x78
	VKF10 VirtualKey = 0x79
	VKF11 VirtualKey = 0x7A
	VKF12 VirtualKey = 0x7B

	// US layout OEM keys
	VKOem1      VirtualKey = 0xBA // ;:
	VKOemPlus   VirtualKey = 0xBB // =+
	VKOemComma  VirtualKey = 0xBC // ,<
	VKOemMinus  VirtualKey = 0xBD // -_
	VKOemPeriod VirtualKey = 0xBE // .>
	VKOem2      VirtualKey = 0xBF // /?
	VKOem3      VirtualKey = 0xC0 // `~
	VKOem4      VirtualKey = 0xDB // [{
	VKOem5      VirtualKey = 0xDC // \|
	VKOem6      VirtualKey = 0xDD // ]}
	VKOem7      VirtualKey = 0xDE // '"
)

// shiftedDigits maps shifted US number row symbols to their digit key
var shiftedDigits = map[byte]VirtualKey{
	')': VK0, '!': VK0 + 1, '@': VK0 + 2, '#': VK0 + 3, '$': VK0 + 4,
	'%': VK0 + 5, '^': VK0 + 6, '&': VK0 + 7, '*': VK0 + 8, '(': VK0 + 9,
}

// oemKeys maps US punctuation to OEM virtual keys
var oemKeys = map[byte]VirtualKey{
	';': VKOem1, ':': VKOem1,
	'=': VKOemPlus, '+': VKOemPlus,
	',': VKOemComma, '<': VKOemComma,
	'-': VKOemMinus, '_': VKOemMinus,
	'.': VKOemPeriod, '>': VKOemPeriod,
	'/': VKOem2, '?': VKOem2,
	'`': VKOem3, '~': VKOem3,
	'[': VKOem4, '{': VKOem4,
	'\\': VKOem5, '|': VKOem5,
	']': VKOem6, '}': VKOem6,
	'\'': VKOem7, '"': VKOem7,
}

// VirtualKeyFromASCII derives the virtual key for an ASCII byte, letters map case-insensitively
func VirtualKeyFromASCII(b byte) VirtualKey {
	switch {
	case b >= 'a' && b <= 'z':
		return VKA + VirtualKey(b-'a')
	case b >= 'A' && b <= 'Z':
		return VKA + VirtualKey(b-'A')
	case b >= '0' && b <= '9':
		return VK0 + VirtualKey(b-'0')
	}
	switch b {
	case ' ':
		return VKSpace
	case '\r', '\n':
		return VKReturn
	case '\t':
		return VKTab
	case 0x08, 0x7F:
		return VKBack
	case 0x1B:
		return VKEscape
	}
	if vk, ok := shiftedDigits[b]; ok {
		return vk
	}
	if vk, ok := oemKeys[b]; ok {
		return vk
	}
	return VKNone
}

// tildeKeys maps the numeric parameter of "ESC [ n ~" to a virtual key
// F-key numbering skips 16 and 22 (xterm/vt220)
var tildeKeys = map[int]VirtualKey{
	1: VKHome, 2: VKInsert, 3: VKDelete, 4: VKEnd, 5: VKPrior, 6: VKNext,
	7: VKHome, 8: VKEnd, // rxvt
	11: VKF1, 12: VKF2, 13: VKF3, 14: VKF4, 15: VKF5,
	17: VKF6, 18: VKF7, 19: VKF8, 20: VKF9, 21: VKF10,
	23: VKF11, 24: VKF12,
}

// finalKeys maps single-letter CSI and SS3 finals to a virtual key
var finalKeys = map[byte]VirtualKey{
	'A': VKUp, 'B': VKDown, 'C': VKRight, 'D': VKLeft,
	'H': VKHome, 'F': VKEnd,
}

// ss3Keys maps the SS3 final byte "ESC O x" to a virtual key
var ss3Keys = map[byte]VirtualKey{
	'A': VKUp, 'B': VKDown, 'C': VKRight, 'D': VKLeft,
	'H': VKHome, 'F': VKEnd,
	'P': VKF1, 'Q': VKF2, 'R': VKF3, 'S': VKF4,
}

var vkNames = map[VirtualKey]string{
	VKNone: "None", VKBack: "Back", VKTab: "Tab", VKReturn: "Return", VKEscape: "Escape",
	VKSpace: "Space", VKPrior: "PageUp", VKNext: "PageDown", VKEnd: "End", VKHome: "Home",
	VKLeft: "Left", VKUp: "Up", VKRight: "Right", VKDown: "Down",
	VKInsert: "Insert", VKDelete: "Delete",
	VKOem1: "Oem1", VKOemPlus: "OemPlus", VKOemComma: "OemComma", VKOemMinus: "OemMinus",
	VKOemPeriod: "OemPeriod", VKOem2: "Oem2", VKOem3: "Oem3", VKOem4: "Oem4",
	VKOem5: "Oem5", VKOem6: "Oem6", VKOem7: "Oem7",
}

// String returns the key name, e.g. "Up", "F5", "A", "7"
func (k VirtualKey) String() string {
	if name, ok := vkNames[k]; ok {
		return name
	}
	switch {
	case k >= VKA && k <= VKZ:
		return string(rune('A' + k - VKA))
	case k >= VK0 && k <= VK9:
		return string(rune('0' + k - VK0))
	case k >= VKF1 && k <= VKF12:
		return fmt.Sprintf("F%d", k-VKF1+1)
	}
	return fmt.Sprintf("VK(0x%02X)", uint16(k))
}

// ParseVirtualKey maps a key name as printed by String back to its key, ignoring case
func ParseVirtualKey(name string) (VirtualKey, bool) {
	if len(name) == 1 {
		b := name[0]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		switch {
		case b >= 'A' && b <= 'Z':
			return VKA + VirtualKey(b-'A'), true
		case b >= '0' && b <= '9':
			return VK0 + VirtualKey(b-'0'), true
		}
	}
	for vk, n := range vkNames {
		if vk != VKNone && strings.EqualFold(n, name) {
			return vk, true
		}
	}
	for vk := VKF1; vk <= VKF12; vk++ {
		if strings.EqualFold(vk.String(), name) {
			return vk, true
		}
	}
	return VKNone, false
}

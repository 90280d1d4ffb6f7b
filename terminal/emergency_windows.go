//go:build windows

package terminal

import "golang.org/x/sys/windows"

// resetTerminalMode re-enables line input, echo and quick-edit on the console
func resetTerminalMode() {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return
	}
	var mode uint32
	if windows.GetConsoleMode(in, &mode) != nil {
		return
	}
	mode |= windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT | windows.ENABLE_PROCESSED_INPUT |
		windows.ENABLE_QUICK_EDIT_MODE | windows.ENABLE_EXTENDED_FLAGS
	mode &^= windows.ENABLE_MOUSE_INPUT | windows.ENABLE_WINDOW_INPUT
	windows.SetConsoleMode(in, mode)
}

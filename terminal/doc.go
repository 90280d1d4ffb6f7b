// @focus: #sys { term }
// Package terminal is the console input and output core.
//
// Features:
//   - Escape sequence parser: CSI cursor/navigation/function keys, SGR mouse, focus reports
//   - Windows console record translation with press/release synthesis from button masks
//   - Non-blocking raw input (termios VMIN=0/VTIME=0 + O_NONBLOCK, or ReadConsoleInputW)
//   - SIGWINCH and buffer-size resize detection
//   - Double-buffered cell output with 256-color and 24-bit SGR
//   - Console restoration on exit and panic
//
// Input bytes are decoded by a state machine that keeps its state across reads,
// so a sequence cut by a read boundary is completed by the next read.
package terminal

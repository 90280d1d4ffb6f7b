package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut at the edge
const Ellipsis = "…"

// Truncate cuts s to at most width cells, ending with … when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// TruncateLine marks the last visible line of clipped text
// The … is appended when it fits, otherwise it replaces the tail
func TruncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(strings.TrimRight(s, " ")+Ellipsis, width, Ellipsis)
}

// WrapText wraps text at word boundaries to fit width cells
// Newlines start a new line, words wider than width are broken by cell
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

func wrapParagraph(s string, width int) []string {
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	var lines []string
	var line strings.Builder
	lineW := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineW = 0
	}

	for _, word := range strings.Fields(s) {
		wordW := runewidth.StringWidth(word)
		for wordW > width {
			if lineW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// Single rune wider than the line
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			wordW = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}

		if lineW > 0 && lineW+1+wordW > width {
			flush()
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += wordW
	}
	if lineW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func runeIsWide(r rune) bool {
	return r > 0 && runewidth.RuneWidth(r) == 2
}

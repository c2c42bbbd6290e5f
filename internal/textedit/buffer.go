// Package textedit implements the single-line editing engine behind input
// widgets. Cursor positions are rune indexes; byte offsets are computed only
// when the text is mutated, and display columns only when it is drawn.
package textedit

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// widths is pinned so East Asian ambiguous runes measure 1 regardless of the
// user's locale. Wide runes (CJK, Hangul) still measure 2, combining marks 0.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Buffer holds an editable string and a cursor. The zero value is an empty
// buffer with the cursor at 0. Buffers are plain values: copying one yields
// an independent buffer.
type Buffer struct {
	text   string
	cursor int // rune index, 0 <= cursor <= CharCount(text)
}

// Text returns the current value.
func (b *Buffer) Text() string { return b.text }

// Cursor returns the rune index the cursor sits before.
func (b *Buffer) Cursor() int { return b.cursor }

// SetText replaces the value and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.cursor = b.maxCursor()
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.text = ""
	b.cursor = 0
}

// IsEmpty reports whether the buffer holds no characters.
func (b *Buffer) IsEmpty() bool { return b.text == "" }

// EnterChar inserts r at the cursor and advances past it.
func (b *Buffer) EnterChar(r rune) {
	at := ByteOffset(b.text, b.cursor)
	b.text = b.text[:at] + string(r) + b.text[at:]
	b.MoveCursorRight()
}

// DeleteChar removes the character left of the cursor. No-op at the start.
func (b *Buffer) DeleteChar() {
	if b.cursor == 0 {
		return
	}
	start := ByteOffset(b.text, b.cursor-1)
	end := ByteOffset(b.text, b.cursor)
	b.text = b.text[:start] + b.text[end:]
	b.MoveCursorLeft()
}

// MoveCursorLeft moves one character left, stopping at 0.
func (b *Buffer) MoveCursorLeft() {
	b.cursor = b.clampCursor(b.cursor - 1)
}

// MoveCursorRight moves one character right, stopping at the end.
func (b *Buffer) MoveCursorRight() {
	b.cursor = b.clampCursor(b.cursor + 1)
}

// VisualCursorColumn returns the terminal column of the cursor relative to
// the start of the text: the summed display width of every rune before it.
func (b *Buffer) VisualCursorColumn() int {
	col := 0
	i := 0
	for _, r := range b.text {
		if i == b.cursor {
			break
		}
		col += widths.RuneWidth(r)
		i++
	}
	return col
}

func (b *Buffer) maxCursor() int { return CharCount(b.text) }

func (b *Buffer) clampCursor(pos int) int {
	return min(max(pos, 0), b.maxCursor())
}

// CharCount returns the number of runes in s. Invalid UTF-8 bytes count as
// one rune each, matching how range iterates a string.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteOffset translates rune index i into a byte offset in s. Indexes past
// the last rune map to len(s).
func ByteOffset(s string, i int) int {
	if i <= 0 {
		return 0
	}
	n := 0
	for off := range s {
		if n == i {
			return off
		}
		n++
	}
	return len(s)
}

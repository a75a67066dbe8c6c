package buffer

import "strings"

// Buffer is an ordered list of lines. An empty buffer (no lines) is distinct
// from a buffer holding a single empty line.
type Buffer struct {
	lines      []*Line
	LineEnding string // "LF" or "CRLF", as detected by Load
}

func New() *Buffer {
	return &Buffer{LineEnding: "LF"}
}

// FromText returns a buffer holding text, see Load.
func FromText(text string) *Buffer {
	b := New()
	b.Load(text)
	return b
}

// Load replaces the contents of b with one line per line of text. Lines are
// separated by "\n" with an optional preceding "\r"; a trailing newline does
// not start an extra line.
func (b *Buffer) Load(text string) {
	b.LineEnding = "LF"
	if strings.Contains(text, "\r\n") {
		b.LineEnding = "CRLF"
	}
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([]*Line, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, NewLine(strings.TrimSuffix(part, "\r")))
	}
	b.lines = lines
}

func (b *Buffer) Height() int {
	return len(b.lines)
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the line at index, or nil when there is none.
func (b *Buffer) Line(index int) *Line {
	if index < 0 || index >= len(b.lines) {
		return nil
	}
	return b.lines[index]
}

// GraphemeCount returns the length of the line at index, or 0 when there is none.
func (b *Buffer) GraphemeCount(index int) int {
	if line := b.Line(index); line != nil {
		return line.GraphemeCount()
	}
	return 0
}

// InsertChar inserts ch at the given location. A location one line past the
// end appends a new line holding ch; anything further away is ignored.
func (b *Buffer) InsertChar(ch rune, at Location) {
	switch {
	case at.LineIndex < 0 || at.LineIndex > len(b.lines):
		return
	case at.LineIndex == len(b.lines):
		b.lines = append(b.lines, NewLine(string(ch)))
	default:
		b.lines[at.LineIndex].InsertCharacter(ch, at.GraphemeIndex)
	}
}

// Delete removes the grapheme at the given location. At the end of a line the
// following line is merged into it; at the end of the buffer nothing happens.
func (b *Buffer) Delete(at Location) {
	line := b.Line(at.LineIndex)
	if line == nil {
		return
	}
	switch {
	case at.GraphemeIndex >= line.GraphemeCount() && at.LineIndex+1 < len(b.lines):
		next := b.lines[at.LineIndex+1]
		b.lines = append(b.lines[:at.LineIndex+1], b.lines[at.LineIndex+2:]...)
		line.Append(next)
	case at.GraphemeIndex < line.GraphemeCount():
		line.Delete(at.GraphemeIndex)
	}
}

// InsertLine breaks the line at the given location in two, moving everything
// from the grapheme index onward to a new line below it. A location one line
// past the end appends an empty line.
func (b *Buffer) InsertLine(at Location) {
	switch {
	case at.LineIndex < 0 || at.LineIndex > len(b.lines):
		return
	case at.LineIndex == len(b.lines):
		b.lines = append(b.lines, &Line{})
	default:
		rest := b.lines[at.LineIndex].SplitAt(at.GraphemeIndex)
		b.lines = append(b.lines, nil)
		copy(b.lines[at.LineIndex+2:], b.lines[at.LineIndex+1:])
		b.lines[at.LineIndex+1] = rest
	}
}

// Text returns the buffer contents joined with "\n".
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, line := range b.lines {
		parts[i] = line.String()
	}
	return strings.Join(parts, "\n")
}

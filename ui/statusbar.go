package ui

import (
	"fmt"

	"termedit/buffer"
	"termedit/config"

	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Filename string
	Line     int
	Col      int
	Lines    int
	LineEnd  string // "LF" or "CRLF"
	Modified bool
	Message  string // temporary status message
	IsError  bool
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{LineEnd: "LF"}
}

// Render draws the bar on row y. A message replaces the file name; the
// cursor position stays right-aligned when there is room for it.
func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)

	// Clear the line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	left := s.Filename
	if left == "" {
		left = "[No Name]"
	}
	if s.Modified {
		left += " (modified)"
	}
	leftStyle := style
	if s.Message != "" {
		left = s.Message
		if s.IsError {
			leftStyle = style.Foreground(theme.StatusError)
		}
	}
	col := drawString(screen, x, y, x+width, " "+left, leftStyle)

	right := fmt.Sprintf("Ln %d, Col %d │ %d lines │ %s ", s.Line+1, s.Col+1, s.Lines, s.LineEnd)
	rightStart := x + width - buffer.StringWidth(right)
	if rightStart > col+2 {
		drawString(screen, rightStart, y, x+width, right, style)
	}
}

// drawString writes text from column x, stopping before limit, and returns
// the column after the last cell written.
func drawString(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := buffer.StringWidth(string(ch))
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += max(w, 1)
	}
	return x
}

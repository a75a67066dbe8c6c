package editor

import (
	"fmt"

	"termedit/buffer"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Terminal is the output side the view renders through.
type Terminal interface {
	PrintAt(row int, text string) error
	ClearRow(row int) error
	SetColor(color tcell.Color)
	ResetColor()
}

// Screen implements Terminal on top of a tcell screen.
type Screen struct {
	screen tcell.Screen
	base   tcell.Style
	style  tcell.Style
}

func NewScreen(screen tcell.Screen, base tcell.Style) *Screen {
	return &Screen{screen: screen, base: base, style: base}
}

// Size returns the full size of the underlying screen.
func (s *Screen) Size() Size {
	w, h := s.screen.Size()
	return Size{Width: w, Height: h}
}

func (s *Screen) checkRow(row int) error {
	if _, h := s.screen.Size(); row < 0 || row >= h {
		return fmt.Errorf("row %d outside screen of height %d", row, h)
	}
	return nil
}

// PrintAt draws text from the first column of row. Each grapheme cluster
// takes its display width in cells, and at least one.
func (s *Screen) PrintAt(row int, text string) error {
	if err := s.checkRow(row); err != nil {
		return err
	}
	width, _ := s.screen.Size()
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() && col < width {
		runes := g.Runes()
		s.screen.SetContent(col, row, runes[0], runes[1:], s.style)
		col += max(buffer.StringWidth(g.Str()), 1)
	}
	return nil
}

func (s *Screen) ClearRow(row int) error {
	if err := s.checkRow(row); err != nil {
		return err
	}
	width, _ := s.screen.Size()
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, row, ' ', nil, s.base)
	}
	return nil
}

func (s *Screen) SetColor(color tcell.Color) {
	s.style = s.base.Foreground(color)
}

func (s *Screen) ResetColor() {
	s.style = s.base
}


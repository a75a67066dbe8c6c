package editor

import (
	"errors"
	"strings"

	"termedit/buffer"
	"termedit/config"
)

const (
	Version        = "0.1.0"
	welcomeMessage = "termedit -- version " + Version
	emptyRowMarker = "~"
)

type ViewOptions struct {
	TabSize    int
	ExpandTabs bool
	Theme      *config.ColorScheme
}

// View owns a buffer and the cursor and scroll state used to show it.
// Commands are applied one at a time; Render draws the visible window when
// something changed since the last pass.
type View struct {
	buffer       *buffer.Buffer
	needsRedraw  bool
	modified     bool
	size         Size
	location     buffer.Location
	scrollOffset Position
	tabSize      int
	expandTabs   bool
	theme        *config.ColorScheme
}

func NewView(size Size, opts ViewOptions) *View {
	v := &View{
		buffer:      buffer.New(),
		needsRedraw: true,
		size:        size,
		theme:       opts.Theme,
	}
	if v.theme == nil {
		v.theme = config.Themes["monokai"]
	}
	v.SetIndent(opts.TabSize, opts.ExpandTabs)
	return v
}

// SetIndent sets what the tab key inserts: tabSize spaces, or a literal tab
// when expandTabs is false.
func (v *View) SetIndent(tabSize int, expandTabs bool) {
	if tabSize <= 0 {
		tabSize = 4
	}
	v.tabSize = tabSize
	v.expandTabs = expandTabs
}

func (v *View) Buffer() *buffer.Buffer    { return v.buffer }
func (v *View) Location() buffer.Location { return v.location }
func (v *View) ScrollOffset() Position    { return v.scrollOffset }
func (v *View) Size() Size                { return v.size }
func (v *View) NeedsRedraw() bool         { return v.needsRedraw }

// Modified reports whether the buffer was edited since it was last loaded.
func (v *View) Modified() bool { return v.modified }

// CurrentLine returns the line under the cursor, or nil for an empty buffer.
func (v *View) CurrentLine() *buffer.Line { return v.buffer.Line(v.location.LineIndex) }

// Load replaces the buffer with the contents of path. On failure the current
// buffer is kept and the error is returned.
func (v *View) Load(path string) error {
	text, err := buffer.ReadText(path)
	if err != nil {
		return err
	}
	v.LoadText(text)
	return nil
}

// LoadText replaces the buffer with text. The cursor is kept where possible.
func (v *View) LoadText(text string) {
	v.buffer = buffer.FromText(text)
	v.modified = false
	v.needsRedraw = true
	v.snapToValidLine()
	v.snapToValidGrapheme()
	v.scrollLocationIntoView()
}

func (v *View) Resize(size Size) {
	v.size = size
	v.needsRedraw = true
	v.scrollLocationIntoView()
}

// Restore places the view at a previously saved location and scroll offset.
func (v *View) Restore(at buffer.Location, scroll Position) {
	v.scrollOffset = Position{Row: max(scroll.Row, 0), Col: max(scroll.Col, 0)}
	v.location = at
	v.snapToValidLine()
	v.snapToValidGrapheme()
	v.needsRedraw = true
	v.scrollLocationIntoView()
}

func (v *View) HandleCommand(cmd Command) {
	if cmd.IsEdit() {
		v.needsRedraw = true
	}
	switch cmd.Kind {
	case CmdResize:
		v.Resize(cmd.Size)
	case CmdMove:
		v.moveLocation(cmd.Direction)
	case CmdInsert:
		if cmd.Char == '\t' && v.expandTabs {
			for range v.tabSize {
				v.insertChar(' ')
			}
		} else {
			v.insertChar(cmd.Char)
		}
	case CmdInsertNewline:
		v.insertNewline()
	case CmdPaste:
		v.insertText(cmd.Text)
	case CmdDelete:
		v.delete()
	case CmdBackspace:
		v.backspace()
	case CmdCopyLine, CmdQuit:
		// handled by the editor
	}
}

// CursorPosition returns the cursor's cell relative to the top-left corner
// of the view.
func (v *View) CursorPosition() Position {
	pos := v.locationToPosition()
	return Position{
		Row: max(pos.Row-v.scrollOffset.Row, 0),
		Col: max(pos.Col-v.scrollOffset.Col, 0),
	}
}

func (v *View) locationToPosition() Position {
	col := 0
	if line := v.buffer.Line(v.location.LineIndex); line != nil {
		col = line.WidthUntil(v.location.GraphemeIndex)
	}
	return Position{Row: v.location.LineIndex, Col: col}
}

// Scrolling

func (v *View) scrollLocationIntoView() {
	pos := v.locationToPosition()
	v.scrollVertically(pos.Row)
	v.scrollHorizontally(pos.Col)
}

func (v *View) scrollVertically(to int) {
	if v.size.Height <= 0 {
		return
	}
	switch {
	case to < v.scrollOffset.Row:
		v.scrollOffset.Row = to
	case to >= v.scrollOffset.Row+v.size.Height:
		v.scrollOffset.Row = to - v.size.Height + 1
	default:
		return
	}
	v.needsRedraw = true
}

func (v *View) scrollHorizontally(to int) {
	if v.size.Width <= 0 {
		return
	}
	switch {
	case to < v.scrollOffset.Col:
		v.scrollOffset.Col = to
	case to >= v.scrollOffset.Col+v.size.Width:
		v.scrollOffset.Col = to - v.size.Width + 1
	default:
		return
	}
	v.needsRedraw = true
}

// Movement

func (v *View) moveLocation(dir Direction) {
	step := max(v.size.Height-1, 0)
	switch dir {
	case Up:
		v.moveUp(1)
	case Down:
		v.moveDown(1)
	case Left:
		v.moveLeft()
	case Right:
		v.moveRight()
	case PageUp:
		v.moveUp(step)
	case PageDown:
		v.moveDown(step)
	case Home:
		v.moveToStartOfLine()
	case End:
		v.moveToEndOfLine()
	}
	v.scrollLocationIntoView()
}

func (v *View) moveUp(step int) {
	v.location.LineIndex = max(v.location.LineIndex-step, 0)
	v.snapToValidGrapheme()
}

func (v *View) moveDown(step int) {
	v.location.LineIndex += step
	v.snapToValidLine()
	v.snapToValidGrapheme()
}

func (v *View) moveLeft() {
	switch {
	case v.location.GraphemeIndex > 0:
		v.location.GraphemeIndex--
	case v.location.LineIndex > 0:
		v.moveUp(1)
		v.moveToEndOfLine()
	}
}

func (v *View) moveRight() {
	switch {
	case v.location.GraphemeIndex < v.buffer.GraphemeCount(v.location.LineIndex):
		v.location.GraphemeIndex++
	case v.location.LineIndex < v.buffer.Height()-1:
		v.moveToStartOfLine()
		v.moveDown(1)
	}
}

func (v *View) moveToStartOfLine() {
	v.location.GraphemeIndex = 0
}

func (v *View) moveToEndOfLine() {
	v.location.GraphemeIndex = v.buffer.GraphemeCount(v.location.LineIndex)
}

func (v *View) snapToValidGrapheme() {
	v.location.GraphemeIndex = min(
		max(v.location.GraphemeIndex, 0),
		v.buffer.GraphemeCount(v.location.LineIndex),
	)
}

func (v *View) snapToValidLine() {
	v.location.LineIndex = min(max(v.location.LineIndex, 0), max(v.buffer.Height()-1, 0))
}

// Editing

func (v *View) insertChar(ch rune) {
	before := v.buffer.GraphemeCount(v.location.LineIndex)
	v.buffer.InsertChar(ch, v.location)
	after := v.buffer.GraphemeCount(v.location.LineIndex)
	if after > before {
		v.moveRight()
	}
	v.modified = true
	v.needsRedraw = true
	v.scrollLocationIntoView()
}

func (v *View) insertNewline() {
	if v.buffer.IsEmpty() {
		v.buffer.InsertLine(v.location)
	}
	v.buffer.InsertLine(v.location)
	v.location = buffer.Location{LineIndex: v.location.LineIndex + 1}
	v.modified = true
	v.needsRedraw = true
	v.scrollLocationIntoView()
}

func (v *View) insertText(text string) {
	for _, ch := range text {
		switch ch {
		case '\n':
			v.insertNewline()
		case '\r':
		default:
			v.insertChar(ch)
		}
	}
}

func (v *View) backspace() {
	if v.location.IsOrigin() {
		return
	}
	v.moveLeft()
	v.delete()
}

func (v *View) delete() {
	if v.atEndOfBuffer() {
		v.scrollLocationIntoView()
		return
	}
	v.buffer.Delete(v.location)
	v.modified = true
	v.needsRedraw = true
	v.scrollLocationIntoView()
}

func (v *View) atEndOfBuffer() bool {
	if v.buffer.IsEmpty() {
		return true
	}
	last := v.buffer.Height() - 1
	return v.location.LineIndex >= last &&
		v.location.GraphemeIndex >= v.buffer.GraphemeCount(last)
}

// Rendering

// Render draws the visible part of the buffer, one terminal row per view row.
// It does nothing unless the view changed since the last successful pass.
// Every row is attempted; output errors are joined and returned, and the view
// stays marked for redraw.
func (v *View) Render(term Terminal) error {
	if !v.needsRedraw {
		return nil
	}
	width, height := v.size.Width, v.size.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	var errs []error
	verticalCenter := height / 3
	for row := 0; row < height; row++ {
		line := v.buffer.Line(row + v.scrollOffset.Row)
		switch {
		case line != nil:
			left := v.scrollOffset.Col
			errs = append(errs, v.renderLine(term, row, line.VisibleGraphemes(left, left+width)))
		case row == verticalCenter && v.buffer.IsEmpty():
			term.SetColor(v.theme.Welcome)
			errs = append(errs, v.renderLine(term, row, buildWelcomeMessage(width)))
		default:
			term.SetColor(v.theme.EmptyRow)
			errs = append(errs, v.renderLine(term, row, emptyRowMarker))
		}
		term.ResetColor()
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	v.needsRedraw = false
	return nil
}

func (v *View) renderLine(term Terminal, row int, text string) error {
	if err := term.ClearRow(row); err != nil {
		return err
	}
	return term.PrintAt(row, text)
}

func buildWelcomeMessage(width int) string {
	if width <= 0 {
		return ""
	}
	if width <= len(welcomeMessage) {
		return emptyRowMarker
	}
	padding := (width - len(welcomeMessage) - 1) / 2
	msg := emptyRowMarker + strings.Repeat(" ", padding) + welcomeMessage
	if len(msg) > width {
		msg = msg[:width]
	}
	return msg
}

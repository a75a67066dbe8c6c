package editor

// Direction is a cursor movement.
type Direction int

const (
	PageUp Direction = iota
	PageDown
	Home
	End
	Up
	Left
	Right
	Down
)

type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdResize
	CmdInsert
	CmdInsertNewline
	CmdDelete
	CmdBackspace
	CmdPaste
	CmdCopyLine
	CmdQuit
)

// Command is a decoded editor command. Only the fields that belong to Kind
// are meaningful: Direction for CmdMove, Size for CmdResize, Char for
// CmdInsert and Text for CmdPaste.
type Command struct {
	Kind      CommandKind
	Direction Direction
	Size      Size
	Char      rune
	Text      string
}

// IsEdit reports whether the command changes the document.
func (c Command) IsEdit() bool {
	switch c.Kind {
	case CmdInsert, CmdInsertNewline, CmdDelete, CmdBackspace, CmdPaste:
		return true
	}
	return false
}

// Size is a width and height in screen cells.
type Size struct {
	Width, Height int
}

// Position is a screen cell coordinate.
type Position struct {
	Row, Col int
}

package editor

import "github.com/gdamore/tcell/v2"

// CommandFromEvent decodes a terminal event. The second result is false for
// events that carry no editor command.
func CommandFromEvent(ev tcell.Event) (Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Command{Kind: CmdResize, Size: Size{Width: w, Height: h}}, true
	case *tcell.EventKey:
		return commandFromKey(ev)
	}
	return Command{}, false
}

var moveKeys = map[tcell.Key]Direction{
	tcell.KeyUp:    Up,
	tcell.KeyDown:  Down,
	tcell.KeyLeft:  Left,
	tcell.KeyRight: Right,
	tcell.KeyPgUp:  PageUp,
	tcell.KeyPgDn:  PageDown,
	tcell.KeyHome:  Home,
	tcell.KeyEnd:   End,
}

func commandFromKey(ev *tcell.EventKey) (Command, bool) {
	if dir, ok := moveKeys[ev.Key()]; ok {
		return Command{Kind: CmdMove, Direction: dir}, true
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return Command{Kind: CmdQuit}, true
	case tcell.KeyCtrlV:
		return Command{Kind: CmdPaste}, true
	case tcell.KeyCtrlC:
		return Command{Kind: CmdCopyLine}, true
	case tcell.KeyEnter:
		return Command{Kind: CmdInsertNewline}, true
	case tcell.KeyTab:
		return Command{Kind: CmdInsert, Char: '\t'}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Command{Kind: CmdBackspace}, true
	case tcell.KeyDelete:
		return Command{Kind: CmdDelete}, true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return Command{}, false
		}
		return Command{Kind: CmdInsert, Char: ev.Rune()}, true
	}
	return Command{}, false
}

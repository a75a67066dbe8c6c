package editor

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"termedit/clipboardx"
	"termedit/config"
	"termedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const statusMessageTimeout = 5 * time.Second

// Editor runs the terminal session: it owns the screen, feeds decoded
// input to the view and draws the view plus a status bar.
type Editor struct {
	cfg    *config.Config
	log    *slog.Logger
	screen tcell.Screen
	term   *Screen

	view      *View
	statusBar *ui.StatusBar

	path string // absolute path of the open file, "" for none
	quit bool

	renderFailing bool

	// File watching
	fileWatcher *fileWatcher

	// Temporary status messages
	statusMessageTime time.Time
}

func New(cfg *config.Config, logger *slog.Logger) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Editor{cfg: cfg, log: logger}
}

// Run takes over the terminal until the user quits. path may be empty.
func (e *Editor) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	return e.run(screen, path)
}

// run drives an initialized screen and finalizes it on return.
func (e *Editor) run(screen tcell.Screen, path string) error {
	theme := e.cfg.GetTheme()
	base := theme.Style()
	screen.SetStyle(base)
	screen.Clear()

	e.screen = screen
	e.term = NewScreen(screen, base)
	e.statusBar = ui.NewStatusBar()
	e.statusBar.Theme = theme

	tabSize, expandTabs := e.cfg.IndentFor(path)
	e.view = NewView(e.viewSize(), ViewOptions{
		TabSize:    tabSize,
		ExpandTabs: expandTabs,
		Theme:      theme,
	})

	if path != "" {
		e.openFile(path)
	}
	if e.cfg.WatchFile && e.path != "" {
		watcher, err := watchFile(screen, e.path, e.log)
		if err != nil {
			// continue without watching
			e.log.Warn("file watch unavailable", "path", e.path, "err", err)
		} else {
			e.fileWatcher = watcher
		}
	}

	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		ev := screen.PollEvent()
		if ev == nil {
			// screen finalized
			break
		}
		e.handleEvent(ev)
	}

	if e.cfg.RestoreSession && e.path != "" {
		if err := SaveSession(e.path, e.view); err != nil {
			e.log.Warn("failed to save session", "path", e.path, "err", err)
		}
	}
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}

	screen.Clear()
	screen.Fini()
	return nil
}

// viewSize is the screen minus the status bar row.
func (e *Editor) viewSize() Size {
	size := e.term.Size()
	size.Height = max(size.Height-1, 0)
	return size
}

func (e *Editor) openFile(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	e.path = abs

	if err := e.view.Load(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.setTemporaryMessage("New file: " + filepath.Base(abs))
		} else {
			e.log.Warn("failed to load file", "path", abs, "err", err)
			e.setTemporaryError("Error: " + err.Error())
		}
		return
	}
	e.log.Info("opened file", "path", abs, "lines", e.view.Buffer().Height())

	if e.cfg.RestoreSession {
		RestoreSession(abs, e.view)
	}
}

func (e *Editor) handleEvent(ev tcell.Event) {
	if ev, ok := ev.(*FileWatchEvent); ok {
		e.handleFileWatchEvent(ev)
		return
	}
	cmd, ok := CommandFromEvent(ev)
	if !ok {
		return
	}

	switch cmd.Kind {
	case CmdQuit:
		e.quit = true
	case CmdResize:
		e.screen.Sync()
		cmd.Size.Height = max(cmd.Size.Height-1, 0)
		e.view.HandleCommand(cmd)
	case CmdPaste:
		cmd.Text = clipboardx.Read()
		if cmd.Text == "" {
			return
		}
		e.view.HandleCommand(cmd)
	case CmdCopyLine:
		e.copyLine()
	default:
		e.view.HandleCommand(cmd)
	}
}

func (e *Editor) copyLine() {
	line := e.view.CurrentLine()
	if line == nil {
		return
	}
	if err := clipboardx.Write(line.String()); err != nil {
		e.log.Debug("system clipboard unavailable", "err", err)
	}
	e.setTemporaryMessage("Copied line")
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	if ev.Path != e.path {
		return
	}
	name := filepath.Base(ev.Path)
	if _, err := os.Stat(ev.Path); err != nil {
		e.setTemporaryError("Warning: " + name + " was deleted externally")
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if e.view.Modified() {
		e.setTemporaryError("⚠ " + name + " was modified externally! (unsaved changes)")
		return
	}
	if err := e.view.Load(ev.Path); err != nil {
		e.log.Warn("failed to reload file", "path", ev.Path, "err", err)
		e.setTemporaryError("Error: " + err.Error())
		return
	}
	e.log.Info("reloaded file", "path", ev.Path)
	e.setTemporaryMessage("↻ " + name + " (reloaded)")
}

func (e *Editor) render() {
	e.logRenderError(e.view.Render(e.term))

	w, h := e.screen.Size()
	if h > 0 {
		e.updateStatus()
		e.statusBar.Render(e.screen, 0, h-1, w)
	}

	pos := e.view.CursorPosition()
	if size := e.view.Size(); size.Width > 0 && size.Height > 0 {
		e.screen.ShowCursor(pos.Col, pos.Row)
	} else {
		e.screen.HideCursor()
	}
	e.screen.Show()
}

// logRenderError warns about the first failure of a run; repeats while the
// view stays dirty go to debug.
func (e *Editor) logRenderError(err error) {
	switch {
	case err == nil:
		e.renderFailing = false
	case e.renderFailing:
		e.log.Debug("render still failing", "err", err)
	default:
		e.renderFailing = true
		e.log.Warn("render failed", "err", err)
	}
}

func (e *Editor) updateStatus() {
	loc := e.view.Location()
	sb := e.statusBar
	sb.Filename = ""
	if e.path != "" {
		sb.Filename = filepath.Base(e.path)
	}
	sb.Line = loc.LineIndex
	sb.Col = loc.GraphemeIndex
	sb.Lines = e.view.Buffer().Height()
	sb.LineEnd = e.view.Buffer().LineEnding
	sb.Modified = e.view.Modified()
}

// setTemporaryMessage sets a message that will auto-clear after a few seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > statusMessageTimeout {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}
